package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/vovakirdan/birthday-arcade/internal/storage"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

type sessionIDResponse struct {
	SessionID string `json:"sessionId"`
}

type scoreRequest struct {
	SessionID string         `json:"sessionId"`
	Score     *int           `json:"score"`
	Meta      map[string]any `json:"meta"`
}

type scoresResponse struct {
	Scores []storage.ScoreEntry `json:"scores"`
	Total  int                  `json:"total"`
}

type configResponse struct {
	BannerText string       `json:"bannerText"`
	Assets     assetsConfig `json:"assets"`
}

type assetsConfig struct {
	Balloons      int      `json:"balloons"`
	CloudMessages []string `json:"cloudMessages"`
}

type statsResponse struct {
	Sessions sessionStats `json:"sessions"`
	Scores   int          `json:"scores"`
	Uptime   float64      `json:"uptime"`
}

type sessionStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": s.now().Format(time.RFC3339Nano),
	})
}

// initialState is the state of a freshly created session.
func (s *Server) initialState() map[string]any {
	return map[string]any{
		"progress": map[string]any{
			"landing":   true,
			"startedAt": s.now().UTC().Format(time.RFC3339Nano),
		},
	}
}

// handleSessionPost serves both POST /api/session/create and
// POST /api/session/:id, which share one wildcard route.
func (s *Server) handleSessionPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") == "create" {
		s.handleCreateSession(w, r, ps)
		return
	}
	s.handleUpdateSession(w, r, ps)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, err := s.store.CreateSession(r.Context(), s.initialState())
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.logger.Info("Created session", "session", sess.ID)
	writeJSON(w, http.StatusOK, sessionIDResponse{SessionID: sess.ID})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := s.store.GetSession(r.Context(), ps.ByName("id"))
	if errors.Is(err, storage.ErrSessionNotFound) && r.URL.Query().Get("create") == "true" {
		sess, err = s.store.CreateSession(r.Context(), s.initialState())
		if err == nil {
			s.logger.Info("Created session", "session", sess.ID, "replacing", ps.ByName("id"))
		}
	}
	if errors.Is(err, storage.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var patch map[string]any
	if err := decodeBody(r, &patch); err != nil || len(patch) == 0 {
		// Unknown sessions report 404 even with a bad body
		if _, getErr := s.store.GetSession(r.Context(), ps.ByName("id")); errors.Is(getErr, storage.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}

	sess, err := s.store.MergeSession(r.Context(), ps.ByName("id"), patch)
	if errors.Is(err, storage.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.logger.Info("Updated session", "session", sess.ID)
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	old := ps.ByName("id")
	sess, err := s.store.ResetSession(r.Context(), old)
	if errors.Is(err, storage.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.logger.Info("Reset session", "from", old, "to", sess.ID)
	writeJSON(w, http.StatusOK, sessionIDResponse{SessionID: sess.ID})
}

func (s *Server) handleAddScore(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req scoreRequest
	if err := decodeBody(r, &req); err != nil || req.Score == nil {
		writeError(w, http.StatusBadRequest, "Score is required")
		return
	}

	entry, err := s.store.SaveScore(r.Context(), s.gameID, req.SessionID, *req.Score, req.Meta)
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.logger.Info("New score", "score", entry.Score, "session", entry.SessionID)
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	top, err := s.store.TopScores(r.Context(), s.gameID, s.topN())
	if err != nil {
		s.internalError(w, err)
		return
	}
	total, err := s.store.CountScores(r.Context(), s.gameID)
	if err != nil {
		s.internalError(w, err)
		return
	}
	if top == nil {
		top = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, scoresResponse{Scores: top, Total: total})
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	site := s.cfg.Site
	messages := site.CloudMessages
	if messages == nil {
		messages = []string{}
	}
	writeJSON(w, http.StatusOK, configResponse{
		BannerText: site.BannerText,
		Assets: assetsConfig{
			Balloons:      site.Balloons,
			CloudMessages: messages,
		},
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, err := s.store.PurgeExpiredSessions(r.Context()); err != nil {
		s.internalError(w, err)
		return
	}
	total, active, err := s.store.SessionCounts(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	scores, err := s.store.CountScores(r.Context(), s.gameID)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Sessions: sessionStats{Total: total, Active: active},
		Scores:   scores,
		Uptime:   s.now().Sub(s.started).Seconds(),
	})
}

func (s *Server) topN() int {
	if s.cfg.TopScores > 0 {
		return s.cfg.TopScores
	}
	return 10
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal error")
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
