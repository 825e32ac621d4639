// Package server exposes player sessions and scores over a small JSON HTTP
// API. Clients use it to persist progress across scenes and to submit scores
// at the end of a game.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/julienschmidt/httprouter"

	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/storage"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server serves the session API for one game.
type Server struct {
	store   *storage.Store
	cfg     config.ServerConfig
	gameID  string
	logger  *log.Logger
	started time.Time
	now     func() time.Time
	router  *httprouter.Router
}

// New creates a server backed by store. Scores are recorded under gameID.
func New(store *storage.Store, cfg config.ServerConfig, gameID string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	store.SetSessionTimeout(cfg.SessionTimeout)
	store.SetMaxScores(cfg.MaxScores)

	s := &Server{
		store:   store,
		cfg:     cfg,
		gameID:  gameID,
		logger:  logger,
		started: time.Now(),
		now:     time.Now,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *httprouter.Router {
	r := httprouter.New()

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/session/:id", s.handleGetSession)
	r.POST("/api/session/:id", s.handleSessionPost)
	r.POST("/api/session/:id/reset", s.handleResetSession)
	r.POST("/api/score", s.handleAddScore)
	r.GET("/api/scores", s.handleScores)
	r.GET("/api/config", s.handleConfig)
	r.GET("/api/stats", s.handleStats)

	r.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.PanicHandler = func(w http.ResponseWriter, req *http.Request, v any) {
		s.logger.Error("handler panic", "path", req.URL.Path, "panic", v)
		writeError(w, http.StatusInternalServerError, "Internal error")
	}
	return r
}

// Handler returns the API with CORS and request logging applied.
func (s *Server) Handler() http.Handler {
	return s.logRequests(cors(s.router))
}

// ListenAndServe serves on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: cannot listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("Session API listening", "addr", ln.Addr().String(), "game", s.gameID)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Stopping session API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// cors allows browser clients served from other origins.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}

// statusWriter records the response status for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}
