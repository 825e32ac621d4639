// Package session talks to the session API on behalf of a player. Every
// call degrades to local storage when the API is unreachable, so progress
// and scores are never lost to a network failure.
package session

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/birthday-arcade/internal/config"
)

// DefaultTimeout bounds a single API request.
const DefaultTimeout = 5 * time.Second

// ErrNotFound is returned when the API does not know the session.
var ErrNotFound = errors.New("session: not found")

// ErrNoSession is returned by Get when there is neither a session nor local data.
var ErrNoSession = errors.New("session: no session data")

// Client is a session API client with local fallbacks.
// An empty base URL makes it work fully offline.
type Client struct {
	base   string
	http   *http.Client
	local  *LocalStore
	logger *log.Logger
	now    func() time.Time

	mu        sync.Mutex
	sessionID string
}

// NewClient creates a client for the API at baseURL, e.g.
// "http://localhost:8080/api".
func NewClient(baseURL string, timeout time.Duration, local *LocalStore, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if local == nil {
		local = NewMemoryLocal()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: timeout},
		local:  local,
		logger: logger,
		now:    time.Now,
	}
}

// Online reports whether the client has an API to talk to.
func (c *Client) Online() bool {
	return c.base != ""
}

// ID returns the current session ID, or "" before GetOrCreate.
func (c *Client) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *Client) setID(id string) {
	c.mu.Lock()
	c.sessionID = id
	c.mu.Unlock()
	if err := c.local.SetSessionID(id); err != nil {
		c.logger.Warn("could not remember session", "error", err)
	}
}

// GetOrCreate resolves the session to use: sid if given, else the remembered
// one, else a new one. fresh discards local state and always starts a new
// session. It always yields an ID, falling back to a local one offline.
func (c *Client) GetOrCreate(ctx context.Context, sid string, fresh bool) string {
	if fresh {
		if err := c.local.Clear(); err != nil {
			c.logger.Warn("could not clear local session data", "error", err)
		}
	}

	id := sid
	if id == "" && !fresh {
		id = c.local.SessionID()
	}

	switch {
	case id == "" || fresh:
		id = c.create(ctx)
	case c.Online():
		var sess remoteSession
		err := c.do(ctx, http.MethodGet, "/session/"+url.PathEscape(id)+"?create=true", nil, &sess)
		switch {
		case err != nil:
			c.logger.Warn("could not verify session, starting a new one", "session", id, "error", err)
			id = c.create(ctx)
		case sess.ID != "":
			id = sess.ID
		}
	}

	c.setID(id)
	return id
}

func (c *Client) create(ctx context.Context) string {
	if c.Online() {
		var resp struct {
			SessionID string `json:"sessionId"`
		}
		err := c.do(ctx, http.MethodPost, "/session/create", nil, &resp)
		if err == nil && resp.SessionID != "" {
			return resp.SessionID
		}
		c.logger.Warn("could not create session, using a local one", "error", err)
	}
	return c.localID()
}

// localID returns an ID of the form local-<unix ms>-<9 base36 chars>.
func (c *Client) localID() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return "local-" + strconv.FormatInt(c.now().UnixMilli(), 10) + "-" + string(suffix)
}

type remoteSession struct {
	ID    string         `json:"id"`
	State map[string]any `json:"state"`
}

// Get returns the session state. When the API is unreachable it returns the
// locally stored progress instead.
func (c *Client) Get(ctx context.Context) (map[string]any, error) {
	id := c.ID()
	if id != "" && c.Online() {
		var sess remoteSession
		err := c.do(ctx, http.MethodGet, "/session/"+url.PathEscape(id), nil, &sess)
		if err == nil {
			if sess.State == nil {
				sess.State = map[string]any{}
			}
			return sess.State, nil
		}
		c.logger.Warn("could not fetch session, using local data", "session", id, "error", err)
	}

	data := c.local.Data()
	if len(data) == 0 {
		return nil, ErrNoSession
	}
	// Older local records wrap the state
	if state, ok := data["state"].(map[string]any); ok {
		return state, nil
	}
	return data, nil
}

// Update merges patch into the session state. Failures are absorbed by
// storing the patch locally.
func (c *Client) Update(ctx context.Context, patch map[string]any) error {
	id := c.ID()
	if id != "" && c.Online() {
		err := c.do(ctx, http.MethodPost, "/session/"+url.PathEscape(id), patch, nil)
		if err == nil {
			return nil
		}
		c.logger.Warn("could not update session, storing locally", "session", id, "error", err)
	}
	return c.local.MergeData(patch)
}

// UpdateSession implements core.SessionStore.
func (c *Client) UpdateSession(ctx context.Context, patch map[string]any) error {
	return c.Update(ctx, patch)
}

// Reset swaps the session for a fresh one and returns the new ID.
func (c *Client) Reset(ctx context.Context) string {
	id := c.ID()
	if id == "" {
		return ""
	}
	if !c.Online() {
		fresh := c.localID()
		c.setID(fresh)
		return fresh
	}

	var resp struct {
		SessionID string `json:"sessionId"`
	}
	err := c.do(ctx, http.MethodPost, "/session/"+url.PathEscape(id)+"/reset", nil, &resp)
	var apiErr *APIError
	switch {
	case err == nil && resp.SessionID != "":
		c.setID(resp.SessionID)
		return resp.SessionID
	case errors.As(err, &apiErr):
		// The API answered; keep the current session
		c.logger.Warn("session reset rejected", "session", id, "error", err)
		return id
	default:
		fresh := c.create(ctx)
		c.setID(fresh)
		return fresh
	}
}

// SubmitScore posts a score for the current session. Failures are absorbed by
// storing the score locally.
func (c *Client) SubmitScore(ctx context.Context, score int, meta map[string]any) error {
	if meta == nil {
		meta = map[string]any{}
	}
	if c.Online() {
		body := map[string]any{
			"sessionId": c.ID(),
			"score":     score,
			"meta":      meta,
		}
		err := c.do(ctx, http.MethodPost, "/score", body, nil)
		if err == nil {
			return nil
		}
		c.logger.Warn("could not submit score, storing locally", "score", score, "error", err)
	}
	return c.local.AddScore(Score{
		ID:        "local-" + strconv.FormatInt(c.now().UnixMilli(), 10),
		SessionID: c.ID(),
		Score:     score,
		Meta:      meta,
		CreatedAt: c.now().UTC(),
	})
}

// Scores returns the leaderboard and the total number of scores. Offline it
// ranks the locally stored scores.
func (c *Client) Scores(ctx context.Context, limit int) ([]Score, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if c.Online() {
		var resp struct {
			Scores []Score `json:"scores"`
			Total  int     `json:"total"`
		}
		err := c.do(ctx, http.MethodGet, "/scores", nil, &resp)
		if err == nil {
			if len(resp.Scores) > limit {
				resp.Scores = resp.Scores[:limit]
			}
			return resp.Scores, resp.Total, nil
		}
		c.logger.Warn("could not fetch scores, using local ones", "error", err)
	}

	scores := c.local.Scores()
	total := len(scores)
	slices.SortStableFunc(scores, func(a, b Score) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, total, nil
}

// Config returns the public site configuration, or the built-in defaults
// when the API is unreachable.
func (c *Client) Config(ctx context.Context) config.SiteConfig {
	if c.Online() {
		var resp struct {
			BannerText string `json:"bannerText"`
			Assets     struct {
				Balloons      int      `json:"balloons"`
				CloudMessages []string `json:"cloudMessages"`
			} `json:"assets"`
		}
		err := c.do(ctx, http.MethodGet, "/config", nil, &resp)
		if err == nil {
			return config.SiteConfig{
				BannerText:    resp.BannerText,
				Balloons:      resp.Assets.Balloons,
				CloudMessages: resp.Assets.CloudMessages,
			}
		}
		c.logger.Warn("could not fetch site config, using defaults", "error", err)
	}
	return config.DefaultServerConfig().Site
}

// APIError is a non-2xx API response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("session: API returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("session: API returned %d", e.Status)
}

// Is lets errors.Is match 404 responses against ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("session: cannot encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("session: cannot build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("session: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("session: cannot decode response: %w", err)
	}
	return nil
}
