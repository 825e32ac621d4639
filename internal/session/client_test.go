package session

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/server"
	"github.com/vovakirdan/birthday-arcade/internal/storage"
)

var localIDPattern = regexp.MustCompile(`^local-\d+-[0-9a-z]{9}$`)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// newAPI starts a real session API backed by a temporary database.
func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(server.New(store, config.DefaultServerConfig(), "kitty", quietLogger()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

// newBrokenAPI answers every request with a server error.
func newBrokenAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"down"}`, http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientOnlineFlow(t *testing.T) {
	ctx := context.Background()
	api := newAPI(t)
	local := NewMemoryLocal()
	c := NewClient(api.URL+"/api", 0, local, quietLogger())

	id := c.GetOrCreate(ctx, "", false)
	if id == "" || localIDPattern.MatchString(id) {
		t.Fatalf("GetOrCreate() = %q, expected a server session", id)
	}
	if local.SessionID() != id {
		t.Errorf("remembered session = %q, expected %q", local.SessionID(), id)
	}

	patch := map[string]any{"game": map[string]any{"score": 4}}
	if err := c.UpdateSession(ctx, patch); err != nil {
		t.Fatalf("UpdateSession() error = %v", err)
	}
	state, err := c.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	game, _ := state["game"].(map[string]any)
	if game["score"] != float64(4) {
		t.Errorf("state = %v, expected game.score 4", state)
	}
	progress, _ := state["progress"].(map[string]any)
	if progress["landing"] != true {
		t.Errorf("state = %v, expected progress kept", state)
	}
	if len(local.Data()) != 0 {
		t.Errorf("local data = %v, expected nothing stored locally", local.Data())
	}

	if err := c.SubmitScore(ctx, 4, map[string]any{"device": "test"}); err != nil {
		t.Fatalf("SubmitScore() error = %v", err)
	}
	scores, total, err := c.Scores(ctx, 10)
	if err != nil {
		t.Fatalf("Scores() error = %v", err)
	}
	if total != 1 || len(scores) != 1 || scores[0].SessionID != id {
		t.Errorf("Scores() = %v, %d, expected one score for %s", scores, total, id)
	}

	// Remembered session is reused
	again := NewClient(api.URL+"/api", 0, local, quietLogger())
	if got := again.GetOrCreate(ctx, "", false); got != id {
		t.Errorf("GetOrCreate() = %q, expected remembered %q", got, id)
	}

	fresh := c.Reset(ctx)
	if fresh == id || fresh == "" {
		t.Errorf("Reset() = %q, expected a new session", fresh)
	}
	if c.ID() != fresh || local.SessionID() != fresh {
		t.Errorf("Reset() did not switch to %q", fresh)
	}
}

func TestClientReplacesUnknownSession(t *testing.T) {
	ctx := context.Background()
	api := newAPI(t)
	c := NewClient(api.URL+"/api", 0, NewMemoryLocal(), quietLogger())

	id := c.GetOrCreate(ctx, "stale-id", false)
	if id == "stale-id" || id == "" {
		t.Errorf("GetOrCreate() = %q, expected a replacement session", id)
	}
}

func TestClientFresh(t *testing.T) {
	ctx := context.Background()
	api := newAPI(t)
	local := NewMemoryLocal()
	local.MergeData(map[string]any{"old": true}) //nolint:errcheck
	c := NewClient(api.URL+"/api", 0, local, quietLogger())

	first := c.GetOrCreate(ctx, "", false)
	second := c.GetOrCreate(ctx, "", true)
	if first == second {
		t.Errorf("fresh start reused session %q", first)
	}
	if len(local.Data()) != 0 {
		t.Errorf("local data = %v, expected cleared", local.Data())
	}
}

func TestClientFallbacks(t *testing.T) {
	tests := []struct {
		name string
		base func(t *testing.T) string
	}{
		{"offline", func(*testing.T) string { return "" }},
		{"server error", func(t *testing.T) string { return newBrokenAPI(t).URL + "/api" }},
		{"unreachable", func(t *testing.T) string {
			srv := httptest.NewServer(http.NotFoundHandler())
			srv.Close()
			return srv.URL + "/api"
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			local := NewMemoryLocal()
			c := NewClient(tc.base(t), 0, local, quietLogger())

			id := c.GetOrCreate(ctx, "", false)
			if !localIDPattern.MatchString(id) {
				t.Errorf("GetOrCreate() = %q, expected a local ID", id)
			}

			if _, err := c.Get(ctx); !errors.Is(err, ErrNoSession) {
				t.Errorf("Get() error = %v, expected %v", err, ErrNoSession)
			}

			if err := c.Update(ctx, map[string]any{"game": map[string]any{"score": 2}}); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if err := c.Update(ctx, map[string]any{"game": map[string]any{"completedAt": "x"}}); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			state, err := c.Get(ctx)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			// Local updates merge shallowly
			game, _ := state["game"].(map[string]any)
			if _, ok := game["score"]; ok || game["completedAt"] != "x" {
				t.Errorf("local state = %v, expected the last game object only", state)
			}

			for _, s := range []int{3, 9, 5} {
				if err := c.SubmitScore(ctx, s, nil); err != nil {
					t.Fatalf("SubmitScore() error = %v", err)
				}
			}
			scores, total, err := c.Scores(ctx, 2)
			if err != nil {
				t.Fatalf("Scores() error = %v", err)
			}
			if total != 3 || len(scores) != 2 || scores[0].Score != 9 || scores[1].Score != 5 {
				t.Errorf("Scores() = %v, %d, expected [9 5] of 3", scores, total)
			}

			site := c.Config(ctx)
			if site.BannerText != config.DefaultServerConfig().Site.BannerText {
				t.Errorf("Config() = %+v, expected defaults", site)
			}
		})
	}
}

func TestClientGetLocalWrappedState(t *testing.T) {
	local := NewMemoryLocal()
	local.MergeData(map[string]any{"state": map[string]any{"game": "x"}}) //nolint:errcheck
	c := NewClient("", 0, local, quietLogger())

	state, err := c.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if state["game"] != "x" {
		t.Errorf("Get() = %v, expected the wrapped state", state)
	}
}

func TestAPIErrorIs(t *testing.T) {
	tests := []struct {
		status   int
		expected bool
	}{
		{http.StatusNotFound, true},
		{http.StatusBadRequest, false},
		{http.StatusInternalServerError, false},
	}

	for _, tc := range tests {
		err := error(&APIError{Status: tc.status})
		if got := errors.Is(err, ErrNotFound); got != tc.expected {
			t.Errorf("errors.Is(%d, ErrNotFound) = %v, expected %v", tc.status, got, tc.expected)
		}
	}
}

func TestLocalStoreClear(t *testing.T) {
	l := NewMemoryLocal()
	l.SetSessionID("abc")                      //nolint:errcheck
	l.MergeData(map[string]any{"a": 1})        //nolint:errcheck
	l.AddScore(Score{ID: "local-1", Score: 1}) //nolint:errcheck

	if err := l.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if l.SessionID() != "" || len(l.Data()) != 0 || len(l.Scores()) != 0 {
		t.Errorf("Clear() left data behind")
	}
	if l.Persistent() {
		t.Errorf("memory store reports persistence")
	}
}
