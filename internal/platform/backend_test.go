package platform

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/session"
	"github.com/vovakirdan/birthday-arcade/internal/storage"
)

func TestClientBackendOffline(t *testing.T) {
	ctx := context.Background()
	local := session.NewMemoryLocal()
	b := ClientBackend(session.NewClient("", 0, local, log.New(io.Discard)))

	id := b.Open(ctx)
	if id == "" {
		t.Fatal("Open() returned no session")
	}
	progress, _ := local.Data()["progress"].(map[string]any)
	if progress["landing"] != true {
		t.Errorf("local data = %v, expected the landing visit", local.Data())
	}

	for _, s := range []int{4, 11, 7} {
		if err := b.SubmitScore(ctx, s, nil); err != nil {
			t.Fatalf("SubmitScore() error = %v", err)
		}
	}
	rows, total, err := b.Leaderboard(ctx, 2)
	if err != nil {
		t.Fatalf("Leaderboard() error = %v", err)
	}
	if total != 3 || len(rows) != 2 || rows[0].Score != 11 || rows[1].Score != 7 {
		t.Errorf("Leaderboard() = %v, %d, expected [11 7], 3", rows, total)
	}

	if site := b.Site(ctx); site.BannerText != config.DefaultServerConfig().Site.BannerText {
		t.Errorf("Site() = %+v, expected defaults", site)
	}
}

func TestStoreBackend(t *testing.T) {
	ctx := context.Background()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	site := config.SiteConfig{BannerText: "Hi"}
	b := StoreBackend(storage.NewRecorder(store, "kitty", ""), site)

	id := b.Open(ctx)
	if id == "" {
		t.Fatal("Open() did not create a session")
	}
	sess, err := store.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if _, ok := sess.State["progress"]; !ok {
		t.Errorf("state = %v, expected progress", sess.State)
	}

	if err := b.UpdateSession(ctx, map[string]any{"game": map[string]any{"score": 2}}); err != nil {
		t.Fatalf("UpdateSession() error = %v", err)
	}
	for _, s := range []int{2, 9} {
		if err := b.SubmitScore(ctx, s, map[string]any{"device": "ssh"}); err != nil {
			t.Fatalf("SubmitScore() error = %v", err)
		}
	}

	rows, total, err := b.Leaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("Leaderboard() error = %v", err)
	}
	if total != 2 || len(rows) != 2 || rows[0].Score != 9 {
		t.Errorf("Leaderboard() = %v, %d, expected 9 first of 2", rows, total)
	}
	if rows[0].When.IsZero() {
		t.Errorf("Leaderboard() row has no timestamp")
	}
	if b.Site(ctx).BannerText != "Hi" {
		t.Errorf("Site() = %+v, expected the configured site", b.Site(ctx))
	}
}
