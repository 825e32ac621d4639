// Package platform holds what the terminal and window front ends share:
// the backend the scenes read and write player data through.
package platform

import (
	"context"
	"time"

	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/core"
	"github.com/vovakirdan/birthday-arcade/internal/session"
	"github.com/vovakirdan/birthday-arcade/internal/storage"
)

// ScoreRow is one leaderboard line.
type ScoreRow struct {
	Score int
	When  time.Time
}

// Backend is where the scenes read and write player data. The game persists
// through the embedded ports; the scenes use the rest.
type Backend interface {
	core.SessionStore
	core.ScoreSubmitter

	// Open resolves the player session and records the landing visit.
	Open(ctx context.Context) string
	// Leaderboard returns the best scores and the total number of scores.
	Leaderboard(ctx context.Context, limit int) ([]ScoreRow, int, error)
	// Site returns the banner configuration.
	Site(ctx context.Context) config.SiteConfig
}

// ClientBackend adapts a session API client.
func ClientBackend(c *session.Client) Backend {
	return clientBackend{c}
}

type clientBackend struct {
	*session.Client
}

func (b clientBackend) Open(ctx context.Context) string {
	id := b.GetOrCreate(ctx, "", false)
	//nolint:errcheck // Falls back to local data, never fatal
	b.Update(ctx, landingVisit())
	return id
}

func (b clientBackend) Leaderboard(ctx context.Context, limit int) ([]ScoreRow, int, error) {
	scores, total, err := b.Scores(ctx, limit)
	if err != nil {
		return nil, 0, err
	}
	rows := make([]ScoreRow, len(scores))
	for i, s := range scores {
		rows[i] = ScoreRow{Score: s.Score, When: s.CreatedAt}
	}
	return rows, total, nil
}

func (b clientBackend) Site(ctx context.Context) config.SiteConfig {
	return b.Config(ctx)
}

// StoreBackend adapts a database recorder, for hosts that own the database
// such as the SSH server.
func StoreBackend(rec *storage.Recorder, site config.SiteConfig) Backend {
	return storeBackend{rec: rec, site: site}
}

type storeBackend struct {
	rec  *storage.Recorder
	site config.SiteConfig
}

func (b storeBackend) UpdateSession(ctx context.Context, patch map[string]any) error {
	return b.rec.UpdateSession(ctx, patch)
}

func (b storeBackend) SubmitScore(ctx context.Context, score int, meta map[string]any) error {
	return b.rec.SubmitScore(ctx, score, meta)
}

func (b storeBackend) Open(ctx context.Context) string {
	//nolint:errcheck // The session is created again on the next write
	b.rec.UpdateSession(ctx, landingVisit())
	return b.rec.SessionID()
}

func (b storeBackend) Leaderboard(ctx context.Context, limit int) ([]ScoreRow, int, error) {
	top, err := b.rec.Top(ctx, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := b.rec.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	rows := make([]ScoreRow, len(top))
	for i, s := range top {
		rows[i] = ScoreRow{Score: s.Score, When: s.CreatedAt}
	}
	return rows, total, nil
}

func (b storeBackend) Site(context.Context) config.SiteConfig {
	return b.site
}

func landingVisit() map[string]any {
	return map[string]any{
		"progress": map[string]any{
			"landing":   true,
			"visitedAt": time.Now().UTC().Format(time.RFC3339),
		},
	}
}
