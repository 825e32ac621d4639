package storage

import (
	"context"
	"sync"
)

// Recorder binds a Store to one game and one player session so a running
// game can persist progress and scores without a network round trip.
// The session is created lazily on first use.
type Recorder struct {
	store  *Store
	gameID string

	mu        sync.Mutex
	sessionID string
}

// NewRecorder returns a recorder for gameID. An empty sessionID starts a new
// session on first write.
func NewRecorder(store *Store, gameID, sessionID string) *Recorder {
	return &Recorder{store: store, gameID: gameID, sessionID: sessionID}
}

// SessionID returns the bound session, or "" before the first write.
func (r *Recorder) SessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID
}

// UpdateSession deep-merges patch into the bound session. Unknown or expired
// sessions are replaced by a new one holding the patch.
func (r *Recorder) UpdateSession(ctx context.Context, patch map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sessionID != "" {
		_, err := r.store.MergeSession(ctx, r.sessionID, patch)
		if err == nil || !isNotFound(err) {
			return err
		}
	}

	sess, err := r.store.CreateSession(ctx, patch)
	if err != nil {
		return err
	}
	r.sessionID = sess.ID
	return nil
}

// SubmitScore stores a score for the bound game and session.
func (r *Recorder) SubmitScore(ctx context.Context, score int, meta map[string]any) error {
	_, err := r.store.SaveScore(ctx, r.gameID, r.SessionID(), score, meta)
	return err
}

// Best returns the high score of the bound game.
func (r *Recorder) Best(ctx context.Context) (int, error) {
	return r.store.HighScore(ctx, r.gameID)
}

// Top returns the best n scores of the bound game.
func (r *Recorder) Top(ctx context.Context, n int) ([]ScoreEntry, error) {
	return r.store.TopScores(ctx, r.gameID, n)
}

// Count returns the number of stored scores of the bound game.
func (r *Recorder) Count(ctx context.Context) (int, error) {
	return r.store.CountScores(ctx, r.gameID)
}
