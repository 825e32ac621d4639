package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTimeout is how long an untouched session is kept.
const DefaultSessionTimeout = time.Hour

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("storage: session not found")

// Session is a player's progress record.
type Session struct {
	ID        string         `json:"id"`
	State     map[string]any `json:"state"`
	CreatedAt time.Time      `json:"created_at"`
	LastSeen  time.Time      `json:"last_seen"`
}

// SetSessionTimeout changes the idle time after which sessions expire.
func (s *Store) SetSessionTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultSessionTimeout
	}
	s.sessionTimeout = d
}

func (s *Store) timeout() time.Duration {
	if s.sessionTimeout <= 0 {
		return DefaultSessionTimeout
	}
	return s.sessionTimeout
}

// CreateSession stores a new session with the given initial state.
func (s *Store) CreateSession(ctx context.Context, state map[string]any) (Session, error) {
	if _, err := s.PurgeExpiredSessions(ctx); err != nil {
		return Session{}, err
	}
	return s.insertSession(ctx, s.db, state)
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) insertSession(ctx context.Context, db execer, state map[string]any) (Session, error) {
	if state == nil {
		state = map[string]any{}
	}
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot encode session state: %w", err)
	}

	now := s.now().UTC()
	sess := Session{
		ID:        uuid.NewString(),
		State:     state,
		CreatedAt: now.Truncate(time.Second),
		LastSeen:  now,
	}

	_, err = db.ExecContext(ctx,
		"INSERT INTO sessions (id, state, created_at, last_seen) VALUES (?, ?, ?, ?)",
		sess.ID, string(stateJSON), sess.CreatedAt.Format(sqlTime), now.UnixMilli(),
	)
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot create session: %w", err)
	}
	return sess, nil
}

// GetSession returns a live session and refreshes its last-seen time.
func (s *Store) GetSession(ctx context.Context, id string) (Session, error) {
	if _, err := s.PurgeExpiredSessions(ctx); err != nil {
		return Session{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	sess, err := loadSession(ctx, tx, id)
	if err != nil {
		return Session{}, err
	}
	if err := s.touch(ctx, tx, &sess); err != nil {
		return Session{}, err
	}
	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return sess, nil
}

// MergeSession deep-merges patch into the session state and returns the
// updated session.
func (s *Store) MergeSession(ctx context.Context, id string, patch map[string]any) (Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	sess, err := loadSession(ctx, tx, id)
	if err != nil {
		return Session{}, err
	}

	DeepMerge(sess.State, patch)
	stateJSON, err := json.Marshal(sess.State)
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot encode session state: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE sessions SET state = ? WHERE id = ?", string(stateJSON), id); err != nil {
		return Session{}, fmt.Errorf("storage: cannot update session: %w", err)
	}
	if err := s.touch(ctx, tx, &sess); err != nil {
		return Session{}, err
	}

	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return sess, nil
}

// ResetSession replaces a session with a fresh, empty one under a new ID.
func (s *Store) ResetSession(ctx context.Context, id string) (Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := loadSession(ctx, tx, id); err != nil {
		return Session{}, err
	}
	fresh, err := s.insertSession(ctx, tx, nil)
	if err != nil {
		return Session{}, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return Session{}, fmt.Errorf("storage: cannot delete session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return fresh, nil
}

// PurgeExpiredSessions deletes sessions idle for longer than the timeout and
// returns how many were removed.
func (s *Store) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.timeout()).UnixMilli()
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE last_seen < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot purge sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count purged sessions: %w", err)
	}
	return n, nil
}

// SessionCounts returns the number of stored sessions and how many of them
// were seen within the timeout.
func (s *Store) SessionCounts(ctx context.Context) (total, active int, err error) {
	cutoff := s.now().Add(-s.timeout()).UnixMilli()
	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(CASE WHEN last_seen >= ? THEN 1 ELSE 0 END), 0) FROM sessions",
		cutoff,
	).Scan(&total, &active)
	if err != nil {
		return 0, 0, fmt.Errorf("storage: cannot count sessions: %w", err)
	}
	return total, active, nil
}

func loadSession(ctx context.Context, tx *sql.Tx, id string) (Session, error) {
	var (
		sess      Session
		state     string
		createdAt any
		lastSeen  int64
	)
	err := tx.QueryRowContext(ctx,
		"SELECT id, state, created_at, last_seen FROM sessions WHERE id = ?",
		id,
	).Scan(&sess.ID, &state, &createdAt, &lastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot query session: %w", err)
	}

	if err := json.Unmarshal([]byte(state), &sess.State); err != nil || sess.State == nil {
		sess.State = map[string]any{}
	}
	sess.CreatedAt = parseTime(createdAt)
	sess.LastSeen = time.UnixMilli(lastSeen).UTC()
	return sess, nil
}

func (s *Store) touch(ctx context.Context, tx *sql.Tx, sess *Session) error {
	now := s.now().UTC()
	if _, err := tx.ExecContext(ctx, "UPDATE sessions SET last_seen = ? WHERE id = ?", now.UnixMilli(), sess.ID); err != nil {
		return fmt.Errorf("storage: cannot touch session: %w", err)
	}
	sess.LastSeen = now
	return nil
}

// DeepMerge copies src into dst. Nested objects present on both sides are
// merged recursively; any other value in src replaces the one in dst.
func DeepMerge(dst, src map[string]any) {
	for k, v := range src {
		if sv, ok := v.(map[string]any); ok {
			if dv, ok := dst[k].(map[string]any); ok {
				DeepMerge(dv, sv)
				continue
			}
		}
		dst[k] = v
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}
