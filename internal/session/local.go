package session

import (
	"encoding/json"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// Local storage keys.
const (
	localObject  = "birthday"
	keySessionID = "session_id"
	keyData      = "local_data"
	keyScores    = "local_scores"
)

// LocalStore keeps the session ID, unsynced progress and unsynced scores on
// this machine. Without a gdata manager it holds everything in memory.
type LocalStore struct {
	mu  sync.Mutex
	mgr *gdata.Manager // nil in memory-only mode
	mem map[string][]byte
}

// OpenLocal opens persistent local storage for appName. When the platform
// storage cannot be opened the returned store works in memory only and the
// error says why.
func OpenLocal(appName string) (*LocalStore, error) {
	l := NewMemoryLocal()
	mgr, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return l, fmt.Errorf("session: local storage unavailable, keeping data in memory: %w", err)
	}
	l.mgr = mgr
	return l, nil
}

// NewMemoryLocal returns a store that forgets everything on exit.
func NewMemoryLocal() *LocalStore {
	return &LocalStore{mem: make(map[string][]byte)}
}

// Persistent reports whether data survives restarts.
func (l *LocalStore) Persistent() bool {
	return l.mgr != nil
}

func (l *LocalStore) load(key string) []byte {
	if l.mgr == nil {
		return l.mem[key]
	}
	if !l.mgr.ObjectPropExists(localObject, key) {
		return nil
	}
	data, err := l.mgr.LoadObjectProp(localObject, key)
	if err != nil {
		return nil
	}
	return data
}

func (l *LocalStore) save(key string, data []byte) error {
	if l.mgr == nil {
		l.mem[key] = data
		return nil
	}
	if err := l.mgr.SaveObjectProp(localObject, key, data); err != nil {
		return fmt.Errorf("session: cannot save %s locally: %w", key, err)
	}
	return nil
}

// SessionID returns the remembered session ID, or "".
func (l *LocalStore) SessionID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return string(l.load(keySessionID))
}

// SetSessionID remembers id for the next run.
func (l *LocalStore) SetSessionID(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.save(keySessionID, []byte(id))
}

// Data returns the locally stored progress. It is never nil.
func (l *LocalStore) Data() map[string]any {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data()
}

func (l *LocalStore) data() map[string]any {
	out := map[string]any{}
	if raw := l.load(keyData); len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil || out == nil {
			return map[string]any{}
		}
	}
	return out
}

// MergeData copies the top-level keys of patch over the stored progress.
func (l *LocalStore) MergeData(patch map[string]any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := l.data()
	maps.Copy(data, patch)
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session: cannot encode local data: %w", err)
	}
	return l.save(keyData, raw)
}

// Scores returns the scores recorded while offline, oldest first.
func (l *LocalStore) Scores() []Score {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scores()
}

func (l *LocalStore) scores() []Score {
	var out []Score
	if raw := l.load(keyScores); len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil
		}
	}
	return out
}

// AddScore appends a score recorded while offline.
func (l *LocalStore) AddScore(s Score) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	scores := append(l.scores(), s)
	raw, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("session: cannot encode local scores: %w", err)
	}
	return l.save(keyScores, raw)
}

// Clear forgets the session ID and all local progress and scores.
func (l *LocalStore) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, key := range []string{keySessionID, keyData, keyScores} {
		if err := l.save(key, nil); err != nil {
			return err
		}
	}
	return nil
}

// Score is a score record as served by the session API.
type Score struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id,omitempty"`
	Score     int            `json:"score"`
	Meta      map[string]any `json:"meta"`
	CreatedAt time.Time      `json:"created_at"`
}
