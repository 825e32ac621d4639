package core

import (
	"context"
	"time"
)

// Canvas is a logical drawing surface. Coordinates are in logical units;
// implementations map them onto their backing store (pixels or cells).
type Canvas interface {
	// Size returns the logical width and height.
	Size() (w, h float64)
	Clear(bg Color)
	FillRect(r Rect, c Color)
	FillCircle(c Circle, col Color)
	// DrawSprite draws s scaled into dst. It returns false when the sprite
	// cannot be drawn by this canvas, letting the caller use a fallback shape.
	DrawSprite(s Sprite, dst Rect) bool
	DrawLabel(x, y float64, text string, c Color)
}

// Sprite is a loaded image asset.
type Sprite interface {
	Name() string
	// Loaded reports whether the image decoded successfully.
	Loaded() bool
}

// SpriteLoader loads sprites for a specific canvas implementation.
type SpriteLoader interface {
	LoadSprite(ctx context.Context, path string) (Sprite, error)
}

// PointerSurface converts host pointer coordinates into logical surface
// coordinates. ok is false when the event lies outside the surface.
type PointerSurface interface {
	ToLocal(x, y float64) (lx, ly float64, ok bool)
}

// TouchControls describes the on-screen movement buttons a platform offers.
type TouchControls interface {
	Has(b Button) bool
}

// Display shows the score, remaining time and pause overlay.
type Display interface {
	SetScore(score int)
	SetTimeLeft(seconds int)
	ShowPaused(paused bool)
}

// AudioPlayer plays named tracks. Calls are fire-and-forget.
type AudioPlayer interface {
	PlayBackground(name string)
	PlayEffect(name string)
	PauseBackground()
	ResumeBackground()
	StopAll()
}

// SessionStore persists a partial update of the current session state.
type SessionStore interface {
	UpdateSession(ctx context.Context, patch map[string]any) error
}

// ScoreSubmitter records a final score for the current session.
type ScoreSubmitter interface {
	SubmitScore(ctx context.Context, score int, meta map[string]any) error
}

// Navigator switches the visible scene.
type Navigator interface {
	NavigateTo(scene string)
}

// Logger is the structured logger used by game code.
// *log.Logger from charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// TaskID identifies a scheduled callback.
type TaskID uint64

// Scheduler runs callbacks on the game thread against a clock it owns.
type Scheduler interface {
	// Now returns the elapsed scheduler time.
	Now() time.Duration
	// After runs fn once, d from now.
	After(d time.Duration, fn func()) TaskID
	// Every runs fn repeatedly with period d until cancelled.
	Every(d time.Duration, fn func()) TaskID
	// NextFrame runs fn once on the next frame.
	NextFrame(fn func()) TaskID
	// Cancel drops a pending task. Unknown IDs are ignored.
	Cancel(id TaskID)
	// Post queues fn to run on the game thread. Safe from any goroutine.
	Post(fn func())
}
