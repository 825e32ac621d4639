package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/birthday-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions and held
// directions. This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a discrete action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "p", "esc":
		return core.ActionPause, false
	case "m":
		return core.ActionMute, false
	case "r":
		return core.ActionRestart, false
	case "enter", " ":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapDirection returns the movement key a key message stands for.
func (km *KeyMapper) MapDirection(msg tea.KeyMsg) core.Key {
	switch msg.String() {
	case "left", "a", "h":
		return core.KeyLeft
	case "right", "d", "l":
		return core.KeyRight
	case "up", "w", "k":
		return core.KeyUp
	case "down", "s", "j":
		return core.KeyDown
	}
	return core.KeyNone
}

// Terminals report presses and auto-repeats but never releases, so a
// direction stays held until no repeat arrives within the latch window.
// The first window spans the terminal's auto-repeat delay.
const (
	initialHold = 500 * time.Millisecond
	repeatHold  = 120 * time.Millisecond
)

// holdLatch turns terminal key repeats into KeyDown/KeyUp pairs.
type holdLatch struct {
	binder *core.InputBinder
	until  map[core.Key]time.Time
}

func newHoldLatch(b *core.InputBinder) *holdLatch {
	return &holdLatch{binder: b, until: make(map[core.Key]time.Time)}
}

// Press holds k until the latch window passes without a repeat.
// Pressing a direction releases the opposite one.
func (h *holdLatch) Press(k core.Key, now time.Time) {
	if k == core.KeyNone {
		return
	}
	if opp := opposite(k); opp != core.KeyNone {
		h.release(opp)
	}

	window := initialHold
	if _, held := h.until[k]; held {
		window = repeatHold
	}
	h.until[k] = now.Add(window)
	h.binder.KeyDown(k)
}

// Expire releases every key whose window has passed.
func (h *holdLatch) Expire(now time.Time) {
	for k, until := range h.until {
		if !now.Before(until) {
			h.release(k)
		}
	}
}

// ReleaseAll drops every held key.
func (h *holdLatch) ReleaseAll() {
	for k := range h.until {
		h.release(k)
	}
}

// Held reports whether k is currently latched.
func (h *holdLatch) Held(k core.Key) bool {
	_, ok := h.until[k]
	return ok
}

func (h *holdLatch) release(k core.Key) {
	if _, ok := h.until[k]; !ok {
		return
	}
	delete(h.until, k)
	h.binder.KeyUp(k)
}

func opposite(k core.Key) core.Key {
	switch k {
	case core.KeyLeft:
		return core.KeyRight
	case core.KeyRight:
		return core.KeyLeft
	case core.KeyUp:
		return core.KeyDown
	case core.KeyDown:
		return core.KeyUp
	}
	return core.KeyNone
}
