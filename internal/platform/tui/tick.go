// Package tui runs the birthday arcade in a terminal: the landing scene, the
// kitty catch game and the result scoreboard, locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameStep caps the clock advance of a single frame so a stalled
// terminal does not fast-forward the game.
const maxFrameStep = 100 * time.Millisecond

// TickMsg is sent once per rendered frame. Gen identifies the game run the
// tick belongs to; ticks of an earlier run are dropped.
type TickMsg struct {
	Time time.Time
	Gen  int
}

// frameInterval returns the frame period for fps, defaulting to 60.
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// tickCmd returns a Bubble Tea command that sends the next frame tick.
func tickCmd(fps, gen int) tea.Cmd {
	return tea.Tick(frameInterval(fps), func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}

// frameStep returns the clock advance between two ticks.
func frameStep(last, now time.Time, fps int) time.Duration {
	if last.IsZero() {
		return frameInterval(fps)
	}
	dt := now.Sub(last)
	if dt < 0 {
		return 0
	}
	return min(dt, maxFrameStep)
}
