package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/birthday-arcade/internal/platform"
)

// hudView renders the one-line status bar under the playfield.
func hudView(r *Renderer, h *platform.HUD, muted bool, width int) string {
	left := fmt.Sprintf(" Score: %d   Time: %d", h.Score, h.TimeLeft)
	if h.Paused {
		left += "   PAUSED"
	}
	sound := "M: mute"
	if muted {
		sound = "M: unmute"
	}
	right := fmt.Sprintf("P: pause  %s  Q: quit ", sound)

	bar := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color("#ff8aa1"))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return bar.Width(width).Render(left)
	}
	return bar.Render(left + fmt.Sprintf("%*s", gap, "") + right)
}
