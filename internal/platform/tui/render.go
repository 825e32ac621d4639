package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/birthday-arcade/internal/core"
)

// cellColors is the style key of a run of cells.
type cellColors struct {
	fg, bg core.Color
}

// Renderer converts Screen buffers to styled strings. Each program owns one,
// so SSH sessions style output for their own terminal.
type Renderer struct {
	lg     *lipgloss.Renderer
	styles map[cellColors]lipgloss.Style
}

// NewRenderer creates a renderer on top of lg. A nil lg uses the default
// renderer bound to stdout.
func NewRenderer(lg *lipgloss.Renderer) *Renderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	return &Renderer{lg: lg, styles: make(map[cellColors]lipgloss.Style)}
}

// NewStyle returns a style bound to this renderer.
func (r *Renderer) NewStyle() lipgloss.Style {
	return r.lg.NewStyle()
}

func (r *Renderer) style(c cellColors) lipgloss.Style {
	st, ok := r.styles[c]
	if !ok {
		st = r.lg.NewStyle().
			Foreground(lipgloss.Color(c.fg.Hex())).
			Background(lipgloss.Color(c.bg.Hex()))
		r.styles[c] = st
	}
	return st
}

// Screen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (r *Renderer) Screen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := cellColors{fg: cell.Fg, bg: cell.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (cellColors{fg: cell.Fg, bg: cell.Bg}) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(r.style(start).Render(run.String()))
		}
	}
	return sb.String()
}
