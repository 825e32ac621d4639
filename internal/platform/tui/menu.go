package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/birthday-arcade/internal/config"
)

// balloonColors cycle across the balloon row.
var balloonColors = []string{"#ff8aa1", "#ffd166", "#7bdff2", "#b2f7ef", "#cdb4db"}

// LandingModel is the birthday greeting shown before the game.
type LandingModel struct {
	title   string
	site    config.SiteConfig
	loaded  bool
	best    int
	hasBest bool
	err     string
	width   int
	height  int
}

// NewLandingModel creates the landing scene with the built-in banner until
// the site configuration arrives.
func NewLandingModel(title string, width, height int) LandingModel {
	return LandingModel{
		title:  title,
		site:   config.DefaultServerConfig().Site,
		width:  width,
		height: height,
	}
}

// SetSite replaces the banner configuration.
func (m *LandingModel) SetSite(site config.SiteConfig) {
	if site.BannerText != "" {
		m.site.BannerText = site.BannerText
	}
	if site.Balloons > 0 {
		m.site.Balloons = site.Balloons
	}
	if len(site.CloudMessages) > 0 {
		m.site.CloudMessages = site.CloudMessages
	}
	m.loaded = true
}

// SetBest records the best score so far.
func (m *LandingModel) SetBest(best int) {
	m.best = best
	m.hasBest = true
}

// SetError shows a message under the prompt. Empty clears it.
func (m *LandingModel) SetError(msg string) {
	m.err = msg
}

// Resize updates the layout size.
func (m *LandingModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the landing scene.
func (m LandingModel) View(r *Renderer) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.balloons(r))
	b.WriteString("\n\n")

	banner := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff8aa1")).
		Render(strings.ToUpper(m.site.BannerText))
	b.WriteString(centerText(banner, m.width))
	b.WriteString("\n\n")

	if clouds := m.clouds(r); clouds != "" {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, clouds))
		b.WriteString("\n\n")
	}

	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render(m.title)
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n")
	if m.hasBest && m.best > 0 {
		b.WriteString(centerText(fmt.Sprintf("Best score: %d", m.best), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Catch as many kitties as you can before time runs out!", m.width))
	b.WriteString("\n\n")

	if m.err != "" {
		errStyle := r.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(centerText(errStyle.Render(m.err), m.width))
		b.WriteString("\n\n")
	}

	controls := "Enter: Play  |  Left/Right or drag: Move  |  Q: Quit"
	b.WriteString(centerText(r.NewStyle().Foreground(lipgloss.Color("241")).Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m LandingModel) balloons(r *Renderer) string {
	n := min(m.site.Balloons, max(m.width/3, 1))
	parts := make([]string, n)
	for i := range parts {
		parts[i] = r.NewStyle().Foreground(lipgloss.Color(balloonColors[i%len(balloonColors)])).Render("O")
	}
	return centerText(strings.Join(parts, "  "), m.width)
}

// clouds renders as many cloud messages as fit on one row.
func (m LandingModel) clouds(r *Renderer) string {
	cloud := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7bdff2")).
		Padding(0, 1)

	var row []string
	used := 0
	for _, msg := range m.site.CloudMessages {
		c := cloud.Render(msg)
		w := lipgloss.Width(c) + 1
		if used+w > m.width {
			break
		}
		row = append(row, c)
		used += w
	}
	if len(row) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, row...)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
