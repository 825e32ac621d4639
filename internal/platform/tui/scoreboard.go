package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/birthday-arcade/internal/platform"
)

// Scoreboard layout constants
const (
	leaderboardSize = 10 // Scores shown on the result scene
	tableMaxHeight  = leaderboardSize + 1
)

// ResultKeyMap defines the key bindings for the result scene.
type ResultKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Again key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Again, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Again, k.Back, k.Quit},
	}
}

// DefaultResultKeyMap returns default key bindings.
func DefaultResultKeyMap() ResultKeyMap {
	return ResultKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Again: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r/enter", "play again"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultAction is what the player chose on the result scene.
type ResultAction int

const (
	ResultNone ResultAction = iota
	ResultAgain
	ResultBack
	ResultQuit
)

// ResultModel shows the final score and the leaderboard.
type ResultModel struct {
	score   int
	rows    []platform.ScoreRow
	total   int
	loaded  bool
	loadErr string
	table   table.Model
	help    help.Model
	keys    ResultKeyMap
	width   int
	height  int
}

// NewResultModel creates the result scene for a finished game.
func NewResultModel(score, width, height int) ResultModel {
	h := help.New()
	h.ShowAll = false

	m := ResultModel{
		score:  score,
		keys:   DefaultResultKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ResultModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(min(tableMaxHeight, max(m.height-12, 3))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// SetLeaderboard fills the table. A non-nil err is shown instead.
func (m *ResultModel) SetLeaderboard(rows []platform.ScoreRow, total int, err error) {
	m.loaded = true
	if err != nil {
		m.loadErr = err.Error()
		return
	}
	m.rows = rows
	m.total = total
	m.updateTableRows()
}

// Best returns the best score on the leaderboard, counting this game.
func (m ResultModel) Best() int {
	best := m.score
	for _, r := range m.rows {
		best = max(best, r.Score)
	}
	return best
}

// updateTableRows updates the table with current scores.
func (m *ResultModel) updateTableRows() {
	rows := make([]table.Row, len(m.rows))
	for i, s := range m.rows {
		date := ""
		if !s.When.IsZero() {
			date = s.When.Local().Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			date,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Resize updates the layout size.
func (m *ResultModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table = m.createTable()
	m.updateTableRows()
	m.help.Width = width
}

// Update handles a message and reports the player's choice.
func (m ResultModel) Update(msg tea.Msg) (ResultModel, ResultAction, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, ResultQuit, nil
		case key.Matches(msg, m.keys.Again):
			return m, ResultAgain, nil
		case key.Matches(msg, m.keys.Back):
			return m, ResultBack, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, ResultNone, cmd
}

// View renders the result scene.
func (m ResultModel) View(r *Renderer) string {
	var b strings.Builder

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("TIME'S UP!"), m.width))
	b.WriteString("\n\n")

	scoreStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff8aa1"))
	b.WriteString(centerText(scoreStyle.Render(fmt.Sprintf("You caught %d %s", m.score, plural(m.score, "kitty", "kitties"))), m.width))
	b.WriteString("\n")
	if m.loaded && m.loadErr == "" {
		b.WriteString(centerText(fmt.Sprintf("Best: %d   Games played: %d", m.Best(), m.total), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	tableStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.renderTableContent(r))))
	b.WriteString("\n\n")

	helpStyle := r.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

// renderTableContent renders the table or a placeholder.
func (m ResultModel) renderTableContent(r *Renderer) string {
	emptyStyle := r.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)

	switch {
	case !m.loaded:
		return emptyStyle.Render("Loading scores...")
	case m.loadErr != "":
		return emptyStyle.Render("Scores unavailable:\n" + m.loadErr)
	case len(m.rows) == 0:
		return emptyStyle.Render("No scores recorded yet.")
	}
	return m.table.View()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
