package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/birthday-arcade/internal/audio"
	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/core"
	"github.com/vovakirdan/birthday-arcade/internal/games/catch"
	"github.com/vovakirdan/birthday-arcade/internal/platform"
	"github.com/vovakirdan/birthday-arcade/internal/registry"
)

// Scene names.
const (
	SceneLanding = platform.SceneLanding
	SceneGame    = platform.SceneGame
	SceneResult  = platform.SceneResult
)

// backendTimeout bounds each backend call made by the scenes.
const backendTimeout = 5 * time.Second

// Options configures an App.
type Options struct {
	GameID   string
	Backend  platform.Backend // May be nil for a fully offline run
	Audio    audio.Interface  // May be nil
	Sprites  core.SpriteLoader
	Logger   *log.Logger
	Config   core.RuntimeConfig
	Renderer *lipgloss.Renderer // Nil uses stdout
	Width    int
	Height   int
}

// Messages produced by backend commands.
type (
	openedMsg struct{ id string }
	siteMsg   struct{ site config.SiteConfig }
	boardMsg  struct {
		rows  []platform.ScoreRow
		total int
		err   error
	}
)

// App is the Bubble Tea model for a full visit: landing, game, result.
type App struct {
	opts      Options
	keys      *KeyMapper
	render    *Renderer
	scene     string
	width     int
	height    int
	sessionID string
	landing   LandingModel
	game      *gameScene
	result    ResultModel
	gen       int
	quitting  bool
}

// NewApp creates the app on the landing scene.
func NewApp(opts Options) App {
	if opts.GameID == "" {
		opts.GameID = catch.ID
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Config.TickRate <= 0 {
		opts.Config.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}

	title := opts.GameID
	for _, g := range registry.List() {
		if g.ID == opts.GameID {
			title = g.Title
		}
	}

	return App{
		opts:    opts,
		keys:    NewKeyMapper(),
		render:  NewRenderer(opts.Renderer),
		scene:   SceneLanding,
		width:   opts.Width,
		height:  opts.Height,
		landing: NewLandingModel(title, opts.Width, opts.Height),
	}
}

// Init loads the session and the banner.
func (m App) Init() tea.Cmd {
	if m.opts.Backend == nil {
		return nil
	}
	return tea.Batch(m.openCmd(), m.siteCmd(), m.boardCmd())
}

func (m App) openCmd() tea.Cmd {
	b := m.opts.Backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		return openedMsg{id: b.Open(ctx)}
	}
}

func (m App) siteCmd() tea.Cmd {
	b := m.opts.Backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		return siteMsg{site: b.Site(ctx)}
	}
}

func (m App) boardCmd() tea.Cmd {
	b := m.opts.Backend
	if b == nil {
		return func() tea.Msg { return boardMsg{} }
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		rows, total, err := b.Leaderboard(ctx, leaderboardSize)
		return boardMsg{rows: rows, total: total, err: err}
	}
}

// Update handles messages and updates the model state.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case openedMsg:
		m.sessionID = msg.id
		m.opts.Logger.Debug("session ready", "session", msg.id)
		return m, nil

	case siteMsg:
		m.landing.SetSite(msg.site)
		return m, nil

	case boardMsg:
		if msg.err == nil {
			best := 0
			for _, r := range msg.rows {
				best = max(best, r.Score)
			}
			m.landing.SetBest(best)
		}
		if m.scene == SceneResult {
			m.result.SetLeaderboard(msg.rows, msg.total, msg.err)
		}
		return m, nil

	case TickMsg:
		if m.scene != SceneGame || msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg.Time)

	case tea.FocusMsg:
		if m.scene == SceneGame {
			m.game.focus(true)
		}
		return m, nil

	case tea.BlurMsg:
		if m.scene == SceneGame {
			m.game.focus(false)
		}
		return m, nil

	case tea.MouseMsg:
		if m.scene == SceneGame {
			m.game.mouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.scene == SceneResult {
		var cmd tea.Cmd
		m.result, _, cmd = m.result.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes key presses to the active scene.
func (m App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.scene {
	case SceneGame:
		return m.handleGameKey(msg)
	case SceneResult:
		var (
			action ResultAction
			cmd    tea.Cmd
		)
		m.result, action, cmd = m.result.Update(msg)
		switch action {
		case ResultQuit:
			return m.quit()
		case ResultAgain:
			return m.startGame()
		case ResultBack:
			m.scene = SceneLanding
			return m, nil
		}
		return m, cmd
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		return m.quit()
	case action == core.ActionConfirm, action == core.ActionRestart:
		return m.startGame()
	case action == core.ActionMute:
		m.toggleMute()
	}
	return m, nil
}

func (m App) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.game.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		return m.quit()
	case action == core.ActionPause:
		m.game.togglePause()
	case action == core.ActionMute:
		m.toggleMute()
	case action == core.ActionRestart:
		m.game.close()
		m.game = nil
		return m.startGame()
	case action == core.ActionBack:
		m.game.close()
		m.game = nil
		m.scene = SceneLanding
		return m, m.boardCmd()
	default:
		m.game.key(msg, m.keys, time.Now())
	}
	return m, nil
}

func (m App) toggleMute() {
	if m.opts.Audio == nil {
		return
	}
	muted := m.opts.Audio.ToggleMute()
	if m.game != nil {
		m.game.muted = muted
	}
}

// handleResize processes window resize events.
func (m App) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.landing.Resize(msg.Width, msg.Height)
	m.result.Resize(msg.Width, msg.Height)
	if m.game != nil {
		m.game.resize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick runs one frame and follows the game's navigation requests.
func (m App) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	next := m.game.frame(now)
	if next == "" {
		return m, tickCmd(m.opts.Config.TickRate, m.gen)
	}

	score := m.game.state().Score
	m.game.close()
	m.game = nil

	if next != SceneResult {
		m.opts.Logger.Warn("unknown scene, returning to landing", "scene", next)
		m.scene = SceneLanding
		return m, m.boardCmd()
	}
	m.scene = SceneResult
	m.result = NewResultModel(score, m.width, m.height)
	return m, m.boardCmd()
}

// startGame creates a fresh game run.
func (m App) startGame() (tea.Model, tea.Cmd) {
	g, err := newGameScene(m.opts, m.width, m.height)
	if err != nil {
		m.opts.Logger.Error("cannot start game", "error", err)
		m.landing.SetError("Could not start the game: " + err.Error())
		m.scene = SceneLanding
		return m, nil
	}
	m.landing.SetError("")
	m.game = g
	m.gen++
	m.scene = SceneGame
	return m, tickCmd(m.opts.Config.TickRate, m.gen)
}

func (m App) quit() (tea.Model, tea.Cmd) {
	if m.game != nil {
		m.game.close()
		m.game = nil
	}
	m.quitting = true
	return m, tea.Quit
}

// Scene returns the active scene name.
func (m App) Scene() string {
	return m.scene
}

// View renders the current state to a string for display.
func (m App) View() string {
	if m.quitting {
		return ""
	}
	switch m.scene {
	case SceneGame:
		return m.game.view(m.render)
	case SceneResult:
		return m.result.View(m.render)
	}
	return m.landing.View(m.render)
}

// Run starts the Bubble Tea program and blocks until the player quits or
// ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(
		NewApp(opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drag to move the catcher
		tea.WithReportFocus(),     // Auto-pause when the terminal loses focus
	)

	_, err := p.Run()
	return err
}
