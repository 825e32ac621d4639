package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/birthday-arcade/internal/core"
	"github.com/vovakirdan/birthday-arcade/internal/platform"
)

// hudRows is the number of terminal rows below the playfield.
const hudRows = 1

// setupTimeout bounds sprite loading during game setup.
const setupTimeout = 5 * time.Second

// gameScene runs one game in the terminal. All methods run on the Bubble Tea
// update goroutine, which is the game thread.
type gameScene struct {
	run    *platform.Run
	screen *core.Screen
	latch  *holdLatch
	muted  bool
	fps    int
	last   time.Time
}

// newGameScene creates, sets up and starts a game sized to the terminal.
func newGameScene(opts Options, width, height int) (*gameScene, error) {
	screen := core.NewScreen(max(width, 1), max(height-hudRows, 1))

	ro := platform.RunOptions{
		GameID:  opts.GameID,
		Canvas:  screen,
		Pointer: screen,
		Sprites: opts.Sprites,
		Backend: opts.Backend,
		Logger:  opts.Logger,
		Config:  opts.Config,
	}
	if opts.Audio != nil {
		ro.Audio = opts.Audio
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()
	run, err := platform.StartRun(ctx, ro)
	if err != nil {
		return nil, err
	}

	g := &gameScene{
		run:    run,
		screen: screen,
		latch:  newHoldLatch(run.Input()),
		fps:    opts.Config.TickRate,
	}
	if opts.Audio != nil {
		g.muted = opts.Audio.Muted()
	}
	return g, nil
}

// frame advances the game by the time since the previous frame and returns
// the scene the game asked for, if any.
func (g *gameScene) frame(now time.Time) string {
	dt := frameStep(g.last, now, g.fps)
	g.last = now
	g.latch.Expire(now)
	return g.run.Frame(dt)
}

// key handles a key press that is not a global action.
func (g *gameScene) key(msg tea.KeyMsg, km *KeyMapper, now time.Time) {
	if k := km.MapDirection(msg); k != core.KeyNone {
		// Keys take over from a pointer that never reported its release
		g.run.Input().PointerEnd()
		g.latch.Press(k, now)
	}
}

// mouse forwards drags on the playfield as pointer input.
func (g *gameScene) mouse(msg tea.MouseMsg) {
	in := g.run.Input()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			in.PointerDown(float64(msg.X), float64(msg.Y))
		}
	case tea.MouseActionMotion:
		if msg.Button != tea.MouseButtonNone {
			in.PointerMove(float64(msg.X), float64(msg.Y))
		}
	case tea.MouseActionRelease:
		in.PointerEnd()
	}
}

func (g *gameScene) resize(width, height int) {
	g.screen.Resize(max(width, 1), max(height-hudRows, 1))
	g.run.Game.Resize()
}

func (g *gameScene) focus(visible bool) {
	if !visible {
		g.latch.ReleaseAll()
	}
	g.run.Game.VisibilityChanged(visible)
}

func (g *gameScene) togglePause() {
	g.latch.ReleaseAll()
	g.run.Game.TogglePause()
}

func (g *gameScene) state() core.GameState {
	return g.run.State()
}

func (g *gameScene) close() {
	g.run.Close()
}

func (g *gameScene) view(r *Renderer) string {
	return r.Screen(g.screen) + "\n" + hudView(r, g.run.HUD, g.muted, g.screen.Width())
}

// saveScreenshot saves the current playfield as plain text.
func (g *gameScene) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".birthday", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", g.run.Game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(g.screen.String()), 0o600)
}
