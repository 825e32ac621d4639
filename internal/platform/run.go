package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/birthday-arcade/internal/core"
	"github.com/vovakirdan/birthday-arcade/internal/registry"
	"github.com/vovakirdan/birthday-arcade/internal/sched"
)

// Scene names. The game navigates to SceneResult when it ends.
const (
	SceneLanding = "landing"
	SceneGame    = "game"
	SceneResult  = "result"
)

// HUD implements core.Display by keeping the latest values for the front
// end to draw.
type HUD struct {
	Score    int
	TimeLeft int
	Paused   bool
}

func (h *HUD) SetScore(score int)      { h.Score = score }
func (h *HUD) SetTimeLeft(seconds int) { h.TimeLeft = seconds }
func (h *HUD) ShowPaused(paused bool)  { h.Paused = paused }

// Navigator implements core.Navigator. The game calls it on the frame loop;
// the front end takes the request after the frame.
type Navigator struct {
	next string
}

func (n *Navigator) NavigateTo(scene string) {
	n.next = scene
}

// Take returns and clears the pending scene.
func (n *Navigator) Take() string {
	s := n.next
	n.next = ""
	return s
}

// RunOptions are the host capabilities a game run is wired to.
type RunOptions struct {
	GameID  string
	Canvas  core.Canvas
	Pointer core.PointerSurface
	Touch   core.TouchControls
	Sprites core.SpriteLoader
	Audio   core.AudioPlayer
	Backend Backend
	Logger  core.Logger
	Config  core.RuntimeConfig
}

// Run is one game on its own scheduler. All methods must be called from the
// host's game thread.
type Run struct {
	Game registry.Game
	Loop *sched.Loop
	HUD  *HUD
	nav  *Navigator
}

// StartRun creates, sets up and starts a game. ctx bounds setup.
func StartRun(ctx context.Context, o RunOptions) (*Run, error) {
	game, err := registry.Create(o.GameID)
	if err != nil {
		return nil, err
	}

	r := &Run{
		Game: game,
		Loop: sched.NewLoop(),
		HUD:  &HUD{},
		nav:  &Navigator{},
	}

	env := core.Env{
		Canvas:    o.Canvas,
		Scheduler: r.Loop,
		Pointer:   o.Pointer,
		Touch:     o.Touch,
		Sprites:   o.Sprites,
		Display:   r.HUD,
		Audio:     o.Audio,
		Navigator: r.nav,
		Logger:    o.Logger,
		Config:    o.Config,
	}
	if o.Backend != nil {
		env.Session = o.Backend
		env.Scores = o.Backend
	}

	if err := game.Setup(ctx, env); err != nil {
		game.Cleanup()
		return nil, fmt.Errorf("platform: cannot set up %s: %w", o.GameID, err)
	}
	game.Start()
	return r, nil
}

// Frame advances the game clock by dt and returns the scene the game asked
// for, if any.
func (r *Run) Frame(dt time.Duration) string {
	r.Loop.Advance(dt)
	return r.nav.Take()
}

// State returns the game state.
func (r *Run) State() core.GameState {
	return r.Game.State()
}

// Input returns the game's input binder.
func (r *Run) Input() *core.InputBinder {
	return r.Game.Input()
}

// Close cleans the game up. Safe to call more than once.
func (r *Run) Close() {
	r.Game.Cleanup()
}
