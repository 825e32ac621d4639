package catch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/core"
	"github.com/vovakirdan/birthday-arcade/internal/sched"
)

// Audio track names.
const (
	TrackBackground = "bg_game_loop"
	CueCollect      = "sfx_collect_chime"
	CueTick         = "sfx_timer_tick"
	CueSuccess      = "sfx_success_jingle"
)

// ErrMissingCapability is returned by Setup when a required collaborator, or
// an optional one in strict mode, is absent.
var ErrMissingCapability = errors.New("catch: missing capability")

// Session wires the game components to their collaborators and drives the
// setup, start, end and cleanup lifecycle.
type Session struct {
	cfg     config.CatchConfig
	profile config.Profile
	env     core.Env
	input   *core.InputBinder
	w       *world

	group   *sched.Group
	spawner *Spawner
	loop    *GameLoop
	timer   *Countdown
	pause   *PauseController
	sprites SpriteSet

	display   core.Display
	audio     core.AudioPlayer
	store     core.SessionStore
	scores    core.ScoreSubmitter
	navigator core.Navigator
	logger    core.Logger

	// persist runs the persistence step off the game thread.
	persist func(func())
	now     func() time.Time

	ready   bool
	started bool
	ended   bool
	cleaned bool
}

// NewSession creates a session using cfg. Call Setup before Start.
func NewSession(cfg config.CatchConfig) *Session {
	return &Session{
		cfg:     cfg,
		input:   core.NewInputBinder(),
		w:       &world{},
		persist: func(fn func()) { go fn() },
		now:     time.Now,
	}
}

// Input returns the binder platforms forward raw input events to.
func (s *Session) Input() *core.InputBinder {
	return s.input
}

// Profile returns the gameplay profile chosen during Setup.
func (s *Session) Profile() config.Profile {
	return s.profile
}

// Setup validates collaborators, selects the device profile, loads sprites,
// lays out the catcher, binds input and publishes the initial HUD values.
func (s *Session) Setup(ctx context.Context, env core.Env) error {
	if s.ready {
		return nil
	}
	if env.Canvas == nil || env.Scheduler == nil {
		return fmt.Errorf("%w: canvas and scheduler are required", ErrMissingCapability)
	}

	s.env = env
	s.logger = env.Logger
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	w, _ := env.Canvas.Size()
	s.profile = s.cfg.SelectProfile(config.Probe{Touch: env.Config.Touch, Width: w})

	if env.Config.Strict {
		if err := s.checkStrict(); err != nil {
			return err
		}
	}
	s.bindCollaborators()

	seed := env.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	s.sprites = LoadSprites(ctx, env.Sprites, s.cfg.Assets, s.logger)
	s.group = sched.NewGroup(env.Scheduler)
	diff := config.NewDifficultyManager(s.cfg.Difficulty)

	s.spawner = newSpawner(s.w, s.group, rng, s.profile, diff, s.sprites.Kitties)
	s.loop = &GameLoop{
		w:       s.w,
		group:   s.group,
		canvas:  env.Canvas,
		input:   s.input,
		audio:   s.audio,
		display: s.display,
		theme:   newTheme(s.profile.Theme),
		keyStep: s.profile.Catcher.KeyStep,
		catcher: s.sprites.Catcher,
	}
	s.timer = newCountdown(s.w, s.group, s.profile.Countdown.Seconds, s.profile.Countdown.LowTime, s.onTick, s.end)
	s.pause = &PauseController{
		w:       s.w,
		loop:    s.loop,
		timer:   s.timer,
		spawner: s.spawner,
		audio:   s.audio,
		display: s.display,
	}

	s.layout()

	s.input.BindKeyboard()
	s.input.BindPointer(env.Pointer)
	if s.profile.TouchButtons {
		s.input.BindTouchButtons(env.Touch)
	}

	s.display.SetScore(s.w.score)
	s.display.SetTimeLeft(s.w.timeLeft)

	s.ready = true
	s.logger.Debug("game set up", "profile", config.ProfileName(config.Probe{Touch: env.Config.Touch, Width: w}),
		"kitties", len(s.sprites.Kitties), "seed", seed)
	return nil
}

func (s *Session) checkStrict() error {
	if s.env.Pointer == nil {
		return fmt.Errorf("%w: pointer surface", ErrMissingCapability)
	}
	if s.env.Display == nil {
		return fmt.Errorf("%w: display", ErrMissingCapability)
	}
	if s.profile.TouchButtons && s.env.Touch == nil {
		return fmt.Errorf("%w: touch controls", ErrMissingCapability)
	}
	return nil
}

func (s *Session) bindCollaborators() {
	s.display = s.env.Display
	if s.display == nil {
		s.display = nopDisplay{}
	}
	s.audio = s.env.Audio
	if s.audio == nil {
		s.audio = nopAudio{}
	}
	s.store = s.env.Session
	if s.store == nil {
		s.store = nopStore{}
	}
	s.scores = s.env.Scores
	if s.scores == nil {
		s.scores = nopStore{}
	}
	s.navigator = s.env.Navigator
	if s.navigator == nil {
		s.navigator = nopNavigator{}
	}
}

// layout reads the canvas size and recomputes the catcher geometry.
func (s *Session) layout() {
	w, h := s.env.Canvas.Size()
	s.w.width, s.w.height = w, h
	s.w.catcher = layoutCatcher(s.profile.Catcher, s.w.catcher, w, h)
}

// Start arms the countdown, the spawner and the frame loop and starts the
// background track. Only the first call has an effect.
func (s *Session) Start() {
	if !s.ready || s.started || s.cleaned {
		return
	}
	s.started = true
	s.w.active = true

	s.spawner.MarkStart()
	s.timer.Start()
	s.spawner.Start()
	s.loop.Start()
	s.audio.PlayBackground(TrackBackground)
	s.logger.Info("game started", "seconds", s.w.timeLeft)
}

// Pause pauses a running game.
func (s *Session) Pause() {
	if s.ready {
		s.pause.Pause()
	}
}

// Resume resumes a paused game.
func (s *Session) Resume() {
	if s.ready {
		s.pause.Resume()
	}
}

// TogglePause flips between paused and running.
func (s *Session) TogglePause() {
	if s.ready {
		s.pause.Toggle()
	}
}

// VisibilityChanged auto-pauses when the game loses visibility or focus.
func (s *Session) VisibilityChanged(visible bool) {
	if s.ready {
		s.pause.VisibilityChanged(visible)
	}
}

// Resize recomputes geometry after the canvas changed size.
func (s *Session) Resize() {
	if s.ready {
		s.layout()
	}
}

// OrientationChanged drops held input that may never be released and
// recomputes geometry.
func (s *Session) OrientationChanged() {
	s.input.ResetTransient()
	s.Resize()
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    s.w.score,
		TimeLeft: s.w.timeLeft,
		Active:   s.w.active,
		Paused:   s.w.paused,
		GameOver: s.ended,
	}
}

func (s *Session) onTick(left int, low bool) {
	s.display.SetTimeLeft(left)
	if low {
		s.audio.PlayEffect(CueTick)
	}
}

// end halts play, persists the score in the background, then plays the
// success cue and navigates to the result scene after the display delay.
func (s *Session) end() {
	if s.ended {
		return
	}
	s.ended = true
	s.w.active = false
	s.loop.Stop()
	s.spawner.Stop()

	score := s.w.score
	completedAt := s.now().UTC()
	s.logger.Info("game over", "score", score)

	post := s.group.Post
	s.persist(func() {
		s.saveScore(score, completedAt)
		post(s.showResult)
	})
}

// saveScore runs off the game thread. Failures are logged and swallowed.
func (s *Session) saveScore(score int, completedAt time.Time) {
	timeout := s.cfg.Session.PersistTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	patch := map[string]any{
		"game": map[string]any{
			"score":       score,
			"completedAt": completedAt.Format(time.RFC3339Nano),
		},
	}
	if err := s.store.UpdateSession(ctx, patch); err != nil {
		s.logger.Warn("could not update session", "error", err)
	}

	meta := map[string]any{
		"device": s.env.Config.Device,
		"time":   completedAt.Format(time.RFC3339Nano),
	}
	if err := s.scores.SubmitScore(ctx, score, meta); err != nil {
		s.logger.Warn("could not submit score", "error", err)
	}
}

func (s *Session) showResult() {
	if s.cleaned {
		return
	}
	s.audio.PlayEffect(CueSuccess)

	scene := s.cfg.Session.ResultScene
	if scene == "" {
		scene = "result"
	}
	s.group.After(s.cfg.Session.ResultDelay, func() {
		if !s.cleaned {
			s.navigator.NavigateTo(scene)
		}
	})
}

// Cleanup halts everything, releases input bindings and stops audio.
// It is safe to call more than once and at any point of the lifecycle.
func (s *Session) Cleanup() {
	if s.cleaned {
		return
	}
	s.cleaned = true
	s.w.active = false
	if s.group != nil {
		s.group.CancelAll()
	}
	if s.loop != nil {
		s.loop.pending = false
	}
	if s.spawner != nil {
		s.spawner.armed = false
	}
	s.input.UnbindAll()
	if s.audio != nil {
		s.audio.StopAll()
	}
}
