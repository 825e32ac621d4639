package catch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/core"
	"github.com/vovakirdan/birthday-arcade/internal/sched"
)

const frame = 16 * time.Millisecond

// testCanvas records draw calls.
type testCanvas struct {
	w, h    float64
	clears  int
	circles int
	sprites int
	rects   []core.Rect
	labels  []string
}

func (c *testCanvas) Size() (float64, float64)           { return c.w, c.h }
func (c *testCanvas) Clear(core.Color)                   { c.clears++ }
func (c *testCanvas) FillRect(r core.Rect, _ core.Color) { c.rects = append(c.rects, r) }
func (c *testCanvas) FillCircle(core.Circle, core.Color) { c.circles++ }
func (c *testCanvas) DrawLabel(_, _ float64, text string, _ core.Color) {
	c.labels = append(c.labels, text)
}

func (c *testCanvas) DrawSprite(s core.Sprite, _ core.Rect) bool {
	if _, ok := s.(testSprite); !ok {
		return false
	}
	c.sprites++
	return true
}

type testSprite struct {
	name string
}

func (s testSprite) Name() string { return s.name }
func (s testSprite) Loaded() bool { return true }

// testLoader fails for the names listed in fail.
type testLoader struct {
	fail map[string]bool
}

func (l testLoader) LoadSprite(_ context.Context, path string) (core.Sprite, error) {
	if l.fail[path] {
		return nil, errors.New("decode failed")
	}
	return testSprite{name: path}, nil
}

type testDisplay struct {
	score    int
	timeLeft int
	paused   bool
	updates  int
}

func (d *testDisplay) SetScore(s int)    { d.score = s; d.updates++ }
func (d *testDisplay) SetTimeLeft(t int) { d.timeLeft = t }
func (d *testDisplay) ShowPaused(p bool) { d.paused = p }

type testAudio struct {
	background []string
	effects    []string
	pauses     int
	resumes    int
	stops      int
}

func (a *testAudio) PlayBackground(name string) { a.background = append(a.background, name) }
func (a *testAudio) PlayEffect(name string)     { a.effects = append(a.effects, name) }
func (a *testAudio) PauseBackground()           { a.pauses++ }
func (a *testAudio) ResumeBackground()          { a.resumes++ }
func (a *testAudio) StopAll()                   { a.stops++ }

func (a *testAudio) count(name string) int {
	n := 0
	for _, e := range a.effects {
		if e == name {
			n++
		}
	}
	return n
}

type testStore struct {
	mu      sync.Mutex
	err     error
	patches []map[string]any
	scores  []int
	metas   []map[string]any
}

func (s *testStore) UpdateSession(_ context.Context, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patches = append(s.patches, patch)
	return s.err
}

func (s *testStore) SubmitScore(_ context.Context, score int, meta map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = append(s.scores, score)
	s.metas = append(s.metas, meta)
	return s.err
}

type testNavigator struct {
	scenes []string
}

func (n *testNavigator) NavigateTo(scene string) { n.scenes = append(n.scenes, scene) }

type testPointer struct{}

func (testPointer) ToLocal(x, y float64) (float64, float64, bool) { return x, y, true }

// harness is a fully wired session on a virtual clock.
type harness struct {
	s       *Session
	loop    *sched.Loop
	canvas  *testCanvas
	display *testDisplay
	audio   *testAudio
	store   *testStore
	nav     *testNavigator
}

func newHarness(t *testing.T, mutate func(*config.CatchConfig)) *harness {
	t.Helper()

	cfg := config.DefaultCatchConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	h := &harness{
		loop:    sched.NewLoop(),
		canvas:  &testCanvas{w: 800, h: 600},
		display: &testDisplay{},
		audio:   &testAudio{},
		store:   &testStore{},
		nav:     &testNavigator{},
	}
	h.s = NewSession(cfg)
	h.s.persist = func(fn func()) { fn() }
	h.s.now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }

	env := core.Env{
		Canvas:    h.canvas,
		Scheduler: h.loop,
		Pointer:   testPointer{},
		Sprites:   testLoader{},
		Display:   h.display,
		Audio:     h.audio,
		Session:   h.store,
		Scores:    h.store,
		Navigator: h.nav,
		Config:    core.RuntimeConfig{Seed: 42, Device: "test", TickRate: 60},
	}
	if err := h.s.Setup(context.Background(), env); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	return h
}

// run advances the clock by d in frame-sized steps.
func (h *harness) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		h.loop.Advance(frame)
	}
}

// testWorld builds a bare world with a catcher at the bottom center.
func testWorld(w, h float64) *world {
	return &world{
		width:   w,
		height:  h,
		catcher: core.Rect{X: w/2 - 60, Y: h - 100, W: 120, H: 60},
		active:  true,
	}
}

// testLoop builds a loop on a bare world with no-op collaborators.
func testLoop(w *world, in *core.InputBinder) (*GameLoop, *testCanvas, *testDisplay, *testAudio) {
	canvas := &testCanvas{w: w.width, h: w.height}
	display := &testDisplay{}
	audio := &testAudio{}
	l := &GameLoop{
		w:       w,
		group:   sched.NewGroup(sched.NewLoop()),
		canvas:  canvas,
		input:   in,
		audio:   audio,
		display: display,
		theme:   newTheme(config.DefaultProfile().Theme),
		keyStep: 10,
	}
	return l, canvas, display, audio
}
