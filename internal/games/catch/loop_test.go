package catch

import (
	"testing"

	"github.com/vovakirdan/birthday-arcade/internal/core"
)

func TestFrameCatchScoresOnce(t *testing.T) {
	w := testWorld(800, 600)
	l, _, display, audio := testLoop(w, core.NewInputBinder())

	// Directly above the catcher, overlapping after one step
	w.kitties = []*Kitty{{Pos: core.Vec{X: 400, Y: 490}, Radius: 10, Speed: 2}}

	l.Frame()
	if w.score != 1 {
		t.Errorf("score = %d, expected 1", w.score)
	}
	if len(w.kitties) != 0 {
		t.Errorf("live kitties = %d, expected 0", len(w.kitties))
	}
	if display.score != 1 {
		t.Errorf("display score = %d, expected 1", display.score)
	}
	if audio.count(CueCollect) != 1 {
		t.Errorf("collect cue played %d times, expected 1", audio.count(CueCollect))
	}

	l.Frame()
	if w.score != 1 {
		t.Errorf("score changed to %d without a catch", w.score)
	}
}

func TestFrameCullsBelowBottom(t *testing.T) {
	w := testWorld(800, 600)
	l, _, _, _ := testLoop(w, core.NewInputBinder())

	w.kitties = []*Kitty{
		{Pos: core.Vec{X: 50, Y: 609}, Radius: 10, Speed: 2},  // culled: 611-10 > 600
		{Pos: core.Vec{X: 50, Y: 590}, Radius: 10, Speed: 2},  // still visible
		{Pos: core.Vec{X: 700, Y: 700}, Radius: 10, Speed: 2}, // culled
	}
	keep := w.kitties[1]

	l.Frame()
	if w.score != 0 {
		t.Errorf("score = %d, culling must not score", w.score)
	}
	if len(w.kitties) != 1 || w.kitties[0] != keep {
		t.Errorf("live kitties = %v, expected only the visible one", w.kitties)
	}
}

func TestFrameCatchWinsOverCull(t *testing.T) {
	w := testWorld(800, 100)
	// Catcher hanging past the bottom edge
	w.catcher = core.Rect{X: 0, Y: 90, W: 50, H: 50}
	l, _, _, _ := testLoop(w, core.NewInputBinder())

	w.kitties = []*Kitty{{Pos: core.Vec{X: 25, Y: 108}, Radius: 5, Speed: 2}}

	l.Frame()
	if w.score != 1 {
		t.Errorf("score = %d, expected exactly 1", w.score)
	}
	if len(w.kitties) != 0 {
		t.Errorf("live kitties = %d, expected removal in the same frame", len(w.kitties))
	}
}

func TestFrameRemovalPreservesOrder(t *testing.T) {
	w := testWorld(800, 600)
	l, _, _, _ := testLoop(w, core.NewInputBinder())

	a := &Kitty{Pos: core.Vec{X: 100, Y: 100}, Radius: 10, Speed: 1}
	b := &Kitty{Pos: core.Vec{X: 400, Y: 495}, Radius: 10, Speed: 1} // caught
	c := &Kitty{Pos: core.Vec{X: 200, Y: 100}, Radius: 10, Speed: 1}
	d := &Kitty{Pos: core.Vec{X: 50, Y: 800}, Radius: 10, Speed: 1} // culled
	e := &Kitty{Pos: core.Vec{X: 300, Y: 100}, Radius: 10, Speed: 1}
	w.kitties = []*Kitty{a, b, c, d, e}

	l.Frame()

	expected := []*Kitty{a, c, e}
	if len(w.kitties) != len(expected) {
		t.Fatalf("live kitties = %d, expected %d", len(w.kitties), len(expected))
	}
	for i := range expected {
		if w.kitties[i] != expected[i] {
			t.Errorf("kitty %d out of order", i)
		}
	}
}

func TestWallAfterShrink(t *testing.T) {
	w := testWorld(800, 600)
	l, _, _, _ := testLoop(w, core.NewInputBinder())
	k := &Kitty{Pos: core.Vec{X: 700, Y: 100}, Radius: 10, Speed: 1, Drift: -0.2}
	w.kitties = []*Kitty{k}

	w.width = 400
	prev := k.Pos.X
	for i := 0; i < 5; i++ {
		l.Frame()
		if k.Drift >= 0 {
			t.Fatalf("frame %d: Drift = %v, expected it to stay inward", i, k.Drift)
		}
		if k.Pos.X > w.width-k.Radius || k.Pos.X > prev {
			t.Fatalf("frame %d: X = %v, expected <= %v and not moving out", i, k.Pos.X, w.width-k.Radius)
		}
		prev = k.Pos.X
	}
}

func TestWallReflection(t *testing.T) {
	tests := []struct {
		name      string
		x, drift  float64
		wantX     float64
		wantDrift float64
	}{
		{"left wall", 10.1, -0.2, 10, 0.2},
		{"right wall", 789.9, 0.2, 790, -0.2},
		{"open space", 400, 0.5, 400.5, 0.5},
		{"outside right moving in", 900, -0.2, 790, -0.2},
		{"outside left moving in", -50, 0.2, 10, 0.2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testWorld(800, 600)
			l, _, _, _ := testLoop(w, core.NewInputBinder())
			k := &Kitty{Pos: core.Vec{X: tc.x, Y: 100}, Radius: 10, Speed: 1, Drift: tc.drift}
			w.kitties = []*Kitty{k}

			l.Frame()

			if k.Pos.X != tc.wantX {
				t.Errorf("X = %v, expected %v", k.Pos.X, tc.wantX)
			}
			if k.Drift != tc.wantDrift {
				t.Errorf("Drift = %v, expected %v", k.Drift, tc.wantDrift)
			}
			if k.Pos.X < k.Radius || k.Pos.X > w.width-k.Radius {
				t.Errorf("X = %v escaped the walls", k.Pos.X)
			}
		})
	}
}

func TestCatcherMovement(t *testing.T) {
	w := testWorld(800, 600)
	in := core.NewInputBinder()
	in.BindKeyboard()
	in.BindPointer(testPointer{})
	l, _, _, _ := testLoop(w, in)
	start := w.catcher.X

	in.KeyDown(core.KeyRight)
	l.Frame()
	if w.catcher.X != start+10 {
		t.Errorf("X = %v, expected %v after one right step", w.catcher.X, start+10)
	}

	// Pointer overrides held keys
	in.PointerMove(200, 300)
	l.Frame()
	if w.catcher.X != 200-60 {
		t.Errorf("X = %v, expected pointer-centred 140", w.catcher.X)
	}

	in.PointerEnd()
	in.KeyUp(core.KeyRight)
	in.KeyDown(core.KeyLeft)
	l.Frame()
	if w.catcher.X != 130 {
		t.Errorf("X = %v, expected 130 after one left step", w.catcher.X)
	}
}

func TestCatcherContainment(t *testing.T) {
	w := testWorld(800, 600)
	in := core.NewInputBinder()
	in.BindKeyboard()
	in.BindPointer(testPointer{})
	l, _, _, _ := testLoop(w, in)

	in.KeyDown(core.KeyLeft)
	for i := 0; i < 100; i++ {
		l.Frame()
		if w.catcher.X < 0 || w.catcher.Right() > w.width {
			t.Fatalf("catcher escaped: %+v", w.catcher)
		}
	}
	if w.catcher.X != 0 {
		t.Errorf("X = %v, expected clamped to 0", w.catcher.X)
	}

	in.PointerMove(5000, 0)
	l.Frame()
	if w.catcher.X != 800-120 {
		t.Errorf("X = %v, expected clamped to 680", w.catcher.X)
	}
}

func TestFrameDrawsFallbacks(t *testing.T) {
	w := testWorld(800, 600)
	l, canvas, _, _ := testLoop(w, core.NewInputBinder())

	w.kitties = []*Kitty{
		{Pos: core.Vec{X: 100, Y: 100}, Radius: 10, Speed: 1, Sprite: testSprite{name: "ok"}},
		{Pos: core.Vec{X: 200, Y: 100}, Radius: 10, Speed: 1, Sprite: missingSprite{name: "gone"}},
		{Pos: core.Vec{X: 300, Y: 100}, Radius: 10, Speed: 1},
	}

	l.Frame()

	if canvas.clears != 1 {
		t.Errorf("Clear called %d times, expected 1", canvas.clears)
	}
	if canvas.sprites != 1 {
		t.Errorf("sprites drawn = %d, expected 1", canvas.sprites)
	}
	if canvas.circles != 2 {
		t.Errorf("fallback discs drawn = %d, expected 2", canvas.circles)
	}
	if len(canvas.rects) != 1 {
		t.Errorf("fallback catcher rects = %d, expected 1", len(canvas.rects))
	}
}

func TestScoreMonotonic(t *testing.T) {
	h := newHarness(t, nil)
	h.s.Start()

	last := 0
	for i := 0; i < 2000; i++ {
		h.loop.Advance(frame)
		score := h.s.State().Score
		if score < last {
			t.Fatalf("score went down from %d to %d", last, score)
		}
		last = score
	}
}
