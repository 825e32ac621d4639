package window

import (
	"testing"

	"github.com/vovakirdan/birthday-arcade/internal/core"
)

func newTestTracker(touch bool) (*touchTracker, *core.InputBinder) {
	s := &surface{}
	s.setSize(400, 800, 1)
	btns := &touchButtons{enabled: touch}
	btns.layout(s.w, s.h)

	b := core.NewInputBinder()
	b.BindKeyboard()
	b.BindPointer(s)
	b.BindTouchButtons(btns)
	return newTouchTracker(b, s, btns), b
}

func TestTouchButtonsLayout(t *testing.T) {
	b := &touchButtons{enabled: true}
	b.layout(400, 800)

	if b.left.X != buttonMargin {
		t.Errorf("left.X = %v, expected %v", b.left.X, buttonMargin)
	}
	if b.right.Right() != 400-buttonMargin {
		t.Errorf("right.Right() = %v, expected %v", b.right.Right(), 400-buttonMargin)
	}
	if b.left.Bottom() != 800-buttonMargin {
		t.Errorf("left.Bottom() = %v, expected %v", b.left.Bottom(), 800-buttonMargin)
	}
}

func TestTouchButtonsHit(t *testing.T) {
	b := &touchButtons{enabled: true}
	b.layout(400, 800)
	lc, rc := b.left.Center(), b.right.Center()

	tests := []struct {
		name     string
		x, y     float64
		expected core.Button
		hit      bool
	}{
		{"left button", lc.X, lc.Y, core.ButtonLeft, true},
		{"right button", rc.X, rc.Y, core.ButtonRight, true},
		{"middle of the canvas", 200, 400, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			btn, hit := b.hit(tt.x, tt.y)
			if hit != tt.hit || btn != tt.expected {
				t.Errorf("hit() = (%v, %v), expected (%v, %v)", btn, hit, tt.expected, tt.hit)
			}
		})
	}

	b.enabled = false
	if _, hit := b.hit(lc.X, lc.Y); hit {
		t.Error("hit() on disabled buttons = true, expected false")
	}
	if b.Has(core.ButtonLeft) {
		t.Error("Has() on disabled buttons = true, expected false")
	}
}

func TestTouchHoldsButton(t *testing.T) {
	tr, b := newTestTracker(true)
	c := tr.buttons.left.Center()

	tr.press(1, c.X, c.Y)
	if !b.State().Left {
		t.Fatal("Left = false after touching the left button, expected true")
	}
	if b.State().PointerActive {
		t.Error("PointerActive = true for a button touch, expected false")
	}

	tr.move(1, 200, 400)
	if !b.State().Left {
		t.Error("Left = false after sliding off the button, expected true until release")
	}

	tr.release(1)
	if b.State().Left {
		t.Error("Left = true after release, expected false")
	}
}

func TestTouchDrag(t *testing.T) {
	tr, b := newTestTracker(true)

	tr.press(1, 100, 300)
	st := b.State()
	if !st.PointerActive || st.PointerX != 100 {
		t.Fatalf("state = %+v, expected active pointer at x=100", st)
	}

	// A second finger does not steal the drag.
	tr.press(2, 300, 300)
	tr.move(2, 350, 300)
	if got := b.State().PointerX; got != 100 {
		t.Errorf("PointerX = %v after second touch, expected 100", got)
	}

	tr.move(1, 150, 300)
	if got := b.State().PointerX; got != 150 {
		t.Errorf("PointerX = %v, expected 150", got)
	}

	tr.release(2)
	if !b.State().PointerActive {
		t.Error("PointerActive = false after releasing the second touch, expected true")
	}
	tr.release(1)
	if b.State().PointerActive {
		t.Error("PointerActive = true after releasing the dragging touch, expected false")
	}
}

func TestTouchCancelAll(t *testing.T) {
	tr, b := newTestTracker(true)
	c := tr.buttons.right.Center()

	tr.press(1, c.X, c.Y)
	tr.press(2, 200, 200)
	tr.cancelAll()

	st := b.State()
	if st.Right || st.PointerActive {
		t.Errorf("state = %+v after cancelAll, expected nothing held", st)
	}
	if tr.tracking(1) || tr.tracking(2) {
		t.Error("tracking() = true after cancelAll, expected false")
	}

	// A fresh touch may drag again.
	tr.press(3, 120, 200)
	if !b.State().PointerActive {
		t.Error("PointerActive = false for a new touch, expected true")
	}
}

func TestTouchWithoutButtons(t *testing.T) {
	tr, b := newTestTracker(false)
	c := tr.buttons.left.Center()

	tr.press(1, c.X, c.Y)
	st := b.State()
	if st.Left {
		t.Error("Left = true with buttons disabled, expected false")
	}
	if !st.PointerActive {
		t.Error("PointerActive = false, expected the touch to drag")
	}
}

func TestReleaseUnknownTouch(t *testing.T) {
	tr, b := newTestTracker(true)
	tr.release(42)
	if b.State() != (core.InputState{}) {
		t.Errorf("state = %+v, expected zero", b.State())
	}
}
