package window

import "github.com/vovakirdan/birthday-arcade/internal/core"

// touchTarget is what a touch started on.
type touchTarget struct {
	button   core.Button
	isButton bool
}

// touchTracker routes touches to the input binder. A touch that starts on
// a button holds that button until it ends; any other touch drags the
// catcher. Only the first dragging touch moves the pointer.
type touchTracker struct {
	binder  *core.InputBinder
	surface *surface
	buttons *touchButtons
	active  map[int]touchTarget
	dragger int
	drag    bool
}

func newTouchTracker(b *core.InputBinder, s *surface, btns *touchButtons) *touchTracker {
	return &touchTracker{binder: b, surface: s, buttons: btns, active: make(map[int]touchTarget)}
}

// press starts touch id at host coordinates.
func (t *touchTracker) press(id int, x, y float64) {
	if lx, ly, ok := t.surface.ToLocal(x, y); ok {
		if btn, hit := t.buttons.hit(lx, ly); hit {
			t.active[id] = touchTarget{button: btn, isButton: true}
			t.binder.ButtonDown(btn)
			return
		}
	}
	t.active[id] = touchTarget{}
	if !t.drag {
		t.drag, t.dragger = true, id
		t.binder.PointerDown(x, y)
	}
}

// move updates touch id.
func (t *touchTracker) move(id int, x, y float64) {
	if t.drag && id == t.dragger {
		t.binder.PointerMove(x, y)
	}
}

// release ends touch id.
func (t *touchTracker) release(id int) {
	target, ok := t.active[id]
	if !ok {
		return
	}
	delete(t.active, id)
	if target.isButton {
		t.binder.ButtonUp(target.button)
		return
	}
	if t.drag && id == t.dragger {
		t.drag = false
		t.binder.PointerEnd()
	}
}

// cancelAll ends every touch, as after focus loss or rotation.
func (t *touchTracker) cancelAll() {
	for id := range t.active {
		t.release(id)
	}
}

// tracking reports whether touch id is known.
func (t *touchTracker) tracking(id int) bool {
	_, ok := t.active[id]
	return ok
}
