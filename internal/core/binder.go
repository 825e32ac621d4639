package core

// InputBinder owns the InputState and the set of active input bindings.
// Platforms forward raw events to it; events for sources that are not bound
// are ignored. It is used from the game thread only.
type InputBinder struct {
	state    InputState
	keyboard bool
	surface  PointerSurface
	controls TouchControls
}

// NewInputBinder creates a binder with no active bindings.
func NewInputBinder() *InputBinder {
	return &InputBinder{}
}

// State returns a snapshot of the current input state.
func (b *InputBinder) State() InputState {
	return b.state
}

// BindKeyboard starts tracking arrow keys.
func (b *InputBinder) BindKeyboard() {
	b.keyboard = true
}

// BindPointer starts tracking pointer events on the given surface.
// A nil surface leaves pointer input unbound.
func (b *InputBinder) BindPointer(s PointerSurface) {
	if s == nil {
		return
	}
	b.surface = s
}

// BindTouchButtons starts tracking on-screen movement buttons.
// A nil control set leaves touch buttons unbound.
func (b *InputBinder) BindTouchButtons(c TouchControls) {
	if c == nil {
		return
	}
	b.controls = c
}

// UnbindAll drops every binding and resets the state.
// Safe to call repeatedly or before anything was bound.
func (b *InputBinder) UnbindAll() {
	b.keyboard = false
	b.surface = nil
	b.controls = nil
	b.state = InputState{}
}

// ResetTransient clears held movement and pointer activity, as needed after
// an orientation change when release events may never arrive.
func (b *InputBinder) ResetTransient() {
	b.state.Left = false
	b.state.Right = false
	b.state.PointerActive = false
}

// KeyDown records a held directional key. Repeats are idempotent.
func (b *InputBinder) KeyDown(k Key) {
	if b.keyboard {
		b.setKey(k, true)
	}
}

// KeyUp releases a directional key.
func (b *InputBinder) KeyUp(k Key) {
	if b.keyboard {
		b.setKey(k, false)
	}
}

func (b *InputBinder) setKey(k Key, held bool) {
	switch k {
	case KeyLeft:
		b.state.Left = held
	case KeyRight:
		b.state.Right = held
	case KeyUp:
		b.state.Up = held
	case KeyDown:
		b.state.Down = held
	}
}

// PointerMove records the pointer position in host coordinates.
func (b *InputBinder) PointerMove(x, y float64) {
	b.trackPointer(x, y)
}

// PointerDown records a press at the given host coordinates.
func (b *InputBinder) PointerDown(x, y float64) {
	b.trackPointer(x, y)
}

// PointerEnd handles release, leave and cancel events.
func (b *InputBinder) PointerEnd() {
	if b.surface == nil {
		return
	}
	b.state.PointerActive = false
}

func (b *InputBinder) trackPointer(x, y float64) {
	if b.surface == nil {
		return
	}
	lx, ly, ok := b.surface.ToLocal(x, y)
	if !ok {
		return
	}
	b.state.PointerX = lx
	b.state.PointerY = ly
	b.state.PointerActive = true
}

// ButtonDown presses an on-screen button. Buttons the controls do not
// provide are ignored.
func (b *InputBinder) ButtonDown(btn Button) {
	b.setButton(btn, true)
}

// ButtonUp handles release, leave and cancel on an on-screen button.
func (b *InputBinder) ButtonUp(btn Button) {
	b.setButton(btn, false)
}

func (b *InputBinder) setButton(btn Button, held bool) {
	if b.controls == nil || !b.controls.Has(btn) {
		return
	}
	switch btn {
	case ButtonLeft:
		b.state.Left = held
	case ButtonRight:
		b.state.Right = held
	}
}
