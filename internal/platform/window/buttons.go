package window

import "github.com/vovakirdan/birthday-arcade/internal/core"

// Touch button geometry in logical units.
const (
	buttonSize   = 72.0
	buttonMargin = 20.0
)

// touchButtons implements core.TouchControls with two round buttons in the
// bottom corners.
type touchButtons struct {
	enabled     bool
	left, right core.Rect
}

// Has implements core.TouchControls.
func (b *touchButtons) Has(btn core.Button) bool {
	return b.enabled && (btn == core.ButtonLeft || btn == core.ButtonRight)
}

// layout places the buttons for a w x h surface.
func (b *touchButtons) layout(w, h float64) {
	y := h - buttonSize - buttonMargin
	b.left = core.NewRect(buttonMargin, y, buttonSize, buttonSize)
	b.right = core.NewRect(w-buttonSize-buttonMargin, y, buttonSize, buttonSize)
}

// hit returns the button under the logical point, if any.
func (b *touchButtons) hit(x, y float64) (core.Button, bool) {
	if !b.enabled {
		return 0, false
	}
	switch {
	case b.left.Contains(x, y):
		return core.ButtonLeft, true
	case b.right.Contains(x, y):
		return core.ButtonRight, true
	}
	return 0, false
}
