// Package catch implements the kitty catching game: kitties fall from the top
// of the canvas and the player moves a bucket along the bottom to catch them
// before the countdown runs out.
package catch

import (
	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/core"
)

// Kitty is a falling collectible.
type Kitty struct {
	Pos     core.Vec // Center
	Radius  float64
	Speed   float64 // Downward movement per frame
	Drift   float64 // Horizontal movement per frame
	Sprite  core.Sprite
	Color   core.Color // Fallback disc color
	removed bool
}

// Circle returns the collision disc of the kitty.
func (k *Kitty) Circle() core.Circle {
	return core.Circle{Center: k.Pos, R: k.Radius}
}

// world is the mutable state shared by the game components.
// It is only touched from the scheduler thread.
type world struct {
	width, height float64
	catcher       core.Rect
	kitties       []*Kitty
	score         int
	timeLeft      int
	active        bool
	paused        bool
}

// running reports whether scheduled callbacks may mutate state.
func (w *world) running() bool {
	return w.active && !w.paused
}

// compact drops kitties marked as removed, preserving order.
func (w *world) compact() {
	live := w.kitties[:0]
	for _, k := range w.kitties {
		if !k.removed {
			live = append(live, k)
		}
	}
	for i := len(live); i < len(w.kitties); i++ {
		w.kitties[i] = nil
	}
	w.kitties = live
}

// kittyRadius returns the radius for newly spawned kitties on a w x h canvas.
func kittyRadius(cfg config.KittyConfig, w, h float64) float64 {
	return core.MinF(cfg.MaxRadius, w*cfg.WidthRatio, h*cfg.HeightRatio)
}

// layoutCatcher sizes and positions the catcher for a w x h canvas.
// The previous horizontal position is kept (clamped) once the catcher has
// been laid out; the first layout centers it.
func layoutCatcher(cfg config.CatcherConfig, prev core.Rect, w, h float64) core.Rect {
	cw := core.MinF(cfg.MaxWidth, w*cfg.WidthRatio)
	ch := core.MinF(cfg.MaxHeight, h*cfg.HeightRatio)

	x := w/2 - cw/2
	if prev.W > 0 {
		x = prev.X
	}
	y := core.ClampF(h-cfg.BottomOffset, 0, h-ch)

	return core.Rect{
		X: core.ClampF(x, 0, w-cw),
		Y: y,
		W: cw,
		H: ch,
	}
}
