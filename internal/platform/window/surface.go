// Package window runs the birthday arcade in a desktop or mobile window
// with Ebitengine. The logical canvas is scaled by the device scale factor
// and touch devices get on-screen movement buttons.
package window

import "github.com/vovakirdan/birthday-arcade/internal/core"

// surface maps between host pixels and logical canvas units.
type surface struct {
	w, h  float64 // Logical size
	scale float64 // Host pixels per logical unit
}

// setSize updates the surface from the outside window size in logical
// units and the device scale factor. It reports whether anything changed.
func (s *surface) setSize(w, h, scale float64) bool {
	if scale <= 0 {
		scale = 1
	}
	if s.w == w && s.h == h && s.scale == scale {
		return false
	}
	s.w, s.h, s.scale = w, h, scale
	return true
}

// portrait reports whether the surface is taller than it is wide.
func (s *surface) portrait() bool {
	return s.h > s.w
}

// pixels returns the backing image size in host pixels.
func (s *surface) pixels() (int, int) {
	return max(int(s.w*s.scale), 1), max(int(s.h*s.scale), 1)
}

// ToLocal implements core.PointerSurface. Host coordinates are pixels of
// the scaled backing image.
func (s *surface) ToLocal(x, y float64) (float64, float64, bool) {
	if s.scale <= 0 {
		return 0, 0, false
	}
	lx, ly := x/s.scale, y/s.scale
	if lx < 0 || ly < 0 || lx >= s.w || ly >= s.h {
		return 0, 0, false
	}
	return lx, ly, true
}

// toHost converts a logical rectangle to host pixels.
func (s *surface) toHost(r core.Rect) (x, y, w, h float32) {
	k := s.scale
	return float32(r.X * k), float32(r.Y * k), float32(r.W * k), float32(r.H * k)
}
