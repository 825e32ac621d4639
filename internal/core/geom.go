// Package core provides fundamental types and utilities for the birthday arcade.
// It contains no external dependencies (especially no Bubble Tea or Ebiten) to
// keep game logic pure and testable.
package core

// Vec is a point or offset in logical canvas units.
type Vec struct {
	X, Y float64
}

// Rect represents an axis-aligned bounding box in logical canvas units.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// ClosestPoint returns the point of the rectangle nearest to p.
// Points inside the rectangle are returned unchanged.
func (r Rect) ClosestPoint(p Vec) Vec {
	return Vec{
		X: ClampF(p.X, r.X, r.Right()),
		Y: ClampF(p.Y, r.Y, r.Bottom()),
	}
}

// Circle is a disc given by its center and radius.
type Circle struct {
	Center Vec
	R      float64
}

// Bounds returns the square that circumscribes the circle.
func (c Circle) Bounds() Rect {
	return Rect{X: c.Center.X - c.R, Y: c.Center.Y - c.R, W: 2 * c.R, H: 2 * c.R}
}

// IntersectsRect reports whether the circle overlaps the rectangle.
// Tangent contact (distance exactly equal to the radius) is not a hit.
func (c Circle) IntersectsRect(r Rect) bool {
	p := r.ClosestPoint(c.Center)
	dx := c.Center.X - p.X
	dy := c.Center.Y - p.Y
	return dx*dx+dy*dy < c.R*c.R
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
// When max < min the result is min.
func ClampF(val, min, max float64) float64 {
	if val > max {
		val = max
	}
	if val < min {
		val = min
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// MinF returns the smallest of the given values.
func MinF(first float64, rest ...float64) float64 {
	m := first
	for _, v := range rest {
		if v < m {
			m = v
		}
	}
	return m
}
