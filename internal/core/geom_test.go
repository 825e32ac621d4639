package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9.5, 9.5, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"left of rect", 9.9, 15, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestCircleIntersectsRect(t *testing.T) {
	bucket := NewRect(100, 100, 50, 20)

	tests := []struct {
		name     string
		circle   Circle
		expected bool
	}{
		{"center inside", Circle{Center: Vec{X: 120, Y: 110}, R: 5}, true},
		{"overlapping top edge", Circle{Center: Vec{X: 120, Y: 95}, R: 6}, true},
		{"tangent to top edge", Circle{Center: Vec{X: 120, Y: 90}, R: 10}, false},
		{"tangent to left edge", Circle{Center: Vec{X: 90, Y: 110}, R: 10}, false},
		{"near corner outside", Circle{Center: Vec{X: 95, Y: 95}, R: 7}, false},
		{"corner overlap", Circle{Center: Vec{X: 96, Y: 96}, R: 6}, true},
		{"far away", Circle{Center: Vec{X: 0, Y: 0}, R: 20}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.circle.IntersectsRect(bucket); got != tc.expected {
				t.Errorf("IntersectsRect() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClosestPoint(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	got := r.ClosestPoint(Vec{X: -5, Y: 20})
	if got != (Vec{X: 0, Y: 10}) {
		t.Errorf("ClosestPoint() = %+v, expected {0 10}", got)
	}

	inside := Vec{X: 3, Y: 4}
	if got := r.ClosestPoint(inside); got != inside {
		t.Errorf("ClosestPoint() = %+v, expected %+v", got, inside)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		name                string
		val, min, max, want float64
	}{
		{"within", 5, 0, 10, 5},
		{"below", -1, 0, 10, 0},
		{"above", 11, 0, 10, 10},
		{"inverted range favours min", 5, 0, -20, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampF(tc.val, tc.min, tc.max); got != tc.want {
				t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tc.val, tc.min, tc.max, got, tc.want)
			}
		})
	}
}

func TestMinF(t *testing.T) {
	if got := MinF(105, 96, 120); got != 96 {
		t.Errorf("MinF() = %v, expected 96", got)
	}
	if got := MinF(3); got != 3 {
		t.Errorf("MinF() = %v, expected 3", got)
	}
}
