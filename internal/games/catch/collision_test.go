package catch

import (
	"testing"

	"github.com/vovakirdan/birthday-arcade/internal/core"
)

func TestCaught(t *testing.T) {
	catcher := core.NewRect(100, 500, 120, 60)

	tests := []struct {
		name     string
		pos      core.Vec
		radius   float64
		expected bool
	}{
		{"center inside catcher", core.Vec{X: 160, Y: 530}, 10, true},
		{"tangent to top edge", core.Vec{X: 160, Y: 480}, 20, false},
		{"just past tangent", core.Vec{X: 160, Y: 480.5}, 20, true},
		{"beside the catcher", core.Vec{X: 60, Y: 530}, 20, false},
		{"touching the corner diagonally", core.Vec{X: 97, Y: 496}, 5, false},
		{"overlapping the corner", core.Vec{X: 97, Y: 497}, 5, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k := &Kitty{Pos: tc.pos, Radius: tc.radius}
			if got := Caught(k, catcher); got != tc.expected {
				t.Errorf("Caught() = %v, expected %v", got, tc.expected)
			}
		})
	}
}
