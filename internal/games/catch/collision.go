package catch

import "github.com/vovakirdan/birthday-arcade/internal/core"

// Caught reports whether the kitty's disc overlaps the catcher.
// The test clamps the kitty center onto the catcher rectangle and compares
// the squared distance against the squared radius; touching is not a catch.
func Caught(k *Kitty, catcher core.Rect) bool {
	return k.Circle().IntersectsRect(catcher)
}
