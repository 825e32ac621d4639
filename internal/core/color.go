package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an opaque 24-bit RGB color. It implements image/color.Color so
// pixel back ends can use it directly.
type Color struct {
	R, G, B uint8
}

// Colors shared by the scenes.
var (
	ColorWhite = Color{R: 0xFF, G: 0xFF, B: 0xFF}
	ColorBlack = Color{}
	ColorText  = Color{R: 0x55, G: 0x3C, B: 0x4E}
)

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb", "rrggbb" or the short "#rgb" form.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("core: invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("core: invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// HexOr parses s and returns fallback when it is not a valid color.
func HexOr(s string, fallback Color) Color {
	c, err := ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}
