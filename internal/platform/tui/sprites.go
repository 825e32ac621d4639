package tui

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/birthday-arcade/internal/core"
)

// cellSprite is an image reduced to one glyph and its average color.
type cellSprite struct {
	name  string
	glyph rune
	tint  core.Color
}

func (s cellSprite) Name() string                        { return s.name }
func (s cellSprite) Loaded() bool                        { return true }
func (s cellSprite) Cell() (glyph rune, tint core.Color) { return s.glyph, s.tint }

// SpriteLoader decodes PNG and JPEG sprites into cell sprites.
type SpriteLoader struct{}

// LoadSprite implements core.SpriteLoader.
func (SpriteLoader) LoadSprite(ctx context.Context, path string) (core.Sprite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot open sprite: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot decode sprite %s: %w", path, err)
	}

	tint, ok := averageColor(img)
	if !ok {
		return nil, fmt.Errorf("tui: sprite %s is fully transparent", path)
	}
	return cellSprite{name: filepath.Base(path), glyph: spriteGlyph(path), tint: tint}, nil
}

// averageColor averages the pixels that are at least half opaque.
func averageColor(img image.Image) (core.Color, bool) {
	var r, g, b, n uint64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			if pa < 0x8000 {
				continue
			}
			// Undo alpha premultiplication
			r += uint64(pr) * 0xFFFF / uint64(pa)
			g += uint64(pg) * 0xFFFF / uint64(pa)
			b += uint64(pb) * 0xFFFF / uint64(pa)
			n++
		}
	}
	if n == 0 {
		return core.Color{}, false
	}
	return core.Color{
		R: uint8(r / n >> 8),
		G: uint8(g / n >> 8),
		B: uint8(b / n >> 8),
	}, true
}

func spriteGlyph(path string) rune {
	if strings.HasPrefix(strings.ToLower(filepath.Base(path)), "kitty") {
		return '^'
	}
	return '#'
}
