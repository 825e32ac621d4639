package window

import (
	"context"
	"fmt"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/vovakirdan/birthday-arcade/internal/core"
)

// imageSprite is a decoded sprite image.
type imageSprite struct {
	name string
	img  *ebiten.Image
}

func (s *imageSprite) Name() string { return s.name }
func (s *imageSprite) Loaded() bool { return s.img != nil }

// SpriteLoader loads PNG and JPEG sprites into GPU images.
type SpriteLoader struct{}

// LoadSprite implements core.SpriteLoader.
func (SpriteLoader) LoadSprite(ctx context.Context, path string) (core.Sprite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("window: cannot load sprite %s: %w", path, err)
	}
	return &imageSprite{name: filepath.Base(path), img: img}, nil
}
