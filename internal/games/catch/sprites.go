package catch

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/birthday-arcade/internal/config"
	"github.com/vovakirdan/birthday-arcade/internal/core"
)

// maxParallelLoads bounds concurrent sprite decoding.
const maxParallelLoads = 4

// missingSprite stands in for an asset that failed to load.
type missingSprite struct {
	name string
}

func (s missingSprite) Name() string { return s.name }
func (s missingSprite) Loaded() bool { return false }

// SpriteSet holds the loaded kitty pool and the catcher sprite.
type SpriteSet struct {
	Kitties []core.Sprite
	Catcher core.Sprite
}

// LoadSprites loads every configured sprite concurrently. A failed load is
// logged and replaced by a placeholder that draws as a fallback shape, so the
// call always completes with one entry per configured file.
func LoadSprites(ctx context.Context, loader core.SpriteLoader, assets config.AssetsConfig, logger core.Logger) SpriteSet {
	names := make([]string, 0, len(assets.Kitties)+1)
	names = append(names, assets.Kitties...)
	names = append(names, assets.Catcher)

	out := make([]core.Sprite, len(names))

	var g errgroup.Group
	g.SetLimit(maxParallelLoads)
	for i, name := range names {
		if loader == nil || name == "" {
			out[i] = missingSprite{name: name}
			continue
		}
		g.Go(func() error {
			sp, err := loader.LoadSprite(ctx, filepath.Join(assets.Dir, name))
			if err != nil || sp == nil {
				logger.Warn("sprite unavailable, using fallback shape", "sprite", name, "error", err)
				out[i] = missingSprite{name: name}
				return nil
			}
			out[i] = sp
			return nil
		})
	}
	//nolint:errcheck // Loads never return errors, failures become placeholders
	g.Wait()

	return SpriteSet{
		Kitties: out[:len(assets.Kitties)],
		Catcher: out[len(assets.Kitties)],
	}
}

// drawable reports whether s can be drawn as an image.
func drawable(s core.Sprite) bool {
	return s != nil && s.Loaded()
}
