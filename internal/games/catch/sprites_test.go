package catch

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/birthday-arcade/internal/config"
)

func TestLoadSpritesFallback(t *testing.T) {
	assets := config.AssetsConfig{
		Dir:     "assets",
		Kitties: []string{"a.png", "b.png", "c.png"},
		Catcher: "bucket.png",
	}
	loader := testLoader{fail: map[string]bool{
		filepath.Join("assets", "b.png"):      true,
		filepath.Join("assets", "bucket.png"): true,
	}}

	set := LoadSprites(context.Background(), loader, assets, log.New(io.Discard))

	if len(set.Kitties) != 3 {
		t.Fatalf("kitties = %d, expected 3", len(set.Kitties))
	}
	expected := []bool{true, false, true}
	for i, want := range expected {
		if got := drawable(set.Kitties[i]); got != want {
			t.Errorf("kitty %d drawable = %v, expected %v", i, got, want)
		}
	}
	if drawable(set.Catcher) {
		t.Errorf("catcher drawable, expected placeholder")
	}
	if set.Kitties[1].Name() != "b.png" {
		t.Errorf("placeholder name = %q, expected b.png", set.Kitties[1].Name())
	}
}

func TestLoadSpritesWithoutLoader(t *testing.T) {
	assets := config.AssetsConfig{Kitties: []string{"a.png"}, Catcher: "bucket.png"}

	set := LoadSprites(context.Background(), nil, assets, log.New(io.Discard))

	if len(set.Kitties) != 1 || drawable(set.Kitties[0]) || drawable(set.Catcher) {
		t.Errorf("LoadSprites without loader = %+v, expected placeholders", set)
	}
}
