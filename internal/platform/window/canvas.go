package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/birthday-arcade/internal/core"
)

// Debug font metrics in unscaled pixels.
const (
	glyphW = 6
	glyphH = 16
)

// maxLabels bounds the rendered label cache.
const maxLabels = 64

// Canvas implements core.Canvas on an offscreen image in host pixels. The
// game draws into it during Update; Draw presents it.
type Canvas struct {
	surface *surface
	img     *ebiten.Image
	labels  map[string]*ebiten.Image
}

func newCanvas(s *surface) *Canvas {
	c := &Canvas{surface: s, labels: make(map[string]*ebiten.Image)}
	c.realloc()
	return c
}

// realloc resizes the backing image to the surface.
func (c *Canvas) realloc() {
	pw, ph := c.surface.pixels()
	if c.img != nil {
		b := c.img.Bounds()
		if b.Dx() == pw && b.Dy() == ph {
			return
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(pw, ph)
}

// Image returns the backing image.
func (c *Canvas) Image() *ebiten.Image {
	return c.img
}

// Size implements core.Canvas.
func (c *Canvas) Size() (w, h float64) {
	return c.surface.w, c.surface.h
}

// Clear implements core.Canvas.
func (c *Canvas) Clear(bg core.Color) {
	c.img.Fill(bg)
}

// FillRect implements core.Canvas.
func (c *Canvas) FillRect(r core.Rect, col core.Color) {
	x, y, w, h := c.surface.toHost(r)
	vector.DrawFilledRect(c.img, x, y, w, h, col, true)
}

// FillCircle implements core.Canvas.
func (c *Canvas) FillCircle(ci core.Circle, col core.Color) {
	k := c.surface.scale
	vector.DrawFilledCircle(c.img, float32(ci.Center.X*k), float32(ci.Center.Y*k), float32(ci.R*k), col, true)
}

// DrawSprite implements core.Canvas for sprites loaded by SpriteLoader.
func (c *Canvas) DrawSprite(s core.Sprite, dst core.Rect) bool {
	sp, ok := s.(*imageSprite)
	if !ok || !sp.Loaded() {
		return false
	}
	drawScaled(c.img, sp.img, dst, c.surface.scale)
	return true
}

// DrawLabel implements core.Canvas. Text is drawn with the debug font,
// tinted and scaled with the surface.
func (c *Canvas) DrawLabel(x, y float64, text string, col core.Color) {
	drawLabel(c.img, c.label(text), x, y, c.surface.scale, col)
}

// label returns the white rendition of text, rendering it on first use.
func (c *Canvas) label(text string) *ebiten.Image {
	if img, ok := c.labels[text]; ok {
		return img
	}
	if len(c.labels) >= maxLabels {
		for k, img := range c.labels {
			img.Deallocate()
			delete(c.labels, k)
		}
	}
	img := ebiten.NewImage(max(len([]rune(text))*glyphW, 1), glyphH)
	ebitenutil.DebugPrint(img, text)
	c.labels[text] = img
	return img
}

// drawScaled draws src stretched over the logical rectangle dst.
func drawScaled(dst, src *ebiten.Image, r core.Rect, scale float64) {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W*scale/float64(b.Dx()), r.H*scale/float64(b.Dy()))
	op.GeoM.Translate(r.X*scale, r.Y*scale)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// drawLabel draws a white label image at logical (x, y) tinted with col.
func drawLabel(dst, label *ebiten.Image, x, y, scale float64, col core.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x*scale, y*scale)
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(label, op)
}
