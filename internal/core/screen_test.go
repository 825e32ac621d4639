package core

import (
	"strings"
	"testing"
)

type testCellSprite struct {
	loaded bool
}

func (s testCellSprite) Name() string        { return "kitty" }
func (s testCellSprite) Loaded() bool        { return s.loaded }
func (s testCellSprite) Cell() (rune, Color) { return '@', Color{R: 0xFF} }

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	w, h := s.Size()
	if w != 80*DefaultCellW || h != 24*DefaultCellH {
		t.Errorf("Size() = (%v, %v), expected (%v, %v)", w, h, 80*DefaultCellW, 24*DefaultCellH)
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawText(0, 0, "XXXX", ColorWhite)

	bg := Color{R: 0xE0, G: 0xF7, B: 0xFF}
	s.Clear(bg)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := s.GetCell(x, y)
			if c.Rune != ' ' || c.Bg != bg {
				t.Errorf("After Clear, cell (%d, %d) = %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello", ColorWhite)

	for i, ch := range "Hello" {
		if s.Get(2+i, 1) != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, s.Get(2+i, 1))
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello", ColorWhite)
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorWhite)

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(10, 10)
	pink := Color{R: 0xFF, G: 0x8A, B: 0xA1}

	// Cells 2..4 horizontally, rows 1..2 vertically
	s.FillRect(NewRect(2*DefaultCellW, 1*DefaultCellH, 3*DefaultCellW, 2*DefaultCellH), pink)

	for y := 1; y < 3; y++ {
		for x := 2; x < 5; x++ {
			if s.GetCell(x, y).Bg != pink {
				t.Errorf("FillRect: expected pink at (%d, %d)", x, y)
			}
		}
	}
	if s.GetCell(1, 1).Bg == pink || s.GetCell(5, 1).Bg == pink || s.GetCell(2, 3).Bg == pink {
		t.Error("FillRect should not affect outside area")
	}
}

func TestScreenFillCircleTiny(t *testing.T) {
	s := NewScreen(10, 10)
	c := Color{G: 0xFF}

	s.FillCircle(Circle{Center: Vec{X: 3.5 * DefaultCellW, Y: 4.2 * DefaultCellH}, R: 1}, c)
	if s.GetCell(3, 4).Bg != c {
		t.Error("a circle smaller than a cell should paint the cell under its center")
	}
}

func TestScreenDrawSprite(t *testing.T) {
	s := NewScreen(20, 10)
	dst := NewRect(0, 0, 8*DefaultCellW, 4*DefaultCellH)

	if s.DrawSprite(testCellSprite{loaded: false}, dst) {
		t.Error("DrawSprite should refuse unloaded sprites")
	}
	if !s.DrawSprite(testCellSprite{loaded: true}, dst) {
		t.Fatal("DrawSprite should draw loaded cell sprites")
	}

	center := dst.Center()
	if got := s.Get(int(center.X/DefaultCellW), int(center.Y/DefaultCellH)); got != '@' {
		t.Errorf("sprite glyph = %q, expected '@'", got)
	}
}

func TestScreenToLocal(t *testing.T) {
	s := NewScreen(10, 5)

	x, y, ok := s.ToLocal(2, 3)
	if !ok || x != 2.5*DefaultCellW || y != 3.5*DefaultCellH {
		t.Errorf("ToLocal(2, 3) = (%v, %v, %v)", x, y, ok)
	}
	if _, _, ok := s.ToLocal(10, 0); ok {
		t.Error("ToLocal outside the screen should fail")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA", ColorWhite)
	s.DrawText(0, 1, "BBBBB", ColorWhite)
	s.DrawText(0, 2, "CCCCC", ColorWhite)

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello", ColorWhite)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if row0 := s.Row(0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	s.Resize(15, 8)
	if row0 := s.Row(0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
}
