package core

import (
	"math"
	"strings"
)

// Default logical size of one terminal cell. Terminal cells are roughly
// twice as tall as they are wide.
const (
	DefaultCellW = 8.0
	DefaultCellH = 16.0
)

// Cell is one character position of a Screen.
type Cell struct {
	Rune rune
	Fg   Color
	Bg   Color
}

// CellSprite is a sprite that a Screen can draw as a tinted block of cells.
type CellSprite interface {
	Sprite
	Cell() (glyph rune, tint Color)
}

// Screen is a 2D character buffer that doubles as a logical Canvas.
// Each cell covers cellW x cellH logical units, so game code can draw in the
// same coordinate space as the pixel back end.
type Screen struct {
	width  int
	height int
	cellW  float64
	cellH  float64
	bg     Color
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions in cells.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
		cellW:  DefaultCellW,
		cellH:  DefaultCellH,
		bg:     ColorBlack,
	}
	s.allocate()
	s.Clear(s.bg)
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// CellSize returns the logical size of one cell.
func (s *Screen) CellSize() (w, h float64) {
	return s.cellW, s.cellH
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear(s.bg)

	copyW := Min(oldW, width)
	copyH := Min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Size implements Canvas.
func (s *Screen) Size() (w, h float64) {
	return float64(s.width) * s.cellW, float64(s.height) * s.cellH
}

// Clear fills the entire screen with blank cells on the given background.
func (s *Screen) Clear(bg Color) {
	s.bg = bg
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' ', Fg: ColorText, Bg: bg}
		}
	}
}

// Set places a rune at the given position, keeping the cell colors.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y][x].Rune = r
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	if !s.inBounds(x, y) {
		return ' '
	}
	return s.cells[y][x].Rune
}

// SetCell replaces the cell at the given position.
func (s *Screen) SetCell(x, y int, c Cell) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y][x] = c
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inBounds(x, y) {
		return Cell{Rune: ' ', Fg: ColorText, Bg: s.bg}
	}
	return s.cells[y][x]
}

func (s *Screen) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// DrawText writes a string horizontally starting at cell (x, y) in color fg.
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, fg Color) {
	i := 0
	for _, r := range text {
		if s.inBounds(x+i, y) {
			s.cells[y][x+i].Rune = r
			s.cells[y][x+i].Fg = fg
		}
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given row.
func (s *Screen) DrawTextCentered(y int, text string, fg Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text, fg)
}

// cellSpan converts a logical rectangle to a half-open cell range.
// Any rectangle maps to at least one cell.
func (s *Screen) cellSpan(r Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Round(r.X / s.cellW))
	x1 = int(math.Round(r.Right() / s.cellW))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	y0 = int(math.Round(r.Y / s.cellH))
	y1 = int(math.Round(r.Bottom() / s.cellH))
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return Clamp(x0, 0, s.width), Clamp(y0, 0, s.height), Clamp(x1, 0, s.width), Clamp(y1, 0, s.height)
}

// FillRect implements Canvas.
func (s *Screen) FillRect(r Rect, c Color) {
	x0, y0, x1, y1 := s.cellSpan(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.cells[y][x] = Cell{Rune: ' ', Fg: ColorText, Bg: c}
		}
	}
}

// FillCircle implements Canvas. Cells whose center lies inside the circle are
// painted; a circle smaller than a cell still paints the cell under its center.
func (s *Screen) FillCircle(c Circle, col Color) {
	s.fillDisc(c, Cell{Rune: ' ', Fg: ColorText, Bg: col})
}

func (s *Screen) fillDisc(c Circle, cell Cell) {
	x0, y0, x1, y1 := s.cellSpan(c.Bounds())
	painted := false
	for y := y0; y < y1; y++ {
		cy := (float64(y) + 0.5) * s.cellH
		for x := x0; x < x1; x++ {
			cx := (float64(x) + 0.5) * s.cellW
			dx, dy := cx-c.Center.X, cy-c.Center.Y
			if dx*dx+dy*dy <= c.R*c.R {
				s.cells[y][x] = cell
				painted = true
			}
		}
	}
	if !painted {
		s.SetCell(int(c.Center.X/s.cellW), int(c.Center.Y/s.cellH), cell)
	}
}

// DrawSprite implements Canvas for sprites that provide a cell rendition.
// The sprite is drawn as a tinted ellipse inscribed in dst with its glyph at
// the center.
func (s *Screen) DrawSprite(sp Sprite, dst Rect) bool {
	cs, ok := sp.(CellSprite)
	if !ok || !cs.Loaded() {
		return false
	}
	glyph, tint := cs.Cell()
	center := dst.Center()
	r := MinF(dst.W, dst.H) / 2
	s.fillDisc(Circle{Center: center, R: r}, Cell{Rune: ' ', Fg: ColorText, Bg: tint})
	cx, cy := int(center.X/s.cellW), int(center.Y/s.cellH)
	if s.inBounds(cx, cy) {
		s.cells[cy][cx].Rune = glyph
		s.cells[cy][cx].Fg = ColorWhite
	}
	return true
}

// DrawLabel implements Canvas. The label starts at the cell containing (x, y).
func (s *Screen) DrawLabel(x, y float64, text string, c Color) {
	s.DrawText(int(x/s.cellW), int(y/s.cellH), text, c)
}

// ToLocal implements PointerSurface. Host coordinates are cell columns and
// rows; the result is the logical center of that cell.
func (s *Screen) ToLocal(x, y float64) (float64, float64, bool) {
	col, row := int(x), int(y)
	if x < 0 || y < 0 || !s.inBounds(col, row) {
		return 0, 0, false
	}
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH, true
}

// String converts the screen buffer to a plain string without colors.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the runes of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
