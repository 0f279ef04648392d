package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is one screen position.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a fixed-size cell buffer games draw into each frame.
// Writes outside the buffer are dropped.
type Screen struct {
	w, h  int
	cells []Cell // row-major
}

// NewScreen creates a blank screen. Negative sizes are treated as zero.
func NewScreen(width, height int) *Screen {
	width, height = max(width, 0), max(height, 0)
	s := &Screen{w: width, h: height, cells: make([]Cell, width*height)}
	s.Clear()
	return s
}

// Width returns the screen width in columns.
func (s *Screen) Width() int { return s.w }

// Height returns the screen height in rows.
func (s *Screen) Height() int { return s.h }

// Resize changes the dimensions and blanks the buffer.
func (s *Screen) Resize(width, height int) {
	if width == s.w && height == s.h {
		return
	}
	*s = *NewScreen(width, height)
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return 0, false
	}
	return y*s.w + x, true
}

// Set places a rune at (x, y).
func (s *Screen) Set(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

// GetCell returns the cell at (x, y), or a blank cell off-screen.
func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blank
}

// Get returns the rune at (x, y).
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// Row returns row y as a slice into the buffer, or nil when out of range.
// Callers must not keep it across a Resize.
func (s *Screen) Row(y int) []Cell {
	if y < 0 || y >= s.h {
		return nil
	}
	return s.cells[y*s.w : (y+1)*s.w]
}

// DrawText writes text left to right starting at (x, y).
func (s *Screen) DrawText(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r, c)
		i++
	}
}

// DrawTextCentered writes text centred on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	s.DrawText((s.w-utf8.RuneCountInString(text))/2, y, text, c)
}

// DrawHLine writes length copies of r starting at (x, y).
func (s *Screen) DrawHLine(x, y, length int, r rune, c Color) {
	for i := range max(length, 0) {
		s.Set(x+i, y, r, c)
	}
}

// Fill paints every cell of r.
func (s *Screen) Fill(r Rect, fill rune, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		s.DrawHLine(r.X, y, r.W, fill, c)
	}
}

// DrawBox outlines r with single-line box characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1

	s.DrawHLine(r.X+1, r.Y, r.W-2, '─', c)
	s.DrawHLine(r.X+1, bottom, r.W-2, '─', c)
	for y := r.Y + 1; y < bottom; y++ {
		s.Set(r.X, y, '│', c)
		s.Set(right, y, '│', c)
	}
	s.Set(r.X, r.Y, '┌', c)
	s.Set(right, r.Y, '┐', c)
	s.Set(r.X, bottom, '└', c)
	s.Set(right, bottom, '┘', c)
}

// DrawDivider draws a ├───┤ rule across the box r on row y.
func (s *Screen) DrawDivider(r Rect, y int, c Color) {
	if r.W < 2 {
		return
	}
	s.Set(r.X, y, '├', c)
	s.DrawHLine(r.X+1, y, r.W-2, '─', c)
	s.Set(r.Right()-1, y, '┤', c)
}

// String returns the plain text of the screen, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(len(s.cells) + s.h)
	for y := range s.h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range s.Row(y) {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}
