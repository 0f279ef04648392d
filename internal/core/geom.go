// Package core provides the types shared by games and the platform: the
// screen buffer, actions and runtime config. It has no Bubble Tea
// dependency so games stay pure and testable.
package core

// Rect is an axis-aligned screen area with its top-left cell at X, Y.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Center returns the middle cell, rounding toward the top-left.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Fits reports whether r lies entirely on a width x height screen.
func (r Rect) Fits(width, height int) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= width && r.Bottom() <= height
}

// CenteredOn returns a w x h rectangle centred on r's middle cell, shifted
// right or left as needed to start within [0, width-w].
func (r Rect) CenteredOn(w, h, width int) Rect {
	cx, cy := r.Center()
	x := min(max(cx-w/2, 0), max(width-w, 0))
	return NewRect(x, cy-h/2, w, h)
}
