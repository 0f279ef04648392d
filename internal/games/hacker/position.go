package hacker

import "fmt"

// Position is an immutable grid coordinate.
// X increases to the right; Y counts rows away from the player row (row 0).
type Position struct {
	x int
	y int
}

// NewPosition creates a position at (x, y).
func NewPosition(x, y int) Position {
	return Position{x: x, y: y}
}

// X returns the column.
func (p Position) X() int {
	return p.x
}

// Y returns the row.
func (p Position) Y() int {
	return p.y
}

// Add returns a new position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{x: p.x + dx, y: p.y + dy}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.x, p.y)
}
