package hacker

import (
	"cmp"
	"slices"
)

// Grid is a sparse square board of entities.
// Row 0 belongs to the player and is never stored; valid keys satisfy
// 0 <= x < size and 1 <= y < size.
type Grid struct {
	size     int
	entities map[Position]Entity
}

// NewGrid creates an empty grid with the given side length.
func NewGrid(size int) *Grid {
	return &Grid{
		size:     size,
		entities: make(map[Position]Entity),
	}
}

// Size returns the side length of the grid.
func (g *Grid) Size() int {
	return g.size
}

// InBounds reports whether pos is an addressable cell.
func (g *Grid) InBounds(pos Position) bool {
	return pos.x >= 0 && pos.x < g.size && pos.y >= 1 && pos.y < g.size
}

// AddEntity places e at pos. Out-of-bounds positions are ignored.
func (g *Grid) AddEntity(pos Position, e Entity) {
	if g.InBounds(pos) && e.Valid() {
		g.entities[pos] = e
	}
}

// GetEntity returns the occupant of pos, if any.
func (g *Grid) GetEntity(pos Position) (Entity, bool) {
	e, ok := g.entities[pos]
	return e, ok
}

// RemoveEntity clears pos. Removing an empty cell is a no-op.
func (g *Grid) RemoveEntity(pos Position) {
	delete(g.entities, pos)
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	return len(g.entities)
}

// Entities returns a copy of the position to entity mapping.
func (g *Grid) Entities() map[Position]Entity {
	out := make(map[Position]Entity, len(g.entities))
	for pos, e := range g.entities {
		out[pos] = e
	}
	return out
}

// ReplaceAll swaps the whole mapping in one assignment.
// Keys outside the grid and unknown kinds are dropped.
func (g *Grid) ReplaceAll(entities map[Position]Entity) {
	next := make(map[Position]Entity, len(entities))
	for pos, e := range entities {
		if g.InBounds(pos) && e.Valid() {
			next[pos] = e
		}
	}
	g.entities = next
}

// Positions returns occupied positions ordered by row, then column.
func (g *Grid) Positions() []Position {
	positions := make([]Position, 0, len(g.entities))
	for pos := range g.entities {
		positions = append(positions, pos)
	}
	slices.SortFunc(positions, func(a, b Position) int {
		return cmp.Or(cmp.Compare(a.y, b.y), cmp.Compare(a.x, b.x))
	})
	return positions
}

// Serialise projects the grid to a coordinate to display tag mapping.
func (g *Grid) Serialise() map[Position]rune {
	out := make(map[Position]rune, len(g.entities))
	for pos, e := range g.entities {
		out[pos] = e.Display()
	}
	return out
}
