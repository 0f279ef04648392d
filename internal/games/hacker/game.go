package hacker

import "fmt"

// Direction is a horizontal grid rotation.
type Direction int

const (
	Left Direction = iota
	Right
)

// Offset returns the x shift applied by the rotation.
func (d Direction) Offset() int {
	if d == Left {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// ShotType selects what a shot affects.
type ShotType int

const (
	Destroy ShotType = iota
	Collect
)

func (s ShotType) String() string {
	if s == Destroy {
		return "destroy"
	}
	return "collect"
}

// Outcome describes how a shot resolved.
type Outcome int

const (
	Missed   Outcome = iota // column empty
	Hit                     // target removed and counted
	Absorbed                // stopped by a blocker
	Wasted                  // wrong shot type for the target
)

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case Absorbed:
		return "absorbed"
	case Wasted:
		return "wasted"
	default:
		return "missed"
	}
}

// FireResult reports the resolution of a single shot.
// Target and Entity are zero when the shot missed.
type FireResult struct {
	Shot    ShotType
	Outcome Outcome
	Target  Position
	Entity  Entity
}

// gravity is the per-tick offset applied to every entity.
var gravity = NewPosition(0, -1)

// Game is one simulation session.
type Game struct {
	size    int
	target  int
	grid    *Grid
	player  Position
	spawner *Spawner

	numCollected int
	numDestroyed int
	totalShots   int
	ticks        int
	gameOver     bool
}

// NewGame creates a session on an empty grid.
// size and target must be positive.
func NewGame(size, target int, rng Rand) *Game {
	if size < 1 {
		panic(fmt.Sprintf("hacker: grid size must be positive, got %d", size))
	}
	if target < 1 {
		panic(fmt.Sprintf("hacker: collection target must be positive, got %d", target))
	}
	return &Game{
		size:    size,
		target:  target,
		grid:    NewGrid(size),
		player:  NewPosition(size/2, 0),
		spawner: NewSpawner(rng),
	}
}

// Grid returns the board owned by the game.
func (g *Game) Grid() *Grid { return g.grid }

// Player returns the fixed player position.
func (g *Game) Player() Position { return g.player }

// Size returns the grid side length.
func (g *Game) Size() int { return g.size }

// Target returns the number of collectables needed to win.
func (g *Game) Target() int { return g.target }

// NumCollected returns the number of collectables acquired.
func (g *Game) NumCollected() int { return g.numCollected }

// NumDestroyed returns the number of destroyables shot.
func (g *Game) NumDestroyed() int { return g.numDestroyed }

// TotalShots returns the number of shots fired.
func (g *Game) TotalShots() int { return g.totalShots }

// Ticks returns the number of steps taken.
func (g *Game) Ticks() int { return g.ticks }

// RotateGrid shifts every entity one column in the given direction,
// wrapping around the edges. Rows are unchanged.
func (g *Game) RotateGrid(d Direction) {
	offset := d.Offset()
	rotated := make(map[Position]Entity, g.grid.Len())
	for pos, e := range g.grid.Entities() {
		x := ((pos.x+offset)%g.size + g.size) % g.size
		rotated[NewPosition(x, pos.y)] = e
	}
	g.grid.ReplaceAll(rotated)
}

// Step advances time by one tick: gravity, then spawning on the top row.
//
// Gravity walks entities in row order. The first destroyable to fall into
// the player row ends the game and stops the pass; entities not yet moved
// are dropped. Spawning still happens on that tick.
func (g *Game) Step() {
	g.ticks++

	moved := make(map[Position]Entity, g.grid.Len())
	for _, pos := range g.grid.Positions() {
		e, _ := g.grid.GetEntity(pos)
		next := pos.Add(gravity.x, gravity.y)
		if next.y >= 1 {
			moved[next] = e
			continue
		}
		if e == Destroyable {
			g.gameOver = true
			break
		}
	}
	g.grid.ReplaceAll(moved)

	g.GenerateEntities()
}

// GenerateEntities places a random set of new entities on the top row.
func (g *Game) GenerateEntities() {
	top := g.size - 1
	for _, s := range g.spawner.Spawn(g.size) {
		g.grid.AddEntity(NewPosition(s.X, top), s.Entity)
	}
}

// Fire shoots up the player's column. The first occupied cell decides the
// outcome; the shot counter always increases.
func (g *Game) Fire(shot ShotType) FireResult {
	g.totalShots++

	x := g.player.x
	for y := 1; y < g.size; y++ {
		pos := NewPosition(x, y)
		e, ok := g.grid.GetEntity(pos)
		if !ok || e == Player {
			continue
		}

		result := FireResult{Shot: shot, Target: pos, Entity: e, Outcome: Wasted}
		switch e {
		case Blocker:
			result.Outcome = Absorbed
		case Destroyable:
			if shot == Destroy {
				g.numDestroyed++
				g.grid.RemoveEntity(pos)
				result.Outcome = Hit
			}
		case Collectable:
			if shot == Collect {
				g.numCollected++
				g.grid.RemoveEntity(pos)
				result.Outcome = Hit
			}
		}
		return result
	}

	return FireResult{Shot: shot, Outcome: Missed}
}

// HasWon reports whether the collection target has been reached.
// Winning does not stop the simulation.
func (g *Game) HasWon() bool {
	return g.numCollected >= g.target
}

// HasLost reports whether a destroyable reached the player row.
func (g *Game) HasLost() bool {
	return g.gameOver
}
