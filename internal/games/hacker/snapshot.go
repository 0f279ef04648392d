package hacker

// StateType names the engine state as seen from outside.
type StateType string

const (
	StateRunning StateType = "running"
	StateWon     StateType = "won"
	StateLost    StateType = "lost"
)

// Cell is one occupied grid cell in a snapshot.
type Cell struct {
	X   int    `yaml:"x" json:"x"`
	Y   int    `yaml:"y" json:"y"`
	Tag string `yaml:"tag" json:"tag"`
}

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Size      int       `yaml:"size" json:"size"`
	Target    int       `yaml:"target" json:"target"`
	PlayerX   int       `yaml:"player_x" json:"player_x"`
	Ticks     int       `yaml:"ticks" json:"ticks"`
	Collected int       `yaml:"collected" json:"collected"`
	Destroyed int       `yaml:"destroyed" json:"destroyed"`
	Shots     int       `yaml:"shots" json:"shots"`
	State     StateType `yaml:"state" json:"state"`
	Cells     []Cell    `yaml:"cells" json:"cells"`
}

// State returns the derived engine state. Loss takes precedence over a win.
func (g *Game) State() StateType {
	switch {
	case g.HasLost():
		return StateLost
	case g.HasWon():
		return StateWon
	default:
		return StateRunning
	}
}

// Snapshot returns the current game snapshot. Cells are in row-major order.
func (g *Game) Snapshot() Snapshot {
	positions := g.grid.Positions()
	cells := make([]Cell, 0, len(positions))
	for _, pos := range positions {
		e, _ := g.grid.GetEntity(pos)
		cells = append(cells, Cell{X: pos.x, Y: pos.y, Tag: string(e.Display())})
	}

	return Snapshot{
		Size:      g.size,
		Target:    g.target,
		PlayerX:   g.player.x,
		Ticks:     g.ticks,
		Collected: g.numCollected,
		Destroyed: g.numDestroyed,
		Shots:     g.totalShots,
		State:     g.State(),
		Cells:     cells,
	}
}
