package core

import "time"

// Placement seeds one cell of the starting board by display tag.
type Placement struct {
	X, Y int
	Tag  rune
}

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	StepInterval time.Duration // Time between simulation steps
	Seed         int64         // RNG seed for deterministic gameplay
	Size         int           // Grid side length
	Target       int           // Collectables needed to win
	Board        []Placement   // Optional starting board
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		StepInterval: 2 * time.Second,
		Seed:         0, // 0 means use current time in platform layer
		Size:         7,
		Target:       7,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Collected int
	Destroyed int
	Shots     int
	Ticks     int
	Won       bool
	Lost      bool
	Paused    bool
}

// GameOver reports whether either terminal condition holds.
func (s GameState) GameOver() bool {
	return s.Won || s.Lost
}

// Outcome names the terminal condition, or "running".
func (s GameState) Outcome() string {
	switch {
	case s.Lost:
		return "lost"
	case s.Won:
		return "won"
	default:
		return "running"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
