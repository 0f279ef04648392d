// Package config provides YAML-based configuration loading for the hacker
// platform.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Modes lists the accepted play modes.
var Modes = []string{"classic", "advanced"}

// LogLevels lists the accepted log levels.
var LogLevels = []string{"debug", "info", "warn", "error"}

// HackerConfig contains all configuration for the Hacker game.
type HackerConfig struct {
	Grid   GridConfig   `yaml:"grid"`
	Timing TimingConfig `yaml:"timing"`
	Mode   string       `yaml:"mode"`
	Keys   KeysConfig   `yaml:"keys"`
	Log    LogConfig    `yaml:"log"`
}

// GridConfig defines the board dimensions and win condition.
type GridConfig struct {
	Size             int `yaml:"size"`
	CollectionTarget int `yaml:"collection_target"`
}

// TimingConfig defines the simulation pace.
type TimingConfig struct {
	StepInterval time.Duration `yaml:"step_interval"`
}

// KeysConfig maps each action to the keys that trigger it.
// Key names follow Bubble Tea's KeyMsg.String() form.
type KeysConfig struct {
	RotateLeft  []string `yaml:"rotate_left"`
	RotateRight []string `yaml:"rotate_right"`
	Destroy     []string `yaml:"destroy"`
	Collect     []string `yaml:"collect"`
	Pause       []string `yaml:"pause"`
	Restart     []string `yaml:"restart"`
	Rounds      []string `yaml:"rounds"`
	Back        []string `yaml:"back"`
	Quit        []string `yaml:"quit"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Validate checks the config and returns the first problem found.
func (c HackerConfig) Validate() error {
	switch {
	case c.Grid.Size < 1:
		return fmt.Errorf("%w: grid.size must be positive, got %d", ErrInvalid, c.Grid.Size)
	case c.Grid.CollectionTarget < 1:
		return fmt.Errorf("%w: grid.collection_target must be positive, got %d", ErrInvalid, c.Grid.CollectionTarget)
	case c.Timing.StepInterval <= 0:
		return fmt.Errorf("%w: timing.step_interval must be positive, got %s", ErrInvalid, c.Timing.StepInterval)
	case !slices.Contains(Modes, c.Mode):
		return fmt.Errorf("%w: unknown mode %q", ErrInvalid, c.Mode)
	case c.Log.Level != "" && !slices.Contains(LogLevels, c.Log.Level):
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// Warnings returns non-fatal observations about the config.
func (c HackerConfig) Warnings() []string {
	var out []string
	if c.Grid.Size > 0 && c.Grid.Size%2 == 0 {
		out = append(out, fmt.Sprintf("grid.size %d is even; the player sits right of centre", c.Grid.Size))
	}
	if c.Grid.Size < 3 {
		out = append(out, fmt.Sprintf("grid.size %d is too small for destroyables or collectables to spawn", c.Grid.Size))
	}
	return out
}
