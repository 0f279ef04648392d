package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/hacker.yaml
var defaultHackerYAML []byte

// DefaultHackerConfig returns the default Hacker configuration.
func DefaultHackerConfig() HackerConfig {
	return HackerConfig{
		Grid: GridConfig{
			Size:             7,
			CollectionTarget: 7,
		},
		Timing: TimingConfig{
			StepInterval: 2 * time.Second,
		},
		Mode: "classic",
		Keys: KeysConfig{
			RotateLeft:  []string{"a", "left"},
			RotateRight: []string{"d", "right"},
			Destroy:     []string{"x", " "},
			Collect:     []string{"c", "enter"},
			Pause:       []string{"p", "esc"},
			Restart:     []string{"r"},
			Rounds:      []string{"t"},
			Back:        []string{"b"},
			Quit:        []string{"q", "ctrl+c"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
