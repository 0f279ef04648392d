package autopilot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hacker/internal/core"
	"github.com/vovakirdan/tui-hacker/internal/games/hacker"
)

// RunConfig describes one headless round.
type RunConfig struct {
	Runtime        core.RuntimeConfig
	Mode           hacker.Mode
	MaxTicks       int // round is abandoned after this many steps
	ActionsPerTick int // policy decisions between two steps, at least 1
}

// Result is the outcome of a headless round.
type Result struct {
	Policy   string          `yaml:"policy" json:"policy"`
	Seed     int64           `yaml:"seed" json:"seed"`
	Outcome  string          `yaml:"outcome" json:"outcome"` // won, lost or abandoned
	Snapshot hacker.Snapshot `yaml:"snapshot" json:"snapshot"`
}

// Play runs a round with the policy until it is won, lost, abandoned or
// ctx is cancelled. A cancelled round reports the context error.
func Play(ctx context.Context, p Policy, cfg RunConfig, logger *log.Logger) (Result, error) {
	if cfg.Mode == "" {
		cfg.Mode = hacker.ModeClassic
	}
	actions := max(cfg.ActionsPerTick, 1)

	s := hacker.NewSession(cfg.Mode)
	if logger != nil {
		s.SetLogger(logger)
	}
	s.Reset(cfg.Runtime)

	result := Result{Policy: p.Name(), Seed: s.Config().Seed}

	for !s.State().GameOver() && s.Game().Ticks() < cfg.MaxTicks {
		if err := ctx.Err(); err != nil {
			result.Outcome = "abandoned"
			result.Snapshot = s.Game().Snapshot()
			return result, err
		}

		for range actions {
			s.Apply(p.Next(s.Game()))
			if s.State().GameOver() {
				break
			}
		}
		s.Step()
	}

	result.Snapshot = s.Game().Snapshot()
	result.Outcome = s.State().Outcome()
	if result.Outcome == "running" {
		result.Outcome = "abandoned"
	}
	return result, nil
}
