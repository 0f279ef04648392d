package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hacker/internal/core"
	"github.com/vovakirdan/tui-hacker/internal/games/hacker/scenario"
	"github.com/vovakirdan/tui-hacker/internal/platform/tui"
	"github.com/vovakirdan/tui-hacker/internal/registry"
	"github.com/vovakirdan/tui-hacker/internal/storage"
)

var (
	flagSize     int
	flagTarget   int
	flagInterval time.Duration
	flagScenario string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a round",
	Long: `Start playing the specified mode (default from config, usually classic).

Modes:
  classic   - The plain game
  advanced  - Adds pause, a shot counter and a round timer

Controls:
  A/Left     - Rotate field left
  D/Right    - Rotate field right
  X/Space    - Destroy shot
  C/Enter    - Collect shot
  P/Esc      - Pause (advanced)
  R          - Restart (after the round ends)
  T          - Rounds played this session
  Q/Ctrl+C   - Quit

Examples:
  hacker play
  hacker play advanced
  hacker play --size 9 --target 10
  hacker play --scenario brink
  hacker play --seed 42 --interval 1s`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addRoundFlags(playCmd)
}

// addRoundFlags registers the flags shaping a round.
func addRoundFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagSize, "size", 0, "Grid side length (overrides config)")
	cmd.Flags().IntVar(&flagTarget, "target", 0, "Collectables needed to win (overrides config)")
	cmd.Flags().DurationVar(&flagInterval, "interval", 0, "Time between steps, e.g. 1500ms (overrides config)")
	cmd.Flags().StringVar(&flagScenario, "scenario", "", "Built-in scenario ID or path to a scenario file")
}

// applyRoundFlags layers the round flags over rc. A scenario sets the
// size, target and starting board; explicit --size and --target win, but
// a --size too small for the scenario's board is rejected.
func applyRoundFlags(rc *core.RuntimeConfig) error {
	if flagSize < 0 || flagTarget < 0 || flagInterval < 0 {
		return fmt.Errorf("size, target and interval must be positive")
	}

	if flagSize > 0 {
		rc.Size = flagSize
	}
	if flagTarget > 0 {
		rc.Target = flagTarget
	}

	if flagScenario != "" {
		sc, err := scenario.Lookup(flagScenario)
		if err != nil {
			return err
		}
		if flagSize == 0 {
			rc.Size = sc.Size
		}
		if flagTarget == 0 {
			rc.Target = sc.Target
		}
		if rc.Board, err = sc.Board(rc.Size); err != nil {
			return err
		}
	}

	if flagInterval > 0 {
		rc.StepInterval = flagInterval
	}
	return nil
}

func runPlay(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mode := cfg.Mode
	if len(args) == 1 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q (run 'hacker list' to see available modes)", mode)
	}

	rc := runtimeFromConfig(cfg)
	if err := applyRoundFlags(&rc); err != nil {
		return err
	}
	rc.ScreenW, rc.ScreenH = terminalSize()

	logger, closer, err := fileLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	game, err := registry.Create(mode)
	if err != nil {
		return err
	}

	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open round ledger", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	logger.Info("starting round", "mode", mode, "size", rc.Size, "target", rc.Target, "seed", rc.Seed)
	return tui.Run(game, store, rc, tui.NewKeyMap(cfg.Keys), logger)
}
