package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-hacker/internal/autopilot"
	"github.com/vovakirdan/tui-hacker/internal/games/hacker"
	"github.com/vovakirdan/tui-hacker/internal/storage"
)

var (
	flagPolicy   string
	flagSimMode  string
	flagRounds   int
	flagMaxTicks int
	flagActions  int
	flagFormat   string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play headless rounds with an autopilot policy",
	Long: `Play rounds without a terminal UI. An autopilot policy picks the
actions; the engine steps once after every --actions decisions.

Round i uses seed+i, so a run is reproducible with --seed.

Policies:
  idle     - Never acts; every round is eventually lost
  random   - Picks uniformly among all actions
  greedy   - Shoots the column in front, otherwise turns toward the
             most urgent threat or the nearest collectable

Examples:
  hacker sim
  hacker sim --policy random --rounds 50 --seed 1
  hacker sim --scenario brink --format yaml
  hacker sim --rounds 100 --actions 3 --format json`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	addRoundFlags(simCmd)
	simCmd.Flags().StringVar(&flagPolicy, "policy", "greedy", "Autopilot policy ("+strings.Join(autopilot.Names(), ", ")+")")
	simCmd.Flags().StringVar(&flagSimMode, "mode", "", "Play mode (default from config)")
	simCmd.Flags().IntVar(&flagRounds, "rounds", 1, "Number of rounds to play")
	simCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 500, "Abandon a round after this many steps")
	simCmd.Flags().IntVar(&flagActions, "actions", 1, "Policy decisions between two steps")
	simCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, yaml or json")
}

// simReport is the structured output of a sim run.
type simReport struct {
	Rounds []autopilot.Result `yaml:"rounds" json:"rounds"`
	Stats  simStats           `yaml:"stats" json:"stats"`
}

type simStats struct {
	Rounds    int     `yaml:"rounds" json:"rounds"`
	Wins      int     `yaml:"wins" json:"wins"`
	Losses    int     `yaml:"losses" json:"losses"`
	Abandoned int     `yaml:"abandoned" json:"abandoned"`
	Accuracy  float64 `yaml:"accuracy" json:"accuracy"`
	BestTicks int     `yaml:"best_ticks,omitempty" json:"best_ticks,omitempty"`
}

func runSim(_ *cobra.Command, _ []string) error {
	switch flagFormat {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("unknown format %q (want text, yaml or json)", flagFormat)
	}
	if flagRounds < 1 || flagMaxTicks < 1 || flagActions < 1 {
		return fmt.Errorf("rounds, max-ticks and actions must be positive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mode := hacker.Mode(cfg.Mode)
	if flagSimMode != "" {
		mode = hacker.Mode(flagSimMode)
	}
	if !mode.Valid() {
		return fmt.Errorf("unknown mode %q", mode)
	}

	rc := runtimeFromConfig(cfg)
	if err := applyRoundFlags(&rc); err != nil {
		return err
	}
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}

	logger, closer, err := consoleLogger(cfg, "sim")
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := storage.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	baseSeed := rc.Seed
	report := simReport{Rounds: make([]autopilot.Result, 0, flagRounds)}

	for i := range flagRounds {
		rc.Seed = baseSeed + int64(i)
		policy, err := autopilot.New(flagPolicy, hacker.NewRand(^rc.Seed))
		if err != nil {
			return err
		}

		result, playErr := autopilot.Play(ctx, policy, autopilot.RunConfig{
			Runtime:        rc,
			Mode:           mode,
			MaxTicks:       flagMaxTicks,
			ActionsPerTick: flagActions,
		}, logger)
		report.Rounds = append(report.Rounds, result)

		if _, err := store.SaveRound(roundFromResult(result, mode)); err != nil {
			logger.Warn("could not save round", "seed", result.Seed, "error", err)
		}

		if playErr != nil {
			if errors.Is(playErr, context.Canceled) {
				logger.Warn("interrupted", "completed", i)
				break
			}
			return playErr
		}
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	report.Stats = simStats{
		Rounds:    stats.Rounds,
		Wins:      stats.Wins,
		Losses:    stats.Losses,
		Abandoned: stats.Abandoned,
		Accuracy:  stats.Accuracy(),
		BestTicks: stats.BestTicks,
	}

	return writeReport(os.Stdout, report, flagFormat)
}

// roundFromResult converts an autopilot result into a ledger row.
func roundFromResult(r autopilot.Result, mode hacker.Mode) storage.Round {
	return storage.Round{
		Mode:      string(mode),
		Seed:      r.Seed,
		Size:      r.Snapshot.Size,
		Target:    r.Snapshot.Target,
		Collected: r.Snapshot.Collected,
		Destroyed: r.Snapshot.Destroyed,
		Shots:     r.Snapshot.Shots,
		Ticks:     r.Snapshot.Ticks,
		Outcome:   storage.Outcome(r.Outcome),
	}
}

func writeReport(w io.Writer, report simReport, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	for i, r := range report.Rounds {
		s := r.Snapshot
		fmt.Fprintf(w, "  %3d  seed %-20d %-9s  ticks %4d  collected %d/%d  destroyed %3d  shots %4d\n",
			i+1, r.Seed, r.Outcome, s.Ticks, s.Collected, s.Target, s.Destroyed, s.Shots)
	}

	st := report.Stats
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Rounds %d  Won %d  Lost %d  Abandoned %d  Accuracy %.0f%%\n",
		st.Rounds, st.Wins, st.Losses, st.Abandoned, st.Accuracy*100)
	if st.BestTicks > 0 {
		fmt.Fprintf(w, "Fastest win: %d ticks\n", st.BestTicks)
	}
	return nil
}
