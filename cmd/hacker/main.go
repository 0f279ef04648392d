// hacker is a terminal arcade game: rotate the grid under your fixed
// turret, destroy the Destroyables before they reach you and collect
// enough Collectables to win.
//
// Usage:
//
//	hacker play [mode]      - Play a mode directly (classic, advanced)
//	hacker menu             - Start menu to pick a mode interactively
//	hacker sim              - Play headless rounds with an autopilot policy
//	hacker serve            - Start SSH server for remote play
//	hacker list             - List modes, scenarios and policies
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible rounds
//	--config <path>     - Use a specific config file
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Append logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-hacker/internal/config"
	"github.com/vovakirdan/tui-hacker/internal/core"
	_ "github.com/vovakirdan/tui-hacker/internal/games/hacker" // register modes
	"github.com/vovakirdan/tui-hacker/internal/logging"
)

var (
	// Global flags
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hacker",
	Short: "Hacker - rotate the grid, destroy the threats, collect the loot",
	Long: `Hacker is a terminal arcade game played on a square grid.

Your turret sits fixed at the bottom centre. The field above it rotates
left and right; shots travel up the turret's column. Destroyables creep
down each tick and end the round if they reach the bottom row. Collect
enough Collectables to win.

Available commands:
  play     - Play a mode directly
  menu     - Interactive mode picker
  sim      - Headless rounds with an autopilot
  serve    - Start SSH server for remote play
  list     - Show modes, scenarios and policies

Examples:
  hacker play
  hacker play advanced --size 9
  hacker menu
  hacker sim --policy greedy --rounds 20
  hacker serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default: search standard locations)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the config file, applies global flag overrides and
// prints warnings to stderr.
func loadConfig() (config.HackerConfig, error) {
	cfg, err := config.LoadHacker(flagConfig)
	if err != nil {
		return config.HackerConfig{}, err
	}

	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if err := cfg.Validate(); err != nil {
		return config.HackerConfig{}, err
	}

	for _, w := range cfg.Warnings() {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	return cfg, nil
}

// runtimeFromConfig builds the game config shared by every command.
func runtimeFromConfig(cfg config.HackerConfig) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.Size = cfg.Grid.Size
	rc.Target = cfg.Grid.CollectionTarget
	rc.StepInterval = cfg.Timing.StepInterval
	rc.Seed = flagSeed
	return rc
}

// fileLogger returns the logger for the interactive commands. The
// terminal belongs to the TUI, so logs only go to the configured file.
func fileLogger(cfg config.HackerConfig) (*log.Logger, io.Closer, error) {
	return logging.OpenFile(cfg.Log.File, logging.Options{
		Level:      cfg.Log.Level,
		Prefix:     "hacker",
		Timestamps: true,
	})
}

// consoleLogger returns a stderr logger for the headless commands,
// or the file logger when a log file is configured.
func consoleLogger(cfg config.HackerConfig, prefix string) (*log.Logger, io.Closer, error) {
	if cfg.Log.File != "" {
		return fileLogger(cfg)
	}
	logger, err := logging.New(os.Stderr, logging.Options{
		Level:      cfg.Log.Level,
		Prefix:     prefix,
		Timestamps: true,
	})
	if err != nil {
		return nil, nil, err
	}
	return logger, io.NopCloser(nil), nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
