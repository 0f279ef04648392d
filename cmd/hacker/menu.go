package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hacker/internal/platform/tui"
	"github.com/vovakirdan/tui-hacker/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
When a round is over (or paused), press B to return to the menu.
Press T in the menu or in a round to see the rounds played so far.

Examples:
  hacker menu
  hacker menu --size 9
  hacker menu --scenario first-contact`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	addRoundFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
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

	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open round ledger", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	return tui.RunSession(store, rc, tui.NewKeyMap(cfg.Keys), logger)
}
