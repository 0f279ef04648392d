package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hacker/internal/autopilot"
	"github.com/vovakirdan/tui-hacker/internal/games/hacker/scenario"
	"github.com/vovakirdan/tui-hacker/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modes, scenarios and autopilot policies",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "Modes:")
	fmt.Fprintln(w, "  ID\tTitle\tDescription")
	fmt.Fprintln(w, "  --\t-----\t-----------")
	for _, m := range registry.List() {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", m.ID, m.Title, m.Summary)
	}
	fmt.Fprintln(w)

	scenarios, err := scenario.Builtin()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Scenarios:")
	fmt.Fprintln(w, "  ID\tName\tSize\tTarget")
	fmt.Fprintln(w, "  --\t----\t----\t------")
	for _, sc := range scenarios {
		fmt.Fprintf(w, "  %s\t%s\t%d\t%d\n", sc.ID, sc.Name, sc.Size, sc.Target)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Policies:")
	for _, name := range autopilot.Names() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Run 'hacker play <mode>' to play, or 'hacker sim --policy <name>' to watch an autopilot.")
	return nil
}
