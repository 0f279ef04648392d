// Package tui provides the Bubble Tea integration for the hacker platform.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation step.
// Gen identifies the tick chain so a model ignores ticks of a previous game.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends a tick message after interval.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
