package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hacker/internal/config"
	"github.com/vovakirdan/tui-hacker/internal/core"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	RotateLeft  key.Binding
	RotateRight key.Binding
	Destroy     key.Binding
	Collect     key.Binding
	Pause       key.Binding
	Restart     key.Binding
	Rounds      key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.RotateLeft, k.RotateRight, k.Destroy, k.Collect, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.RotateLeft, k.RotateRight, k.Destroy, k.Collect},
		{k.Pause, k.Restart, k.Rounds, k.Back, k.Quit},
	}
}

// NewKeyMap builds bindings from configured key lists.
func NewKeyMap(keys config.KeysConfig) KeyMap {
	return KeyMap{
		RotateLeft:  binding(keys.RotateLeft, "rotate left"),
		RotateRight: binding(keys.RotateRight, "rotate right"),
		Destroy:     binding(keys.Destroy, "destroy"),
		Collect:     binding(keys.Collect, "collect"),
		Pause:       binding(keys.Pause, "pause"),
		Restart:     binding(keys.Restart, "restart"),
		Rounds:      binding(keys.Rounds, "rounds"),
		Back:        binding(keys.Back, "menu"),
		Quit:        binding(keys.Quit, "quit"),
	}
}

// DefaultKeyMap returns the bindings of the default config.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultHackerConfig().Keys)
}

func binding(keys []string, desc string) key.Binding {
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = keyLabel(k)
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(labels, "/"), desc),
	)
}

// keyLabel returns a printable name for a key.
func keyLabel(k string) string {
	switch k {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	}
	return k
}

// Action translates a key message to a game action.
// Platform keys (rounds, back, quit) map to ActionNone except Quit.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.RotateLeft):
		return core.ActionRotateLeft
	case key.Matches(msg, k.RotateRight):
		return core.ActionRotateRight
	case key.Matches(msg, k.Destroy):
		return core.ActionDestroy
	case key.Matches(msg, k.Collect):
		return core.ActionCollect
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// MenuKeyMap defines the key bindings for the mode picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Rounds key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Rounds, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Rounds: key.NewBinding(
			key.WithKeys("t", "tab"),
			key.WithHelp("t", "rounds"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
