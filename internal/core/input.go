package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionRotateLeft         // A, Left arrow
	ActionRotateRight        // D, Right arrow
	ActionDestroy            // X, Space - destroy shot
	ActionCollect            // C, Enter - collect shot
	ActionPause              // P - pause/unpause (advanced mode)
	ActionRestart            // R - restart after the round ended
	ActionQuit               // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRotateLeft:
		return "RotateLeft"
	case ActionRotateRight:
		return "RotateRight"
	case ActionDestroy:
		return "Destroy"
	case ActionCollect:
		return "Collect"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseAction returns the action for its String form.
func ParseAction(name string) (Action, bool) {
	for a := ActionNone; a <= ActionQuit; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return ActionNone, false
}
