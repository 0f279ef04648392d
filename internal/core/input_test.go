package core

import "testing"

func TestStateOutcome(t *testing.T) {
	tests := []struct {
		state    GameState
		outcome  string
		gameOver bool
	}{
		{GameState{}, "running", false},
		{GameState{Won: true}, "won", true},
		{GameState{Lost: true}, "lost", true},
		{GameState{Won: true, Lost: true}, "lost", true},
	}

	for _, tc := range tests {
		if got := tc.state.Outcome(); got != tc.outcome {
			t.Errorf("Outcome() = %q, expected %q", got, tc.outcome)
		}
		if got := tc.state.GameOver(); got != tc.gameOver {
			t.Errorf("GameOver() = %v, expected %v", got, tc.gameOver)
		}
	}
}

func TestParseAction(t *testing.T) {
	for a := ActionNone; a <= ActionQuit; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseAction("Jump"); ok {
		t.Error("ParseAction should reject unknown names")
	}
}
