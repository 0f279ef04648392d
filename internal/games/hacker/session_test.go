package hacker

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hacker/internal/core"
	"github.com/vovakirdan/tui-hacker/internal/registry"
)

func newBoardSession(mode Mode, board ...core.Placement) *Session {
	s := NewSession(mode)
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	cfg.Size = 5
	cfg.Target = 1
	cfg.Board = board
	s.Reset(cfg)
	// Replace the RNG-driven spawner so steps are quiet.
	s.game.spawner = NewSpawner(quietRand())
	return s
}

func TestSessionRegistered(t *testing.T) {
	for _, mode := range []Mode{ModeClassic, ModeAdvanced} {
		if !registry.Exists(string(mode)) {
			t.Errorf("mode %q should be registered", mode)
		}
		g, err := registry.Create(string(mode))
		if err != nil {
			t.Fatalf("Create(%q) error: %v", mode, err)
		}
		if g.ID() != string(mode) {
			t.Errorf("ID() = %q, want %q", g.ID(), mode)
		}
	}
}

func TestSessionBeforeReset(t *testing.T) {
	s := NewSession(ModeClassic)
	if st := s.Apply(core.ActionDestroy); st != (core.GameState{}) {
		t.Errorf("Apply before Reset = %+v, want zero state", st)
	}
	if r := s.Step(); r.State != (core.GameState{}) {
		t.Errorf("Step before Reset = %+v, want zero state", r.State)
	}
	s.Render(core.NewScreen(80, 24))
}

func TestSessionResetDefaults(t *testing.T) {
	s := NewSession(ModeClassic)
	s.Reset(core.RuntimeConfig{Seed: 1})

	if s.Game().Size() != 7 || s.Game().Target() != 7 {
		t.Errorf("zero config should fall back to 7x7, got size=%d target=%d", s.Game().Size(), s.Game().Target())
	}
	if s.Config().StepInterval != 2*time.Second {
		t.Errorf("StepInterval = %v, want 2s", s.Config().StepInterval)
	}
}

func TestSessionBoardPlacement(t *testing.T) {
	s := newBoardSession(ModeClassic,
		core.Placement{X: 2, Y: 1, Tag: 'D'},
		core.Placement{X: 0, Y: 3, Tag: 'C'},
		core.Placement{X: 1, Y: 1, Tag: 'X'}, // unknown, skipped
		core.Placement{X: 3, Y: 3, Tag: 'P'}, // player, skipped
	)

	if n := s.Game().Grid().Len(); n != 2 {
		t.Fatalf("board should place 2 entities, got %d", n)
	}
	if e, ok := s.Game().Grid().GetEntity(NewPosition(2, 1)); !ok || e != Destroyable {
		t.Errorf("GetEntity(2,1) = %v, %v", e, ok)
	}
}

func TestSessionBoardWarnings(t *testing.T) {
	tests := []struct {
		name string
		cell core.Placement
		want string
	}{
		{"unknown tag", core.Placement{X: 1, Y: 1, Tag: 'X'}, "skipping board cell"},
		{"player tag", core.Placement{X: 1, Y: 1, Tag: 'P'}, "skipping player tag"},
		{"past the right edge", core.Placement{X: 5, Y: 1, Tag: 'D'}, "outside the grid"},
		{"past the bottom edge", core.Placement{X: 1, Y: 9, Tag: 'C'}, "outside the grid"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := NewSession(ModeClassic)
			s.SetLogger(log.New(&buf))

			cfg := core.DefaultConfig()
			cfg.Size = 5
			cfg.Board = []core.Placement{tc.cell}
			s.Reset(cfg)

			if n := s.Game().Grid().Len(); n != 0 {
				t.Errorf("cell should be dropped, grid has %d entities", n)
			}
			if !strings.Contains(buf.String(), tc.want) {
				t.Errorf("log should mention %q, got %q", tc.want, buf.String())
			}
		})
	}
}

func TestSessionApplyActions(t *testing.T) {
	s := newBoardSession(ModeClassic,
		core.Placement{X: 1, Y: 2, Tag: 'D'},
	)

	s.Apply(core.ActionRotateRight)
	if _, ok := s.Game().Grid().GetEntity(NewPosition(2, 2)); !ok {
		t.Fatal("rotate right should move the entity into the player column")
	}

	st := s.Apply(core.ActionDestroy)
	if st.Destroyed != 1 || st.Shots != 1 {
		t.Errorf("state after destroy = %+v", st)
	}
	shot, ok := s.LastShot()
	if !ok || shot.Outcome != Hit || shot.Entity != Destroyable {
		t.Errorf("LastShot() = %+v, %v", shot, ok)
	}

	s.Apply(core.ActionRotateLeft)
	st = s.Apply(core.ActionCollect)
	if st.Shots != 2 {
		t.Errorf("Shots = %d, want 2", st.Shots)
	}
	if shot, _ := s.LastShot(); shot.Outcome != Missed {
		t.Errorf("empty column should miss, got %v", shot.Outcome)
	}
}

func TestSessionFreezesAfterWin(t *testing.T) {
	s := newBoardSession(ModeClassic,
		core.Placement{X: 2, Y: 1, Tag: 'C'},
		core.Placement{X: 0, Y: 4, Tag: 'D'},
	)

	st := s.Apply(core.ActionCollect)
	if !st.Won || !st.GameOver() {
		t.Fatalf("collecting the target should win, got %+v", st)
	}

	before := s.Game().Snapshot()
	s.Apply(core.ActionRotateLeft)
	s.Apply(core.ActionDestroy)
	for range 10 {
		s.Step()
	}
	after := s.Game().Snapshot()

	if after.Ticks != before.Ticks || after.Shots != before.Shots || len(after.Cells) != len(before.Cells) {
		t.Errorf("ended session should ignore input and steps: before %+v after %+v", before, after)
	}
}

func TestSessionLossAndRestart(t *testing.T) {
	s := newBoardSession(ModeClassic,
		core.Placement{X: 0, Y: 1, Tag: 'D'},
	)

	r := s.Step()
	if !r.State.Lost {
		t.Fatalf("destroyable in row 1 should end the round, got %+v", r.State)
	}
	if r.State.Outcome() != "lost" {
		t.Errorf("Outcome() = %q", r.State.Outcome())
	}

	seed := s.Config().Seed
	st := s.Apply(core.ActionRestart)
	if st.GameOver() || st.Ticks != 0 {
		t.Errorf("restart should start a fresh round, got %+v", st)
	}
	if s.Config().Seed != seed+1 {
		t.Errorf("restart seed = %d, want %d", s.Config().Seed, seed+1)
	}
	if s.Game().Grid().Len() != 1 {
		t.Error("restart should re-apply the starting board")
	}
}

func TestSessionRestartIgnoredWhileRunning(t *testing.T) {
	s := newBoardSession(ModeClassic)
	s.Step()
	s.Apply(core.ActionRestart)
	if s.Game().Ticks() != 1 {
		t.Error("restart should only apply after the round ended")
	}
}

func TestSessionPause(t *testing.T) {
	classic := newBoardSession(ModeClassic)
	if st := classic.Apply(core.ActionPause); st.Paused {
		t.Error("classic mode has no pause")
	}

	s := newBoardSession(ModeAdvanced, core.Placement{X: 2, Y: 3, Tag: 'C'})
	if st := s.Apply(core.ActionPause); !st.Paused {
		t.Fatal("advanced mode should pause")
	}

	s.Step()
	s.Apply(core.ActionCollect)
	if s.Game().Ticks() != 0 || s.Game().TotalShots() != 0 {
		t.Error("paused session should ignore steps and shots")
	}

	s.Apply(core.ActionPause)
	s.Step()
	if s.Game().Ticks() != 1 {
		t.Errorf("Ticks() = %d after resume, want 1", s.Game().Ticks())
	}
	if s.Elapsed() != 2*time.Second {
		t.Errorf("Elapsed() = %v, want 2s", s.Elapsed())
	}
}

func TestSessionRender(t *testing.T) {
	s := newBoardSession(ModeAdvanced,
		core.Placement{X: 2, Y: 4, Tag: 'B'},
		core.Placement{X: 0, Y: 1, Tag: 'C'},
	)
	screen := core.NewScreen(80, 24)
	s.Render(screen)
	out := screen.String()

	for _, want := range []string{"Hacker (Advanced)", "Collected 0/1", "Destroyed 0", "Shots     0", "Timer     0m 0s"} {
		if !strings.Contains(out, want) {
			t.Errorf("render should contain %q", want)
		}
	}

	board := s.boardRect(screen)
	size := s.Game().Size()

	// Top field row holds the blocker, the player row sits at the bottom.
	if got := screen.Get(s.cellX(board, 2), board.Y+1); got != 'B' {
		t.Errorf("top row cell = %q, want 'B'", got)
	}
	if got := screen.Get(s.cellX(board, 0), board.Y+size-1); got != 'C' {
		t.Errorf("row 1 cell = %q, want 'C'", got)
	}
	if got := screen.Get(s.cellX(board, 2), board.Y+size+1); got != 'P' {
		t.Errorf("player cell = %q, want 'P'", got)
	}
	if c := screen.GetCell(s.cellX(board, 2), board.Y+1); c.Color != core.ColorShield {
		t.Errorf("blocker color = %v, want blue", c.Color)
	}
}

func TestSessionRenderOverlays(t *testing.T) {
	s := newBoardSession(ModeClassic, core.Placement{X: 2, Y: 1, Tag: 'D'})
	s.Step()

	screen := core.NewScreen(80, 24)
	s.Render(screen)
	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("lost round should render the game over overlay")
	}

	small := core.NewScreen(20, 5)
	s.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Error("tiny screen should ask for a resize")
	}
}

func TestFormatTimer(t *testing.T) {
	testCases := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0m 0s"},
		{4 * time.Second, "0m 4s"},
		{64 * time.Second, "1m 4s"},
		{1500 * time.Millisecond, "0m 1s"},
	}
	for _, tc := range testCases {
		if got := formatTimer(tc.d); got != tc.expected {
			t.Errorf("formatTimer(%v) = %q, want %q", tc.d, got, tc.expected)
		}
	}
}
