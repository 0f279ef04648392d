package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hacker/internal/core"
	_ "github.com/vovakirdan/tui-hacker/internal/games/hacker" // register modes
	"github.com/vovakirdan/tui-hacker/internal/storage"
)

// stubGame loses after lostAt steps and counts destroy shots.
type stubGame struct {
	resets  int
	applied []core.Action
	state   core.GameState
	lostAt  int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *stubGame) Apply(a core.Action) core.GameState {
	g.applied = append(g.applied, a)
	switch a {
	case core.ActionDestroy:
		g.state.Shots++
	case core.ActionPause:
		g.state.Paused = !g.state.Paused
	}
	return g.state
}

func (g *stubGame) Step() core.StepResult {
	g.state.Ticks++
	if g.lostAt > 0 && g.state.Ticks >= g.lostAt {
		g.state.Lost = true
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub board", core.ColorDefault)
}

func (g *stubGame) State() core.GameState { return g.state }

func newTestModel(t *testing.T, g *stubGame) (Model, *storage.Store) {
	t.Helper()
	store, err := storage.Open()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := core.DefaultConfig()
	cfg.Seed = 99
	m := NewModel(g, store, cfg, DefaultKeyMap(), nil)
	m.Init()
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func roundCount(t *testing.T, store *storage.Store) []storage.Round {
	t.Helper()
	rounds, err := store.Rounds(10)
	if err != nil {
		t.Fatal(err)
	}
	return rounds
}

func TestModelAppliesKeysImmediately(t *testing.T) {
	g := &stubGame{}
	m, _ := newTestModel(t, g)

	m, _ = update(t, m, runeKey('x'))
	m, _ = update(t, m, runeKey('a'))
	m, _ = update(t, m, runeKey('z'))

	if len(g.applied) != 2 || g.applied[0] != core.ActionDestroy || g.applied[1] != core.ActionRotateLeft {
		t.Errorf("applied = %v", g.applied)
	}
	if m.State().Shots != 1 {
		t.Errorf("State().Shots = %d, want 1", m.State().Shots)
	}
	if g.state.Ticks != 0 {
		t.Error("keys must not step the simulation")
	}
}

func TestModelTicksStepAndIgnoreStaleChains(t *testing.T) {
	g := &stubGame{}
	m, _ := newTestModel(t, g)

	m, cmd := update(t, m, TickMsg{Gen: 0, Time: time.Now()})
	if g.state.Ticks != 1 || cmd == nil {
		t.Fatalf("tick should step once and schedule the next, ticks=%d", g.state.Ticks)
	}

	m, cmd = update(t, m, TickMsg{Gen: 7, Time: time.Now()})
	if g.state.Ticks != 1 || cmd != nil {
		t.Error("ticks of another chain should be dropped")
	}
	_ = m
}

func TestModelSavesFinishedRoundOnce(t *testing.T) {
	g := &stubGame{lostAt: 2}
	m, store := newTestModel(t, g)

	m, _ = update(t, m, runeKey('x'))
	for range 4 {
		m, _ = update(t, m, TickMsg{})
	}

	rounds := roundCount(t, store)
	if len(rounds) != 1 {
		t.Fatalf("expected 1 saved round, got %d", len(rounds))
	}
	r := rounds[0]
	if r.Outcome != storage.OutcomeLost || r.Mode != "stub" || r.Seed != 99 || r.Shots != 1 {
		t.Errorf("saved round = %+v", r)
	}
	if r.SessionID != store.SessionID() {
		t.Errorf("round should carry the store session ID")
	}

	// Restart starts a new round that can be saved again.
	m, _ = update(t, m, runeKey('r'))
	if g.resets != 2 || m.State().GameOver() {
		t.Fatalf("restart should reset the game, resets=%d", g.resets)
	}
	for range 2 {
		m, _ = update(t, m, TickMsg{})
	}
	if n := len(roundCount(t, store)); n != 2 {
		t.Errorf("expected 2 saved rounds after restart, got %d", n)
	}
}

func TestModelRestartIgnoredWhileRunning(t *testing.T) {
	g := &stubGame{}
	m, _ := newTestModel(t, g)

	m, _ = update(t, m, TickMsg{})
	update(t, m, runeKey('r'))
	if g.resets != 1 {
		t.Errorf("restart mid-round should be ignored, resets=%d", g.resets)
	}
}

func TestModelQuitAbandonsRound(t *testing.T) {
	g := &stubGame{}
	m, store := newTestModel(t, g)

	m, _ = update(t, m, TickMsg{})
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}

	rounds := roundCount(t, store)
	if len(rounds) != 1 || rounds[0].Outcome != storage.OutcomeAbandoned {
		t.Errorf("quitting mid-round should record an abandoned round, got %+v", rounds)
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelQuitUntouchedRoundNotSaved(t *testing.T) {
	g := &stubGame{}
	m, store := newTestModel(t, g)

	update(t, m, runeKey('q'))
	if n := len(roundCount(t, store)); n != 0 {
		t.Errorf("an untouched round should not be saved, got %d", n)
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &stubGame{}
	m, _ := newTestModel(t, g)

	m, _ = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back is only honoured when paused or over")
	}

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back should leave a paused game")
	}
}

func TestModelRoundsView(t *testing.T) {
	g := &stubGame{lostAt: 1}
	m, _ := newTestModel(t, g)
	m, _ = update(t, m, TickMsg{})

	m, _ = update(t, m, runeKey('t'))
	view := m.View()
	if !strings.Contains(view, "ROUNDS THIS SESSION") || !strings.Contains(view, "Lost 1") {
		t.Errorf("rounds view should list the lost round, got:\n%s", view)
	}

	// Game keys go to the rounds view while it is open.
	m, _ = update(t, m, runeKey('x'))
	if len(g.applied) != 0 {
		t.Error("game should not receive keys while the rounds view is open")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !strings.Contains(m.View(), "stub board") {
		t.Error("esc should return to the board")
	}
}

func TestModelRoundsViewHoldsRound(t *testing.T) {
	tests := []struct {
		name  string
		ticks int
	}{
		{"single tick", 1},
		{"past the losing tick", 3},
		{"long look", 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := &stubGame{lostAt: 3}
			m, store := newTestModel(t, g)

			m, _ = update(t, m, runeKey('t'))
			for range tc.ticks {
				var cmd tea.Cmd
				m, cmd = update(t, m, TickMsg{})
				if cmd == nil {
					t.Fatal("tick chain should keep running behind the rounds view")
				}
			}
			if g.state.Ticks != 0 || m.State().GameOver() {
				t.Fatalf("round advanced behind the rounds view, ticks=%d", g.state.Ticks)
			}
			if n := len(roundCount(t, store)); n != 0 {
				t.Errorf("no round should be saved while held, got %d", n)
			}

			m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
			update(t, m, TickMsg{})
			if g.state.Ticks != 1 {
				t.Errorf("closing the rounds view should resume stepping, ticks=%d", g.state.Ticks)
			}
		})
	}
}

func TestModelViewHasHelp(t *testing.T) {
	m, _ := newTestModel(t, &stubGame{})
	view := m.View()
	if !strings.Contains(view, "stub board") || !strings.Contains(view, "destroy") {
		t.Errorf("view should show board and help, got:\n%s", view)
	}
}

func TestSessionModelFlow(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Seed = 5
	s := NewSessionModel(nil, cfg, DefaultKeyMap(), nil)

	if !strings.Contains(s.View(), "H A C K E R") {
		t.Fatal("session should open on the menu")
	}

	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.current != screenGame || s.game == nil || cmd == nil {
		t.Fatalf("enter should start a game, screen=%v", s.current)
	}
	if s.game.gen != 1 {
		t.Errorf("first game should own tick chain 1, got %d", s.game.gen)
	}

	next, _ = s.Update(runeKey('q'))
	s = next.(SessionModel)
	if !s.quitting {
		t.Error("q in game should end the session")
	}
}

func TestSessionModelRoundsHoldGame(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Seed = 5
	s := NewSessionModel(nil, cfg, DefaultKeyMap(), nil)

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	next, _ = s.Update(runeKey('t'))
	s = next.(SessionModel)

	for range 5 {
		next, _ = s.Update(TickMsg{Gen: s.game.gen})
		s = next.(SessionModel)
	}
	if ticks := s.game.State().Ticks; ticks != 0 {
		t.Errorf("game stepped %d times behind the rounds view", ticks)
	}
}

func TestSessionModelRounds(t *testing.T) {
	s := NewSessionModel(nil, core.DefaultConfig(), DefaultKeyMap(), nil)

	next, _ := s.Update(runeKey('t'))
	s = next.(SessionModel)
	if s.current != screenRounds {
		t.Fatalf("t should open the rounds view, screen=%v", s.current)
	}
	if !strings.Contains(s.View(), "No rounds played yet") {
		t.Error("empty ledger should say so")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.current != screenMenu {
		t.Error("esc should return to the menu")
	}
}
