package autopilot

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-hacker/internal/core"
	"github.com/vovakirdan/tui-hacker/internal/games/hacker"
)

// zeroRand always draws 0, so the spawner never places anything.
type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

func (zeroRand) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// cycleRand returns its values in order, wrapping around.
type cycleRand struct {
	vals []int
	i    int
}

func (r *cycleRand) IntN(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func (r *cycleRand) Perm(n int) []int { return zeroRand{}.Perm(n) }

func boardGame(cells map[hacker.Position]hacker.Entity) *hacker.Game {
	g := hacker.NewGame(5, 1, zeroRand{})
	for pos, e := range cells {
		g.Grid().AddEntity(pos, e)
	}
	return g
}

func TestNames(t *testing.T) {
	expected := []string{"greedy", "idle", "random"}
	if got := Names(); !slices.Equal(got, expected) {
		t.Errorf("Names() = %v, want %v", got, expected)
	}
}

func TestNewUnknown(t *testing.T) {
	if _, err := New("psychic", zeroRand{}); err == nil {
		t.Error("unknown policy should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("idle", func(hacker.Rand) Policy { return Idle{} })
}

func TestRandomPolicy(t *testing.T) {
	p, err := New("random", &cycleRand{vals: []int{1, 2, 3, 4, 0}})
	if err != nil {
		t.Fatal(err)
	}

	g := boardGame(nil)
	expected := []core.Action{
		core.ActionRotateLeft,
		core.ActionRotateRight,
		core.ActionDestroy,
		core.ActionCollect,
		core.ActionNone,
	}
	for i, want := range expected {
		if got := p.Next(g); got != want {
			t.Errorf("draw %d = %v, want %v", i, got, want)
		}
	}
}

func TestGreedyDecisions(t *testing.T) {
	pos := hacker.NewPosition
	testCases := []struct {
		name     string
		cells    map[hacker.Position]hacker.Entity
		expected core.Action
	}{
		{"empty board", nil, core.ActionNone},
		{"destroyable overhead", map[hacker.Position]hacker.Entity{pos(2, 3): hacker.Destroyable}, core.ActionDestroy},
		{"collectable overhead", map[hacker.Position]hacker.Entity{pos(2, 2): hacker.Collectable}, core.ActionCollect},
		{
			"urgent destroyable beats overhead collectable",
			map[hacker.Position]hacker.Entity{pos(0, 1): hacker.Destroyable, pos(2, 2): hacker.Collectable},
			core.ActionRotateRight,
		},
		{"shorter way is left", map[hacker.Position]hacker.Entity{pos(4, 3): hacker.Destroyable}, core.ActionRotateLeft},
		{"collectable when no threat", map[hacker.Position]hacker.Entity{pos(1, 4): hacker.Collectable}, core.ActionRotateRight},
		{
			"shielded column is skipped",
			map[hacker.Position]hacker.Entity{pos(2, 1): hacker.Blocker, pos(2, 3): hacker.Destroyable},
			core.ActionNone,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := boardGame(tc.cells)
			if got := (Greedy{}).Next(g); got != tc.expected {
				t.Errorf("Next() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestRotateToward(t *testing.T) {
	testCases := []struct {
		x, px, size int
		expected    core.Action
	}{
		{0, 2, 5, core.ActionRotateRight},
		{4, 2, 5, core.ActionRotateLeft},
		{3, 3, 7, core.ActionRotateRight},
		{0, 3, 7, core.ActionRotateRight},
		{6, 3, 7, core.ActionRotateLeft},
		{0, 0, 1, core.ActionRotateRight},
	}
	for _, tc := range testCases {
		if got := rotateToward(tc.x, tc.px, tc.size); got != tc.expected {
			t.Errorf("rotateToward(%d, %d, %d) = %v, want %v", tc.x, tc.px, tc.size, got, tc.expected)
		}
	}
}

func runConfig(seed int64) RunConfig {
	rt := core.DefaultConfig()
	rt.Seed = seed
	return RunConfig{Runtime: rt, MaxTicks: 60, ActionsPerTick: 2}
}

func TestPlayIdle(t *testing.T) {
	res, err := Play(context.Background(), Idle{}, runConfig(3), nil)
	if err != nil {
		t.Fatalf("Play() error: %v", err)
	}
	if res.Snapshot.Shots != 0 {
		t.Errorf("idle policy should never shoot, got %d shots", res.Snapshot.Shots)
	}
	if res.Outcome != "lost" && res.Outcome != "abandoned" {
		t.Errorf("idle policy cannot win, got %q", res.Outcome)
	}
	if res.Snapshot.Ticks > 60 {
		t.Errorf("Ticks = %d exceeds the cap", res.Snapshot.Ticks)
	}
}

func TestPlayDeterministic(t *testing.T) {
	a, err := Play(context.Background(), Greedy{}, runConfig(42), nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Play(context.Background(), Greedy{}, runConfig(42), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed should replay identically:\n%+v\n%+v", a, b)
	}
	if a.Policy != "greedy" || a.Seed != 42 {
		t.Errorf("result header = %q/%d", a.Policy, a.Seed)
	}
	if a.Outcome == "running" {
		t.Error("a finished run is never reported as running")
	}
}

func TestPlayWinsScriptedBoard(t *testing.T) {
	cfg := runConfig(1)
	cfg.Runtime.Size = 5
	cfg.Runtime.Target = 1
	cfg.Runtime.Board = []core.Placement{{X: 0, Y: 4, Tag: 'C'}}

	res, err := Play(context.Background(), Greedy{}, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Two rotations bring the collectable overhead before the first step,
	// and it is still the lowest entity in that column afterwards.
	if res.Outcome != "won" || res.Snapshot.Collected != 1 || res.Snapshot.Ticks != 1 {
		t.Errorf("greedy should win on tick 1, got %s with %+v", res.Outcome, res.Snapshot)
	}
	if res.Snapshot.State != hacker.StateWon {
		t.Errorf("snapshot state %q disagrees with outcome", res.Snapshot.State)
	}
}

func TestPlayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Play(ctx, Idle{}, runConfig(1), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Play() error = %v, want context.Canceled", err)
	}
	if res.Outcome != "abandoned" || res.Snapshot.Ticks != 0 {
		t.Errorf("cancelled round = %+v", res)
	}
}
