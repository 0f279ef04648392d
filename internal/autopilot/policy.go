// Package autopilot provides scripted players that drive a hacker session
// without a terminal. Policies register themselves by name, like play modes.
package autopilot

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-hacker/internal/core"
	"github.com/vovakirdan/tui-hacker/internal/games/hacker"
)

// Policy picks the next action for a game.
// Policies only read the game; the runner applies the action.
type Policy interface {
	Name() string
	Next(g *hacker.Game) core.Action
}

// Factory creates a policy. Policies that need randomness draw from rng.
type Factory func(rng hacker.Rand) Policy

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a policy factory. Panics on a duplicate name.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("autopilot: policy %q already registered", name))
	}
	factories[name] = f
}

// New creates the named policy.
func New(name string, rng hacker.Rand) (Policy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("autopilot: unknown policy %q", name)
	}
	return f(rng), nil
}

// Names returns the registered policy names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("idle", func(hacker.Rand) Policy { return Idle{} })
	Register("random", func(rng hacker.Rand) Policy { return &Random{rng: rng} })
	Register("greedy", func(hacker.Rand) Policy { return Greedy{} })
}

// Idle never acts.
type Idle struct{}

func (Idle) Name() string                  { return "idle" }
func (Idle) Next(*hacker.Game) core.Action { return core.ActionNone }

// Random presses a uniformly chosen game key, or nothing.
type Random struct {
	rng hacker.Rand
}

var randomActions = []core.Action{
	core.ActionNone,
	core.ActionRotateLeft,
	core.ActionRotateRight,
	core.ActionDestroy,
	core.ActionCollect,
}

func (r *Random) Name() string { return "random" }

func (r *Random) Next(*hacker.Game) core.Action {
	return randomActions[r.rng.IntN(len(randomActions))]
}

// Greedy shoots whatever the player column offers and otherwise rotates
// toward the most pressing target. A destroyable one row above the player
// always takes priority.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Next(g *hacker.Game) core.Action {
	fronts := frontline(g)
	px := g.Player().X()

	if t, ok := mostUrgent(fronts, hacker.Destroyable, 1); ok && t.x != px {
		return rotateToward(t.x, px, g.Size())
	}

	if f, ok := fronts[px]; ok {
		switch f.entity {
		case hacker.Destroyable:
			return core.ActionDestroy
		case hacker.Collectable:
			return core.ActionCollect
		}
	}

	if t, ok := mostUrgent(fronts, hacker.Destroyable, g.Size()); ok {
		return rotateToward(t.x, px, g.Size())
	}
	if t, ok := mostUrgent(fronts, hacker.Collectable, g.Size()); ok {
		return rotateToward(t.x, px, g.Size())
	}
	return core.ActionNone
}

// front is the first entity a shot up column x would meet.
type front struct {
	x, y   int
	entity hacker.Entity
}

// frontline returns the lowest entity of each occupied column.
func frontline(g *hacker.Game) map[int]front {
	fronts := make(map[int]front)
	// Positions are ordered by row, so the first hit per column is the lowest.
	for _, pos := range g.Grid().Positions() {
		if _, seen := fronts[pos.X()]; seen {
			continue
		}
		e, _ := g.Grid().GetEntity(pos)
		fronts[pos.X()] = front{x: pos.X(), y: pos.Y(), entity: e}
	}
	return fronts
}

// mostUrgent returns the lowest front of the given kind at or below maxY.
// Ties go to the smaller column.
func mostUrgent(fronts map[int]front, kind hacker.Entity, maxY int) (front, bool) {
	var best front
	found := false
	for _, f := range fronts {
		if f.entity != kind || f.y > maxY {
			continue
		}
		if !found || f.y < best.y || (f.y == best.y && f.x < best.x) {
			best = f
			found = true
		}
	}
	return best, found
}

// rotateToward returns the rotation that brings column x to the player
// column px in the fewest steps.
func rotateToward(x, px, size int) core.Action {
	right := ((px-x)%size + size) % size
	if right <= size-right {
		return core.ActionRotateRight
	}
	return core.ActionRotateLeft
}
