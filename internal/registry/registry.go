// Package registry keeps the play modes the platform can start. Modes
// register themselves from init() so the platform never imports them by name.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-hacker/internal/core"
)

// Game is one playable mode as seen by the platform. Implementations hold
// pure game logic; the platform owns input mapping, timing and output.
type Game interface {
	// ID is the stable mode name used on the command line and in the
	// round ledger, e.g. "classic".
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new round. It is called before the first Apply or
	// Step and again for every restart.
	Reset(cfg core.RuntimeConfig)

	// Apply handles one input action as soon as it arrives.
	Apply(a core.Action) core.GameState

	// Step advances the simulation by one tick of the step interval.
	Step() core.StepResult

	// Render draws the round into dst.
	Render(dst *core.Screen)

	// State returns the current round state.
	State() core.GameState
}

// Summarizer is implemented by modes that describe themselves in one line.
type Summarizer interface {
	Summary() string
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID      string
	Title   string
	Summary string
}

// Factory creates a fresh game in one mode.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

// Registry maps mode IDs to factories. The zero value is ready to use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// Register adds a mode. The factory is called once to read the title.
// It panics on an empty or duplicate ID.
func (r *Registry) Register(id string, f Factory) {
	if id == "" {
		panic("registry: empty mode id")
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if s, ok := g.(Summarizer); ok {
		info.Summary = s.Summary()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	if r.entries == nil {
		r.entries = make(map[string]entry)
	}
	r.entries[id] = entry{info: info, factory: f}
}

// List returns the registered modes sorted by ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]GameInfo, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Create starts a new game in the mode with the given ID.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[id]
	return ok
}

var defaultRegistry Registry

// Register adds a mode to the process-wide registry.
func Register(id string, f Factory) { defaultRegistry.Register(id, f) }

// List returns the modes of the process-wide registry.
func List() []GameInfo { return defaultRegistry.List() }

// Create starts a game from the process-wide registry.
func Create(id string) (Game, error) { return defaultRegistry.Create(id) }

// Exists reports whether id is in the process-wide registry.
func Exists(id string) bool { return defaultRegistry.Exists(id) }
