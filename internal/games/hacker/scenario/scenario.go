// Package scenario loads starting boards for the hacker engine from YAML.
// This package depends on hacker but hacker does not depend on scenario.
package scenario

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-hacker/internal/core"
	"github.com/vovakirdan/tui-hacker/internal/games/hacker"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrNotFound is returned when a scenario name matches no built-in or file.
var ErrNotFound = errors.New("scenario: not found")

// ErrDoesNotFit is returned when a placement lies outside the requested grid.
var ErrDoesNotFit = errors.New("scenario: placement does not fit")

// YAMLScenario is the on-disk layout of a scenario file.
type YAMLScenario struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Size     int          `yaml:"size"`
	Target   int          `yaml:"target"`
	Entities []YAMLEntity `yaml:"entities"`
}

// YAMLEntity places one entity by display tag.
type YAMLEntity struct {
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
	Tag string `yaml:"tag"`
}

// Placement is a validated entity position.
type Placement struct {
	Pos    hacker.Position
	Entity hacker.Entity
}

// Scenario is a parsed, validated starting board.
type Scenario struct {
	ID         string
	Name       string
	Size       int
	Target     int
	Placements []Placement
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (Scenario, error) {
	var ys YAMLScenario
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Scenario{}, fmt.Errorf("scenario: yaml unmarshal: %w", err)
	}

	if ys.Size < 1 {
		return Scenario{}, fmt.Errorf("scenario %q: size must be positive, got %d", ys.ID, ys.Size)
	}
	if ys.Target < 1 {
		return Scenario{}, fmt.Errorf("scenario %q: target must be positive, got %d", ys.ID, ys.Target)
	}

	bounds := hacker.NewGrid(ys.Size)
	seen := make(map[hacker.Position]bool, len(ys.Entities))

	sc := Scenario{
		ID:         ys.ID,
		Name:       ys.Name,
		Size:       ys.Size,
		Target:     ys.Target,
		Placements: make([]Placement, 0, len(ys.Entities)),
	}

	for i, ye := range ys.Entities {
		tag, n := utf8.DecodeRuneInString(ye.Tag)
		if n == 0 || n != len(ye.Tag) {
			return Scenario{}, fmt.Errorf("scenario %q: entity %d: tag must be one character, got %q", ys.ID, i, ye.Tag)
		}
		e, err := hacker.ParseEntity(tag)
		if err != nil {
			return Scenario{}, fmt.Errorf("scenario %q: entity %d: %w", ys.ID, i, err)
		}
		if e == hacker.Player {
			return Scenario{}, fmt.Errorf("scenario %q: entity %d: the player is not placed on the grid", ys.ID, i)
		}

		pos := hacker.NewPosition(ye.X, ye.Y)
		if !bounds.InBounds(pos) {
			return Scenario{}, fmt.Errorf("scenario %q: entity %d: %v out of bounds", ys.ID, i, pos)
		}
		if seen[pos] {
			return Scenario{}, fmt.Errorf("scenario %q: entity %d: %v already occupied", ys.ID, i, pos)
		}
		seen[pos] = true

		sc.Placements = append(sc.Placements, Placement{Pos: pos, Entity: e})
	}

	return sc, nil
}

// LoadFile reads a scenario from disk.
func LoadFile(p string) (Scenario, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: failed to read %s: %w", p, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, err
	}
	if sc.ID == "" {
		sc.ID = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	return sc, nil
}

// Builtin returns the scenarios shipped with the binary, sorted by ID.
func Builtin() ([]Scenario, error) {
	entries, err := fs.Glob(builtinFS, "builtin/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("scenario: list builtin: %w", err)
	}

	scenarios := make([]Scenario, 0, len(entries))
	for _, name := range entries {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("scenario: read %s: %w", name, err)
		}
		sc, err := Parse(data)
		if err != nil {
			return nil, err
		}
		if sc.ID == "" {
			sc.ID = strings.TrimSuffix(path.Base(name), ".yaml")
		}
		scenarios = append(scenarios, sc)
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].ID < scenarios[j].ID
	})
	return scenarios, nil
}

// Lookup resolves a built-in scenario ID or, failing that, a file path.
func Lookup(ref string) (Scenario, error) {
	builtin, err := Builtin()
	if err != nil {
		return Scenario{}, err
	}
	for _, sc := range builtin {
		if sc.ID == ref {
			return sc, nil
		}
	}

	if _, statErr := os.Stat(ref); statErr != nil {
		return Scenario{}, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return LoadFile(ref)
}

// Board returns the placements as a starting board for a grid of the
// given size. Every placement must fit; none is dropped.
func (s Scenario) Board(size int) ([]core.Placement, error) {
	bounds := hacker.NewGrid(size)
	board := make([]core.Placement, 0, len(s.Placements))
	for _, p := range s.Placements {
		if !bounds.InBounds(p.Pos) {
			return nil, fmt.Errorf("%w: scenario %q places %v on a %dx%d grid",
				ErrDoesNotFit, s.ID, p.Pos, size, size)
		}
		board = append(board, core.Placement{
			X:   p.Pos.X(),
			Y:   p.Pos.Y(),
			Tag: p.Entity.Display(),
		})
	}
	return board, nil
}
