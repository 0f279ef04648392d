package hacker

import "math/rand/v2"

// Rand is the randomness the spawner needs. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Perm(n int) []int
}

// NewRand returns a seeded PCG generator.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// coreKinds are drawn with replacement for each spawned entity.
var coreKinds = []rune{TagDestroyable, TagCollectable}

// blockerOdds is the denominator of the blocker spawn chance (1 in 4).
const blockerOdds = 4

// Spawn is one entity to place on the top row.
type Spawn struct {
	X      int
	Entity Entity
}

// Spawner samples new top-row entities.
type Spawner struct {
	rng Rand
}

// NewSpawner creates a spawner reading from rng.
func NewSpawner(rng Rand) *Spawner {
	return &Spawner{rng: rng}
}

// Spawn draws the entities for one tick on a grid of the given size.
//
// The count of core entities is uniform in [0, size-3], each kind drawn
// independently from {Destroyable, Collectable}. A blocker is appended with
// probability 1/4. Columns are distinct, sampled without replacement, and
// paired with the kinds in order.
func (s *Spawner) Spawn(size int) []Spawn {
	entityCount := 0
	if size >= 3 {
		entityCount = s.rng.IntN(size - 2)
	}

	kinds := make([]rune, 0, entityCount+1)
	for range entityCount {
		kinds = append(kinds, coreKinds[s.rng.IntN(len(coreKinds))])
	}

	if s.rng.IntN(blockerOdds) == blockerOdds-1 {
		kinds = append(kinds, TagBlocker)
	}

	if len(kinds) == 0 || size <= 0 {
		return nil
	}
	if len(kinds) > size {
		kinds = kinds[:size]
	}

	columns := s.rng.Perm(size)[:len(kinds)]

	spawns := make([]Spawn, len(kinds))
	for i, tag := range kinds {
		spawns[i] = Spawn{X: columns[i], Entity: MustParseEntity(tag)}
	}
	return spawns
}
