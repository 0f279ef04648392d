package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	store, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if _, err := uuid.Parse(store.SessionID()); err != nil {
		t.Errorf("SessionID() = %q is not a UUID: %v", store.SessionID(), err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}

func TestStoresAreIsolated(t *testing.T) {
	a := openStore(t)
	b := openStore(t)

	if a.SessionID() == b.SessionID() {
		t.Error("each store should get its own session ID")
	}

	if _, err := a.SaveRound(Round{Mode: "classic", Outcome: OutcomeWon}); err != nil {
		t.Fatal(err)
	}

	rounds, err := b.Rounds(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) != 0 {
		t.Errorf("a fresh store should be empty, got %d rounds", len(rounds))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openStore(t)

	created := time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)
	saved, err := store.SaveRound(Round{
		Mode:      "advanced",
		Seed:      42,
		Size:      7,
		Target:    7,
		Collected: 7,
		Destroyed: 3,
		Shots:     12,
		Ticks:     40,
		Outcome:   OutcomeWon,
		CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if saved.ID == "" || saved.SessionID != store.SessionID() {
		t.Errorf("SaveRound should fill ids, got %+v", saved)
	}

	rounds, err := store.Rounds(10)
	if err != nil {
		t.Fatalf("Rounds() failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("Expected 1 round, got %d", len(rounds))
	}

	got := rounds[0]
	if got.ID != saved.ID || got.Mode != "advanced" || got.Seed != 42 || got.Shots != 12 || got.Outcome != OutcomeWon {
		t.Errorf("Rounds()[0] = %+v, want %+v", got, saved)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestStoreRoundsNewestFirst(t *testing.T) {
	store := openStore(t)

	for i := range 5 {
		if _, err := store.SaveRound(Round{Mode: "classic", Seed: int64(i), Outcome: OutcomeLost}); err != nil {
			t.Fatal(err)
		}
	}

	rounds, err := store.Rounds(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(rounds))
	}
	for i, want := range []int64{4, 3, 2} {
		if rounds[i].Seed != want {
			t.Errorf("rounds[%d].Seed = %d, want %d", i, rounds[i].Seed, want)
		}
	}
}

func TestStoreSaveRoundInvalid(t *testing.T) {
	store := openStore(t)

	testCases := []struct {
		name  string
		round Round
	}{
		{"no outcome", Round{Mode: "classic"}},
		{"bad outcome", Round{Mode: "classic", Outcome: "draw"}},
		{"no mode", Round{Outcome: OutcomeWon}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.SaveRound(tc.round); !errors.Is(err, ErrInvalidRound) {
				t.Errorf("SaveRound() = %v, want ErrInvalidRound", err)
			}
		})
	}
}

func TestStoreBestRound(t *testing.T) {
	store := openStore(t)

	best, err := store.BestRound()
	if err != nil {
		t.Fatalf("BestRound() failed: %v", err)
	}
	if best != nil {
		t.Errorf("empty ledger should have no best round, got %+v", best)
	}

	rounds := []Round{
		{Mode: "classic", Seed: 1, Collected: 5, Ticks: 10, Outcome: OutcomeLost},
		{Mode: "classic", Seed: 2, Collected: 7, Ticks: 60, Outcome: OutcomeWon},
		{Mode: "classic", Seed: 3, Collected: 7, Ticks: 35, Outcome: OutcomeWon},
		{Mode: "classic", Seed: 4, Collected: 6, Ticks: 5, Outcome: OutcomeAbandoned},
	}
	for _, r := range rounds[:1] {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatal(err)
		}
	}

	best, err = store.BestRound()
	if err != nil || best == nil || best.Seed != 1 {
		t.Fatalf("only round should be best, got %+v, %v", best, err)
	}

	for _, r := range rounds[1:] {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatal(err)
		}
	}

	best, err = store.BestRound()
	if err != nil {
		t.Fatal(err)
	}
	if best.Seed != 3 {
		t.Errorf("fastest win should be best, got seed %d", best.Seed)
	}
}

func TestStoreStats(t *testing.T) {
	store := openStore(t)

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st != (Stats{}) || st.Accuracy() != 0 {
		t.Errorf("empty stats = %+v", st)
	}

	rounds := []Round{
		{Mode: "classic", Collected: 7, Destroyed: 2, Shots: 12, Ticks: 30, Outcome: OutcomeWon},
		{Mode: "classic", Collected: 7, Destroyed: 1, Shots: 10, Ticks: 25, Outcome: OutcomeWon},
		{Mode: "advanced", Collected: 2, Destroyed: 1, Shots: 8, Ticks: 9, Outcome: OutcomeLost},
		{Mode: "advanced", Shots: 0, Ticks: 1, Outcome: OutcomeAbandoned},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatal(err)
		}
	}

	st, err = store.Stats()
	if err != nil {
		t.Fatal(err)
	}

	expected := Stats{
		Rounds:    4,
		Wins:      2,
		Losses:    1,
		Abandoned: 1,
		Collected: 16,
		Destroyed: 4,
		Shots:     30,
		BestTicks: 25,
	}
	if st != expected {
		t.Errorf("Stats() = %+v, want %+v", st, expected)
	}
	if acc := st.Accuracy(); acc < 0.66 || acc > 0.67 {
		t.Errorf("Accuracy() = %.3f, want 20/30", acc)
	}
}
