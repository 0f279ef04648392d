// Package storage keeps a per-session ledger of played rounds in a private
// in-memory SQLite database. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies. Nothing is written to disk.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome is how a round ended.
type Outcome string

const (
	OutcomeWon       Outcome = "won"
	OutcomeLost      Outcome = "lost"
	OutcomeAbandoned Outcome = "abandoned"
)

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	return o == OutcomeWon || o == OutcomeLost || o == OutcomeAbandoned
}

// ErrInvalidRound is returned when a round cannot be recorded as given.
var ErrInvalidRound = errors.New("storage: invalid round")

// Store manages the in-memory ledger for one session.
type Store struct {
	db        *sql.DB
	sessionID string
}

// Round is one recorded play-through.
type Round struct {
	ID        string
	SessionID string
	Mode      string
	Seed      int64
	Size      int
	Target    int
	Collected int
	Destroyed int
	Shots     int
	Ticks     int
	Outcome   Outcome
	CreatedAt time.Time
}

// Stats aggregates the rounds of a session.
type Stats struct {
	Rounds    int
	Wins      int
	Losses    int
	Abandoned int
	Collected int
	Destroyed int
	Shots     int
	BestTicks int // fewest ticks to a win, 0 without wins
}

// Accuracy returns the share of shots that removed an entity.
func (s Stats) Accuracy() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Collected+s.Destroyed) / float64(s.Shots)
}

// Open creates a fresh in-memory ledger with a new session ID.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, sessionID: uuid.NewString()}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			session_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			seed INTEGER NOT NULL,
			size INTEGER NOT NULL,
			target INTEGER NOT NULL,
			collected INTEGER NOT NULL DEFAULT 0,
			destroyed INTEGER NOT NULL DEFAULT 0,
			shots INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_outcome ON rounds(outcome);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection. The ledger is gone afterwards.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SessionID returns the identifier stamped on rounds saved by this store.
func (s *Store) SessionID() string {
	return s.sessionID
}

// SaveRound records a round. Missing ID, session ID and timestamp are
// filled in. Returns the stored round.
func (s *Store) SaveRound(r Round) (Round, error) {
	if !r.Outcome.Valid() {
		return r, fmt.Errorf("%w: unknown outcome %q", ErrInvalidRound, r.Outcome)
	}
	if r.Mode == "" {
		return r, fmt.Errorf("%w: missing mode", ErrInvalidRound)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.SessionID == "" {
		r.SessionID = s.sessionID
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Second)

	_, err := s.db.Exec(
		`INSERT INTO rounds
		 (id, session_id, mode, seed, size, target, collected, destroyed, shots, ticks, outcome, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SessionID, r.Mode, r.Seed, r.Size, r.Target,
		r.Collected, r.Destroyed, r.Shots, r.Ticks, string(r.Outcome),
		r.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return r, fmt.Errorf("storage: cannot save round: %w", err)
	}

	return r, nil
}

const roundColumns = `id, session_id, mode, seed, size, target, collected, destroyed, shots, ticks, outcome, created_at`

const timeLayout = "2006-01-02 15:04:05"

// Rounds retrieves the most recent rounds, newest first.
func (s *Store) Rounds(limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 ORDER BY seq DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rounds, nil
}

// BestRound returns the best round so far, or nil if none was saved.
// Wins rank first, fastest win first; otherwise the most collectables.
func (s *Store) BestRound() (*Round, error) {
	row := s.db.QueryRow(
		`SELECT ` + roundColumns + `
		 FROM rounds
		 ORDER BY outcome = 'won' DESC,
		          CASE WHEN outcome = 'won' THEN ticks ELSE 0 END ASC,
		          collected DESC, shots ASC, seq ASC
		 LIMIT 1`,
	)

	r, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Stats aggregates every round in the ledger.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	var bestTicks sql.NullInt64

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'won'), 0),
		        COALESCE(SUM(outcome = 'lost'), 0),
		        COALESCE(SUM(outcome = 'abandoned'), 0),
		        COALESCE(SUM(collected), 0),
		        COALESCE(SUM(destroyed), 0),
		        COALESCE(SUM(shots), 0),
		        MIN(CASE WHEN outcome = 'won' THEN ticks END)
		 FROM rounds`,
	).Scan(&st.Rounds, &st.Wins, &st.Losses, &st.Abandoned,
		&st.Collected, &st.Destroyed, &st.Shots, &bestTicks)
	if err != nil {
		return st, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	if bestTicks.Valid {
		st.BestTicks = int(bestTicks.Int64)
	}
	return st, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRound(sc scanner) (Round, error) {
	var r Round
	var outcome string
	var createdAt any

	err := sc.Scan(&r.ID, &r.SessionID, &r.Mode, &r.Seed, &r.Size, &r.Target,
		&r.Collected, &r.Destroyed, &r.Shots, &r.Ticks, &outcome, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.Outcome = Outcome(outcome)

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			r.CreatedAt = parsed
		}
	}

	return r, nil
}
