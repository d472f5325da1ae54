// internal/results/store.go
//
// The results log: one row per solved puzzle, keyed by the encoded
// challenge. It holds counters only, so a challenge's stats can be shown
// without keeping any game state between sessions.

package results

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/robalobadob/byoww/assets"
)

// Result is a single solved puzzle.
type Result struct {
	Code      string `json:"code"`      // encoded challenge, upper-case
	Length    int    `json:"length"`    // letters in the solution
	Attempts  int    `json:"attempts"`  // guesses submitted, including the winning one
	ElapsedMs int    `json:"elapsedMs"` // first key to solve
}

// Stats summarizes the results for one challenge.
type Stats struct {
	Code         string  `json:"code"`
	Solves       int     `json:"solves"`
	MeanAttempts float64 `json:"meanAttempts"`
	BestAttempts int     `json:"bestAttempts"`
	FastestMs    int     `json:"fastestMs"`
}

type Store struct{ db *sql.DB }

// Open opens the database at path and applies pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("open results db: %w", err)
	}
	if err := migrate(ctx, db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate results db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Record inserts a solved puzzle.
func (s *Store) Record(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO solves (code, length, attempts, elapsed_ms) VALUES (?, ?, ?, ?)`,
		r.Code, r.Length, r.Attempts, r.ElapsedMs,
	)
	return err
}

// Stats aggregates all recorded solves of code. A code nobody has solved
// yet returns zero counters, not an error.
func (s *Store) Stats(ctx context.Context, code string) (Stats, error) {
	st := Stats{Code: code}
	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COALESCE(AVG(attempts), 0),
               COALESCE(MIN(attempts), 0),
               COALESCE(MIN(elapsed_ms), 0)
        FROM solves
        WHERE code=?`, code,
	).Scan(&st.Solves, &st.MeanAttempts, &st.BestAttempts, &st.FastestMs)
	return st, err
}
