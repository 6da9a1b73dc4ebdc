package session

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGStore implements Store on Postgres, keeping the session in a
// single-row table so every host sharing the database sees the same
// current file.
type PGStore struct {
	DB *sql.DB
}

// NewPGStore constructs a PGStore over an open database handle.
func NewPGStore(database *sql.DB) *PGStore {
	return &PGStore{DB: database}
}

// Load returns the stored state, or a zero State when the row is absent.
func (s *PGStore) Load(ctx context.Context) (State, error) {
	const query = `
SELECT current_file, updated_at
FROM session_state
WHERE id = 1`
	var state State
	err := s.DB.QueryRowContext(ctx, query).Scan(&state.CurrentFile, &state.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return State{}, nil
		}
		return State{}, err
	}
	return state, nil
}

// Save upserts the single session row.
func (s *PGStore) Save(ctx context.Context, state State) error {
	const query = `
INSERT INTO session_state (id, current_file, updated_at)
VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE
SET current_file = EXCLUDED.current_file,
    updated_at = EXCLUDED.updated_at`
	updatedAt := state.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	_, err := s.DB.ExecContext(ctx, query, state.CurrentFile, updatedAt)
	return err
}

// Clear deletes the session row.
func (s *PGStore) Clear(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM session_state WHERE id = 1`)
	return err
}
