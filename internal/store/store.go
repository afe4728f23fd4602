// Package store persists computed index results in a SQLite database:
// one row per (run, model, scenario, index) annual grid, plus flat
// per-location annual values extracted for configured points.
package store

import (
	"database/sql"
	"time"
)

// Store wraps the results database.
type Store struct {
	db *sql.DB
}

// New creates a Store over an open database handle. The caller owns
// the handle and must call Migrate before first use.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateRun records a driver invocation.
func (s *Store) CreateRun(runID, description string) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (run_id, description, started_at)
		VALUES (?, ?, ?)
	`, runID, description, time.Now().UTC())
	return err
}

// FinishRun stamps a run as completed.
func (s *Store) FinishRun(runID string) error {
	_, err := s.db.Exec(`
		UPDATE runs SET finished_at = ? WHERE run_id = ?
	`, time.Now().UTC(), runID)
	return err
}
