// Package storage keeps the history of finished runs for the current
// process. It uses an in-memory SQLite database through the pure-Go
// modernc.org/sqlite driver, so nothing survives the process.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage: store is closed")

// Store manages the in-memory run history.
type Store struct {
	db *sql.DB
}

// Run is one finished run.
type Run struct {
	ID        string
	Mode      string
	Score     int
	Level     int
	Duration  time.Duration
	CreatedAt time.Time
}

// Stats contains aggregated statistics for a mode.
type Stats struct {
	Mode       string
	Runs       int
	BestScore  int
	BestLevel  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates an empty in-memory history.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(mode, score DESC, level DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close drops the history.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SaveRun records a finished run. A missing ID or timestamp is filled in.
// Returns the stored run.
func (s *Store) SaveRun(run Run) (Run, error) {
	if s.db == nil {
		return Run{}, ErrClosed
	}
	if run.Mode == "" {
		return Run{}, errors.New("storage: run has no mode")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		"INSERT INTO runs (id, mode, score, level, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.Mode, run.Score, run.Level, run.Duration.Milliseconds(), run.CreatedAt.UnixNano(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run, nil
}

// TopRuns retrieves the best N runs for the given mode, highest score
// first. Ties go to the higher level, then to the earlier run.
func (s *Store) TopRuns(mode string, limit int) ([]Run, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, score, level, duration_ms, created_at
		 FROM runs
		 WHERE mode = ?
		 ORDER BY score DESC, level DESC, created_at ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMs, createdAt int64
		if err := rows.Scan(&r.ID, &r.Mode, &r.Score, &r.Level, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = time.Unix(0, createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestScore returns the highest score for the given mode.
// Returns 0 if no runs exist.
func (s *Store) BestScore(mode string) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}

	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE mode = ?",
		mode,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats retrieves aggregated statistics for the given mode.
func (s *Store) Stats(mode string) (Stats, error) {
	if s.db == nil {
		return Stats{}, ErrClosed
	}

	stats := Stats{Mode: mode}
	var lastPlayed int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(MAX(level), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), COALESCE(MAX(created_at), 0)
		 FROM runs WHERE mode = ?`,
		mode,
	).Scan(&stats.Runs, &stats.BestScore, &stats.BestLevel, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	if lastPlayed > 0 {
		stats.LastPlayed = time.Unix(0, lastPlayed)
	}
	return stats, nil
}

// Clear deletes every run of the given mode.
func (s *Store) Clear(mode string) error {
	if s.db == nil {
		return ErrClosed
	}
	if _, err := s.db.Exec("DELETE FROM runs WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
