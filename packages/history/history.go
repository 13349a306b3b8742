// Package history persists run summaries to a local SQLite database,
// so flaky scenarios and pass-rate trends can be inspected across runs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/specrun/specrun/packages/core/runner"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	marker      TEXT NOT NULL,
	scenarios   INTEGER NOT NULL,
	passed      INTEGER NOT NULL,
	failed      INTEGER NOT NULL,
	skipped     INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS scenario_results (
	run_id      TEXT NOT NULL REFERENCES runs(id),
	scenario_id INTEGER NOT NULL,
	name        TEXT NOT NULL,
	status      TEXT NOT NULL,
	duration_ms INTEGER NOT NULL
);`

// Store records run outcomes. It implements runner.Extension so it can
// sit in the extension list like any other reporting plugin.
type Store struct {
	runner.BaseExtension

	db      *sql.DB
	pending []*runner.ScenarioResult
}

// NewStore opens (and if needed creates) the history database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ScenarioFinished(result *runner.ScenarioResult) {
	s.pending = append(s.pending, result)
}

func (s *Store) RunFinished(summary *runner.Summary) {
	if err := s.record(summary); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording run history: %v\n", err)
	}
}

func (s *Store) record(summary *runner.Summary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, marker, scenarios, passed, failed, skipped, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID, summary.Marker, summary.Ran,
		summary.Passed, summary.Failed, summary.Skipped,
		summary.Duration.Milliseconds(), time.Now(),
	)
	if err != nil {
		return err
	}

	for _, result := range s.pending {
		status := "failed"
		switch {
		case result.Skipped:
			status = "skipped"
		case result.Passed:
			status = "passed"
		}
		_, err = tx.Exec(
			`INSERT INTO scenario_results (run_id, scenario_id, name, status, duration_ms)
			 VALUES (?, ?, ?, ?, ?)`,
			summary.RunID, result.Scenario.ID, result.Scenario.Name,
			status, result.Duration.Milliseconds(),
		)
		if err != nil {
			return err
		}
	}

	s.pending = nil
	return tx.Commit()
}

// Runs returns the most recent run summaries, newest first.
func (s *Store) Runs(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, marker, scenarios, passed, failed, skipped, duration_ms, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var durationMs int64
		if err := rows.Scan(&r.ID, &r.Marker, &r.Scenarios, &r.Passed,
			&r.Failed, &r.Skipped, &durationMs, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, r)
	}
	return records, rows.Err()
}

// RunRecord is one stored run summary.
type RunRecord struct {
	ID        string
	Marker    string
	Scenarios int
	Passed    int
	Failed    int
	Skipped   int
	Duration  time.Duration
	CreatedAt time.Time
}
