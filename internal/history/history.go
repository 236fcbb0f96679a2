// Package history keeps a local ledger of recording passes, so
// developers can see how build metrics collection itself has been
// behaving over time. The ledger is best-effort: it never blocks or
// fails a recording pass.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at   TEXT NOT NULL,
    duration_ms  INTEGER NOT NULL,
    build_dir    TEXT NOT NULL,
    units_total  INTEGER NOT NULL,
    units_failed INTEGER NOT NULL,
    compiler     TEXT NOT NULL DEFAULT '',
    created_at   TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// RunRecord summarizes one recording pass.
type RunRecord struct {
	ID          int64
	StartedAt   time.Time
	Duration    time.Duration
	BuildDir    string
	UnitsTotal  int
	UnitsFailed int
	Compiler    string
}

// Store provides SQLite-backed storage for run history.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dbPath and runs
// migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Insert appends one run summary.
func (s *Store) Insert(r RunRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (
			started_at, duration_ms, build_dir,
			units_total, units_failed, compiler
		) VALUES (?, ?, ?, ?, ?, ?)`,
		r.StartedAt.UTC().Format(time.RFC3339), r.Duration.Milliseconds(), r.BuildDir,
		r.UnitsTotal, r.UnitsFailed, r.Compiler,
	)
	if err != nil {
		return fmt.Errorf("insert run record: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, duration_ms, build_dir,
		       units_total, units_failed, compiler
		FROM runs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var startedAt string
		var durationMs int64
		if err := rows.Scan(
			&r.ID, &startedAt, &durationMs, &r.BuildDir,
			&r.UnitsTotal, &r.UnitsFailed, &r.Compiler,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			r.StartedAt = t
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
