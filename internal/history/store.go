// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists per-run normalization reports in a SQLite
// ledger so users can audit what each run changed alongside the
// backup files.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/quotefmt/pkg/types"
)

// Run is one recorded invocation and its per-file reports.
type Run struct {
	ID        int64              `json:"id" yaml:"id"`
	StartedAt time.Time          `json:"started_at" yaml:"started_at"`
	Succeeded int                `json:"succeeded" yaml:"succeeded"`
	Failed    int                `json:"failed" yaml:"failed"`
	Files     []types.FileReport `json:"files" yaml:"files"`
}

// Total returns the number of files in the run.
func (r Run) Total() int {
	return r.Succeeded + r.Failed
}

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at path, creating the
// parent directory and the schema as needed.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			succeeded INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			path TEXT NOT NULL,
			quotes INTEGER NOT NULL,
			left_quotes INTEGER NOT NULL,
			right_quotes INTEGER NOT NULL,
			residual INTEGER NOT NULL,
			succeeded INTEGER NOT NULL,
			message TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_run_id ON files(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts a run and its file rows in one transaction and
// returns the assigned run ID.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	startedAt := run.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, succeeded, failed) VALUES (?, ?, ?)`,
		startedAt.UTC().Format(time.RFC3339Nano), run.Succeeded, run.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run ID: %w", err)
	}

	for _, f := range run.Files {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO files (run_id, path, quotes, left_quotes, right_quotes, residual, succeeded, message)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, f.Path, f.Quotes, f.Left, f.Right, f.Residual, f.Succeeded, f.Message,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting file %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Recent returns the newest runs first, at most limit of them, each
// with its file rows in insertion order.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, succeeded, failed FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt string
		if err := rows.Scan(&run.ID, &startedAt, &run.Succeeded, &run.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing run timestamp %q: %w", startedAt, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range runs {
		files, err := s.runFiles(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Files = files
	}
	return runs, nil
}

func (s *Store) runFiles(ctx context.Context, runID int64) ([]types.FileReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, quotes, left_quotes, right_quotes, residual, succeeded, message
		 FROM files WHERE run_id = ? ORDER BY rowid`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying files for run %d: %w", runID, err)
	}
	defer rows.Close()

	var files []types.FileReport
	for rows.Next() {
		var f types.FileReport
		var message sql.NullString
		if err := rows.Scan(&f.Path, &f.Quotes, &f.Left, &f.Right, &f.Residual, &f.Succeeded, &message); err != nil {
			return nil, fmt.Errorf("scanning file row: %w", err)
		}
		f.Message = message.String
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating file rows: %w", err)
	}
	return files, nil
}
