package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"demystify-mtg/demystify/pkg/batch"
)

// ErrRunNotFound is returned when a run id is not in the store.
var ErrRunNotFound = errors.New("run not found")

// SQLiteStore persists batch runs and their per-clause results in SQLite.
// The database uses a write-ahead log and a single connection, since SQLite
// allows one writer at a time.
type SQLiteStore struct {
	db        *sql.DB
	path      string
	mu        sync.RWMutex
	closeOnce sync.Once

	getRunStmt    *sql.Stmt
	latestRunStmt *sql.Stmt
	listRunsStmt  *sql.Stmt
}

// Config configures the SQLite store.
type Config struct {
	// Path is the SQLite database file path.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// Open opens or creates the SQLite database at path with default settings.
func Open(path string) (*SQLiteStore, error) {
	return OpenWithConfig(Config{Path: path})
}

// OpenWithConfig opens or creates a SQLite store with custom configuration.
func OpenWithConfig(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{db: db, path: cfg.Path}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return s, nil
}

// initSchema creates the database schema if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		corpus TEXT NOT NULL,
		started INTEGER NOT NULL,
		duration INTEGER NOT NULL,
		status TEXT NOT NULL,
		total INTEGER NOT NULL,
		parsed INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		by_branch TEXT,
		by_form TEXT,
		by_error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started);

	CREATE TABLE IF NOT EXISTS results (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		card TEXT NOT NULL,
		clause_index INTEGER NOT NULL,
		clause TEXT NOT NULL,
		tree TEXT,
		branch TEXT,
		form TEXT,
		error TEXT,
		error_kind TEXT,
		expected TEXT,
		line INTEGER,
		col INTEGER,
		duration INTEGER NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_results_card ON results(card);
	`

	_, err := s.db.Exec(schema)
	return err
}

const runColumns = `id, corpus, started, duration, status, total, parsed, failed, skipped, by_branch, by_form, by_error`

// prepareStatements prepares SQL statements for reuse.
func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.getRunStmt, err = s.db.Prepare(`SELECT ` + runColumns + ` FROM runs WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare get run statement: %w", err)
	}

	s.latestRunStmt, err = s.db.Prepare(`SELECT ` + runColumns + ` FROM runs ORDER BY started DESC, rowid DESC LIMIT 1`)
	if err != nil {
		return fmt.Errorf("failed to prepare latest run statement: %w", err)
	}

	s.listRunsStmt, err = s.db.Prepare(`SELECT ` + runColumns + ` FROM runs ORDER BY started DESC, rowid DESC LIMIT ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare list runs statement: %w", err)
	}

	return nil
}

// SaveRun stores a run summary and all of its results in one transaction.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *batch.Run) error {
	if run == nil {
		return fmt.Errorf("run cannot be nil")
	}
	if run.Summary.RunID == "" {
		return fmt.Errorf("run id cannot be empty")
	}

	byBranch, err := json.Marshal(run.Summary.ByBranch)
	if err != nil {
		return fmt.Errorf("failed to marshal branch counts: %w", err)
	}
	byForm, err := json.Marshal(run.Summary.ByForm)
	if err != nil {
		return fmt.Errorf("failed to marshal form counts: %w", err)
	}
	byError, err := json.Marshal(run.Summary.ByError)
	if err != nil {
		return fmt.Errorf("failed to marshal error counts: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sum := run.Summary
	_, err = tx.ExecContext(ctx, `INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.RunID, sum.Corpus, sum.Started.UnixNano(), int64(sum.Duration), sum.Status,
		sum.Total, sum.Parsed, sum.Failed, sum.Skipped,
		string(byBranch), string(byForm), string(byError),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, seq, card, clause_index, clause, tree, branch, form, error, error_kind, expected, line, col, duration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range run.Results {
		_, err := stmt.ExecContext(ctx,
			sum.RunID, i, r.Card, r.Index, r.Clause, r.Tree, r.Branch, r.Form,
			r.Error, r.Kind, r.Expected, r.Line, r.Column, int64(r.Duration),
		)
		if err != nil {
			return fmt.Errorf("failed to save result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun loads a run and its results. It returns ErrRunNotFound if the
// id is unknown.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*batch.Run, error) {
	if id == "" {
		return nil, fmt.Errorf("run id cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sum, err := scanSummary(s.getRunStmt.QueryRowContext(ctx, id))
	if err != nil {
		return nil, err
	}
	return s.loadResults(ctx, sum, false)
}

// LatestRun loads the most recently started run. It returns ErrRunNotFound
// if the store is empty.
func (s *SQLiteStore) LatestRun(ctx context.Context) (*batch.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum, err := scanSummary(s.latestRunStmt.QueryRowContext(ctx))
	if err != nil {
		return nil, err
	}
	return s.loadResults(ctx, sum, false)
}

// ListRuns returns the summaries of the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]batch.Summary, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.listRunsStmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []batch.Summary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

// Failures returns the results of run id that did not parse.
func (s *SQLiteStore) Failures(ctx context.Context, id string) ([]batch.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum, err := scanSummary(s.getRunStmt.QueryRowContext(ctx, id))
	if err != nil {
		return nil, err
	}
	run, err := s.loadResults(ctx, sum, true)
	if err != nil {
		return nil, err
	}
	return run.Results, nil
}

// DeleteBefore removes runs started before t and returns how many were removed.
func (s *SQLiteStore) DeleteBefore(ctx context.Context, t time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cutoff := t.UnixNano()
	if _, err := tx.ExecContext(ctx, `DELETE FROM results WHERE run_id IN (SELECT id FROM runs WHERE started < ?)`, cutoff); err != nil {
		return 0, fmt.Errorf("failed to delete results: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE started < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete runs: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", err)
	}
	return int(deleted), nil
}

// Ping verifies the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database. It is idempotent.
func (s *SQLiteStore) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{s.getRunStmt, s.latestRunStmt, s.listRunsStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}

		if s.db != nil {
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})

	return closeErr
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (*batch.Summary, error) {
	var (
		sum                       batch.Summary
		started, duration         int64
		byBranch, byForm, byError sql.NullString
	)

	err := row.Scan(&sum.RunID, &sum.Corpus, &started, &duration, &sum.Status,
		&sum.Total, &sum.Parsed, &sum.Failed, &sum.Skipped,
		&byBranch, &byForm, &byError)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	sum.Started = time.Unix(0, started)
	sum.Duration = time.Duration(duration)

	for _, m := range []struct {
		raw sql.NullString
		dst *map[string]int
	}{
		{byBranch, &sum.ByBranch},
		{byForm, &sum.ByForm},
		{byError, &sum.ByError},
	} {
		if !m.raw.Valid || m.raw.String == "" {
			continue
		}
		if err := json.Unmarshal([]byte(m.raw.String), m.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run counts: %w", err)
		}
	}

	return &sum, nil
}

// loadResults reads the results of sum's run. The caller holds s.mu.
func (s *SQLiteStore) loadResults(ctx context.Context, sum *batch.Summary, failuresOnly bool) (*batch.Run, error) {
	query := `
		SELECT card, clause_index, clause, tree, branch, form, error, error_kind, expected, line, col, duration
		FROM results WHERE run_id = ?`
	if failuresOnly {
		query += ` AND error != ''`
	}
	query += ` ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query, sum.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	defer rows.Close()

	run := &batch.Run{Summary: *sum}
	for rows.Next() {
		var (
			r        batch.Result
			duration int64
		)
		if err := rows.Scan(&r.Card, &r.Index, &r.Clause, &r.Tree, &r.Branch, &r.Form,
			&r.Error, &r.Kind, &r.Expected, &r.Line, &r.Column, &duration); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.Duration = time.Duration(duration)
		run.Results = append(run.Results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return run, nil
}
