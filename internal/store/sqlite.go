package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/OrHava/economy-project/internal/domain"
	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// SQLite archives runs in a SQLite database file. Rows are stored as JSON
// documents next to the columns needed for listing.
type SQLite struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLite opens (and migrates) the archive at dbPath.
// Use ":memory:" for a throwaway archive.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every pooled connection to :memory: would see its own empty database
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		as_of TEXT NOT NULL,
		options_digest TEXT NOT NULL,
		created_at TEXT NOT NULL,
		employees INTEGER NOT NULL,
		invalid INTEGER NOT NULL,
		total TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_rows (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		employee_id TEXT NOT NULL,
		status TEXT NOT NULL,
		liability TEXT,
		row_json TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_run_rows_employee ON run_rows(employee_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun writes the run header and all rows in one transaction.
func (s *SQLite) SaveRun(ctx context.Context, run Run, rows []domain.ResultRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, as_of, options_digest, created_at, employees, invalid, total)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.AsOf.Format(time.RFC3339),
		run.OptionsDigest,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.Employees,
		run.Invalid,
		run.Total.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_rows (run_id, position, employee_id, status, liability, row_json)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, row := range rows {
		payload, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to encode row %d: %w", i, err)
		}
		var liability sql.NullString
		if row.Liability != nil {
			liability = sql.NullString{String: row.Liability.String(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, run.ID, i, row.EmployeeID, string(row.Status),
			liability, string(payload)); err != nil {
			return fmt.Errorf("failed to save row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns run headers, newest first.
func (s *SQLite) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, as_of, options_digest, created_at, employees, invalid, total
		FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun loads one run and its rows in their original order.
func (s *SQLite) GetRun(ctx context.Context, id string) (*Run, []domain.ResultRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := scanRun(s.db.QueryRowContext(ctx, `
		SELECT id, as_of, options_digest, created_at, employees, invalid, total
		FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil, ErrRunNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT row_json FROM run_rows WHERE run_id = ? ORDER BY position", id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	result := make([]domain.ResultRow, 0, run.Employees)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, nil, err
		}
		var row domain.ResultRow
		if err := json.Unmarshal([]byte(payload), &row); err != nil {
			return nil, nil, fmt.Errorf("corrupt row in run %s: %w", id, err)
		}
		result = append(result, row)
	}
	return run, result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var run Run
	var asOf, createdAt, total string
	if err := sc.Scan(&run.ID, &asOf, &run.OptionsDigest, &createdAt,
		&run.Employees, &run.Invalid, &total); err != nil {
		return nil, err
	}

	var err error
	if run.AsOf, err = time.Parse(time.RFC3339, asOf); err != nil {
		return nil, fmt.Errorf("run %s: bad as_of %q: %w", run.ID, asOf, err)
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("run %s: bad created_at %q: %w", run.ID, createdAt, err)
	}
	if run.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("run %s: bad total %q: %w", run.ID, total, err)
	}
	return &run, nil
}
