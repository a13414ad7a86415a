// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal records every per-file operation in a SQLite database so
// past conversions, compressions and deletions can be listed and exported.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/officekit/pkg/types"
)

const (
	dbFile = "history.db"

	// DefaultLimit is the number of records List returns when none is given.
	DefaultLimit = 20
)

// DefaultPath returns $XDG_STATE_HOME/officekit/history.db, falling back to
// ~/.local/state/officekit/history.db.
func DefaultPath() (string, error) {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "officekit", dbFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "officekit", dbFile), nil
}

// Store is the SQLite-backed journal.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
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
		`CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			time TEXT NOT NULL,
			action TEXT NOT NULL,
			input TEXT NOT NULL,
			output TEXT,
			status TEXT NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_action ON records(action)`,
		`CREATE INDEX IF NOT EXISTS idx_records_time ON records(time)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends r. A zero Time is replaced with the current time.
func (s *Store) Record(ctx context.Context, r types.Record) error {
	if r.Time.IsZero() {
		r.Time = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (time, action, input, output, status, error) VALUES (?, ?, ?, ?, ?, ?)`,
		r.Time.UTC().Format(time.RFC3339Nano), r.Action, r.Input, r.Output, string(r.Status), r.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting journal record: %w", err)
	}
	return nil
}

// QueryOptions filters List.
type QueryOptions struct {
	// Action restricts results to one action name (e.g. "pdf2docx").
	Action string

	// Status restricts results to one outcome.
	Status types.Status

	// Limit caps the number of records; zero means DefaultLimit.
	Limit int
}

// List returns the most recent records first.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]types.Record, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `SELECT id, time, action, input, output, status, error FROM records WHERE 1=1`
	var args []any
	if opts.Action != "" {
		query += ` AND action = ?`
		args = append(args, opts.Action)
	}
	if opts.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(opts.Status))
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var (
			r              types.Record
			ts, status     string
			output, errMsg sql.NullString
		)
		if err := rows.Scan(&r.ID, &ts, &r.Action, &r.Input, &output, &status, &errMsg); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		when, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("journal record %d has a bad timestamp: %w", r.ID, err)
		}
		r.Time = when
		r.Status = types.Status(status)
		r.Output = output.String
		r.Error = errMsg.String
		records = append(records, r)
	}
	return records, rows.Err()
}

// Format selects an export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Export writes records matching opts to w as YAML or JSON.
func (s *Store) Export(ctx context.Context, w io.Writer, format Format, opts QueryOptions) error {
	records, err := s.List(ctx, opts)
	if err != nil {
		return err
	}
	if records == nil {
		records = []types.Record{}
	}

	var data []byte
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(records)
	case FormatJSON:
		data, err = json.MarshalIndent(records, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("%w: unknown export format %q (want yaml or json)", types.ErrInvalidChoice, format)
	}
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}

// Nop is a Recorder that discards records, used when the journal is disabled.
type Nop struct{}

// Record implements types.Recorder.
func (Nop) Record(context.Context, types.Record) error { return nil }
