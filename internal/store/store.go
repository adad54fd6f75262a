package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Table names used by the log store.
const (
	TableLogs       = "logs"
	TableNonProject = "non_project_logs"
)

// Store is the persistent log store: a SQLite database holding the
// project-work and non-project-work tables. It is the only shared mutable
// resource; SQLite serializes concurrent writers (last write wins).
type Store struct {
	db   *sql.DB
	path string

	// cols tracks which evolvable columns are actually usable this
	// session; a column whose ALTER TABLE failed degrades to always-empty.
	cols     map[string]map[string]bool
	warnings []SchemaWarning
}

// UnavailableError reports a connection-level store failure. Fatal for the
// session: callers must not attempt further mutations.
type UnavailableError struct {
	Path string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("log store unavailable at %s: %v", e.Path, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// asUnavailable upgrades database-level failures (closed handle, file
// removed, corrupted image) to UnavailableError so the session ends
// instead of retrying against a dead store. Statement and row errors
// pass through unchanged.
func (s *Store) asUnavailable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrConnDone) || connectionLost(err) {
		return &UnavailableError{Path: s.path, Err: err}
	}
	return err
}

func connectionLost(err error) bool {
	msg := err.Error()
	for _, sig := range []string{
		"database is closed",
		"disk I/O error",
		"database disk image is malformed",
		"file is not a database",
		"unable to open database file",
	} {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// Open opens (creating if needed) the store at path, bootstraps the base
// tables, and evolves the optional columns. Schema evolution failures are
// collected as warnings, not errors; see Warnings.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &UnavailableError{Path: path, Err: err}
		}
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when another session writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, &UnavailableError{Path: path, Err: err}
		}
	}

	s := &Store{db: db, path: path, cols: map[string]map[string]bool{}}
	if err := s.bootstrap(ctx); err != nil {
		_ = db.Close()
		return nil, &UnavailableError{Path: path, Err: err}
	}
	s.evolve(ctx)
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Path returns the database file path the store was opened with.
func (s *Store) Path() string { return s.path }

// Warnings returns the non-fatal schema evolution warnings collected at
// open time, in occurrence order.
func (s *Store) Warnings() []SchemaWarning { return s.warnings }

func (s *Store) bootstrap(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			date TEXT NOT NULL,
			project_code TEXT NOT NULL,
			phase_number TEXT NOT NULL,
			hours REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_logs_name ON logs(name);`,
		`CREATE TABLE IF NOT EXISTS non_project_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			date TEXT NOT NULL,
			task TEXT NOT NULL,
			customer TEXT NOT NULL,
			hours REAL NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// evolve adds the optional columns introduced after the tables first
// shipped. Runs once per session, before any read/write.
func (s *Store) evolve(ctx context.Context) {
	for _, c := range []struct {
		table, column, sqlType string
	}{
		{TableLogs, "notes", "TEXT"},
		{TableLogs, "td_event", "TEXT"},
		{TableNonProject, "notes", "TEXT"},
	} {
		res, err := s.EnsureColumn(ctx, c.table, c.column, c.sqlType)
		usable := res != ColumnFailed
		if m := s.cols[c.table]; m == nil {
			s.cols[c.table] = map[string]bool{c.column: usable}
		} else {
			m[c.column] = usable
		}
		if res == ColumnFailed {
			s.warnings = append(s.warnings, SchemaWarning{Table: c.table, Column: c.column, Err: err})
		}
	}
}

// colUsable reports whether an evolvable column may be referenced in SQL
// this session. Base columns are always usable.
func (s *Store) colUsable(table, column string) bool {
	m, ok := s.cols[table]
	if !ok {
		return false
	}
	return m[column]
}
