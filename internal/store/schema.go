package store

import (
	"context"
	"fmt"
)

// ColumnResult is the tri-state outcome of EnsureColumn.
type ColumnResult int

const (
	// ColumnPresent: the column already existed; nothing was changed.
	ColumnPresent ColumnResult = iota
	// ColumnAdded: the column was missing and has been added.
	ColumnAdded
	// ColumnFailed: the column is missing and could not be added
	// (e.g. insufficient privilege). Non-fatal: the application keeps
	// running with the column treated as always-empty.
	ColumnFailed
)

func (r ColumnResult) String() string {
	switch r {
	case ColumnPresent:
		return "present"
	case ColumnAdded:
		return "added"
	case ColumnFailed:
		return "failed"
	default:
		return fmt.Sprintf("ColumnResult(%d)", int(r))
	}
}

// SchemaWarning records a failed additive schema change. The feature
// backed by the column degrades to "always empty / not editable".
type SchemaWarning struct {
	Table  string
	Column string
	Err    error
}

func (w SchemaWarning) Error() string {
	return fmt.Sprintf("could not add column %s.%s (feature disabled): %v", w.Table, w.Column, w.Err)
}

func (w SchemaWarning) Unwrap() error { return w.Err }

// HasColumn reports whether table currently carries column, via an
// explicit capability query (PRAGMA table_info), not a probe read.
func (s *Store) HasColumn(ctx context.Context, table, column string) (bool, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// EnsureColumn makes sure table carries column, adding it when absent.
// Idempotent: once the column exists, repeated calls across restarts
// return ColumnPresent without touching the schema. Never drops or
// rewrites existing data. On ColumnFailed the returned error is the
// underlying cause; callers treat it as a warning, not a failure.
func (s *Store) EnsureColumn(ctx context.Context, table, column, sqlType string) (ColumnResult, error) {
	ok, err := s.HasColumn(ctx, table, column)
	if err != nil {
		return ColumnFailed, err
	}
	if ok {
		return ColumnPresent, nil
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, sqlType)
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return ColumnFailed, err
	}
	return ColumnAdded, nil
}
