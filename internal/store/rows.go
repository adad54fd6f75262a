package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrRowNotFound is returned by updates targeting a row that no longer
// exists (e.g. deleted by a concurrent session).
var ErrRowNotFound = errors.New("row not found")

func (s *Store) insertRow(ctx context.Context, table string, cols []string, vals []any) (int64, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), placeholders)
	res, err := s.db.ExecContext(ctx, stmt, vals...)
	if err != nil {
		return 0, s.asUnavailable(err)
	}
	return res.LastInsertId()
}

func (s *Store) updateRow(ctx context.Context, table string, id int64, cols []string, vals []any) error {
	if len(cols) == 0 {
		// Nothing to change; still report vanished rows.
		var one int
		err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT 1 FROM %s WHERE id = ?", table), id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRowNotFound
		}
		return s.asUnavailable(err)
	}
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
	res, err := s.db.ExecContext(ctx, stmt, append(vals, id)...)
	if err != nil {
		return s.asUnavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRowNotFound
	}
	return nil
}

// deleteRow removes the row with id. Idempotent: deleting an absent row
// is not an error; found reports whether a row was actually removed.
func (s *Store) deleteRow(ctx context.Context, table string, id int64) (found bool, err error) {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return false, s.asUnavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
