package store

import (
	"context"
	"database/sql"

	"tracklog-cli/internal/model"
)

// InsertNonProject persists a new non-project entry and returns the
// assigned id.
func (s *Store) InsertNonProject(ctx context.Context, e model.NonProjectEntry) (int64, error) {
	cols := []string{"name", "date", "task", "customer", "hours"}
	vals := []any{e.Name, e.Date, e.Task, e.Customer, e.Hours}
	if s.colUsable(TableNonProject, "notes") {
		cols = append(cols, "notes")
		vals = append(vals, e.Notes)
	}
	return s.insertRow(ctx, TableNonProject, cols, vals)
}

// UpdateNonProject applies the patch to one entry. Non-project entries
// allow every field but the id to change.
func (s *Store) UpdateNonProject(ctx context.Context, id int64, p model.NonProjectPatch) error {
	var cols []string
	var vals []any
	if p.Name != nil {
		cols = append(cols, "name")
		vals = append(vals, *p.Name)
	}
	if p.Date != nil {
		cols = append(cols, "date")
		vals = append(vals, *p.Date)
	}
	if p.Task != nil {
		cols = append(cols, "task")
		vals = append(vals, *p.Task)
	}
	if p.Customer != nil {
		cols = append(cols, "customer")
		vals = append(vals, *p.Customer)
	}
	if p.Hours != nil {
		cols = append(cols, "hours")
		vals = append(vals, *p.Hours)
	}
	if p.Notes != nil && s.colUsable(TableNonProject, "notes") {
		cols = append(cols, "notes")
		vals = append(vals, *p.Notes)
	}
	return s.updateRow(ctx, TableNonProject, id, cols, vals)
}

// DeleteNonProject removes one entry; deleting an absent id is not an error.
func (s *Store) DeleteNonProject(ctx context.Context, id int64) (found bool, err error) {
	return s.deleteRow(ctx, TableNonProject, id)
}

// SelectNonProject returns all non-project entries, newest first.
func (s *Store) SelectNonProject(ctx context.Context) ([]model.NonProjectEntry, error) {
	q := "SELECT id, name, date, task, customer, hours"
	if s.colUsable(TableNonProject, "notes") {
		q += ", notes"
	}
	q += " FROM non_project_logs ORDER BY date DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, s.asUnavailable(err)
	}
	defer rows.Close()

	var out []model.NonProjectEntry
	for rows.Next() {
		var e model.NonProjectEntry
		var notes sql.NullString
		dest := []any{&e.ID, &e.Name, &e.Date, &e.Task, &e.Customer, &e.Hours}
		if s.colUsable(TableNonProject, "notes") {
			dest = append(dest, &notes)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		e.Notes = notes.String
		out = append(out, e)
	}
	return out, s.asUnavailable(rows.Err())
}
