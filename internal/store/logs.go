package store

import (
	"context"
	"database/sql"

	"tracklog-cli/internal/model"
)

// InsertLog persists a new project-work entry and returns the assigned id.
// Evolvable columns whose ALTER TABLE failed are silently skipped; the
// entry persists without them.
func (s *Store) InsertLog(ctx context.Context, e model.LogEntry) (int64, error) {
	cols := []string{"name", "date", "project_code", "phase_number", "hours"}
	vals := []any{e.Name, e.Date, e.ProjectCode, e.PhaseNumber, e.Hours}
	if s.colUsable(TableLogs, "notes") {
		cols = append(cols, "notes")
		vals = append(vals, e.Notes)
	}
	if s.colUsable(TableLogs, "td_event") {
		cols = append(cols, "td_event")
		vals = append(vals, e.TDEvent)
	}
	return s.insertRow(ctx, TableLogs, cols, vals)
}

// UpdateLog applies the patch to one entry. Only the fields a project
// entry permits (date, hours, notes) are expressible in the patch type.
// Returns ErrRowNotFound if the row has vanished.
func (s *Store) UpdateLog(ctx context.Context, id int64, p model.LogPatch) error {
	var cols []string
	var vals []any
	if p.Date != nil {
		cols = append(cols, "date")
		vals = append(vals, *p.Date)
	}
	if p.Hours != nil {
		cols = append(cols, "hours")
		vals = append(vals, *p.Hours)
	}
	if p.Notes != nil && s.colUsable(TableLogs, "notes") {
		cols = append(cols, "notes")
		vals = append(vals, *p.Notes)
	}
	return s.updateRow(ctx, TableLogs, id, cols, vals)
}

// DeleteLog removes one entry; deleting an absent id is not an error.
func (s *Store) DeleteLog(ctx context.Context, id int64) (found bool, err error) {
	return s.deleteRow(ctx, TableLogs, id)
}

// SelectLogs returns project-work entries, oldest first. A non-empty name
// restricts the result to that employee.
func (s *Store) SelectLogs(ctx context.Context, name string) ([]model.LogEntry, error) {
	q := "SELECT id, name, date, project_code, phase_number, hours" + s.logExtraCols() + " FROM logs"
	var args []any
	if name != "" {
		q += " WHERE name = ?"
		args = append(args, name)
	}
	q += " ORDER BY date ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, s.asUnavailable(err)
	}
	defer rows.Close()

	var out []model.LogEntry
	for rows.Next() {
		var e model.LogEntry
		var notes, tdEvent sql.NullString
		dest := []any{&e.ID, &e.Name, &e.Date, &e.ProjectCode, &e.PhaseNumber, &e.Hours}
		if s.colUsable(TableLogs, "notes") {
			dest = append(dest, &notes)
		}
		if s.colUsable(TableLogs, "td_event") {
			dest = append(dest, &tdEvent)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		e.Notes = notes.String
		e.TDEvent = tdEvent.String
		out = append(out, e)
	}
	return out, s.asUnavailable(rows.Err())
}

func (s *Store) logExtraCols() string {
	extra := ""
	if s.colUsable(TableLogs, "notes") {
		extra += ", notes"
	}
	if s.colUsable(TableLogs, "td_event") {
		extra += ", td_event"
	}
	return extra
}
