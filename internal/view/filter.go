package view

import (
	"sort"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"tracklog-cli/internal/model"
)

// NoteTruncateAt is the character bound for notes in compact rows. The
// full text stays available on demand; truncation is presentational only.
const NoteTruncateAt = 50

// NonProjectFilter selects subsets of the categorical columns. An empty
// selection for a column means no restriction on that column; selections
// across columns combine with AND.
type NonProjectFilter struct {
	Names     []string
	Tasks     []string
	Customers []string
}

func (f NonProjectFilter) Empty() bool {
	return len(f.Names) == 0 && len(f.Tasks) == 0 && len(f.Customers) == 0
}

// ApplyNonProjectFilter returns the rows passing every active column
// filter, preserving input order (the store supplies rows newest first).
func ApplyNonProjectFilter(rows []model.NonProjectEntry, f NonProjectFilter) []model.NonProjectEntry {
	if f.Empty() {
		return rows
	}
	var out []model.NonProjectEntry
	for _, e := range rows {
		if member(f.Names, e.Name) && member(f.Tasks, e.Task) && member(f.Customers, e.Customer) {
			out = append(out, e)
		}
	}
	return out
}

// member treats an empty selection as "no restriction".
func member(sel []string, v string) bool {
	if len(sel) == 0 {
		return true
	}
	for _, s := range sel {
		if s == v {
			return true
		}
	}
	return false
}

// DistinctNames returns the distinct Name values of the rows, sorted,
// for populating the filter picker.
func DistinctNames(rows []model.NonProjectEntry) []string {
	return distinct(rows, func(e model.NonProjectEntry) string { return e.Name })
}

func DistinctTasks(rows []model.NonProjectEntry) []string {
	return distinct(rows, func(e model.NonProjectEntry) string { return e.Task })
}

func DistinctCustomers(rows []model.NonProjectEntry) []string {
	return distinct(rows, func(e model.NonProjectEntry) string { return e.Customer })
}

func distinct(rows []model.NonProjectEntry, get func(model.NonProjectEntry) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range rows {
		v := strings.TrimSpace(get(e))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// TruncateNote renders a note for a compact row: "-" when empty, the
// full text when it fits, otherwise a width-aware cut with an ellipsis.
func TruncateNote(note string, limit int) string {
	note = strings.ReplaceAll(note, "\n", " ")
	if strings.TrimSpace(note) == "" {
		return "-"
	}
	if xansi.StringWidth(note) <= limit {
		return note
	}
	return xansi.Cut(note, 0, limit) + "..."
}
