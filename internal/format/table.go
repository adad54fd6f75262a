package format

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/termenv"

	"tracklog-cli/internal/model"
	"tracklog-cli/internal/view"
)

func init() {
	// Honor NO_COLOR and friends even when stdout looks like a TTY.
	if termenv.EnvNoColor() {
		color.NoColor = true
	}
}

// WriteLogTable renders project-work entries as an aligned table.
func WriteLogTable(w io.Writer, rows []model.LogEntry) error {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "DATE", "PROJECT", "PHASE", "HOURS", "TD", "NOTES")
	for _, e := range rows {
		tbl.AddRow(e.ID, e.Date, e.ProjectCode, e.PhaseNumber, hoursLabel(e.Hours),
			dashIfEmpty(e.TDEvent), view.TruncateNote(e.Notes, view.NoteTruncateAt))
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}

// WriteNonProjectTable renders non-project entries as an aligned table.
func WriteNonProjectTable(w io.Writer, rows []model.NonProjectEntry) error {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "NAME", "DATE", "TASK", "CUSTOMER", "HOURS", "NOTES")
	for _, e := range rows {
		tbl.AddRow(e.ID, e.Name, e.Date, e.Task, e.Customer, hoursLabel(e.Hours),
			view.TruncateNote(e.Notes, view.NoteTruncateAt))
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}

// Successf prints a green confirmation line to the standard color-aware
// output.
func Successf(format string, args ...any) {
	_, _ = color.New(color.FgGreen).Fprintf(color.Output, format+"\n", args...)
}

// Warnf prints a yellow warning line (used for schema degradation and
// benign not-found notices).
func Warnf(format string, args ...any) {
	_, _ = color.New(color.FgYellow).Fprintf(color.Output, format+"\n", args...)
}

func hoursLabel(h float64) string {
	return fmt.Sprintf("%.1f", h)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
