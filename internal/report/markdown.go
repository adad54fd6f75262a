package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"tracklog-cli/internal/model"
)

type RenderOptions struct {
	Name         string
	IncludeNotes bool
}

// RenderMarkdown produces a markdown work summary: one section for
// project entries with per-project totals, one for non-project entries
// with per-task totals.
func RenderMarkdown(logs []model.LogEntry, nonProject []model.NonProjectEntry, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := "Work log"
	if opt.Name != "" {
		title += " for " + opt.Name
	}
	writeLn("# " + title)
	writeLn("")

	writeLn("## Project work")
	writeLn("")
	if len(logs) == 0 {
		writeLn("_No entries._")
	} else {
		writeLn("| Date | Project | Phase | Hours | TD |")
		writeLn("|------|---------|-------|------:|----|")
		for _, e := range logs {
			writeLn(fmt.Sprintf("| %s | %s | %s | %.1f | %s |",
				e.Date, e.ProjectCode, e.PhaseNumber, e.Hours, orDash(e.TDEvent)))
			if opt.IncludeNotes && strings.TrimSpace(e.Notes) != "" {
				writeLn("")
				writeLn(quote(e.Notes))
				writeLn("")
			}
		}
		writeLn("")
		writeTotals(&buf, "Hours per project", projectTotals(logs))
	}
	writeLn("")

	writeLn("## Non-project work")
	writeLn("")
	if len(nonProject) == 0 {
		writeLn("_No entries._")
	} else {
		writeLn("| Date | Name | Task | Customer | Hours |")
		writeLn("|------|------|------|----------|------:|")
		for _, e := range nonProject {
			writeLn(fmt.Sprintf("| %s | %s | %s | %s | %.1f |",
				e.Date, e.Name, e.Task, e.Customer, e.Hours))
			if opt.IncludeNotes && strings.TrimSpace(e.Notes) != "" {
				writeLn("")
				writeLn(quote(e.Notes))
				writeLn("")
			}
		}
		writeLn("")
		writeTotals(&buf, "Hours per task", taskTotals(nonProject))
	}

	return buf.String()
}

func projectTotals(logs []model.LogEntry) map[string]float64 {
	totals := map[string]float64{}
	for _, e := range logs {
		totals[e.ProjectCode] += e.Hours
	}
	return totals
}

func taskTotals(rows []model.NonProjectEntry) map[string]float64 {
	totals := map[string]float64{}
	for _, e := range rows {
		totals[e.Task] += e.Hours
	}
	return totals
}

func writeTotals(buf *bytes.Buffer, title string, totals map[string]float64) {
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteString("**" + title + "**\n\n")
	for _, k := range keys {
		fmt.Fprintf(buf, "- %s: %.1f\n", k, totals[k])
	}
}

func quote(notes string) string {
	lines := strings.Split(strings.TrimSpace(notes), "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
