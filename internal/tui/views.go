package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"tracklog-cli/internal/view"
)

func (m appModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader() + "\n\n")
	if m.view == viewProject {
		b.WriteString(m.renderLogTable())
	} else {
		b.WriteString(m.renderNonProjectTable())
	}
	b.WriteString("\n" + m.renderFooter())
	if m.modal != modalNone {
		return m.renderModal()
	}
	return b.String()
}

func (m appModel) renderHeader() string {
	tab := func(label string, active bool) string {
		if active {
			return styleSelectedRow().Padding(0, 1).Render(label)
		}
		return styleMuted().Padding(0, 1).Render(label)
	}
	tabs := tab("project", m.view == viewProject) + " " + tab("non-project", m.view == viewNonProject)
	name := styleMuted().Render("name: ") + styleHeader().Render(m.name)
	return styleHeader().Render("tracklog") + "  " + tabs + "  " + name
}

func (m appModel) renderLogTable() string {
	noteW := m.width - 46
	if noteW < 10 {
		noteW = 10
	}
	var b strings.Builder
	b.WriteString(styleHeader().Render(
		fit("ID", 5) + fit("DATE", 11) + fit("PROJECT", 10) + fit("PHASE", 9) + fit("HOURS", 6) + fit("TD", 6) + "NOTES") + "\n")
	if len(m.logRows) == 0 {
		b.WriteString(styleMuted().Render("no entries. press a to add one.") + "\n")
		return b.String()
	}
	for i, e := range m.logRows {
		line := fit(fmt.Sprintf("%d", e.ID), 5) +
			fit(e.Date, 11) +
			fit(e.ProjectCode, 10) +
			fit(e.PhaseNumber, 9) +
			fit(fmt.Sprintf("%.1f", e.Hours), 6) +
			fit(dashIfEmpty(e.TDEvent), 6) +
			view.TruncateNote(e.Notes, noteW)
		b.WriteString(m.decorateRow(line, m.logModes.Mode(e.ID), i == m.logCursor) + "\n")
	}
	return b.String()
}

func (m appModel) renderNonProjectTable() string {
	noteW := m.width - 68
	if noteW < 10 {
		noteW = 10
	}
	var b strings.Builder
	b.WriteString(styleHeader().Render(
		fit("ID", 5) + fit("DATE", 11) + fit("NAME", 16) + fit("TASK", 18) + fit("CUSTOMER", 12) + fit("HOURS", 6) + "NOTES") + "\n")
	rows := m.visibleNonProject()
	if len(rows) == 0 {
		if m.filter.Empty() {
			b.WriteString(styleMuted().Render("no entries. press a to add one.") + "\n")
		} else {
			b.WriteString(styleMuted().Render("no entries match the active filters. press f to adjust.") + "\n")
		}
		return b.String()
	}
	for i, e := range rows {
		line := fit(fmt.Sprintf("%d", e.ID), 5) +
			fit(e.Date, 11) +
			fit(e.Name, 16) +
			fit(e.Task, 18) +
			fit(e.Customer, 12) +
			fit(fmt.Sprintf("%.1f", e.Hours), 6) +
			view.TruncateNote(e.Notes, noteW)
		b.WriteString(m.decorateRow(line, m.npModes.Mode(e.ID), i == m.npCursor) + "\n")
	}
	return b.String()
}

// decorateRow applies cursor highlight and per-row mode styling. A row
// pending delete confirmation stays visibly marked even when the cursor
// moves elsewhere.
func (m appModel) decorateRow(line string, mode view.RowMode, cursor bool) string {
	switch {
	case cursor:
		return styleSelectedRow().Render(xansi.Truncate(line, m.width, ""))
	case mode == view.ConfirmingDelete:
		return stylePendingDelete().Render(line)
	case mode == view.Editing:
		return styleFlashWarn().Render(line)
	default:
		return line
	}
}

func (m appModel) renderFooter() string {
	var help string
	if m.view == viewProject {
		help = "a: add   e: edit   d: delete   v: notes   n: next name   tab: switch view   q: quit"
	} else {
		help = "a: add   e: edit   d: delete   v: notes   f: filter   tab: switch view   q: quit"
	}
	out := styleMuted().Render(help)
	if !m.filter.Empty() && m.view == viewNonProject {
		out = styleFlashWarn().Render("filters active") + "   " + out
	}
	if m.flashText != "" {
		out += "\n" + m.flashStyle().Render(m.flashText)
	}
	return out
}

func (m appModel) flashStyle() lipgloss.Style {
	switch m.flashLevel {
	case flashWarn:
		return styleFlashWarn()
	case flashErr:
		return styleFlashErr()
	default:
		return styleFlashOK()
	}
}

func (m appModel) renderModal() string {
	var title, body string
	switch m.modal {
	case modalForm:
		title = m.form.title
		body = m.form.View(m.width)
	case modalConfirmSave:
		title = "Confirm changes"
		body = m.renderConfirm(fmt.Sprintf("Save changes to entry %d?", m.form.editID), "Save")
	case modalConfirmDelete:
		title = "Confirm delete"
		body = m.renderConfirm(fmt.Sprintf("Delete entry %d? This cannot be undone.", m.deleteID), "Delete")
	case modalNote:
		title = "Notes"
		body = renderNote(m.noteText, m.width)
	case modalFilter:
		title = "Filter entries"
		body = m.filterPanel.View(m.width)
	}

	boxW := m.width - 8
	if boxW > 76 {
		boxW = 76
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Padding(1, 2).
		Width(boxW).
		Render(styleHeader().Render(title) + "\n\n" + body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m appModel) renderConfirm(question, verb string) string {
	btn := func(label string, focused bool) string {
		st := lipgloss.NewStyle().Padding(0, 2).Background(colorControlBg).Foreground(colorSurfaceFg)
		if focused {
			st = st.Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true)
		}
		return st.Render(label)
	}
	buttons := btn(verb, m.confirmFocus == confirmFocusConfirm) + "   " + btn("Cancel", m.confirmFocus == confirmFocusCancel)
	help := styleMuted().Render("enter: choose   left/right: move   esc: back")
	return question + "\n\n" + buttons + "\n\n" + help
}

// renderNote shows the full note as markdown; the tables only ever show
// the truncated first line.
func renderNote(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return styleMuted().Render("(no notes)")
	}
	wrap := width - 16
	if wrap > 68 {
		wrap = 68
	}
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap))
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// fit pads or truncates a cell to an exact display width plus one space
// of gutter.
func fit(s string, width int) string {
	s = xansi.Truncate(s, width-1, "…")
	pad := width - xansi.StringWidth(s)
	if pad < 1 {
		pad = 1
	}
	return s + strings.Repeat(" ", pad)
}
