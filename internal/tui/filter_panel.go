package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tracklog-cli/internal/model"
	"tracklog-cli/internal/view"
)

type filterAction int

const (
	filterPending filterAction = iota
	filterApply
	filterCancel
)

type filterColumn struct {
	title  string
	values []string
	sel    map[string]bool
}

// filterPanel is the multiselect overlay for the non-project table. One
// column per filterable field; an empty selection means no restriction
// on that column.
type filterPanel struct {
	cols []filterColumn
	col  int
	row  int
}

func newFilterPanel(rows []model.NonProjectEntry, cur view.NonProjectFilter) *filterPanel {
	return &filterPanel{
		cols: []filterColumn{
			{title: "Name", values: view.DistinctNames(rows), sel: selSet(cur.Names)},
			{title: "Task", values: view.DistinctTasks(rows), sel: selSet(cur.Tasks)},
			{title: "Customer", values: view.DistinctCustomers(rows), sel: selSet(cur.Customers)},
		},
	}
}

func selSet(vals []string) map[string]bool {
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

func (p *filterPanel) HandleKey(k tea.KeyMsg) filterAction {
	switch k.String() {
	case "esc", "q":
		return filterCancel
	case "enter":
		return filterApply
	case "left", "h":
		if p.col > 0 {
			p.col--
			p.clampRow()
		}
	case "right", "l", "tab":
		if p.col < len(p.cols)-1 {
			p.col++
			p.clampRow()
		}
	case "up", "k":
		if p.row > 0 {
			p.row--
		}
	case "down", "j":
		if p.row < len(p.cols[p.col].values)-1 {
			p.row++
		}
	case " ":
		c := &p.cols[p.col]
		if p.row < len(c.values) {
			v := c.values[p.row]
			if c.sel[v] {
				delete(c.sel, v)
			} else {
				c.sel[v] = true
			}
		}
	case "c":
		for i := range p.cols {
			p.cols[i].sel = map[string]bool{}
		}
	}
	return filterPending
}

func (p *filterPanel) clampRow() {
	if n := len(p.cols[p.col].values); p.row >= n {
		p.row = n - 1
	}
	if p.row < 0 {
		p.row = 0
	}
}

// Filter materializes the current selections.
func (p *filterPanel) Filter() view.NonProjectFilter {
	var f view.NonProjectFilter
	f.Names = selected(p.cols[0])
	f.Tasks = selected(p.cols[1])
	f.Customers = selected(p.cols[2])
	return f
}

func selected(c filterColumn) []string {
	var out []string
	for _, v := range c.values {
		if c.sel[v] {
			out = append(out, v)
		}
	}
	return out
}

func (p *filterPanel) View(width int) string {
	colWidth := 22
	if width > 0 && width/3-4 < colWidth {
		colWidth = width/3 - 4
	}
	if colWidth < 10 {
		colWidth = 10
	}

	var rendered []string
	for ci, c := range p.cols {
		var b strings.Builder
		title := styleHeader().Render(c.title)
		if ci == p.col {
			title = styleHeader().Foreground(colorAccent).Render(c.title)
		}
		b.WriteString(title + "\n")
		if len(c.values) == 0 {
			b.WriteString(styleMuted().Render("(no values)") + "\n")
		}
		for ri, v := range c.values {
			box := "[ ]"
			if c.sel[v] {
				box = "[x]"
			}
			line := box + " " + v
			if ci == p.col && ri == p.row {
				line = styleSelectedRow().Render(line)
			}
			b.WriteString(line + "\n")
		}
		rendered = append(rendered, lipgloss.NewStyle().Width(colWidth).Render(b.String()))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	help := styleMuted().Render("space: toggle   arrows: move   c: clear all   enter: apply   esc: cancel")
	return body + "\n" + help
}
