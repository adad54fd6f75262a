package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tracklog-cli/internal/model"
	"tracklog-cli/internal/refdata"
)

type fieldKind int

const (
	fieldStatic fieldKind = iota
	fieldOption
	fieldText
	fieldArea
)

type formField struct {
	key    string
	label  string
	kind   fieldKind
	hidden bool

	static  string
	options []string
	optIdx  int
	input   textinput.Model
	area    textarea.Model
}

func (f *formField) value() string {
	switch f.kind {
	case fieldStatic:
		return f.static
	case fieldOption:
		if f.optIdx >= 0 && f.optIdx < len(f.options) {
			return f.options[f.optIdx]
		}
		return ""
	case fieldText:
		return strings.TrimSpace(f.input.Value())
	case fieldArea:
		return f.area.Value()
	}
	return ""
}

type formAction int

const (
	formContinue formAction = iota
	formSubmit
	formCancel
)

// entryForm is the add/edit sheet for both entry variants. For project
// edits the identity fields (project, phase, TD event) render as static
// rows: they froze at creation time.
type entryForm struct {
	title   string
	kind    model.EntryKind
	editID  int64 // 0 = add
	fields  []formField
	focus   int
	errText string

	catalog    *refdata.Catalog
	resolution refdata.Resolution

	origLog model.LogEntry
	origNP  model.NonProjectEntry
}

func staticField(key, label, value string) formField {
	return formField{key: key, label: label, kind: fieldStatic, static: value}
}

func optionField(key, label string, options []string, current string) formField {
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	return formField{key: key, label: label, kind: fieldOption, options: options, optIdx: idx}
}

func textField(key, label, value, placeholder string) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.SetValue(value)
	in.CharLimit = 64
	return formField{key: key, label: label, kind: fieldText, input: in}
}

func areaField(key, label, value string) formField {
	ta := textarea.New()
	ta.SetValue(value)
	ta.SetHeight(3)
	ta.CharLimit = 2000
	return formField{key: key, label: label, kind: fieldArea, area: ta}
}

func newProjectAddForm(catalog *refdata.Catalog, name string) *entryForm {
	var tdOpts []string
	for _, n := range catalog.TDNumbers() {
		tdOpts = append(tdOpts, refdata.CanonicalCode(n))
	}
	f := &entryForm{
		title:   "Add project entry",
		kind:    model.EntryKindProject,
		catalog: catalog,
		fields: []formField{
			staticField("name", "Name", name),
			optionField("td", "TD event", tdOpts, ""),
			optionField("manual", "Manual override", []string{"no", "yes"}, "no"),
			optionField("project", "Project", nil, ""),
			optionField("phase", "Phase", nil, ""),
			textField("date", "Date", model.Today(), "YYYY-MM-DD"),
			textField("hours", "Hours", "", "0.0"),
			areaField("notes", "Notes", ""),
		},
	}
	f.refreshProjectOptions()
	return f
}

func newProjectEditForm(e model.LogEntry) *entryForm {
	return &entryForm{
		title:   fmt.Sprintf("Edit entry %d", e.ID),
		kind:    model.EntryKindProject,
		editID:  e.ID,
		origLog: e,
		fields: []formField{
			staticField("name", "Name", e.Name),
			staticField("project", "Project", e.ProjectCode),
			staticField("phase", "Phase", e.PhaseNumber),
			staticField("td", "TD event", dashIfEmpty(e.TDEvent)),
			textField("date", "Date", e.Date, "YYYY-MM-DD"),
			textField("hours", "Hours", formatHours(e.Hours), "0.0"),
			areaField("notes", "Notes", e.Notes),
		},
	}
}

func newNonProjectAddForm(catalog *refdata.Catalog, name string) *entryForm {
	return &entryForm{
		title:   "Add non-project entry",
		kind:    model.EntryKindNonProject,
		catalog: catalog,
		fields: []formField{
			optionField("name", "Name", catalog.ListEmployeeNames(), name),
			optionField("task", "Task", catalog.ListNonProjectTasks(), ""),
			optionField("customer", "Customer", catalog.ListCustomers(), ""),
			textField("date", "Date", model.Today(), "YYYY-MM-DD"),
			textField("hours", "Hours", "", "0.0"),
			areaField("notes", "Notes", ""),
		},
	}
}

func newNonProjectEditForm(catalog *refdata.Catalog, e model.NonProjectEntry) *entryForm {
	// A categorical value retired from the catalog since creation still
	// renders as the row's current choice; it only re-validates if the
	// user actually changes the field.
	return &entryForm{
		title:   fmt.Sprintf("Edit entry %d", e.ID),
		kind:    model.EntryKindNonProject,
		editID:  e.ID,
		origNP:  e,
		catalog: catalog,
		fields: []formField{
			optionField("name", "Name", withCurrent(catalog.ListEmployeeNames(), e.Name), e.Name),
			optionField("task", "Task", withCurrent(catalog.ListNonProjectTasks(), e.Task), e.Task),
			optionField("customer", "Customer", withCurrent(catalog.ListCustomers(), e.Customer), e.Customer),
			textField("date", "Date", e.Date, "YYYY-MM-DD"),
			textField("hours", "Hours", formatHours(e.Hours), "0.0"),
			areaField("notes", "Notes", e.Notes),
		},
	}
}

func withCurrent(options []string, current string) []string {
	for _, o := range options {
		if o == current {
			return options
		}
	}
	return append([]string{current}, options...)
}

func (f *entryForm) field(key string) *formField {
	for i := range f.fields {
		if f.fields[i].key == key {
			return &f.fields[i]
		}
	}
	return nil
}

func (f *entryForm) value(key string) string {
	if fl := f.field(key); fl != nil {
		return fl.value()
	}
	return ""
}

// refreshProjectOptions recomputes the TD resolution and the dependent
// project/phase pickers (add form only).
func (f *entryForm) refreshProjectOptions() {
	td := f.field("td")
	manual := f.field("manual")
	project := f.field("project")
	phase := f.field("phase")
	if td == nil || manual == nil || project == nil || phase == nil {
		return
	}

	n := 0
	if code := td.value(); strings.HasPrefix(code, "TD") {
		n, _ = strconv.Atoi(strings.TrimPrefix(code, "TD"))
	}
	f.resolution = f.catalog.Resolve(n)

	prevProject := project.value()
	switch {
	case !f.resolution.Unrestricted:
		manual.hidden = true
		project.options = f.resolution.ProjectCodes()
	case manual.value() == "yes":
		manual.hidden = false
		project.options = f.catalog.ListAllProjectCodes()
	default:
		// Unrestricted without the explicit override: nothing to pick.
		manual.hidden = false
		project.options = nil
	}
	project.optIdx = indexOf(project.options, prevProject)

	prevPhase := phase.value()
	if f.resolution.Unrestricted {
		phase.options = f.catalog.ListPhasesForProject(project.value())
	} else {
		phase.options = f.resolution.PhasesForProject(project.value())
	}
	phase.optIdx = indexOf(phase.options, prevPhase)
}

func indexOf(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return 0
}

func (f *entryForm) visibleFields() []*formField {
	var out []*formField
	for i := range f.fields {
		if !f.fields[i].hidden {
			out = append(out, &f.fields[i])
		}
	}
	return out
}

func (f *entryForm) focusedField() *formField {
	vis := f.visibleFields()
	if f.focus < 0 || f.focus >= len(vis) {
		return nil
	}
	return vis[f.focus]
}

func (f *entryForm) moveFocus(delta int) {
	vis := f.visibleFields()
	if len(vis) == 0 {
		return
	}
	if cur := f.focusedField(); cur != nil {
		cur.input.Blur()
		cur.area.Blur()
	}
	f.focus = (f.focus + delta + len(vis)) % len(vis)
	if cur := f.focusedField(); cur != nil {
		switch cur.kind {
		case fieldText:
			cur.input.Focus()
		case fieldArea:
			cur.area.Focus()
		}
	}
}

// HandleKey processes one key, returning whether the form wants to
// submit, cancel, or keep going.
func (f *entryForm) HandleKey(k tea.KeyMsg) (formAction, tea.Cmd) {
	switch k.String() {
	case "esc":
		return formCancel, nil
	case "ctrl+s":
		return formSubmit, nil
	case "tab", "enter":
		if cur := f.focusedField(); cur != nil && cur.kind == fieldArea && k.String() == "enter" {
			break // newline inside notes
		}
		f.moveFocus(1)
		return formContinue, nil
	case "shift+tab":
		f.moveFocus(-1)
		return formContinue, nil
	case "left", "right":
		if cur := f.focusedField(); cur != nil && cur.kind == fieldOption {
			if n := len(cur.options); n > 0 {
				if k.String() == "right" {
					cur.optIdx = (cur.optIdx + 1) % n
				} else {
					cur.optIdx = (cur.optIdx - 1 + n) % n
				}
				f.onOptionChanged(cur.key)
			}
			return formContinue, nil
		}
	}

	cur := f.focusedField()
	if cur == nil {
		return formContinue, nil
	}
	var cmd tea.Cmd
	switch cur.kind {
	case fieldText:
		cur.input, cmd = cur.input.Update(k)
	case fieldArea:
		cur.area, cmd = cur.area.Update(k)
	}
	return formContinue, cmd
}

func (f *entryForm) onOptionChanged(key string) {
	if f.kind == model.EntryKindProject && f.editID == 0 {
		switch key {
		case "td", "manual", "project":
			f.refreshProjectOptions()
		}
	}
}

// logEntry assembles a new project entry from the form.
func (f *entryForm) logEntry(name string) (model.LogEntry, error) {
	hours, err := parseHours(f.value("hours"))
	if err != nil {
		return model.LogEntry{}, err
	}
	if f.resolution.Unrestricted && f.value("manual") != "yes" {
		return model.LogEntry{}, fmt.Errorf("no tasks for %s: enable manual override to pick any project", f.resolution.Code)
	}
	return model.LogEntry{
		Name:        name,
		Date:        f.value("date"),
		ProjectCode: f.value("project"),
		PhaseNumber: f.value("phase"),
		Hours:       hours,
		Notes:       f.value("notes"),
		TDEvent:     f.resolution.Code,
	}, nil
}

// logPatch builds the update patch from fields the user actually changed.
func (f *entryForm) logPatch() (model.LogPatch, bool, error) {
	var p model.LogPatch
	changed := false
	if v := f.value("date"); v != f.origLog.Date {
		p.Date = &v
		changed = true
	}
	hours, err := parseHours(f.value("hours"))
	if err != nil {
		return p, false, err
	}
	if hours != f.origLog.Hours {
		p.Hours = &hours
		changed = true
	}
	if v := f.value("notes"); v != f.origLog.Notes {
		p.Notes = &v
		changed = true
	}
	return p, changed, nil
}

func (f *entryForm) nonProjectEntry() (model.NonProjectEntry, error) {
	hours, err := parseHours(f.value("hours"))
	if err != nil {
		return model.NonProjectEntry{}, err
	}
	return model.NonProjectEntry{
		Name:     f.value("name"),
		Date:     f.value("date"),
		Task:     f.value("task"),
		Customer: f.value("customer"),
		Hours:    hours,
		Notes:    f.value("notes"),
	}, nil
}

// nonProjectPatch builds the update patch from changed fields only, so
// an untouched value retired from the catalog does not block the save.
func (f *entryForm) nonProjectPatch() (model.NonProjectPatch, bool, error) {
	var p model.NonProjectPatch
	changed := false
	if v := f.value("name"); v != f.origNP.Name {
		p.Name = &v
		changed = true
	}
	if v := f.value("date"); v != f.origNP.Date {
		p.Date = &v
		changed = true
	}
	if v := f.value("task"); v != f.origNP.Task {
		p.Task = &v
		changed = true
	}
	if v := f.value("customer"); v != f.origNP.Customer {
		p.Customer = &v
		changed = true
	}
	hours, err := parseHours(f.value("hours"))
	if err != nil {
		return p, false, err
	}
	if hours != f.origNP.Hours {
		p.Hours = &hours
		changed = true
	}
	if v := f.value("notes"); v != f.origNP.Notes {
		p.Notes = &v
		changed = true
	}
	return p, changed, nil
}

func parseHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("hours: enter a number")
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("hours: %q is not a number", s)
	}
	return h, nil
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func pairSummary(pairs []refdata.ProjectPhase) string {
	const max = 6
	var parts []string
	for i, p := range pairs {
		if i == max {
			parts = append(parts, fmt.Sprintf("and %d more", len(pairs)-max))
			break
		}
		parts = append(parts, p.ProjectCode+"/"+p.PhaseNumber)
	}
	return strings.Join(parts, ", ")
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// View renders the form body for the modal box.
func (f *entryForm) View(width int) string {
	label := lipgloss.NewStyle().Foreground(colorMuted).Width(16)
	focusedLabel := lipgloss.NewStyle().Bold(true).Width(16)

	var b strings.Builder
	for i, fl := range f.visibleFields() {
		ls := label
		marker := "  "
		if i == f.focus {
			ls = focusedLabel
			marker = "> "
		}
		b.WriteString(marker)
		b.WriteString(ls.Render(fl.label))
		switch fl.kind {
		case fieldStatic:
			b.WriteString(styleMuted().Render(fl.static))
		case fieldOption:
			val := fl.value()
			if val == "" {
				val = "(none)"
			}
			if i == f.focus {
				b.WriteString("< " + val + " >")
			} else {
				b.WriteString(val)
			}
		case fieldText:
			b.WriteString(fl.input.View())
		case fieldArea:
			b.WriteString("\n" + fl.area.View())
		}
		b.WriteString("\n")
	}

	if f.kind == model.EntryKindProject && f.editID == 0 {
		if f.resolution.Unrestricted {
			b.WriteString("\n" + styleFlashWarn().Render(
				fmt.Sprintf("No tasks found for %s. Enable manual override to select from all projects.", f.resolution.Code)) + "\n")
		} else {
			b.WriteString("\n" + styleMuted().Render(
				fmt.Sprintf("%s permits: %s", f.resolution.Code, pairSummary(f.resolution.Pairs))) + "\n")
		}
	}
	if f.errText != "" {
		b.WriteString("\n" + styleFlashErr().Render(f.errText) + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("tab: next field   left/right: choose   ctrl+s: save   esc: cancel"))
	return b.String()
}
