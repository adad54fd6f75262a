package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tracklog-cli/internal/model"
	"tracklog-cli/internal/mutate"
	"tracklog-cli/internal/refdata"
	"tracklog-cli/internal/store"
	"tracklog-cli/internal/view"
)

type workView int

const (
	viewProject workView = iota
	viewNonProject
)

type modalKind int

const (
	modalNone modalKind = iota
	modalForm
	modalConfirmSave
	modalConfirmDelete
	modalNote
	modalFilter
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type flashLevel int

const (
	flashOK flashLevel = iota
	flashWarn
	flashErr
)

type flashDoneMsg struct{ seq int }

// appModel is the single-session TUI state. Store calls are made
// synchronously inside Update: each user action runs to completion,
// including the store round-trip, before the next is accepted.
type appModel struct {
	svc     *mutate.Service
	catalog *refdata.Catalog
	name    string

	width  int
	height int

	view workView

	logRows []model.LogEntry
	npRows  []model.NonProjectEntry
	filter  view.NonProjectFilter

	logModes  *view.RowModes
	npModes   *view.RowModes
	logCursor int
	npCursor  int

	modal        modalKind
	confirmFocus confirmModalFocus
	form         *entryForm
	deleteID     int64
	noteText     string
	filterPanel  *filterPanel

	flashText  string
	flashLevel flashLevel
	flashSeq   int

	// fatal holds a store-unavailable error; the session ends and the
	// error propagates out of Run.
	fatal error
}

// Run starts the interactive session and blocks until it ends.
func Run(svc *mutate.Service, catalog *refdata.Catalog, defaultName string, warnings []store.SchemaWarning) error {
	m, err := newAppModel(svc, catalog, defaultName, warnings)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(appModel); ok && fm.fatal != nil {
		return fm.fatal
	}
	return nil
}

func newAppModel(svc *mutate.Service, catalog *refdata.Catalog, defaultName string, warnings []store.SchemaWarning) (appModel, error) {
	name := defaultName
	if !catalog.HasEmployee(name) {
		names := catalog.ListEmployeeNames()
		if len(names) == 0 {
			return appModel{}, fmt.Errorf("reference data lists no employees")
		}
		name = names[0]
	}

	m := appModel{
		svc:      svc,
		catalog:  catalog,
		name:     name,
		view:     viewProject,
		logModes: view.NewRowModes(),
		npModes:  view.NewRowModes(),
	}
	if err := m.reloadLogs(); err != nil {
		return appModel{}, err
	}
	if err := m.reloadNonProject(); err != nil {
		return appModel{}, err
	}
	if len(warnings) > 0 {
		m.flashText = fmt.Sprintf("schema: %v", warnings[0])
		m.flashLevel = flashWarn
	}
	return m, nil
}

func (m appModel) Init() tea.Cmd { return nil }

func (m *appModel) reloadLogs() error {
	rows, err := m.svc.Logs(context.Background(), m.name)
	if err != nil {
		return err
	}
	m.logRows = rows
	m.clampCursors()
	return nil
}

func (m *appModel) reloadNonProject() error {
	rows, err := m.svc.NonProject(context.Background())
	if err != nil {
		return err
	}
	m.npRows = rows
	m.clampCursors()
	return nil
}

// visibleNonProject applies the active filters; order comes from the
// store (newest first).
func (m *appModel) visibleNonProject() []model.NonProjectEntry {
	return view.ApplyNonProjectFilter(m.npRows, m.filter)
}

func (m *appModel) clampCursors() {
	if n := len(m.logRows); m.logCursor >= n {
		m.logCursor = n - 1
	}
	if m.logCursor < 0 {
		m.logCursor = 0
	}
	if n := len(m.visibleNonProject()); m.npCursor >= n {
		m.npCursor = n - 1
	}
	if m.npCursor < 0 {
		m.npCursor = 0
	}
}

// selectedLog returns the project row under the cursor.
func (m *appModel) selectedLog() (model.LogEntry, bool) {
	if m.logCursor < 0 || m.logCursor >= len(m.logRows) {
		return model.LogEntry{}, false
	}
	return m.logRows[m.logCursor], true
}

func (m *appModel) selectedNonProject() (model.NonProjectEntry, bool) {
	rows := m.visibleNonProject()
	if m.npCursor < 0 || m.npCursor >= len(rows) {
		return model.NonProjectEntry{}, false
	}
	return rows[m.npCursor], true
}

// modes returns the row-mode map for the active view.
func (m *appModel) modes() *view.RowModes {
	if m.view == viewProject {
		return m.logModes
	}
	return m.npModes
}

func (m *appModel) setFlash(level flashLevel, text string) tea.Cmd {
	m.flashText = text
	m.flashLevel = level
	m.flashSeq++
	return flashAfter(m.flashSeq)
}

// cycleName moves to the next employee, resetting project-view row state
// (modes are per displayed table, and the table is changing under us).
func (m *appModel) cycleName() {
	names := m.catalog.ListEmployeeNames()
	if len(names) == 0 {
		return
	}
	idx := 0
	for i, n := range names {
		if n == m.name {
			idx = (i + 1) % len(names)
			break
		}
	}
	m.name = names[idx]
	m.logModes.Reset()
	m.logCursor = 0
}
