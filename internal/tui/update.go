package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tracklog-cli/internal/model"
	"tracklog-cli/internal/mutate"
	"tracklog-cli/internal/store"
)

const flashDuration = 3 * time.Second

func flashAfter(seq int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flashText = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m appModel) updateBrowse(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		if m.view == viewProject {
			m.view = viewNonProject
		} else {
			m.view = viewProject
		}
		return m, nil

	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil
	case "g":
		m.setCursor(0)
		return m, nil
	case "G":
		m.setCursor(m.rowCount() - 1)
		return m, nil

	case "a":
		if m.view == viewProject {
			m.form = newProjectAddForm(m.catalog, m.name)
		} else {
			m.form = newNonProjectAddForm(m.catalog, m.name)
		}
		m.modal = modalForm
		return m, nil

	case "e":
		return m.startEdit()

	case "d":
		return m.startDelete()

	case "v", "enter":
		return m.openNote()

	case "f":
		if m.view == viewNonProject {
			m.filterPanel = newFilterPanel(m.npRows, m.filter)
			m.modal = modalFilter
		}
		return m, nil

	case "n":
		if m.view == viewProject {
			m.cycleName()
			if err := m.reloadLogs(); err != nil {
				return m, m.mutationErr(err)
			}
			return m, m.setFlash(flashOK, "showing "+m.name)
		}
		return m, nil

	case "r":
		if err := m.reloadLogs(); err != nil {
			return m, m.mutationErr(err)
		}
		if err := m.reloadNonProject(); err != nil {
			return m, m.mutationErr(err)
		}
		return m, m.setFlash(flashOK, "reloaded")
	}
	return m, nil
}

func (m *appModel) rowCount() int {
	if m.view == viewProject {
		return len(m.logRows)
	}
	return len(m.visibleNonProject())
}

func (m *appModel) moveCursor(delta int) {
	m.setCursor(m.cursor() + delta)
}

func (m *appModel) cursor() int {
	if m.view == viewProject {
		return m.logCursor
	}
	return m.npCursor
}

func (m *appModel) setCursor(i int) {
	n := m.rowCount()
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	if m.view == viewProject {
		m.logCursor = i
	} else {
		m.npCursor = i
	}
}

func (m appModel) startEdit() (tea.Model, tea.Cmd) {
	if m.view == viewProject {
		e, ok := m.selectedLog()
		if !ok {
			return m, nil
		}
		m.logModes.StartEdit(e.ID)
		m.form = newProjectEditForm(e)
	} else {
		e, ok := m.selectedNonProject()
		if !ok {
			return m, nil
		}
		m.npModes.StartEdit(e.ID)
		m.form = newNonProjectEditForm(m.catalog, e)
	}
	m.modal = modalForm
	return m, nil
}

func (m appModel) startDelete() (tea.Model, tea.Cmd) {
	var id int64
	if m.view == viewProject {
		e, ok := m.selectedLog()
		if !ok {
			return m, nil
		}
		id = e.ID
	} else {
		e, ok := m.selectedNonProject()
		if !ok {
			return m, nil
		}
		id = e.ID
	}
	m.modes().StartDelete(id)
	m.deleteID = id
	m.confirmFocus = confirmFocusCancel
	m.modal = modalConfirmDelete
	return m, nil
}

func (m appModel) openNote() (tea.Model, tea.Cmd) {
	var notes string
	if m.view == viewProject {
		e, ok := m.selectedLog()
		if !ok {
			return m, nil
		}
		notes = e.Notes
	} else {
		e, ok := m.selectedNonProject()
		if !ok {
			return m, nil
		}
		notes = e.Notes
	}
	m.noteText = notes
	m.modal = modalNote
	return m, nil
}

func (m appModel) updateModal(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalForm:
		return m.updateForm(k)
	case modalConfirmSave:
		return m.updateConfirmSave(k)
	case modalConfirmDelete:
		return m.updateConfirmDelete(k)
	case modalNote:
		switch k.String() {
		case "esc", "q", "enter", "v":
			m.modal = modalNone
		}
		return m, nil
	case modalFilter:
		return m.updateFilter(k)
	}
	return m, nil
}

func (m appModel) updateForm(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.form.HandleKey(k)
	switch action {
	case formCancel:
		if m.form.editID != 0 {
			m.modes().Cancel(m.form.editID)
		}
		m.closeForm()
		return m, nil

	case formSubmit:
		if m.form.editID == 0 {
			return m.submitAdd()
		}
		return m.submitEdit()
	}
	return m, cmd
}

// submitAdd validates, inserts, and refreshes in one step. Adds have no
// secondary confirmation; only edits of existing rows do.
func (m appModel) submitAdd() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	if m.form.kind == model.EntryKindProject {
		e, err := m.form.logEntry(m.name)
		if err != nil {
			m.form.errText = err.Error()
			return m, nil
		}
		rows, err := m.svc.InsertLog(ctx, e)
		if err != nil {
			return m.formErr(err)
		}
		m.logRows = rows
	} else {
		e, err := m.form.nonProjectEntry()
		if err != nil {
			m.form.errText = err.Error()
			return m, nil
		}
		rows, err := m.svc.InsertNonProject(ctx, e)
		if err != nil {
			return m.formErr(err)
		}
		m.npRows = rows
	}
	m.closeForm()
	m.clampCursors()
	return m, m.setFlash(flashOK, "entry added")
}

// submitEdit moves to the save confirmation step if anything changed.
func (m appModel) submitEdit() (tea.Model, tea.Cmd) {
	var changed bool
	var err error
	if m.form.kind == model.EntryKindProject {
		_, changed, err = m.form.logPatch()
	} else {
		_, changed, err = m.form.nonProjectPatch()
	}
	if err != nil {
		m.form.errText = err.Error()
		return m, nil
	}
	if !changed {
		m.modes().Cancel(m.form.editID)
		m.closeForm()
		return m, m.setFlash(flashWarn, "no changes")
	}
	m.confirmFocus = confirmFocusConfirm
	m.modal = modalConfirmSave
	return m, nil
}

func (m appModel) updateConfirmSave(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.modal = modalForm
		return m, nil
	case "left", "right", "tab":
		m.toggleConfirmFocus()
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusCancel {
			m.modal = modalForm
			return m, nil
		}
		return m.applyEdit()
	}
	return m, nil
}

func (m appModel) applyEdit() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	id := m.form.editID
	if m.form.kind == model.EntryKindProject {
		p, _, err := m.form.logPatch()
		if err != nil {
			m.modal = modalForm
			m.form.errText = err.Error()
			return m, nil
		}
		rows, err := m.svc.UpdateLog(ctx, m.name, id, p)
		if err != nil {
			return m.editErr(id, err)
		}
		m.logRows = rows
	} else {
		p, _, err := m.form.nonProjectPatch()
		if err != nil {
			m.modal = modalForm
			m.form.errText = err.Error()
			return m, nil
		}
		rows, err := m.svc.UpdateNonProject(ctx, id, p)
		if err != nil {
			return m.editErr(id, err)
		}
		m.npRows = rows
	}
	m.modes().Finish(id)
	m.closeForm()
	m.clampCursors()
	return m, m.setFlash(flashOK, "entry updated")
}

func (m appModel) updateConfirmDelete(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.modes().Cancel(m.deleteID)
		m.modal = modalNone
		return m, nil
	case "left", "right", "tab":
		m.toggleConfirmFocus()
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusCancel {
			m.modes().Cancel(m.deleteID)
			m.modal = modalNone
			return m, nil
		}
		return m.applyDelete()
	}
	return m, nil
}

func (m appModel) applyDelete() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	id := m.deleteID
	var found bool
	var err error
	if m.view == viewProject {
		var rows []model.LogEntry
		rows, found, err = m.svc.DeleteLog(ctx, m.name, id)
		if err == nil {
			m.logRows = rows
		}
	} else {
		var rows []model.NonProjectEntry
		rows, found, err = m.svc.DeleteNonProject(ctx, id)
		if err == nil {
			m.npRows = rows
		}
	}
	if err != nil {
		m.modal = modalNone
		return m, m.mutationErr(err)
	}
	m.modes().Finish(id)
	m.modal = modalNone
	m.clampCursors()
	if !found {
		return m, m.setFlash(flashWarn, fmt.Sprintf("entry %d was already removed", id))
	}
	return m, m.setFlash(flashOK, "entry deleted")
}

func (m appModel) updateFilter(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.filterPanel.HandleKey(k) {
	case filterApply:
		m.filter = m.filterPanel.Filter()
		m.npCursor = 0
		m.modal = modalNone
		m.filterPanel = nil
		return m, m.setFlash(flashOK, "filters applied")
	case filterCancel:
		m.modal = modalNone
		m.filterPanel = nil
	}
	return m, nil
}

func (m *appModel) toggleConfirmFocus() {
	if m.confirmFocus == confirmFocusConfirm {
		m.confirmFocus = confirmFocusCancel
	} else {
		m.confirmFocus = confirmFocusConfirm
	}
}

func (m *appModel) closeForm() {
	m.modal = modalNone
	m.form = nil
}

// formErr routes a mutation failure during a form submit: validation
// problems stay inside the form, everything else goes through the
// standard classifier.
func (m appModel) formErr(err error) (tea.Model, tea.Cmd) {
	var ve mutate.ValidationError
	if errors.As(err, &ve) {
		m.form.errText = ve.Error()
		return m, nil
	}
	m.closeForm()
	return m, m.mutationErr(err)
}

// editErr handles a failed confirmed save. A validation rejection keeps
// the form open with the buffer intact so the user can correct it; a
// vanished row is benign: drop the edit and refresh.
func (m appModel) editErr(id int64, err error) (tea.Model, tea.Cmd) {
	var ve mutate.ValidationError
	if errors.As(err, &ve) {
		m.modal = modalForm
		m.form.errText = ve.Error()
		return m, nil
	}
	var nf mutate.NotFoundError
	if errors.As(err, &nf) {
		m.modes().Cancel(id)
		m.closeForm()
		if m.view == viewProject {
			_ = m.reloadLogs()
		} else {
			_ = m.reloadNonProject()
		}
		return m, m.setFlash(flashWarn, err.Error())
	}
	m.closeForm()
	return m, m.mutationErr(err)
}

// mutationErr classifies errors outside a form: an unavailable store
// ends the session, a not-found is a benign notice, anything else is a
// visible error flash.
func (m *appModel) mutationErr(err error) tea.Cmd {
	var ue *store.UnavailableError
	if errors.As(err, &ue) {
		m.fatal = err
		return tea.Quit
	}
	var nf mutate.NotFoundError
	if errors.As(err, &nf) {
		return m.setFlash(flashWarn, err.Error())
	}
	return m.setFlash(flashErr, err.Error())
}
