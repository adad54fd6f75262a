package view

// RowMode is the transient per-row UI mode. It is session-scoped and
// never persisted; every mode returns to Viewing on completion or cancel.
type RowMode int

const (
	Viewing RowMode = iota
	Editing
	ConfirmingDelete
)

func (m RowMode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case ConfirmingDelete:
		return "confirming-delete"
	default:
		return "unknown"
	}
}

// RowModes maps entry id -> mode for one displayed table. Rows without
// an entry are Viewing. Entering Editing clears a pending delete
// confirmation for the same id and vice versa, so a row is never in
// both at once.
type RowModes struct {
	modes map[int64]RowMode
}

func NewRowModes() *RowModes {
	return &RowModes{modes: map[int64]RowMode{}}
}

// Mode returns the current mode for id, defaulting to Viewing.
func (r *RowModes) Mode(id int64) RowMode {
	return r.modes[id]
}

// StartEdit moves the row into Editing, displacing a pending delete.
func (r *RowModes) StartEdit(id int64) {
	r.modes[id] = Editing
}

// StartDelete moves the row into ConfirmingDelete, displacing an edit.
func (r *RowModes) StartDelete(id int64) {
	r.modes[id] = ConfirmingDelete
}

// Cancel returns the row to Viewing; callers discard any edit buffer.
func (r *RowModes) Cancel(id int64) {
	delete(r.modes, id)
}

// Finish returns the row to Viewing after a successful save or delete.
// Must only be called once the mutation has succeeded; a failed mutation
// leaves the mode as-is.
func (r *RowModes) Finish(id int64) {
	delete(r.modes, id)
}

// Reset drops all transient modes (session end / view switch).
func (r *RowModes) Reset() {
	r.modes = map[int64]RowMode{}
}

// Active returns ids currently not in Viewing, for "unsaved changes"
// prompts.
func (r *RowModes) Active() []int64 {
	var ids []int64
	for id, m := range r.modes {
		if m != Viewing {
			ids = append(ids, id)
		}
	}
	return ids
}
