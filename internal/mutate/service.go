package mutate

import (
	"context"
	"errors"
	"strings"

	"tracklog-cli/internal/model"
	"tracklog-cli/internal/refdata"
	"tracklog-cli/internal/store"
)

const (
	kindLog        = "log entry"
	kindNonProject = "non-project entry"
)

// Service performs validated mutations against the log store. Every
// successful mutation is followed by a full reload of the affected
// table, returned to the caller as the new view snapshot; a failed
// mutation returns an error and no snapshot, so callers keep their
// current view and row state unchanged.
type Service struct {
	store   *store.Store
	catalog refdata.Provider
}

func NewService(s *store.Store, catalog refdata.Provider) *Service {
	return &Service{store: s, catalog: catalog}
}

// Logs reloads the project-work view for one employee.
func (svc *Service) Logs(ctx context.Context, name string) ([]model.LogEntry, error) {
	return svc.store.SelectLogs(ctx, name)
}

// NonProject reloads the full non-project view.
func (svc *Service) NonProject(ctx context.Context) ([]model.NonProjectEntry, error) {
	return svc.store.SelectNonProject(ctx)
}

// InsertLog validates and persists a new project-work entry, then
// reloads the employee's log view. The project/phase pairing is
// validated against the catalog here, at creation time, and frozen on
// the row afterwards.
func (svc *Service) InsertLog(ctx context.Context, e model.LogEntry) ([]model.LogEntry, error) {
	if err := validateHours(e.Hours); err != nil {
		return nil, err
	}
	if err := validateDate(e.Date); err != nil {
		return nil, err
	}
	for field, v := range map[string]string{
		"name":        e.Name,
		"projectCode": e.ProjectCode,
		"phaseNumber": e.PhaseNumber,
	} {
		if strings.TrimSpace(v) == "" {
			return nil, ValidationError{Field: field, Reason: "must not be empty"}
		}
	}
	if !contains(svc.catalog.ListPhasesForProject(e.ProjectCode), e.PhaseNumber) {
		return nil, ValidationError{Field: "phaseNumber", Reason: "no such project/phase pairing in the reference sheet"}
	}

	if _, err := svc.store.InsertLog(ctx, e); err != nil {
		return nil, err
	}
	return svc.store.SelectLogs(ctx, e.Name)
}

// UpdateLog applies an edit to a project-work entry. Only date, hours
// and notes are editable; identity fields stay frozen by construction
// of model.LogPatch.
func (svc *Service) UpdateLog(ctx context.Context, name string, id int64, p model.LogPatch) ([]model.LogEntry, error) {
	if p.Hours != nil {
		if err := validateHours(*p.Hours); err != nil {
			return nil, err
		}
	}
	if p.Date != nil {
		if err := validateDate(*p.Date); err != nil {
			return nil, err
		}
	}
	if err := svc.store.UpdateLog(ctx, id, p); err != nil {
		if errors.Is(err, store.ErrRowNotFound) {
			return nil, NotFoundError{Kind: kindLog, ID: id}
		}
		return nil, err
	}
	return svc.store.SelectLogs(ctx, name)
}

// DeleteLog removes a project-work entry and reloads the employee's
// view. Deleting an already-deleted row is success; found=false lets
// the UI show a benign notice.
func (svc *Service) DeleteLog(ctx context.Context, name string, id int64) (rows []model.LogEntry, found bool, err error) {
	found, err = svc.store.DeleteLog(ctx, id)
	if err != nil {
		return nil, false, err
	}
	rows, err = svc.store.SelectLogs(ctx, name)
	return rows, found, err
}

// InsertNonProject validates and persists a new non-project entry, then
// reloads the non-project view. Categorical fields are validated against
// the current catalog.
func (svc *Service) InsertNonProject(ctx context.Context, e model.NonProjectEntry) ([]model.NonProjectEntry, error) {
	if err := validateHours(e.Hours); err != nil {
		return nil, err
	}
	if err := validateDate(e.Date); err != nil {
		return nil, err
	}
	if err := svc.validateNonProjectFields(&e.Name, &e.Task, &e.Customer); err != nil {
		return nil, err
	}
	if _, err := svc.store.InsertNonProject(ctx, e); err != nil {
		return nil, err
	}
	return svc.store.SelectNonProject(ctx)
}

// UpdateNonProject applies an edit to a non-project entry. Unlike
// project entries, categorical fields are editable and re-validated
// against the catalog as it stands now, not as it stood at creation.
func (svc *Service) UpdateNonProject(ctx context.Context, id int64, p model.NonProjectPatch) ([]model.NonProjectEntry, error) {
	if p.Hours != nil {
		if err := validateHours(*p.Hours); err != nil {
			return nil, err
		}
	}
	if p.Date != nil {
		if err := validateDate(*p.Date); err != nil {
			return nil, err
		}
	}
	if err := svc.validateNonProjectFields(p.Name, p.Task, p.Customer); err != nil {
		return nil, err
	}
	if err := svc.store.UpdateNonProject(ctx, id, p); err != nil {
		if errors.Is(err, store.ErrRowNotFound) {
			return nil, NotFoundError{Kind: kindNonProject, ID: id}
		}
		return nil, err
	}
	return svc.store.SelectNonProject(ctx)
}

// DeleteNonProject removes a non-project entry; same idempotent delete
// semantics as DeleteLog.
func (svc *Service) DeleteNonProject(ctx context.Context, id int64) (rows []model.NonProjectEntry, found bool, err error) {
	found, err = svc.store.DeleteNonProject(ctx, id)
	if err != nil {
		return nil, false, err
	}
	rows, err = svc.store.SelectNonProject(ctx)
	return rows, found, err
}

func (svc *Service) validateNonProjectFields(name, task, customer *string) error {
	if name != nil && !contains(svc.catalog.ListEmployeeNames(), *name) {
		return ValidationError{Field: "name", Reason: "not a known employee"}
	}
	if task != nil && !contains(svc.catalog.ListNonProjectTasks(), *task) {
		return ValidationError{Field: "task", Reason: "not in the current task list"}
	}
	if customer != nil && !contains(svc.catalog.ListCustomers(), *customer) {
		return ValidationError{Field: "customer", Reason: "not in the current customer list"}
	}
	return nil
}

func validateHours(h float64) error {
	if h < 0 {
		return ValidationError{Field: "hours", Reason: "must not be negative"}
	}
	return nil
}

func validateDate(d string) error {
	if !model.ValidDate(d) {
		return ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return nil
}

func contains(list []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
