package mutate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tracklog-cli/internal/model"
	"tracklog-cli/internal/refdata"
	"tracklog-cli/internal/store"
)

func testCatalog() *refdata.Catalog {
	return &refdata.Catalog{
		Employees: []string{"A", "B"},
		Tasks: []refdata.TaskRow{
			{TaskCode: "TD07", ProjectCode: "P100", PhaseNumber: "Phase1"},
			{TaskCode: "TD07", ProjectCode: "P100", PhaseNumber: "Phase2"},
		},
		NonProjectTasks: []string{"Training", "Support"},
		Customers:       []string{"Acme"},
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "work_log.sqlite"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return NewService(s, testCatalog())
}

func TestInsertLogThenPatchHours(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rows, err := svc.InsertLog(ctx, model.LogEntry{
		Name: "A", Date: "2024-01-05", ProjectCode: "P100", PhaseNumber: "Phase1",
		Hours: 3.5, Notes: "", TDEvent: "TD07",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(rows) != 1 || rows[0].ID <= 0 {
		t.Fatalf("expected one row with assigned id; got %+v", rows)
	}
	before := rows[0]

	hours := 4.0
	rows, err = svc.UpdateLog(ctx, "A", before.ID, model.LogPatch{Hours: &hours})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got := rows[0]
	if got.Hours != 4.0 {
		t.Fatalf("expected hours 4.0; got %v", got.Hours)
	}
	got.Hours = before.Hours
	if got != before {
		t.Fatalf("update touched more than hours:\n got  %+v\n want %+v", rows[0], before)
	}
}

func TestInsertLogRejectsNegativeHours(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.InsertLog(ctx, model.LogEntry{
		Name: "A", Date: "2024-01-05", ProjectCode: "P100", PhaseNumber: "Phase1", Hours: -1,
	})
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Field != "hours" {
		t.Fatalf("expected hours ValidationError; got %v", err)
	}

	// No store mutation happened.
	rows, err := svc.store.SelectLogs(ctx, "A")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rejected insert reached the store: %+v", rows)
	}
}

func TestInsertLogRejectsUnknownPairing(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.InsertLog(context.Background(), model.LogEntry{
		Name: "A", Date: "2024-01-05", ProjectCode: "P100", PhaseNumber: "Phase9", Hours: 1,
	})
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Field != "phaseNumber" {
		t.Fatalf("expected phaseNumber ValidationError; got %v", err)
	}
}

func TestInsertLogRejectsEmptyCategoricalFields(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.InsertLog(context.Background(), model.LogEntry{
		Name: "", Date: "2024-01-05", ProjectCode: "P100", PhaseNumber: "Phase1", Hours: 1,
	})
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError; got %v", err)
	}
}

func TestUpdateLogNotFound(t *testing.T) {
	svc := newTestService(t)
	hours := 2.0
	_, err := svc.UpdateLog(context.Background(), "A", 9999, model.LogPatch{Hours: &hours})
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.ID != 9999 {
		t.Fatalf("expected NotFoundError for 9999; got %v", err)
	}
}

func TestDeleteLogIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rows, err := svc.InsertLog(ctx, model.LogEntry{
		Name: "A", Date: "2024-01-05", ProjectCode: "P100", PhaseNumber: "Phase1", Hours: 1,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	id := rows[0].ID

	rows, found, err := svc.DeleteLog(ctx, "A", id)
	if err != nil || !found {
		t.Fatalf("first delete: found=%v err=%v", found, err)
	}
	if len(rows) != 0 {
		t.Fatalf("view still contains deleted row: %+v", rows)
	}

	// Concurrent-writer race: the row is already gone. Benign, not a crash.
	rows, found, err = svc.DeleteLog(ctx, "A", id)
	if err != nil {
		t.Fatalf("second delete errored: %v", err)
	}
	if found {
		t.Fatalf("second delete claimed to find the row")
	}
	if len(rows) != 0 {
		t.Fatalf("view after reload still contains %d rows", len(rows))
	}
}

func TestInsertNonProjectValidatesCatalog(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.InsertNonProject(ctx, model.NonProjectEntry{
		Name: "A", Date: "2024-01-05", Task: "Slacking", Customer: "Acme", Hours: 1,
	})
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Field != "task" {
		t.Fatalf("expected task ValidationError; got %v", err)
	}

	rows, err := svc.InsertNonProject(ctx, model.NonProjectEntry{
		Name: "A", Date: "2024-01-05", Task: "Training", Customer: "Acme", Hours: 1,
	})
	if err != nil {
		t.Fatalf("valid insert rejected: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row; got %d", len(rows))
	}
}

func TestUpdateNonProjectRevalidatesAgainstCurrentCatalog(t *testing.T) {
	// Entries created under an older catalog must re-validate categorical
	// edits against the catalog as it stands at save time.
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "work_log.sqlite"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	oldCatalog := testCatalog()
	id, err := seedNonProject(ctx, s, "Training")
	if err != nil {
		t.Fatalf("seed insert: %v", err)
	}

	// New session: "Training" has been retired from the task list.
	current := testCatalog()
	current.NonProjectTasks = []string{"Support"}
	svc := NewService(s, current)

	task := "Training"
	_, err = svc.UpdateNonProject(ctx, id, model.NonProjectPatch{Task: &task})
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Field != "task" {
		t.Fatalf("expected task ValidationError under current catalog; got %v", err)
	}

	// The old catalog would have accepted it; the current one governs.
	svcOld := NewService(s, oldCatalog)
	if _, err := svcOld.UpdateNonProject(ctx, id, model.NonProjectPatch{Task: &task}); err != nil {
		t.Fatalf("update under old catalog: %v", err)
	}
}

func seedNonProject(ctx context.Context, s *store.Store, task string) (int64, error) {
	return s.InsertNonProject(ctx, model.NonProjectEntry{
		Name: "A", Date: "2024-01-05", Task: task, Customer: "Acme", Hours: 1,
	})
}
