package refdata

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	tasksPath := writeFile(t, dir, "tasks.csv",
		"Task_Code,ProjectCode,PhaseNumber,EventDate\n"+
			"TD07,P100,Phase1,2024-02-01\n"+
			"TD07,P100,Phase2,2024-02-01\n"+
			"TD12,P200,Phase1,2024-03-15\n"+
			",,,\n")
	peoplePath := writeFile(t, dir, "people.csv",
		"Name,Task,Customer\n"+
			"Alice,Training,Acme\n"+
			"Bob,Support,\n"+
			"Alice,,Globex\n")

	c, err := LoadCatalog(tasksPath, peoplePath)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	if len(c.Tasks) != 3 {
		t.Fatalf("expected 3 task rows (blank row skipped); got %d", len(c.Tasks))
	}
	if c.Tasks[0] != (TaskRow{TaskCode: "TD07", ProjectCode: "P100", PhaseNumber: "Phase1"}) {
		t.Fatalf("unexpected first row: %+v", c.Tasks[0])
	}
	if got := c.ListEmployeeNames(); !reflect.DeepEqual(got, []string{"Alice", "Bob"}) {
		t.Fatalf("unexpected employees: %v", got)
	}
	if got := c.ListNonProjectTasks(); !reflect.DeepEqual(got, []string{"Support", "Training"}) {
		t.Fatalf("unexpected tasks: %v", got)
	}
	if got := c.ListCustomers(); !reflect.DeepEqual(got, []string{"Acme", "Globex"}) {
		t.Fatalf("unexpected customers: %v", got)
	}
}

func TestLoadCatalogMissingColumns(t *testing.T) {
	dir := t.TempDir()
	tasksPath := writeFile(t, dir, "tasks.csv", "Foo,Bar\n1,2\n")
	peoplePath := writeFile(t, dir, "people.csv", "Name\nAlice\n")

	if _, err := LoadCatalog(tasksPath, peoplePath); err == nil {
		t.Fatalf("expected error for missing task sheet columns")
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	dir := t.TempDir()
	peoplePath := writeFile(t, dir, "people.csv", "Name\nAlice\n")
	if _, err := LoadCatalog(filepath.Join(dir, "nope.csv"), peoplePath); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
