package refdata

import (
	"reflect"
	"testing"
)

func testCatalog() *Catalog {
	return &Catalog{
		Employees: []string{"Alice", "Bob"},
		Tasks: []TaskRow{
			{TaskCode: "TD07", ProjectCode: "P100", PhaseNumber: "Phase1"},
			{TaskCode: "TD07", ProjectCode: "P100", PhaseNumber: "Phase2"},
			{TaskCode: "TD12", ProjectCode: "P200", PhaseNumber: "Phase1"},
			{TaskCode: "MISC", ProjectCode: "P300", PhaseNumber: "Phase9"},
		},
		NonProjectTasks: []string{"Training", "Support"},
		Customers:       []string{"Acme", "Globex"},
	}
}

func TestResolveRestricted(t *testing.T) {
	c := testCatalog()
	res := c.Resolve(7)
	if res.Code != "TD07" {
		t.Fatalf("expected code TD07; got %q", res.Code)
	}
	if res.Unrestricted {
		t.Fatalf("expected restricted resolution")
	}
	if got := res.ProjectCodes(); !reflect.DeepEqual(got, []string{"P100"}) {
		t.Fatalf("expected exactly [P100]; got %v", got)
	}
	if got := res.PhasesForProject("P100"); !reflect.DeepEqual(got, []string{"Phase1", "Phase2"}) {
		t.Fatalf("expected {Phase1, Phase2}; got %v", got)
	}
	if got := res.PhasesForProject("P999"); got != nil {
		t.Fatalf("expected no phases for unknown project; got %v", got)
	}
}

func TestResolveUnrestrictedSignal(t *testing.T) {
	c := testCatalog()
	res := c.Resolve(99)
	if !res.Unrestricted {
		t.Fatalf("zero matches must produce the unrestricted signal, not an empty restricted set")
	}
	if res.Code != "TD99" {
		t.Fatalf("expected canonical code TD99; got %q", res.Code)
	}
	if len(res.Pairs) != 0 {
		t.Fatalf("unrestricted resolution must carry no pairs; got %v", res.Pairs)
	}
}

func TestResolveIsReadOnly(t *testing.T) {
	c := testCatalog()
	before := len(c.Tasks)
	_ = c.Resolve(7)
	_ = c.Resolve(99)
	if len(c.Tasks) != before {
		t.Fatalf("resolution mutated the catalog")
	}
}

func TestTDNumbers(t *testing.T) {
	c := testCatalog()
	got := c.TDNumbers()
	want := []int{7, 12}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v; got %v", want, got)
	}
}

func TestCanonicalCodeZeroPads(t *testing.T) {
	if got := CanonicalCode(7); got != "TD07" {
		t.Fatalf("expected TD07; got %q", got)
	}
	if got := CanonicalCode(123); got != "TD123" {
		t.Fatalf("expected TD123; got %q", got)
	}
}

func TestCatalogLookups(t *testing.T) {
	c := testCatalog()
	if got := c.ListAllProjectCodes(); !reflect.DeepEqual(got, []string{"P100", "P200", "P300"}) {
		t.Fatalf("unexpected project codes: %v", got)
	}
	if got := c.ListPhasesForProject("P100"); !reflect.DeepEqual(got, []string{"Phase1", "Phase2"}) {
		t.Fatalf("unexpected phases: %v", got)
	}
	if !c.HasNonProjectTask("Training") || c.HasNonProjectTask("Slacking") {
		t.Fatalf("non-project task membership broken")
	}
	if !c.HasCustomer("Acme") || c.HasCustomer("Initech") {
		t.Fatalf("customer membership broken")
	}
	if !c.HasEmployee("Alice") || c.HasEmployee("Mallory") {
		t.Fatalf("employee membership broken")
	}
}
