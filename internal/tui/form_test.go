package tui

import (
	"testing"

	"tracklog-cli/internal/model"
	"tracklog-cli/internal/refdata"
)

func pickerCatalog() *refdata.Catalog {
	return &refdata.Catalog{
		Employees: []string{"A"},
		Tasks: []refdata.TaskRow{
			{TaskCode: "TD07", ProjectCode: "P100", PhaseNumber: "Phase1"},
			{TaskCode: "TD07", ProjectCode: "P100", PhaseNumber: "Phase2"},
			{TaskCode: "TD07", ProjectCode: "P200", PhaseNumber: "Design"},
			{TaskCode: "TD09", ProjectCode: "P300", PhaseNumber: "Build"},
		},
		NonProjectTasks: []string{"Training"},
		Customers:       []string{"Acme"},
	}
}

func TestProjectAddFormRestrictsToResolvedPairs(t *testing.T) {
	f := newProjectAddForm(pickerCatalog(), "A")

	if f.resolution.Code != "TD07" {
		t.Fatalf("expected first TD option selected; got %q", f.resolution.Code)
	}
	if f.resolution.Unrestricted {
		t.Fatalf("TD07 has matches; must not be unrestricted")
	}
	if f.field("manual") == nil || !f.field("manual").hidden {
		t.Fatalf("manual override must stay hidden while restricted")
	}

	got := f.field("project").options
	want := []string{"P100", "P200"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("project options = %v; want %v", got, want)
	}

	// Phase options follow the selected project.
	if phases := f.field("phase").options; len(phases) != 2 {
		t.Fatalf("expected P100 phases; got %v", phases)
	}
	f.field("project").optIdx = 1
	f.onOptionChanged("project")
	if phases := f.field("phase").options; len(phases) != 1 || phases[0] != "Design" {
		t.Fatalf("expected P200 phases [Design]; got %v", phases)
	}
}

func TestProjectAddFormUnrestrictedNeedsOverride(t *testing.T) {
	cat := pickerCatalog()
	f := newProjectAddForm(cat, "A")

	// Move the TD picker to TD09, then pretend its tasks vanished by
	// resolving a number with no matches.
	td := f.field("td")
	td.options = []string{"TD03"}
	td.optIdx = 0
	f.onOptionChanged("td")

	if !f.resolution.Unrestricted {
		t.Fatalf("TD03 has no tasks; expected unrestricted")
	}
	if f.field("manual").hidden {
		t.Fatalf("manual override must be offered when unrestricted")
	}
	if opts := f.field("project").options; len(opts) != 0 {
		t.Fatalf("no projects offered before override; got %v", opts)
	}

	if _, err := f.logEntry("A"); err == nil {
		t.Fatalf("expected submit rejection without override")
	}

	f.field("manual").optIdx = 1 // yes
	f.onOptionChanged("manual")
	if opts := f.field("project").options; len(opts) != len(cat.ListAllProjectCodes()) {
		t.Fatalf("override must open the full project list; got %v", opts)
	}
}

func TestLogPatchOnlyCarriesChangedFields(t *testing.T) {
	orig := model.LogEntry{
		ID: 7, Name: "A", Date: "2024-03-01", ProjectCode: "P100",
		PhaseNumber: "Phase1", Hours: 2, Notes: "n", TDEvent: "TD07",
	}
	f := newProjectEditForm(orig)

	p, changed, err := f.logPatch()
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if changed {
		t.Fatalf("untouched form reported changes: %+v", p)
	}

	f.field("hours").input.SetValue("3")
	p, changed, err = f.logPatch()
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if !changed || p.Hours == nil || *p.Hours != 3 {
		t.Fatalf("expected hours-only patch; got %+v", p)
	}
	if p.Date != nil || p.Notes != nil {
		t.Fatalf("unchanged fields must stay nil: %+v", p)
	}
}

func TestNonProjectPatchKeepsRetiredValueWhenUntouched(t *testing.T) {
	orig := model.NonProjectEntry{
		ID: 3, Name: "A", Date: "2024-03-01", Task: "Retired", Customer: "Acme", Hours: 1,
	}
	f := newNonProjectEditForm(pickerCatalog(), orig)

	// The retired task still shows as the current choice.
	if got := f.value("task"); got != "Retired" {
		t.Fatalf("expected retired value preselected; got %q", got)
	}

	f.field("hours").input.SetValue("2")
	p, changed, err := f.nonProjectPatch()
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if !changed || p.Hours == nil {
		t.Fatalf("expected hours patch; got %+v", p)
	}
	if p.Task != nil {
		t.Fatalf("untouched retired task must not be re-validated; got %+v", p)
	}
}

func TestParseHours(t *testing.T) {
	if _, err := parseHours(""); err == nil {
		t.Fatalf("empty hours must be rejected")
	}
	if _, err := parseHours("abc"); err == nil {
		t.Fatalf("non-numeric hours must be rejected")
	}
	h, err := parseHours(" 2.5 ")
	if err != nil || h != 2.5 {
		t.Fatalf("expected 2.5; got %v, %v", h, err)
	}
}
