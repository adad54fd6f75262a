package refdata

import (
	"sort"
	"strings"
)

// TaskRow is one row of the project reference sheet: a TD task code tied
// to a project phase. Rows keep their source order; resolution preserves it.
type TaskRow struct {
	TaskCode    string
	ProjectCode string
	PhaseNumber string
}

// Catalog is the session's read-only reference data: valid employee names,
// the TD-code -> project/phase sheet, and the non-project task and customer
// lists. Loaded once per session and never mutated afterwards.
type Catalog struct {
	Employees       []string
	Tasks           []TaskRow
	NonProjectTasks []string
	Customers       []string
}

// Provider is the read-only reference-data contract consumed by the
// mutation service and the UI. Catalog is the CSV-backed implementation.
type Provider interface {
	ListEmployeeNames() []string
	LookupTasksByCode(code string) []ProjectPhase
	ListAllProjectCodes() []string
	ListPhasesForProject(code string) []string
	ListNonProjectTasks() []string
	ListCustomers() []string
}

func (c *Catalog) ListEmployeeNames() []string { return sortedUnique(c.Employees) }

func (c *Catalog) ListNonProjectTasks() []string { return sortedUnique(c.NonProjectTasks) }

func (c *Catalog) ListCustomers() []string { return sortedUnique(c.Customers) }

// LookupTasksByCode returns the (project, phase) pairs whose task code
// matches exactly, in sheet order. Empty when the code is unknown.
func (c *Catalog) LookupTasksByCode(code string) []ProjectPhase {
	code = strings.TrimSpace(code)
	var pairs []ProjectPhase
	for _, row := range c.Tasks {
		if row.TaskCode == code {
			pairs = append(pairs, ProjectPhase{ProjectCode: row.ProjectCode, PhaseNumber: row.PhaseNumber})
		}
	}
	return pairs
}

// ListAllProjectCodes returns every project code in the sheet, for the
// manual-override path when a TD code has no matching rows.
func (c *Catalog) ListAllProjectCodes() []string {
	var codes []string
	for _, row := range c.Tasks {
		if strings.TrimSpace(row.ProjectCode) != "" {
			codes = append(codes, row.ProjectCode)
		}
	}
	return sortedUnique(codes)
}

// ListPhasesForProject returns the phases recorded for one project code,
// across all task codes.
func (c *Catalog) ListPhasesForProject(code string) []string {
	code = strings.TrimSpace(code)
	var phases []string
	for _, row := range c.Tasks {
		if row.ProjectCode == code && strings.TrimSpace(row.PhaseNumber) != "" {
			phases = append(phases, row.PhaseNumber)
		}
	}
	return sortedUnique(phases)
}

// HasNonProjectTask reports whether label is a currently valid non-project task.
func (c *Catalog) HasNonProjectTask(label string) bool {
	return containsTrimmed(c.NonProjectTasks, label)
}

// HasCustomer reports whether label is a currently valid customer.
func (c *Catalog) HasCustomer(label string) bool {
	return containsTrimmed(c.Customers, label)
}

// HasEmployee reports whether name is a known employee.
func (c *Catalog) HasEmployee(name string) bool {
	return containsTrimmed(c.Employees, name)
}

func containsTrimmed(list []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, s := range list {
		if strings.TrimSpace(s) == v {
			return true
		}
	}
	return false
}

func sortedUnique(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
