package refdata

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// ProjectPhase is one selectable (project, phase) pairing for an entry.
type ProjectPhase struct {
	ProjectCode string `json:"projectCode"`
	PhaseNumber string `json:"phaseNumber"`
}

// Resolution is the outcome of resolving a TD event number against the
// catalog. Unrestricted is a distinguished state, not an empty Pairs set:
// it means "no sheet rows for this code; offer the full project universe
// behind an explicit manual override".
type Resolution struct {
	Code         string         `json:"code"`
	Pairs        []ProjectPhase `json:"pairs,omitempty"`
	Unrestricted bool           `json:"unrestricted,omitempty"`
}

// CanonicalCode derives the canonical task code for a TD event number,
// e.g. 7 -> "TD07".
func CanonicalCode(n int) string {
	return fmt.Sprintf("TD%02d", n)
}

// Resolve maps a TD event number to the candidate project/phase set for
// this session. Read-only and deterministic for a given catalog snapshot.
func (c *Catalog) Resolve(n int) Resolution {
	code := CanonicalCode(n)
	pairs := c.LookupTasksByCode(code)
	if len(pairs) == 0 {
		return Resolution{Code: code, Unrestricted: true}
	}
	return Resolution{Code: code, Pairs: pairs}
}

// ProjectCodes returns the distinct project codes of a restricted
// resolution, sorted.
func (r Resolution) ProjectCodes() []string {
	var codes []string
	for _, p := range r.Pairs {
		codes = append(codes, p.ProjectCode)
	}
	return sortedUnique(codes)
}

// PhasesForProject returns the distinct phases the resolution offers for
// one project code, sorted.
func (r Resolution) PhasesForProject(code string) []string {
	var phases []string
	for _, p := range r.Pairs {
		if p.ProjectCode == code {
			phases = append(phases, p.PhaseNumber)
		}
	}
	return sortedUnique(phases)
}

var tdCodeRe = regexp.MustCompile(`^TD(\d+)$`)

// TDNumbers enumerates the distinct TD event numbers present in the
// catalog, ascending. Task codes that don't look like TD codes are skipped.
func (c *Catalog) TDNumbers() []int {
	seen := map[int]bool{}
	var nums []int
	for _, row := range c.Tasks {
		m := tdCodeRe.FindStringSubmatch(row.TaskCode)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}
