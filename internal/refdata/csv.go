package refdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// LoadCatalog reads the session's reference data from two CSV exports:
//
//   - tasksPath: the project sheet, with Task_Code, ProjectCode and
//     PhaseNumber columns (extra columns are ignored).
//   - peoplePath: the people sheet, with Name, Task and Customer columns;
//     each column is read independently, blanks skipped.
//
// The returned catalog is the immutable reference snapshot for the session.
func LoadCatalog(tasksPath, peoplePath string) (*Catalog, error) {
	tasks, err := loadTaskSheet(tasksPath)
	if err != nil {
		return nil, fmt.Errorf("load task sheet: %w", err)
	}
	names, npTasks, customers, err := loadPeopleSheet(peoplePath)
	if err != nil {
		return nil, fmt.Errorf("load people sheet: %w", err)
	}
	return &Catalog{
		Employees:       names,
		Tasks:           tasks,
		NonProjectTasks: npTasks,
		Customers:       customers,
	}, nil
}

func loadTaskSheet(path string) ([]TaskRow, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	cols := headerIndex(records[0])
	code, ok1 := findColumn(cols, "task_code", "taskcode")
	proj, ok2 := findColumn(cols, "projectcode", "project_code")
	phase, ok3 := findColumn(cols, "phasenumber", "phase_number")
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%s: missing Task_Code/ProjectCode/PhaseNumber columns", path)
	}
	var rows []TaskRow
	for _, rec := range records[1:] {
		row := TaskRow{
			TaskCode:    field(rec, code),
			ProjectCode: field(rec, proj),
			PhaseNumber: field(rec, phase),
		}
		if row.TaskCode == "" && row.ProjectCode == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func loadPeopleSheet(path string) (names, tasks, customers []string, err error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil, fmt.Errorf("%s: empty file", path)
	}
	cols := headerIndex(records[0])
	name, okName := findColumn(cols, "name")
	task, okTask := findColumn(cols, "task")
	cust, okCust := findColumn(cols, "customer")
	if !okName {
		return nil, nil, nil, fmt.Errorf("%s: missing Name column", path)
	}
	for _, rec := range records[1:] {
		if v := field(rec, name); v != "" {
			names = append(names, v)
		}
		if okTask {
			if v := field(rec, task); v != "" {
				tasks = append(tasks, v)
			}
		}
		if okCust {
			if v := field(rec, cust); v != "" {
				customers = append(customers, v)
			}
		}
	}
	return names, tasks, customers, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	// Reference exports often carry ragged trailing columns.
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func findColumn(cols map[string]int, candidates ...string) (int, bool) {
	for _, c := range candidates {
		if i, ok := cols[c]; ok {
			return i, true
		}
	}
	return 0, false
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
