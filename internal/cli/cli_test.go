package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"tracklog-cli/internal/model"
)

const tasksCSV = `Task_Code,ProjectCode,PhaseNumber
TD07,P100,Phase1
TD07,P100,Phase2
TD07,P200,Design
TD09,P300,Build
`

const peopleCSV = `Name,Task,Customer
Alice,Training,Acme
Bob,Support,Globex
`

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "projects.csv"), []byte(tasksCSV), 0o644); err != nil {
		t.Fatalf("write tasks csv: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "people.csv"), []byte(peopleCSV), 0o644); err != nil {
		t.Fatalf("write people csv: %v", err)
	}
	return dir
}

func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	base := []string{
		"--db", filepath.Join(dir, "work_log.sqlite"),
		"--tasks-csv", filepath.Join(dir, "projects.csv"),
		"--people-csv", filepath.Join(dir, "people.csv"),
	}
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRunCLI(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dir, args...)
	if err != nil {
		t.Fatalf("command failed: tracklog %v\nerr: %v\noutput:\n%s", args, err, out)
	}
	return out
}

func listLogs(t *testing.T, dir string) []model.LogEntry {
	t.Helper()
	out := mustRunCLI(t, dir, "--name", "Alice", "--format", "json", "logs", "list")
	var rows []model.LogEntry
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("unmarshal logs list: %v\noutput:\n%s", err, out)
	}
	return rows
}

func TestLogsAddListUpdateRm(t *testing.T) {
	dir := fixtureDir(t)

	mustRunCLI(t, dir, "--name", "Alice", "logs", "add",
		"--td", "7", "--project", "P100", "--phase", "Phase1",
		"--date", "2024-03-01", "--hours", "3.5", "--notes", "kickoff")

	rows := listLogs(t, dir)
	if len(rows) != 1 {
		t.Fatalf("expected one row; got %d", len(rows))
	}
	e := rows[0]
	if e.ProjectCode != "P100" || e.PhaseNumber != "Phase1" || e.TDEvent != "TD07" || e.Hours != 3.5 {
		t.Fatalf("unexpected row: %+v", e)
	}

	mustRunCLI(t, dir, "--name", "Alice", "logs", "update",
		fmtID(e.ID), "--hours", "4")
	rows = listLogs(t, dir)
	if rows[0].Hours != 4 {
		t.Fatalf("expected updated hours; got %+v", rows[0])
	}
	if rows[0].Date != e.Date || rows[0].Notes != e.Notes {
		t.Fatalf("update touched fields it should not: %+v", rows[0])
	}

	mustRunCLI(t, dir, "--name", "Alice", "logs", "rm", fmtID(e.ID))
	if rows = listLogs(t, dir); len(rows) != 0 {
		t.Fatalf("expected empty list after rm; got %d", len(rows))
	}

	// Removing the same id again is a benign no-op.
	mustRunCLI(t, dir, "--name", "Alice", "logs", "rm", fmtID(e.ID))
}

func TestLogsAddRejectsUnknownPairing(t *testing.T) {
	dir := fixtureDir(t)
	_, err := runCLI(t, dir, "--name", "Alice", "logs", "add",
		"--td", "7", "--project", "P300", "--phase", "Build",
		"--date", "2024-03-01", "--hours", "1")
	if err == nil {
		t.Fatalf("expected rejection: P300/Build is not permitted by TD07")
	}
	if rows := listLogs(t, dir); len(rows) != 0 {
		t.Fatalf("rejected add must not write: %+v", rows)
	}
}

func TestNonProjectFilterFlags(t *testing.T) {
	dir := fixtureDir(t)

	mustRunCLI(t, dir, "nonproject", "add", "--name", "Alice",
		"--task", "Training", "--customer", "Acme", "--date", "2024-03-01", "--hours", "1")
	mustRunCLI(t, dir, "nonproject", "add", "--name", "Bob",
		"--task", "Support", "--customer", "Globex", "--date", "2024-03-02", "--hours", "2")

	out := mustRunCLI(t, dir, "--format", "json", "nonproject", "list",
		"--filter-task", "Training")
	var rows []model.NonProjectEntry
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("unmarshal: %v\noutput:\n%s", err, out)
	}
	if len(rows) != 1 || rows[0].Task != "Training" {
		t.Fatalf("expected only the Training row; got %+v", rows)
	}

	// Conjunctive: name and task must both match.
	out = mustRunCLI(t, dir, "--format", "json", "nonproject", "list",
		"--filter-name", "Bob", "--filter-task", "Training")
	rows = nil
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("unmarshal: %v\noutput:\n%s", err, out)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows for Bob+Training; got %+v", rows)
	}
}

func TestNonProjectAddRejectsUnknownTask(t *testing.T) {
	dir := fixtureDir(t)
	_, err := runCLI(t, dir, "nonproject", "add", "--name", "Alice",
		"--task", "Yoga", "--customer", "Acme", "--date", "2024-03-01", "--hours", "1")
	if err == nil {
		t.Fatalf("expected rejection of a task missing from the sheet")
	}
}

func TestResolveJSON(t *testing.T) {
	dir := fixtureDir(t)
	out := mustRunCLI(t, dir, "--format", "json", "resolve", "7")
	var res struct {
		Code  string `json:"code"`
		Pairs []struct {
			ProjectCode string `json:"projectCode"`
			PhaseNumber string `json:"phaseNumber"`
		} `json:"pairs"`
		Unrestricted bool `json:"unrestricted"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("unmarshal: %v\noutput:\n%s", err, out)
	}
	if res.Code != "TD07" || res.Unrestricted || len(res.Pairs) != 3 {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestReportCommandWritesMarkdown(t *testing.T) {
	dir := fixtureDir(t)
	mustRunCLI(t, dir, "--name", "Alice", "logs", "add",
		"--td", "7", "--project", "P100", "--phase", "Phase1",
		"--date", "2024-03-01", "--hours", "2")

	out := filepath.Join(dir, "report.md")
	mustRunCLI(t, dir, "--name", "Alice", "report", "--out", out)
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Contains(b, []byte("- P100: 2.0")) {
		t.Fatalf("expected project total in report:\n%s", b)
	}

	// A second run without --overwrite fails.
	if _, err := runCLI(t, dir, "--name", "Alice", "report", "--out", out); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
}

func TestUnknownEmployeeRejected(t *testing.T) {
	dir := fixtureDir(t)
	_, err := runCLI(t, dir, "--name", "Mallory", "logs", "list")
	if err == nil {
		t.Fatalf("expected unknown employee rejection")
	}
}

func fmtID(id int64) string {
	return strconv.FormatInt(id, 10)
}
