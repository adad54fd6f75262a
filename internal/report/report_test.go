package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tracklog-cli/internal/model"
)

func sampleData() ([]model.LogEntry, []model.NonProjectEntry) {
	logs := []model.LogEntry{
		{ID: 1, Name: "A", Date: "2024-03-01", ProjectCode: "P100", PhaseNumber: "Phase1", Hours: 2, TDEvent: "TD07"},
		{ID: 2, Name: "A", Date: "2024-03-02", ProjectCode: "P100", PhaseNumber: "Phase2", Hours: 1.5, TDEvent: "TD07"},
		{ID: 3, Name: "A", Date: "2024-03-03", ProjectCode: "P200", PhaseNumber: "Design", Hours: 4, Notes: "review\nfollowup"},
	}
	np := []model.NonProjectEntry{
		{ID: 1, Name: "A", Date: "2024-03-04", Task: "Training", Customer: "Acme", Hours: 3},
	}
	return logs, np
}

func TestRenderMarkdownTotals(t *testing.T) {
	logs, np := sampleData()
	md := RenderMarkdown(logs, np, RenderOptions{Name: "A"})

	if !strings.Contains(md, "# Work log for A") {
		t.Fatalf("missing title:\n%s", md)
	}
	if !strings.Contains(md, "- P100: 3.5") {
		t.Fatalf("expected P100 total 3.5:\n%s", md)
	}
	if !strings.Contains(md, "- P200: 4.0") {
		t.Fatalf("expected P200 total 4.0:\n%s", md)
	}
	if !strings.Contains(md, "- Training: 3.0") {
		t.Fatalf("expected task total:\n%s", md)
	}
	if strings.Contains(md, "followup") {
		t.Fatalf("notes must be omitted by default:\n%s", md)
	}
}

func TestRenderMarkdownIncludeNotes(t *testing.T) {
	logs, np := sampleData()
	md := RenderMarkdown(logs, np, RenderOptions{IncludeNotes: true})
	if !strings.Contains(md, "> review") || !strings.Contains(md, "> followup") {
		t.Fatalf("expected quoted notes:\n%s", md)
	}
}

func TestWriteRefusesClobber(t *testing.T) {
	logs, np := sampleData()
	out := filepath.Join(t.TempDir(), "report.md")

	if err := Write(logs, np, out, WriteOptions{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Write(logs, np, out, WriteOptions{}); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := Write(logs, np, out, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "## Project work") {
		t.Fatalf("unexpected file contents:\n%s", b)
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	md := RenderMarkdown(nil, nil, RenderOptions{})
	if !strings.Contains(md, "_No entries._") {
		t.Fatalf("expected empty-state markers:\n%s", md)
	}
}
