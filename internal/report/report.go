package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tracklog-cli/internal/model"
)

type WriteOptions struct {
	RenderOptions
	Overwrite bool
}

// Write renders the summary and writes it to outPath, refusing to
// clobber an existing file unless Overwrite is set.
func Write(logs []model.LogEntry, nonProject []model.NonProjectEntry, outPath string, opt WriteOptions) error {
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		return fmt.Errorf("missing output path")
	}
	outPath = filepath.Clean(outPath)

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if !opt.Overwrite {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("%s already exists (use --overwrite)", outPath)
		}
	}
	md := RenderMarkdown(logs, nonProject, opt.RenderOptions)
	return os.WriteFile(outPath, []byte(md), 0o644)
}
