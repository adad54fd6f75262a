package cli

import (
	"github.com/spf13/cobra"

	"tracklog-cli/internal/format"
	"tracklog-cli/internal/report"
)

func newReportCmd(app *App) *cobra.Command {
	var (
		out          string
		includeNotes bool
		overwrite    bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a markdown work summary",
		Long:  "Write the active employee's project entries and all non-project entries to a markdown file, with per-project and per-task hour totals.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.close()

			name, err := requireName(sess)
			if err != nil {
				return err
			}
			logs, err := sess.store.SelectLogs(cmd.Context(), name)
			if err != nil {
				return err
			}
			np, err := sess.store.SelectNonProject(cmd.Context())
			if err != nil {
				return err
			}
			opt := report.WriteOptions{
				RenderOptions: report.RenderOptions{Name: name, IncludeNotes: includeNotes},
				Overwrite:     overwrite,
			}
			if err := report.Write(logs, np, out, opt); err != nil {
				return err
			}
			format.Successf("wrote %s", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "work_report.md", "Output markdown file")
	cmd.Flags().BoolVar(&includeNotes, "include-notes", false, "Include entry notes as block quotes")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing output file")
	return cmd
}
