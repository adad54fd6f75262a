package cli

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"tracklog-cli/internal/format"
	"tracklog-cli/internal/store"
)

// doctor reports the store's schema capabilities: which evolvable
// columns exist and which failed to be added this session.
func newDoctorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the log database schema and reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.close()

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("TABLE", "COLUMN", "STATUS")
			for _, c := range []struct{ table, column string }{
				{store.TableLogs, "notes"},
				{store.TableLogs, "td_event"},
				{store.TableNonProject, "notes"},
			} {
				ok, err := sess.store.HasColumn(cmd.Context(), c.table, c.column)
				switch {
				case err != nil:
					tbl.AddRow(c.table, c.column, "error: "+err.Error())
				case ok:
					tbl.AddRow(c.table, c.column, "present")
				default:
					tbl.AddRow(c.table, c.column, "missing (feature disabled)")
				}
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), tbl); err != nil {
				return err
			}

			for _, w := range sess.store.Warnings() {
				format.Warnf("schema: %v", w)
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"reference data: %d employees, %d task rows, %d non-project tasks, %d customers\n",
				len(sess.catalog.ListEmployeeNames()),
				len(sess.catalog.Tasks),
				len(sess.catalog.ListNonProjectTasks()),
				len(sess.catalog.ListCustomers()))
			return nil
		},
	}
	return cmd
}
