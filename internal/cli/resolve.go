package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"tracklog-cli/internal/format"
)

func newResolveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <td-number>",
		Short: "Show which project/phase pairs a TD event allows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || n < 0 {
				return fmt.Errorf("invalid TD event number %q", args[0])
			}
			sess, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.close()

			res := sess.catalog.Resolve(n)
			if app.Format == "json" {
				return format.WriteJSON(cmd.OutOrStdout(), res, app.PrettyJSON)
			}
			if res.Unrestricted {
				format.Warnf("%s: no reference rows; manual selection over all %d projects",
					res.Code, len(sess.catalog.ListAllProjectCodes()))
				return nil
			}
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("PROJECT", "PHASE")
			for _, p := range res.Pairs {
				tbl.AddRow(p.ProjectCode, p.PhaseNumber)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return err
		},
	}
	return cmd
}
