package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tracklog-cli/internal/format"
	"tracklog-cli/internal/model"
	"tracklog-cli/internal/refdata"
)

func pairPermitted(res refdata.Resolution, project, phase string) bool {
	for _, p := range res.Pairs {
		if p.ProjectCode == project && p.PhaseNumber == phase {
			return true
		}
	}
	return false
}

func newLogsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Project-work entries (hours against a TD event's project phase)",
	}
	cmd.AddCommand(newLogsAddCmd(app))
	cmd.AddCommand(newLogsListCmd(app))
	cmd.AddCommand(newLogsUpdateCmd(app))
	cmd.AddCommand(newLogsRmCmd(app))
	return cmd
}

func newLogsAddCmd(app *App) *cobra.Command {
	var (
		td      int
		project string
		phase   string
		date    string
		hours   float64
		notes   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log hours against a project phase",
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
			if date == "" {
				date = model.Today()
			}

			// The TD event freezes onto the entry as its canonical code.
			res := sess.catalog.Resolve(td)
			project = strings.TrimSpace(project)
			phase = strings.TrimSpace(phase)
			if res.Unrestricted {
				format.Warnf("no reference rows for %s; project/phase taken as given (manual selection)", res.Code)
			} else if !pairPermitted(res, project, phase) {
				return fmt.Errorf("%s does not permit %s/%s (see: tracklog resolve %d)", res.Code, project, phase, td)
			}

			rows, err := sess.svc.InsertLog(cmd.Context(), model.LogEntry{
				Name:        name,
				Date:        date,
				ProjectCode: project,
				PhaseNumber: phase,
				Hours:       hours,
				Notes:       notes,
				TDEvent:     res.Code,
			})
			if err != nil {
				return err
			}
			format.Successf("entry added (%d total for %s)", len(rows), name)
			return nil
		},
	}

	cmd.Flags().IntVar(&td, "td", 0, "TD event number (e.g. 7 for TD07)")
	cmd.Flags().StringVar(&project, "project", "", "Project code")
	cmd.Flags().StringVar(&phase, "phase", "", "Phase number")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD; default today)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours worked")
	cmd.Flags().StringVar(&notes, "notes", "", "Optional notes")
	_ = cmd.MarkFlagRequired("td")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("phase")
	_ = cmd.MarkFlagRequired("hours")
	return cmd
}

func newLogsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your logged hours, oldest first",
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
			rows, err := sess.store.SelectLogs(cmd.Context(), name)
			if err != nil {
				return err
			}
			if app.Format == "json" {
				return format.WriteJSON(cmd.OutOrStdout(), rows, app.PrettyJSON)
			}
			return format.WriteLogTable(cmd.OutOrStdout(), rows)
		},
	}
	return cmd
}

func newLogsUpdateCmd(app *App) *cobra.Command {
	var (
		date  string
		hours float64
		notes string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit the date, hours or notes of one entry",
		Long: "Edit one project-work entry in place. The project code, phase and TD event\n" +
			"were frozen when the entry was created and cannot change.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sess, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.close()

			name, err := requireName(sess)
			if err != nil {
				return err
			}

			var patch model.LogPatch
			if cmd.Flags().Changed("date") {
				patch.Date = &date
			}
			if cmd.Flags().Changed("hours") {
				patch.Hours = &hours
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}

			if _, err := sess.svc.UpdateLog(cmd.Context(), name, id, patch); err != nil {
				return reportMutationErr(err)
			}
			format.Successf("entry %d updated", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "New hours")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")
	return cmd
}

func newLogsRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete one entry (deleting an already-deleted id is fine)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sess, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.close()

			name, err := requireName(sess)
			if err != nil {
				return err
			}
			_, found, err := sess.svc.DeleteLog(cmd.Context(), name, id)
			if err != nil {
				return err
			}
			if !found {
				format.Warnf("entry %d was already gone", id)
				return nil
			}
			format.Successf("entry %d deleted", id)
			return nil
		},
	}
	return cmd
}
