package cli

import (
	"github.com/spf13/cobra"

	"tracklog-cli/internal/format"
	"tracklog-cli/internal/model"
	"tracklog-cli/internal/view"
)

func newNonProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nonproject",
		Aliases: []string{"np"},
		Short:   "Non-project work entries (internal tasks, customer work)",
	}
	cmd.AddCommand(newNonProjectAddCmd(app))
	cmd.AddCommand(newNonProjectListCmd(app))
	cmd.AddCommand(newNonProjectUpdateCmd(app))
	cmd.AddCommand(newNonProjectRmCmd(app))
	return cmd
}

func newNonProjectAddCmd(app *App) *cobra.Command {
	var (
		task     string
		customer string
		date     string
		hours    float64
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log non-project hours",
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
			rows, err := sess.svc.InsertNonProject(cmd.Context(), model.NonProjectEntry{
				Name:     name,
				Date:     date,
				Task:     task,
				Customer: customer,
				Hours:    hours,
				Notes:    notes,
			})
			if err != nil {
				return err
			}
			format.Successf("non-project entry added (%d total)", len(rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Task (must be in the reference task list)")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer (must be in the reference customer list)")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD; default today)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours worked")
	cmd.Flags().StringVar(&notes, "notes", "", "Optional notes")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("hours")
	return cmd
}

func newNonProjectListCmd(app *App) *cobra.Command {
	var (
		names     []string
		tasks     []string
		customers []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List non-project entries, newest first",
		Long: "List all non-project entries. Repeatable --filter-* flags restrict a column\n" +
			"to the given values; filters on different columns combine with AND.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.close()

			rows, err := sess.store.SelectNonProject(cmd.Context())
			if err != nil {
				return err
			}
			rows = view.ApplyNonProjectFilter(rows, view.NonProjectFilter{
				Names:     names,
				Tasks:     tasks,
				Customers: customers,
			})
			if app.Format == "json" {
				return format.WriteJSON(cmd.OutOrStdout(), rows, app.PrettyJSON)
			}
			return format.WriteNonProjectTable(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().StringSliceVar(&names, "filter-name", nil, "Only these names")
	cmd.Flags().StringSliceVar(&tasks, "filter-task", nil, "Only these tasks")
	cmd.Flags().StringSliceVar(&customers, "filter-customer", nil, "Only these customers")
	return cmd
}

func newNonProjectUpdateCmd(app *App) *cobra.Command {
	var (
		name     string
		task     string
		customer string
		date     string
		hours    float64
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit one non-project entry",
		Long: "Edit one non-project entry. Unlike project entries every field is editable;\n" +
			"task, customer and name are checked against the current reference lists.",
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

			var patch model.NonProjectPatch
			if cmd.Flags().Changed("set-name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("task") {
				patch.Task = &task
			}
			if cmd.Flags().Changed("customer") {
				patch.Customer = &customer
			}
			if cmd.Flags().Changed("date") {
				patch.Date = &date
			}
			if cmd.Flags().Changed("hours") {
				patch.Hours = &hours
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}

			if _, err := sess.svc.UpdateNonProject(cmd.Context(), id, patch); err != nil {
				return reportMutationErr(err)
			}
			format.Successf("entry %d updated", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "set-name", "", "New employee name")
	cmd.Flags().StringVar(&task, "task", "", "New task")
	cmd.Flags().StringVar(&customer, "customer", "", "New customer")
	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "New hours")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")
	return cmd
}

func newNonProjectRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete one non-project entry",
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

			_, found, err := sess.svc.DeleteNonProject(cmd.Context(), id)
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
