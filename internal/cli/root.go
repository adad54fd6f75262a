package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tracklog-cli/internal/config"
	"tracklog-cli/internal/format"
	"tracklog-cli/internal/mutate"
	"tracklog-cli/internal/refdata"
	"tracklog-cli/internal/store"
	"tracklog-cli/internal/tui"
)

// App carries the persistent flags shared by every command.
type App struct {
	ConfigPath string
	DB         string
	TasksCSV   string
	PeopleCSV  string
	Name       string
	Format     string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tracklog",
		Short:        "Log and review work hours against project phases and ad-hoc tasks",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tracklog

  # Scriptable commands
  tracklog logs add --name Alice --td 7 --project P100 --phase Phase1 --hours 3.5
  tracklog logs list --name Alice
  tracklog nonproject list --task Training --format json

  # What does TD event 7 allow?
  tracklog resolve 7
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("TRACKLOG_CONFIG", ""), "Path to config file (default: user config dir)")
	cmd.PersistentFlags().StringVar(&app.DB, "db", "", "Path to the log database (overrides config)")
	cmd.PersistentFlags().StringVar(&app.TasksCSV, "tasks-csv", "", "Path to the project reference sheet (overrides config)")
	cmd.PersistentFlags().StringVar(&app.PeopleCSV, "people-csv", "", "Path to the people reference sheet (overrides config)")
	cmd.PersistentFlags().StringVar(&app.Name, "name", "", "Employee name (overrides config default)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "table", "Output format (table|json)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLogsCmd(app))
	cmd.AddCommand(newNonProjectCmd(app))
	cmd.AddCommand(newResolveCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newReportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// session bundles the open store, the reference snapshot and the
// mutation service for one command invocation.
type session struct {
	cfg     config.Config
	store   *store.Store
	catalog *refdata.Catalog
	svc     *mutate.Service
}

func (app *App) openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return nil, err
	}
	if app.DB != "" {
		cfg.Database = app.DB
	}
	if app.TasksCSV != "" {
		cfg.TasksCSV = app.TasksCSV
	}
	if app.PeopleCSV != "" {
		cfg.PeopleCSV = app.PeopleCSV
	}
	if app.Name != "" {
		cfg.DefaultName = app.Name
	}

	catalog, err := refdata.LoadCatalog(cfg.TasksCSV, cfg.PeopleCSV)
	if err != nil {
		return nil, err
	}
	s, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	for _, w := range s.Warnings() {
		format.Warnf("schema: %v", w)
	}
	return &session{
		cfg:     cfg,
		store:   s,
		catalog: catalog,
		svc:     mutate.NewService(s, catalog),
	}, nil
}

func (s *session) close() {
	_ = s.store.Close()
}

func runTUI(app *App) error {
	sess, err := app.openSession(context.Background())
	if err != nil {
		return err
	}
	defer sess.close()
	return tui.Run(sess.svc, sess.catalog, sess.cfg.DefaultName, sess.store.Warnings())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
