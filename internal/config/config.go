package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config locates the log database and the reference CSV exports. Loaded
// from a YAML file, with TRACKLOG_* environment overrides applied on top.
type Config struct {
	// Database is the SQLite file holding the log tables.
	Database string `yaml:"database"`
	// TasksCSV is the project reference sheet (Task_Code/ProjectCode/PhaseNumber).
	TasksCSV string `yaml:"tasks_csv"`
	// PeopleCSV is the people sheet (Name/Task/Customer).
	PeopleCSV string `yaml:"people_csv"`
	// DefaultName preselects the employee in the TUI and scriptable commands.
	DefaultName string `yaml:"default_name"`
}

// DefaultPath is the config location used when --config is not given.
func DefaultPath() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "tracklog", "config.yaml")
	}
	return "tracklog.yaml"
}

func defaults() Config {
	return Config{
		Database:  "work_log.sqlite",
		TasksCSV:  "projects.csv",
		PeopleCSV: "people.csv",
	}
}

// Load reads the config at path (or the default location when path is
// empty). A missing file is not an error: defaults apply. Environment
// variables TRACKLOG_DB, TRACKLOG_TASKS_CSV, TRACKLOG_PEOPLE_CSV and
// TRACKLOG_NAME override the file.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Defaults + env only.
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TRACKLOG_DB"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("TRACKLOG_TASKS_CSV"); v != "" {
		cfg.TasksCSV = v
	}
	if v := os.Getenv("TRACKLOG_PEOPLE_CSV"); v != "" {
		cfg.PeopleCSV = v
	}
	if v := os.Getenv("TRACKLOG_NAME"); v != "" {
		cfg.DefaultName = v
	}
}
