package alembic

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// Config provides access to the database layout declared in an alembic.ini
// file.
//
// Example usage:
//
//	cfg, err := alembic.LoadConfig("alembic.ini")
//	if err != nil {
//		return err
//	}
//
//	db, err := cfg.ResolveDatabase("")
//	if err != nil {
//		return err
//	}
type Config struct {
	path string
	file *ini.File
}

// LoadConfig reads and parses the alembic.ini file at the given path.
func LoadConfig(path string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load alembic config: %s", path)
	}

	return &Config{path: path, file: file}, nil
}

// Path returns the config file path this Config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Databases returns the database names configured for a multi-database
// project.
//
// Two conventions are recognized, in priority order:
//
//  1. An explicit `databases` key in the [alembic] section holding a
//     comma-separated list of names.
//  2. Any section (other than [alembic] and the ini defaults) that declares
//     a `sqlalchemy.url` setting; the section name is the database name.
//
// An empty result means a single-database project.
func (c *Config) Databases() []string {
	section := c.file.Section("alembic")
	if section.HasKey("databases") {
		var databases []string
		for _, name := range strings.Split(section.Key("databases").String(), ",") {
			if name = strings.TrimSpace(name); name != "" {
				databases = append(databases, name)
			}
		}

		slog.Info("Found databases from 'databases' setting", "databases", databases)
		return databases
	}

	var databases []string
	for _, s := range c.file.Sections() {
		if s.Name() == "alembic" || s.Name() == ini.DefaultSection {
			continue
		}
		if s.HasKey("sqlalchemy.url") {
			databases = append(databases, s.Name())
		}
	}

	if len(databases) > 0 {
		slog.Info("Found databases from sections with sqlalchemy.url", "databases", databases)
	} else {
		slog.Info("No multi-database configuration found, assuming single database")
	}

	return databases
}

// ResolveDatabase resolves the database name to use for a single operation.
//
// For single-database projects the result is empty (no --name flag is
// passed to alembic). When a name is given it must exist in the configured
// set; otherwise the first configured database is auto-selected.
func (c *Config) ResolveDatabase(database string) (string, error) {
	available := c.Databases()

	if len(available) == 0 {
		if database != "" {
			slog.Warn("Database specified but no multi-database config found", "database", database)
		}
		return "", nil
	}

	if database != "" {
		if contains(available, database) {
			return database, nil
		}
		return "", errors.Errorf("database %q not found in configuration (available: %s)", database, strings.Join(available, ", "))
	}

	selected := available[0]
	slog.Info("Auto-selected database", "database", selected, "available", available)
	return selected, nil
}

// DatabasesForDeploy returns the databases a deploy operation should target:
// the explicitly named one if given (validated against the configuration),
// otherwise every configured database. Single-database projects yield an
// empty list.
func (c *Config) DatabasesForDeploy(database string) ([]string, error) {
	available := c.Databases()

	if len(available) == 0 {
		if database != "" {
			slog.Warn("Database specified but no multi-database config found", "database", database)
		}
		return nil, nil
	}

	if database != "" {
		if contains(available, database) {
			return []string{database}, nil
		}
		return nil, errors.Errorf("database %q not found in configuration (available: %s)", database, strings.Join(available, ", "))
	}

	return available, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}

	return false
}
