package config

import (
	"io"
	"os"

	"github.com/OpenMindUA/alembic-actions/pkg/consts"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the project configuration for alembic-actions.
//
// All fields are optional; command-line flags override config values, and
// anything left unset falls back to the tool defaults.
type Config struct {
	// AlembicIni is the path to the alembic.ini file
	AlembicIni string `yaml:"alembic_ini,omitempty"`

	// MigrationDir is the migration storage path
	MigrationDir string `yaml:"migration_dir,omitempty"`

	// BaseBranch is the reference change-sets are diffed against
	BaseBranch string `yaml:"base_branch,omitempty"`

	// Dialect is the SQL dialect used for offline generation
	Dialect string `yaml:"dialect,omitempty"`

	// Database optionally pins a named database in multi-database projects
	Database string `yaml:"database,omitempty"`
}

// LoadConfig parses a project configuration from the provided io.Reader.
//
// The function expects YAML-formatted data and fills in tool defaults for
// anything the file leaves unset.
//
// Example:
//
//	yamlData := `
//	alembic_ini: db/alembic.ini
//	migration_dir: db/migrations
//	dialect: postgresql
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Printf("Migration dir: %s\n", cfg.MigrationDir)
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal project config")
	}

	if cfg.AlembicIni == "" {
		cfg.AlembicIni = consts.DefaultAlembicIni
	}
	if cfg.MigrationDir == "" {
		cfg.MigrationDir = consts.DefaultMigrationDir
	}
	if cfg.BaseBranch == "" {
		cfg.BaseBranch = consts.DefaultBaseBranch
	}
	if cfg.Dialect == "" {
		cfg.Dialect = consts.DefaultDialect
	}

	return &cfg, nil
}

// LoadConfigFile loads a project configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}
