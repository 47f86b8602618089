package alembic_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenMindUA/alembic-actions/pkg/alembic"
	"github.com/stretchr/testify/require"
)

func writeIni(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "alembic.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadIni(t *testing.T, content string) *alembic.Config {
	t.Helper()

	cfg, err := alembic.LoadConfig(writeIni(t, content))
	require.NoError(t, err)
	return cfg
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, err := alembic.LoadConfig(filepath.Join(t.TempDir(), "nope.ini"))
		require.ErrorContains(t, err, "failed to load alembic config")
	})

	t.Run("path_is_retained", func(t *testing.T) {
		path := writeIni(t, "[alembic]\n")

		cfg, err := alembic.LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, path, cfg.Path())
	})
}

func TestDatabases(t *testing.T) {
	t.Run("explicit_databases_setting", func(t *testing.T) {
		cfg := loadIni(t, `
[alembic]
databases = users, billing,
`)

		require.Equal(t, []string{"users", "billing"}, cfg.Databases())
	})

	t.Run("sections_with_sqlalchemy_url", func(t *testing.T) {
		cfg := loadIni(t, `
[alembic]
script_location = migrations

[users]
sqlalchemy.url = postgresql://localhost/users

[billing]
sqlalchemy.url = postgresql://localhost/billing

[logging]
level = INFO
`)

		require.Equal(t, []string{"users", "billing"}, cfg.Databases())
	})

	t.Run("single_database_project", func(t *testing.T) {
		cfg := loadIni(t, `
[alembic]
script_location = migrations
sqlalchemy.url = postgresql://localhost/app
`)

		require.Empty(t, cfg.Databases())
	})

	t.Run("explicit_setting_wins_over_sections", func(t *testing.T) {
		cfg := loadIni(t, `
[alembic]
databases = users

[billing]
sqlalchemy.url = postgresql://localhost/billing
`)

		require.Equal(t, []string{"users"}, cfg.Databases())
	})
}

func TestResolveDatabase(t *testing.T) {
	multi := `
[alembic]
databases = users, billing
`

	t.Run("single_database_yields_empty", func(t *testing.T) {
		cfg := loadIni(t, "[alembic]\n")

		db, err := cfg.ResolveDatabase("")
		require.NoError(t, err)
		require.Empty(t, db)
	})

	t.Run("single_database_ignores_explicit_name", func(t *testing.T) {
		cfg := loadIni(t, "[alembic]\n")

		db, err := cfg.ResolveDatabase("billing")
		require.NoError(t, err)
		require.Empty(t, db)
	})

	t.Run("explicit_name_is_validated", func(t *testing.T) {
		cfg := loadIni(t, multi)

		db, err := cfg.ResolveDatabase("billing")
		require.NoError(t, err)
		require.Equal(t, "billing", db)
	})

	t.Run("unknown_name_fails", func(t *testing.T) {
		cfg := loadIni(t, multi)

		_, err := cfg.ResolveDatabase("bogus")
		require.ErrorContains(t, err, `database "bogus" not found`)
	})

	t.Run("auto_selects_first", func(t *testing.T) {
		cfg := loadIni(t, multi)

		db, err := cfg.ResolveDatabase("")
		require.NoError(t, err)
		require.Equal(t, "users", db)
	})
}

func TestDatabasesForDeploy(t *testing.T) {
	multi := `
[alembic]
databases = users, billing
`

	t.Run("explicit_name", func(t *testing.T) {
		cfg := loadIni(t, multi)

		dbs, err := cfg.DatabasesForDeploy("billing")
		require.NoError(t, err)
		require.Equal(t, []string{"billing"}, dbs)
	})

	t.Run("all_configured", func(t *testing.T) {
		cfg := loadIni(t, multi)

		dbs, err := cfg.DatabasesForDeploy("")
		require.NoError(t, err)
		require.Equal(t, []string{"users", "billing"}, dbs)
	})

	t.Run("unknown_name_fails", func(t *testing.T) {
		cfg := loadIni(t, multi)

		_, err := cfg.DatabasesForDeploy("bogus")
		require.ErrorContains(t, err, `database "bogus" not found`)
	})

	t.Run("single_database_yields_nothing", func(t *testing.T) {
		cfg := loadIni(t, "[alembic]\n")

		dbs, err := cfg.DatabasesForDeploy("")
		require.NoError(t, err)
		require.Empty(t, dbs)
	})
}
