package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeAlembicIni(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "alembic.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDatabasesCommand(t *testing.T) {
	t.Run("lists_configured_databases", func(t *testing.T) {
		path := writeAlembicIni(t, `
[alembic]
databases = users, billing
`)

		command := databases(nil)
		var buf bytes.Buffer
		command.Writer = &buf

		err := command.Run(context.Background(), []string{"databases", "--alembic-ini", path})
		require.NoError(t, err)
		require.Equal(t, "users\nbilling\n", buf.String())
	})

	t.Run("single_database_project", func(t *testing.T) {
		path := writeAlembicIni(t, `
[alembic]
sqlalchemy.url = postgresql://localhost/app
`)

		command := databases(nil)
		var buf bytes.Buffer
		command.Writer = &buf

		err := command.Run(context.Background(), []string{"databases", "--alembic-ini", path})
		require.NoError(t, err)
		require.Contains(t, buf.String(), "single database")
	})

	t.Run("missing_ini", func(t *testing.T) {
		command := databases(nil)
		command.Writer = &bytes.Buffer{}

		err := command.Run(context.Background(), []string{"databases", "--alembic-ini", filepath.Join(t.TempDir(), "nope.ini")})
		require.ErrorContains(t, err, "failed to load alembic config")
	})
}

func TestCommandStructure(t *testing.T) {
	t.Run("check", func(t *testing.T) {
		command := check(nil)
		require.Equal(t, "check", command.Name)
		require.Len(t, command.Flags, 2)
	})

	t.Run("order", func(t *testing.T) {
		command := order(nil)
		require.Equal(t, "order", command.Name)
		require.Len(t, command.Flags, 4)
	})
}
