package cmd

import (
	"testing"

	"github.com/OpenMindUA/alembic-actions/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestEffective(t *testing.T) {
	t.Run("nil_config_gets_defaults", func(t *testing.T) {
		cfg := effective(nil)

		require.Equal(t, "alembic.ini", cfg.AlembicIni)
		require.Equal(t, "migrations", cfg.MigrationDir)
		require.Equal(t, "origin/main", cfg.BaseBranch)
		require.Equal(t, "postgresql", cfg.Dialect)
		require.Empty(t, cfg.Database)
	})

	t.Run("loaded_config_passes_through", func(t *testing.T) {
		loaded := &config.Config{MigrationDir: "db/migrations"}
		require.Same(t, loaded, effective(loaded))
	})
}
