package cmd

import (
	"github.com/OpenMindUA/alembic-actions/pkg/config"
	"github.com/OpenMindUA/alembic-actions/pkg/consts"
)

// effective returns a non-nil config with tool defaults filled in, so command
// flag defaults work whether or not an alembic-actions.yaml is present.
func effective(cfg *config.Config) *config.Config {
	if cfg != nil {
		return cfg
	}

	return &config.Config{
		AlembicIni:   consts.DefaultAlembicIni,
		MigrationDir: consts.DefaultMigrationDir,
		BaseBranch:   consts.DefaultBaseBranch,
		Dialect:      consts.DefaultDialect,
	}
}
