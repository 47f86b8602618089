package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ConfigFile is the name of the project configuration file
	ConfigFile = "alembic-actions.yaml"

	// DefaultAlembicIni is the default path of the alembic config file
	DefaultAlembicIni = "alembic.ini"

	// DefaultMigrationDir is the default migration storage path
	DefaultMigrationDir = "migrations"

	// DefaultBaseBranch is the default diff base for change-set discovery
	DefaultBaseBranch = "origin/main"

	// DefaultDialect is the default SQL dialect for offline generation
	DefaultDialect = "postgresql"

	// DefaultSQLOutput is the default file SQL previews are written to
	DefaultSQLOutput = "generated.sql"
)
