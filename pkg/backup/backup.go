// Package backup creates pre-deploy database backups by invoking the
// dialect's native dump tool.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/OpenMindUA/alembic-actions/pkg/utils"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// Backup dumps the database behind databaseURL to path and returns the path
// written. An empty path gets a timestamped default (backup_<ts>.sql).
//
// Only the postgresql dialect is implemented: the URL is parsed with pgconn
// and handed to pg_dump, with the password passed through PGPASSWORD rather
// than the command line.
//
// Example usage:
//
//	path, err := backup.Backup(ctx, nil, "postgresql",
//		"postgresql://app:secret@db:5432/app_production", "")
//	if err != nil {
//		return err
//	}
//	fmt.Printf("backup written to %s\n", path)
func Backup(ctx context.Context, runner utils.CommandRunner, dialect, databaseURL, path string) (string, error) {
	if runner == nil {
		runner = utils.NewExecRunner()
	}

	if path == "" {
		path = fmt.Sprintf("backup_%s.sql", time.Now().Format("20060102_150405"))
	}

	slog.Info("Creating database backup", "path", path, "dialect", dialect)

	if dialect != "postgresql" {
		return "", errors.Errorf("backup not implemented for dialect: %s", dialect)
	}

	cfg, err := pgconn.ParseConfig(databaseURL)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse database URL")
	}

	args := []string{
		"-h", cfg.Host,
		"-p", strconv.Itoa(int(cfg.Port)),
		"-U", cfg.User,
		"-f", path,
		cfg.Database,
	}

	env := []string{"PGPASSWORD=" + cfg.Password}
	if _, err := runner.Run(ctx, env, "pg_dump", args...); err != nil {
		return "", errors.Wrap(err, "failed to back up database")
	}

	return path, nil
}
