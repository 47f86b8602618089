package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/OpenMindUA/alembic-actions/pkg/config"
	"github.com/OpenMindUA/alembic-actions/pkg/sqlgen"
	"github.com/OpenMindUA/alembic-actions/pkg/vcs"
	"github.com/urfave/cli/v3"
)

// check creates the check command, the cheap CI pre-pass that reports whether
// the current change-set touches migration files.
//
// The result is published through the GITHUB_OUTPUT file when running under
// GitHub Actions (has_migrations and migration_revisions keys), and printed
// to stdout otherwise, so downstream workflow steps can gate on it.
//
// Example usage:
//
//	# Check against the default base branch
//	alembic-actions check
//
//	# Check a non-standard layout
//	alembic-actions check --migration-path db/migrations --base origin/develop
func check(cfg *config.Config) *cli.Command {
	cfg = effective(cfg)

	return &cli.Command{
		Name:  "check",
		Usage: "Check whether the change-set contains Alembic migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "migration-path",
				Aliases: []string{"m"},
				Usage:   "Path to the Alembic migrations directory",
				Value:   cfg.MigrationDir,
			},
			&cli.StringFlag{
				Name:    "base",
				Aliases: []string{"b"},
				Usage:   "Base reference to diff against",
				Value:   cfg.BaseBranch,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			res, err := sqlgen.Check(ctx, vcs.NewGit(), cmd.String("migration-path"), cmd.String("base"))
			if err != nil {
				return err
			}

			slog.Info("Found migrations", "has_migrations", res.HasMigrations)
			if len(res.Revisions) > 0 {
				slog.Info("Migration revisions in PR", "revisions", res.Revisions)
			}

			return res.WriteOutput(os.Getenv("GITHUB_OUTPUT"), cmd.Writer)
		},
	}
}
