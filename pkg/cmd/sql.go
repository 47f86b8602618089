package cmd

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/OpenMindUA/alembic-actions/pkg/alembic"
	"github.com/OpenMindUA/alembic-actions/pkg/config"
	"github.com/OpenMindUA/alembic-actions/pkg/consts"
	"github.com/OpenMindUA/alembic-actions/pkg/sqlgen"
	"github.com/OpenMindUA/alembic-actions/pkg/vcs"
	"github.com/urfave/cli/v3"
)

// sqlCmd creates the sql command, which renders an offline SQL preview of the
// migrations in the change-set.
//
// By default the whole pending range (head) is rendered in one alembic
// invocation. With --pr-revisions-only or --specific-revisions, one
// `upgrade <parent>:<revision> --sql` invocation is made per revision so the
// preview shows each migration's changes in isolation. Explicitly provided
// revisions take precedence over PR discovery.
//
// Example usage:
//
//	# Preview everything up to head
//	alembic-actions sql --dialect postgresql
//
//	# Preview only the migrations added in this PR
//	alembic-actions sql --pr-revisions-only
//
//	# Preview two specific revisions
//	alembic-actions sql --specific-revisions abc123,def456
func sqlCmd(cfg *config.Config) *cli.Command {
	cfg = effective(cfg)

	return &cli.Command{
		Name:  "sql",
		Usage: "Generate SQL from Alembic migrations without touching the database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dialect",
				Usage: "SQL dialect to generate for",
				Value: cfg.Dialect,
			},
			&cli.StringFlag{
				Name:  "alembic-ini",
				Usage: "Path to the alembic.ini file",
				Value: cfg.AlembicIni,
			},
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
			&cli.StringFlag{
				Name:  "database",
				Usage: "Named database in a multi-database project",
				Value: cfg.Database,
			},
			&cli.StringFlag{
				Name:  "revision-range",
				Usage: "Revision range to generate SQL for (e.g. 'head' or 'base:head')",
			},
			&cli.StringFlag{
				Name:  "specific-revisions",
				Usage: "Comma-separated revision ids to generate SQL for",
			},
			&cli.BoolFlag{
				Name:  "pr-revisions-only",
				Usage: "Only generate SQL for revisions changed in the current PR",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "File to write the generated SQL to",
				Value:   consts.DefaultSQLOutput,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var revisions []string

			if cmd.Bool("pr-revisions-only") {
				res, err := sqlgen.Check(ctx, vcs.NewGit(), cmd.String("migration-path"), cmd.String("base"))
				if err != nil {
					return err
				}

				if res.HasMigrations && len(res.Revisions) > 0 {
					revisions = res.Revisions
					slog.Info("Using revisions from PR", "revisions", revisions)
				} else {
					slog.Info("No migration revisions found in PR, falling back to full range")
				}
			}

			if specific := cmd.String("specific-revisions"); specific != "" {
				revisions = strings.Split(specific, ",")
				slog.Info("Using specified revisions", "revisions", revisions)
			}

			runner := alembic.NewRunner(alembic.RunnerParams{
				IniPath:  cmd.String("alembic-ini"),
				Database: cmd.String("database"),
			})

			out := cmd.String("out")
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			gen := sqlgen.NewGenerator(runner, cmd.String("dialect"))
			if err := gen.Generate(ctx, f, cmd.String("revision-range"), revisions); err != nil {
				return err
			}

			slog.Info("SQL generation completed", "out", out)
			return nil
		},
	}
}
