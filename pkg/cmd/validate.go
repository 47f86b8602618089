package cmd

import (
	"context"
	"fmt"

	"github.com/OpenMindUA/alembic-actions/pkg/alembic"
	"github.com/OpenMindUA/alembic-actions/pkg/config"
	"github.com/urfave/cli/v3"
)

// validate creates the validate command, which checks that every migration
// compiles to SQL offline for the configured dialect. A migration that cannot
// be rendered will fail at deploy time, so CI runs this before merging.
//
// Example usage:
//
//	alembic-actions validate --dialect postgresql
func validate(cfg *config.Config) *cli.Command {
	cfg = effective(cfg)

	return &cli.Command{
		Name:  "validate",
		Usage: "Validate that all migrations can be compiled to SQL",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "alembic-ini",
				Usage: "Path to the alembic.ini file",
				Value: cfg.AlembicIni,
			},
			&cli.StringFlag{
				Name:  "dialect",
				Usage: "SQL dialect to validate against",
				Value: cfg.Dialect,
			},
			&cli.StringFlag{
				Name:  "database",
				Usage: "Named database in a multi-database project",
				Value: cfg.Database,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			runner := alembic.NewRunner(alembic.RunnerParams{
				IniPath:  cmd.String("alembic-ini"),
				Database: cmd.String("database"),
			})

			if err := runner.Validate(ctx, cmd.String("dialect")); err != nil {
				return err
			}

			fmt.Fprintln(cmd.Writer, "All migrations are valid.")
			return nil
		},
	}
}
