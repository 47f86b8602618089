package cmd

import (
	"context"
	"fmt"

	"github.com/OpenMindUA/alembic-actions/pkg/alembic"
	"github.com/OpenMindUA/alembic-actions/pkg/config"
	"github.com/urfave/cli/v3"
)

// status creates the status command, which reports the revision the database
// currently sits at and, with --verbose, the full migration history as
// alembic reports it.
//
// Example usage:
//
//	# Show the current revision
//	alembic-actions status
//
//	# Include the history for one database of a multi-database project
//	alembic-actions status --database billing --verbose
func status(cfg *config.Config) *cli.Command {
	cfg = effective(cfg)

	return &cli.Command{
		Name:  "status",
		Usage: "Show the current database revision and migration history",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "alembic-ini",
				Usage: "Path to the alembic.ini file",
				Value: cfg.AlembicIni,
			},
			&cli.StringFlag{
				Name:  "database",
				Usage: "Named database in a multi-database project",
				Value: cfg.Database,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Show the full migration history",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			runner := alembic.NewRunner(alembic.RunnerParams{
				IniPath:  cmd.String("alembic-ini"),
				Database: cmd.String("database"),
			})

			current, err := runner.CurrentRevision(ctx)
			if err != nil {
				return err
			}

			if current == "" {
				fmt.Fprintln(cmd.Writer, "Current revision: None")
			} else {
				fmt.Fprintf(cmd.Writer, "Current revision: %s\n", current)
			}

			if !cmd.Bool("verbose") {
				return nil
			}

			history, err := runner.History(ctx)
			if err != nil {
				return err
			}

			for _, entry := range history {
				fmt.Fprintf(cmd.Writer, "%s: %s\n", entry.Key, entry.Value)
			}

			return nil
		},
	}
}
