package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OpenMindUA/alembic-actions/pkg/config"
	"github.com/OpenMindUA/alembic-actions/pkg/migration"
	"github.com/OpenMindUA/alembic-actions/pkg/vcs"
	"github.com/urfave/cli/v3"
)

// order creates the order command, which prints the dependency-correct apply
// order for the migrations changed in the current PR, one revision per line.
//
// With --verbose the merge and initial migrations in the set are reported as
// well, which helps reviewers spot branch merges and fresh migration roots at
// a glance.
//
// Example usage:
//
//	# Print the apply order for this PR's migrations
//	alembic-actions order
//
//	# Scope to one database of a multi-database project
//	alembic-actions order --database billing --verbose
func order(cfg *config.Config) *cli.Command {
	cfg = effective(cfg)

	return &cli.Command{
		Name:  "order",
		Usage: "Print the dependency-correct apply order for changed migrations",
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
			&cli.StringFlag{
				Name:  "database",
				Usage: "Named database in a multi-database project",
				Value: cfg.Database,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Also report merge and initial migrations",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			set := migration.NewSet(migration.SetParams{
				Differ:   vcs.NewGit(),
				Root:     cmd.String("migration-path"),
				Base:     cmd.String("base"),
				Database: cmd.String("database"),
			})

			ordered, err := set.Order(ctx, nil)
			if err != nil {
				return err
			}

			if ferr := set.FileErrors(); ferr != nil {
				slog.Warn("Some migration files could not be read", "err", ferr)
			}

			if len(ordered) == 0 {
				fmt.Fprintln(cmd.Writer, "No migrations found in the change-set.")
				return nil
			}

			for _, revision := range ordered {
				fmt.Fprintln(cmd.Writer, revision)
			}

			if !cmd.Bool("verbose") {
				return nil
			}

			merges, err := set.Merges(ctx, nil)
			if err != nil {
				return err
			}
			for _, rec := range merges {
				fmt.Fprintf(cmd.Writer, "merge: %s <- %v\n", rec.Revision, rec.Parents())
			}

			initials, err := set.Initials(ctx, nil)
			if err != nil {
				return err
			}
			for _, rec := range initials {
				fmt.Fprintf(cmd.Writer, "initial: %s\n", rec.Revision)
			}

			return nil
		},
	}
}
