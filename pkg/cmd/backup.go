package cmd

import (
	"context"
	"fmt"

	"github.com/OpenMindUA/alembic-actions/pkg/backup"
	"github.com/OpenMindUA/alembic-actions/pkg/config"
	"github.com/urfave/cli/v3"
)

// backupCmd creates the backup command, which dumps the target database with
// the dialect's native dump tool before a deploy applies migrations.
//
// Example usage:
//
//	# Timestamped backup file in the working directory
//	alembic-actions backup --database-url postgresql://app:secret@db:5432/app
//
//	# Explicit output path
//	alembic-actions backup --database-url $DATABASE_URL --output pre_deploy.sql
func backupCmd(cfg *config.Config) *cli.Command {
	cfg = effective(cfg)

	return &cli.Command{
		Name:  "backup",
		Usage: "Back up the database before applying migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dialect",
				Usage: "Database dialect (only postgresql is supported)",
				Value: cfg.Dialect,
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Connection URL of the database to back up",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path to write the backup to",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := backup.Backup(ctx, nil, cmd.String("dialect"), cmd.String("database-url"), cmd.String("output"))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Writer, "Backup written to %s\n", path)
			return nil
		},
	}
}
