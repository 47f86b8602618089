package cmd

import (
	"context"
	"fmt"

	"github.com/OpenMindUA/alembic-actions/pkg/alembic"
	"github.com/OpenMindUA/alembic-actions/pkg/config"
	"github.com/urfave/cli/v3"
)

// databases creates the databases command, which lists the database names
// configured in alembic.ini for multi-database projects.
//
// Example usage:
//
//	alembic-actions databases --alembic-ini db/alembic.ini
func databases(cfg *config.Config) *cli.Command {
	cfg = effective(cfg)

	return &cli.Command{
		Name:  "databases",
		Usage: "List the databases configured in alembic.ini",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "alembic-ini",
				Usage: "Path to the alembic.ini file",
				Value: cfg.AlembicIni,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			alembicCfg, err := alembic.LoadConfig(cmd.String("alembic-ini"))
			if err != nil {
				return err
			}

			names := alembicCfg.Databases()
			if len(names) == 0 {
				fmt.Fprintln(cmd.Writer, "No multi-database configuration found (single database).")
				return nil
			}

			for _, name := range names {
				fmt.Fprintln(cmd.Writer, name)
			}

			return nil
		},
	}
}
