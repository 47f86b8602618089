package main

import (
	"context"
	"os"

	"github.com/OpenMindUA/alembic-actions/pkg/cmd"
	"github.com/OpenMindUA/alembic-actions/pkg/config"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	_ = godotenv.Load()

	fx.New(
		fx.NopLogger,
		fx.Provide(
			func() []string { return os.Args },
			func() context.Context { return context.Background() },
			func() *cmd.Version {
				return &cmd.Version{Version: version, Commit: commit, Timestamp: date}
			},
		),
		config.Module,
		cmd.Module,
	).Run()
}
