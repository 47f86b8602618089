package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		fx.Annotate(backupCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(check, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(databases, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(order, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(sqlCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(status, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(validate, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
