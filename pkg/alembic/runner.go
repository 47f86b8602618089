package alembic

import (
	"context"
	"strings"

	"github.com/OpenMindUA/alembic-actions/pkg/utils"
	"github.com/pkg/errors"
)

type (
	// Runner drives the alembic binary for one project (and optionally one
	// named database within a multi-database project).
	//
	// Every invocation takes the shape `alembic -c <ini> [--name <db>] <args>`.
	// The database name is resolved against the ini configuration on first
	// use: explicit names are validated, otherwise the first configured
	// database is auto-selected, and single-database projects get no --name
	// flag at all.
	//
	// Example usage:
	//
	//	runner := alembic.NewRunner(alembic.RunnerParams{
	//		IniPath:  "alembic.ini",
	//		Database: "billing",
	//	})
	//
	//	current, err := runner.CurrentRevision(ctx)
	//	if err != nil {
	//		return err
	//	}
	Runner struct {
		runner   utils.CommandRunner
		iniPath  string
		database string

		cfg *Config
	}

	// RunnerParams contains configuration for creating a Runner.
	RunnerParams struct {
		// Runner executes the alembic subprocess (defaults to os/exec).
		Runner utils.CommandRunner

		// IniPath is the path to alembic.ini.
		IniPath string

		// Database optionally names the target database in a
		// multi-database project.
		Database string
	}

	// HistoryEntry is one parsed line of `alembic history` output.
	HistoryEntry struct {
		Key   string
		Value string
	}
)

// NewRunner creates a Runner for the given alembic.ini and optional database.
func NewRunner(p RunnerParams) *Runner {
	if p.Runner == nil {
		p.Runner = utils.NewExecRunner()
	}

	return &Runner{
		runner:   p.Runner,
		iniPath:  p.IniPath,
		database: p.Database,
	}
}

// IniPath returns the path to the alembic.ini this Runner drives.
func (r *Runner) IniPath() string {
	return r.iniPath
}

// CurrentRevision returns the revision the database currently sits at, or an
// empty string when no migration has been applied yet.
func (r *Runner) CurrentRevision(ctx context.Context) (string, error) {
	out, err := r.run(ctx, nil, "current")
	if err != nil {
		return "", errors.Wrap(err, "failed to get current revision")
	}

	output := string(out)
	if !strings.Contains(output, "head") {
		return "", nil
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Rev:") {
			continue
		}

		value := strings.TrimSpace(strings.SplitN(line, ":", 2)[1])
		return strings.SplitN(value, " ", 2)[0], nil
	}

	return "", nil
}

// History returns the migration history as parsed `Rev:` entries, newest
// first, matching the order alembic prints them.
func (r *Runner) History(ctx context.Context) ([]HistoryEntry, error) {
	out, err := r.run(ctx, nil, "history")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get migration history")
	}

	var history []HistoryEntry
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.HasPrefix(line, "Rev:") {
			continue
		}

		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) == 2 {
			history = append(history, HistoryEntry{Key: "Rev", Value: strings.TrimSpace(parts[1])})
		}
	}

	return history, nil
}

// PreviousRevision returns the revision immediately below the given one in
// the migration history, or an empty string if the revision sits at base.
//
// The lookup runs `history -r <revision>:base --verbose` and takes the
// first down-arrow line that does not belong to the revision itself.
func (r *Runner) PreviousRevision(ctx context.Context, revision string) (string, error) {
	out, err := r.run(ctx, nil, "history", "-r", revision+":base", "--verbose")
	if err != nil {
		return "", errors.Wrapf(err, "failed to get history for %s", revision)
	}

	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, "("+revision+")") {
			continue
		}
		if !strings.Contains(line, "->") {
			continue
		}

		left := strings.TrimSpace(strings.SplitN(line, "->", 2)[0])
		if fields := strings.Fields(left); len(fields) > 0 {
			return fields[0], nil
		}
	}

	return "", nil
}

// Validate checks that every migration can be compiled to SQL offline for the
// given dialect. A non-nil error means at least one migration is invalid.
func (r *Runner) Validate(ctx context.Context, dialect string) error {
	if _, err := r.run(ctx, nil, "upgrade", "head", "--sql", "--dialect="+dialect); err != nil {
		return errors.Wrap(err, "failed to validate migrations")
	}

	return nil
}

// UpgradeSQL emits the SQL for upgrading to the given target without touching
// the database. The target is any revision expression alembic accepts, e.g.
// "head" or "<from>:<to>". The dialect is passed through the ALEMBIC_DIALECT
// environment variable, which the project's env.py is expected to honor.
func (r *Runner) UpgradeSQL(ctx context.Context, dialect, target string) ([]byte, error) {
	env := []string{"ALEMBIC_DIALECT=" + dialect}

	out, err := r.run(ctx, env, "upgrade", target, "--sql")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to generate SQL for %s", target)
	}

	return out, nil
}

func (r *Runner) run(ctx context.Context, env []string, args ...string) ([]byte, error) {
	full, err := r.buildArgs(args...)
	if err != nil {
		return nil, err
	}

	return r.runner.Run(ctx, env, "alembic", full...)
}

func (r *Runner) buildArgs(args ...string) ([]string, error) {
	if r.cfg == nil {
		cfg, err := LoadConfig(r.iniPath)
		if err != nil {
			return nil, err
		}
		r.cfg = cfg
	}

	database, err := r.cfg.ResolveDatabase(r.database)
	if err != nil {
		return nil, err
	}

	full := []string{"-c", r.iniPath}
	if database != "" {
		full = append(full, "--name", database)
	}

	return append(full, args...), nil
}
