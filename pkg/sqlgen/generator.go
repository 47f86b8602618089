package sqlgen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

type (
	// SQLRunner is the slice of the alembic runner the generator needs.
	SQLRunner interface {
		PreviousRevision(ctx context.Context, revision string) (string, error)
		UpgradeSQL(ctx context.Context, dialect, target string) ([]byte, error)
	}

	// Generator assembles an offline SQL preview from alembic's --sql mode.
	//
	// Example usage:
	//
	//	gen := sqlgen.NewGenerator(runner, "postgresql")
	//
	//	f, err := os.Create("generated.sql")
	//	if err != nil {
	//		return err
	//	}
	//	defer f.Close()
	//
	//	if err := gen.Generate(ctx, f, "", order); err != nil {
	//		return err
	//	}
	Generator struct {
		alembic SQLRunner
		dialect string
	}
)

// NewGenerator creates a Generator emitting SQL for the given dialect.
func NewGenerator(alembic SQLRunner, dialect string) *Generator {
	return &Generator{alembic: alembic, dialect: dialect}
}

// Generate writes the SQL preview for the change-set to w.
//
// When specific revisions are given (and no explicit range overrides them),
// one `upgrade <parent>:<revision> --sql` invocation is made per revision in
// the order provided, each section prefixed with a `-- Migration:` header.
// The parent comes from the revision's history; if the history lookup fails
// the revision is rendered standalone (`<revision>:<revision>`), and a
// revision with no resolvable parent at all is skipped with a warning.
//
// Without specific revisions the whole range is rendered in a single
// invocation, defaulting to "head".
func (g *Generator) Generate(ctx context.Context, w io.Writer, rangeOption string, revisions []string) error {
	if len(revisions) > 0 && (rangeOption == "" || rangeOption == "head") {
		return g.generateEach(ctx, w, revisions)
	}

	target := rangeOption
	if target == "" {
		target = "head"
	}

	slog.Info("Generating SQL", "target", target, "dialect", g.dialect)

	sql, err := g.alembic.UpgradeSQL(ctx, g.dialect, target)
	if err != nil {
		return err
	}

	_, err = w.Write(sql)
	return err
}

func (g *Generator) generateEach(ctx context.Context, w io.Writer, revisions []string) error {
	for _, revision := range revisions {
		slog.Info("Generating SQL for revision", "revision", revision)

		target := revision + ":" + revision
		previous, err := g.alembic.PreviousRevision(ctx, revision)
		switch {
		case err != nil:
			slog.Error("Failed to resolve previous revision, rendering standalone", "revision", revision, "err", err)
		case previous == "":
			slog.Warn("No previous revision found, skipping", "revision", revision)
			continue
		default:
			target = previous + ":" + revision
		}

		sql, err := g.alembic.UpgradeSQL(ctx, g.dialect, target)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "\n-- Migration: %s --\n", revision)
		if _, err := w.Write(sql); err != nil {
			return err
		}
	}

	return nil
}
