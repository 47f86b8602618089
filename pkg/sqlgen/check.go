package sqlgen

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenMindUA/alembic-actions/pkg/consts"
	"github.com/OpenMindUA/alembic-actions/pkg/migration"
	"github.com/pkg/errors"
)

// CheckResult reports whether the current change-set touches migration files
// and which revision ids it appears to contain.
type CheckResult struct {
	// HasMigrations is true if any changed file lives under the migration
	// root.
	HasMigrations bool

	// Revisions holds the candidate revision ids extracted from changed
	// file names under versions/ directories. These come from the legacy
	// naming convention (leading underscore-delimited token) and are not
	// parsed from file content.
	Revisions []string
}

// Check inspects the change-set for migration files.
//
// Any changed file under the migration root counts as a migration change.
// Candidate revision ids are read from the file name only: for files under a
// versions/ directory, the token before the first underscore is taken as the
// revision when it is longer than four characters. Content-level parsing is
// the migration package's job; this check is the cheap pre-pass CI uses to
// decide whether to run the expensive steps at all.
//
// Example usage:
//
//	res, err := sqlgen.Check(ctx, vcs.NewGit(), "migrations", "origin/main")
//	if err != nil {
//		return err
//	}
//	if res.HasMigrations {
//		fmt.Printf("PR contains revisions: %v\n", res.Revisions)
//	}
func Check(ctx context.Context, differ migration.Differ, root, base string) (*CheckResult, error) {
	changed, err := differ.ChangedFiles(ctx, base)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check migrations")
	}

	res := &CheckResult{}
	for _, file := range changed {
		if !strings.HasPrefix(file, root+"/") {
			continue
		}
		res.HasMigrations = true

		if !strings.Contains(file, "/versions/") {
			continue
		}

		// Typical file name: a1b2c3d4e5f6_migration_name.py
		token := strings.SplitN(filepath.Base(file), "_", 2)[0]
		if len(token) > 4 {
			res.Revisions = append(res.Revisions, token)
		}
	}

	return res, nil
}

// WriteOutput publishes the check result for the CI system.
//
// When outputPath is non-empty (the GITHUB_OUTPUT file provided by GitHub
// Actions), the key=value pairs are appended there; otherwise they are
// printed to w as a fallback for local runs.
func (r *CheckResult) WriteOutput(outputPath string, w io.Writer) error {
	out := w
	if outputPath != "" {
		f, err := os.OpenFile(outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, consts.ModeFile)
		if err != nil {
			return errors.Wrapf(err, "failed to open output file: %s", outputPath)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	fmt.Fprintf(out, "has_migrations=%t\n", r.HasMigrations)
	if len(r.Revisions) > 0 {
		fmt.Fprintf(out, "migration_revisions=%s\n", strings.Join(r.Revisions, ","))
	}

	return nil
}
