package migration

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type (
	// Differ supplies the list of file paths changed relative to a base
	// reference. The vcs package provides the git-backed implementation;
	// tests substitute fakes.
	Differ interface {
		ChangedFiles(ctx context.Context, base string) ([]string, error)
	}

	// Set discovers and caches the migration records changed in the current
	// pull request and exposes derived views over them.
	//
	// A Set owns a per-instance lazily initialized cache: the first call to
	// All invokes the differ and parses the matching files, subsequent calls
	// return the cached mapping. A Set is not safe for concurrent use; each
	// goroutine should own its own instance.
	//
	// Example usage:
	//
	//	set := migration.NewSet(migration.SetParams{
	//		Differ: vcs.NewGit(),
	//		Root:   "migrations",
	//		Base:   "origin/main",
	//	})
	//
	//	order, err := set.Order(ctx, nil)
	//	if err != nil {
	//		return err
	//	}
	Set struct {
		differ   Differ
		root     string
		base     string
		database string

		cache    map[string]*Record
		fileErrs *multierror.Error
	}

	// SetParams contains configuration for creating a new Set.
	SetParams struct {
		// Differ lists the files changed in the current change-set.
		Differ Differ

		// Root is the migration storage path (default "migrations").
		Root string

		// Base is the reference the change-set is diffed against
		// (default "origin/main").
		Base string

		// Database optionally scopes discovery to one named database's
		// sub-path in a multi-database layout
		// (<root>/databases/<database>).
		Database string
	}
)

// NewSet creates a migration Set with the provided parameters, applying
// defaults for the migration root and diff base.
func NewSet(p SetParams) *Set {
	if p.Root == "" {
		p.Root = "migrations"
	}
	if p.Base == "" {
		p.Base = "origin/main"
	}

	root := p.Root
	if p.Database != "" {
		root = path.Join(p.Root, "databases", p.Database)
	}

	return &Set{
		differ:   p.Differ,
		root:     root,
		base:     p.Base,
		database: p.Database,
	}
}

// Root returns the effective migration path, including the database sub-path
// when the set is scoped to a named database.
func (s *Set) Root() string {
	return s.root
}

// All returns the full revision-to-record mapping for the migration files
// changed in the current change-set.
//
// Changed files are filtered to those under the migration root with a .py
// extension, then parsed. Files that vanished since the diff are skipped
// silently; unreadable files are recorded (see FileErrors) and skipped; files
// with no discoverable revision are not migrations and are skipped. When two
// files declare the same revision, the later one in diff order wins.
//
// The result is memoized for the lifetime of the Set. A differ failure is
// fatal: without the changed-file list no forward progress is possible.
func (s *Set) All(ctx context.Context) (map[string]*Record, error) {
	if s.cache != nil {
		return s.cache, nil
	}

	changed, err := s.differ.ChangedFiles(ctx, s.base)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list changed files")
	}

	records := make(map[string]*Record)
	for _, file := range changed {
		if !strings.HasPrefix(file, s.root+"/") || !strings.HasSuffix(file, ".py") {
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			s.fileErrs = multierror.Append(s.fileErrs, errors.Wrapf(err, "failed to read migration: %s", file))
			continue
		}

		rec, ok := Parse(file, content)
		if !ok {
			continue
		}

		records[rec.Revision] = rec
	}

	s.cache = records
	return records, nil
}

// FileErrors returns the accumulated per-file read failures from the last
// discovery pass, or nil if every candidate file was readable. These are
// advisory: a read failure skips the file without aborting the batch.
func (s *Set) FileErrors() error {
	return s.fileErrs.ErrorOrNil()
}

// DependencyGraph builds the parent-to-children graph for the provided
// mapping, defaulting to All when the mapping is nil.
func (s *Set) DependencyGraph(ctx context.Context, records map[string]*Record) (map[string][]string, error) {
	records, err := s.orAll(ctx, records)
	if err != nil {
		return nil, err
	}

	return Graph(records), nil
}

// Order computes the apply order for the provided mapping, defaulting to All
// when the mapping is nil.
func (s *Set) Order(ctx context.Context, records map[string]*Record) ([]string, error) {
	records, err := s.orAll(ctx, records)
	if err != nil {
		return nil, err
	}

	return Order(records), nil
}

// Merges returns the merge migrations (more than one parent) from the
// provided mapping, defaulting to All when the mapping is nil. Results are
// sorted by revision.
func (s *Set) Merges(ctx context.Context, records map[string]*Record) ([]*Record, error) {
	return s.filter(ctx, records, (*Record).IsMerge)
}

// Initials returns the initial migrations (no parent) from the provided
// mapping, defaulting to All when the mapping is nil. Results are sorted by
// revision.
func (s *Set) Initials(ctx context.Context, records map[string]*Record) ([]*Record, error) {
	return s.filter(ctx, records, (*Record).IsInitial)
}

func (s *Set) filter(ctx context.Context, records map[string]*Record, pred func(*Record) bool) ([]*Record, error) {
	records, err := s.orAll(ctx, records)
	if err != nil {
		return nil, err
	}

	matched := make([]*Record, 0, len(records))
	for _, revision := range sortedRevisions(records) {
		if rec := records[revision]; pred(rec) {
			matched = append(matched, rec)
		}
	}

	return matched, nil
}

func (s *Set) orAll(ctx context.Context, records map[string]*Record) (map[string]*Record, error) {
	if records != nil {
		return records, nil
	}

	return s.All(ctx)
}
