package migration_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenMindUA/alembic-actions/pkg/migration"
	"github.com/stretchr/testify/require"
)

type fakeDiffer struct {
	files []string
	err   error
	calls int
}

func (d *fakeDiffer) ChangedFiles(ctx context.Context, base string) ([]string, error) {
	d.calls++
	return d.files, d.err
}

func writeMigration(t *testing.T, path, revision string, down string) {
	t.Helper()

	content := "revision = \"" + revision + "\"\n"
	if down == "" {
		content += "down_revision = None\n"
	} else {
		content += "down_revision = \"" + down + "\"\n"
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSetAll(t *testing.T) {
	t.Run("parses_changed_migration_files", func(t *testing.T) {
		t.Chdir(t.TempDir())

		writeMigration(t, "migrations/versions/rev1_initial.py", "rev1", "")
		writeMigration(t, "migrations/versions/rev2_users.py", "rev2", "rev1")
		require.NoError(t, os.WriteFile("README.md", []byte("# readme"), 0o644))
		require.NoError(t, os.WriteFile("migrations/alembic.ini", []byte("[alembic]"), 0o644))

		differ := &fakeDiffer{files: []string{
			"migrations/versions/rev1_initial.py",
			"migrations/versions/rev2_users.py",
			"migrations/alembic.ini", // not .py
			"README.md",              // outside the migration root
		}}

		set := migration.NewSet(migration.SetParams{Differ: differ})

		records, err := set.All(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, []string{"rev1"}, records["rev2"].Parents())
		require.NoError(t, set.FileErrors())
	})

	t.Run("memoizes_first_result", func(t *testing.T) {
		t.Chdir(t.TempDir())

		writeMigration(t, "migrations/versions/rev1_initial.py", "rev1", "")
		differ := &fakeDiffer{files: []string{"migrations/versions/rev1_initial.py"}}
		set := migration.NewSet(migration.SetParams{Differ: differ})

		first, err := set.All(context.Background())
		require.NoError(t, err)

		second, err := set.All(context.Background())
		require.NoError(t, err)

		require.Equal(t, 1, differ.calls)
		require.Equal(t, first, second)
	})

	t.Run("database_scopes_the_root", func(t *testing.T) {
		t.Chdir(t.TempDir())

		writeMigration(t, "migrations/databases/billing/versions/rev1_initial.py", "rev1", "")
		writeMigration(t, "migrations/versions/rev2_users.py", "rev2", "")

		differ := &fakeDiffer{files: []string{
			"migrations/databases/billing/versions/rev1_initial.py",
			"migrations/versions/rev2_users.py",
		}}

		set := migration.NewSet(migration.SetParams{Differ: differ, Database: "billing"})
		require.Equal(t, "migrations/databases/billing", set.Root())

		records, err := set.All(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Contains(t, records, "rev1")
	})

	t.Run("duplicate_revision_last_wins", func(t *testing.T) {
		t.Chdir(t.TempDir())

		writeMigration(t, "migrations/versions/a_dup.py", "dup", "")
		writeMigration(t, "migrations/versions/b_dup.py", "dup", "")

		differ := &fakeDiffer{files: []string{
			"migrations/versions/a_dup.py",
			"migrations/versions/b_dup.py",
		}}

		set := migration.NewSet(migration.SetParams{Differ: differ})

		records, err := set.All(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, "migrations/versions/b_dup.py", records["dup"].SourcePath)
	})

	t.Run("vanished_files_are_skipped_silently", func(t *testing.T) {
		t.Chdir(t.TempDir())

		differ := &fakeDiffer{files: []string{"migrations/versions/gone.py"}}
		set := migration.NewSet(migration.SetParams{Differ: differ})

		records, err := set.All(context.Background())
		require.NoError(t, err)
		require.Empty(t, records)
		require.NoError(t, set.FileErrors())
	})

	t.Run("unreadable_files_are_recorded_and_skipped", func(t *testing.T) {
		t.Chdir(t.TempDir())

		writeMigration(t, "migrations/versions/rev1_initial.py", "rev1", "")
		// A directory with a .py name triggers a read error that is not IsNotExist.
		require.NoError(t, os.MkdirAll("migrations/versions/broken.py", 0o755))

		differ := &fakeDiffer{files: []string{
			"migrations/versions/rev1_initial.py",
			"migrations/versions/broken.py",
		}}

		set := migration.NewSet(migration.SetParams{Differ: differ})

		records, err := set.All(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Error(t, set.FileErrors())
	})

	t.Run("non_migration_files_are_skipped", func(t *testing.T) {
		t.Chdir(t.TempDir())

		require.NoError(t, os.MkdirAll("migrations/versions", 0o755))
		require.NoError(t, os.WriteFile("migrations/versions/helpers.py", []byte("import os\n"), 0o644))

		differ := &fakeDiffer{files: []string{"migrations/versions/helpers.py"}}
		set := migration.NewSet(migration.SetParams{Differ: differ})

		records, err := set.All(context.Background())
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("differ_failure_is_fatal", func(t *testing.T) {
		differ := &fakeDiffer{err: os.ErrPermission}
		set := migration.NewSet(migration.SetParams{Differ: differ})

		_, err := set.All(context.Background())
		require.Error(t, err)
	})
}

func TestSetViews(t *testing.T) {
	records := map[string]*migration.Record{
		"rev1":  {Revision: "rev1"},
		"rev2":  {Revision: "rev2", Down: []string{"rev1"}},
		"rev3":  {Revision: "rev3", Down: []string{"rev2"}},
		"merge": {Revision: "merge", Down: []string{"rev2", "rev3"}},
	}

	// The explicit mapping short-circuits discovery, so no differ is needed.
	set := migration.NewSet(migration.SetParams{})
	ctx := context.Background()

	t.Run("order", func(t *testing.T) {
		ordered, err := set.Order(ctx, records)
		require.NoError(t, err)
		require.Equal(t, []string{"rev1", "rev2", "rev3", "merge"}, ordered)
	})

	t.Run("dependency_graph", func(t *testing.T) {
		graph, err := set.DependencyGraph(ctx, records)
		require.NoError(t, err)
		require.Equal(t, []string{"merge", "rev3"}, graph["rev2"])
	})

	t.Run("merges", func(t *testing.T) {
		merges, err := set.Merges(ctx, records)
		require.NoError(t, err)
		require.Len(t, merges, 1)
		require.Equal(t, "merge", merges[0].Revision)
	})

	t.Run("initials", func(t *testing.T) {
		initials, err := set.Initials(ctx, records)
		require.NoError(t, err)
		require.Len(t, initials, 1)
		require.Equal(t, "rev1", initials[0].Revision)
	})
}
