package migration

type (
	// Record represents the revision metadata extracted from a single Alembic
	// migration file.
	//
	// Records are immutable once created. The Down slice captures all three
	// shapes a down-revision can take in a migration file:
	//
	//   - empty/nil: no parent (an initial migration)
	//   - one element: a single linear parent
	//   - two or more elements: a merge migration unifying diverged branches
	//
	// Example usage:
	//
	//	rec := &migration.Record{
	//		Revision:   "abc123def456",
	//		Down:       []string{"fed321abc789"},
	//		SourcePath: "migrations/versions/abc123def456_add_users.py",
	//	}
	//
	//	if rec.IsMerge() {
	//		fmt.Printf("%s merges %d branches\n", rec.Revision, len(rec.Parents()))
	//	}
	Record struct {
		// Revision is the unique identifier of this migration step.
		Revision string

		// Down holds the declared down-revision identifiers in file order.
		// Empty for initial migrations.
		Down []string

		// SourcePath is the file the record was parsed from. Carried for
		// diagnostics only; ordering never looks at it.
		SourcePath string
	}
)

// IsInitial returns true if the migration has no down-revision, meaning it is
// a root of the migration history.
func (r *Record) IsInitial() bool {
	return len(r.Down) == 0
}

// IsMerge returns true if the migration declares more than one down-revision,
// i.e. it merges diverged history branches.
func (r *Record) IsMerge() bool {
	return len(r.Down) > 1
}

// Parents returns the down-revisions of this record normalized for ordering.
//
// Empty identifiers and self-references are dropped: both are data-quality
// defects in the source file, and dropping the link degrades the record
// toward being treated as a root rather than failing the whole batch.
func (r *Record) Parents() []string {
	parents := make([]string, 0, len(r.Down))
	for _, p := range r.Down {
		if p == "" || p == r.Revision {
			continue
		}
		parents = append(parents, p)
	}

	return parents
}
