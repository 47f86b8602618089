// Package migration provides parsing, dependency modeling, and ordering for
// Alembic migration files.
//
// This package owns the core logic of alembic-actions:
//   - Extracting revision metadata (revision and down-revision identifiers)
//     from migration file content, with a structured parse and a lenient
//     textual fallback
//   - Building a dependency graph from a set of migration records
//   - Computing a deterministic, dependency-correct apply order that
//     tolerates merge migrations, missing parents, and cyclic history
//   - Discovering the migrations changed in the current pull request through
//     a version-control collaborator
//
// The package never talks to a database or to the alembic binary itself; it
// deals purely with file content and revision identifiers. Consumers (such as
// the sqlgen package) turn the resulting order into alembic invocations.
package migration
