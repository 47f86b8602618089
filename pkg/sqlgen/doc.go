// Package sqlgen implements the CI-facing drivers built on top of the
// migration core: detecting whether a change-set touches migrations (and
// reporting the candidate revision ids to the CI system), and assembling an
// offline SQL preview by invoking alembic once per revision.
package sqlgen
