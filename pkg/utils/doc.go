// Package utils provides small shared helpers for alembic-actions, currently
// the subprocess runner used by the vcs, alembic, and backup packages.
package utils
