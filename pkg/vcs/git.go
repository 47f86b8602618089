// Package vcs provides the version-control collaborator used to discover the
// files changed in the current change-set.
package vcs

import (
	"context"
	"strings"

	"github.com/OpenMindUA/alembic-actions/pkg/utils"
	"github.com/pkg/errors"
)

// Git lists changed files by shelling out to the git binary.
//
// Example usage:
//
//	git := vcs.NewGit()
//	files, err := git.ChangedFiles(ctx, "origin/main")
//	if err != nil {
//		return err
//	}
type Git struct {
	runner utils.CommandRunner
}

// NewGit creates a Git collaborator using the real git binary.
func NewGit() *Git {
	return NewGitWithRunner(utils.NewExecRunner())
}

// NewGitWithRunner creates a Git collaborator with a custom command runner.
// Used by tests to substitute a fake subprocess.
func NewGitWithRunner(runner utils.CommandRunner) *Git {
	return &Git{runner: runner}
}

// ChangedFiles returns the paths changed relative to the base reference, in
// the order git reports them. A diff failure is returned as-is: callers
// cannot make progress without the file list.
func (g *Git) ChangedFiles(ctx context.Context, base string) ([]string, error) {
	out, err := g.runner.Run(ctx, nil, "git", "diff", "--name-only", base+"...HEAD")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to diff against %s", base)
	}

	var files []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}

	return files, nil
}
