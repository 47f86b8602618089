package vcs_test

import (
	"context"
	"testing"

	"github.com/OpenMindUA/alembic-actions/pkg/vcs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	out  []byte
	err  error
	name string
	args []string
}

func (r *fakeRunner) Run(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	r.name = name
	r.args = args
	return r.out, r.err
}

func TestChangedFiles(t *testing.T) {
	t.Run("splits_and_trims_output", func(t *testing.T) {
		runner := &fakeRunner{out: []byte("migrations/versions/rev1_initial.py\n\nREADME.md  \n")}
		git := vcs.NewGitWithRunner(runner)

		files, err := git.ChangedFiles(context.Background(), "origin/main")
		require.NoError(t, err)
		require.Equal(t, []string{"migrations/versions/rev1_initial.py", "README.md"}, files)

		require.Equal(t, "git", runner.name)
		require.Equal(t, []string{"diff", "--name-only", "origin/main...HEAD"}, runner.args)
	})

	t.Run("empty_diff", func(t *testing.T) {
		git := vcs.NewGitWithRunner(&fakeRunner{out: []byte("\n")})

		files, err := git.ChangedFiles(context.Background(), "origin/main")
		require.NoError(t, err)
		require.Empty(t, files)
	})

	t.Run("diff_failure", func(t *testing.T) {
		git := vcs.NewGitWithRunner(&fakeRunner{err: errors.New("not a git repository")})

		_, err := git.ChangedFiles(context.Background(), "origin/main")
		require.ErrorContains(t, err, "failed to diff against origin/main")
	})
}
