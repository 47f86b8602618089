package utils

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

type (
	// CommandRunner executes an external command and returns its stdout.
	//
	// The env slice holds extra KEY=VALUE entries appended to the current
	// process environment; nil means inherit unchanged. Implementations are
	// expected to include stderr content in returned errors so callers can
	// surface useful diagnostics.
	CommandRunner interface {
		Run(ctx context.Context, env []string, name string, args ...string) ([]byte, error)
	}

	execRunner struct{}
)

// NewExecRunner returns a CommandRunner backed by os/exec. This is the
// implementation used outside of tests.
func NewExecRunner() CommandRunner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Wrapf(err, "%s failed: %s", name, msg)
		}
		return nil, errors.Wrapf(err, "%s failed", name)
	}

	return stdout.Bytes(), nil
}
