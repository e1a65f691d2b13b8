// Package launcher spawns the backend process and supervises it in the
// foreground.
package launcher

import (
	"context"
	"errors"
	"os"
	"os/exec"
)

// Spec describes a backend launch.
type Spec struct {
	// Runtime is the interpreter binary (typically a project-local python).
	Runtime string
	// Entrypoint is the script handed to the runtime.
	Entrypoint string
	// Dir is the working directory for the backend, normally the project root.
	Dir string
	// Env is the full child environment. Nil inherits the parent's.
	Env []string
}

// Spawner runs a backend to completion.
type Spawner interface {
	Spawn(ctx context.Context, spec Spec) error
}

// ExecSpawner runs the backend as a foreground child process with inherited
// stdio. It blocks until the backend exits; the backend's exit status is
// recoverable from the returned error via ExitStatus.
type ExecSpawner struct{}

func (ExecSpawner) Spawn(ctx context.Context, spec Spec) error {
	cmd := exec.CommandContext(ctx, spec.Runtime, spec.Entrypoint)
	cmd.Dir = spec.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = spec.Env
	hideWindow(cmd)

	return cmd.Run()
}

// ExitStatus extracts the backend's exit code from a Spawn error. ok is
// false when the error does not carry one (e.g. the process never started).
func ExitStatus(err error) (code int, ok bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}
