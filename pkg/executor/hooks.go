package executor

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/akabei/pkg/errors"
)

// HookRunner spawns a hook command
type HookRunner interface {
	Run(ctx context.Context, dir string, argv []string) error
}

// ExecRunner runs hooks as child processes with the given stdio. Nil
// streams default to the process's own.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner inheriting stdin, stdout and stderr
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes argv in dir and waits for it. A non-zero exit, or a
// command that cannot be started, is HOOK_FAILED.
func (r *ExecRunner) Run(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return errors.New(errors.ErrHookFailed, "hook has an empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	command := strings.Join(argv, " ")
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return errors.Wrapf(err, errors.ErrHookFailed, "hook `%s` exited with status %d", command, exitErr.ExitCode()).
				WithDetail("command", argv).
				WithDetail("exit_code", exitErr.ExitCode())
		}
		return errors.Wrapf(err, errors.ErrHookFailed, "cannot run hook `%s`", command).
			WithDetail("command", argv)
	}
	return nil
}
