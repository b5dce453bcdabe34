// Package command runs external processes for bootstrap steps.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrNotFound is returned when the executable is not on PATH.
var ErrNotFound = errors.New("executable not found")

// Result is the outcome of a finished process.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes external commands. A non-zero exit status is reported in
// the Result, not as an error. A process killed because ctx ended is an
// error wrapping ctx.Err().
type Runner interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec in the process working directory.
type ExecRunner struct{}

// NewExecRunner creates an ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// LookPath resolves name on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return path, nil
}

// Run starts name with args and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if _, err := r.LookPath(name); err != nil {
		return Result{}, err
	}

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running command", "command", name, "args", strings.Join(args, " "))

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("running %s: %w", name, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("running %s: %w", name, err)
	}
	return result, nil
}

var _ Runner = (*ExecRunner)(nil)
