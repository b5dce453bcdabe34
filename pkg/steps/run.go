package steps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/systemstart/bootstrap/pkg/api"
	"github.com/systemstart/bootstrap/pkg/command"
	"github.com/systemstart/bootstrap/pkg/sequencer"
)

type runStep struct {
	name string
	cfg  *api.CommandConfig
}

// NewRunStep creates a step that runs a command and fails on a non-zero exit.
func NewRunStep(name string, cfg *api.CommandConfig) Step {
	return &runStep{name: name, cfg: cfg}
}

func (s *runStep) Name() string { return s.name }

func (s *runStep) Perform(ctx context.Context, sctx StepContext) error {
	_, err := execute(ctx, sctx, s.name, s.cfg.Command, s.cfg.Args...)
	return err
}

// execute runs an external command for step and classifies failures.
// Commands given as a path are resolved against the working directory.
func execute(ctx context.Context, sctx StepContext, step, name string, args ...string) (command.Result, error) {
	if strings.ContainsAny(name, `/\`) && !filepath.IsAbs(name) {
		abs, err := filepath.Abs(name)
		if err != nil {
			return command.Result{}, fmt.Errorf("resolving %s: %w", name, err)
		}
		name = abs
	}

	slog.Info("running command", "step", step, "command", name, "args", strings.Join(args, " "))

	res, err := sctx.Runner.Run(ctx, name, args...)
	if err != nil {
		if errors.Is(err, command.ErrNotFound) {
			return res, sequencer.Errorf(sequencer.KindDependencyMissing, "%s is not installed: %w", filepath.Base(name), err)
		}
		return res, sequencer.Errorf(sequencer.KindExternalProcessFailed, "%s: %w", filepath.Base(name), err)
	}

	if out := strings.TrimSpace(res.Stdout); out != "" {
		slog.Debug("command output", "step", step, "stdout", out)
	}

	if !res.Success() {
		return res, sequencer.Errorf(sequencer.KindExternalProcessFailed, "%s exited with status %d%s",
			filepath.Base(name), res.ExitCode, stderrSuffix(res.Stderr))
	}
	return res, nil
}

func stderrSuffix(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return ""
	}
	lines := strings.Split(stderr, "\n")
	return ": " + strings.TrimSpace(lines[len(lines)-1])
}
