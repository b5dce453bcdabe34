package steps

import (
	"context"
	"log/slog"

	"github.com/systemstart/bootstrap/pkg/api"
	"github.com/systemstart/bootstrap/pkg/sequencer"
)

type commandStep struct {
	name string
	cfg  *api.CommandConfig
}

// NewCommandStep creates a probe that is satisfied when a command exits with 0.
func NewCommandStep(name string, cfg *api.CommandConfig) Step {
	return &commandStep{name: name, cfg: cfg}
}

func (s *commandStep) Name() string { return s.name }

func (s *commandStep) Check(ctx context.Context, sctx StepContext) (sequencer.Status, error) {
	if _, err := sctx.Runner.LookPath(s.cfg.Command); err != nil {
		slog.Debug("probe command not found", "step", s.name, "command", s.cfg.Command, "error", err)
		return sequencer.Unknown, nil
	}

	res, err := sctx.Runner.Run(ctx, s.cfg.Command, s.cfg.Args...)
	if err != nil {
		return sequencer.Unknown, sequencer.Errorf(sequencer.KindUnknownProbe, "running %s: %w", s.cfg.Command, err)
	}
	if !res.Success() {
		return sequencer.Missing, sequencer.Errorf(sequencer.KindDependencyMissing, "%s exited with status %d%s",
			s.cfg.Command, res.ExitCode, stderrSuffix(res.Stderr))
	}
	return sequencer.Satisfied, nil
}
