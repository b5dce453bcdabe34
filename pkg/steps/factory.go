package steps

import (
	"context"
	"fmt"

	"github.com/systemstart/bootstrap/pkg/api"
	"github.com/systemstart/bootstrap/pkg/sequencer"
)

// NewStep creates a Step implementation from a StepConfig.
func NewStep(cfg api.StepConfig) (Step, error) {
	switch cfg.Type {
	case api.StepTypePython:
		return NewPythonStep(cfg.Name, cfg.Python), nil
	case api.StepTypeCommand:
		return NewCommandStep(cfg.Name, cfg.Command), nil
	case api.StepTypeRun:
		return NewRunStep(cfg.Name, cfg.Run), nil
	case api.StepTypeSDK:
		return NewSDKStep(cfg.Name, cfg.SDK), nil
	case api.StepTypeFiles:
		return NewFilesStep(cfg.Name, cfg.Files), nil
	case api.StepTypeSubmodules:
		return NewSubmodulesStep(cfg.Name, cfg.Submodules), nil
	case api.StepTypeGenerate:
		return NewGenerateStep(cfg.Name, cfg.Generate)
	case api.StepTypeWorkdir:
		return NewWorkdirStep(cfg.Name, cfg.Workdir), nil
	default:
		return nil, fmt.Errorf("unknown step type: %s", cfg.Type)
	}
}

// Build renders cfg against the template data and binds the resulting step to
// sctx, producing a step the sequencer can run.
func Build(ctx context.Context, cfg api.StepConfig, sctx StepContext) (sequencer.Step, error) {
	rendered, err := renderConfig(cfg, sctx.TemplateData)
	if err != nil {
		return sequencer.Step{}, fmt.Errorf("step %q: %w", cfg.Name, err)
	}

	severity, err := sequencer.ParseSeverity(rendered.Severity)
	if err != nil {
		return sequencer.Step{}, fmt.Errorf("step %q: %w", cfg.Name, err)
	}

	step, err := NewStep(rendered)
	if err != nil {
		return sequencer.Step{}, fmt.Errorf("creating step %q: %w", cfg.Name, err)
	}

	return Bind(ctx, step, severity, rendered.Remediation, rendered.Announce, sctx)
}

// Bind adapts a Checker or Performer to a sequencer step.
func Bind(ctx context.Context, step Step, severity sequencer.Severity, remediation, announce string, sctx StepContext) (sequencer.Step, error) {
	out := sequencer.Step{
		Name:        step.Name(),
		Severity:    severity,
		Remediation: remediation,
		Announce:    announce,
	}

	switch s := step.(type) {
	case Performer:
		out.Action = func() error {
			if err := interrupted(ctx); err != nil {
				return err
			}
			if err := s.Perform(ctx, sctx); err != nil {
				return firstErr(interrupted(ctx), err)
			}
			return interrupted(ctx)
		}
	case Checker:
		out.Check = func() (sequencer.Status, error) {
			if err := interrupted(ctx); err != nil {
				return sequencer.Unknown, err
			}
			status, err := s.Check(ctx, sctx)
			if ierr := interrupted(ctx); ierr != nil {
				return sequencer.Unknown, ierr
			}
			return status, err
		}
	default:
		return sequencer.Step{}, fmt.Errorf("step %q neither checks nor performs", step.Name())
	}
	return out, nil
}

// interrupted reports a cancelled ctx as a KindInterrupted error.
func interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return sequencer.Errorf(sequencer.KindInterrupted, "interrupted: %w", err)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
