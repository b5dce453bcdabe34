package processing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/systemstart/bootstrap/pkg/api"
	"github.com/systemstart/bootstrap/pkg/command"
	"github.com/systemstart/bootstrap/pkg/platform"
	"github.com/systemstart/bootstrap/pkg/sequencer"
	"github.com/systemstart/bootstrap/pkg/steps"
)

// Options wires the external collaborators of a run. Zero fields fall back to
// the real process environment.
type Options struct {
	Runner   command.Runner
	Platform platform.Detector
	Output   io.Writer
	Logger   *slog.Logger
	Getenv   func(string) string
	Chdir    func(string) error
}

func (o Options) withDefaults() Options {
	if o.Runner == nil {
		o.Runner = command.NewExecRunner()
	}
	if o.Platform == nil {
		o.Platform = platform.Runtime()
	}
	if o.Output == nil {
		o.Output = os.Stdout
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Getenv == nil {
		o.Getenv = os.Getenv
	}
	if o.Chdir == nil {
		o.Chdir = os.Chdir
	}
	return o
}

// BuildSteps turns the manifest into sequencer steps, in declaration order.
func BuildSteps(ctx context.Context, m *api.Manifest, globalContext map[string]any, opts Options) ([]sequencer.Step, error) {
	opts = opts.withDefaults()

	sctx := steps.StepContext{
		Dir:          m.Dir,
		TemplateData: TemplateData(globalContext, m),
		Runner:       opts.Runner,
		Platform:     opts.Platform,
		Getenv:       opts.Getenv,
		Chdir:        opts.Chdir,
	}

	out := make([]sequencer.Step, 0, len(m.Steps))
	for _, cfg := range m.Steps {
		step, err := steps.Build(ctx, cfg, sctx)
		if err != nil {
			return nil, err
		}
		out = append(out, step)
	}
	return out, nil
}

// RunManifest builds the manifest's steps and runs them. The error is only
// set when the manifest cannot be turned into steps; step failures are in
// the report and the exit code.
func RunManifest(ctx context.Context, m *api.Manifest, globalContext map[string]any, opts Options) (*sequencer.Report, int, error) {
	opts = opts.withDefaults()

	built, err := BuildSteps(ctx, m, globalContext, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("building steps: %w", err)
	}

	source := m.FilePath
	if source == "" {
		source = "built-in"
	}
	opts.Logger.Info("running bootstrap", "manifest", source, "steps", len(built), "platform", opts.Platform.Detect())

	seq := sequencer.New(sequencer.WithOutput(opts.Output), sequencer.WithLogger(opts.Logger))
	report, code := seq.Run(built)
	return report, code, nil
}
