package steps

import (
	"context"
	"log/slog"
	"strings"

	"github.com/systemstart/bootstrap/pkg/api"
	"github.com/systemstart/bootstrap/pkg/platform"
	"github.com/systemstart/bootstrap/pkg/sequencer"
)

const pythonVersionScript = "import sys; print('.'.join(map(str, sys.version_info[:3])))"

type pythonStep struct {
	name string
	cfg  *api.PythonConfig
}

// NewPythonStep creates a probe for the python runtime and its packages.
func NewPythonStep(name string, cfg *api.PythonConfig) Step {
	return &pythonStep{name: name, cfg: cfg}
}

func (s *pythonStep) Name() string { return s.name }

func (s *pythonStep) interpreter(sctx StepContext) string {
	if s.cfg.Interpreter != "" {
		return s.cfg.Interpreter
	}
	if sctx.Platform != nil && sctx.Platform.Detect() == platform.Windows {
		return "python"
	}
	return api.DefaultPythonInterpreter
}

func (s *pythonStep) Check(ctx context.Context, sctx StepContext) (sequencer.Status, error) {
	interp := s.interpreter(sctx)
	if _, err := sctx.Runner.LookPath(interp); err != nil {
		slog.Debug("python interpreter not found", "step", s.name, "interpreter", interp, "error", err)
		return sequencer.Missing, sequencer.Errorf(sequencer.KindDependencyMissing, "%s is not installed", interp)
	}

	if s.cfg.MinVersion != "" {
		res, err := sctx.Runner.Run(ctx, interp, "-c", pythonVersionScript)
		if err != nil || !res.Success() {
			return sequencer.Unknown, sequencer.Errorf(sequencer.KindUnknownProbe, "could not query the %s version", interp)
		}
		found, ok := extractVersion(res.Stdout)
		if !ok {
			return sequencer.Unknown, sequencer.Errorf(sequencer.KindUnknownProbe, "unexpected version output %q", strings.TrimSpace(res.Stdout))
		}
		if err := requireVersion("python", found, s.cfg.MinVersion); err != nil {
			return sequencer.Missing, err
		}
		slog.Debug("python version", "step", s.name, "version", found.String())
	}

	if len(s.cfg.Packages) == 0 {
		return sequencer.Satisfied, nil
	}

	res, err := sctx.Runner.Run(ctx, interp, "-m", "pip", "--version")
	if err != nil {
		return sequencer.Unknown, sequencer.Errorf(sequencer.KindUnknownProbe, "querying pip: %w", err)
	}
	if !res.Success() {
		return sequencer.Missing, sequencer.Errorf(sequencer.KindDependencyMissing, "pip is not available for %s%s", interp, stderrSuffix(res.Stderr))
	}

	var missing []string
	for _, pkg := range s.cfg.Packages {
		res, err := sctx.Runner.Run(ctx, interp, "-m", "pip", "show", pkg)
		if err != nil {
			return sequencer.Unknown, sequencer.Errorf(sequencer.KindUnknownProbe, "querying package %s: %w", pkg, err)
		}
		if !res.Success() {
			missing = append(missing, pkg)
		}
	}
	if len(missing) > 0 {
		return sequencer.Missing, sequencer.Errorf(sequencer.KindDependencyMissing, "missing python packages: %s", strings.Join(missing, ", "))
	}

	return sequencer.Satisfied, nil
}
