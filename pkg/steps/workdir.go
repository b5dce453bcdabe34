package steps

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/systemstart/bootstrap/pkg/api"
	"github.com/systemstart/bootstrap/pkg/sequencer"
)

type workdirStep struct {
	name string
	cfg  *api.WorkdirConfig
}

// NewWorkdirStep creates a step that moves the process into the directory the
// following steps expect to run in.
func NewWorkdirStep(name string, cfg *api.WorkdirConfig) Step {
	return &workdirStep{name: name, cfg: cfg}
}

func (s *workdirStep) Name() string { return s.name }

func (s *workdirStep) Perform(ctx context.Context, sctx StepContext) error {
	dir, err := s.target(ctx, sctx)
	if err != nil {
		return err
	}

	if err := sctx.Chdir(dir); err != nil {
		return sequencer.Errorf(sequencer.KindDependencyMissing, "changing directory to %s: %w", dir, err)
	}
	slog.Info("working directory changed", "step", s.name, "dir", dir)
	return nil
}

func (s *workdirStep) target(ctx context.Context, sctx StepContext) (string, error) {
	if s.cfg.GitRoot {
		res, err := execute(ctx, sctx, s.name, "git", "rev-parse", "--show-toplevel")
		if err != nil {
			return "", fmt.Errorf("locating repository root: %w", err)
		}
		return filepath.FromSlash(strings.TrimSpace(res.Stdout)), nil
	}

	if filepath.IsAbs(s.cfg.Path) {
		return s.cfg.Path, nil
	}
	return filepath.Join(sctx.Dir, s.cfg.Path), nil
}
