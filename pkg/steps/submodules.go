package steps

import (
	"context"

	"github.com/systemstart/bootstrap/pkg/api"
)

type submodulesStep struct {
	name string
	cfg  *api.SubmodulesConfig
}

// NewSubmodulesStep creates a step that initializes and updates git submodules.
func NewSubmodulesStep(name string, cfg *api.SubmodulesConfig) Step {
	if cfg == nil {
		cfg = &api.SubmodulesConfig{}
	}
	return &submodulesStep{name: name, cfg: cfg}
}

func (s *submodulesStep) Name() string { return s.name }

func (s *submodulesStep) args() []string {
	args := []string{"submodule", "update", "--init"}
	if s.cfg.Recursive == nil || *s.cfg.Recursive {
		args = append(args, "--recursive")
	}
	return args
}

func (s *submodulesStep) Perform(ctx context.Context, sctx StepContext) error {
	_, err := execute(ctx, sctx, s.name, "git", s.args()...)
	return err
}
