package steps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/systemstart/bootstrap/pkg/api"
	"github.com/systemstart/bootstrap/pkg/platform"
)

type generateStep struct {
	name       string
	strategies map[platform.OS]api.CommandConfig
}

// NewGenerateStep creates a build-file generator step. The generator to run
// is chosen per platform when the step performs.
func NewGenerateStep(name string, cfg *api.GenerateConfig) (Step, error) {
	strategies := make(map[platform.OS]api.CommandConfig, len(cfg.Platforms))
	for key, cmd := range cfg.Platforms {
		target, err := platform.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", name, err)
		}
		strategies[target] = cmd
	}
	return &generateStep{name: name, strategies: strategies}, nil
}

func (s *generateStep) Name() string { return s.name }

func (s *generateStep) Perform(ctx context.Context, sctx StepContext) error {
	cmd, target, ok := platform.Select(sctx.Platform, s.strategies)
	if !ok {
		slog.Info("no generator for this platform, skipping", "step", s.name, "platform", target)
		return nil
	}

	slog.Info("running generator", "step", s.name, "platform", target, "command", cmd.Command)
	_, err := execute(ctx, sctx, s.name, cmd.Command, cmd.Args...)
	return err
}
