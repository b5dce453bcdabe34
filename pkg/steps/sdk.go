package steps

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/systemstart/bootstrap/pkg/api"
	"github.com/systemstart/bootstrap/pkg/sequencer"
)

type sdkStep struct {
	name string
	cfg  *api.SDKConfig
}

// NewSDKStep creates a probe for an SDK located through an environment variable.
func NewSDKStep(name string, cfg *api.SDKConfig) Step {
	return &sdkStep{name: name, cfg: cfg}
}

func (s *sdkStep) Name() string { return s.name }

func (s *sdkStep) Check(ctx context.Context, sctx StepContext) (sequencer.Status, error) {
	root := sctx.Getenv(s.cfg.EnvVar)
	if root == "" {
		return sequencer.Missing, sequencer.Errorf(sequencer.KindDependencyMissing, "%s is not set", s.cfg.EnvVar)
	}

	st, err := os.Stat(root)
	if err != nil || !st.IsDir() {
		return sequencer.Missing, sequencer.Errorf(sequencer.KindDependencyMissing, "%s points at %s, which is not a directory", s.cfg.EnvVar, root)
	}

	if s.cfg.MinVersion == "" {
		return sequencer.Satisfied, nil
	}

	found, err := s.version(ctx, sctx, root)
	if err != nil {
		return sequencer.Unknown, err
	}
	slog.Debug("sdk version", "step", s.name, "root", root, "version", found.String())

	if err := requireVersion(s.cfg.EnvVar, found, s.cfg.MinVersion); err != nil {
		return sequencer.Missing, err
	}
	return sequencer.Satisfied, nil
}

func (s *sdkStep) version(ctx context.Context, sctx StepContext, root string) (*semver.Version, error) {
	source := root
	if vc := s.cfg.VersionCommand; vc != nil {
		res, err := execute(ctx, sctx, s.name, vc.Command, vc.Args...)
		if err != nil {
			return nil, sequencer.Errorf(sequencer.KindUnknownProbe, "querying SDK version: %w", err)
		}
		source = res.Stdout
	} else if v, ok := extractVersion(filepath.Base(root)); ok {
		return v, nil
	}

	v, ok := extractVersion(source)
	if !ok {
		return nil, sequencer.Errorf(sequencer.KindUnknownProbe, "cannot determine SDK version from %q", strings.TrimSpace(source))
	}
	return v, nil
}
