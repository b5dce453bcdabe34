package steps

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/systemstart/bootstrap/pkg/api"
	"github.com/systemstart/bootstrap/pkg/sequencer"
)

type filesStep struct {
	name string
	cfg  *api.FilesConfig
}

// NewFilesStep creates a probe that requires every include pattern to match.
// A relative root is resolved against the manifest directory.
func NewFilesStep(name string, cfg *api.FilesConfig) Step {
	return &filesStep{name: name, cfg: cfg}
}

func (s *filesStep) Name() string { return s.name }

func (s *filesStep) Check(_ context.Context, sctx StepContext) (sequencer.Status, error) {
	root := s.cfg.Root
	if !filepath.IsAbs(root) {
		root = filepath.Join(sctx.Dir, root)
	}

	st, err := os.Stat(root)
	if err != nil || !st.IsDir() {
		slog.Debug("files root not found", "step", s.name, "root", root, "error", err)
		return sequencer.Unknown, sequencer.Errorf(sequencer.KindUnknownProbe, "directory %s does not exist", filepath.Clean(root))
	}

	fsys := os.DirFS(root)
	var missing []string
	for _, pattern := range s.cfg.Include {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return sequencer.Unknown, sequencer.Errorf(sequencer.KindUnknownProbe, "glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			missing = append(missing, pattern)
			continue
		}
		slog.Debug("files matched", "step", s.name, "pattern", pattern, "count", len(matches))
	}

	if len(missing) > 0 {
		return sequencer.Missing, sequencer.Errorf(sequencer.KindDependencyMissing, "no files match %s in %s",
			strings.Join(missing, ", "), filepath.Clean(root))
	}
	return sequencer.Satisfied, nil
}
