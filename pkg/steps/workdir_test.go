package steps

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/systemstart/bootstrap/pkg/api"
	"github.com/systemstart/bootstrap/pkg/command"
	"github.com/systemstart/bootstrap/pkg/sequencer"
)

func TestWorkdirStep_Perform(t *testing.T) {
	abs, err := filepath.Abs(string(filepath.Separator) + "src")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		cfg   api.WorkdirConfig
		setup func(r *fakeRunner)
		want  string
	}{
		{
			name: "relative to manifest",
			cfg:  api.WorkdirConfig{Path: ".."},
			want: filepath.Dir(filepath.FromSlash("/project")),
		},
		{
			name: "empty path is the manifest directory",
			cfg:  api.WorkdirConfig{},
			want: filepath.FromSlash("/project"),
		},
		{
			name: "absolute",
			cfg:  api.WorkdirConfig{Path: abs},
			want: abs,
		},
		{
			name: "git root",
			cfg:  api.WorkdirConfig{GitRoot: true},
			setup: func(r *fakeRunner) {
				r.results["git rev-parse --show-toplevel"] = command.Result{Stdout: "/home/dev/engine\n"}
			},
			want: filepath.FromSlash("/home/dev/engine"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newFakeRunner()
			if tt.setup != nil {
				tt.setup(runner)
			}
			var got string
			sctx := testStepContext(runner)
			sctx.Dir = filepath.FromSlash("/project")
			sctx.Chdir = func(dir string) error { got = dir; return nil }
			cfg := tt.cfg

			if err := NewWorkdirStep("repositoryRoot", &cfg).(Performer).Perform(context.Background(), sctx); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("chdir(%q), want %q", got, tt.want)
			}
		})
	}
}

func TestWorkdirStep_Failures(t *testing.T) {
	t.Run("not a repository", func(t *testing.T) {
		runner := newFakeRunner()
		runner.results["git rev-parse --show-toplevel"] = command.Result{ExitCode: 128, Stderr: "fatal: not a git repository"}

		err := NewWorkdirStep("repositoryRoot", &api.WorkdirConfig{GitRoot: true}).(Performer).
			Perform(context.Background(), testStepContext(runner))

		if sequencer.KindOf(err, sequencer.KindNone) != sequencer.KindExternalProcessFailed {
			t.Fatalf("expected external process failure, got %v", err)
		}
	})

	t.Run("chdir fails", func(t *testing.T) {
		sctx := testStepContext(newFakeRunner())
		sctx.Chdir = func(string) error { return errors.New("no such directory") }

		err := NewWorkdirStep("repositoryRoot", &api.WorkdirConfig{Path: "missing"}).(Performer).
			Perform(context.Background(), sctx)

		if sequencer.KindOf(err, sequencer.KindNone) != sequencer.KindDependencyMissing {
			t.Fatalf("expected dependency missing, got %v", err)
		}
	})
}
