package steps

import (
	"context"
	"strings"
	"testing"

	"github.com/systemstart/bootstrap/pkg/api"
	"github.com/systemstart/bootstrap/pkg/command"
	"github.com/systemstart/bootstrap/pkg/platform"
	"github.com/systemstart/bootstrap/pkg/sequencer"
)

const versionKey = "python3 -c " + pythonVersionScript

func TestPythonStep_Check(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(r *fakeRunner)
		cfg        api.PythonConfig
		wantStatus sequencer.Status
		wantKind   sequencer.Kind
		wantDetail string
	}{
		{
			name: "satisfied",
			setup: func(r *fakeRunner) {
				r.results[versionKey] = command.Result{Stdout: "3.11.4\n"}
			},
			cfg:        api.PythonConfig{MinVersion: "3.3.0", Packages: []string{"requests", "fake-useragent"}},
			wantStatus: sequencer.Satisfied,
		},
		{
			name:       "interpreter missing",
			setup:      func(r *fakeRunner) { r.missing["python3"] = true },
			cfg:        api.PythonConfig{},
			wantStatus: sequencer.Missing,
			wantKind:   sequencer.KindDependencyMissing,
			wantDetail: "python3 is not installed",
		},
		{
			name: "version too old",
			setup: func(r *fakeRunner) {
				r.results[versionKey] = command.Result{Stdout: "2.7.18\n"}
			},
			cfg:        api.PythonConfig{MinVersion: "3.3.0"},
			wantStatus: sequencer.Missing,
			wantKind:   sequencer.KindVersionInsufficient,
			wantDetail: "python 2.7.18 is older than the required 3.3.0",
		},
		{
			name: "version query fails",
			setup: func(r *fakeRunner) {
				r.results[versionKey] = command.Result{ExitCode: 1}
			},
			cfg:        api.PythonConfig{MinVersion: "3.3.0"},
			wantStatus: sequencer.Unknown,
			wantKind:   sequencer.KindUnknownProbe,
		},
		{
			name: "pip missing",
			setup: func(r *fakeRunner) {
				r.results["python3 -m pip --version"] = command.Result{ExitCode: 1, Stderr: "/usr/bin/python3: No module named pip"}
			},
			cfg:        api.PythonConfig{Packages: []string{"requests", "fake-useragent"}},
			wantStatus: sequencer.Missing,
			wantKind:   sequencer.KindDependencyMissing,
			wantDetail: "pip is not available for python3: /usr/bin/python3: No module named pip",
		},
		{
			name: "package missing",
			setup: func(r *fakeRunner) {
				r.results["python3 -m pip show fake-useragent"] = command.Result{ExitCode: 1}
			},
			cfg:        api.PythonConfig{Packages: []string{"requests", "fake-useragent"}},
			wantStatus: sequencer.Missing,
			wantKind:   sequencer.KindDependencyMissing,
			wantDetail: "missing python packages: fake-useragent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newFakeRunner()
			tt.setup(runner)
			cfg := tt.cfg
			step := NewPythonStep("runtimeInstalled", &cfg).(Checker)

			status, err := step.Check(context.Background(), testStepContext(runner))

			if status != tt.wantStatus {
				t.Errorf("status = %s, want %s (err %v)", status, tt.wantStatus, err)
			}
			if tt.wantStatus == sequencer.Satisfied {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if got := sequencer.KindOf(err, sequencer.KindNone); got != tt.wantKind {
				t.Errorf("kind = %s, want %s", got, tt.wantKind)
			}
			if tt.wantDetail != "" && (err == nil || !strings.Contains(err.Error(), tt.wantDetail)) {
				t.Errorf("error %v does not contain %q", err, tt.wantDetail)
			}
		})
	}
}

func TestPythonStep_Interpreter(t *testing.T) {
	runner := newFakeRunner()
	sctx := testStepContext(runner)
	sctx.Platform = platform.Fixed(platform.Windows)
	step := NewPythonStep("runtime", &api.PythonConfig{Packages: []string{"requests"}}).(Checker)

	if _, err := step.Check(context.Background(), sctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.calls) != 2 || runner.calls[1] != "python -m pip show requests" {
		t.Errorf("calls = %v", runner.calls)
	}

	runner = newFakeRunner()
	sctx.Runner = runner
	custom := NewPythonStep("runtime", &api.PythonConfig{Interpreter: "python3.12", Packages: []string{"requests"}}).(Checker)
	if _, err := custom.Check(context.Background(), sctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.calls) != 2 || runner.calls[1] != "python3.12 -m pip show requests" {
		t.Errorf("calls = %v", runner.calls)
	}
}

func TestPythonStep_PipMissingSkipsPackages(t *testing.T) {
	runner := newFakeRunner()
	runner.results["python3 -m pip --version"] = command.Result{ExitCode: 1}
	step := NewPythonStep("runtimeInstalled", &api.PythonConfig{Packages: []string{"requests"}}).(Checker)

	if _, err := step.Check(context.Background(), testStepContext(runner)); err == nil {
		t.Fatal("expected an error")
	}
	for _, call := range runner.calls {
		if strings.Contains(call, "pip show") {
			t.Errorf("packages were queried without pip: %v", runner.calls)
		}
	}
}
