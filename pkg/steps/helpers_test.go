package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/systemstart/bootstrap/pkg/command"
	"github.com/systemstart/bootstrap/pkg/platform"
)

// writeTestFile writes content to a file in dir, failing the test on error.
func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// fakeRunner answers commands from a table keyed by "name arg1 arg2".
// Unlisted commands succeed with empty output.
type fakeRunner struct {
	missing map[string]bool
	results map[string]command.Result
	errs    map[string]error
	calls   []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		missing: map[string]bool{},
		results: map[string]command.Result{},
		errs:    map[string]error{},
	}
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", fmt.Errorf("%w: %s", command.ErrNotFound, name)
	}
	return "/usr/bin/" + filepath.Base(name), nil
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (command.Result, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	if f.missing[name] {
		return command.Result{}, fmt.Errorf("%w: %s", command.ErrNotFound, name)
	}
	if err, ok := f.errs[key]; ok {
		return command.Result{}, err
	}
	return f.results[key], nil
}

func testStepContext(runner command.Runner) StepContext {
	return StepContext{
		Dir:          "/project",
		TemplateData: map[string]any{},
		Runner:       runner,
		Platform:     platform.Fixed(platform.Linux),
		Getenv:       func(string) string { return "" },
		Chdir:        func(string) error { return nil },
	}
}
