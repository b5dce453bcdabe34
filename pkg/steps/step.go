package steps

import (
	"context"

	"github.com/systemstart/bootstrap/pkg/command"
	"github.com/systemstart/bootstrap/pkg/platform"
	"github.com/systemstart/bootstrap/pkg/sequencer"
)

// StepContext provides the collaborators a step runs against.
type StepContext struct {
	// Dir anchors relative paths of the manifest (its directory).
	Dir          string
	TemplateData map[string]any
	Runner       command.Runner
	Platform     platform.Detector
	Getenv       func(string) string
	Chdir        func(string) error
}

// Step is the interface all bootstrap steps implement. Every step is either
// a Checker or a Performer.
type Step interface {
	Name() string
}

// Checker inspects the environment without changing it.
type Checker interface {
	Step
	Check(ctx context.Context, sctx StepContext) (sequencer.Status, error)
}

// Performer changes the environment, usually by running an external process.
type Performer interface {
	Step
	Perform(ctx context.Context, sctx StepContext) error
}
