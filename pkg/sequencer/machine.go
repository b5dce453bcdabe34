package sequencer

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

const (
	notStartedID = "notStarted"
	runningID    = "running"
	completedID  = "completed"
	haltedID     = "halted"
)

// State is the lifecycle state of a single run.
type State string

const (
	StateNotStarted State = notStartedID
	StateRunning    State = runningID
	StateCompleted  State = completedID
	StateHalted     State = haltedID
)

// Events driving the run machine.
const (
	eventStart  = "START"
	eventFinish = "FINISH"
	eventHalt   = "HALT"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateHalted
}

// runMachine tracks NotStarted -> Running -> {Completed, Halted} for one run.
type runMachine struct {
	interp *statekit.Interpreter[struct{}]
}

func newRunMachine() (*runMachine, error) {
	machine, err := statekit.NewMachine[struct{}]("bootstrap-run").
		WithInitial(notStartedID).
		State(notStartedID).
		On(eventStart).Target(runningID).Done().
		State(runningID).
		On(eventFinish).Target(completedID).
		On(eventHalt).Target(haltedID).Done().
		State(completedID).Done().
		State(haltedID).Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("building run state machine: %w", err)
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return &runMachine{interp: interp}, nil
}

func (m *runMachine) send(event string) {
	m.interp.Send(statekit.Event{Type: statekit.EventType(event)})
}

func (m *runMachine) state() State {
	return State(m.interp.State().Value)
}

func (m *runMachine) stop() {
	m.interp.Stop()
}
