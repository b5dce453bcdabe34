package sequencer

import (
	"fmt"
	"strings"
)

// Severity decides whether a failing step halts the run.
type Severity int

const (
	Required Severity = iota
	Advisory
)

func (s Severity) String() string {
	switch s {
	case Required:
		return "required"
	case Advisory:
		return "advisory"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity maps a manifest value to a Severity. An empty string is Required.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "", "required":
		return Required, nil
	case "advisory":
		return Advisory, nil
	default:
		return Required, fmt.Errorf("unknown severity %q", s)
	}
}

// Status is the tri-state result of a probe.
type Status int

const (
	Satisfied Status = iota
	Missing
	Unknown
)

func (s Status) String() string {
	switch s {
	case Satisfied:
		return "satisfied"
	case Missing:
		return "missing"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Probe inspects the environment without changing it.
type Probe func() (Status, error)

// Action performs a setup operation, usually by running an external process.
type Action func() error

// Step is one entry of a bootstrap sequence. A step with an Action is a
// perform step and its Check is ignored; otherwise Check is required.
type Step struct {
	Name        string
	Severity    Severity
	Check       Probe
	Action      Action
	Remediation string
	// Announce is printed before the action runs.
	Announce string
}

// Performs reports whether the step runs an action rather than a probe.
func (s Step) Performs() bool {
	return s.Action != nil
}

func (s Step) announcement() string {
	if s.Announce != "" {
		return s.Announce
	}
	return fmt.Sprintf("Running %s...", s.Name)
}
