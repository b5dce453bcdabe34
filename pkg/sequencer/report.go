package sequencer

import (
	"slices"
	"time"
)

// Entry records one attempted step.
type Entry struct {
	Step     string
	Severity Severity
	Status   Status
	Kind     Kind
	// Remediation is the text printed for a failed step.
	Remediation string
	// Detail carries what a probe reported beyond its status.
	Detail  string
	Elapsed time.Duration
}

// Failed reports whether the step did not reach Satisfied.
func (e Entry) Failed() bool {
	return e.Status != Satisfied
}

// Report is the ordered log of one run. It is not modified after Run returns.
type Report struct {
	id       string
	entries  []Entry
	state    State
	started  time.Time
	finished time.Time
}

// ID is the run identifier also used in log records.
func (r *Report) ID() string { return r.id }

// Entries returns a copy of the attempted steps in execution order.
func (r *Report) Entries() []Entry { return slices.Clone(r.entries) }

// Len is the number of attempted steps.
func (r *Report) Len() int { return len(r.entries) }

// State is the terminal state of the run.
func (r *Report) State() State { return r.state }

// Halted reports whether a required step stopped the run.
func (r *Report) Halted() bool { return r.state == StateHalted }

// Duration is the wall time between the first and the last step.
func (r *Report) Duration() time.Duration { return r.finished.Sub(r.started) }

// ExitCode maps the run outcome to a process exit status.
func (r *Report) ExitCode() int {
	if r.Halted() {
		return 1
	}
	return 0
}

// Statuses lists the status of every entry, in order.
func (r *Report) Statuses() []Status {
	out := make([]Status, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Status
	}
	return out
}

// Failures returns the entries that did not reach Satisfied.
func (r *Report) Failures() []Entry {
	var out []Entry
	for _, e := range r.entries {
		if e.Failed() {
			out = append(out, e)
		}
	}
	return out
}
