// Package sequencer runs ordered bootstrap steps and reports what happened.
//
// Steps run one at a time in declaration order. A required step that fails
// halts the run; an advisory failure is reported and the run continues.
// The sequencer imposes no timeout: an action blocks until the process it
// starts exits.
package sequencer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// Sequencer executes step lists. It holds no state between runs.
type Sequencer struct {
	out    io.Writer
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithOutput sets where progress lines are printed (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(s *Sequencer) { s.out = w }
}

// WithLogger sets the structured logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(s *Sequencer) { s.logger = l }
}

// WithClock replaces time.Now for elapsed-time measurement.
func WithClock(now func() time.Time) Option {
	return func(s *Sequencer) { s.now = now }
}

// New creates a Sequencer.
func New(opts ...Option) *Sequencer {
	s := &Sequencer{
		out:    os.Stdout,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes steps with a default Sequencer.
func Run(steps []Step) (*Report, int) {
	return New().Run(steps)
}

// Run executes steps in order and returns the report and the process exit code.
// It never panics on behalf of a step.
func (s *Sequencer) Run(steps []Step) (*Report, int) {
	report := &Report{id: uuid.NewString(), state: StateNotStarted}
	log := s.logger.With("run", report.id)
	p := newPrinter(s.out)

	machine, err := newRunMachine()
	if err != nil {
		log.Error("run state machine unavailable", "error", err)
	}
	track := func(event string, local State) {
		if machine != nil {
			machine.send(event)
			report.state = machine.state()
			return
		}
		report.state = local
	}
	if machine != nil {
		defer machine.stop()
	}

	report.started = s.now()
	track(eventStart, StateRunning)

	if len(steps) == 0 {
		log.Warn("no steps to run")
	}

	for _, step := range steps {
		entry := s.attempt(step, p)
		report.entries = append(report.entries, entry)
		p.entry(entry)
		s.logEntry(log, entry)

		if entry.Kind == KindInterrupted {
			report.finished = s.now()
			track(eventHalt, StateHalted)
			log.Warn("run interrupted, halting", "step", step.Name)
			p.summary(report)
			return report, report.ExitCode()
		}
		if entry.Failed() && step.Severity == Required {
			report.finished = s.now()
			track(eventHalt, StateHalted)
			log.Error("required step failed, halting", "step", step.Name, "status", entry.Status, "kind", entry.Kind)
			p.summary(report)
			return report, report.ExitCode()
		}
	}

	report.finished = s.now()
	track(eventFinish, StateCompleted)
	log.Info("run completed", "steps", len(report.entries), "warnings", len(report.Failures()), "duration", report.Duration())
	p.summary(report)
	return report, report.ExitCode()
}

func (s *Sequencer) attempt(step Step, p *printer) Entry {
	start := s.now()
	var entry Entry
	if step.Performs() {
		p.announce(step.announcement())
		entry = perform(step)
	} else {
		entry = verify(step)
	}
	entry.Step = step.Name
	entry.Severity = step.Severity
	entry.Elapsed = s.now().Sub(start)
	return entry
}

func (s *Sequencer) logEntry(log *slog.Logger, e Entry) {
	attrs := []any{"step", e.Step, "severity", e.Severity, "status", e.Status, "elapsed", e.Elapsed}
	switch {
	case !e.Failed():
		log.Debug("step satisfied", attrs...)
	case e.Severity == Advisory:
		log.Warn("advisory step failed", append(attrs, "kind", e.Kind, "detail", e.Detail)...)
	default:
		log.Error("step failed", append(attrs, "kind", e.Kind, "detail", e.Detail)...)
	}
}

func verify(step Step) Entry {
	if step.Check == nil {
		return faultEntry(fmt.Errorf("step %q has neither a check nor an action", step.Name))
	}

	status, err := guard(func() (Status, error) { return step.Check() })
	if err != nil {
		var diag *Error
		if !errors.As(err, &diag) {
			return faultEntry(err)
		}
		if status == Satisfied {
			status = Missing
		}
		return Entry{
			Status:      status,
			Kind:        diag.Kind,
			Detail:      diag.Error(),
			Remediation: firstNonEmpty(step.Remediation, diag.Error()),
		}
	}

	switch status {
	case Satisfied:
		return Entry{Status: Satisfied}
	case Unknown:
		return Entry{Status: Unknown, Kind: KindUnknownProbe, Remediation: firstNonEmpty(step.Remediation, "could not determine status")}
	default:
		return Entry{Status: Missing, Kind: KindDependencyMissing, Remediation: step.Remediation}
	}
}

func perform(step Step) Entry {
	_, err := guard(func() (Status, error) { return Satisfied, step.Action() })
	if err == nil {
		return Entry{Status: Satisfied}
	}
	var fault *panicError
	if errors.As(err, &fault) {
		return faultEntry(err)
	}
	return Entry{
		Status:      Missing,
		Kind:        KindOf(err, KindExternalProcessFailed),
		Detail:      err.Error(),
		Remediation: firstNonEmpty(step.Remediation, err.Error()),
	}
}

func faultEntry(err error) Entry {
	return Entry{
		Status:      Missing,
		Kind:        KindOf(err, KindDependencyMissing),
		Detail:      err.Error(),
		Remediation: err.Error(),
	}
}

type panicError struct {
	value any
}

func (e *panicError) Error() string { return fmt.Sprint(e.value) }

// guard converts a panic in fn into an error.
func guard(fn func() (Status, error)) (status Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			status, err = Missing, &panicError{value: r}
		}
	}()
	return fn()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
