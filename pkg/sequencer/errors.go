package sequencer

import (
	"errors"
	"fmt"
)

// Kind classifies why a step did not succeed.
type Kind int

const (
	KindNone Kind = iota
	KindDependencyMissing
	KindVersionInsufficient
	KindExternalProcessFailed
	KindUnknownProbe
	// KindInterrupted marks a step cut short by cancellation. It halts the
	// run whatever the step's severity.
	KindInterrupted
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindDependencyMissing:
		return "dependency missing"
	case KindVersionInsufficient:
		return "version insufficient"
	case KindExternalProcessFailed:
		return "external process failed"
	case KindUnknownProbe:
		return "unknown probe result"
	case KindInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a classified step failure. Probes return it to describe what they
// found; anything else a probe returns is treated as a fault.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a classified error. The operand of a %w verb becomes Err.
func Errorf(kind Kind, format string, args ...any) *Error {
	wrapped := fmt.Errorf(format, args...)
	return &Error{Kind: kind, Msg: wrapped.Error(), Err: errors.Unwrap(wrapped)}
}

// KindOf returns the kind carried by err, or fallback if err is unclassified.
func KindOf(err error, fallback Kind) Kind {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Kind
	}
	return fallback
}
