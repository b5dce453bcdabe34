// Package platform detects the host operating system and selects
// per-platform strategies.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// OS identifies an operating system family.
type OS string

const (
	Windows OS = "windows"
	Linux   OS = "linux"
	Darwin  OS = "darwin"
	Unknown OS = "unknown"
)

// Parse maps a manifest key to an OS. "macos" is accepted for Darwin.
func Parse(s string) (OS, error) {
	switch strings.ToLower(s) {
	case "windows":
		return Windows, nil
	case "linux":
		return Linux, nil
	case "darwin", "macos":
		return Darwin, nil
	default:
		return Unknown, fmt.Errorf("unknown platform %q", s)
	}
}

// Detector reports the platform steps should target.
type Detector interface {
	Detect() OS
}

type runtimeDetector struct{}

// Runtime returns a Detector backed by runtime.GOOS.
func Runtime() Detector { return runtimeDetector{} }

func (runtimeDetector) Detect() OS {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "linux":
		return Linux
	case "darwin":
		return Darwin
	default:
		return Unknown
	}
}

// Fixed is a Detector that always reports the same OS.
type Fixed OS

func (f Fixed) Detect() OS { return OS(f) }

// Select picks the strategy registered for the detected OS.
func Select[T any](d Detector, strategies map[OS]T) (T, OS, bool) {
	target := d.Detect()
	s, ok := strategies[target]
	return s, target, ok
}
