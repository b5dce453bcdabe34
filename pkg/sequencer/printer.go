package sequencer

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// printer writes the human-facing progress of a run.
type printer struct {
	out  io.Writer
	ok   *color.Color
	fail *color.Color
	warn *color.Color
	info *color.Color
}

func newPrinter(out io.Writer) *printer {
	return &printer{
		out:  out,
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow),
		info: color.New(color.FgCyan),
	}
}

func (p *printer) announce(text string) {
	_, _ = p.info.Fprintf(p.out, "\n%s\n", text)
}

func (p *printer) entry(e Entry) {
	switch {
	case !e.Failed():
		_, _ = p.ok.Fprintf(p.out, "✓ %s\n", e.Step)
	case e.Kind == KindInterrupted:
		_, _ = p.fail.Fprintf(p.out, "✗ %s: interrupted\n", e.Step)
	case e.Severity == Required:
		_, _ = p.fail.Fprintf(p.out, "✗ %s: %s\n", e.Step, e.Remediation)
	default:
		_, _ = p.warn.Fprintf(p.out, "! %s (%s): %s\n", e.Step, e.Status, e.Remediation)
	}
}

func (p *printer) summary(r *Report) {
	if r.Halted() {
		last := r.entries[len(r.entries)-1]
		if last.Kind == KindInterrupted {
			_, _ = p.fail.Fprintf(p.out, "\nSetup interrupted at %s.\n", last.Step)
			return
		}
		_, _ = p.fail.Fprintf(p.out, "\nSetup halted at %s.\n", last.Step)
		return
	}
	if n := len(r.Failures()); n > 0 {
		_, _ = p.warn.Fprintf(p.out, "\nSetup completed with %d warning(s).\n", n)
		return
	}
	_, _ = fmt.Fprint(p.out, "\nSetup completed!\n")
}
