package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Printer writes check results, coloured when the output supports it.
type Printer struct {
	out *termenv.Output
}

// NewPrinter creates a Printer for w. Colours are disabled unless color is set.
func NewPrinter(w io.Writer, color bool) *Printer {
	profile := termenv.Ascii
	if color {
		profile = termenv.ColorProfile()
	}
	return &Printer{out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

// OK reports a successful check.
func (p *Printer) OK(label, detail string) {
	mark := p.out.String("✔ ok").Foreground(p.out.Color("#22c55e")).Bold()
	fmt.Fprintf(p.out, "%s  %s  %s\n", mark, label, detail)
}

// Fail reports a failed check.
func (p *Printer) Fail(label, kind string, err error) {
	mark := p.out.String("✘ fail").Foreground(p.out.Color("#ef4444")).Bold()
	tag := p.out.String("[" + kind + "]").Faint()
	fmt.Fprintf(p.out, "%s  %s  %s %v\n", mark, label, tag, err)
}

// Summary reports the totals of a batch.
func (p *Printer) Summary(passed, failed int) {
	color := "#22c55e"
	if failed > 0 {
		color = "#ef4444"
	}
	line := fmt.Sprintf("%d passed, %d failed", passed, failed)
	fmt.Fprintln(p.out, p.out.String(line).Foreground(p.out.Color(color)))
}
