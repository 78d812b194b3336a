package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Printer writes validation outcomes, one line per document.
type Printer struct {
	w       io.Writer
	profile termenv.Profile
}

// NewPrinter returns a Printer writing to w. Without color the output is plain ASCII.
func NewPrinter(w io.Writer, color bool) *Printer {
	p := termenv.Ascii
	if color {
		p = termenv.ColorProfile()
	}
	return &Printer{w: w, profile: p}
}

// Pass reports a document that conforms.
func (p *Printer) Pass(label string) {
	fmt.Fprintf(p.w, "%s %s\n", p.badge("PASS", "#22c55e"), label)
}

// Fail reports a document that does not conform.
func (p *Printer) Fail(label string) {
	fmt.Fprintf(p.w, "%s %s\n", p.badge("FAIL", "#ef4444"), label)
}

// Error reports a document that could not be checked.
func (p *Printer) Error(label string, err error) {
	fmt.Fprintf(p.w, "%s %s: %v\n", p.badge("ERR ", "#f59e0b"), label, err)
}

// Summary prints the totals line.
func (p *Printer) Summary(total, failed int) {
	line := fmt.Sprintf("%d passed, %d failed", total-failed, failed)
	s := p.profile.String(line)
	if failed > 0 {
		s = s.Foreground(p.profile.Color("#ef4444"))
	} else {
		s = s.Foreground(p.profile.Color("#22c55e"))
	}
	fmt.Fprintln(p.w, s.Bold())
}

func (p *Printer) badge(text, hex string) termenv.Style {
	return p.profile.String(text).Foreground(p.profile.Color(hex)).Bold()
}
