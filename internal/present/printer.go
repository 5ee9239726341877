// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package present prints user-facing status lines. Color is a property of
// each Printer; nothing here touches process-wide color settings.
package present

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes status lines to Out and warnings and errors to Err.
type Printer struct {
	Out io.Writer
	Err io.Writer

	ok   *color.Color
	warn *color.Color
	fail *color.Color
}

// New returns a Printer. With noColor set no escape sequences are written;
// otherwise color follows the terminal detection of fatih/color.
func New(out, errOut io.Writer, noColor bool) *Printer {
	p := &Printer{
		Out:  out,
		Err:  errOut,
		ok:   color.New(color.FgGreen, color.Bold),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed, color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{p.ok, p.warn, p.fail} {
			c.DisableColor()
		}
	}
	return p
}

// Success prints a completed-operation line to Out.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.Out, p.ok.Sprintf(format, args...))
}

// Warn prints a warning line to Err.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.Err, p.warn.Sprint("warning: ")+fmt.Sprintf(format, args...))
}

// Error prints err to Err.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.Err, p.fail.Sprint("error: ")+err.Error())
}
