package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/pdxkit/go-pdxscript/diag"
)

type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(cfg *MainConfig, cc *cli.Context) *printer {
	p := &printer{w: cc.Out}
	switch {
	case cfg.Color:
		p.color = true
	case cfg.NoColor:
	default:
		if f, ok := cc.Out.(*os.File); ok {
			p.color = isatty.IsTerminal(f.Fd())
		}
	}
	return p
}

var severityColors = map[diag.Severity]*color.Color{
	diag.Error:       color.New(color.FgRed, color.Bold),
	diag.Warning:     color.New(color.FgYellow),
	diag.Information: color.New(color.FgCyan),
	diag.Hint:        color.New(color.Faint),
}

func severityName(s diag.Severity) string {
	switch s {
	case diag.Error:
		return "error"
	case diag.Warning:
		return "warning"
	case diag.Information:
		return "info"
	case diag.Hint:
		return "hint"
	}
	return "unknown"
}

// Positions print 1-based even though they are stored 0-based.
func (p *printer) diagnostic(file string, d diag.Diagnostic) {
	label := severityName(d.Severity)
	if p.color {
		if c := severityColors[d.Severity]; c != nil {
			label = c.Sprint(label)
		}
	}
	fmt.Fprintf(p.w, "%s:%d:%d: %s[%s]: %s\n",
		file, d.Range.Start.Line+1, d.Range.Start.Character+1, label, d.Code, d.Message)
}

func (p *printer) summary(files, nErr, nWarn int) {
	if nErr == 0 && nWarn == 0 {
		fmt.Fprintf(p.w, "%d file(s) ok\n", files)
		return
	}
	fmt.Fprintf(p.w, "%d file(s): %d error(s), %d warning(s)\n", files, nErr, nWarn)
}
