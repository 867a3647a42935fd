package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/SeyhmusGuler/SCIRun/internal/engine"
)

// palette holds the styles for one output stream. The renderer inspects the
// writer, so output captured in a buffer carries no escape codes.
type palette struct {
	header  lipgloss.Style
	group   lipgloss.Style
	module  lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	unicode bool
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	return palette{
		header:  r.NewStyle().Bold(true).Underline(true),
		group:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		module:  r.NewStyle().Foreground(lipgloss.Color("252")),
		muted:   r.NewStyle().Faint(true),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		failure: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		unicode: supportsUnicode(w),
	}
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func (p palette) status(s engine.Status) string {
	switch s {
	case engine.StatusSucceeded:
		if p.unicode {
			return p.success.Render("✓ succeeded")
		}
		return p.success.Render("[ok] succeeded")
	case engine.StatusFailed:
		if p.unicode {
			return p.failure.Render("✗ failed")
		}
		return p.failure.Render("[x] failed")
	default:
		if p.unicode {
			return p.muted.Render("○ skipped")
		}
		return p.muted.Render("[-] skipped")
	}
}
