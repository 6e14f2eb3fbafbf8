// Package console writes check reports with styled status labels.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes report lines to an output stream.
type Printer struct {
	w     io.Writer
	ok    lipgloss.Style
	fail  lipgloss.Style
	muted lipgloss.Style
}

// New creates a Printer for w. Colors are only emitted when w is a
// terminal and noColor is false.
func New(w io.Writer, noColor bool) *Printer {
	p := &Printer{w: w}
	if noColor {
		return p
	}
	r := lipgloss.NewRenderer(w)
	p.ok = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}).Bold(true)
	p.fail = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}).Bold(true)
	p.muted = r.NewStyle().Faint(true)
	return p
}

// Writer returns the underlying stream.
func (p *Printer) Writer() io.Writer { return p.w }

// OK returns the styled success label.
func (p *Printer) OK() string { return p.ok.Render("OK") }

// Error returns the styled failure label.
func (p *Printer) Error() string { return p.fail.Render("ERROR") }

// Muted renders s de-emphasized.
func (p *Printer) Muted(s string) string { return p.muted.Render(s) }

// Printf writes a formatted line fragment.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// Println writes a line.
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.w, args...)
}

// Bullets writes each item as an indented " - " list entry.
func (p *Printer) Bullets(items []string) {
	for _, it := range items {
		fmt.Fprintln(p.w, " -", it)
	}
}
