package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")  // teal: titles, spinner, selection
	colorOK     = lipgloss.Color("35")  // green: success, cache hits
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorCmd    = lipgloss.Color("75")  // light blue: suggested commands
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleMuted  = lipgloss.NewStyle().Foreground(colorMuted)
	styleValue  = lipgloss.NewStyle().Foreground(colorValue)
	styleLabel  = lipgloss.NewStyle().Foreground(colorLabel)
	styleCmd    = lipgloss.NewStyle().Foreground(colorCmd)
	styleAccent = lipgloss.NewStyle().Foreground(colorAccent)
)

// statusKind selects the icon and color of a status line.
type statusKind int

const (
	statusOK statusKind = iota
	statusFail
	statusWarn
	statusInfo
)

var statusIcons = map[statusKind]struct {
	icon  string
	style lipgloss.Style
}{
	statusOK:   {"✓", lipgloss.NewStyle().Foreground(colorOK)},
	statusFail: {"✗", lipgloss.NewStyle().Foreground(colorFail)},
	statusWarn: {"!", lipgloss.NewStyle().Foreground(colorWarn)},
	statusInfo: {"›", lipgloss.NewStyle().Foreground(colorLabel)},
}

// =============================================================================
// Printer
// =============================================================================

// printer writes the human-facing report of a command. Logs go to the
// logger; printer output is what the user reads after a command finishes.
type printer struct {
	w io.Writer
}

func (p printer) status(kind statusKind, format string, args ...any) {
	s := statusIcons[kind]
	msg := fmt.Sprintf(format, args...)
	if kind == statusWarn {
		msg = s.style.Render(msg)
	}
	fmt.Fprintln(p.w, s.style.Render(s.icon)+" "+msg)
}

func (p printer) success(format string, args ...any) { p.status(statusOK, format, args...) }
func (p printer) fail(format string, args ...any)    { p.status(statusFail, format, args...) }
func (p printer) warn(format string, args ...any)    { p.status(statusWarn, format, args...) }
func (p printer) info(format string, args ...any)    { p.status(statusInfo, format, args...) }

// detail prints an indented, muted line.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+styleMuted.Render(fmt.Sprintf(format, args...)))
}

// file prints a written artifact with its size.
func (p printer) file(path string, size int) {
	fmt.Fprintf(p.w, "  %s %s %s\n", styleMuted.Render("→"), styleValue.Render(path), styleMuted.Render(byteSize(size)))
}

// field prints a labeled value in a fixed-width column.
func (p printer) field(key, value string) {
	fmt.Fprintln(p.w, styleLabel.Width(12).Render(key)+" "+styleValue.Render(value))
}

// record prints the fields of r in key order.
func (p printer) record(r dataset.Record) {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		p.field(k, dataset.NewValue(r[k]).String())
	}
}

// summary prints the one-line statistics of a pipeline run, e.g.
// "3 records · 41 primitives · cached".
func (p printer) summary(r *pipeline.Result) {
	var parts []string
	if r.Stats.Records > 0 {
		parts = append(parts, styleMuted.Render(fmt.Sprintf("%d records", r.Stats.Records)))
	}
	if r.Stats.Primitives > 0 {
		parts = append(parts, styleMuted.Render(fmt.Sprintf("%d primitives", r.Stats.Primitives)))
	}
	if r.CacheInfo.RenderHit {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorOK).Render("cached"))
	} else {
		parts = append(parts, styleLabel.Render("fresh"))
	}
	fmt.Fprintln(p.w, "  "+strings.Join(parts, styleMuted.Render(" · ")))
}

// next suggests a follow-up command.
func (p printer) next(description, cmd string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, styleMuted.Render(description+":")+" "+styleCmd.Render(cmd))
}

// byteSize formats n as a short human-readable size.
func byteSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f kB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
