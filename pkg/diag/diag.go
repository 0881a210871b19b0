// Package diag implements the structured diagnostic sidechannel threaded
// through the compilation pipeline (spec §4.8): front-ends, passes and
// lowering append Reports here instead of returning Go errors, so that a
// single compilation run can surface every problem it finds rather than
// stopping at the first one.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/chipforge/drivergen/pkg/source"
)

// Severity classifies a Report.
type Severity int

// Severity levels, most to least severe.
const (
	Error Severity = iota
	Warning
	Advice
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Advice:
		return "advice"
	default:
		return "unknown"
	}
}

// Label annotates a span within a Report's snippet with a short message.
type Label struct {
	Span    source.Span
	Message string
}

// Report is a single structured diagnostic: a severity, a message, the
// source file and span(s) it concerns, and optional help text.
type Report struct {
	Severity Severity
	Code     string
	Message  string
	File     *source.File
	Labels   []Label
	Help     string
}

// Diagnostics is an append-only collection of Reports accumulated across a
// compilation run. Passes only ever call Add; nothing reads it back out
// during the run (spec §5).
type Diagnostics struct {
	reports []Report
}

// New constructs an empty diagnostics collection.
func New() *Diagnostics {
	return &Diagnostics{}
}

// Add appends a report to the collection.
func (d *Diagnostics) Add(r Report) {
	d.reports = append(d.reports, r)
}

// Errorf is a convenience for appending a simple Error-severity report with
// no source context, for conditions that precede front-end parsing (e.g. an
// unrecognised format token).
func (d *Diagnostics) Errorf(code, format string, args ...any) {
	d.Add(Report{Severity: Error, Code: code, Message: fmt.Sprintf(format, args...)})
}

// Reports returns all accumulated reports, in the order they were added.
func (d *Diagnostics) Reports() []Report {
	return d.reports
}

// HasError reports whether any accumulated report is Error severity. The
// pass driver (spec §4.4) checks this after every pass and aborts the
// pipeline if true.
func (d *Diagnostics) HasError() bool {
	for _, r := range d.reports {
		if r.Severity == Error {
			return true
		}
	}

	return false
}

// Len returns the number of accumulated reports.
func (d *Diagnostics) Len() int {
	return len(d.reports)
}

// PrintTo renders all reports to w. Colour is used only when color.NoColor
// is false (fatih/color auto-detects a TTY; callers may force it off via
// color.NoColor = true for non-interactive sinks); the framing (file arrow,
// numbered source line, underline) is the same either way. lineWidth
// bounds the width of wrapped message text; 0 disables wrapping.
func (d *Diagnostics) PrintTo(w io.Writer, lineWidth int) error {
	for i, r := range d.reports {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if err := printReport(w, r, lineWidth); err != nil {
			return err
		}
	}

	return nil
}

func printReport(w io.Writer, r Report, lineWidth int) error {
	sev := severityColor(r.Severity).Sprint(r.Severity.String())

	header := fmt.Sprintf("%s", sev)
	if r.Code != "" {
		header = fmt.Sprintf("%s[%s]", header, r.Code)
	}

	if _, err := fmt.Fprintf(w, "%s: %s\n", header, wrap(r.Message, lineWidth)); err != nil {
		return err
	}

	if r.File != nil {
		if _, err := fmt.Fprintf(w, "  --> %s\n", r.File.Name()); err != nil {
			return err
		}

		for _, l := range r.Labels {
			line := r.File.EnclosingLine(l.Span)
			underline := buildUnderline(line, l.Span)

			if _, err := fmt.Fprintf(w, "%4d | %s\n", line.Number(), line.Text()); err != nil {
				return err
			}

			if _, err := fmt.Fprintf(w, "     | %s %s\n", color.YellowString(underline), l.Message); err != nil {
				return err
			}
		}
	}

	if r.Help != "" {
		if _, err := fmt.Fprintf(w, "  = help: %s\n", wrap(r.Help, lineWidth)); err != nil {
			return err
		}
	}

	return nil
}

func buildUnderline(line source.Line, span source.Span) string {
	start := span.Start() - line.Span().Start()
	if start < 0 {
		start = 0
	}

	length := span.Length()
	if length < 1 {
		length = 1
	}

	return strings.Repeat(" ", start) + strings.Repeat("^", length)
}

func severityColor(s Severity) *color.Color {
	switch s {
	case Error:
		return color.New(color.FgRed, color.Bold)
	case Warning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}

// wrap performs simple greedy word-wrapping at lineWidth columns. A width of
// 0 or less disables wrapping entirely.
func wrap(text string, lineWidth int) string {
	if lineWidth <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var b strings.Builder

	lineLen := 0

	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > lineWidth {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}

		b.WriteString(word)
		lineLen += len(word)
	}

	return b.String()
}
