// Package diag defines the narrow logging capability the scanner, parser and
// interpreter report through, plus the sinks the CLI and tests plug in.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/arnavsurve/lox/internal/compiler/token"
)

// Category tags a diagnostic with the stage that produced it.
type Category string

const (
	Parser  Category = "Parser"
	Runtime Category = "Runtime"
	Panic   Category = "Panic"
)

// Logger receives program output and structured diagnostics.
type Logger interface {
	// Emit writes one line of general output (print, echo, debug trace).
	Emit(line string)
	// Report records a diagnostic at pos. context is "at 'x'", "at end" or "".
	Report(pos token.Position, cat Category, context, message string)
}

// Format renders a diagnostic as a single human-readable line.
func Format(pos token.Position, cat Category, context, message string) string {
	var out strings.Builder
	fmt.Fprintf(&out, "[%s] %s Error", pos, cat)
	if context != "" {
		out.WriteString(" " + context)
	}
	out.WriteString(": " + message)
	return out.String()
}

// --- Console ---

// Console writes output lines to Out and diagnostics to Err.
type Console struct {
	Out   io.Writer
	Err   io.Writer
	Color bool // ANSI-colour the category tag
}

func NewConsole(out, errOut io.Writer, color bool) *Console {
	return &Console{Out: out, Err: errOut, Color: color}
}

func (c *Console) Emit(line string) {
	fmt.Fprintln(c.Out, line)
}

func (c *Console) Report(pos token.Position, cat Category, context, message string) {
	line := Format(pos, cat, context, message)
	if c.Color {
		line = colorize(cat, line)
	}
	fmt.Fprintln(c.Err, line)
}

func colorize(cat Category, s string) string {
	switch cat {
	case Parser:
		return "\x1b[33m" + s + "\x1b[0m" // yellow
	case Panic:
		return "\x1b[1;31m" + s + "\x1b[0m" // bold red
	default:
		return "\x1b[31m" + s + "\x1b[0m" // red
	}
}

// --- Buffer ---

// Entry is one structured diagnostic captured by a Buffer.
type Entry struct {
	Position token.Position
	Category Category
	Context  string
	Message  string
}

func (e Entry) String() string {
	return Format(e.Position, e.Category, e.Context, e.Message)
}

// Buffer keeps everything in memory. Used by tests and by tooling that needs
// to inspect diagnostics after a run.
type Buffer struct {
	Lines   []string
	Reports []Entry
}

func (b *Buffer) Emit(line string) {
	b.Lines = append(b.Lines, line)
}

func (b *Buffer) Report(pos token.Position, cat Category, context, message string) {
	b.Reports = append(b.Reports, Entry{Position: pos, Category: cat, Context: context, Message: message})
}

// Output joins the emitted lines with newlines.
func (b *Buffer) Output() string {
	return strings.Join(b.Lines, "\n")
}

// Count returns the number of reports in the given category.
func (b *Buffer) Count(cat Category) int {
	n := 0
	for _, e := range b.Reports {
		if e.Category == cat {
			n++
		}
	}
	return n
}

// Reset drops everything recorded so far.
func (b *Buffer) Reset() {
	b.Lines = nil
	b.Reports = nil
}

// Discard drops everything.
type Discard struct{}

func (Discard) Emit(string)                                     {}
func (Discard) Report(token.Position, Category, string, string) {}
