// Package console provides the operator-facing reporting layer for maestro.
// Core components report progress and recoverable problems through the
// Reporter interface; the default implementation renders colored panels
// and status lines to stdout.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Reporter is the interface core components use to surface progress and
// recoverable errors to the operator. Implementations must never fail the
// caller; reporting is strictly best-effort.
type Reporter interface {
	// Info prints an informational status line.
	Info(format string, args ...interface{})
	// Warn prints a non-fatal warning.
	Warn(format string, args ...interface{})
	// Error prints a recoverable error.
	Error(format string, args ...interface{})
	// Panel prints a titled, bordered block of text in the given color.
	Panel(title, body string, attr color.Attribute)
}

// Console renders reports to a writer with ANSI colors.
type Console struct {
	out io.Writer
}

// New creates a Console writing to stdout.
func New() *Console {
	return &Console{out: os.Stdout}
}

// NewWithWriter creates a Console writing to the given writer.
func NewWithWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Info prints a status line with a dimmed marker.
func (c *Console) Info(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "%s %s\n", color.CyanString("•"), fmt.Sprintf(format, args...))
}

// Warn prints a yellow warning line.
func (c *Console) Warn(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "%s %s\n", color.YellowString("Warning:"), fmt.Sprintf(format, args...))
}

// Error prints a red error line.
func (c *Console) Error(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "%s %s\n", color.RedString("Error:"), fmt.Sprintf(format, args...))
}

// Panel prints the body between a titled top rule and a bottom rule.
func (c *Console) Panel(title, body string, attr color.Attribute) {
	ruleColor := color.New(attr)
	width := 72

	header := fmt.Sprintf("── %s ", title)
	if pad := width - len([]rune(header)); pad > 0 {
		header += strings.Repeat("─", pad)
	}
	ruleColor.Fprintln(c.out, header)
	fmt.Fprintln(c.out, strings.TrimRight(body, "\n"))
	ruleColor.Fprintln(c.out, strings.Repeat("─", width))
}

// discard is a Reporter that drops everything.
type discard struct{}

func (discard) Info(string, ...interface{})           {}
func (discard) Warn(string, ...interface{})           {}
func (discard) Error(string, ...interface{})          {}
func (discard) Panel(string, string, color.Attribute) {}

// Discard returns a Reporter that silently drops all reports.
func Discard() Reporter {
	return discard{}
}
