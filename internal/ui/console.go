// Package ui renders turbomigrate's terminal output. Interactive prompts
// live in the prompt subpackage; Console covers everything printed without
// waiting for input.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type colorFunc func(a ...interface{}) string

// Console writes styled user-facing messages to a single writer, normally
// stderr, keeping stdout clean for tool output.
type Console struct {
	out    io.Writer
	yellow colorFunc
	green  colorFunc
	red    colorFunc
	dim    colorFunc
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:    out,
		yellow: color.New(color.FgYellow).SprintFunc(),
		green:  color.New(color.FgGreen).SprintFunc(),
		red:    color.New(color.FgRed).SprintFunc(),
		dim:    color.New(color.Faint).SprintFunc(),
	}
}

// Infof prints an informational line.
func (c *Console) Infof(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Warnf prints a non-fatal warning.
func (c *Console) Warnf(format string, args ...any) {
	fmt.Fprintf(c.out, "%s %s\n", c.yellow("WARN"), fmt.Sprintf(format, args...))
}

// Successf prints a completion line.
func (c *Console) Successf(format string, args ...any) {
	fmt.Fprintf(c.out, "%s %s\n", c.green("OK"), fmt.Sprintf(format, args...))
}

// Errorf prints a fatal failure line.
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintf(c.out, "%s %s\n", c.red("ERROR"), fmt.Sprintf(format, args...))
}

// Noticef prints a de-emphasized status line, e.g. the cancellation notice.
func (c *Console) Noticef(format string, args ...any) {
	fmt.Fprintf(c.out, "%s\n", c.dim(fmt.Sprintf(format, args...)))
}
