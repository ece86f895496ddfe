// Package shell runs the external commands turbomigrate depends on: node for
// config evaluation and the npx-launched toolchain.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandError reports a failed external command together with anything it
// wrote to stderr, so captured-mode failures stay diagnosable.
type CommandError struct {
	Command string
	Output  string
	Cause   error
}

func (e *CommandError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("command %q failed: %v", e.Command, e.Cause)
	}
	return fmt.Sprintf("command %q failed: %v\n%s", e.Command, e.Cause, strings.TrimRight(e.Output, "\n"))
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}

// Runner executes commands in a working directory.
type Runner struct{}

// NewRunner creates a Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Output runs the command with captured stdio and returns its stdout. Stderr
// is folded into the error on failure.
func (r *Runner) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), &CommandError{
			Command: commandLine(name, args),
			Output:  stderr.String(),
			Cause:   err,
		}
	}
	return stdout.Bytes(), nil
}

// Run runs the command with inherited stdio, letting interactive tools own
// the terminal for their own progress output and prompts.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return &CommandError{Command: commandLine(name, args), Cause: err}
	}
	return nil
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
