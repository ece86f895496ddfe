// Package prompt implements the interactive questions turbomigrate asks:
// pick-one selection lists and binary confirmations. Prompts render inline
// rather than on the alternate screen and cancel cleanly on esc or ctrl+c.
package prompt

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user backs out of a prompt. Callers treat
// it as terminal for the whole run, never as an empty choice.
var ErrCancelled = errors.New("cancelled by user")

// ErrNotInteractive is returned when a prompt would be needed but no terminal
// is attached.
var ErrNotInteractive = errors.New("interactive input required but no terminal is attached")

// Prompter runs prompts on the controlling terminal.
type Prompter struct {
	interactive bool
}

// New creates a Prompter. interactive reports whether a terminal is attached;
// when false, every prompt fails with ErrNotInteractive instead of blocking
// on input that will never come.
func New(interactive bool) *Prompter {
	return &Prompter{interactive: interactive}
}

// Select presents options under a title and returns the chosen index.
// initial is the index highlighted first.
func (p *Prompter) Select(ctx context.Context, title string, options []string, initial int) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("select %q: no options", title)
	}
	if !p.interactive {
		return 0, fmt.Errorf("%s: %w", title, ErrNotInteractive)
	}

	final, err := tea.NewProgram(newSelectModel(title, options, initial), tea.WithContext(ctx)).Run()
	if err != nil {
		if ctx.Err() != nil {
			return 0, ErrCancelled
		}
		return 0, fmt.Errorf("run prompt: %w", err)
	}
	m := final.(selectModel)
	if m.cancelled {
		return 0, ErrCancelled
	}
	return m.cursor, nil
}

// Confirm asks a yes/no question rendered as two buttons and returns whether
// the affirmative one was chosen.
func (p *Prompter) Confirm(ctx context.Context, question, affirm, deny string) (bool, error) {
	if !p.interactive {
		return false, fmt.Errorf("%s: %w", question, ErrNotInteractive)
	}

	final, err := tea.NewProgram(newConfirmModel(question, affirm, deny), tea.WithContext(ctx)).Run()
	if err != nil {
		if ctx.Err() != nil {
			return false, ErrCancelled
		}
		return false, fmt.Errorf("run prompt: %w", err)
	}
	m := final.(confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.affirmed(), nil
}
