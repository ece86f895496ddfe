package toolchain

import (
	"context"

	"github.com/Mechse/turbomigrate/internal/core/target"
)

// Wrangler applies migration artifacts with wrangler d1 execute.
type Wrangler struct {
	runner      Runner
	dir         string
	interactive bool
}

// NewWrangler creates a Wrangler bound to the project directory.
func NewWrangler(runner Runner, dir string, interactive bool) *Wrangler {
	return &Wrangler{runner: runner, dir: dir, interactive: interactive}
}

// Execute applies the target's migration artifact to its database.
func (w *Wrangler) Execute(ctx context.Context, t *target.Target) error {
	args := executeArgs(t)
	if w.interactive {
		return w.runner.Run(ctx, w.dir, "npx", args...)
	}
	_, err := w.runner.Output(ctx, w.dir, "npx", args...)
	return err
}

// executeArgs builds the wrangler argument list. Exactly one of --local or
// --remote is always present; --env only when an environment was resolved.
func executeArgs(t *target.Target) []string {
	args := []string{"wrangler", "d1", "execute", t.Database.DatabaseName, "--" + string(t.Mode)}
	if t.Environment != "" {
		args = append(args, "--env", t.Environment)
	}
	return append(args, "--file", t.Migration)
}
