// Package toolchain adapts the external node tools turbomigrate drives:
// drizzle-kit for generating migrations and wrangler for applying them. Both
// are launched through npx in the project root, so the project's own pinned
// versions win over anything global.
package toolchain

import "context"

// Runner is the slice of shell execution the toolchain needs.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
	Output(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// DrizzleKit generates migration artifacts from the current schema.
type DrizzleKit struct {
	runner      Runner
	dir         string
	interactive bool
}

// NewDrizzleKit creates a DrizzleKit bound to the project directory. In
// interactive runs the tool inherits the terminal; otherwise its output is
// captured and only surfaces on failure.
func NewDrizzleKit(runner Runner, dir string, interactive bool) *DrizzleKit {
	return &DrizzleKit{runner: runner, dir: dir, interactive: interactive}
}

// Generate runs drizzle-kit generate.
func (d *DrizzleKit) Generate(ctx context.Context) error {
	if d.interactive {
		return d.runner.Run(ctx, d.dir, "npx", "drizzle-kit", "generate")
	}
	_, err := d.runner.Output(ctx, d.dir, "npx", "drizzle-kit", "generate")
	return err
}
