package toolchain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mechse/turbomigrate/internal/core/target"
)

type call struct {
	dir  string
	name string
	args []string
}

type fakeRunner struct {
	runCalls    []call
	outputCalls []call
	err         error
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	f.runCalls = append(f.runCalls, call{dir: dir, name: name, args: args})
	return f.err
}

func (f *fakeRunner) Output(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.outputCalls = append(f.outputCalls, call{dir: dir, name: name, args: args})
	return nil, f.err
}

func TestExecuteArgs(t *testing.T) {
	tests := []struct {
		name string
		t    *target.Target
		want []string
	}{
		{
			name: "remote with environment",
			t: &target.Target{
				Environment: "production",
				Database:    target.Database{Binding: "DB", DatabaseName: "app-prod"},
				Migration:   "/proj/drizzle/0001_add_users.sql",
				Mode:        target.ModeRemote,
			},
			want: []string{
				"wrangler", "d1", "execute", "app-prod", "--remote",
				"--env", "production",
				"--file", "/proj/drizzle/0001_add_users.sql",
			},
		},
		{
			name: "local without environment",
			t: &target.Target{
				Database:  target.Database{Binding: "DB", DatabaseName: "app-db"},
				Migration: "/proj/drizzle/0000_init.sql",
				Mode:      target.ModeLocal,
			},
			want: []string{
				"wrangler", "d1", "execute", "app-db", "--local",
				"--file", "/proj/drizzle/0000_init.sql",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, executeArgs(tt.t))
		})
	}
}

func TestWranglerInteractiveInheritsTerminal(t *testing.T) {
	runner := &fakeRunner{}
	w := NewWrangler(runner, "/proj", true)

	tgt := &target.Target{
		Database:  target.Database{DatabaseName: "app-db"},
		Migration: "/proj/drizzle/0000_init.sql",
		Mode:      target.ModeLocal,
	}
	require.NoError(t, w.Execute(context.Background(), tgt))

	require.Len(t, runner.runCalls, 1)
	assert.Empty(t, runner.outputCalls)
	assert.Equal(t, "/proj", runner.runCalls[0].dir)
	assert.Equal(t, "npx", runner.runCalls[0].name)
	assert.Equal(t, executeArgs(tgt), runner.runCalls[0].args)
}

func TestWranglerCapturedWhenNotInteractive(t *testing.T) {
	runner := &fakeRunner{}
	w := NewWrangler(runner, "/proj", false)

	tgt := &target.Target{
		Database:  target.Database{DatabaseName: "app-db"},
		Migration: "/proj/drizzle/0000_init.sql",
		Mode:      target.ModeRemote,
	}
	require.NoError(t, w.Execute(context.Background(), tgt))

	require.Len(t, runner.outputCalls, 1)
	assert.Empty(t, runner.runCalls)
}

func TestWranglerExecuteError(t *testing.T) {
	wantErr := errors.New("exit status 1")
	w := NewWrangler(&fakeRunner{err: wantErr}, "/proj", false)

	err := w.Execute(context.Background(), &target.Target{
		Database: target.Database{DatabaseName: "app-db"},
		Mode:     target.ModeLocal,
	})
	require.ErrorIs(t, err, wantErr)
}

func TestDrizzleKitGenerate(t *testing.T) {
	runner := &fakeRunner{}
	require.NoError(t, NewDrizzleKit(runner, "/proj", true).Generate(context.Background()))

	require.Len(t, runner.runCalls, 1)
	assert.Equal(t, "npx", runner.runCalls[0].name)
	assert.Equal(t, []string{"drizzle-kit", "generate"}, runner.runCalls[0].args)
}

func TestDrizzleKitGenerateCaptured(t *testing.T) {
	runner := &fakeRunner{}
	require.NoError(t, NewDrizzleKit(runner, "/proj", false).Generate(context.Background()))

	require.Len(t, runner.outputCalls, 1)
	assert.Empty(t, runner.runCalls)
	assert.Equal(t, []string{"drizzle-kit", "generate"}, runner.outputCalls[0].args)
}
