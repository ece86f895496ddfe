// Package cli wires turbomigrate's pipeline together: locate and parse the
// configs, resolve the target, resolve the migration set, execute.
package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/Mechse/turbomigrate/internal/config"
	"github.com/Mechse/turbomigrate/internal/core/migration"
	"github.com/Mechse/turbomigrate/internal/core/target"
	"github.com/Mechse/turbomigrate/internal/infrastructure/env"
	"github.com/Mechse/turbomigrate/internal/infrastructure/shell"
	"github.com/Mechse/turbomigrate/internal/infrastructure/toolchain"
	"github.com/Mechse/turbomigrate/internal/ui"
	"github.com/Mechse/turbomigrate/internal/ui/prompt"
)

// RunConfig is the immutable configuration of one run, built once from flags
// and terminal detection and passed explicitly everywhere.
type RunConfig struct {
	// Dir is the project root holding the configs. Relative paths are
	// resolved against the working directory at the start of a run.
	Dir string
	// Mode is the execution mode forced by flag, empty to prompt.
	Mode target.Mode
	// Environment is the wrangler environment forced by flag, empty to
	// resolve from the config.
	Environment string
	// Generate forces a generation step before resolving artifacts.
	Generate bool
	// EnvFile is an optional env file loaded before anything else runs.
	EnvFile string
	// VaultPassword decrypts EnvFile when it is vault-encrypted.
	VaultPassword string
	// Interactive reports whether prompts may suspend for input.
	Interactive bool
}

// State names the phases of a run. The machine is strictly linear; any error
// or cancellation is terminal.
type State int

const (
	StateResolvingConfig State = iota
	StateResolvingTarget
	StateResolvingMigrations
	StateExecuting
	StateDone
	StateCancelled
)

var stateNames = [...]string{
	"resolving-config",
	"resolving-target",
	"resolving-migrations",
	"executing",
	"done",
	"cancelled",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// EnvLoader loads an environment file into the process.
type EnvLoader interface {
	Load(path, password string) error
}

// ConfigLocator finds candidate config files in a directory.
type ConfigLocator interface {
	Locate(dir, kind string, candidates []string) (*config.Match, error)
}

// ConfigParser parses one configuration file into a raw document.
type ConfigParser interface {
	Parse(ctx context.Context, path string) (config.Document, error)
}

// Selector is the prompt capability the app itself uses, for the mode
// question.
type Selector interface {
	Select(ctx context.Context, title string, options []string, initial int) (int, error)
}

// TargetResolver narrows the deployment to one environment and database.
type TargetResolver interface {
	Resolve(ctx context.Context, dep *target.Deployment, preferEnv string) (string, target.Database, error)
}

// MigrationResolver picks the migration artifact to apply.
type MigrationResolver interface {
	Resolve(ctx context.Context, dir string) (*migration.Artifact, error)
}

// Executor applies the resolved target.
type Executor interface {
	Execute(ctx context.Context, t *target.Target) error
}

// Deps bundles the app's collaborators so tests can swap any of them.
type Deps struct {
	Fs         afero.Fs
	EnvLoader  EnvLoader
	Locator    ConfigLocator
	Parser     ConfigParser
	Selector   Selector
	Targets    TargetResolver
	Migrations MigrationResolver
	Executor   Executor
}

// App owns one run of the orchestrator.
type App struct {
	cfg     RunConfig
	console *ui.Console
	logE    *logrus.Entry
	deps    Deps
	state   State
}

// NewApp wires an App with production implementations.
func NewApp(cfg RunConfig, console *ui.Console, logE *logrus.Entry) *App {
	fs := afero.NewOsFs()
	runner := shell.NewRunner()
	prompter := prompt.New(cfg.Interactive)
	generator := toolchain.NewDrizzleKit(runner, cfg.Dir, cfg.Interactive)

	return NewAppWithDeps(cfg, console, logE, Deps{
		Fs:        fs,
		EnvLoader: env.NewLoader(cfg.Interactive),
		Locator:   config.NewLocator(fs),
		Parser:    config.NewParser(),
		Selector:  prompter,
		Targets:   target.NewResolver(prompter),
		Migrations: migration.NewResolver(fs, prompter, generator, console,
			migration.WithForceGenerate(cfg.Generate)),
		Executor: toolchain.NewWrangler(runner, cfg.Dir, cfg.Interactive),
	})
}

// NewAppWithDeps wires an App with caller-supplied collaborators.
func NewAppWithDeps(cfg RunConfig, console *ui.Console, logE *logrus.Entry, deps Deps) *App {
	return &App{cfg: cfg, console: console, logE: logE, deps: deps}
}

// State returns the phase the app is currently in.
func (a *App) State() State {
	return a.state
}

// Run drives the pipeline to completion. It returns nil on success, including
// the nothing-to-apply case. Cancellation errors pass through unchanged for
// the caller's exit handling.
func (a *App) Run(ctx context.Context) error {
	if err := a.run(ctx); err != nil {
		a.transition(StateCancelled)
		return err
	}
	a.transition(StateDone)
	return nil
}

func (a *App) run(ctx context.Context) error {
	// Subprocesses run with Dir as their working directory, so every path
	// derived from it must be absolute.
	dir, err := filepath.Abs(a.cfg.Dir)
	if err != nil {
		return fmt.Errorf("resolve project directory %s: %w", a.cfg.Dir, err)
	}
	a.cfg.Dir = dir

	a.transition(StateResolvingConfig)
	dep, drizzle, err := a.resolveConfig(ctx)
	if err != nil {
		return err
	}

	a.transition(StateResolvingTarget)
	mode, err := a.resolveMode(ctx)
	if err != nil {
		return err
	}
	envName, db, err := a.deps.Targets.Resolve(ctx, dep, a.cfg.Environment)
	if err != nil {
		return err
	}

	a.transition(StateResolvingMigrations)
	artifact, err := a.deps.Migrations.Resolve(ctx, drizzle.MigrationsDir(a.cfg.Dir))
	if err != nil {
		return err
	}
	if artifact == nil {
		a.console.Infof("Nothing to apply.")
		return nil
	}

	t := &target.Target{
		Environment: envName,
		Database:    db,
		Migration:   artifact.Path,
		Mode:        mode,
	}

	a.transition(StateExecuting)
	a.logE.WithFields(logrus.Fields{
		"environment": t.Environment,
		"database":    t.Database.DatabaseName,
		"migration":   t.Migration,
		"mode":        t.Mode,
	}).Debug("executing migration")
	if err := a.deps.Executor.Execute(ctx, t); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}

	a.console.Successf("applied %s to %s (%s)", artifact.Name, t.Database.DatabaseName, t.Mode)
	return nil
}

func (a *App) resolveConfig(ctx context.Context) (*target.Deployment, *config.DrizzleConfig, error) {
	if ok, err := afero.DirExists(a.deps.Fs, a.cfg.Dir); err != nil {
		return nil, nil, fmt.Errorf("check project directory %s: %w", a.cfg.Dir, err)
	} else if !ok {
		return nil, nil, fmt.Errorf("project directory %s does not exist", a.cfg.Dir)
	}

	if err := a.deps.EnvLoader.Load(a.cfg.EnvFile, a.cfg.VaultPassword); err != nil {
		return nil, nil, fmt.Errorf("load environment: %w", err)
	}

	wranglerDoc, wranglerPath, err := a.loadDocument(ctx, "wrangler", config.WranglerCandidates)
	if err != nil {
		return nil, nil, err
	}
	dep, err := config.ProjectDeployment(wranglerDoc)
	if err != nil {
		return nil, nil, &config.ParseError{Path: wranglerPath, Cause: err}
	}

	drizzleDoc, drizzlePath, err := a.loadDocument(ctx, "drizzle", config.DrizzleCandidates)
	if err != nil {
		return nil, nil, err
	}
	drizzle, err := config.ProjectDrizzle(drizzleDoc)
	if err != nil {
		return nil, nil, &config.ParseError{Path: drizzlePath, Cause: err}
	}

	if dep.Name != "" {
		a.console.Infof("Project: %s", dep.Name)
	}
	return dep, drizzle, nil
}

func (a *App) loadDocument(ctx context.Context, kind string, candidates []string) (config.Document, string, error) {
	match, err := a.deps.Locator.Locate(a.cfg.Dir, kind, candidates)
	if err != nil {
		return nil, "", err
	}
	if match.Ambiguous() {
		a.console.Warnf("multiple %s configs found (%s), using %s",
			kind, strings.Join(match.All, ", "), match.Path)
	}
	a.logE.WithFields(logrus.Fields{"kind": kind, "path": match.Path}).Debug("config located")

	doc, err := a.deps.Parser.Parse(ctx, match.Path)
	if err != nil {
		return nil, "", err
	}
	return doc, match.Path, nil
}

func (a *App) resolveMode(ctx context.Context) (target.Mode, error) {
	if a.cfg.Mode != "" {
		return a.cfg.Mode, nil
	}
	modes := []string{string(target.ModeLocal), string(target.ModeRemote)}
	idx, err := a.deps.Selector.Select(ctx, "Apply migrations to", modes, 0)
	if err != nil {
		return "", fmt.Errorf("select mode: %w", err)
	}
	return target.Mode(modes[idx]), nil
}

func (a *App) transition(next State) {
	a.state = next
	a.logE.WithField("state", next.String()).Debug("state changed")
}
