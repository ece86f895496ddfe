package migration

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// ArtifactSuffix marks migration artifacts in the output directory. Journal
// files and snapshot subdirectories are skipped by not carrying it.
const ArtifactSuffix = ".sql"

// Prompter supplies the interactive decisions the resolver may need.
type Prompter interface {
	Select(ctx context.Context, title string, options []string, initial int) (int, error)
	Confirm(ctx context.Context, question, affirm, deny string) (bool, error)
}

// Generator produces a new migration set from the current schema.
type Generator interface {
	Generate(ctx context.Context) error
}

// Warner receives non-fatal findings worth telling the user about.
type Warner interface {
	Warnf(format string, args ...any)
}

// Resolver picks the migration artifact to apply from the schema tool's
// output directory.
type Resolver struct {
	fs        afero.Fs
	prompter  Prompter
	generator Generator
	warner    Warner
	force     bool
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithForceGenerate makes Resolve run the generator unconditionally instead
// of offering it only when no artifact exists yet.
func WithForceGenerate(force bool) ResolverOption {
	return func(r *Resolver) {
		r.force = force
	}
}

// NewResolver creates a Resolver over fs.
func NewResolver(fs afero.Fs, prompter Prompter, generator Generator, warner Warner, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fs:        fs,
		prompter:  prompter,
		generator: generator,
		warner:    warner,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the artifact to apply from dir, or nil when there is
// nothing to apply. Generation runs first when forced or accepted at the
// prompt; the prompt is offered only while no artifact exists, so a fully
// determined run never suspends. With several artifacts the newest is
// preselected and the user picks.
func (r *Resolver) Resolve(ctx context.Context, dir string) (*Artifact, error) {
	exists, err := afero.DirExists(r.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("check migrations directory %s: %w", dir, err)
	}

	var artifacts []Artifact
	if exists {
		if artifacts, err = r.scan(dir); err != nil {
			return nil, err
		}
	}

	if err := r.maybeGenerate(ctx, dir, exists, len(artifacts)); err != nil {
		return nil, err
	}

	exists, err = afero.DirExists(r.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("check migrations directory %s: %w", dir, err)
	}
	if !exists {
		return nil, &MissingDirError{Dir: dir}
	}
	if artifacts, err = r.scan(dir); err != nil {
		return nil, err
	}

	if len(artifacts) == 0 {
		r.warner.Warnf("no %s artifacts in %s, nothing to apply", ArtifactSuffix, dir)
		return nil, nil
	}

	sortArtifacts(artifacts)
	if len(artifacts) == 1 {
		return &artifacts[0], nil
	}

	options := make([]string, len(artifacts))
	for i := range artifacts {
		options[i] = artifacts[i].Name
	}
	options[0] += "  (most recent)"

	idx, err := r.prompter.Select(ctx, "Select migration to apply", options, 0)
	if err != nil {
		return nil, fmt.Errorf("select migration: %w", err)
	}
	return &artifacts[idx], nil
}

// maybeGenerate runs the generator when forced, or offers it when the
// artifact set is missing or empty. Declining is not an error; the caller
// re-checks what is on disk afterwards.
func (r *Resolver) maybeGenerate(ctx context.Context, dir string, dirExists bool, artifactCount int) error {
	generate := r.force
	if !generate && (!dirExists || artifactCount == 0) {
		question := fmt.Sprintf("No migration artifacts in %s yet. Generate them now?", dir)
		if !dirExists {
			question = fmt.Sprintf("Migrations directory %s does not exist. Generate it now?", dir)
		}
		ok, err := r.prompter.Confirm(ctx, question, "Generate", "Skip")
		if err != nil {
			return fmt.Errorf("confirm generation: %w", err)
		}
		generate = ok
	}
	if !generate {
		return nil
	}
	if err := r.generator.Generate(ctx); err != nil {
		return fmt.Errorf("generate migrations: %w", err)
	}
	return nil
}

func (r *Resolver) scan(dir string) ([]Artifact, error) {
	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("list migrations directory %s: %w", dir, err)
	}
	var artifacts []Artifact
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ArtifactSuffix) {
			continue
		}
		artifacts = append(artifacts, Artifact{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			ModTime: entry.ModTime(),
		})
	}
	return artifacts, nil
}

// sortArtifacts orders newest first. The sort is stable over the scan's
// name-sorted listing, so artifacts with equal timestamps keep a fixed,
// reproducible order.
func sortArtifacts(artifacts []Artifact) {
	sort.SliceStable(artifacts, func(i, j int) bool {
		return artifacts[i].ModTime.After(artifacts[j].ModTime)
	})
}
