package target

import (
	"context"
	"fmt"
)

// Selector presents options under a title and returns the index of the chosen
// one. Implementations return a cancellation error when the user backs out;
// the resolver treats that as terminal for the whole run.
type Selector interface {
	Select(ctx context.Context, title string, options []string, initial int) (int, error)
}

// Resolver narrows a Deployment to one environment and one database binding,
// prompting only at decision points with more than one choice.
type Resolver struct {
	selector Selector
}

// NewResolver creates a Resolver that asks through selector when a decision
// is ambiguous.
func NewResolver(selector Selector) *Resolver {
	return &Resolver{selector: selector}
}

// Resolve picks the environment and database binding for this run. A
// non-empty preferEnv selects that environment without prompting and fails
// when the config does not define it.
func (r *Resolver) Resolve(ctx context.Context, dep *Deployment, preferEnv string) (string, Database, error) {
	env, err := r.resolveEnvironment(ctx, dep, preferEnv)
	if err != nil {
		return "", Database{}, err
	}
	db, err := r.resolveDatabase(ctx, dep.BindingsFor(env), env)
	if err != nil {
		return "", Database{}, err
	}
	return env, db, nil
}

func (r *Resolver) resolveEnvironment(ctx context.Context, dep *Deployment, preferEnv string) (string, error) {
	names := dep.Environments()
	if preferEnv != "" {
		for _, name := range names {
			if name == preferEnv {
				return name, nil
			}
		}
		return "", &UnknownEnvironmentError{Name: preferEnv, Known: names}
	}

	switch len(names) {
	case 0:
		return "", nil
	case 1:
		return names[0], nil
	}

	idx, err := r.selector.Select(ctx, "Select environment", names, 0)
	if err != nil {
		return "", fmt.Errorf("select environment: %w", err)
	}
	return names[idx], nil
}

func (r *Resolver) resolveDatabase(ctx context.Context, dbs []Database, env string) (Database, error) {
	switch len(dbs) {
	case 0:
		return Database{}, &NoDatabasesError{Environment: env}
	case 1:
		return dbs[0], nil
	}

	options := make([]string, len(dbs))
	for i := range dbs {
		options[i] = dbs[i].Label()
	}
	idx, err := r.selector.Select(ctx, "Select database", options, 0)
	if err != nil {
		return Database{}, fmt.Errorf("select database: %w", err)
	}
	// The index identifies the binding, not the label: labels can collide
	// when bindings share a name.
	return dbs[idx], nil
}
