// Package target defines the data model for migration destinations and the
// resolution logic that narrows a deployment config down to a single
// database.
package target

import (
	"fmt"
	"sort"
)

// Mode selects where a migration is applied.
type Mode string

const (
	// ModeLocal applies migrations to the local development database.
	ModeLocal Mode = "local"
	// ModeRemote applies migrations to the deployed database.
	ModeRemote Mode = "remote"
)

// Database is one provisioned database binding from the deployment config.
type Database struct {
	Binding      string `json:"binding" validate:"required"`
	DatabaseName string `json:"database_name" validate:"required"`
	DatabaseID   string `json:"database_id,omitempty"`
}

// idPrefixLen bounds the identifier fragment shown in labels, counted in
// runes; full UUIDs add noise without helping disambiguation.
const idPrefixLen = 8

// Label renders the display label used in selection lists: the database name,
// plus a short identifier prefix when the binding carries one. Labels may
// collide between bindings; selection always goes by list position.
func (d Database) Label() string {
	if d.DatabaseID == "" {
		return d.DatabaseName
	}
	id := d.DatabaseID
	if runes := []rune(id); len(runes) > idPrefixLen {
		id = string(runes[:idPrefixLen])
	}
	return fmt.Sprintf("%s (%s)", d.DatabaseName, id)
}

// Deployment is the selectable surface of a parsed deployment config:
// top-level database bindings plus any named environments with bindings of
// their own.
type Deployment struct {
	Name      string
	Main      string
	Envs      map[string][]Database `validate:"omitempty,dive,dive"`
	Databases []Database            `validate:"omitempty,dive"`
}

// Environments returns the defined environment names sorted alphabetically,
// so prompts and error messages stay stable across runs.
func (d *Deployment) Environments() []string {
	names := make([]string, 0, len(d.Envs))
	for name := range d.Envs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BindingsFor returns the database bindings selectable within env, or the
// top-level bindings when env is empty.
func (d *Deployment) BindingsFor(env string) []Database {
	if env == "" {
		return d.Databases
	}
	return d.Envs[env]
}

// Target is the fully resolved migration destination. It is constructed once,
// after every decision has been made, and handed unchanged to the executor.
type Target struct {
	// Environment is the resolved wrangler environment, empty for the
	// top-level scope.
	Environment string
	// Database is the binding migrations are applied to.
	Database Database
	// Migration is the absolute path of the artifact to apply.
	Migration string
	// Mode selects the local or the deployed database.
	Mode Mode
}
