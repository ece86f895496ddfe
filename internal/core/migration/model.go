// Package migration scans the schema tool's output directory and resolves
// which migration artifact to apply.
package migration

import "time"

// Artifact is one generated migration file in the output directory.
type Artifact struct {
	// Name is the bare filename, e.g. 0002_add_users.sql.
	Name string
	// Path is the artifact's full path as passed to the executor.
	Path string
	// ModTime orders artifacts by recency.
	ModTime time.Time
}
