// Package config locates, parses, and projects the configuration files that
// describe a migration run: the wrangler deployment config and the drizzle-kit
// schema config.
package config

// Document is the raw result of parsing a single configuration file: an
// arbitrarily nested string-keyed mapping with no schema attached. Typed views
// are projected from it exactly once (see ProjectDeployment and
// ProjectDrizzle); nothing else reads a Document field by field.
type Document map[string]any
