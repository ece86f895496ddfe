package config

import (
	"fmt"
	"path/filepath"
)

// DefaultMigrationsDir is the conventional drizzle-kit output directory, used
// when the schema config does not set one.
const DefaultMigrationsDir = "drizzle"

// DrizzleConfig is the typed view over the schema tool's config. Credential
// and driver fields stay in the raw document; the orchestrator never
// interprets them.
type DrizzleConfig struct {
	Out     string `json:"out"`
	Dialect string `json:"dialect"`
}

// ProjectDrizzle builds the typed schema-tool view from a raw document,
// defaulting the output directory when absent.
func ProjectDrizzle(doc Document) (*DrizzleConfig, error) {
	var cfg DrizzleConfig
	if err := reproject(doc, &cfg); err != nil {
		return nil, fmt.Errorf("schema config: %w", err)
	}
	if cfg.Out == "" {
		cfg.Out = DefaultMigrationsDir
	}
	return &cfg, nil
}

// MigrationsDir resolves the configured output directory against the project
// root. Absolute paths are honored as written.
func (c *DrizzleConfig) MigrationsDir(root string) string {
	if filepath.IsAbs(c.Out) {
		return c.Out
	}
	return filepath.Join(root, c.Out)
}
