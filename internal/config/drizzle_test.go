package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDrizzle(t *testing.T) {
	doc := Document{
		"out":           "./migrations",
		"dialect":       "sqlite",
		"schema":        []any{"./src/schema.ts"},
		"dbCredentials": map[string]any{"accountId": "x", "token": "y"},
	}

	cfg, err := ProjectDrizzle(doc)
	require.NoError(t, err)
	assert.Equal(t, "./migrations", cfg.Out)
	assert.Equal(t, "sqlite", cfg.Dialect)
}

func TestProjectDrizzleDefaultsOut(t *testing.T) {
	cfg, err := ProjectDrizzle(Document{"dialect": "sqlite"})
	require.NoError(t, err)
	assert.Equal(t, DefaultMigrationsDir, cfg.Out)
}

func TestProjectDrizzleWrongShape(t *testing.T) {
	_, err := ProjectDrizzle(Document{"out": 42})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema config")
}

func TestMigrationsDir(t *testing.T) {
	rel := &DrizzleConfig{Out: "./drizzle"}
	assert.Equal(t, filepath.Join("proj", "drizzle"), rel.MigrationsDir("proj"))

	abs := &DrizzleConfig{Out: "/var/data/migrations"}
	assert.Equal(t, "/var/data/migrations", abs.MigrationsDir("proj"))
}
