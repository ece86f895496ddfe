package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDeployment(t *testing.T) {
	doc := Document{
		"name":               "my-app",
		"main":               "src/index.ts",
		"compatibility_date": "2024-01-01",
		"d1_databases": []any{
			map[string]any{"binding": "DB", "database_name": "app-db", "database_id": "1111222233334444"},
		},
		"env": map[string]any{
			"production": map[string]any{
				"d1_databases": []any{
					map[string]any{"binding": "DB", "database_name": "app-db-prod"},
				},
			},
			"staging": map[string]any{
				"d1_databases": []any{
					map[string]any{"binding": "DB", "database_name": "app-db-staging"},
				},
			},
		},
	}

	dep, err := ProjectDeployment(doc)
	require.NoError(t, err)
	assert.Equal(t, "my-app", dep.Name)
	assert.Equal(t, "src/index.ts", dep.Main)
	require.Len(t, dep.Databases, 1)
	assert.Equal(t, "app-db", dep.Databases[0].DatabaseName)
	assert.Equal(t, []string{"production", "staging"}, dep.Environments())
	require.Len(t, dep.Envs["production"], 1)
	assert.Equal(t, "app-db-prod", dep.Envs["production"][0].DatabaseName)
}

func TestProjectDeploymentTOMLShapedDocument(t *testing.T) {
	// TOML decoding yields []map[string]any instead of []any for arrays of
	// tables; the projection treats both the same.
	doc := Document{
		"d1_databases": []map[string]any{
			{"binding": "DB", "database_name": "app-db"},
		},
	}

	dep, err := ProjectDeployment(doc)
	require.NoError(t, err)
	require.Len(t, dep.Databases, 1)
	assert.Equal(t, "DB", dep.Databases[0].Binding)
}

func TestProjectDeploymentWithoutDatabases(t *testing.T) {
	dep, err := ProjectDeployment(Document{"name": "bare"})
	require.NoError(t, err)
	assert.Empty(t, dep.Databases)
	assert.Empty(t, dep.Environments())
}

func TestProjectDeploymentMissingDatabaseName(t *testing.T) {
	doc := Document{
		"d1_databases": []any{map[string]any{"binding": "DB"}},
	}

	_, err := ProjectDeployment(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DatabaseName")
	assert.Contains(t, err.Error(), "required")
}

func TestProjectDeploymentWrongShape(t *testing.T) {
	_, err := ProjectDeployment(Document{"d1_databases": "oops"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected shape")
}
