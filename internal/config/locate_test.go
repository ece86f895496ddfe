package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocatePriorityOrder(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		wantPath string
		wantAll  []string
	}{
		{
			name:     "single candidate",
			files:    []string{"proj/wrangler.jsonc"},
			wantPath: "proj/wrangler.jsonc",
			wantAll:  []string{"proj/wrangler.jsonc"},
		},
		{
			name:     "toml wins over json and jsonc",
			files:    []string{"proj/wrangler.jsonc", "proj/wrangler.json", "proj/wrangler.toml"},
			wantPath: "proj/wrangler.toml",
			wantAll:  []string{"proj/wrangler.toml", "proj/wrangler.json", "proj/wrangler.jsonc"},
		},
		{
			name:     "json wins over jsonc",
			files:    []string{"proj/wrangler.jsonc", "proj/wrangler.json"},
			wantPath: "proj/wrangler.json",
			wantAll:  []string{"proj/wrangler.json", "proj/wrangler.jsonc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			for _, name := range tt.files {
				require.NoError(t, afero.WriteFile(fs, name, []byte("{}"), 0o644))
			}

			match, err := NewLocator(fs).Locate("proj", "wrangler", WranglerCandidates)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, match.Path)
			assert.Equal(t, tt.wantAll, match.All)
			assert.Equal(t, len(tt.wantAll) > 1, match.Ambiguous())
		})
	}
}

func TestLocateIgnoresUnrelatedFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "proj/wrangler.toml.bak", []byte(""), 0o644))
	require.NoError(t, afero.WriteFile(fs, "proj/drizzle.config.ts", []byte(""), 0o644))

	_, err := NewLocator(fs).Locate("proj", "wrangler", WranglerCandidates)

	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "wrangler", nfe.Kind)
	assert.Equal(t, "proj", nfe.Dir)
}

func TestLocateNotFoundListsCandidates(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("proj", 0o755))

	_, err := NewLocator(fs).Locate("proj", "drizzle", DrizzleCandidates)

	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Contains(t, err.Error(), "drizzle.config.ts")
	assert.Contains(t, err.Error(), "drizzle.config.js")
	assert.Contains(t, err.Error(), "drizzle.config.mjs")
}
