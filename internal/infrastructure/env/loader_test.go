package env

import (
	"os"
	"path/filepath"
	"testing"

	vault "github.com/sosedoff/ansible-vault-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetForTest(t *testing.T, key string) {
	t.Helper()
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { os.Unsetenv(key) })
}

func TestLoadEmptyPathIsNoop(t *testing.T) {
	require.NoError(t, NewLoader(false).Load("", ""))
}

func TestLoadDotenv(t *testing.T) {
	const key = "TURBOMIGRATE_TEST_TOKEN"
	unsetForTest(t, key)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=abc123\n"), 0o644))

	require.NoError(t, NewLoader(false).Load(path, ""))
	assert.Equal(t, "abc123", os.Getenv(key))
}

func TestLoadDotenvMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.env")
	err := NewLoader(false).Load(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoadVaultRoundTrip(t *testing.T) {
	const key = "TURBOMIGRATE_TEST_SECRET"
	unsetForTest(t, key)

	encrypted, err := vault.Encrypt(key+"=s3cret\n", "hunter2")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "prod.env.vault")
	require.NoError(t, os.WriteFile(path, []byte(encrypted), 0o600))

	require.NoError(t, NewLoader(false).Load(path, "hunter2"))
	assert.Equal(t, "s3cret", os.Getenv(key))
}

func TestLoadVaultWrongPassword(t *testing.T) {
	encrypted, err := vault.Encrypt("A=b\n", "right")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "prod.env.vault")
	require.NoError(t, os.WriteFile(path, []byte(encrypted), 0o600))

	err = NewLoader(false).Load(path, "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoadVaultPasswordFromEnvironment(t *testing.T) {
	const key = "TURBOMIGRATE_TEST_VAULTED"
	unsetForTest(t, key)
	t.Setenv("VAULT_PASSWORD", "hunter2")

	encrypted, err := vault.Encrypt(key+"=ok\n", "hunter2")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "prod.env.vault")
	require.NoError(t, os.WriteFile(path, []byte(encrypted), 0o600))

	require.NoError(t, NewLoader(false).Load(path, ""))
	assert.Equal(t, "ok", os.Getenv(key))
}

func TestLoadVaultNoPasswordNonInteractive(t *testing.T) {
	t.Setenv("VAULT_PASSWORD", "")

	encrypted, err := vault.Encrypt("A=b\n", "pw")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "prod.env.vault")
	require.NoError(t, os.WriteFile(path, []byte(encrypted), 0o600))

	err = NewLoader(false).Load(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--vault-password")
}
