// Package env loads process environment from dotenv and Ansible Vault files
// before any external tool runs, so wrangler and drizzle-kit see the same
// variables the deployment does.
package env

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	vault "github.com/sosedoff/ansible-vault-go"
	"golang.org/x/term"
)

// vaultSuffix marks env files encrypted with Ansible Vault.
const vaultSuffix = ".vault"

// passwordEnvVar is consulted for the vault password when no flag is given.
const passwordEnvVar = "VAULT_PASSWORD"

// Loader loads environment variables into the process.
type Loader struct {
	interactive bool
}

// NewLoader creates a Loader. interactive enables the hidden password prompt
// fallback for vault files.
func NewLoader(interactive bool) *Loader {
	return &Loader{interactive: interactive}
}

// Load reads the env file at path into the process environment. An empty path
// is a no-op. Files ending in .vault are decrypted first; password may be
// empty, in which case $VAULT_PASSWORD and then an interactive prompt are
// tried.
func (l *Loader) Load(path, password string) error {
	if path == "" {
		return nil
	}
	if strings.HasSuffix(path, vaultSuffix) {
		return l.loadVault(path, password)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func (l *Loader) loadVault(path, password string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read vault file %s: %w", path, err)
	}
	password, err = l.resolvePassword(password)
	if err != nil {
		return err
	}

	decrypted, err := vault.Decrypt(string(data), password)
	if err != nil {
		return fmt.Errorf("decrypt vault file %s: %w", path, err)
	}

	envMap, err := godotenv.Unmarshal(decrypted)
	if err != nil {
		return fmt.Errorf("parse decrypted env file %s: %w", path, err)
	}
	for key, value := range envMap {
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

func (l *Loader) resolvePassword(password string) (string, error) {
	if password != "" {
		return password, nil
	}
	if fromEnv := os.Getenv(passwordEnvVar); fromEnv != "" {
		return fromEnv, nil
	}
	if !l.interactive {
		return "", fmt.Errorf("vault password required: set --vault-password or %s", passwordEnvVar)
	}

	fmt.Fprint(os.Stderr, "Vault password: ")
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read vault password: %w", err)
	}
	return string(secret), nil
}
