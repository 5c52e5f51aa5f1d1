// Package testutil provides test utilities and helpers for relnotes tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// EnvKeys lists the RELNOTES_* variables cleared by IsolateEnv.
var EnvKeys = []string{
	"RELNOTES_CHANGELOG_PATH",
	"RELNOTES_HEADER",
	"RELNOTES_SELECTION",
	"RELNOTES_REPO_ROOT",
	"RELNOTES_REMOTE_URL",
	"RELNOTES_REMOTE_TIMEOUT",
}

// IsolateEnv moves the test into an empty working directory with an empty
// user config directory and no RELNOTES_* variables. It returns the directory.
// Tests using it must not run in parallel.
func IsolateEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	for _, key := range EnvKeys {
		// Setenv registers the restore; the variable is then removed.
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unsetting %s: %v", key, err)
		}
	}
	t.Chdir(dir)
	return dir
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
