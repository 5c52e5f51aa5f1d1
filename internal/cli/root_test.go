package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/relnotes/internal/testutil"
	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChangelog = `# Changelog

## Unreleased
- Pending change

## [1.2.0] - 2024-05-01
- Added feature X
- Fixed bug Y

## [1.1.0] - 2024-04-01
- Older entry
`

// run executes a fresh command tree and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	reportError(&stderr, err)
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_Structure(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "relnotes", cmd.Name())
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)

	found := map[string]bool{}
	for _, sub := range cmd.Commands() {
		found[sub.Name()] = true
	}
	for _, name := range []string{"sections", "config", "doctor", "version"} {
		assert.True(t, found[name], "missing subcommand %s", name)
	}
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := NewRootCmd()

	tests := map[string]struct {
		flagName   string
		persistent bool
	}{
		"config flag":    {flagName: "config", persistent: true},
		"debug flag":     {flagName: "debug", persistent: true},
		"url flag":       {flagName: "url", persistent: true},
		"selection flag": {flagName: "selection", persistent: true},
		"header flag":    {flagName: "header", persistent: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if tt.persistent {
				assert.NotNil(t, cmd.PersistentFlags().Lookup(tt.flagName))
				return
			}
			assert.NotNil(t, cmd.Flags().Lookup(tt.flagName))
		})
	}
}

func TestRun_ExtractsLatestSection(t *testing.T) {
	dir := testutil.IsolateEnv(t)
	testutil.WriteFile(t, filepath.Join(dir, "CHANGELOG.md"), testChangelog)

	stdout, stderr, err := run(t)
	require.NoError(t, err)
	assert.Equal(t, "## Changelog\n- Added feature X\n- Fixed bug Y\n\n", stdout)
	assert.Empty(t, stderr)
}

func TestRun_Scenarios(t *testing.T) {
	tests := map[string]struct {
		changelog  *string
		args       []string
		wantStdout string
		wantCode   int
		wantStderr string
	}{
		"last section without blank line": {
			changelog:  ptr("# Changelog\n\n## [1.0.0] - 2024-01-01\n- Initial release\n"),
			wantStdout: "## Changelog\n- Initial release\n",
		},
		"single section is malformed": {
			changelog:  ptr("# Changelog\n\n## Unreleased\n- wip\n"),
			wantCode:   ExitMalformedDocument,
			wantStderr: "expected at least two sections",
		},
		"empty file is malformed": {
			changelog: ptr(""),
			wantCode:  ExitMalformedDocument,
		},
		"missing file": {
			changelog:  nil,
			wantCode:   ExitInputNotFound,
			wantStderr: "CHANGELOG.md",
		},
		"explicit path argument": {
			changelog: nil,
			args:      []string{"docs/HISTORY.md"},
			wantCode:  ExitInputNotFound,
		},
		"custom header": {
			changelog:  ptr(testChangelog),
			args:       []string{"--header", "## What's new"},
			wantStdout: "## What's new\n- Added feature X\n- Fixed bug Y\n\n",
		},
		"multi-line header rejected": {
			changelog: ptr(testChangelog),
			args:      []string{"--header", "## A\n## B"},
			wantCode:  ExitInvalidArguments,
		},
		"versioned selection": {
			changelog:  ptr("## [2.0.0]\n- new\n## [1.0.0]\n- old\n"),
			args:       []string{"--selection", "versioned"},
			wantStdout: "## Changelog\n- new\n",
		},
		"index selection without preamble takes second release": {
			changelog:  ptr("## [2.0.0]\n- new\n## [1.0.0]\n- old\n"),
			wantStdout: "## Changelog\n- old\n",
		},
		"unknown selection": {
			changelog:  ptr(testChangelog),
			args:       []string{"--selection", "newest"},
			wantCode:   ExitInvalidArguments,
			wantStderr: "invalid selection",
		},
		"too many arguments": {
			changelog: ptr(testChangelog),
			args:      []string{"a.md", "b.md"},
			wantCode:  ExitInvalidArguments,
		},
		"unknown flag": {
			changelog: ptr(testChangelog),
			args:      []string{"--nope"},
			wantCode:  ExitInvalidArguments,
		},
		"path and url together": {
			changelog:  ptr(testChangelog),
			args:       []string{"CHANGELOG.md", "--url", "https://example.com/CHANGELOG.md"},
			wantCode:   ExitInvalidArguments,
			wantStderr: "invalid flag combination",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := testutil.IsolateEnv(t)
			if tt.changelog != nil {
				testutil.WriteFile(t, filepath.Join(dir, "CHANGELOG.md"), *tt.changelog)
			}

			stdout, stderr, err := run(t, tt.args...)
			assert.Equal(t, tt.wantCode, ExitCode(err), "stderr: %s", stderr)
			if tt.wantCode != ExitSuccess {
				assert.Empty(t, stdout, "nothing is printed on failure")
				assert.Contains(t, stderr, tt.wantStderr)
				return
			}
			assert.Equal(t, tt.wantStdout, stdout)
		})
	}
}

func TestRun_ProjectConfig(t *testing.T) {
	dir := testutil.IsolateEnv(t)
	testutil.WriteFile(t, filepath.Join(dir, "docs", "CHANGELOG.md"), testChangelog)
	testutil.WriteFile(t, filepath.Join(dir, ".relnotes.yml"), "changelog_path: docs/CHANGELOG.md\nheader: \"## Notes\"\n")

	stdout, _, err := run(t)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "## Notes\n- Added feature X"))

	stdout, _, err = run(t, "--header", "## Flag wins")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "## Flag wins\n"))
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := testutil.IsolateEnv(t)
	testutil.WriteFile(t, filepath.Join(dir, "CHANGELOG.md"), testChangelog)
	testutil.WriteFile(t, filepath.Join(dir, ".relnotes.yml"), "selection: newest\n")

	stdout, stderr, err := run(t)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "failed to load configuration")
}

func TestRun_RemoteURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/CHANGELOG.md" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(testChangelog))
	}))
	defer server.Close()

	testutil.IsolateEnv(t)

	t.Run("flag", func(t *testing.T) {
		stdout, _, err := run(t, "--url", server.URL+"/CHANGELOG.md")
		require.NoError(t, err)
		assert.Equal(t, "## Changelog\n- Added feature X\n- Fixed bug Y\n\n", stdout)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("RELNOTES_REMOTE_URL", server.URL+"/CHANGELOG.md")
		stdout, _, err := run(t)
		require.NoError(t, err)
		assert.Contains(t, stdout, "- Added feature X")
	})

	t.Run("not found", func(t *testing.T) {
		_, stderr, err := run(t, "--url", server.URL+"/missing")
		assert.Equal(t, ExitInputNotFound, ExitCode(err))
		assert.Contains(t, stderr, "unexpected status code: 404")
	})
}

func TestRun_RepoRoot(t *testing.T) {
	dir := testutil.IsolateEnv(t)
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	testutil.WriteFile(t, filepath.Join(dir, "CHANGELOG.md"), testChangelog)
	testutil.WriteFile(t, filepath.Join(dir, "pkg", "sub", ".keep"), "")
	t.Chdir(filepath.Join(dir, "pkg", "sub"))

	_, _, err = run(t)
	assert.Equal(t, ExitInputNotFound, ExitCode(err), "paths are relative to the working directory by default")

	t.Setenv("RELNOTES_REPO_ROOT", "true")
	stdout, stderr, err := run(t)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "- Added feature X")
}

func TestRun_Debug(t *testing.T) {
	dir := testutil.IsolateEnv(t)
	testutil.WriteFile(t, filepath.Join(dir, "CHANGELOG.md"), testChangelog)

	stdout, stderr, err := run(t, "--debug")
	require.NoError(t, err)
	assert.Contains(t, stdout, "## Changelog")
	assert.Contains(t, stderr, "[DEBUG]")

	_, stderr, err = run(t)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "[DEBUG]", "debug logging is reset between runs")
}

func ptr(s string) *string {
	return &s
}

func TestDoctorCmd(t *testing.T) {
	dir := testutil.IsolateEnv(t)

	stdout, stderr, err := run(t, "doctor")
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, stdout, "✗ Changelog")
	assert.Empty(t, stderr, "a failing doctor run prints only its report")

	testutil.WriteFile(t, filepath.Join(dir, "CHANGELOG.md"), testChangelog)
	stdout, stderr, err = run(t, "doctor")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Release section: 1.2.0")
	assert.Empty(t, stderr)
}
