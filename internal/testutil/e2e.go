package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
)

var (
	// relnotesBinaryPath caches the built relnotes binary path.
	relnotesBinaryPath string
	relnotesBuildOnce  sync.Once
	relnotesBuildErr   error
)

// E2EEnv provides an isolated environment for E2E testing.
// Commands run in a temp directory with HOME pointing at it, so no user
// config or RELNOTES_* variable of the developer leaks into a test.
type E2EEnv struct {
	t       *testing.T
	tempDir string
	extra   []string
}

// CommandResult captures the result of running a relnotes command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv creates a new E2E test environment and builds relnotes once per
// test binary.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	relnotesBuildOnce.Do(func() {
		relnotesBinaryPath, relnotesBuildErr = buildRelnotes()
	})
	if relnotesBuildErr != nil {
		t.Fatalf("building relnotes: %v", relnotesBuildErr)
	}

	return &E2EEnv{t: t, tempDir: t.TempDir()}
}

func buildRelnotes() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("determining current file location")
	}
	// Navigate from internal/testutil/ to repo root
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "relnotes-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}

	binaryPath := filepath.Join(tmpDir, "relnotes")
	if runtime.GOOS == "windows" {
		binaryPath += ".exe"
	}

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/relnotes")
	cmd.Dir = repoRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("go build: %w\nOutput: %s", err, output)
	}

	return binaryPath, nil
}

// Run executes relnotes in the environment's temp directory.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()
	return e.RunIn(e.tempDir, args...)
}

// RunIn executes relnotes in dir, which is relative to the temp directory
// unless absolute.
func (e *E2EEnv) RunIn(dir string, args ...string) CommandResult {
	e.t.Helper()

	if !filepath.IsAbs(dir) {
		dir = filepath.Join(e.tempDir, dir)
	}

	start := time.Now()

	cmd := exec.Command(relnotesBinaryPath, args...)
	cmd.Dir = dir
	cmd.Env = e.buildIsolatedEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("running relnotes: %v", err)
		}
	}

	return result
}

// SetEnv adds a variable to the environment of subsequent runs.
func (e *E2EEnv) SetEnv(key, value string) {
	e.extra = append(e.extra, key+"="+value)
}

func (e *E2EEnv) buildIsolatedEnv() []string {
	env := []string{
		"HOME=" + e.tempDir,
		"XDG_CONFIG_HOME=" + filepath.Join(e.tempDir, ".config"),
		"NO_COLOR=1",
	}

	safeVars := []string{
		"PATH",
		"LANG",
		"LC_ALL",
		"TMPDIR",
		"TMP",
		"TEMP",
		"SYSTEMROOT",
	}
	for _, key := range safeVars {
		if val, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+val)
		}
	}

	return append(env, e.extra...)
}

// TempDir returns the root temp directory for this test environment.
func (e *E2EEnv) TempDir() string {
	return e.tempDir
}

// WriteChangelog writes content to a file relative to the temp directory.
func (e *E2EEnv) WriteChangelog(rel, content string) string {
	e.t.Helper()

	path := filepath.Join(e.tempDir, rel)
	WriteFile(e.t, path, content)
	return path
}

// InitGitRepo initializes a git repository in the temp directory.
func (e *E2EEnv) InitGitRepo() {
	e.t.Helper()

	if _, err := git.PlainInit(e.tempDir, false); err != nil {
		e.t.Fatalf("git init failed: %v", err)
	}
}
