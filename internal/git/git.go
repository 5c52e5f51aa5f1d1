// Package git locates the git repository that contains a directory, so a
// changelog path can be resolved from the repository root. It uses the
// go-git library and never shells out to the git CLI.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the git repository containing path, walking up the
// directory tree to find it. If path is empty, the current working
// directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return repo, nil
}

// GetRepositoryRoot returns the absolute worktree root of the repository
// containing dir (or the current directory when dir is empty).
func GetRepositoryRoot(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] GetRepositoryRoot: %s", root)
	return root, nil
}

// ResolveFromRoot joins a relative path onto the repository root containing
// dir. Absolute paths are returned unchanged. Outside a repository the path
// is returned unchanged so it stays relative to the working directory.
func ResolveFromRoot(path, dir string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	root, err := GetRepositoryRoot(dir)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			logDebug("[git] not a repository, keeping %s", path)
			return path, nil
		}
		return "", err
	}

	return filepath.Join(root, path), nil
}
