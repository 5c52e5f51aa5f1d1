package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/progress"
	"github.com/spf13/cobra"
)

// loadConfig loads configuration and applies the flags that were set on cmd.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: opts.configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, &ExitError{Code: ExitInvalidArguments, Err: clierrors.ConfigParseError(opts.configPath, err)}
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.RemoteURL = opts.url
	}
	if flags.Changed("header") {
		if strings.ContainsAny(opts.header, "\r\n") {
			return nil, &ExitError{
				Code: ExitInvalidArguments,
				Err:  clierrors.NewArgumentError("invalid header: must be a single line", "Pass the heading text only, e.g. --header \"## What's new\""),
			}
		}
		cfg.Header = opts.header
	}
	if flags.Changed("selection") {
		cfg.Selection = opts.selection
	}

	if !isValidSelection(cfg.Selection) {
		return nil, &ExitError{
			Code: ExitInvalidArguments,
			Err:  clierrors.InvalidSelection(cfg.Selection, changelog.ValidSelections()),
		}
	}

	return cfg, nil
}

func isValidSelection(selection string) bool {
	for _, s := range changelog.ValidSelections() {
		if s == selection {
			return true
		}
	}
	return false
}

// loadDocument reads the changelog named by args, the remote URL or the
// configured path, in that order of precedence.
func loadDocument(ctx context.Context, cmd *cobra.Command, cfg *config.Configuration, args []string) (*changelog.Document, error) {
	if len(args) == 1 && cmd.Flags().Changed("url") {
		return nil, &ExitError{
			Code: ExitInvalidArguments,
			Err:  clierrors.InvalidFlagCombination("--url with a path argument", "Pass either a changelog path or --url, not both"),
		}
	}

	var (
		doc *changelog.Document
		err error
	)

	switch {
	case len(args) == 0 && cfg.RemoteURL != "":
		var sp *progress.Spinner
		if f, ok := cmd.ErrOrStderr().(*os.File); ok {
			sp = progress.StartSpinner(f, "Fetching "+cfg.RemoteURL)
		}
		doc, err = changelog.FetchRemote(ctx, cfg.RemoteURL, cfg.RemoteTimeout)
		sp.Stop(err != nil)
	default:
		path := cfg.ChangelogPath
		if len(args) == 1 {
			path = args[0]
		}
		if cfg.RepoRoot {
			path, err = git.ResolveFromRoot(path, "")
			if err != nil {
				return nil, &ExitError{Code: ExitFailure, Err: clierrors.WrapWithMessage(err, clierrors.Runtime, "locating repository root")}
			}
		}
		doc, err = changelog.Load(path)
	}

	if err != nil {
		return nil, classifyError(err)
	}
	return doc, nil
}

// classifyError converts changelog errors into exit-coded CLI errors.
func classifyError(err error) error {
	var notFound *changelog.InputNotFoundError
	if errors.As(err, &notFound) {
		return &ExitError{Code: ExitInputNotFound, Err: clierrors.ChangelogNotFound(notFound.Source, notFound.Err)}
	}

	if changelog.IsMalformedDocument(err) {
		return &ExitError{Code: ExitMalformedDocument, Err: clierrors.MalformedChangelog(err)}
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	return &ExitError{Code: ExitFailure, Err: clierrors.Wrap(fmt.Errorf("relnotes: %w", err), clierrors.Runtime)}
}
