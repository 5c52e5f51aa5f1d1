package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/spf13/cobra"
)

// rootOptions holds the flag values shared by the root command and its
// subcommands.
type rootOptions struct {
	configPath string
	debug      bool
	url        string
	header     string
	selection  string
}

// NewRootCmd builds the relnotes command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "relnotes [path]",
		Short: "Print the latest release section of a changelog",
		Long: `relnotes prints the most recent release section of a Keep a Changelog
style CHANGELOG.md, retitled as "## Changelog", so it can be pasted into
release notes or piped into a release tool.

The changelog is split before every line that starts with "## [<digit>".
Everything above the first release heading is the first section (usually the
title and the Unreleased block); the section right after it is printed.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (RELNOTES_*)
  3. Project config (.relnotes.yml)
  4. User config (~/.config/relnotes/config.yml)
  5. Built-in defaults

Exit codes:
  0  success
  1  unexpected failure
  2  changelog not found or unreadable
  3  invalid arguments or configuration
  4  changelog has no release section to print`,
		Example: `  # Print the latest release of ./CHANGELOG.md
  relnotes

  # Use another file
  relnotes docs/CHANGELOG.md

  # Fetch the changelog over HTTP
  relnotes --url https://raw.githubusercontent.com/org/repo/main/CHANGELOG.md

  # Pick the first versioned section, even without an Unreleased block
  relnotes --selection versioned

  # Feed a GitHub release
  relnotes | gh release create v1.2.0 --notes-file -`,
		Args:          maximumOneArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureDebug(cmd.ErrOrStderr(), opts.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExcerpt(cmd, opts, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Path to a project config file (default: .relnotes.yml)")
	pf.BoolVar(&opts.debug, "debug", false, "Print debug output to stderr")
	pf.StringVar(&opts.url, "url", "", "Fetch the changelog from a URL instead of a file")
	pf.StringVar(&opts.selection, "selection", string(changelog.SelectIndex),
		"Section selection strategy: index (section after the preamble) or versioned (first release heading)")

	cmd.Flags().StringVar(&opts.header, "header", changelog.DefaultHeader, "Heading that replaces the release heading")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &ExitError{
			Code: ExitInvalidArguments,
			Err:  clierrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine(), "Run 'relnotes --help' for usage"),
		}
	})

	cmd.AddCommand(newSectionsCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newDoctorCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command and reports any error on stderr.
func ExecuteContext(ctx context.Context) error {
	cmd := NewRootCmd()
	err := cmd.ExecuteContext(ctx)
	reportError(cmd.ErrOrStderr(), err)
	return err
}

// reportError prints err unless it is a bare exit status.
func reportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	clierrors.FprintAny(w, err)
}

func maximumOneArg(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return &ExitError{
			Code: ExitInvalidArguments,
			Err:  clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(), "Pass at most one changelog path"),
		}
	}
	return nil
}

// configureDebug routes the package debug loggers to w when enabled.
func configureDebug(w io.Writer, enabled bool) {
	if !enabled {
		changelog.SetDebugLogger(nil)
		git.SetDebugLogger(nil)
		return
	}

	logger := func(format string, args ...any) {
		fmt.Fprintf(w, "[DEBUG] "+format+"\n", args...)
	}
	changelog.SetDebugLogger(logger)
	git.SetDebugLogger(logger)
}

func runExcerpt(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	if opts.debug {
		fmt.Fprintf(cmd.ErrOrStderr(), "[DEBUG] Config: %+v\n", *cfg)
	}

	doc, err := loadDocument(cmd.Context(), cmd, cfg, args)
	if err != nil {
		return err
	}

	excerptor := &changelog.Excerptor{
		Header:    cfg.Header,
		Selection: changelog.Selection(cfg.Selection),
	}
	if err := excerptor.WriteTo(doc, cmd.OutOrStdout()); err != nil {
		return classifyError(err)
	}
	return nil
}
