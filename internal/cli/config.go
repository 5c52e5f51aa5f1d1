package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cGreen  = color.New(color.FgGreen).SprintFunc()
	cYellow = color.New(color.FgYellow).SprintFunc()
	cBold   = color.New(color.Bold).SprintFunc()
	cDim    = color.New(color.Faint).SprintFunc()
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage relnotes configuration",
		Long: `Manage relnotes configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (RELNOTES_*)
  2. Project config (.relnotes.yml)
  3. User config (~/.config/relnotes/config.yml)
  4. Built-in defaults`,
		Example: `  # Show the effective configuration
  relnotes config show

  # Write a commented project config
  relnotes config init

  # Convert a legacy .relnotes.json
  relnotes config migrate --dry-run`,
		Args: cobra.NoArgs,
	}

	cmd.AddCommand(newConfigShowCmd(root))
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigMigrateCmd())

	return cmd
}

func newConfigShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}

			out, err := cfg.ToYAML()
			if err != nil {
				return clierrors.Wrap(err, clierrors.Runtime)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var (
		user  bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Long: `Write a commented config file with every option set to its default.

By default the project config (.relnotes.yml) is written in the current
directory. Use --user to write the user config instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := initializeConfig(cmd.OutOrStdout(), user, force)
			if err != nil {
				return &ExitError{Code: ExitFailure, Err: clierrors.Wrap(err, clierrors.Runtime)}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Write the user config instead of the project config")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}

func newConfigMigrateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Convert .relnotes.json to .relnotes.yml",
		Long: `Convert the legacy JSON project config (.relnotes.json) to YAML.

An existing .relnotes.yml is never overwritten. After a successful migration
the JSON file is kept as .relnotes.json.bak.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := config.MigrateProjectConfig(dryRun)
			if err != nil {
				return &ExitError{
					Code: ExitInvalidArguments,
					Err:  clierrors.ConfigParseError(config.LegacyProjectConfigPath(), err),
				}
			}

			mark := cYellow("-")
			if result.Success {
				mark = cGreen("✓")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, result.Message)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be migrated without writing")

	return cmd
}

// initializeConfig writes the default config template. It reports whether a
// file was created and leaves an existing file alone unless force is set.
func initializeConfig(out io.Writer, user, force bool) (bool, error) {
	configPath, err := getConfigPath(user)
	if err != nil {
		return false, fmt.Errorf("getting config path: %w", err)
	}

	_, statErr := os.Stat(configPath)
	configExists := statErr == nil

	if configExists && !force {
		fmt.Fprintf(out, "%s %s: exists at %s\n", cGreen("✓"), cBold("Config"), cDim(configPath))
		return false, nil
	}

	if err := writeDefaultConfig(configPath); err != nil {
		return false, fmt.Errorf("writing default config: %w", err)
	}

	if configExists {
		fmt.Fprintf(out, "%s %s: overwritten at %s\n", cGreen("✓"), cBold("Config"), cDim(configPath))
	} else {
		fmt.Fprintf(out, "%s %s: created at %s\n", cGreen("✓"), cBold("Config"), cDim(configPath))
	}

	return !configExists, nil
}

// getConfigPath returns the user or project config path
func getConfigPath(user bool) (string, error) {
	if !user {
		return config.ProjectConfigPath(), nil
	}
	configPath, err := config.UserConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to get user config path: %w", err)
	}
	return configPath, nil
}

// writeDefaultConfig writes the default configuration to the given path
func writeDefaultConfig(configPath string) error {
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(configPath, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
