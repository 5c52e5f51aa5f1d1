package cli

import (
	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/spf13/cobra"
)

func newSectionsCmd(root *rootOptions) *cobra.Command {
	var (
		asYAML bool
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "sections [path]",
		Short: "List how the changelog is split into sections",
		Long: `List every section of the changelog with its index, version label, line
count and heading. The section that relnotes would print is marked with '*'.

Use this to check why relnotes printed an unexpected block or failed with a
"malformed changelog" error.`,
		Example: `  # List sections of ./CHANGELOG.md
  relnotes sections

  # Machine-readable output
  relnotes sections --yaml

  # No colors, for logs
  relnotes sections --plain docs/CHANGELOG.md`,
		Args: maximumOneArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}

			doc, err := loadDocument(cmd.Context(), cmd, cfg, args)
			if err != nil {
				return err
			}

			selection := changelog.Selection(cfg.Selection)
			if asYAML {
				return changelog.WriteSectionsYAML(doc, selection, cmd.OutOrStdout())
			}
			return changelog.FormatSections(doc, cmd.OutOrStdout(), changelog.FormatOptions{
				Plain:     plain,
				Selection: selection,
			})
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output sections as YAML")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable colors")

	return cmd
}
