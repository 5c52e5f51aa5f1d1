package cli

import (
	"fmt"

	"github.com/ariel-frischer/relnotes/internal/health"
	"github.com/spf13/cobra"
)

func newDoctorCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that relnotes can find and split the changelog",
		Long: `Run setup checks: the configuration loads, the git repository is found
(when repo_root is enabled), the changelog is readable and a release section
can be selected. Exits with status 1 when any check fails.`,
		Example: `  relnotes doctor
  relnotes doctor --config ci/relnotes.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := health.RunHealthChecks(health.Options{ConfigPath: root.configPath})
			fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))
			if !report.Passed {
				return NewExitError(ExitFailure)
			}
			return nil
		},
	}
}
