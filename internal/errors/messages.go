package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the relnotes CLI.
// These templates ensure consistent, actionable error messages.

// ChangelogNotFound creates an error when the changelog cannot be read.
func ChangelogNotFound(source string, err error) *CLIError {
	return WrapWithMessage(err, Input,
		fmt.Sprintf("cannot read changelog %s", source),
		"Run relnotes from the directory containing CHANGELOG.md",
		"Or pass the path explicitly: relnotes path/to/CHANGELOG.md",
		"Or set changelog_path in .relnotes.yml",
	)
}

// MalformedChangelog creates an error when no release section can be selected.
func MalformedChangelog(err error) *CLIError {
	return Wrap(err, Document,
		"Release sections must start with a heading like: ## [1.2.0] - 2024-01-01",
		"The first section is treated as the Unreleased block; add at least one release below it",
		"Inspect how the file is split with: relnotes sections",
	)
}

// ConfigParseError creates an error for an invalid config file or value.
func ConfigParseError(path string, err error) *CLIError {
	if path == "" {
		path = ".relnotes.yml"
	}
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to load configuration (%s)", path),
		"Check the file for YAML syntax errors",
		"Show the effective configuration with: relnotes config show",
		"Check RELNOTES_* environment variables for typos",
	)
}

// InvalidSelection creates an error for an unknown --selection value.
func InvalidSelection(value string, valid []string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid selection: %s", value),
		"relnotes --selection <"+strings.Join(valid, "|")+">",
		fmt.Sprintf("Valid selections: %s", strings.Join(valid, ", ")),
	)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'relnotes --help' to see valid options",
	)
}
