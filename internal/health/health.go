// Package health provides setup checks for relnotes. It validates that the
// configuration loads, the changelog can be read and a release section can be
// selected, returning structured reports used by the 'relnotes doctor' command.
package health

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/config"
	"github.com/ariel-frischer/relnotes/internal/git"
)

// Check names, in report order.
const (
	CheckConfiguration = "Configuration"
	CheckRepository    = "Git repository"
	CheckChangelog     = "Changelog"
	CheckRelease       = "Release section"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Skipped checks are reported but do not fail the report.
	Skipped bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Options controls where the checks look.
type Options struct {
	// ConfigPath is an explicit project config path ("" for .relnotes.yml).
	ConfigPath string
	// Dir is the directory used for repository detection ("" for the working directory).
	Dir string
}

// RunHealthChecks runs all health checks and returns a report.
// Later checks are skipped when the one they depend on fails.
func RunHealthChecks(opts Options) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0, 4),
		Passed: true,
	}

	cfg, cfgCheck := CheckConfig(opts.ConfigPath)
	report.add(cfgCheck)

	report.add(CheckGitRepository(opts.Dir, cfg))

	if cfg == nil {
		report.add(skipped(CheckChangelog, "configuration did not load"))
		report.add(skipped(CheckRelease, "configuration did not load"))
		return report
	}

	doc, docCheck := CheckChangelogReadable(cfg, opts.Dir)
	report.add(docCheck)

	if doc == nil {
		report.add(skipped(CheckRelease, "changelog is not readable"))
		return report
	}
	report.add(CheckReleaseSection(doc, changelog.Selection(cfg.Selection)))

	return report
}

func (r *HealthReport) add(check CheckResult) {
	r.Checks = append(r.Checks, check)
	if !check.Passed && !check.Skipped {
		r.Passed = false
	}
}

func skipped(name, reason string) CheckResult {
	return CheckResult{Name: name, Skipped: true, Message: "skipped: " + reason}
}

// CheckConfig loads the configuration without printing warnings.
func CheckConfig(configPath string) (*config.Configuration, CheckResult) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		SkipWarnings:      true,
	})
	if err != nil {
		return nil, CheckResult{
			Name:    CheckConfiguration,
			Passed:  false,
			Message: firstLine(err.Error()),
		}
	}

	return cfg, CheckResult{
		Name:    CheckConfiguration,
		Passed:  true,
		Message: fmt.Sprintf("loaded (selection: %s)", cfg.Selection),
	}
}

// CheckGitRepository reports whether dir is inside a git repository.
// Being outside a repository only fails when repo_root is enabled.
func CheckGitRepository(dir string, cfg *config.Configuration) CheckResult {
	root, err := git.GetRepositoryRoot(dir)
	if err == nil {
		return CheckResult{Name: CheckRepository, Passed: true, Message: "root at " + root}
	}

	if cfg != nil && cfg.RepoRoot {
		return CheckResult{
			Name:    CheckRepository,
			Passed:  false,
			Message: "repo_root is enabled but no repository was found",
		}
	}
	return CheckResult{Name: CheckRepository, Passed: true, Message: "not a repository (paths are relative to the working directory)"}
}

// CheckChangelogReadable loads the configured changelog file. A configured
// remote URL is not fetched; the check is skipped instead.
func CheckChangelogReadable(cfg *config.Configuration, dir string) (*changelog.Document, CheckResult) {
	if cfg.RemoteURL != "" {
		return nil, skipped(CheckChangelog, "remote_url is set ("+cfg.RemoteURL+")")
	}

	path := cfg.ChangelogPath
	if cfg.RepoRoot {
		resolved, err := git.ResolveFromRoot(path, dir)
		if err != nil {
			return nil, CheckResult{Name: CheckChangelog, Passed: false, Message: firstLine(err.Error())}
		}
		path = resolved
	}

	doc, err := changelog.Load(path)
	if err != nil {
		return nil, CheckResult{Name: CheckChangelog, Passed: false, Message: firstLine(err.Error())}
	}

	msg := fmt.Sprintf("%s (%d lines, %d sections)", path, len(doc.Lines), len(doc.Sections()))
	if versions := doc.ListVersions(); len(versions) > 0 {
		msg += fmt.Sprintf(", releases: %s", summarizeVersions(versions))
	}
	return doc, CheckResult{Name: CheckChangelog, Passed: true, Message: msg}
}

// CheckReleaseSection verifies that selection picks a section from doc.
func CheckReleaseSection(doc *changelog.Document, selection changelog.Selection) CheckResult {
	section, err := doc.Select(selection)
	if err != nil {
		return CheckResult{Name: CheckRelease, Passed: false, Message: firstLine(err.Error())}
	}

	label := section.Version()
	if label == "" {
		label = fmt.Sprintf("section %d", section.Index)
	}
	return CheckResult{
		Name:    CheckRelease,
		Passed:  true,
		Message: fmt.Sprintf("%s: %s", label, section.Header()),
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var sb strings.Builder

	for _, check := range report.Checks {
		mark := "✗"
		switch {
		case check.Skipped:
			mark = "○"
		case check.Passed:
			mark = "✓"
		}
		fmt.Fprintf(&sb, "%s %s: %s\n", mark, check.Name, check.Message)
	}

	return sb.String()
}

// summarizeVersions lists at most three versions in document order.
func summarizeVersions(versions []string) string {
	const shown = 3
	if len(versions) <= shown {
		return strings.Join(versions, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(versions[:shown], ", "), len(versions)-shown)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
