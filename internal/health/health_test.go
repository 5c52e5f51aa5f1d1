package health

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/config"
	"github.com/ariel-frischer/relnotes/internal/testutil"
	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validChangelog = "# Changelog\n\n## [1.0.0] - 2024-01-01\n- Initial release\n"

func checkByName(t *testing.T, report *HealthReport, name string) CheckResult {
	t.Helper()
	for _, check := range report.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("check %q not in report", name)
	return CheckResult{}
}

func TestRunHealthChecks(t *testing.T) {
	tests := map[string]struct {
		files       map[string]string
		gitInit     bool
		wantPassed  bool
		wantFailed  []string
		wantSkipped []string
	}{
		"everything in place": {
			files:      map[string]string{"CHANGELOG.md": validChangelog},
			gitInit:    true,
			wantPassed: true,
		},
		"outside a repository is fine by default": {
			files:      map[string]string{"CHANGELOG.md": validChangelog},
			wantPassed: true,
		},
		"missing changelog": {
			wantFailed:  []string{CheckChangelog},
			wantSkipped: []string{CheckRelease},
		},
		"no release section": {
			files:      map[string]string{"CHANGELOG.md": "# Changelog\n\n## Unreleased\n"},
			wantFailed: []string{CheckRelease},
		},
		"invalid config": {
			files:       map[string]string{".relnotes.yml": "selection: newest\n", "CHANGELOG.md": validChangelog},
			wantFailed:  []string{CheckConfiguration},
			wantSkipped: []string{CheckChangelog, CheckRelease},
		},
		"repo_root without a repository": {
			files:      map[string]string{".relnotes.yml": "repo_root: true\n", "CHANGELOG.md": validChangelog},
			wantFailed: []string{CheckRepository},
		},
		"remote url skips the file check": {
			files:       map[string]string{".relnotes.yml": "remote_url: https://example.com/CHANGELOG.md\n"},
			wantPassed:  true,
			wantSkipped: []string{CheckChangelog, CheckRelease},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := testutil.IsolateEnv(t)
			for rel, content := range tt.files {
				testutil.WriteFile(t, filepath.Join(dir, rel), content)
			}
			if tt.gitInit {
				_, err := git.PlainInit(dir, false)
				require.NoError(t, err)
			}

			report := RunHealthChecks(Options{})
			require.Len(t, report.Checks, 4)
			assert.Equal(t, tt.wantPassed, report.Passed, FormatReport(report))

			for _, name := range tt.wantFailed {
				check := checkByName(t, report, name)
				assert.False(t, check.Passed, name)
				assert.False(t, check.Skipped, name)
			}
			for _, name := range tt.wantSkipped {
				assert.True(t, checkByName(t, report, name).Skipped, name)
			}
		})
	}
}

func TestCheckChangelogReadable_ListsReleases(t *testing.T) {
	dir := testutil.IsolateEnv(t)

	tests := map[string]struct {
		content string
		want    string
	}{
		"no releases": {
			content: "# Changelog\n## Unreleased\n",
			want:    "CHANGELOG.md (2 lines, 1 sections)",
		},
		"two releases": {
			content: "# Changelog\n## [1.1.0]\n## [1.0.0]\n",
			want:    "CHANGELOG.md (3 lines, 3 sections), releases: 1.1.0, 1.0.0",
		},
		"many releases": {
			content: "## [4.0.0]\n## [3.0.0]\n## [2.0.0]\n## [1.0.0]\n## [0.1.0]\n",
			want:    "CHANGELOG.md (5 lines, 5 sections), releases: 4.0.0, 3.0.0, 2.0.0 and 2 more",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.WriteFile(t, filepath.Join(dir, "CHANGELOG.md"), tt.content)

			doc, check := CheckChangelogReadable(&config.Configuration{ChangelogPath: "CHANGELOG.md"}, "")
			require.NotNil(t, doc)
			assert.True(t, check.Passed)
			assert.Equal(t, tt.want, check.Message)
		})
	}
}

func TestCheckReleaseSection(t *testing.T) {
	doc, err := changelog.LoadFromReader(strings.NewReader("## [2.0.0]\n- a\n## [1.0.0]\n- b\n"), "test")
	require.NoError(t, err)

	check := CheckReleaseSection(doc, changelog.SelectVersioned)
	assert.True(t, check.Passed)
	assert.Equal(t, "2.0.0: ## [2.0.0]", check.Message)

	check = CheckReleaseSection(doc, changelog.SelectIndex)
	assert.True(t, check.Passed)
	assert.Equal(t, "1.0.0: ## [1.0.0]", check.Message)
}

func TestFormatReport(t *testing.T) {
	report := &HealthReport{
		Checks: []CheckResult{
			{Name: CheckConfiguration, Passed: true, Message: "loaded"},
			{Name: CheckChangelog, Passed: false, Message: "missing"},
			{Name: CheckRelease, Skipped: true, Message: "skipped: changelog is not readable"},
		},
	}

	assert.Equal(t,
		"✓ Configuration: loaded\n✗ Changelog: missing\n○ Release section: skipped: changelog is not readable\n",
		FormatReport(report))
}
