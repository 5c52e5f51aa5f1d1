package config

import "time"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# relnotes configuration
# Every key can also be set with a RELNOTES_<KEY> environment variable.

changelog_path: CHANGELOG.md          # Changelog to read
header: "## Changelog"                # Replaces the header line of the extracted section
selection: index                      # index (second section) | versioned (first release section)
repo_root: false                      # Resolve changelog_path from the git repository root
remote_url: ""                        # Fetch the changelog over HTTP instead of reading a file
remote_timeout: 5s                    # Timeout for remote_url
`
}

// GetDefaults returns the default configuration values keyed by koanf path.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_path": "CHANGELOG.md",
		"header":         "## Changelog",
		"selection":      "index",
		"repo_root":      false,
		"remote_url":     "",
		"remote_timeout": 5 * time.Second,
	}
}
