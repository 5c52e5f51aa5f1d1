package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MigrationResult describes the outcome of a migration operation
type MigrationResult struct {
	SourcePath string
	TargetPath string
	Success    bool
	DryRun     bool
	Message    string
}

// MigrateJSONToYAML converts a JSON config file to YAML format.
// It never overwrites an existing YAML file and writes nothing in dry-run mode.
// After a successful write the JSON file is renamed to <name>.bak.
func MigrateJSONToYAML(jsonPath, yamlPath string, dryRun bool) (*MigrationResult, error) {
	result := &MigrationResult{
		SourcePath: jsonPath,
		TargetPath: yamlPath,
		DryRun:     dryRun,
	}

	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			result.Message = fmt.Sprintf("No JSON config found at %s", jsonPath)
			return result, nil
		}
		return nil, fmt.Errorf("failed to read JSON config: %w", err)
	}

	var configData map[string]interface{}
	if err := json.Unmarshal(jsonData, &configData); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	if _, err := os.Stat(yamlPath); err == nil {
		result.Message = fmt.Sprintf("YAML config already exists at %s (skipped)", yamlPath)
		return result, nil
	}

	if dryRun {
		result.Success = true
		result.Message = fmt.Sprintf("Would migrate %s → %s", jsonPath, yamlPath)
		return result, nil
	}

	yamlData, err := yaml.Marshal(configData)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to YAML: %w", err)
	}

	header := "# relnotes configuration\n# Migrated from JSON format\n\n"
	if err := os.WriteFile(yamlPath, []byte(header+string(yamlData)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write YAML config: %w", err)
	}

	if err := os.Rename(jsonPath, jsonPath+".bak"); err != nil {
		return nil, fmt.Errorf("failed to backup legacy config: %w", err)
	}

	result.Success = true
	result.Message = fmt.Sprintf("Migrated %s → %s (backup: %s.bak)", jsonPath, yamlPath, jsonPath)
	return result, nil
}

// MigrateProjectConfig migrates .relnotes.json to .relnotes.yml.
func MigrateProjectConfig(dryRun bool) (*MigrationResult, error) {
	return MigrateJSONToYAML(LegacyProjectConfigPath(), ProjectConfigPath(), dryRun)
}

// ToYAML renders the configuration as YAML, as `relnotes config show` prints it.
func (c *Configuration) ToYAML() (string, error) {
	data, err := yaml.Marshal(struct {
		ChangelogPath string `yaml:"changelog_path"`
		Header        string `yaml:"header"`
		Selection     string `yaml:"selection"`
		RepoRoot      bool   `yaml:"repo_root"`
		RemoteURL     string `yaml:"remote_url"`
		RemoteTimeout string `yaml:"remote_timeout"`
	}{
		ChangelogPath: c.ChangelogPath,
		Header:        c.Header,
		Selection:     c.Selection,
		RepoRoot:      c.RepoRoot,
		RemoteURL:     c.RemoteURL,
		RemoteTimeout: c.RemoteTimeout.String(),
	})
	if err != nil {
		return "", fmt.Errorf("encoding configuration: %w", err)
	}
	return string(data), nil
}
