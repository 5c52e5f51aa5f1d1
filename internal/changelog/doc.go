// Package changelog extracts release notes from a Keep a Changelog style
// CHANGELOG.md.
//
// This package implements:
//   - CHANGELOG.md loading from files, readers and remote URLs
//   - Partitioning of a document into version sections
//   - Selection of the latest released section and header normalization
//   - Terminal and YAML listings of a document's sections
//
// A version section starts at a line matching `## [` followed by a digit.
// Lines before the first such header form the preamble section, which
// conventionally holds the title and the "Unreleased" notes. The latest
// release is therefore the section at index 1.
package changelog
