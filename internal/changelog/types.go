package changelog

import "strings"

// Document is a changelog loaded into memory as an ordered list of lines.
// Line terminators are stripped; a final terminator does not produce a
// trailing empty line.
type Document struct {
	// Source names where the document was read from (a path or URL).
	Source string
	Lines  []string
}

// Section is a contiguous run of document lines that starts at a version
// header, or the preamble before the first version header.
type Section struct {
	Index int
	Lines []string
}

// Header returns the first line of the section, or "" for an empty section.
func (s Section) Header() string {
	if len(s.Lines) == 0 {
		return ""
	}
	return s.Lines[0]
}

// IsVersioned returns true if the section starts with a version header.
func (s Section) IsVersioned() bool {
	return IsVersionHeader(s.Header())
}

// Version returns the bracketed label of the section header,
// e.g. "1.2.0" for "## [1.2.0] - 2024-01-01". Returns "" for the preamble.
func (s Section) Version() string {
	if !s.IsVersioned() {
		return ""
	}
	label := strings.TrimPrefix(s.Header(), "## [")
	if end := strings.Index(label, "]"); end >= 0 {
		return label[:end]
	}
	return label
}

// Selection names the strategy used to pick the section to extract.
type Selection string

const (
	// SelectIndex picks the section at index 1, assuming index 0 is the
	// preamble or "Unreleased" block.
	SelectIndex Selection = "index"
	// SelectVersioned picks the first section that starts with a version header.
	SelectVersioned Selection = "versioned"
)

// DefaultHeader replaces the header line of the extracted section.
const DefaultHeader = "## Changelog"

// ValidSelections returns the selection strategies in display order.
func ValidSelections() []string {
	return []string{string(SelectIndex), string(SelectVersioned)}
}
