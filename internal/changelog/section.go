package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

var versionHeaderPattern = regexp.MustCompile(`^## \[\d`)

// IsVersionHeader returns true if the line starts a version section.
// "## [1.2.0] - 2024-01-01" matches; "## [Unreleased]" and "## Unreleased" do not.
func IsVersionHeader(line string) bool {
	return versionHeaderPattern.MatchString(line)
}

// Partition splits lines into sections in document order. A new section
// starts immediately before every version header line. Lines before the
// first header form section 0. Concatenating the sections' lines always
// reproduces the input, and an empty input yields no sections.
func Partition(lines []string) []Section {
	var sections []Section
	var current []string

	for _, line := range lines {
		if IsVersionHeader(line) && len(current) > 0 {
			sections = append(sections, Section{Index: len(sections), Lines: current})
			current = nil
		}
		current = append(current, line)
	}

	if len(current) > 0 {
		sections = append(sections, Section{Index: len(sections), Lines: current})
	}

	return sections
}

// Sections partitions the document into version sections.
func (d *Document) Sections() []Section {
	return Partition(d.Lines)
}

// Latest returns the section at index 1, the latest release when section 0
// is the preamble. Returns MalformedDocumentError if there are fewer than
// two sections.
//
// A document without a preamble (first line is a version header) yields the
// second-latest release here; use Select with SelectVersioned for that layout.
func (d *Document) Latest() (*Section, error) {
	return d.Select(SelectIndex)
}

// Select returns the section picked by the given strategy.
func (d *Document) Select(selection Selection) (*Section, error) {
	sections := d.Sections()
	logDebug("[changelog] %s: %d section(s), selection %q", d.Source, len(sections), selection)

	switch selection {
	case SelectVersioned:
		for i := range sections {
			if sections[i].IsVersioned() {
				return &sections[i], nil
			}
		}
		return nil, &MalformedDocumentError{
			Source:   d.Source,
			Sections: len(sections),
			Reason:   "no version section found",
		}
	case SelectIndex, "":
		if len(sections) < 2 {
			return nil, &MalformedDocumentError{
				Source:   d.Source,
				Sections: len(sections),
				Reason:   "expected at least two sections (preamble and latest version)",
			}
		}
		return &sections[1], nil
	default:
		return nil, fmt.Errorf("unknown selection %q (valid: %s)",
			selection, strings.Join(ValidSelections(), ", "))
	}
}

// ListVersions returns the version labels of all versioned sections in
// document order.
func (d *Document) ListVersions() []string {
	var versions []string
	for _, s := range d.Sections() {
		if s.IsVersioned() {
			versions = append(versions, s.Version())
		}
	}
	return versions
}
