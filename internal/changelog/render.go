package changelog

import (
	"fmt"
	"io"
	"strings"
)

// Excerptor extracts one section of a changelog and relabels its header.
type Excerptor struct {
	// Header replaces the first line of the selected section.
	Header string
	// Selection picks the section to extract.
	Selection Selection
}

// NewExcerptor returns an Excerptor that extracts the section at index 1
// under the "## Changelog" header.
func NewExcerptor() *Excerptor {
	return &Excerptor{Header: DefaultHeader, Selection: SelectIndex}
}

// Extract selects a section of the document and renders it.
func (e *Excerptor) Extract(doc *Document) (string, error) {
	section, err := doc.Select(e.Selection)
	if err != nil {
		return "", err
	}

	header := e.Header
	if header == "" {
		header = DefaultHeader
	}

	logDebug("[changelog] extracting section %d (%q)", section.Index, section.Header())
	return RenderSection(section, header), nil
}

// WriteTo extracts the section and writes it followed by a single newline.
// Nothing is written if extraction fails.
func (e *Excerptor) WriteTo(doc *Document, w io.Writer) error {
	text, err := e.Extract(doc)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, text); err != nil {
		return fmt.Errorf("writing excerpt: %w", err)
	}
	return nil
}

// ExtractLatestSection partitions lines, selects the section at index 1,
// replaces its header with "## Changelog" and joins the lines with "\n".
func ExtractLatestSection(lines []string) (string, error) {
	return NewExcerptor().Extract(NewDocument("", lines))
}

// RenderSection joins the section's lines with single newlines after
// replacing the first line with header. The section itself is not modified.
// No terminator is appended; a trailing empty line in the section is kept
// as content.
func RenderSection(section *Section, header string) string {
	if len(section.Lines) == 0 {
		return header
	}

	lines := make([]string, len(section.Lines))
	copy(lines, section.Lines)
	lines[0] = header

	return strings.Join(lines, "\n")
}
