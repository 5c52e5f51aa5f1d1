package changelog

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain     bool      // Disable colors
	MaxWidth  int       // Maximum line width (0 = auto-detect)
	Selection Selection // Strategy used to mark the selected section
}

// SectionSummary describes one section of a document for listings.
type SectionSummary struct {
	Index    int    `yaml:"index"`
	Version  string `yaml:"version,omitempty"`
	Header   string `yaml:"header"`
	Lines    int    `yaml:"lines"`
	Selected bool   `yaml:"selected"`
}

// SectionsReport is the YAML form of a document's partition.
type SectionsReport struct {
	Source   string           `yaml:"source"`
	Sections []SectionSummary `yaml:"sections"`
}

// Summarize builds the section summaries of a document. The section the
// selection strategy would extract, if any, is marked as selected.
func Summarize(doc *Document, selection Selection) []SectionSummary {
	selected := -1
	if s, err := doc.Select(selection); err == nil {
		selected = s.Index
	}

	sections := doc.Sections()
	summaries := make([]SectionSummary, len(sections))
	for i, s := range sections {
		summaries[i] = SectionSummary{
			Index:    s.Index,
			Version:  s.Version(),
			Header:   s.Header(),
			Lines:    len(s.Lines),
			Selected: s.Index == selected,
		}
	}
	return summaries
}

// FormatSections writes a one-line summary per section to the writer.
func FormatSections(doc *Document, w io.Writer, opts FormatOptions) error {
	summaries := Summarize(doc, opts.Selection)
	if len(summaries) == 0 {
		_, err := fmt.Fprintf(w, "%s: no sections\n", doc.Source)
		return err
	}

	width := output.ResolveWidth(opts.MaxWidth)

	for _, s := range summaries {
		if err := writeSectionLine(s, w, opts, width); err != nil {
			return fmt.Errorf("formatting section %d: %w", s.Index, err)
		}
	}

	return nil
}

// writeSectionLine writes "<marker> <index> <label> (<n> lines)  <header>".
func writeSectionLine(s SectionSummary, w io.Writer, opts FormatOptions, width int) error {
	label := s.Version
	if label == "" {
		label = "preamble"
	}

	marker := " "
	if s.Selected {
		marker = "*"
	}

	prefix := fmt.Sprintf("%s %2d %-12s %4d line(s)  ", marker, s.Index, label, s.Lines)
	header := output.Truncate(s.Header, width-len(prefix))

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, header)
		return err
	}

	labelColor := color.New(color.FgCyan).SprintFunc()
	if s.Selected {
		labelColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	}
	dim := color.New(color.Faint).SprintFunc()

	_, err := fmt.Fprintf(w, "%s %2d %s %4d line(s)  %s\n",
		labelColor(marker), s.Index, labelColor(fmt.Sprintf("%-12s", label)), s.Lines, dim(header))
	return err
}

// WriteSectionsYAML writes the document's partition as YAML.
func WriteSectionsYAML(doc *Document, selection Selection, w io.Writer) error {
	report := SectionsReport{Source: doc.Source, Sections: Summarize(doc, selection)}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding sections: %w", err)
	}
	return enc.Close()
}
