package changelog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for changelog operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// InputNotFoundError is returned when the changelog source cannot be opened or read.
type InputNotFoundError struct {
	Source string
	Err    error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("reading changelog %s: %v", e.Source, e.Err)
}

func (e *InputNotFoundError) Unwrap() error {
	return e.Err
}

// MalformedDocumentError is returned when a document has no section to extract.
type MalformedDocumentError struct {
	Source   string
	Sections int
	Reason   string
}

func (e *MalformedDocumentError) Error() string {
	source := e.Source
	if source == "" {
		source = "changelog"
	}
	return fmt.Sprintf("%s: %s (found %d section(s))", source, e.Reason, e.Sections)
}

// Load reads a changelog file from the given path.
// Any failure to open or read the file is an InputNotFoundError.
func Load(path string) (*Document, error) {
	logDebug("[changelog] loading %s", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, &InputNotFoundError{Source: path, Err: err}
	}
	defer f.Close()

	return LoadFromReader(f, path)
}

// LoadFromReader reads a changelog from an io.Reader.
// The source name is kept on the Document for error messages.
func LoadFromReader(r io.Reader, source string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &InputNotFoundError{Source: source, Err: err}
	}

	doc := &Document{Source: source, Lines: splitLines(string(data))}
	logDebug("[changelog] loaded %d line(s) from %s", len(doc.Lines), source)
	return doc, nil
}

// NewDocument builds a Document from already split lines.
func NewDocument(source string, lines []string) *Document {
	return &Document{Source: source, Lines: lines}
}

// splitLines splits text on "\n", dropping a "\r" before each terminator.
// Only the terminator is removed; a final terminator adds no empty line.
func splitLines(text string) []string {
	if text == "" {
		return []string{}
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// IsMalformedDocument returns true if the error is a MalformedDocumentError.
func IsMalformedDocument(err error) bool {
	var md *MalformedDocumentError
	return errors.As(err, &md)
}
