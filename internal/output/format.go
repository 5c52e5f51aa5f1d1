// Package output provides terminal output formatting utilities for relnotes.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"os"
	"unicode/utf8"

	"golang.org/x/term"
)

// DefaultWidth is used when stdout is not a terminal.
const DefaultWidth = 80

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return DefaultWidth
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ResolveWidth returns maxWidth if positive, otherwise the terminal width.
func ResolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	return GetTerminalWidth()
}

// Truncate shortens text to at most maxLen runes, ending with "..." when cut.
// A maxLen below 4 leaves the text unchanged.
func Truncate(text string, maxLen int) string {
	if maxLen < 4 || utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLen-3]) + "..."
}
