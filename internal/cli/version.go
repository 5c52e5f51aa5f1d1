package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/ariel-frischer/relnotes/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Box drawing characters for the pretty version output.
const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

func newVersionCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for relnotes",
		Example: `  # Show version info
  relnotes version

  # Plain output (for scripts)
  relnotes version --plain`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := version.Get()
			if plain {
				printPlainVersion(cmd.OutOrStdout(), info)
				return
			}
			printPrettyVersion(cmd.OutOrStdout(), info, output.GetTerminalWidth())
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Plain output without formatting")

	return cmd
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer, info version.Info) {
	fmt.Fprintf(w, "relnotes %s\n", info.Version)
	fmt.Fprintf(w, "commit: %s\n", info.Commit)
	fmt.Fprintf(w, "built: %s\n", info.BuildDate)
	fmt.Fprintf(w, "go: %s\n", info.GoVersion)
	fmt.Fprintf(w, "platform: %s\n", info.Platform)
	if info.Dev {
		fmt.Fprintln(w, "build: development")
	}
}

// printPrettyVersion prints the version info in a centered box
func printPrettyVersion(w io.Writer, info version.Info, termWidth int) {
	dim := color.New(color.Faint).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	rows := []struct {
		label string
		value string
	}{
		{"Version", info.Version},
		{"Commit", truncateCommit(info.Commit)},
		{"Built", info.BuildDate},
		{"Go", info.GoVersion},
		{"Platform", info.Platform},
	}

	boxWidth := 44
	if termWidth < 50 {
		boxWidth = termWidth - 6
	}
	if boxWidth < 30 {
		boxWidth = 30
	}
	contentWidth := boxWidth - 4

	padding := (termWidth - boxWidth) / 2
	if padding < 0 {
		padding = 0
	}
	pad := strings.Repeat(" ", padding)

	fmt.Fprintln(w)
	fmt.Fprintln(w, pad+dim(centerText("relnotes", boxWidth)))
	fmt.Fprintln(w, pad+boxTopLeft+strings.Repeat(boxHorizontal, boxWidth-2)+boxTopRight)
	fmt.Fprintln(w, pad+boxVertical+strings.Repeat(" ", boxWidth-2)+boxVertical)

	for _, row := range rows {
		line := fmt.Sprintf("  %s    %s", yellow(fmt.Sprintf("%10s", row.label)), white(row.value))
		// label width + spacing + value + margin
		lineLen := 10 + 4 + len(row.value) + 2
		if lineLen < contentWidth {
			line += strings.Repeat(" ", contentWidth-lineLen)
		}
		fmt.Fprintln(w, pad+boxVertical+" "+line+" "+boxVertical)
	}

	fmt.Fprintln(w, pad+boxVertical+strings.Repeat(" ", boxWidth-2)+boxVertical)
	fmt.Fprintln(w, pad+boxBottomLeft+strings.Repeat(boxHorizontal, boxWidth-2)+boxBottomRight)
	fmt.Fprintln(w)
}

func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return strings.Repeat(" ", (width-len(text))/2) + text
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
