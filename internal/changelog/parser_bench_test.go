package changelog

import (
	"fmt"
	"strings"
	"testing"
)

// generateLargeChangelog creates a CHANGELOG.md with the given number of
// versions, each holding ten entries.
func generateLargeChangelog(versionCount int) string {
	var b strings.Builder

	b.WriteString("# Changelog\n\n## [Unreleased]\n- pending work\n\n")
	for v := versionCount; v >= 1; v-- {
		fmt.Fprintf(&b, "## [%d.0.0] - 2024-%02d-%02d\n", v, (v%12)+1, (v%28)+1)
		b.WriteString("### Added\n")
		for e := 0; e < 10; e++ {
			fmt.Fprintf(&b, "- Entry %d for version %d\n", e, v)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func BenchmarkPartition(b *testing.B) {
	for _, count := range []int{10, 100, 1000} {
		doc, err := LoadFromReader(strings.NewReader(generateLargeChangelog(count)), "bench")
		if err != nil {
			b.Fatal(err)
		}

		b.Run(fmt.Sprintf("versions_%d", count), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Partition(doc.Lines)
			}
		})
	}
}

func BenchmarkExtractLatestSection(b *testing.B) {
	doc, err := LoadFromReader(strings.NewReader(generateLargeChangelog(500)), "bench")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ExtractLatestSection(doc.Lines); err != nil {
			b.Fatal(err)
		}
	}
}

func TestGenerateLargeChangelog_Extracts(t *testing.T) {
	doc, err := LoadFromReader(strings.NewReader(generateLargeChangelog(3)), "bench")
	if err != nil {
		t.Fatal(err)
	}
	if got := len(doc.Sections()); got != 4 {
		t.Fatalf("sections = %d, want 4", got)
	}
}
