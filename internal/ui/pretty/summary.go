package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/govimwiki/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 files (9 parsed, 3 cached), 140 elements".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No wiki files found") + "\n"
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d %s (%d parsed, %d cached)",
		stats.FilesDiscovered, plural(stats.FilesDiscovered, wordFile, wordFiles),
		stats.FilesParsed, stats.FilesCached))
	parts = append(parts, fmt.Sprintf("%d elements", stats.Elements))
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, elapsed time.Duration) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(s.SummaryTitle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", value))
	}
	row("Files discovered", s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)))
	row("Files parsed", s.SummaryValue.Render(strconv.Itoa(stats.FilesParsed)))
	row("Files from cache", s.SummaryValue.Render(strconv.Itoa(stats.FilesCached)))
	if stats.FilesFailed > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesFailed)))
	}
	row("Elements", s.SummaryValue.Render(strconv.Itoa(stats.Elements)))
	for _, syntax := range slices.Sorted(maps.Keys(stats.BySyntax)) {
		row("  "+syntax, s.Dim.Render(strconv.Itoa(stats.BySyntax[syntax])))
	}
	if elapsed > 0 {
		row("Elapsed", s.Dim.Render(elapsed.Round(time.Millisecond).String()))
	}

	b.WriteString("\n")
	if stats.FilesFailed > 0 {
		b.WriteString(s.Failure.Render("Some files could not be loaded"))
	} else {
		b.WriteString(s.Success.Render("All files loaded"))
	}
	b.WriteString("\n")
	return b.String()
}
