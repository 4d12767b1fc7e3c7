package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/govimwiki/pkg/analysis"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minPathWidth     = 20
	syntaxWidth      = 8
	elementsWidth    = 8
	todosWidth       = 7
	progressWidth    = 8
	heavySeparator   = "="
	lightSeparator   = "-"
	progressBarWidth = 10
	minKindWidth     = 12
)

// TableRow is one page row of the stats table.
type TableRow struct {
	Path     string
	Syntax   string
	Elements int
	Todos    string
	Progress float64
	HasTodos bool
	Cached   bool
}

// TableFormatter formats analysis reports as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// PageRow converts a page analysis into a table row.
func PageRow(pa analysis.PageAnalysis) TableRow {
	return TableRow{
		Path:     pa.Path,
		Syntax:   pa.Syntax,
		Elements: pa.Elements,
		Todos:    fmt.Sprintf("%d/%d", pa.Todos.Done, pa.Todos.Total),
		Progress: pa.Todos.Progress,
		HasTodos: pa.Todos.Total > 0,
		Cached:   pa.Cached,
	}
}

// FormatReport renders one row per page followed by totals.
func (t *TableFormatter) FormatReport(report *analysis.Report) string {
	if report == nil || (len(report.Pages) == 0 && len(report.Failed) == 0) {
		return ""
	}

	rows := make([]TableRow, 0, len(report.Pages))
	for _, pa := range report.Pages {
		rows = append(rows, PageRow(pa))
	}
	pathWidth := t.pathWidth(rows)

	var b strings.Builder
	b.WriteString(t.formatHeader(pathWidth) + "\n")
	b.WriteString(t.formatSeparator(pathWidth, heavySeparator) + "\n")
	for _, row := range rows {
		b.WriteString(t.formatRow(row, pathWidth) + "\n")
	}
	for _, failed := range report.Failed {
		b.WriteString(" " + t.styles.Failure.Render(padRight(truncateFilePath(failed, pathWidth), pathWidth)) +
			"  " + t.styles.Failure.Render("failed") + "\n")
	}
	b.WriteString(t.formatSeparator(pathWidth, lightSeparator) + "\n")
	b.WriteString(t.formatTotals(report.Totals) + "\n")
	return b.String()
}

func (t *TableFormatter) fixedWidth() int {
	return syntaxWidth + elementsWidth + todosWidth + progressWidth + progressBarWidth + tablePadding*6
}

func (t *TableFormatter) pathWidth(rows []TableRow) int {
	width := minPathWidth
	for _, row := range rows {
		width = max(width, len(row.Path))
	}
	return max(minPathWidth, min(width, t.termWidth-t.fixedWidth()))
}

func (t *TableFormatter) formatHeader(pathWidth int) string {
	header := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %*s",
		pathWidth, "PAGE",
		syntaxWidth, "SYNTAX",
		elementsWidth, "ELEMENTS",
		todosWidth, "TODOS",
		progressWidth, "PROGRESS",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(pathWidth int, char string) string {
	width := pathWidth + t.fixedWidth()
	return t.styles.TableSeparator.Render(strings.Repeat(char, width))
}

func (t *TableFormatter) formatRow(row TableRow, pathWidth int) string {
	path := padRight(truncateFilePath(row.Path, pathWidth), pathWidth)
	if row.Cached {
		path = t.styles.Dim.Render(path)
	}
	line := fmt.Sprintf(" %s  %-*s  %*d  %*s",
		path,
		syntaxWidth, row.Syntax,
		elementsWidth, row.Elements,
		todosWidth, row.Todos,
	)
	if !row.HasTodos {
		return line
	}
	pct := fmt.Sprintf("%*s", progressWidth, strconv.Itoa(int(row.Progress*100+0.5))+"%")
	return line + "  " + pct + "  " + t.progressBar(row.Progress)
}

// progressBar renders progress in [0,1] as a fixed-width bar.
func (t *TableFormatter) progressBar(p float64) string {
	filled := int(p*progressBarWidth + 0.5)
	filled = max(0, min(filled, progressBarWidth))
	bar := t.styles.TodoDone.Render(strings.Repeat("█", filled)) +
		t.styles.Dim.Render(strings.Repeat("░", progressBarWidth-filled))
	return bar
}

func (t *TableFormatter) formatTotals(totals analysis.Totals) string {
	parts := []string{
		fmt.Sprintf("%d pages", totals.Pages),
		fmt.Sprintf("%d elements", totals.Elements),
		fmt.Sprintf("%d headers", totals.Headers),
		fmt.Sprintf("%d links", totals.Links),
	}
	if totals.Todos > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d todos done (%d%%)",
			totals.TodosDone, totals.Todos, int(totals.Progress()*100+0.5)))
	}
	if totals.Failed > 0 {
		parts = append(parts, t.styles.Failure.Render(fmt.Sprintf("%d failed", totals.Failed)))
	}
	return " " + strings.Join(parts, " | ")
}

// FormatOutline renders a page's header outline indented by level.
func (s *Styles) FormatOutline(pa analysis.PageAnalysis) string {
	var b strings.Builder
	b.WriteString(s.FilePath.Render(pa.Path))
	if pa.Title != "" {
		b.WriteString(" " + s.Dim.Render(strconv.Quote(pa.Title)))
	}
	b.WriteString("\n")
	for _, h := range pa.Outline {
		indent := strings.Repeat("  ", max(h.Level, 1))
		b.WriteString(indent + s.Block.Render(h.Text) + " " + s.Region.Render(":"+strconv.Itoa(h.Line)) + "\n")
	}
	return b.String()
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// FormatByKind renders element counts per kind in report order.
func (t *TableFormatter) FormatByKind(kinds []analysis.KindAnalysis) string {
	if len(kinds) == 0 {
		return ""
	}
	width := minKindWidth
	for _, k := range kinds {
		width = max(width, len(k.Kind))
	}

	var b strings.Builder
	b.WriteString(t.styles.TableHeader.Render(fmt.Sprintf(" %-*s  %8s  %6s", width, "KIND", "COUNT", "PAGES")) + "\n")
	b.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, width+20)) + "\n")
	for _, k := range kinds {
		fmt.Fprintf(&b, " %s  %8d  %6d\n", t.styles.Block.Render(padRight(k.Kind, width)), k.Count, len(k.Pages))
	}
	return b.String()
}
