package pretty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/govimwiki/pkg/analysis"
)

func TestTruncateFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		maxLen int
		want   string
	}{
		{name: "fits", path: "index.wiki", maxLen: 20, want: "index.wiki"},
		{name: "keeps tail", path: "notes/projects/alpha.wiki", maxLen: 15, want: "...s/alpha.wiki"},
		{name: "tiny", path: "notes/alpha.wiki", maxLen: 3, want: "iki"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateFilePath(tt.path, tt.maxLen))
		})
	}
}

func TestPageRow(t *testing.T) {
	t.Parallel()

	row := PageRow(analysis.PageAnalysis{
		Path:     "index.wiki",
		Syntax:   "vimwiki",
		Elements: 12,
		Todos:    analysis.TodoStats{Total: 4, Done: 1, Progress: 0.5},
	})

	assert.Equal(t, "1/4", row.Todos)
	assert.True(t, row.HasTodos)
	assert.InDelta(t, 0.5, row.Progress, 1e-9)
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	report := &analysis.Report{
		Pages: []analysis.PageAnalysis{
			{Path: "index.wiki", Syntax: "vimwiki", Elements: 12, Todos: analysis.TodoStats{Total: 4, Done: 2, Progress: 0.75}},
			{Path: "notes.md", Syntax: "markdown", Elements: 3},
		},
		Failed: []string{"broken.wiki"},
		Totals: analysis.Totals{Pages: 2, Failed: 1, Elements: 15, Headers: 2, Links: 1, Todos: 4, TodosDone: 2},
	}

	out := NewTableFormatter(NewStyles(false), 80).FormatReport(report)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "PAGE")
	assert.Contains(t, lines[0], "PROGRESS")
	assert.True(t, strings.HasPrefix(lines[1], "===="))
	assert.Contains(t, lines[2], "index.wiki")
	assert.Contains(t, lines[2], "2/4")
	assert.Contains(t, lines[2], "75%")
	assert.Contains(t, lines[3], "markdown")
	assert.NotContains(t, lines[3], "%")
	assert.Contains(t, lines[4], "broken.wiki")
	assert.Contains(t, lines[4], "failed")
	assert.Contains(t, lines[6], "2 pages | 15 elements | 2 headers | 1 links | 2/4 todos done (50%) | 1 failed")
}

func TestFormatReport_Empty(t *testing.T) {
	t.Parallel()

	f := NewTableFormatter(NewStyles(false), 0)
	assert.Empty(t, f.FormatReport(nil))
	assert.Empty(t, f.FormatReport(&analysis.Report{}))
}

func TestProgressBar(t *testing.T) {
	t.Parallel()

	f := NewTableFormatter(NewStyles(false), 80)
	assert.Equal(t, "█████░░░░░", f.progressBar(0.5))
	assert.Equal(t, "░░░░░░░░░░", f.progressBar(0))
	assert.Equal(t, "██████████", f.progressBar(1.5))
}

func TestFormatOutline(t *testing.T) {
	t.Parallel()

	out := NewStyles(false).FormatOutline(analysis.PageAnalysis{
		Path:  "index.wiki",
		Title: "Home",
		Outline: []analysis.OutlineEntry{
			{Level: 1, Text: "Tasks", Line: 1},
			{Level: 2, Text: "Done", Line: 4},
		},
	})
	assert.Equal(t, "index.wiki \"Home\"\n  Tasks :1\n    Done :4\n", out)
}
