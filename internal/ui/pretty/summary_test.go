package pretty_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/govimwiki/internal/ui/pretty"
	"github.com/yaklabco/govimwiki/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name: "no files",
			want: "No wiki files found\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesDiscovered: 1, FilesParsed: 1, Elements: 4},
			want:  "1 file (1 parsed, 0 cached), 4 elements\n",
		},
		{
			name:  "with failures",
			stats: runner.Stats{FilesDiscovered: 5, FilesParsed: 2, FilesCached: 2, FilesFailed: 1, Elements: 30},
			want:  "5 files (2 parsed, 2 cached), 30 elements, 1 failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	stats := runner.Stats{
		FilesDiscovered: 3,
		FilesParsed:     2,
		FilesCached:     1,
		Elements:        21,
		BySyntax:        map[string]int{"vimwiki": 2, "markdown": 1},
	}

	out := styles.FormatSummary(stats, 1500*time.Microsecond)
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Files discovered:  3")
	assert.Contains(t, out, "Files from cache:  1")
	assert.NotContains(t, out, "Files failed")
	assert.Contains(t, out, "Elapsed:           2ms")
	assert.Less(t, strings.Index(out, "markdown"), strings.Index(out, "vimwiki"))
	assert.Contains(t, out, "All files loaded")

	stats.FilesFailed = 1
	assert.Contains(t, styles.FormatSummary(stats, 0), "Some files could not be loaded")
}
