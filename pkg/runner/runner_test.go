package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/govimwiki/pkg/cache"
	"github.com/yaklabco/govimwiki/pkg/config"
	"github.com/yaklabco/govimwiki/pkg/runner"
)

func TestRun_Empty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	result, err := runner.New(nil).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
}

func TestRun_ParsesAndCaches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{
		"index.wiki":   "= Index =\n\n* [[todo]]\n",
		"todo.wiki":    "* [ ] one\n* [X] two\n",
		"notes/a.md":   "# A\n\ntext\n",
		"notes/b.md":   "- x\n",
		"notes/c.wiki": "",
		"notes/d.wiki": "%title D\n{{{\ncode\n}}}\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	store := cache.NewFileStore(filepath.Join(t.TempDir(), "pages"))
	r := runner.New(cache.NewLoader(store))
	opts := runner.Options{WorkingDir: dir, Jobs: 4}

	first, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, first.Files, len(files))
	assert.Equal(t, len(files), first.Stats.FilesParsed)
	assert.Zero(t, first.Stats.FilesCached)
	assert.Equal(t, 2, first.Stats.BySyntax["markdown"])
	assert.Positive(t, first.Stats.Elements)
	for i := 1; i < len(first.Files); i++ {
		assert.Less(t, first.Files[i-1].Path, first.Files[i].Path, "outcomes are ordered by path")
	}

	second, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, len(files), second.Stats.FilesCached)
	assert.Zero(t, second.Stats.FilesParsed)
	assert.Equal(t, first.Stats.Elements, second.Stats.Elements)
}

func TestRun_RecordsFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.wiki"), []byte("fine\n"), 0o644))
	unreadable := filepath.Join(dir, "locked.wiki")
	require.NoError(t, os.WriteFile(unreadable, []byte("x\n"), 0o000))
	if f, err := os.Open(unreadable); err == nil {
		f.Close()
		t.Skip("running with permissions that ignore file modes")
	}

	result, err := runner.New(nil).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesFailed)
	require.Len(t, result.Pages(), 1)
	assert.Equal(t, filepath.Join(dir, "ok.wiki"), result.Pages()[0].Path)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.wiki", "b.wiki", "c.wiki"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runner.New(nil).Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"drafts/**"}
	cfg.Jobs = 3

	opts := runner.OptionsFromConfig(cfg, "wiki")
	assert.Equal(t, []string{"wiki"}, opts.Paths)
	assert.Equal(t, []string{".markdown", ".md", ".wiki"}, opts.Extensions)
	assert.Equal(t, []string{"drafts/**"}, opts.ExcludeGlobs)
	assert.Equal(t, 3, opts.Jobs)

	assert.Empty(t, runner.OptionsFromConfig(nil).Extensions)
}
