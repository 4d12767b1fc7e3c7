package cache_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/pkg/cache"
	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/fsutil"
	"github.com/yaklabco/govimwiki/pkg/located"
	"github.com/yaklabco/govimwiki/pkg/parser"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func writePage(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_HitAfterMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics := cache.NewMetrics(reg)
	store := cache.NewFileStore(t.TempDir())
	loader := cache.NewLoader(store, cache.WithMetrics(metrics))

	path := writePage(t, t.TempDir(), "index.wiki", "= Index =\n\n* [[Other]]\n")

	first, err := loader.Load(ctx, path)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, parser.SyntaxVimwiki, first.Syntax)
	require.Equal(t, 2, first.Page.Len())

	second, err := loader.Load(ctx, path)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.True(t, located.StrictEqual(first.Page, second.Page), located.Diff(first.Page, second.Page))

	assert.InDelta(t, 1.0, counterValue(t, metrics.Misses), 0)
	assert.InDelta(t, 1.0, counterValue(t, metrics.Hits), 0)
	assert.InDelta(t, 1.0, counterValue(t, metrics.Parses), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}

func TestLoader_ContentChangeMisses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	metrics := cache.NewMetrics(nil)
	loader := cache.NewLoader(cache.NewFileStore(t.TempDir()), cache.WithMetrics(metrics))

	path := writePage(t, t.TempDir(), "page.wiki", "one\n")
	_, err := loader.Load(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("two\n"), 0o644))
	result, err := loader.Load(ctx, path)
	require.NoError(t, err)
	assert.False(t, result.Cached)
	assert.Equal(t, fsutil.Checksum([]byte("two\n")), result.Info.Checksum)
	assert.InDelta(t, 2.0, counterValue(t, metrics.Parses), 0)
}

func TestLoader_CorruptEntry(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "debug"))

	metrics := cache.NewMetrics(nil)
	store := cache.NewFileStore(t.TempDir())
	loader := cache.NewLoader(store, cache.WithMetrics(metrics))

	content := "%title Corrupt\n"
	path := writePage(t, t.TempDir(), "c.wiki", content)
	key := cache.Key(parser.SyntaxVimwiki, fsutil.Checksum([]byte(content)))
	require.NoError(t, store.Put(ctx, key, []byte("{not json")))

	result, err := loader.Load(ctx, path)
	require.NoError(t, err)
	assert.False(t, result.Cached)
	require.Equal(t, 1, result.Page.Len())
	assert.Equal(t, elements.KindPlaceholder, result.Page.Elements[0].Value.Kind())

	assert.InDelta(t, 1.0, counterValue(t, metrics.Corruptions), 0)
	assert.Contains(t, buf.String(), "dropping corrupt cache entry")

	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	_, err = elements.DecodePage(data)
	require.NoError(t, err)
}

func TestLoader_SyntaxSelection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	loader := cache.NewLoader(nil,
		cache.WithExtensions(map[string]string{".txt": parser.SyntaxMarkdown}),
		cache.WithDefaultSyntax(parser.SyntaxVimwiki),
	)

	md, err := loader.Load(ctx, writePage(t, dir, "a.txt", "# Title\n"))
	require.NoError(t, err)
	assert.Equal(t, parser.SyntaxMarkdown, md.Syntax)
	assert.Equal(t, elements.KindHeader, md.Page.Elements[0].Value.Kind())

	wiki, err := loader.Load(ctx, writePage(t, dir, "b.unknown", "= Title =\n"))
	require.NoError(t, err)
	assert.Equal(t, parser.SyntaxVimwiki, wiki.Syntax)
	assert.Equal(t, elements.KindHeader, wiki.Page.Elements[0].Value.Kind())
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	loader := cache.NewLoader(nil, cache.WithDefaultSyntax("org"))

	_, err := loader.Load(ctx, filepath.Join(t.TempDir(), "missing.wiki"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, err = loader.Load(ctx, writePage(t, t.TempDir(), "notes.org", "* heading"))
	require.ErrorIs(t, err, parser.ErrUnsupportedLanguage)
}

func TestLoader_LoadContent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	loader := cache.NewLoader(cache.NewFileStore(t.TempDir()))

	result, err := loader.LoadContent(ctx, "unsaved.wiki", []byte("abc*bold*def"))
	require.NoError(t, err)
	assert.Equal(t, "unsaved.wiki", result.Info.Path)
	require.Equal(t, 1, result.Page.Len())

	again, err := loader.LoadContent(ctx, "other.wiki", []byte("abc*bold*def"))
	require.NoError(t, err)
	assert.True(t, again.Cached)
}

// readOnlyStore misses every lookup and rejects every write.
type readOnlyStore struct{ cache.NopStore }

func (readOnlyStore) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestLoader_StoreFailureKeepsPage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "debug"))

	metrics := cache.NewMetrics(nil)
	loader := cache.NewLoader(readOnlyStore{}, cache.WithMetrics(metrics))

	result, err := loader.LoadContent(ctx, "a.wiki", []byte("hello *world*\n"))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Cached)
	require.Equal(t, 1, result.Page.Len())
	assert.Equal(t, elements.KindParagraph, result.Page.Elements[0].Value.Kind())

	assert.InDelta(t, 1.0, counterValue(t, metrics.StoreFailures), 0)
	assert.InDelta(t, 1.0, counterValue(t, metrics.Parses), 0)
	assert.Contains(t, buf.String(), "failed to write cache entry")
	assert.Contains(t, buf.String(), "disk full")
}

func TestLoader_ConcurrentLoads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	metrics := cache.NewMetrics(nil)
	loader := cache.NewLoader(cache.NewFileStore(t.TempDir()), cache.WithMetrics(metrics))
	path := writePage(t, t.TempDir(), "busy.wiki", "- a\n- b\n")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := loader.Load(ctx, path)
			assert.NoError(t, err)
			assert.Equal(t, 1, result.Page.Len())
		}()
	}
	wg.Wait()

	hits := counterValue(t, metrics.Hits)
	misses := counterValue(t, metrics.Misses)
	assert.GreaterOrEqual(t, misses, 1.0)
	assert.InDelta(t, misses, counterValue(t, metrics.Parses), 0)
	assert.LessOrEqual(t, hits+misses, 16.0)
}
