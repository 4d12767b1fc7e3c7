package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/govimwiki/pkg/cache"
	"github.com/yaklabco/govimwiki/pkg/fsutil"
)

func testKey(content string) string {
	return cache.Key("vimwiki", fsutil.Checksum([]byte(content)))
}

func TestKey(t *testing.T) {
	t.Parallel()

	key := testKey("x")
	require.NoError(t, cache.ValidateKey(key))
	assert.True(t, strings.HasPrefix(key, "vimwiki-"))

	for _, bad := range []string{"", "vimwiki", "../etc/passwd", "vimwiki-abc", "VIM-" + strings.Repeat("a", 64)} {
		require.ErrorIs(t, cache.ValidateKey(bad), cache.ErrInvalidKey, bad)
	}
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	store := cache.NewFileStore(dir)
	key := testKey("page")

	_, err := store.Get(ctx, key)
	require.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, store.Put(ctx, key, []byte(`{"elements":[]}`)))
	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"elements":[]}`, string(got))

	checksum := key[len(key)-64:]
	_, err = os.Stat(filepath.Join(dir, checksum[:2], key+".json"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, key))
	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	require.ErrorIs(t, err, cache.ErrNotFound)

	require.ErrorIs(t, store.Put(ctx, "../escape", nil), cache.ErrInvalidKey)
	require.NoError(t, store.Close())
}

func TestFileStore_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	store := cache.NewFileStore(dir)

	keep := filepath.Join(dir, "README")
	require.NoError(t, os.WriteFile(keep, []byte("mine"), 0o644))

	for _, c := range []string{"a", "b", "c"} {
		require.NoError(t, store.Put(ctx, testKey(c), []byte("{}")))
	}
	require.NoError(t, store.Clear(ctx))

	for _, c := range []string{"a", "b", "c"} {
		_, err := store.Get(ctx, testKey(c))
		require.ErrorIs(t, err, cache.ErrNotFound)
	}
	_, err := os.Stat(keep)
	require.NoError(t, err)

	require.NoError(t, cache.NewFileStore(filepath.Join(dir, "missing")).Clear(ctx))
}

func TestNopStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var store cache.Store = cache.NopStore{}

	require.NoError(t, store.Put(ctx, testKey("a"), []byte("{}")))
	_, err := store.Get(ctx, testKey("a"))
	require.ErrorIs(t, err, cache.ErrNotFound)
	require.NoError(t, store.Delete(ctx, testKey("a")))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Close())
}
