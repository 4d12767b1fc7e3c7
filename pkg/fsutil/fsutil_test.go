package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/govimwiki/pkg/fsutil"
)

func TestChecksum(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		fsutil.Checksum(nil))
	assert.Len(t, fsutil.Checksum([]byte("= Title =")), 64)
	assert.NotEqual(t, fsutil.Checksum([]byte("a")), fsutil.Checksum([]byte("b")))
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and checksum", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.wiki")
		content := []byte("= Index =\n")
		require.NoError(t, os.WriteFile(path, content, 0o644))

		got, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(len(content)), info.Size)
		assert.Equal(t, fsutil.Checksum(content), info.Checksum)
		assert.False(t, info.ModTime.IsZero())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.wiki"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "whatever.wiki")
		require.ErrorIs(t, err, context.Canceled)
	})
}
