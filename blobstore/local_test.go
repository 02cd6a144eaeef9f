package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()

	t.Run("put and open", func(t *testing.T) {
		store := NewLocalStore(t.TempDir())
		require.NoError(t, store.Put(ctx, "a.bin", []byte("hello")))

		blob, err := store.Open(ctx, "a.bin")
		require.NoError(t, err)
		defer blob.Close()

		assert.Equal(t, int64(5), blob.Size())

		data, err := ReadAll(ctx, blob)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("open missing", func(t *testing.T) {
		store := NewLocalStore(t.TempDir())
		_, err := store.Open(ctx, "nope")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("nested names create directories", func(t *testing.T) {
		store := NewLocalStore(t.TempDir())
		require.NoError(t, store.Put(ctx, "runs/2026/corr.bin", []byte("x")))

		blob, err := store.Open(ctx, "runs/2026/corr.bin")
		require.NoError(t, err)
		require.NoError(t, blob.Close())
	})

	t.Run("create is atomic", func(t *testing.T) {
		root := t.TempDir()
		store := NewLocalStore(root)

		w, err := store.Create(ctx, "b.bin")
		require.NoError(t, err)
		_, err = w.Write([]byte("payload"))
		require.NoError(t, err)

		// Before Close only the hidden temp file exists.
		_, statErr := os.Stat(filepath.Join(root, "b.bin"))
		assert.True(t, os.IsNotExist(statErr))

		require.NoError(t, w.Close())

		blob, err := store.Open(ctx, "b.bin")
		require.NoError(t, err)
		defer blob.Close()

		data, err := ReadAll(ctx, blob)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), data)
	})

	t.Run("read at and read range", func(t *testing.T) {
		store := NewLocalStore(t.TempDir())
		require.NoError(t, store.Put(ctx, "c.bin", []byte("0123456789")))

		blob, err := store.Open(ctx, "c.bin")
		require.NoError(t, err)
		defer blob.Close()

		p := make([]byte, 3)
		n, err := blob.ReadAt(ctx, p, 4)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []byte("456"), p)

		rc, err := blob.ReadRange(ctx, 7, 100)
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, []byte("789"), data)
	})

	t.Run("list skips temp files", func(t *testing.T) {
		store := NewLocalStore(t.TempDir())
		require.NoError(t, store.Put(ctx, "snaps/1.bin", []byte("x")))
		require.NoError(t, store.Put(ctx, "snaps/2.bin", []byte("y")))

		// An in-flight Create leaves a dot-prefixed temp file behind.
		w, err := store.Create(ctx, "snaps/3.bin")
		require.NoError(t, err)
		defer w.Close()

		names, err := store.List(ctx, "snaps/")
		require.NoError(t, err)
		assert.Equal(t, []string{"snaps/1.bin", "snaps/2.bin"}, names)
	})

	t.Run("list on missing root", func(t *testing.T) {
		store := NewLocalStore(filepath.Join(t.TempDir(), "does-not-exist"))
		names, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := NewLocalStore(t.TempDir())
		require.NoError(t, store.Put(ctx, "d.bin", []byte("x")))
		require.NoError(t, store.Delete(ctx, "d.bin"))
		require.NoError(t, store.Delete(ctx, "d.bin"))

		_, err := store.Open(ctx, "d.bin")
		require.ErrorIs(t, err, ErrNotFound)
	})
}
