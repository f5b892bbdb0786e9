package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// BlobStore is the subset of blobstore.BlobStore the conformance suite drives.
type BlobStore interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// RunBlobStoreSuite checks the behavior every blob store must share.
// The store should be empty when the suite starts.
func RunBlobStoreSuite(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := store.Get(ctx, "missing.rsel")
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("PutGet", func(t *testing.T) {
		data := []byte("hello rangeset")
		require.NoError(t, store.Put(ctx, "a/one.rsel", data))

		got, err := store.Get(ctx, "a/one.rsel")
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a/two.rsel", []byte("first")))
		require.NoError(t, store.Put(ctx, "a/two.rsel", []byte("second")))

		got, err := store.Get(ctx, "a/two.rsel")
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("PutEmpty", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "b/empty.rsel", nil))

		got, err := store.Get(ctx, "b/empty.rsel")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("CallerBufferIsNotRetained", func(t *testing.T) {
		data := []byte("xyz")
		require.NoError(t, store.Put(ctx, "b/buf.rsel", data))
		data[0] = 'X'

		got, err := store.Get(ctx, "b/buf.rsel")
		require.NoError(t, err)
		assert.Equal(t, "xyz", string(got))
	})

	t.Run("List", func(t *testing.T) {
		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a/one.rsel", "a/two.rsel", "b/buf.rsel", "b/empty.rsel"}, all)

		a, err := store.List(ctx, "a/")
		require.NoError(t, err)
		assert.Equal(t, []string{"a/one.rsel", "a/two.rsel"}, a)

		none, err := store.List(ctx, "zzz")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "a/one.rsel"))
		_, err := store.Get(ctx, "a/one.rsel")
		require.ErrorIs(t, err, os.ErrNotExist)

		require.NoError(t, store.Delete(ctx, "a/one.rsel"), "deleting a missing blob is not an error")

		for _, name := range []string{"a/two.rsel", "b/buf.rsel", "b/empty.rsel"} {
			require.NoError(t, store.Delete(ctx, name))
		}

		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
