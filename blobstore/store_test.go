package blobstore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/rangeset/blobstore"
	"github.com/hupe1980/rangeset/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	testutil.RunBlobStoreSuite(t, blobstore.NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	testutil.RunBlobStoreSuite(t, blobstore.NewLocalStore(t.TempDir()))
}

func TestLocalStore_Layout(t *testing.T) {
	root := t.TempDir()
	store := blobstore.NewLocalStore(root)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "nested/dir/sel.rsel", []byte("data")))

	onDisk, err := os.ReadFile(filepath.Join(root, "nested", "dir", "sel.rsel"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(onDisk))

	entries, err := os.ReadDir(filepath.Join(root, "nested", "dir"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".tmp-"), "temp file left behind: %s", e.Name())
	}
}

func TestLocalStore_ListSkipsTempFiles(t *testing.T) {
	root := t.TempDir()
	store := blobstore.NewLocalStore(root)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a.rsel", []byte("a")))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".tmp-b.rsel-123"), []byte("partial"), 0o600))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.rsel"}, names)
}

func TestLocalStore_RejectsNamesOutsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "store")
	store := blobstore.NewLocalStore(root)
	ctx := context.Background()

	for _, name := range []string{"../x", "a/../../x", "/etc/passwd", ""} {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, name)
			require.ErrorIs(t, err, blobstore.ErrInvalidName)
			require.ErrorIs(t, store.Put(ctx, name, []byte("data")), blobstore.ErrInvalidName)
			require.ErrorIs(t, store.Delete(ctx, name), blobstore.ErrInvalidName)
		})
	}

	_, err := os.Stat(filepath.Join(parent, "x"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, store.Put(ctx, "a/../b.rsel", []byte("ok")))
	got, err := store.Get(ctx, "b.rsel")
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), got)
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := blobstore.NewLocalStore(filepath.Join(t.TempDir(), "does-not-exist"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStores_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, store := range map[string]blobstore.BlobStore{
		"memory": blobstore.NewMemoryStore(),
		"local":  blobstore.NewLocalStore(t.TempDir()),
	} {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, store.Put(ctx, "x", []byte("x")), context.Canceled)
			_, err := store.Get(ctx, "x")
			require.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestMemoryStore_Len(t *testing.T) {
	store := blobstore.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a", nil))
	require.NoError(t, store.Put(ctx, "b", nil))
	assert.Equal(t, 2, store.Len())
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, blobstore.HasPrefix("abc", ""))
	assert.True(t, blobstore.HasPrefix("abc", "ab"))
	assert.False(t, blobstore.HasPrefix("abc", "b"))
}
