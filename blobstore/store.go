package blobstore

import (
	"context"
	"errors"
	"os"
	"strings"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrInvalidName is returned by stores that map names onto a file system for
// names that would leave the store's root.
var ErrInvalidName = errors.New("blobstore: invalid blob name")

// BlobStore stores opaque, whole-object blobs by name.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Get returns the content of a blob, or an error matching ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the sorted names of all blobs starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// HasPrefix reports whether name matches a List prefix. An empty prefix
// matches everything.
func HasPrefix(name, prefix string) bool {
	return prefix == "" || strings.HasPrefix(name, prefix)
}
