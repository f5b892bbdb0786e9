// Package blobstore provides the storage abstraction behind the catalog.
//
// BlobStore reads and writes whole blobs (encoded selections) by name.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory, for tests and ephemeral catalogs
//   - LocalStore: files under a root directory, atomic writes via rename
//   - minio.Store: MinIO and other S3-compatible services
//   - s3.Store: Amazon S3
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Get(ctx, name) ([]byte, error)
//	    Put(ctx, name, data) error          // Atomic write
//	    Delete(ctx, name) error             // Missing blobs are not an error
//	    List(ctx, prefix) ([]string, error) // Sorted
//	}
//
// Missing blobs must be reported with an error matching ErrNotFound
// (os.ErrNotExist).
package blobstore
