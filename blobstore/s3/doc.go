// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.NewFromConfig(ctx, "my-bucket", "selections/",
//	    config.WithRegion("us-east-1"),
//	)
//
//	cat := catalog.New(store)
//
// Or wrap an existing client:
//
//	store := s3.NewStore(s3sdk.NewFromConfig(cfg), "my-bucket", "selections/")
//
// # Features
//
//   - Multipart uploads for large blobs via the SDK upload manager
//   - CRC32C integrity validation on upload
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
