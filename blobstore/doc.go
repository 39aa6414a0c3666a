// Package blobstore abstracts the storage behind published analysis results.
//
// A BlobStore holds immutable, named blobs. Writes replace a blob atomically;
// reads go through a Blob handle with random access.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and short-lived hosts
//   - LocalStore: local filesystem, atomic rename on write, mmap on read
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3
package blobstore
