// Package blobstore abstracts where matrix snapshots live.
//
// A Store holds immutable named blobs. The built-in implementations cover
// in-memory storage (tests), the local filesystem (mmap-backed reads), and —
// via the s3 and minio subpackages — S3-compatible object storage.
//
// All operations take a context: blob access is real I/O, unlike the
// compute engines.
package blobstore
