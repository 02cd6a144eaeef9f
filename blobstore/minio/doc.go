// Package minio implements blobstore.Store for MinIO and other
// S3-compatible object storage using the MinIO client.
package minio
