// Package s3 implements blobstore.Store on AWS S3.
//
// Construct a store from the ambient AWS configuration:
//
//	store, err := s3.New(ctx, "my-bucket", s3.WithPrefix("matrices/"))
//
// or bring your own client:
//
//	store := s3.NewWithClient(client, "my-bucket", "matrices/")
package s3
