// Package s3 implements blobstore.BlobStore on Amazon S3.
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("kdd/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
// Reads use ranged GETs. Small blobs are written with a single PutObject
// carrying a CRC32C checksum; larger ones go through the multipart uploader.
package s3
