// Package minio stores result blobs on MinIO or any other S3-compatible
// server through minio-go.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results := result.New(kddminio.NewStore(client, "analysis", kddminio.WithPrefix("kdd/")))
//
// Reads are ranged GETs, so resolving a report never buffers more than the
// caller asks for.
package minio
