// Package result publishes finished analysis reports to a blobstore and
// resolves them again by handle.
//
// A Handle is URI-shaped (kdd://difference/<name>) and is what hosts keep to
// refer to a result. Blobs are self-describing: the header records the codec
// and compression used, so readers need no configuration to decode them.
//
//	store := result.New(blobstore.NewLocalStore(dir),
//	    result.WithCompression(result.CompressionZstd),
//	)
//	h, err := store.Publish(ctx, result.KindDifference, report)
//	...
//	var rep difference.Report
//	err = store.Resolve(ctx, h, &rep)
package result
