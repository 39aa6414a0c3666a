// Package kddgo provides knowledge discovery over tabular reactor-core
// readings: k-means clustering of feature vectors and assembly-level power
// difference analysis between a loaded core and a reference core.
//
// The building blocks live in their own packages (matrix, cluster, kmeans,
// partition, difference) and can be used directly. This package wires them
// together with result storage, resource limits, logging and metrics.
//
// # Quick Start
//
// Clustering:
//
//	eng := kddgo.New(kddgo.WithSeed(42))
//	km, _, err := eng.Cluster(ctx, data, map[string]string{
//	    kmeans.PropClusters:   "3",
//	    kmeans.PropIterations: "20",
//	})
//	fmt.Println(km.Report().Sizes)
//
// Difference analysis between two cores of 49 assemblies with 17×17 pins:
//
//	res, _, err := eng.Difference(ctx, loaded, reference, 17, 17, map[string]string{
//	    difference.PropDifferenceType: difference.Relative,
//	})
//	fmt.Println(res.Report())
//
// # Publishing Results
//
// With a result store configured, every successful run is published and its
// handle returned:
//
//	store := result.New(blobstore.NewLocalStore("./results"))
//	eng := kddgo.New(kddgo.WithResultStore(store))
//	_, h, _ := eng.Cluster(ctx, data, nil)
//	fmt.Println(h) // kdd://cluster/0192...
//
// Stores can be backed by the local filesystem, MinIO (blobstore/minio) or
// S3 (blobstore/s3), and catalogued in DynamoDB (result/ddb).
//
// # Observability
//
// Logging uses log/slog through Logger. Metrics go through MetricsCollector;
// metric.PrometheusCollector exports them to Prometheus.
package kddgo
