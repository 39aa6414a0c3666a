// Package distance provides the distance measures used by k-means clustering.
//
// # Supported Metrics
//
//   - Euclidean: L2 distance (default)
//   - SquaredEuclidean: squared L2 distance, same ordering as Euclidean
//   - Manhattan: L1 distance
//   - Chebyshev: L∞ distance
//   - Cosine: 1 - cosine similarity
//
// Metric names double as the values of the "Distance Measure" clustering
// property; ParseMetric accepts them case-insensitively.
package distance
