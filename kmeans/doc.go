// Package kmeans clusters the feature vectors of a matrix with Lloyd's
// algorithm run for a fixed number of passes.
//
// The engine is configured through a flat string property map:
//
//	Number of Clusters       k, positive integer (default "2")
//	Number of Iterations     passes, positive integer (default "10")
//	Visualization Dimension  informational, positive integer (default "2")
//	Distance Measure         a distance.Metric name (default "Euclidean")
//
// Setting any recognized property recomputes the clustering immediately.
// Unrecognized keys and invalid values are rejected without side effects.
//
// Initial means are drawn uniformly inside the per-dimension bounds of the
// data. The random source defaults to a time seed; use WithSeed for
// reproducible runs. Every pass assigns each vector to its nearest mean
// (lowest cluster index wins ties) and recomputes the means; a cluster that
// receives no members keeps its previous mean. There is no convergence check.
//
// An Engine is not safe for concurrent use.
package kmeans
