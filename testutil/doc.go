// Package testutil provides deterministic data generators for kddgo tests.
//
// This package is intended for use in tests and benchmarks only.
//
//	rng := testutil.NewRNG(42)
//	points := rng.Blobs(1000, 2, [][]float64{{0, 0}, {10, 10}}, 0.5)
//	powers := rng.PinPowers(4, 3, 17, 17)
package testutil
