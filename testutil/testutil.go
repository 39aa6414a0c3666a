package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/kddgo/matrix"
)

// RNG encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniformRange fills dst with random values in range [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float64, minVal, maxVal float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Float64()*span
	}
}

// Blobs returns a matrix with n rows per center. Row i belongs to center
// i / n and is that center plus Gaussian noise of the given spread.
func (r *RNG) Blobs(n, dim int, centers [][]float64, spread float64) *matrix.Matrix {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, 0, n*len(centers)*dim)
	for _, c := range centers {
		for range n {
			for j := range dim {
				data = append(data, c[j]+r.rand.NormFloat64()*spread)
			}
		}
	}

	m, err := matrix.FromSlice(n*len(centers), dim, data)
	if err != nil {
		panic(err)
	}
	return m
}

// PinPowers returns assemblies*axial*rows*cols positive readings laid out
// assembly-major, then axial level, then row-major pins.
func (r *RNG) PinPowers(assemblies, axial, rows, cols int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, assemblies*axial*rows*cols)
	for i := range out {
		out[i] = 0.5 + r.rand.Float64()
	}
	return out
}

// Perturb returns a copy of values with uniform noise in [-eps, eps) added.
func (r *RNG) Perturb(values []float64, eps float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v + (r.rand.Float64()*2-1)*eps
	}
	return out
}
