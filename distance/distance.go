package distance

import (
	"fmt"
	"math"
	"strings"
)

// Metric represents the distance measure used to compare feature vectors.
type Metric int

const (
	Euclidean Metric = iota
	SquaredEuclidean
	Manhattan
	Chebyshev
	Cosine
)

var names = [...]string{
	Euclidean:        "Euclidean",
	SquaredEuclidean: "SquaredEuclidean",
	Manhattan:        "Manhattan",
	Chebyshev:        "Chebyshev",
	Cosine:           "Cosine",
}

func (m Metric) String() string {
	if m >= 0 && int(m) < len(names) {
		return names[m]
	}
	return fmt.Sprintf("Unknown(%d)", int(m))
}

// ParseMetric returns the metric with the given name.
func ParseMetric(name string) (Metric, error) {
	for i, n := range names {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Metric(i), nil
		}
	}
	return 0, fmt.Errorf("distance: unsupported metric %q", name)
}

// Func is a function type for distance calculation.
// Both vectors are assumed to have the same length (caller's responsibility).
type Func func(a, b []float64) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case Euclidean:
		return L2, nil
	case SquaredEuclidean:
		return SquaredL2, nil
	case Manhattan:
		return L1, nil
	case Chebyshev:
		return LInf, nil
	case Cosine:
		return CosineDistance, nil
	default:
		return nil, fmt.Errorf("distance: unsupported metric %v", m)
	}
}

// SquaredL2 calculates the squared Euclidean distance.
func SquaredL2(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

// L2 calculates the Euclidean distance.
func L2(a, b []float64) float64 {
	return math.Sqrt(SquaredL2(a, b))
}

// L1 calculates the Manhattan distance.
func L1(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += math.Abs(a[i] - b[i])
	}
	return s
}

// LInf calculates the Chebyshev distance.
func LInf(a, b []float64) float64 {
	var m float64
	for i := range a {
		m = math.Max(m, math.Abs(a[i]-b[i]))
	}
	return m
}

// Dot calculates the dot product of two vectors.
func Dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// CosineDistance returns 1 - cos(a, b). A zero vector is at distance 1 from
// everything.
func CosineDistance(a, b []float64) float64 {
	na, nb := Dot(a, a), Dot(b, b)
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - Dot(a, b)/math.Sqrt(na*nb)
}
