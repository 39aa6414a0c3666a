// Package cluster implements the member bucket used by k-means: an id, its
// member feature vectors and a mean.
//
// Feature vectors are single-column matrices. Dimensionality is not checked
// when members are added; callers keep it homogeneous.
package cluster

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kddgo/matrix"
)

// Rand is the random source used to draw initial means.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Cluster is a bucket of member vectors with a current mean.
type Cluster struct {
	id      int
	vectors []*matrix.Matrix
	members *roaring.Bitmap // source row indices of vectors added via AddMember
	mean    *matrix.Matrix
}

// New returns an empty cluster with the given id.
func New(id int) *Cluster {
	return &Cluster{id: id, members: roaring.New()}
}

// ID returns the cluster id.
func (c *Cluster) ID() int { return c.id }

// Len returns the number of member vectors.
func (c *Cluster) Len() int { return len(c.vectors) }

// AddVector appends a member vector.
func (c *Cluster) AddVector(v *matrix.Matrix) {
	c.vectors = append(c.vectors, v)
}

// AddMember appends a member vector and records the source row it came from.
func (c *Cluster) AddMember(row uint32, v *matrix.Matrix) {
	c.vectors = append(c.vectors, v)
	c.members.Add(row)
}

// Vector returns member i.
func (c *Cluster) Vector(i int) (*matrix.Matrix, bool) {
	if i < 0 || i >= len(c.vectors) {
		return nil, false
	}
	return c.vectors[i], true
}

// Members returns a copy of the recorded source row indices.
func (c *Cluster) Members() *roaring.Bitmap {
	return c.members.Clone()
}

// Reset drops all members. The mean is kept.
func (c *Cluster) Reset() {
	c.vectors = c.vectors[:0]
	c.members.Clear()
}

// Mean returns the current mean, or nil if none has been set.
func (c *Cluster) Mean() *matrix.Matrix { return c.mean }

// SetMean replaces the current mean.
func (c *Cluster) SetMean(m *matrix.Matrix) { c.mean = m }

// TrueMean returns the componentwise average of the members. ok is false when
// the cluster is empty or the members do not share one shape.
func (c *Cluster) TrueMean() (mean *matrix.Matrix, ok bool) {
	if len(c.vectors) == 0 {
		return nil, false
	}
	first := c.vectors[0]
	mean, _ = matrix.New(first.Rows(), first.Cols())
	for _, v := range c.vectors {
		if !mean.Add(v) {
			return nil, false
		}
	}
	mean.Scale(1 / float64(len(c.vectors)))
	return mean, true
}

// RandomMean returns an n×1 vector with every element drawn uniformly from
// [lo, hi].
func RandomMean(rng Rand, n int, lo, hi float64) *matrix.Matrix {
	m, _ := matrix.New(max(n, 0), 1)
	for i := 0; i < n; i++ {
		m.Set(i, 0, lo+rng.Float64()*(hi-lo))
	}
	return m
}

// RandomMeanBounded returns a len(mins)×1 vector whose element i is drawn
// uniformly from [mins[i], maxs[i]].
func RandomMeanBounded(rng Rand, mins, maxs []float64) *matrix.Matrix {
	m, _ := matrix.New(len(mins), 1)
	for i := range mins {
		m.Set(i, 0, mins[i]+rng.Float64()*(maxs[i]-mins[i]))
	}
	return m
}
