package cluster

import (
	"math/rand"
	"testing"

	"github.com/hupe1980/kddgo/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(t *testing.T, vals ...float64) *matrix.Matrix {
	t.Helper()
	m, err := matrix.FromSlice(len(vals), 1, vals)
	require.NoError(t, err)
	return m
}

func TestCluster_Members(t *testing.T) {
	c := New(3)
	assert.Equal(t, 3, c.ID())
	assert.Equal(t, 0, c.Len())

	_, ok := c.Vector(0)
	assert.False(t, ok)

	c.AddVector(vec(t, 1, 2))
	c.AddMember(7, vec(t, 3, 4))
	assert.Equal(t, 2, c.Len())

	v, ok := c.Vector(1)
	require.True(t, ok)
	assert.Equal(t, []float64{3, 4}, v.Raw())
	assert.Equal(t, []uint32{7}, c.Members().ToArray())

	c.SetMean(vec(t, 9, 9))
	c.Reset()
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Members().IsEmpty())
	assert.NotNil(t, c.Mean(), "reset keeps the mean")
}

func TestCluster_TrueMean(t *testing.T) {
	c := New(0)
	_, ok := c.TrueMean()
	assert.False(t, ok)

	c.AddVector(vec(t, 0, 10))
	c.AddVector(vec(t, 2, 20))
	c.AddVector(vec(t, 4, 30))

	mean, ok := c.TrueMean()
	require.True(t, ok)
	assert.Equal(t, 2, mean.Rows())
	assert.Equal(t, 1, mean.Cols())
	assert.InDeltaSlice(t, []float64{2, 20}, mean.Raw(), 1e-12)

	c.AddVector(vec(t, 1))
	_, ok = c.TrueMean()
	assert.False(t, ok)
}

func TestRandomMean(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	m := RandomMean(rng, 5, -2, 3)
	assert.Equal(t, 5, m.Rows())
	assert.Equal(t, 1, m.Cols())
	for _, v := range m.Raw() {
		assert.GreaterOrEqual(t, v, -2.0)
		assert.LessOrEqual(t, v, 3.0)
	}

	b := RandomMeanBounded(rng, []float64{0, 100}, []float64{1, 100})
	assert.Equal(t, 2, b.Rows())
	vals := b.Raw()
	assert.GreaterOrEqual(t, vals[0], 0.0)
	assert.LessOrEqual(t, vals[0], 1.0)
	assert.Equal(t, 100.0, vals[1])

	// Same seed, same draw.
	a1 := RandomMean(rand.New(rand.NewSource(9)), 3, 0, 1)
	a2 := RandomMean(rand.New(rand.NewSource(9)), 3, 0, 1)
	assert.True(t, a1.Equal(a2))
}
