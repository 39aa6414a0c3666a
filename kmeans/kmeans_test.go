package kmeans

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/hupe1980/kddgo/distance"
	"github.com/hupe1980/kddgo/matrix"
	"github.com/hupe1980/kddgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoGroups returns 2000 2-D points in two well-separated groups of 1000.
func twoGroups() *matrix.Matrix {
	rng := testutil.NewRNG(4711)
	return rng.Blobs(1000, 2, [][]float64{{0, 0}, {20, 0}}, 0.5)
}

func TestEngine_TwoGroups(t *testing.T) {
	e, err := New(twoGroups(), WithSeed(42), WithProperties(map[string]string{
		PropClusters:   "2",
		PropIterations: "10",
	}))
	require.NoError(t, err)

	require.NoError(t, e.Cluster(context.Background()))
	assert.True(t, e.IsClustered())
	assert.Equal(t, 2, e.NumberOfClusters())
	assert.ElementsMatch(t, []int{1000, 1000}, []int{
		e.NumberOfClusterElements(0),
		e.NumberOfClusterElements(1),
	})

	// Every group lands in one cluster.
	a := e.Assignments()
	require.Len(t, a, 2000)
	for i := 1; i < 1000; i++ {
		assert.Equal(t, a[0], a[i])
		assert.Equal(t, a[1000], a[1000+i])
	}
	assert.NotEqual(t, a[0], a[1000])

	for _, c := range e.Clusters() {
		assert.Equal(t, uint64(1000), c.Members().GetCardinality())
	}
}

func TestEngine_BeforeClustering(t *testing.T) {
	e, err := New(twoGroups())
	require.NoError(t, err)

	assert.False(t, e.IsClustered())
	assert.Equal(t, 0, e.NumberOfClusters())
	assert.Equal(t, 0, e.NumberOfClusterElements(0))
	assert.Nil(t, e.Clusters())
	assert.Nil(t, e.Assignments())
	assert.Nil(t, e.Means())

	r := e.Report()
	assert.False(t, r.Clustered)
	assert.Equal(t, "2", r.Properties[PropClusters])
	assert.Nil(t, r.Sizes)
}

func TestEngine_Properties(t *testing.T) {
	e, err := New(twoGroups(), WithSeed(1))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		PropClusters:               "2",
		PropIterations:             "10",
		PropVisualizationDimension: "2",
		PropDistanceMeasure:        "Euclidean",
	}, e.Properties())

	t.Run("Rejected", func(t *testing.T) {
		before := e.Properties()
		assert.False(t, e.SetProperty("Number of Pins", "3"))
		assert.False(t, e.SetProperty(PropClusters, "0"))
		assert.False(t, e.SetProperty(PropIterations, "ten"))
		assert.False(t, e.SetProperty(PropDistanceMeasure, "Mahalanobis"))
		assert.Equal(t, before, e.Properties())
		assert.False(t, e.IsClustered(), "rejected keys must not trigger clustering")
	})

	t.Run("RecognizedKeyRecomputes", func(t *testing.T) {
		require.True(t, e.SetProperty(PropClusters, "3"))
		assert.True(t, e.IsClustered())
		assert.Equal(t, 3, e.NumberOfClusters())

		total := 0
		for i := 0; i < 3; i++ {
			total += e.NumberOfClusterElements(i)
		}
		assert.Equal(t, 2000, total)
		assert.Equal(t, 0, e.NumberOfClusterElements(3))
		assert.Equal(t, 0, e.NumberOfClusterElements(-1))

		require.True(t, e.SetProperty(PropDistanceMeasure, "Manhattan"))
		assert.Equal(t, "Manhattan", e.Properties()[PropDistanceMeasure])
		assert.True(t, e.IsClustered())

		require.True(t, e.SetProperty(PropVisualizationDimension, "3"))
		assert.Equal(t, "3", e.Properties()[PropVisualizationDimension])
	})

	_, err = New(twoGroups(), WithProperties(map[string]string{"bogus": "1"}))
	assert.ErrorIs(t, err, ErrInvalidProperty)
}

func TestEngine_Idempotent(t *testing.T) {
	e, err := New(twoGroups(), WithSeed(7), WithProperties(map[string]string{PropClusters: "4"}))
	require.NoError(t, err)

	sizes := func() []int {
		require.NoError(t, e.Cluster(context.Background()))
		return e.Report().Sizes
	}

	first := sizes()
	firstAssignments := e.Assignments()
	assert.Equal(t, first, sizes())
	assert.Equal(t, firstAssignments, e.Assignments())
}

func TestEngine_WorkersMatchSequential(t *testing.T) {
	data := testutil.NewRNG(3).Blobs(250, 3, [][]float64{{0, 0, 0}, {5, 5, 5}, {-5, 0, 5}}, 2)
	props := map[string]string{PropClusters: "3", PropIterations: "5"}

	seq, err := New(data, WithSeed(11), WithProperties(props))
	require.NoError(t, err)
	par, err := New(data, WithSeed(11), WithProperties(props), WithWorkers(4))
	require.NoError(t, err)

	require.NoError(t, seq.Cluster(context.Background()))
	require.NoError(t, par.Cluster(context.Background()))
	assert.Equal(t, seq.Assignments(), par.Assignments())
	for i, m := range seq.Means() {
		assert.True(t, m.Equal(par.Means()[i]))
	}
}

func TestEngine_ParallelAssignCancellation(t *testing.T) {
	e, err := New(twoGroups(), WithSeed(1), WithWorkers(4))
	require.NoError(t, err)
	distFunc, err := distance.Provider(distance.Euclidean)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := make([]int, e.data.Rows())
	for i := range out {
		out[i] = -1
	}
	err = e.assign(ctx, out, [][]float64{{0, 0}, {20, 0}}, distFunc)
	require.ErrorIs(t, err, context.Canceled)
	for _, j := range out {
		assert.Equal(t, -1, j, "no chunk may run after cancellation")
	}

	require.NoError(t, e.assign(context.Background(), out, [][]float64{{0, 0}, {20, 0}}, distFunc))
	assert.ElementsMatch(t, []int{0, 1}, uniq(out))
}

func uniq(xs []int) []int {
	seen := map[int]bool{}
	var out []int
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	return out
}

func TestEngine_EmptyClusterKeepsMean(t *testing.T) {
	// Identical points: both initial means coincide with the data, every
	// distance ties and the lowest index wins.
	data, err := matrix.FromSlice(4, 2, []float64{1, 1, 1, 1, 1, 1, 1, 1})
	require.NoError(t, err)

	e, err := New(data, WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	require.NoError(t, e.Cluster(context.Background()))

	assert.Equal(t, 4, e.NumberOfClusterElements(0))
	assert.Equal(t, 0, e.NumberOfClusterElements(1))
	means := e.Means()
	assert.Equal(t, []float64{1, 1}, means[1].Raw())
}

func TestEngine_ColumnsAxis(t *testing.T) {
	data := twoGroups()
	data.Transpose() // 2×2000, one point per column

	e, err := New(data, WithSeed(42), WithAxis(AxisColumns))
	require.NoError(t, err)
	require.NoError(t, e.Cluster(context.Background()))
	assert.ElementsMatch(t, []int{1000, 1000}, e.Report().Sizes)
}

func TestEngine_Cancellation(t *testing.T) {
	e, err := New(twoGroups(), WithSeed(1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = e.Cluster(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, e.IsClustered())
	assert.Equal(t, 0, e.NumberOfClusters())
}

func TestEngine_CopiesData(t *testing.T) {
	data, err := matrix.FromSlice(2, 1, []float64{0, 10})
	require.NoError(t, err)

	e, err := New(data, WithSeed(5))
	require.NoError(t, err)
	data.Set(0, 0, 1000)

	require.NoError(t, e.Cluster(context.Background()))
	for _, m := range e.Means() {
		v, _ := m.At(0, 0)
		assert.LessOrEqual(t, v, 10.0)
	}
}

func TestEngine_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e, err := New(twoGroups(), WithSeed(1), WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, e.Cluster(context.Background()))

	assert.Contains(t, buf.String(), "kmeans clustering completed")
	assert.Contains(t, buf.String(), `"iterations":10`)
}

func TestNew_NilData(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilData)
}
