package matrix

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/hupe1980/kddgo/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(t *testing.T, rows, cols int, v float64) *Matrix {
	t.Helper()
	m, err := New(rows, cols)
	require.NoError(t, err)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			require.True(t, m.Set(i, j, v))
		}
	}
	return m
}

func sequence(t *testing.T, rows, cols int) *Matrix {
	t.Helper()
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = float64(i + 1)
	}
	m, err := FromSlice(rows, cols, data)
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	m, err := New(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 2, m.Cols())
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			v, ok := m.At(i, j)
			require.True(t, ok)
			assert.Zero(t, v)
		}
	}

	_, err = New(-1, 2)
	assert.ErrorIs(t, err, ErrBadShape)
	_, err = New(2, -1)
	assert.ErrorIs(t, err, ErrBadShape)
	_, err = New(math.MaxInt/4+1, 4)
	assert.ErrorIs(t, err, ErrBadShape)

	e := Empty()
	assert.Equal(t, 0, e.Rows())
	assert.Equal(t, 0, e.Cols())
}

func TestFromSource(t *testing.T) {
	tbl := source.NewMatrixTable(4, 4, make([]float64, 16))
	for i := range tbl[source.FeatureData] {
		tbl[source.FeatureData][i] = 2
	}

	m, err := FromSource(tbl)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Rows())
	assert.Equal(t, 4, m.Cols())
	v, ok := m.At(3, 3)
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	t.Run("ReadingCountMismatch", func(t *testing.T) {
		bad := source.NewMatrixTable(4, 4, make([]float64, 15))
		for range 3 {
			_, err := FromSource(bad)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrShapeMismatch)

			var se *ShapeError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, 15, se.Elements)
		}
	})

	t.Run("ElementCountOverflow", func(t *testing.T) {
		// The product wraps around int and must not match any reading count.
		huge := math.MaxInt/4 + 1
		m, err := FromSource(source.NewMatrixTable(huge, 4, []float64{}))
		assert.Nil(t, m)
		require.ErrorIs(t, err, ErrShapeMismatch)
		assert.Contains(t, err.Error(), "more elements than int can count")

		_, err = FromSlice(huge, 4, nil)
		assert.ErrorIs(t, err, ErrShapeMismatch)
		_, err = FromSlice(huge, 4, []float64{})
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("MissingCounts", func(t *testing.T) {
		_, err := FromSource(source.Table{source.FeatureData: {1}})
		assert.ErrorIs(t, err, ErrShapeMismatch)
		assert.ErrorIs(t, err, source.ErrMissingFeature)

		_, err = FromSource(source.Table{source.FeatureRows: {1}, source.FeatureData: {1}})
		assert.ErrorIs(t, err, source.ErrMissingFeature)

		_, err = FromSource(source.Table{source.FeatureRows: {1}, source.FeatureColumns: {1}})
		assert.ErrorIs(t, err, source.ErrMissingFeature)
	})

	t.Run("NonIntegralCount", func(t *testing.T) {
		tbl := source.NewMatrixTable(2, 2, []float64{1, 2, 3, 4})
		tbl.Set(source.FeatureRows, 1.5)
		_, err := FromSource(tbl)
		assert.ErrorIs(t, err, ErrShapeMismatch)
		assert.ErrorIs(t, err, source.ErrNotIntegral)
	})
}

func TestGetSet(t *testing.T) {
	m := filled(t, 4, 4, 2)

	v, ok := m.At(3, 3)
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	assert.True(t, m.Set(3, 3, 33))
	v, _ = m.At(3, 3)
	assert.Equal(t, 33.0, v)

	_, ok = m.At(1, 33)
	assert.False(t, ok)
	_, ok = m.At(-1, 0)
	assert.False(t, ok)
	assert.False(t, m.Set(4, 0, 1))
	assert.False(t, m.Set(0, -1, 1))
}

func TestAddSubtract(t *testing.T) {
	a := filled(t, 4, 4, 2)
	b := filled(t, 4, 4, 1)

	require.True(t, a.Subtract(b))
	assert.True(t, a.Equal(filled(t, 4, 4, 1)))

	require.True(t, a.Add(b))
	assert.True(t, a.Equal(filled(t, 4, 4, 2)))

	t.Run("RoundTrip", func(t *testing.T) {
		x := sequence(t, 3, 5)
		orig := x.Clone()
		y := sequence(t, 3, 5)
		y.Scale(0.37)

		require.True(t, x.Add(y))
		require.True(t, x.Subtract(y))
		assert.True(t, x.EqualApprox(orig, 1e-12))
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		x := sequence(t, 2, 3)
		orig := x.Clone()

		// Differ in one dimension only.
		assert.False(t, x.Add(sequence(t, 2, 4)))
		assert.False(t, x.Subtract(sequence(t, 3, 3)))
		assert.False(t, x.ScaleByUncertainty(sequence(t, 3, 2)))
		assert.False(t, x.Add(nil))
		assert.True(t, x.Equal(orig))
	})
}

func TestScaleByUncertainty(t *testing.T) {
	a := filled(t, 4, 4, 2)
	b := filled(t, 4, 4, 6)

	require.True(t, a.ScaleByUncertainty(b))
	for _, v := range a.Raw() {
		assert.Equal(t, 1.0/3, v)
	}

	t.Run("ZeroDivisorSkipsCell", func(t *testing.T) {
		x := filled(t, 1, 3, 4)
		u, err := FromSlice(1, 3, []float64{2, 0, 4})
		require.NoError(t, err)

		require.True(t, x.ScaleByUncertainty(u))
		assert.Equal(t, []float64{2, 4, 1}, x.Raw())
	})
}

func TestMulElementsFill(t *testing.T) {
	m := sequence(t, 2, 2)
	w := filled(t, 2, 2, 0)
	w.Fill(3)

	require.True(t, m.MulElements(w))
	assert.Equal(t, []float64{3, 6, 9, 12}, m.Raw())

	assert.False(t, m.MulElements(sequence(t, 1, 4)))
	assert.Equal(t, []float64{3, 6, 9, 12}, m.Raw())
}

func TestRowNormalize(t *testing.T) {
	m := filled(t, 4, 5, 2)
	m.RowNormalize()
	for _, v := range m.Raw() {
		assert.InDelta(t, 1.0/5, v, 1e-15)
	}

	z, err := FromSlice(2, 2, []float64{0, 0, 1, 3})
	require.NoError(t, err)
	z.RowNormalize()
	assert.Equal(t, []float64{0, 0, 0.25, 0.75}, z.Raw())
}

func TestColumnNormalize(t *testing.T) {
	m, err := FromSlice(2, 3, []float64{1, 0, 2, 3, 0, 2})
	require.NoError(t, err)
	m.ColumnNormalize()
	assert.Equal(t, []float64{0.25, 0, 0.5, 0.75, 0, 0.5}, m.Raw())
}

func TestTranspose(t *testing.T) {
	m := sequence(t, 2, 2)
	m.Transpose()
	assert.Equal(t, []float64{1, 3, 2, 4}, m.Raw())

	r := sequence(t, 2, 3)
	orig := r.Clone()
	r.Transpose()
	assert.Equal(t, 3, r.Rows())
	assert.Equal(t, 2, r.Cols())
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			want, _ := orig.At(i, j)
			got, ok := r.At(j, i)
			require.True(t, ok)
			assert.Equal(t, want, got)
		}
	}
	r.Transpose()
	assert.True(t, r.Equal(orig))

	v := sequence(t, 1, 4)
	v.Transpose()
	assert.Equal(t, 4, v.Rows())
	assert.Equal(t, 1, v.Cols())
	got, _ := v.At(2, 0)
	assert.Equal(t, 3.0, got)
}

func TestResize(t *testing.T) {
	m := sequence(t, 2, 3)
	orig := m.Clone()

	assert.Equal(t, 3, m.AddRow())
	for j := 0; j < 3; j++ {
		v, ok := m.At(2, j)
		require.True(t, ok)
		assert.Zero(t, v)
	}
	assert.True(t, m.DeleteRow())
	assert.True(t, m.Equal(orig))

	assert.Equal(t, 4, m.AddColumn())
	for i := 0; i < 2; i++ {
		v, ok := m.At(i, 3)
		require.True(t, ok)
		assert.Zero(t, v)
		// Existing cells keep their positions.
		want, _ := orig.At(i, 2)
		got, _ := m.At(i, 2)
		assert.Equal(t, want, got)
	}
	assert.True(t, m.DeleteColumn())
	assert.True(t, m.Equal(orig))

	e := Empty()
	assert.False(t, e.DeleteRow())
	assert.False(t, e.DeleteColumn())
	assert.Equal(t, 1, e.AddColumn())
	assert.Equal(t, 1, e.AddRow())
	v, ok := e.At(0, 0)
	require.True(t, ok)
	assert.Zero(t, v)
}

func TestRowColumn(t *testing.T) {
	m := sequence(t, 3, 2)

	r, ok := m.Row(1)
	require.True(t, ok)
	assert.Equal(t, []float64{3, 4}, r.Raw())

	c, ok := m.Column(1)
	require.True(t, ok)
	assert.Equal(t, 3, c.Rows())
	assert.Equal(t, []float64{2, 4, 6}, c.Raw())

	_, ok = m.Row(3)
	assert.False(t, ok)
	_, ok = m.Column(-1)
	assert.False(t, ok)

	// Copies, not views.
	r.Set(0, 0, 100)
	v, _ := m.At(1, 0)
	assert.Equal(t, 3.0, v)
}

func TestBounds(t *testing.T) {
	m, err := FromSlice(3, 2, []float64{1, -5, 4, 2, -3, 9})
	require.NoError(t, err)

	lo, hi, ok := m.Bounds()
	require.True(t, ok)
	assert.Equal(t, -5.0, lo)
	assert.Equal(t, 9.0, hi)

	mins, maxs := m.ColumnBounds()
	assert.Equal(t, []float64{-3, -5}, mins)
	assert.Equal(t, []float64{4, 9}, maxs)

	_, _, ok = Empty().Bounds()
	assert.False(t, ok)
	assert.InDelta(t, 8.0, m.Sum(), 1e-12)
}

func TestEqualHash(t *testing.T) {
	a := sequence(t, 3, 3)
	b := sequence(t, 3, 3)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	b.Set(1, 1, -1)
	assert.False(t, a.Equal(b))
	assert.NotEqual(t, a.Hash(), b.Hash())

	// Same elements, different shape.
	c := sequence(t, 1, 9)
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Hash(), c.Hash())

	z1, _ := FromSlice(1, 1, []float64{0})
	z2 := z1.Clone()
	z2.Scale(-1)
	assert.True(t, z1.Equal(z2))
	assert.Equal(t, z1.Hash(), z2.Hash())
}

func TestJSON(t *testing.T) {
	m := sequence(t, 2, 3)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rows":2,"cols":3,"data":[1,2,3,4,5,6]}`, string(data))

	var out Matrix
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.Equal(m))

	err = json.Unmarshal([]byte(`{"rows":2,"cols":2,"data":[1]}`), &out)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	data, err = json.Marshal(Empty())
	require.NoError(t, err)
	assert.JSONEq(t, `{"rows":0,"cols":0,"data":[]}`, string(data))
}

func TestString(t *testing.T) {
	m := sequence(t, 2, 2)
	assert.Equal(t, "Matrix(2x2)\n[1 2]\n[3 4]", m.String())
}
