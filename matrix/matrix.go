package matrix

import (
	"fmt"
	"math"
	"strings"

	"github.com/hupe1980/kddgo/internal/conv"
)

// Matrix is a rows×cols grid of float64 values stored row-major.
// The zero value is an empty 0×0 matrix ready to use.
type Matrix struct {
	rows, cols int
	data       []float64 // len(data) == rows*cols
}

// Empty returns a 0×0 matrix.
func Empty() *Matrix {
	return &Matrix{}
}

// New returns a zero-filled rows×cols matrix.
func New(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, rows, cols)
	}
	n, err := conv.MulInt(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %dx%d: %w", ErrBadShape, rows, cols, err)
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float64, n)}, nil
}

// FromSlice returns a rows×cols matrix holding a copy of data (row-major).
func FromSlice(rows, cols int, data []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, rows, cols)
	}
	if err := checkElements(rows, cols, len(data)); err != nil {
		return nil, err
	}
	m := &Matrix{rows: rows, cols: cols, data: make([]float64, len(data))}
	copy(m.data, data)
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Len returns rows*cols.
func (m *Matrix) Len() int { return len(m.data) }

func (m *Matrix) inBounds(i, j int) bool {
	return i >= 0 && j >= 0 && i < m.rows && j < m.cols
}

// At returns the element at (i, j). The second result is false when (i, j) is
// out of range.
func (m *Matrix) At(i, j int) (float64, bool) {
	if !m.inBounds(i, j) {
		return 0, false
	}
	return m.data[i*m.cols+j], true
}

// Set writes v at (i, j) and reports whether (i, j) was in range.
func (m *Matrix) Set(i, j int, v float64) bool {
	if !m.inBounds(i, j) {
		return false
	}
	m.data[i*m.cols+j] = v
	return true
}

// SameShape reports whether m and o have identical dimensions.
func (m *Matrix) SameShape(o *Matrix) bool {
	return o != nil && m.rows == o.rows && m.cols == o.cols
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(c.data, m.data)
	return c
}

// Raw returns a copy of the row-major elements.
func (m *Matrix) Raw() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// Row returns row i as a 1×cols matrix.
func (m *Matrix) Row(i int) (*Matrix, bool) {
	if i < 0 || i >= m.rows {
		return nil, false
	}
	r := &Matrix{rows: 1, cols: m.cols, data: make([]float64, m.cols)}
	copy(r.data, m.data[i*m.cols:(i+1)*m.cols])
	return r, true
}

// Column returns column j as a rows×1 matrix.
func (m *Matrix) Column(j int) (*Matrix, bool) {
	if j < 0 || j >= m.cols {
		return nil, false
	}
	c := &Matrix{rows: m.rows, cols: 1, data: make([]float64, m.rows)}
	for i := 0; i < m.rows; i++ {
		c.data[i] = m.data[i*m.cols+j]
	}
	return c, true
}

// RowView returns the backing slice of row i. The slice aliases m and is only
// valid until the next resize.
func (m *Matrix) RowView(i int) []float64 {
	if i < 0 || i >= m.rows {
		return nil
	}
	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols]
}

// Sum returns the sum of all elements.
func (m *Matrix) Sum() float64 {
	var s float64
	for _, v := range m.data {
		s += v
	}
	return s
}

// Bounds returns the smallest and largest element. ok is false for an empty matrix.
func (m *Matrix) Bounds() (lo, hi float64, ok bool) {
	if len(m.data) == 0 {
		return 0, 0, false
	}
	lo, hi = m.data[0], m.data[0]
	for _, v := range m.data[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, true
}

// ColumnBounds returns the per-column minimum and maximum.
func (m *Matrix) ColumnBounds() (mins, maxs []float64) {
	mins = make([]float64, m.cols)
	maxs = make([]float64, m.cols)
	if m.rows == 0 {
		return mins, maxs
	}
	copy(mins, m.data[:m.cols])
	copy(maxs, m.data[:m.cols])
	for i := 1; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, v := range row {
			if v < mins[j] {
				mins[j] = v
			}
			if v > maxs[j] {
				maxs[j] = v
			}
		}
	}
	return mins, maxs
}

// String renders the matrix one row per line.
func (m *Matrix) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Matrix(%dx%d)", m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		b.WriteString("\n[")
		for j, v := range m.data[i*m.cols : (i+1)*m.cols] {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%g", v)
		}
		b.WriteByte(']')
	}
	return b.String()
}
