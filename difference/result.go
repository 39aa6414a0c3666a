package difference

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/kddgo/matrix"
	"github.com/hupe1980/kddgo/partition"
)

// Result holds the differences computed by one Execute.
type Result struct {
	properties map[string]string
	rows, cols int

	pin     *partition.Dataset
	weights *matrix.Matrix
	axial   [][]float64
	radial  []*matrix.Matrix

	pinOn, axialOn, radialOn bool
}

// Pin returns the per-group, per-layer difference matrices. It has the same
// structure as the compared datasets.
func (r *Result) Pin() *partition.Dataset { return r.pin }

// At returns the difference matrix at (group, layer).
func (r *Result) At(g, l int) (*matrix.Matrix, bool) { return r.pin.At(g, l) }

// Weights returns a copy of the per-pin weight matrix.
func (r *Result) Weights() *matrix.Matrix { return r.weights.Clone() }

// Axial returns, per group, the weighted sum of differences of every layer.
// ok is false when axial power is disabled.
func (r *Result) Axial() (sums [][]float64, ok bool) {
	if r.axial == nil {
		return nil, false
	}
	out := make([][]float64, len(r.axial))
	for g, layers := range r.axial {
		out[g] = append([]float64(nil), layers...)
	}
	return out, true
}

// Radial returns the weighted difference of group g summed over its layers.
// ok is false when radial power is disabled or g is out of range.
func (r *Result) Radial(g int) (*matrix.Matrix, bool) {
	if g < 0 || g >= len(r.radial) {
		return nil, false
	}
	return r.radial[g].Clone(), true
}

// Exceeding marks every pin whose absolute difference is greater than tol.
// Bits are numbered in partition order: group, then layer, then row-major
// within the layer.
func (r *Result) Exceeding(tol float64) *bitset.BitSet {
	n := 0
	for g := 0; g < r.pin.Groups(); g++ {
		n += r.pin.Layers(g) * r.rows * r.cols
	}
	bs := bitset.New(uint(n))

	var idx uint
	for g := 0; g < r.pin.Groups(); g++ {
		for _, m := range r.pin.Group(g) {
			for _, v := range m.Raw() {
				if math.Abs(v) > tol {
					bs.Set(idx)
				}
				idx++
			}
		}
	}
	return bs
}

// MaxAbs returns the largest absolute pin difference.
func (r *Result) MaxAbs() float64 {
	var mx float64
	for g := 0; g < r.pin.Groups(); g++ {
		for _, m := range r.pin.Group(g) {
			if lo, hi, ok := m.Bounds(); ok {
				mx = max(mx, math.Abs(lo), math.Abs(hi))
			}
		}
	}
	return mx
}

// Report is the serializable form of a Result. Sections whose property is
// "no" are omitted.
type Report struct {
	Assemblies  int                `json:"assemblies"`
	AxialLevels int                `json:"axial_levels"`
	Rows        int                `json:"rows"`
	Cols        int                `json:"cols"`
	Properties  map[string]string  `json:"properties"`
	MaxAbs      float64            `json:"max_abs"`
	Pin         *partition.Dataset `json:"pin,omitempty"`
	Axial       [][]float64        `json:"axial,omitempty"`
	Radial      []*matrix.Matrix   `json:"radial,omitempty"`
}

// Report summarizes the result.
func (r *Result) Report() *Report {
	rep := &Report{
		Assemblies:  r.pin.Groups(),
		AxialLevels: r.pin.Layers(0),
		Rows:        r.rows,
		Cols:        r.cols,
		Properties:  r.properties,
		MaxAbs:      r.MaxAbs(),
	}
	if r.pinOn {
		rep.Pin = r.pin
	}
	if r.axialOn {
		rep.Axial, _ = r.Axial()
	}
	if r.radialOn {
		rep.Radial = r.radial
	}
	return rep
}

// String renders the report as plain text, headed by the dataset dimensions.
func (rep *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Number of Assemblies: %d\n", rep.Assemblies)
	fmt.Fprintf(&b, "Number of Axial Levels: %d\n", rep.AxialLevels)
	fmt.Fprintf(&b, "Number of Pin Rows: %d\n", rep.Rows)
	fmt.Fprintf(&b, "Number of Pin Columns: %d\n", rep.Cols)
	fmt.Fprintf(&b, "Difference Type: %s\n", rep.Properties[PropDifferenceType])
	fmt.Fprintf(&b, "Maximum Absolute Difference: %s\n", num(rep.MaxAbs))

	if rep.Pin != nil {
		b.WriteString("\nPin Power Difference\n")
		for g := 0; g < rep.Pin.Groups(); g++ {
			for l, m := range rep.Pin.Group(g) {
				fmt.Fprintf(&b, "Assembly %d, Axial Level %d\n", g, l)
				writeMatrix(&b, m)
			}
		}
	}

	if rep.Axial != nil {
		b.WriteString("\nAxial Power Difference\n")
		for g, layers := range rep.Axial {
			fmt.Fprintf(&b, "Assembly %d:", g)
			for _, v := range layers {
				b.WriteString(" " + num(v))
			}
			b.WriteByte('\n')
		}
	}

	if rep.Radial != nil {
		b.WriteString("\nRadial Power Difference\n")
		for g, m := range rep.Radial {
			fmt.Fprintf(&b, "Assembly %d\n", g)
			writeMatrix(&b, m)
		}
	}
	return b.String()
}

func writeMatrix(b *strings.Builder, m *matrix.Matrix) {
	for i := 0; i < m.Rows(); i++ {
		for j, v := range m.RowView(i) {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(num(v))
		}
		b.WriteByte('\n')
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
