// Package partition slices a flat reading sequence into per-group, per-layer
// matrices.
//
// The flat sequence is split into nGroups contiguous, equally sized blocks
// (assemblies); every block is split into nLayers contiguous sub-blocks (axial
// levels) of rows*cols readings each, consumed row-major. Group 0, layer 0 is
// always flat[0 : rows*cols].
package partition

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hupe1980/kddgo/internal/conv"
	"github.com/hupe1980/kddgo/matrix"
	"github.com/hupe1980/kddgo/source"
)

// ErrPartitionMismatch is returned when the readings cannot be divided evenly.
var ErrPartitionMismatch = errors.New("partition: readings cannot be divided evenly")

// MismatchError describes a failed partition. It matches ErrPartitionMismatch.
type MismatchError struct {
	Readings, Groups, Layers, Rows, Cols int
	Reason                               string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("partition: %s (readings=%d groups=%d layers=%d shape=%dx%d)",
		e.Reason, e.Readings, e.Groups, e.Layers, e.Rows, e.Cols)
}

// Is reports whether target is ErrPartitionMismatch.
func (e *MismatchError) Is(target error) bool { return target == ErrPartitionMismatch }

// ErrStructureMismatch is returned when two datasets do not share group
// count, per-group layer count and matrix shape.
var ErrStructureMismatch = errors.New("partition: dataset structures differ")

// StructureError locates the first structural difference between two
// datasets. Group and Layer are -1 when they do not apply.
type StructureError struct {
	Group, Layer int
	Reason       string
}

func (e *StructureError) Error() string {
	switch {
	case e.Group < 0:
		return "partition: " + e.Reason
	case e.Layer < 0:
		return fmt.Sprintf("partition: group %d: %s", e.Group, e.Reason)
	default:
		return fmt.Sprintf("partition: group %d layer %d: %s", e.Group, e.Layer, e.Reason)
	}
}

// Is reports whether target is ErrStructureMismatch.
func (e *StructureError) Is(target error) bool { return target == ErrStructureMismatch }

// Dataset maps group index to its ordered layer matrices. All matrices share
// one shape.
type Dataset struct {
	rows, cols int
	groups     [][]*matrix.Matrix
}

// Partition splits flat into nGroups groups of nLayers rows×cols matrices.
// The readings are copied.
func Partition(flat []float64, nGroups, nLayers, rows, cols int) (*Dataset, error) {
	fail := func(reason string) error {
		return &MismatchError{Readings: len(flat), Groups: nGroups, Layers: nLayers, Rows: rows, Cols: cols, Reason: reason}
	}

	switch {
	case nGroups <= 0:
		return nil, fail("group count must be positive")
	case nLayers <= 0:
		return nil, fail("layer count must be positive")
	case rows < 0 || cols < 0:
		return nil, fail("negative layer shape")
	case len(flat)%nGroups != 0:
		return nil, fail("readings not divisible by group count")
	}

	groupSize := len(flat) / nGroups
	layerSize, err := conv.MulInt(rows, cols)
	if err != nil {
		return nil, fail("layer shape overflows int")
	}
	if need, err := conv.MulInt(nLayers, layerSize); err != nil || groupSize != need {
		return nil, fail("group size does not match layers*rows*cols")
	}

	d := &Dataset{rows: rows, cols: cols, groups: make([][]*matrix.Matrix, nGroups)}
	for g := range d.groups {
		block := flat[g*groupSize : (g+1)*groupSize]
		layers := make([]*matrix.Matrix, nLayers)
		for l := range layers {
			m, err := matrix.FromSlice(rows, cols, block[l*layerSize:(l+1)*layerSize])
			if err != nil {
				return nil, fmt.Errorf("partition: group %d layer %d: %w", g, l, err)
			}
			layers[l] = m
		}
		d.groups[g] = layers
	}
	return d, nil
}

// FromSource partitions the "Data" readings of src. The group count is read
// from "Number of Assemblies" (default 1) and the layer count from "Number of
// Axial Levels"; when absent, the layer count is derived from the reading count.
func FromSource(src source.Source, rows, cols int) (*Dataset, error) {
	data, err := source.Data(src)
	if err != nil {
		return nil, err
	}
	nGroups, err := source.ScalarOr(src, source.FeatureAssemblies, 1)
	if err != nil {
		return nil, err
	}

	derived := 0
	if layer, err := conv.MulInt(rows, cols); err == nil {
		if per, err := conv.MulInt(nGroups, layer); err == nil && per > 0 && len(data)%per == 0 {
			derived = len(data) / per
		}
	}
	nLayers, err := source.ScalarOr(src, source.FeatureAxialLevels, derived)
	if err != nil {
		return nil, err
	}
	return Partition(data, nGroups, nLayers, rows, cols)
}

// New assembles a dataset from existing matrices. Every group must be
// non-empty and every matrix must share the shape of groups[0][0].
func New(groups [][]*matrix.Matrix) (*Dataset, error) {
	if len(groups) == 0 || len(groups[0]) == 0 {
		return nil, &MismatchError{Reason: "empty dataset"}
	}
	rows, cols := groups[0][0].Rows(), groups[0][0].Cols()
	d := &Dataset{rows: rows, cols: cols, groups: make([][]*matrix.Matrix, len(groups))}
	for g, layers := range groups {
		if len(layers) == 0 {
			return nil, &MismatchError{Groups: len(groups), Rows: rows, Cols: cols, Reason: fmt.Sprintf("group %d has no layers", g)}
		}
		d.groups[g] = make([]*matrix.Matrix, len(layers))
		for l, m := range layers {
			if m == nil || m.Rows() != rows || m.Cols() != cols {
				return nil, &MismatchError{Groups: len(groups), Layers: len(layers), Rows: rows, Cols: cols,
					Reason: fmt.Sprintf("group %d layer %d has a different shape", g, l)}
			}
			d.groups[g][l] = m.Clone()
		}
	}
	return d, nil
}

// Groups returns the number of groups.
func (d *Dataset) Groups() int { return len(d.groups) }

// Layers returns the number of layers in group g, or 0 if g is out of range.
func (d *Dataset) Layers(g int) int {
	if g < 0 || g >= len(d.groups) {
		return 0
	}
	return len(d.groups[g])
}

// Shape returns the rows and columns shared by every layer matrix.
func (d *Dataset) Shape() (rows, cols int) { return d.rows, d.cols }

// At returns the layer matrix at (g, l). The matrix is owned by the dataset.
func (d *Dataset) At(g, l int) (*matrix.Matrix, bool) {
	if l < 0 || l >= d.Layers(g) {
		return nil, false
	}
	return d.groups[g][l], true
}

// SameStructure returns nil when o has the same group count, the same layer
// count in every group and the same matrix shape at every position.
func (d *Dataset) SameStructure(o *Dataset) error {
	if d == nil || o == nil {
		return &StructureError{Group: -1, Layer: -1, Reason: "nil dataset"}
	}
	if len(d.groups) != len(o.groups) {
		return &StructureError{Group: -1, Layer: -1,
			Reason: fmt.Sprintf("group count %d != %d", len(d.groups), len(o.groups))}
	}
	for g := range d.groups {
		if len(d.groups[g]) != len(o.groups[g]) {
			return &StructureError{Group: g, Layer: -1,
				Reason: fmt.Sprintf("layer count %d != %d", len(d.groups[g]), len(o.groups[g]))}
		}
		for l, m := range d.groups[g] {
			if !m.SameShape(o.groups[g][l]) {
				return &StructureError{Group: g, Layer: l,
					Reason: fmt.Sprintf("shape %dx%d != %dx%d", m.Rows(), m.Cols(), o.groups[g][l].Rows(), o.groups[g][l].Cols())}
			}
		}
	}
	return nil
}

// Group returns the layer matrices of group g.
func (d *Dataset) Group(g int) []*matrix.Matrix {
	if g < 0 || g >= len(d.groups) {
		return nil
	}
	out := make([]*matrix.Matrix, len(d.groups[g]))
	copy(out, d.groups[g])
	return out
}

// Map returns a new dataset built by applying fn to every (group, layer)
// matrix in order. The first error aborts the walk.
func (d *Dataset) Map(fn func(g, l int, m *matrix.Matrix) (*matrix.Matrix, error)) (*Dataset, error) {
	out := make([][]*matrix.Matrix, len(d.groups))
	for g, layers := range d.groups {
		out[g] = make([]*matrix.Matrix, len(layers))
		for l, m := range layers {
			r, err := fn(g, l, m)
			if err != nil {
				return nil, err
			}
			out[g][l] = r
		}
	}
	return New(out)
}

type wireDataset struct {
	Rows   int                `json:"rows"`
	Cols   int                `json:"cols"`
	Groups [][]*matrix.Matrix `json:"groups"`
}

// MarshalJSON encodes the dataset with its shape and nested matrices.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireDataset{Rows: d.rows, Cols: d.cols, Groups: d.groups})
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (d *Dataset) UnmarshalJSON(b []byte) error {
	var w wireDataset
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	nd, err := New(w.Groups)
	if err != nil {
		return err
	}
	if nd.rows != w.Rows || nd.cols != w.Cols {
		return &MismatchError{Rows: w.Rows, Cols: w.Cols, Reason: "declared shape does not match matrices"}
	}
	*d = *nd
	return nil
}
