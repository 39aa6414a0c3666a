package source

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/hupe1980/kddgo/codec"
)

// Well-known feature names.
const (
	FeatureData        = "Data"
	FeatureRows        = "Number of Rows"
	FeatureColumns     = "Number of Columns"
	FeatureAssemblies  = "Number of Assemblies"
	FeatureAxialLevels = "Number of Axial Levels"
)

var (
	// ErrMissingFeature is returned when a required feature is absent.
	ErrMissingFeature = errors.New("source: missing feature")

	// ErrNotScalar is returned when a scalar feature does not hold exactly one reading.
	ErrNotScalar = errors.New("source: feature is not a single reading")

	// ErrNotIntegral is returned when a count feature holds a non-integral or negative value.
	ErrNotIntegral = errors.New("source: feature is not a non-negative integer")
)

// Source is a read-only view of named reading sequences.
type Source interface {
	// Features returns the available feature names.
	Features() []string
	// Readings returns the readings stored under name.
	Readings(name string) ([]float64, bool)
}

// Table is the map-backed Source implementation.
type Table map[string][]float64

// Features returns the feature names in sorted order.
func (t Table) Features() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Readings returns the readings stored under name.
func (t Table) Readings(name string) ([]float64, bool) {
	r, ok := t[name]
	return r, ok
}

// Set stores readings under name, replacing any previous value.
func (t Table) Set(name string, readings ...float64) {
	t[name] = readings
}

// NewMatrixTable returns a Table describing a single rows×cols matrix.
func NewMatrixTable(rows, cols int, data []float64) Table {
	return Table{
		FeatureRows:    {float64(rows)},
		FeatureColumns: {float64(cols)},
		FeatureData:    data,
	}
}

// Scalar reads a count feature: exactly one reading holding a non-negative integer.
func Scalar(src Source, name string) (int, error) {
	r, ok := src.Readings(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingFeature, name)
	}
	if len(r) != 1 {
		return 0, fmt.Errorf("%w: %q has %d readings", ErrNotScalar, name, len(r))
	}
	v := r[0]
	if v < 0 || v != math.Trunc(v) || v >= math.MaxInt {
		return 0, fmt.Errorf("%w: %q = %v", ErrNotIntegral, name, v)
	}
	return int(v), nil
}

// ScalarOr is like Scalar but returns def when the feature is absent.
func ScalarOr(src Source, name string, def int) (int, error) {
	if _, ok := src.Readings(name); !ok {
		return def, nil
	}
	return Scalar(src, name)
}

// Data returns the "Data" readings.
func Data(src Source) ([]float64, error) {
	r, ok := src.Readings(FeatureData)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingFeature, FeatureData)
	}
	return r, nil
}

// Encode serializes a source with the given codec. A nil codec selects codec.Default.
func Encode(c codec.Codec, src Source) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	t := make(Table)
	for _, name := range src.Features() {
		r, _ := src.Readings(name)
		t[name] = r
	}
	return c.Marshal(t)
}

// Decode parses a Table previously written by Encode.
func Decode(c codec.Codec, data []byte) (Table, error) {
	if c == nil {
		c = codec.Default
	}
	t := make(Table)
	if err := c.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("source: decode with %s: %w", c.Name(), err)
	}
	return t, nil
}
