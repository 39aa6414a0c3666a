package matrix

import (
	"fmt"

	"github.com/hupe1980/kddgo/source"
)

// FromSource builds a matrix from a tabular source holding the "Number of
// Rows", "Number of Columns" and "Data" features. The data readings are
// consumed row-major and must number exactly rows*cols.
//
// Every failure matches ErrShapeMismatch; missing or malformed count features
// additionally wrap the source package error.
func FromSource(src source.Source) (*Matrix, error) {
	rows, err := source.Scalar(src, source.FeatureRows)
	if err != nil {
		return nil, &ShapeError{cause: err}
	}
	cols, err := source.Scalar(src, source.FeatureColumns)
	if err != nil {
		return nil, &ShapeError{Rows: rows, cause: err}
	}
	data, err := source.Data(src)
	if err != nil {
		return nil, &ShapeError{Rows: rows, Cols: cols, cause: err}
	}
	if err := checkElements(rows, cols, len(data)); err != nil {
		return nil, err
	}
	m, err := FromSlice(rows, cols, data)
	if err != nil {
		return nil, fmt.Errorf("matrix: from source: %w", err)
	}
	return m, nil
}
