package kddgo

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/hupe1980/kddgo/difference"
	"github.com/hupe1980/kddgo/kmeans"
	"github.com/hupe1980/kddgo/matrix"
	"github.com/hupe1980/kddgo/partition"
	"github.com/hupe1980/kddgo/source"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	other := errors.New("other")
	assert.Same(t, other, translateError(other))

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"Structure", &partition.StructureError{Group: 1, Layer: -1, Reason: "layer count"}, ErrStructureMismatch},
		{"Partition", &partition.MismatchError{Readings: 3, Groups: 2}, ErrPartitionMismatch},
		{"Shape", &matrix.ShapeError{Rows: 2, Cols: 2, Elements: 3}, ErrShapeMismatch},
		{"BadShape", fmt.Errorf("wrapped: %w", matrix.ErrBadShape), ErrShapeMismatch},
		{"MissingFeature", source.ErrMissingFeature, ErrInvalidSource},
		{"MatrixMissingCount", &matrix.ShapeError{Rows: 0, Cols: 0}, ErrShapeMismatch},
		{"MatrixBadCount", fmt.Errorf("%w: %w", matrix.ErrShapeMismatch, source.ErrNotIntegral), ErrShapeMismatch},
		{"NotIntegral", source.ErrNotIntegral, ErrInvalidSource},
		{"KMeansProperty", kmeans.ErrInvalidProperty, ErrInvalidProperty},
		{"DifferenceProperty", difference.ErrInvalidProperty, ErrInvalidProperty},
		{"NotFound", fmt.Errorf("result: resolve: %w", os.ErrNotExist), ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
			// Idempotent.
			assert.Equal(t, got, translateError(got))
		})
	}
}
