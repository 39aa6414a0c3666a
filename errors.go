package kddgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kddgo/difference"
	"github.com/hupe1980/kddgo/kmeans"
	"github.com/hupe1980/kddgo/matrix"
	"github.com/hupe1980/kddgo/partition"
	"github.com/hupe1980/kddgo/result"
	"github.com/hupe1980/kddgo/source"
)

var (
	// ErrShapeMismatch is returned when readings do not fill the declared matrix shape.
	ErrShapeMismatch = errors.New("kddgo: shape mismatch")

	// ErrPartitionMismatch is returned when readings cannot be split into the
	// declared groups and layers.
	ErrPartitionMismatch = errors.New("kddgo: partition mismatch")

	// ErrStructureMismatch is returned when loaded and reference datasets differ
	// in group count, layer count or shape.
	ErrStructureMismatch = errors.New("kddgo: structure mismatch")

	// ErrInvalidProperty is returned for an unknown property key or a value it
	// does not accept.
	ErrInvalidProperty = errors.New("kddgo: invalid property")

	// ErrInvalidSource is returned when a partitioned source lacks a required
	// feature or holds a malformed count. Matrix sources report the same
	// problems as ErrShapeMismatch.
	ErrInvalidSource = errors.New("kddgo: invalid source")

	// ErrNotFound is returned when a result does not exist.
	ErrNotFound = errors.New("kddgo: not found")

	// ErrNoResultStore is returned by operations that need a result store when
	// none is configured.
	ErrNoResultStore = errors.New("kddgo: no result store configured")
)

// translateError wraps package errors with the matching root sentinel. The
// original error stays reachable through errors.Is and errors.As.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var sentinel error
	switch {
	case errors.Is(err, partition.ErrStructureMismatch):
		sentinel = ErrStructureMismatch
	case errors.Is(err, partition.ErrPartitionMismatch):
		sentinel = ErrPartitionMismatch
	case errors.Is(err, matrix.ErrShapeMismatch), errors.Is(err, matrix.ErrBadShape):
		// Includes matrix sources with missing or malformed counts.
		sentinel = ErrShapeMismatch
	case errors.Is(err, source.ErrMissingFeature),
		errors.Is(err, source.ErrNotScalar),
		errors.Is(err, source.ErrNotIntegral):
		sentinel = ErrInvalidSource
	case errors.Is(err, kmeans.ErrInvalidProperty), errors.Is(err, difference.ErrInvalidProperty):
		sentinel = ErrInvalidProperty
	case errors.Is(err, result.ErrNotFound):
		sentinel = ErrNotFound
	default:
		return err
	}
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
