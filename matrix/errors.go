package matrix

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kddgo/internal/conv"
)

var (
	// ErrBadShape is returned when a requested shape has a negative dimension.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrShapeMismatch is returned when element counts or operand shapes disagree.
	ErrShapeMismatch = errors.New("matrix: shape mismatch")
)

// ShapeError carries the expected and actual element counts of a failed construction.
//
// It matches ErrShapeMismatch via errors.Is.
type ShapeError struct {
	Rows, Cols int
	Elements   int
	cause      error
}

func (e *ShapeError) Error() string {
	var msg string
	if need, err := conv.MulInt(e.Rows, e.Cols); err == nil {
		msg = fmt.Sprintf("matrix: shape mismatch: %dx%d needs %d elements, got %d", e.Rows, e.Cols, need, e.Elements)
	} else {
		msg = fmt.Sprintf("matrix: shape mismatch: %dx%d has more elements than int can count, got %d", e.Rows, e.Cols, e.Elements)
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Is reports whether target is ErrShapeMismatch.
func (e *ShapeError) Is(target error) bool { return target == ErrShapeMismatch }

func (e *ShapeError) Unwrap() error { return e.cause }

// checkElements fails unless n equals rows*cols. An overflowing product never
// matches.
func checkElements(rows, cols, n int) error {
	need, err := conv.MulInt(rows, cols)
	if err != nil {
		return &ShapeError{Rows: rows, Cols: cols, Elements: n, cause: err}
	}
	if n != need {
		return &ShapeError{Rows: rows, Cols: cols, Elements: n}
	}
	return nil
}
