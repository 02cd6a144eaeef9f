package simmat

import (
	"errors"
	"fmt"
)

var (
	// ErrNilOutput is returned when the caller-supplied output matrix is nil.
	ErrNilOutput = errors.New("output matrix must not be nil")

	// ErrNilInput is returned when a required input matrix or vector is nil.
	ErrNilInput = errors.New("input must not be nil")

	// ErrInvalidShape is returned for non-positive matrix dimensions.
	ErrInvalidShape = errors.New("matrix dimensions must be positive")
)

// ErrDimensionMismatch indicates incompatible matrix/vector shapes.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidWeights indicates a weight vector violating the non-negativity
// or sum-to-one invariant. Index is the offending entry for a negative
// weight, or -1 when the sum is off.
type ErrInvalidWeights struct {
	Index  int
	Sum    float64
	Reason string
}

func (e *ErrInvalidWeights) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid weights: %s at index %d", e.Reason, e.Index)
	}
	return fmt.Sprintf("invalid weights: %s (sum=%v)", e.Reason, e.Sum)
}

// ErrInvalidTriplets indicates COO input violating the storage invariant:
// sorted by (column, row), duplicate-free, in-range, no explicit zeros.
// Index is the position of the offending triplet.
type ErrInvalidTriplets struct {
	Index  int
	Reason string
}

func (e *ErrInvalidTriplets) Error() string {
	return fmt.Sprintf("invalid triplets: %s at index %d", e.Reason, e.Index)
}

func dimensionMismatch(expected, actual int) error {
	return &ErrDimensionMismatch{Expected: expected, Actual: actual}
}
