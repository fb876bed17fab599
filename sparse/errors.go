// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// Structural sentinels are specific to the compressed-row layout; shape and
// index sentinels are shared with package matrix so errors.Is matches across
// the whole stack.

package sparse

import (
	"errors"

	"github.com/katalvlaran/fmsgd/matrix"
)

var (
	// ErrBadIndptr reports a row-pointer array that is not a valid CSR prefix
	// sum (wrong length, non-zero start, decreasing, or not ending at nnz).
	ErrBadIndptr = errors.New("sparse: invalid row pointers")

	// ErrColumnOutOfRange reports a stored column index outside [0, cols).
	ErrColumnOutOfRange = errors.New("sparse: column index out of range")

	// ErrRowOutOfRange reports a triplet row index outside [0, rows).
	ErrRowOutOfRange = errors.New("sparse: row index out of range")

	// ErrUnsortedRow reports column indices that are not strictly increasing
	// inside a row (unsorted or duplicated entries).
	ErrUnsortedRow = errors.New("sparse: row column indices not strictly increasing")
)

// Shared sentinels (aliases of package matrix).
var (
	ErrInvalidDimensions = matrix.ErrInvalidDimensions
	ErrDimensionMismatch = matrix.ErrDimensionMismatch
	ErrOutOfRange        = matrix.ErrOutOfRange
	ErrNilMatrix         = matrix.ErrNilMatrix
)
