// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package and re-used by sparse and fm. All kernels MUST return these
// sentinels (optionally wrapped) and tests MUST check them via errors.Is.
// No kernel panics on user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Kernels wrap with fmt.Errorf("<Op>: %w", ErrX)
// at the detection site; callers still use errors.Is to match.
//
// ERROR PRIORITY (enforced in tests):
// nil -> invalid dimensions -> shape mismatch -> dimension mismatch -> NaN/Inf.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrShapeMismatch is returned when a flat value sequence does not hold
	// exactly rows*cols elements for the requested shape.
	ErrShapeMismatch = errors.New("matrix: flat length does not match shape")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Sub on different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where the numeric
	// policy (WithValidateNaNInf) requires finite values.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
)
