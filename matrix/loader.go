// SPDX-License-Identifier: MIT
// Package matrix: flat-sequence loader.
//
// Purpose:
//   - Reshape a flat numeric sequence into a row-major Dense.
//   - Element (i, j) of the result equals values[i*cols + j].
//
// Determinism:
//   - A single copy in index order; the source slice is never retained.

package matrix

import (
	"fmt"
	"math"
)

const opFromFlat = "FromFlat"

// FromFlat builds a rows×cols Dense from a row-major flat sequence.
// Implementation:
//   - Stage 1: validate rows>0 && cols>0 (ErrInvalidDimensions).
//   - Stage 2: require len(values) == rows*cols (ErrShapeMismatch).
//   - Stage 3: optional finite check when WithValidateNaNInf is set.
//   - Stage 4: copy values into a fresh buffer.
//
// Behavior highlights:
//   - No validation beyond shape by default; any float64 is accepted.
//   - values is copied, so later writes by the caller do not leak into the result.
//
// Inputs:
//   - values: flat data (e.g. decoded from a JSON array).
//   - rows, cols: target shape.
//   - opts: numeric policy options.
//
// Errors:
//   - ErrInvalidDimensions, ErrShapeMismatch, ErrNaNInf (policy ON only).
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
func FromFlat(values []float64, rows, cols int, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(opFromFlat, ErrInvalidDimensions)
	}
	if len(values) != rows*cols {
		return nil, fmt.Errorf("%s: want %d×%d=%d values, got %d: %w",
			opFromFlat, rows, cols, rows*cols, len(values), ErrShapeMismatch)
	}
	if o.validateNaNInf {
		for idx, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%s: value %d: %w", opFromFlat, idx, ErrNaNInf)
			}
		}
	}

	res, err := newDenseWithPolicy(rows, cols, o.validateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opFromFlat, err)
	}
	copy(res.data, values) // row-major layout matches the flat order

	return res, nil
}

// FromRows builds a Dense from a rectangular [][]float64 (row slices).
// Every row must have the same length (ErrShapeMismatch otherwise).
// Handy for small literal fixtures.
// Complexity: O(rows*cols).
func FromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, matrixErrorf("FromRows", ErrInvalidDimensions)
	}
	r, c := len(rows), len(rows[0])
	flat := make([]float64, 0, r*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("FromRows: row %d has %d values, want %d: %w", i, len(row), c, ErrShapeMismatch)
		}
		flat = append(flat, row...)
	}

	return FromFlat(flat, r, c, opts...)
}
