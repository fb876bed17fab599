// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide element-wise, broadcast and reduction kernels that mirror the
//     sparse design-matrix operations on dense data (row scaling, column
//     sums) plus a tolerance comparator.
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - No hidden allocations beyond the output; O(r*c) time.

package matrix

import "math"

const (
	opScaleRows = "ScaleRows"
	opColSums   = "ColSums"
	opAllClose  = "AllClose"
)

// ScaleRows computes out[i,j] = X[i,j] * scale[i] / denom.
// Dense counterpart of sparse.CSR.ScaleRows; denom=1 gives plain scaling.
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(scale) != rows).
func ScaleRows(X Matrix, scale []float64, denom float64) (Matrix, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(scale, r); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}

	// Dense fast-path.
	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c  // row base offset
			sf := scale[i] // scale factor for row i
			for j := 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] * sf / denom
			}
		}

		return out, nil
	}

	// Generic fallback.
	for i := 0; i < r; i++ {
		sf := scale[i]
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf(opScaleRows, e)
			}
			out.data[i*c+j] = v * sf / denom
		}
	}

	return out, nil
}

// ColSums returns vector s where s[j] = sum_i m[i,j], accumulated in
// ascending row order for every column.
// Time: O(r*c). Space: O(c).
//
// Errors: ErrNilMatrix.
func ColSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opColSums, err)
	}
	r, c := m.Rows(), m.Cols()
	sums := make([]float64, c)

	if d, ok := m.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c
			for j := 0; j < c; j++ {
				sums[j] += d.data[base+j]
			}
		}

		return sums, nil
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opColSums, err)
			}
			sums[j] += v
		}
	}

	return sums, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything; +Inf equals +Inf; -Inf equals -Inf.
// Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances → ErrNaNInf.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	r, c := a.Rows(), a.Cols()
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := 0; idx < r*c; idx++ {
				if !closeTo(da.data[idx], db.data[idx], rtol, atol) {
					return false, nil // early-exit on first violation
				}
			}

			return true, nil
		}
	}

	var av, bv float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			av, _ = a.At(i, j) // shape already validated
			bv, _ = b.At(i, j)
			if !closeTo(av, bv, rtol, atol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// closeTo is the scalar relation used by AllClose.
func closeTo(a, b, rtol, atol float64) bool {
	if a == b { // covers equal infinities
		return true
	}

	return math.Abs(a-b) <= atol+rtol*math.Abs(b) // false for NaN
}
