// SPDX-License-Identifier: MIT

// Package sparse - nonzero-only kernels over a CSR design matrix.
//
// Purpose:
//   - Row scaling, squared column reductions and products with dense
//     samples × k / attributes × k matrices.
//   - Visit stored entries only; never materialize the dense form.
//
// Determinism & Performance:
//   - Each output cell sums its terms in ascending sample-row order
//     (MulDense: ascending attribute order within the row).
//   - Row kernels split by row range, column kernels by attribute range,
//     so no two goroutines ever write the same cell.

package sparse

import (
	"fmt"

	"github.com/katalvlaran/fmsgd/matrix"
)

const (
	opScaleRows          = "ScaleRows"
	opSquareScaleColSums = "SquareScaleColSums"
	opTMulDense          = "TMulDense"
	opMulDense           = "MulDense"
)

// ScaleRows returns X ⊙ s with every stored entry of row r replaced by
// value*scale[r]/denom. The result shares m's structure and column index.
// Implementation:
//   - Stage 1: require len(scale) == Rows().
//   - Stage 2: scale values row range by row range into a fresh slice.
//
// Behavior highlights:
//   - denom == 0 and NaN/Inf inputs follow IEEE arithmetic; nothing is sanitized.
//
// Errors:
//   - ErrNilMatrix (nil scale), ErrDimensionMismatch.
//
// Complexity:
//   - Time O(nnz), Space O(nnz).
func (m *CSR) ScaleRows(scale []float64, denom float64, opts ...Option) (*CSR, error) {
	if err := matrix.ValidateVecLen(scale, m.rows); err != nil {
		return nil, fmt.Errorf("%s: %w", opScaleRows, err)
	}
	o := gatherOptions(opts...)

	out := make([]float64, len(m.values))
	forRanges(m.rows, o, func(lo, hi int) {
		var p int
		var sf float64
		for r := lo; r < hi; r++ {
			sf = scale[r]
			for p = m.indptr[r]; p < m.indptr[r+1]; p++ {
				out[p] = m.values[p] * sf / denom
			}
		}
	})

	return m.withValues(out), nil
}

// SquareScaleColSums returns out[i] = Σ_r X[r,i]² · scale[r] / denom.
// Implementation:
//   - Stage 1: require len(scale) == Rows(); fetch the column index.
//   - Stage 2: per attribute, accumulate v*v*scale[r] over its stored
//     entries in ascending row order, then divide once by denom.
//
// Errors:
//   - ErrDimensionMismatch.
//
// Complexity:
//   - Time O(nnz + cols), Space O(cols).
func (m *CSR) SquareScaleColSums(scale []float64, denom float64, opts ...Option) ([]float64, error) {
	if err := matrix.ValidateVecLen(scale, m.rows); err != nil {
		return nil, fmt.Errorf("%s: %w", opSquareScaleColSums, err)
	}
	o := gatherOptions(opts...)
	ci := m.columns()

	out := make([]float64, m.cols)
	forRanges(m.cols, o, func(lo, hi int) {
		var s int
		var v, acc float64
		for j := lo; j < hi; j++ {
			acc = 0
			for s = ci.colptr[j]; s < ci.colptr[j+1]; s++ {
				v = m.values[ci.pos[s]]
				acc += v * v * scale[ci.rowOf[s]]
			}
			out[j] = acc / denom
		}
	})

	return out, nil
}

// TMulDense computes Xᵀ·D for a dense samples × k matrix D.
// Implementation:
//   - Stage 1: validate D non-nil and D.Rows() == Rows().
//   - Stage 2: per attribute j, walk its stored entries (ascending row) and
//     add value*D[row, f] into out[j, f] for every f.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(nnz*k), Space O(cols*k).
func (m *CSR) TMulDense(d *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	if err := matrix.ValidateRows(d, m.rows); err != nil {
		return nil, fmt.Errorf("%s: %w", opTMulDense, err)
	}
	o := gatherOptions(opts...)
	ci := m.columns()
	k := d.Cols()
	src := d.RawData()

	out := make([]float64, m.cols*k)
	forRanges(m.cols, o, func(lo, hi int) {
		var s, f, base, rowBase int
		var v float64
		for j := lo; j < hi; j++ {
			base = j * k
			for s = ci.colptr[j]; s < ci.colptr[j+1]; s++ {
				v = m.values[ci.pos[s]]
				rowBase = ci.rowOf[s] * k
				for f = 0; f < k; f++ {
					out[base+f] += v * src[rowBase+f]
				}
			}
		}
	})

	res, err := matrix.NewDenseFromData(m.cols, k, out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opTMulDense, err)
	}

	return res, nil
}

// MulDense computes X·D for a dense attributes × k matrix D.
// Each row of the result sums its terms in ascending attribute order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(nnz*k), Space O(rows*k).
func (m *CSR) MulDense(d *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	if err := matrix.ValidateRows(d, m.cols); err != nil {
		return nil, fmt.Errorf("%s: %w", opMulDense, err)
	}
	o := gatherOptions(opts...)
	k := d.Cols()
	src := d.RawData()

	out := make([]float64, m.rows*k)
	forRanges(m.rows, o, func(lo, hi int) {
		var p, f, base, colBase int
		var v float64
		for r := lo; r < hi; r++ {
			base = r * k
			for p = m.indptr[r]; p < m.indptr[r+1]; p++ {
				v = m.values[p]
				colBase = m.indices[p] * k
				for f = 0; f < k; f++ {
					out[base+f] += v * src[colBase+f]
				}
			}
		}
	})

	res, err := matrix.NewDenseFromData(m.rows, k, out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opMulDense, err)
	}

	return res, nil
}
