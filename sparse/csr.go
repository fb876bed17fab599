// SPDX-License-Identifier: MIT

// Package sparse - CSR storage, constructors & read-only accessors.
//
// Purpose:
//   - Hold a samples × attributes matrix as (indptr, indices, values).
//   - Validate the layout once at construction so kernels can index blindly.
//   - Never expose a mutator: a CSR is immutable once built.
//
// Complexity quicksheet:
//   - New: O(rows + nnz); FromTriplets: O(nnz log nnz); At/Get: O(log nnz_row).

package sparse

import (
	"fmt"
	"slices"
	"sort"

	"github.com/katalvlaran/fmsgd/matrix"
)

const (
	opNew          = "New"
	opFromTriplets = "FromTriplets"
	opFromDense    = "FromDense"
	opGet          = "Get"
	opToDense      = "ToDense"
)

// CSR is an immutable compressed sparse row matrix.
//   - indptr has rows+1 entries; row r owns positions [indptr[r], indptr[r+1]).
//   - indices[p] is the column of the p-th stored entry, values[p] its value.
//   - cidx is the lazily built column index, shared by every CSR derived
//     from the same structure (see ScaleRows).
type CSR struct {
	rows, cols int
	indptr     []int
	indices    []int
	values     []float64
	cidx       *columnIndex
}

// New builds a CSR from its three arrays, copying all inputs.
// Implementation:
//   - Stage 1: validate rows>0 && cols>0.
//   - Stage 2: validate indptr (len rows+1, starts at 0, non-decreasing,
//     ends at len(indices)) and len(indices)==len(values).
//   - Stage 3: validate every column index in [0, cols) and strictly
//     increasing within its row.
//   - Stage 4: copy and return.
//
// Errors:
//   - ErrInvalidDimensions, ErrBadIndptr, ErrDimensionMismatch,
//     ErrColumnOutOfRange, ErrUnsortedRow.
//
// Complexity:
//   - Time O(rows + nnz), Space O(rows + nnz).
func New(rows, cols int, indptr, indices []int, values []float64) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s(%d,%d): %w", opNew, rows, cols, ErrInvalidDimensions)
	}
	if len(indices) != len(values) {
		return nil, fmt.Errorf("%s: %d indices vs %d values: %w", opNew, len(indices), len(values), ErrDimensionMismatch)
	}
	if err := validateIndptr(indptr, rows, len(indices)); err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	if err := validateRows(indptr, indices, cols); err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}

	return &CSR{
		rows:    rows,
		cols:    cols,
		indptr:  slices.Clone(indptr),
		indices: slices.Clone(indices),
		values:  slices.Clone(values),
		cidx:    new(columnIndex),
	}, nil
}

// validateIndptr checks the prefix-sum contract of the row pointers.
func validateIndptr(indptr []int, rows, nnz int) error {
	if len(indptr) != rows+1 {
		return fmt.Errorf("len %d, want %d: %w", len(indptr), rows+1, ErrBadIndptr)
	}
	if indptr[0] != 0 {
		return fmt.Errorf("indptr[0]=%d: %w", indptr[0], ErrBadIndptr)
	}
	for r := 0; r < rows; r++ {
		if indptr[r+1] < indptr[r] {
			return fmt.Errorf("indptr[%d]=%d < indptr[%d]=%d: %w", r+1, indptr[r+1], r, indptr[r], ErrBadIndptr)
		}
	}
	if indptr[rows] != nnz {
		return fmt.Errorf("indptr[%d]=%d, nnz %d: %w", rows, indptr[rows], nnz, ErrBadIndptr)
	}

	return nil
}

// validateRows checks column bounds and strict per-row ordering.
func validateRows(indptr, indices []int, cols int) error {
	var r, p, prev int
	for r = 0; r+1 < len(indptr); r++ {
		prev = -1
		for p = indptr[r]; p < indptr[r+1]; p++ {
			c := indices[p]
			if c < 0 || c >= cols {
				return fmt.Errorf("row %d col %d: %w", r, c, ErrColumnOutOfRange)
			}
			if c <= prev {
				return fmt.Errorf("row %d col %d after %d: %w", r, c, prev, ErrUnsortedRow)
			}
			prev = c
		}
	}

	return nil
}

// FromTriplets builds a CSR from coordinate (row, col, value) triplets given
// in any order.
// Implementation:
//   - Stage 1: validate shape, equal lengths and index bounds.
//   - Stage 2: stable sort of triplet positions by (row, col).
//   - Stage 3: emit entries, summing duplicates in their input order.
//
// Behavior highlights:
//   - Explicitly stored zeros are kept (they still count as nonzeros).
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch, ErrRowOutOfRange,
//     ErrColumnOutOfRange.
//
// Complexity:
//   - Time O(nnz log nnz), Space O(rows + nnz).
func FromTriplets(rows, cols int, ri, ci []int, v []float64) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s(%d,%d): %w", opFromTriplets, rows, cols, ErrInvalidDimensions)
	}
	if len(ri) != len(ci) || len(ci) != len(v) {
		return nil, fmt.Errorf("%s: lengths %d/%d/%d: %w", opFromTriplets, len(ri), len(ci), len(v), ErrDimensionMismatch)
	}
	for k := range ri {
		if ri[k] < 0 || ri[k] >= rows {
			return nil, fmt.Errorf("%s: triplet %d row %d: %w", opFromTriplets, k, ri[k], ErrRowOutOfRange)
		}
		if ci[k] < 0 || ci[k] >= cols {
			return nil, fmt.Errorf("%s: triplet %d col %d: %w", opFromTriplets, k, ci[k], ErrColumnOutOfRange)
		}
	}

	order := make([]int, len(ri))
	for k := range order {
		order[k] = k
	}
	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := order[a], order[b]
		if ri[ka] != ri[kb] {
			return ri[ka] < ri[kb]
		}
		return ci[ka] < ci[kb]
	})

	indptr := make([]int, rows+1)
	indices := make([]int, 0, len(order))
	values := make([]float64, 0, len(order))
	lastR, lastC := -1, -1
	for _, k := range order {
		if ri[k] == lastR && ci[k] == lastC {
			values[len(values)-1] += v[k] // duplicate: sum in input order
			continue
		}
		indices = append(indices, ci[k])
		values = append(values, v[k])
		indptr[ri[k]+1]++
		lastR, lastC = ri[k], ci[k]
	}
	for r := 0; r < rows; r++ {
		indptr[r+1] += indptr[r] // counts → prefix sums
	}

	return &CSR{
		rows:    rows,
		cols:    cols,
		indptr:  indptr,
		indices: indices,
		values:  values,
		cidx:    new(columnIndex),
	}, nil
}

// FromDense keeps every non-zero entry of m (NaN counts as non-zero).
// Complexity: O(rows*cols).
func FromDense(m matrix.Matrix) (*CSR, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opFromDense, err)
	}
	rows, cols := m.Rows(), m.Cols()
	indptr := make([]int, rows+1)
	var indices []int
	var values []float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", opFromDense, err)
			}
			if v != 0 {
				indices = append(indices, j)
				values = append(values, v)
			}
		}
		indptr[i+1] = len(indices)
	}

	return &CSR{rows: rows, cols: cols, indptr: indptr, indices: indices, values: values, cidx: new(columnIndex)}, nil
}

// Rows returns the number of rows (samples).
func (m *CSR) Rows() int { return m.rows }

// Cols returns the number of columns (attributes).
func (m *CSR) Cols() int { return m.cols }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.values) }

// Raw returns the backing arrays. They are shared, not copied:
// callers MUST treat them as read-only.
func (m *CSR) Raw() (indptr, indices []int, values []float64) {
	return m.indptr, m.indices, m.values
}

// Row returns the column indices and values stored in row i as shared,
// read-only subslices. Panics if i is out of range.
func (m *CSR) Row(i int) (cols []int, vals []float64) {
	lo, hi := m.indptr[i], m.indptr[i+1]

	return m.indices[lo:hi:hi], m.values[lo:hi:hi]
}

// Get returns the value at (i, j), zero when the entry is not stored.
// Errors: ErrOutOfRange.
// Complexity: O(log nnz_row).
func (m *CSR) Get(i, j int) (float64, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, fmt.Errorf("%s(%d,%d): %w", opGet, i, j, ErrOutOfRange)
	}

	return m.lookup(i, j), nil
}

// lookup binary-searches column j inside row i (indices are sorted).
func (m *CSR) lookup(i, j int) float64 {
	cols, vals := m.Row(i)
	if p, ok := slices.BinarySearch(cols, j); ok {
		return vals[p]
	}

	return 0
}

// ToDense materializes the matrix. Intended for tests and small fixtures.
// Complexity: O(rows*cols).
func (m *CSR) ToDense() (*matrix.Dense, error) {
	data := make([]float64, m.rows*m.cols)
	for r := 0; r < m.rows; r++ {
		for p := m.indptr[r]; p < m.indptr[r+1]; p++ {
			data[r*m.cols+m.indices[p]] = m.values[p]
		}
	}
	d, err := matrix.NewDenseFromData(m.rows, m.cols, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opToDense, err)
	}

	return d, nil
}

// withValues derives a CSR sharing m's structure (and column index) but
// carrying new values. len(values) must equal m.NNZ().
func (m *CSR) withValues(values []float64) *CSR {
	return &CSR{
		rows:    m.rows,
		cols:    m.cols,
		indptr:  m.indptr,
		indices: m.indices,
		values:  values,
		cidx:    m.cidx,
	}
}
