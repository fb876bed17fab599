// SPDX-License-Identifier: MIT

package sparse

import "fmt"

const (
	opSliceCols   = "SliceCols"
	opHStack      = "HStack"
	opColumnDense = "ColumnDense"
)

// SliceCols returns the columns [c0, c1) as a new CSR with c1-c0 columns.
// Stored zeros are carried over.
//
// Errors: ErrOutOfRange (c0 < 0, c1 > Cols(), c0 >= c1).
// Complexity: O(rows + nnz).
func (m *CSR) SliceCols(c0, c1 int) (*CSR, error) {
	if c0 < 0 || c1 > m.cols || c0 >= c1 {
		return nil, fmt.Errorf("%s(%d,%d) of %d cols: %w", opSliceCols, c0, c1, m.cols, ErrOutOfRange)
	}

	indptr := make([]int, m.rows+1)
	var indices []int
	var values []float64
	for r := 0; r < m.rows; r++ {
		for p := m.indptr[r]; p < m.indptr[r+1]; p++ {
			if c := m.indices[p]; c >= c0 && c < c1 {
				indices = append(indices, c-c0)
				values = append(values, m.values[p])
			}
		}
		indptr[r+1] = len(indices)
	}

	return &CSR{
		rows:    m.rows,
		cols:    c1 - c0,
		indptr:  indptr,
		indices: indices,
		values:  values,
		cidx:    new(columnIndex),
	}, nil
}

// HStack concatenates a and b side by side: the result has a.Cols()+b.Cols()
// columns and row r holds a's entries followed by b's (shifted).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (row counts differ).
// Complexity: O(rows + nnz_a + nnz_b).
func HStack(a, b *CSR) (*CSR, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%s: %w", opHStack, ErrNilMatrix)
	}
	if a.rows != b.rows {
		return nil, fmt.Errorf("%s: rows %d vs %d: %w", opHStack, a.rows, b.rows, ErrDimensionMismatch)
	}

	nnz := len(a.values) + len(b.values)
	indptr := make([]int, a.rows+1)
	indices := make([]int, 0, nnz)
	values := make([]float64, 0, nnz)
	for r := 0; r < a.rows; r++ {
		lo, hi := a.indptr[r], a.indptr[r+1]
		indices = append(indices, a.indices[lo:hi]...)
		values = append(values, a.values[lo:hi]...)
		for p := b.indptr[r]; p < b.indptr[r+1]; p++ {
			indices = append(indices, b.indices[p]+a.cols)
			values = append(values, b.values[p])
		}
		indptr[r+1] = len(indices)
	}

	return &CSR{
		rows:    a.rows,
		cols:    a.cols + b.cols,
		indptr:  indptr,
		indices: indices,
		values:  values,
		cidx:    new(columnIndex),
	}, nil
}

// ColumnDense returns column j as a dense vector of length Rows().
//
// Errors: ErrOutOfRange.
// Complexity: O(rows * log nnz_row).
func (m *CSR) ColumnDense(j int) ([]float64, error) {
	if j < 0 || j >= m.cols {
		return nil, fmt.Errorf("%s(%d): %w", opColumnDense, j, ErrOutOfRange)
	}
	out := make([]float64, m.rows)
	for r := 0; r < m.rows; r++ {
		out[r] = m.lookup(r, j)
	}

	return out, nil
}
