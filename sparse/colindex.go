// SPDX-License-Identifier: MIT

package sparse

import "sync"

// columnIndex is a CSC view of a CSR structure expressed as a permutation:
// column j owns slots [colptr[j], colptr[j+1]); for each slot s, rowOf[s] is
// the sample row and pos[s] is the offset into the CSR values array.
// Slots inside a column are ordered by ascending row, which is the order
// column reductions accumulate in.
//
// The index depends only on (indptr, indices), so every CSR that shares a
// structure also shares one columnIndex.
type columnIndex struct {
	once   sync.Once
	colptr []int
	rowOf  []int
	pos    []int
}

// columns returns the column index of m, building it on first use.
// Safe for concurrent callers.
// Complexity: O(rows + cols + nnz) once, O(1) afterwards.
func (m *CSR) columns() *columnIndex {
	ci := m.cidx
	ci.once.Do(func() {
		nnz := len(m.indices)
		colptr := make([]int, m.cols+1)
		for _, c := range m.indices {
			colptr[c+1]++
		}
		for j := 0; j < m.cols; j++ {
			colptr[j+1] += colptr[j]
		}

		next := make([]int, m.cols)
		copy(next, colptr[:m.cols])
		rowOf := make([]int, nnz)
		pos := make([]int, nnz)
		// Rows are scanned in ascending order, so each column fills by row.
		for r := 0; r < m.rows; r++ {
			for p := m.indptr[r]; p < m.indptr[r+1]; p++ {
				s := next[m.indices[p]]
				rowOf[s] = r
				pos[s] = p
				next[m.indices[p]]++
			}
		}

		ci.colptr, ci.rowOf, ci.pos = colptr, rowOf, pos
	})

	return ci
}
