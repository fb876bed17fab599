// SPDX-License-Identifier: MIT

package sparse

import "gonum.org/v1/gonum/mat"

// CSR satisfies gonum's read-only matrix interface.
var _ mat.Matrix = (*CSR)(nil)

// Dims returns (Rows(), Cols()).
func (m *CSR) Dims() (r, c int) { return m.rows, m.cols }

// At returns the value at (i, j) following gonum conventions: it panics
// with mat.ErrRowAccess / mat.ErrColAccess when out of range. Use Get for
// an error-returning accessor.
func (m *CSR) At(i, j int) float64 {
	if i < 0 || i >= m.rows {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= m.cols {
		panic(mat.ErrColAccess)
	}

	return m.lookup(i, j)
}

// T returns the implicit transpose, as gonum matrices do.
func (m *CSR) T() mat.Matrix { return mat.Transpose{Matrix: m} }
