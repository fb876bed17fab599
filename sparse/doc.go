// Package sparse implements a compressed sparse row (CSR) design matrix.
//
// CSR stores a samples × attributes matrix as three parallel arrays:
// row pointers (indptr), column indices and values. Only stored entries are
// ever visited, so every kernel runs in O(nnz) rather than O(rows*cols):
//
//   - ScaleRows: X ⊙ s (every entry of row r scaled by s[r]/denom).
//   - SquareScaleColSums: Σ_r X[r,i]² · s[r] / denom for every column i.
//   - TMulDense: Xᵀ·D against a dense samples × k matrix.
//   - MulDense: X·D against a dense attributes × k matrix.
//
// A CSR is immutable once built. Kernels return new values and may share
// the (read-only) structure with their receiver.
//
// # Determinism
//
// Every output cell accumulates its contributions in ascending sample-row
// order. Column reductions read a column index built once per structure, so
// splitting work across goroutines by attribute range produces the same bits
// as a single-threaded scan, for any worker count (see WithWorkers).
//
// CSR also implements gonum's mat.Matrix, so gonum routines can read it
// directly.
package sparse
