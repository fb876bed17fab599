// Package matrix provides the dense side of the fmsgd numeric stack.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix stored in one flat slice
//     (offset = i*cols + j) with bounds-checked At/Set.
//   - FromFlat, the loader that reshapes a flat numeric sequence into a
//     Dense and rejects sequences whose length is not rows*cols.
//   - Pure kernels (Sub, Mul, Transpose, Hadamard, ScaleRows,
//     ColSums, AllClose) that never mutate their operands and always
//     return a freshly allocated result.
//   - Conversions to and from gonum's mat.Dense.
//
// All loops run in a fixed order, so repeated calls on the same inputs
// produce bit-identical results.
package matrix
