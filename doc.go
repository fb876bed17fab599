// Package fmsgd computes one latent-factor update step of a sparse
// factorization machine without ever densifying the design matrix.
//
// The module is organized under these packages:
//
//	matrix/          - row-major Dense matrices, the flat-array loader and
//	                   pure dense kernels (Sub, Mul, Transpose, ScaleRows, ...)
//	sparse/          - the immutable CSR design matrix and its nonzero-only
//	                   kernels (ScaleRows, SquareScaleColSums, TMulDense, MulDense)
//	fm/              - Update (the sgd step for V) and CheckDeterminism
//	dataset/         - flat JSON, COO JSON and zip loaders plus the reference problem
//	internal/logger/ - slog-backed logger carried in context.Context
//	cmd/fmsgd/       - command-line runner that prints a JSON report
//
// Quick example:
//
//	x, _ := sparse.FromTriplets(rows, cols, ri, ci, vals)
//	out, err := fm.Update(x, losses, crossTerms, v, deltaV, fm.DefaultParams())
//
// Every kernel is deterministic: the same inputs give the same bits, for any
// number of worker goroutines.
package fmsgd
