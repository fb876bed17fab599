// SPDX-License-Identifier: MIT

// Package fm - the sgd step for the latent factor matrix V.
//
// Purpose:
//   - Compute the data terms (xxl, xvxl) from the sparse design matrix.
//   - Apply the regularized momentum step and return V_old − V_new.
//
// Determinism & Performance:
//   - Data terms cost O(nnz·k); the dense step costs O(attributes·k).
//   - All inputs are read-only; every result is freshly allocated.

package fm

import (
	"fmt"

	"github.com/katalvlaran/fmsgd/matrix"
	"github.com/katalvlaran/fmsgd/sparse"
)

const (
	opUpdate       = "Update"
	opComputeTerms = "ComputeTerms"
)

// Terms are the data-dependent parts of one step.
//   - XXL[i] = Σ_r X[r,i]² · y[r] / n (length attributes).
//   - XVXL = (X ⊙ y / n)ᵀ · cross_terms (attributes × k).
type Terms struct {
	XXL  []float64
	XVXL *matrix.Dense
}

// ComputeTerms runs steps one to three of the update: row scaling, the
// squared column reduction and the transposed product with the cross terms.
// Implementation:
//   - Stage 1: validate operands (nil, crossTerms.Rows, len(losses)).
//   - Stage 2: x_loss = x.ScaleRows(losses, n).
//   - Stage 3: xxl = x.SquareScaleColSums(losses, n).
//   - Stage 4: xvxl = x_loss.TMulDense(crossTerms).
//
// Errors:
//   - ErrNilOperand, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(nnz·k), Space O(nnz + attributes·k).
func ComputeTerms(x *sparse.CSR, losses []float64, crossTerms *matrix.Dense, opts ...sparse.Option) (Terms, error) {
	if x == nil || crossTerms == nil {
		return Terms{}, fmt.Errorf("%s: %w", opComputeTerms, ErrNilOperand)
	}
	if err := validateTerms(x, losses, crossTerms); err != nil {
		return Terms{}, fmt.Errorf("%s: %w", opComputeTerms, err)
	}

	return computeTerms(x, losses, crossTerms, opts)
}

// computeTerms assumes validated operands.
func computeTerms(x *sparse.CSR, losses []float64, crossTerms *matrix.Dense, opts []sparse.Option) (Terms, error) {
	n := float64(x.Rows())

	xLoss, err := x.ScaleRows(losses, n, opts...)
	if err != nil {
		return Terms{}, err
	}
	xxl, err := x.SquareScaleColSums(losses, n, opts...)
	if err != nil {
		return Terms{}, err
	}
	xvxl, err := xLoss.TMulDense(crossTerms, opts...)
	if err != nil {
		return Terms{}, err
	}

	return Terms{XXL: xxl, XVXL: xvxl}, nil
}

// validateTerms checks the shapes the data terms depend on.
func validateTerms(x *sparse.CSR, losses []float64, crossTerms *matrix.Dense) error {
	if crossTerms.Rows() != x.Rows() {
		return fmt.Errorf("cross terms have %d rows, X has %d: %w", crossTerms.Rows(), x.Rows(), ErrDimensionMismatch)
	}
	if len(losses) != x.Rows() {
		return fmt.Errorf("%d losses for %d samples: %w", len(losses), x.Rows(), ErrDimensionMismatch)
	}

	return nil
}

// Update returns the new momentum ΔV_out = V − V_new for one step, where
//
//	V_new[i,f] = V[i,f] − lr·((xvxl[i,f] − xxl[i]·V[i,f]) + m_r·ΔV[i,f] + m_l·V[i,f]).
//
// Implementation:
//   - Stage 1: validate every operand shape before allocating anything.
//   - Stage 2: ComputeTerms (sparse, O(nnz·k)).
//   - Stage 3: dense step over f∈[0,k), i∈[0,attributes) into a fresh V_new.
//   - Stage 4: matrix.Sub(V, V_new).
//
// Behavior highlights:
//   - The result is attributes × k regardless of the sample count.
//   - NaN/±Inf inputs propagate; nothing is sanitized.
//   - x, totalLosses, crossTerms, v and deltaV are never written.
//
// Errors:
//   - ErrNilOperand: any operand is nil.
//   - ErrDimensionMismatch: crossTerms.Rows != x.Rows, v.Rows != x.Cols,
//     deltaV shape != v shape, len(totalLosses) != x.Rows,
//     crossTerms.Cols != v.Cols, or p.K not in {0, v.Cols}.
//
// Complexity:
//   - Time O(nnz·k + attributes·k), Space O(nnz + attributes·k).
func Update(
	x *sparse.CSR,
	totalLosses []float64,
	crossTerms, v, deltaV *matrix.Dense,
	p Params,
	opts ...sparse.Option,
) (*matrix.Dense, error) {
	if x == nil || crossTerms == nil || v == nil || deltaV == nil {
		return nil, fmt.Errorf("%s: %w", opUpdate, ErrNilOperand)
	}
	if err := validateTerms(x, totalLosses, crossTerms); err != nil {
		return nil, fmt.Errorf("%s: %w", opUpdate, err)
	}
	if v.Rows() != x.Cols() {
		return nil, fmt.Errorf("%s: V has %d rows, X has %d attributes: %w", opUpdate, v.Rows(), x.Cols(), ErrDimensionMismatch)
	}
	if err := matrix.ValidateSameShape(v, deltaV); err != nil {
		return nil, fmt.Errorf("%s: deltaV: %w", opUpdate, err)
	}
	if crossTerms.Cols() != v.Cols() {
		return nil, fmt.Errorf("%s: cross terms have %d cols, V has %d: %w", opUpdate, crossTerms.Cols(), v.Cols(), ErrDimensionMismatch)
	}
	if p.K != 0 && p.K != v.Cols() {
		return nil, fmt.Errorf("%s: k=%d, V has %d cols: %w", opUpdate, p.K, v.Cols(), ErrDimensionMismatch)
	}

	terms, err := computeTerms(x, totalLosses, crossTerms, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opUpdate, err)
	}

	attrs, k := v.Rows(), v.Cols()
	vd, dvd, xv := v.RawData(), deltaV.RawData(), terms.XVXL.RawData()
	lr, mr, ml := p.LearningRate, p.MR, p.ML

	next := make([]float64, attrs*k)
	var i, f, idx int
	for f = 0; f < k; f++ {
		for i = 0; i < attrs; i++ {
			idx = i*k + f
			next[idx] = vd[idx] - lr*((xv[idx]-terms.XXL[i]*vd[idx])+mr*dvd[idx]+ml*vd[idx])
		}
	}
	vNew, err := matrix.NewDenseFromData(attrs, k, next)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opUpdate, err)
	}

	out, err := matrix.Sub(v, vNew)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opUpdate, err)
	}

	return out.(*matrix.Dense), nil
}
