// Package fm implements one latent-factor update step of a sparse
// factorization machine.
//
// Given a sparse design matrix X (samples × attributes), per-sample losses
// y, the cross terms X·V1 (samples × k), the current factors V and the
// previous momentum ΔV (both attributes × k), Update computes
//
//	x_loss = X ⊙ y / n
//	xxl[i] = Σ_r X[r,i]² · y[r] / n
//	xvxl   = x_lossᵀ · cross_terms
//	Vnew   = V − lr·((xvxl − xxl ⊙ V) + m_r·ΔV + m_l·V)
//
// and returns V − Vnew, the momentum for the next step. Steps one to three
// visit stored entries of X only.
//
// Update never writes to its inputs and holds no state between calls.
// CheckDeterminism runs it twice on the same inputs and verifies that the
// outputs agree and that no input changed.
package fm
