// SPDX-License-Identifier: MIT

// Package fm: functional options for CheckDeterminism.
//
// Design goals:
//   - Defaults reproduce the reference check: element [0,0], 1e-3 relative.
//   - Panic only on nonsensical values (programmer error).
package fm

import (
	"math"

	"github.com/katalvlaran/fmsgd/sparse"
)

// DefaultRelTol is the relative tolerance used to compare run outputs.
const DefaultRelTol = 1e-3

const (
	panicElementNegative = "fm: WithElement: indices must be >= 0"
	panicRelTolInvalid   = "fm: WithRelTol: tolerance must be finite and >= 0"
)

// CheckOption configures CheckDeterminism.
type CheckOption func(*checkConfig)

type checkConfig struct {
	row, col    int
	relTol      float64
	expected    float64
	hasExpected bool
	sparseOpts  []sparse.Option
}

// WithElement selects the output element compared across runs.
// Panics when i or j is negative.
func WithElement(i, j int) CheckOption {
	if i < 0 || j < 0 {
		panic(panicElementNegative)
	}

	return func(c *checkConfig) { c.row, c.col = i, j }
}

// WithRelTol sets the relative comparison tolerance.
// Panics on negative, NaN or infinite tol.
func WithRelTol(tol float64) CheckOption {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicRelTolInvalid)
	}

	return func(c *checkConfig) { c.relTol = tol }
}

// WithExpected also requires the first run's element to match v within the
// relative tolerance.
func WithExpected(v float64) CheckOption {
	return func(c *checkConfig) { c.expected, c.hasExpected = v, true }
}

// WithSparseOptions forwards kernel options to both Update calls.
func WithSparseOptions(opts ...sparse.Option) CheckOption {
	return func(c *checkConfig) { c.sparseOpts = append(c.sparseOpts, opts...) }
}

func gatherCheckOptions(user ...CheckOption) checkConfig {
	c := checkConfig{relTol: DefaultRelTol}
	for _, set := range user {
		set(&c)
	}

	return c
}
