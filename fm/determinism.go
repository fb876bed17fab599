// SPDX-License-Identifier: MIT

package fm

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/katalvlaran/fmsgd/matrix"
	"github.com/katalvlaran/fmsgd/sparse"
)

const opCheck = "CheckDeterminism"

// Inputs bundles the operands of one Update call.
type Inputs struct {
	X          *sparse.CSR
	Losses     []float64
	CrossTerms *matrix.Dense
	V          *matrix.Dense
	DeltaV     *matrix.Dense
}

// Report describes one determinism check.
type Report struct {
	Row         int     `json:"row"`
	Col         int     `json:"col"`
	First       float64 `json:"first"`
	Second      float64 `json:"second"`
	RelTol      float64 `json:"rel_tol"`
	Expected    float64 `json:"expected,omitempty"`
	HasExpected bool    `json:"has_expected"`
	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	Passed      bool    `json:"passed"`
}

// snapshot stores the bit patterns of every input Update reads.
type snapshot struct {
	indptr, indices []int
	values          []uint64
	losses          []uint64
	crossTerms      []uint64
	v, deltaV       []uint64
}

func takeSnapshot(in Inputs) snapshot {
	indptr, indices, values := in.X.Raw()

	return snapshot{
		indptr:     slices.Clone(indptr),
		indices:    slices.Clone(indices),
		values:     floatBits(values),
		losses:     floatBits(in.Losses),
		crossTerms: floatBits(in.CrossTerms.RawData()),
		v:          floatBits(in.V.RawData()),
		deltaV:     floatBits(in.DeltaV.RawData()),
	}
}

// diff names the first input whose bits differ from s, or "".
func (s snapshot) diff(in Inputs) string {
	indptr, indices, values := in.X.Raw()
	switch {
	case !slices.Equal(s.indptr, indptr), !slices.Equal(s.indices, indices):
		return "X structure"
	case !slices.Equal(s.values, floatBits(values)):
		return "X values"
	case !slices.Equal(s.losses, floatBits(in.Losses)):
		return "losses"
	case !slices.Equal(s.crossTerms, floatBits(in.CrossTerms.RawData())):
		return "cross terms"
	case !slices.Equal(s.v, floatBits(in.V.RawData())):
		return "V"
	case !slices.Equal(s.deltaV, floatBits(in.DeltaV.RawData())):
		return "deltaV"
	}

	return ""
}

func floatBits(v []float64) []uint64 {
	out := make([]uint64, len(v))
	for i, x := range v {
		out[i] = math.Float64bits(x)
	}

	return out
}

// CheckDeterminism calls Update twice on the same inputs and verifies purity.
// Implementation:
//   - Stage 1: snapshot the bit patterns of every input.
//   - Stage 2: run Update twice; any Update error is returned as is.
//   - Stage 3: compare the selected element of both outputs with
//     scalar.EqualWithinRel, and against WithExpected when set.
//   - Stage 4: re-read every input and compare with the snapshot.
//
// Behavior highlights:
//   - On ErrIntegrityViolation the filled Report is returned with the error.
//   - NaN never compares equal, so a NaN element fails the check.
//
// Errors:
//   - ErrNilOperand, ErrDimensionMismatch (from Update).
//   - matrix.ErrOutOfRange: the selected element is outside the output.
//   - ErrIntegrityViolation: outputs disagree, differ from the expected
//     value, or an input changed.
//
// Complexity:
//   - Two Update calls plus O(nnz + samples·k + attributes·k) snapshot work.
func CheckDeterminism(in Inputs, p Params, opts ...CheckOption) (*Report, error) {
	if in.X == nil || in.CrossTerms == nil || in.V == nil || in.DeltaV == nil {
		return nil, fmt.Errorf("%s: %w", opCheck, ErrNilOperand)
	}
	cfg := gatherCheckOptions(opts...)
	before := takeSnapshot(in)

	first, err := Update(in.X, in.Losses, in.CrossTerms, in.V, in.DeltaV, p, cfg.sparseOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: first run: %w", opCheck, err)
	}
	second, err := Update(in.X, in.Losses, in.CrossTerms, in.V, in.DeltaV, p, cfg.sparseOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: second run: %w", opCheck, err)
	}

	a, err := first.At(cfg.row, cfg.col)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCheck, err)
	}
	b, _ := second.At(cfg.row, cfg.col) // same shape as first

	rep := &Report{
		Row:         cfg.row,
		Col:         cfg.col,
		First:       a,
		Second:      b,
		RelTol:      cfg.relTol,
		Expected:    cfg.expected,
		HasExpected: cfg.hasExpected,
		Rows:        first.Rows(),
		Cols:        first.Cols(),
	}

	if !scalar.EqualWithinRel(a, b, cfg.relTol) {
		return rep, fmt.Errorf("%s: runs disagree at [%d,%d]: %v vs %v: %w", opCheck, cfg.row, cfg.col, a, b, ErrIntegrityViolation)
	}
	if cfg.hasExpected && !scalar.EqualWithinRel(a, cfg.expected, cfg.relTol) {
		return rep, fmt.Errorf("%s: got %v at [%d,%d], want %v: %w", opCheck, a, cfg.row, cfg.col, cfg.expected, ErrIntegrityViolation)
	}
	if what := before.diff(in); what != "" {
		return rep, fmt.Errorf("%s: %s mutated: %w", opCheck, what, ErrIntegrityViolation)
	}
	rep.Passed = true

	return rep, nil
}
