// SPDX-License-Identifier: MIT

package fm

import (
	"errors"

	"github.com/katalvlaran/fmsgd/matrix"
)

var (
	// ErrIntegrityViolation reports a failed determinism or purity check:
	// two runs disagree, or an input changed during a run.
	ErrIntegrityViolation = errors.New("fm: integrity violation")

	// ErrNilOperand reports a nil design matrix or dense operand.
	ErrNilOperand = errors.New("fm: nil operand")

	// ErrDimensionMismatch is matrix.ErrDimensionMismatch.
	ErrDimensionMismatch = matrix.ErrDimensionMismatch
)
