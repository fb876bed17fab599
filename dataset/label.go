// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"

	"github.com/katalvlaran/fmsgd/sparse"
)

const opSplitLabel = "SplitLabel"

// SplitLabel carves column label out of raw: x holds every other column in
// order (raw[:, :label] followed by raw[:, label+1:]) and y is the
// densified label column.
//
// Errors: sparse.ErrNilMatrix, sparse.ErrOutOfRange, and
// sparse.ErrInvalidDimensions when raw has a single column.
func SplitLabel(raw *sparse.CSR, label int) (x *sparse.CSR, y []float64, err error) {
	if raw == nil {
		return nil, nil, fmt.Errorf("%s: %w", opSplitLabel, sparse.ErrNilMatrix)
	}
	cols := raw.Cols()
	if label < 0 || label >= cols {
		return nil, nil, fmt.Errorf("%s: label %d of %d cols: %w", opSplitLabel, label, cols, sparse.ErrOutOfRange)
	}
	if cols == 1 {
		return nil, nil, fmt.Errorf("%s: no feature columns: %w", opSplitLabel, sparse.ErrInvalidDimensions)
	}

	if y, err = raw.ColumnDense(label); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opSplitLabel, err)
	}

	switch label {
	case 0:
		x, err = raw.SliceCols(1, cols)
	case cols - 1:
		x, err = raw.SliceCols(0, cols-1)
	default:
		var left, right *sparse.CSR
		if left, err = raw.SliceCols(0, label); err != nil {
			break
		}
		if right, err = raw.SliceCols(label+1, cols); err != nil {
			break
		}
		x, err = sparse.HStack(left, right)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opSplitLabel, err)
	}

	return x, y, nil
}
