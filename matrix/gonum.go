// SPDX-License-Identifier: MIT
// Package matrix: gonum interop.
//
// Purpose:
//   - Move dense data between this package and gonum.org/v1/gonum/mat so
//     callers can reach gonum's factorizations and tests can use gonum as an
//     independent numeric oracle.
//
// Notes:
//   - Both directions copy; neither side aliases the other's storage.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ToGonum copies m into a new *mat.Dense with the same shape.
// Complexity: O(r*c).
func ToGonum(m *Dense) *mat.Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return mat.NewDense(m.r, m.c, cp) // gonum adopts cp (row-major, stride == cols)
}

// FromGonum copies any gonum matrix into a new *Dense.
// Zero-sized gonum matrices are rejected with ErrInvalidDimensions.
// Complexity: O(r*c).
func FromGonum(g mat.Matrix) (*Dense, error) {
	if g == nil {
		return nil, matrixErrorf("FromGonum", ErrNilMatrix)
	}
	r, c := g.Dims()
	res, err := NewDense(r, c)
	if err != nil {
		return nil, fmt.Errorf("FromGonum(%d,%d): %w", r, c, err)
	}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			res.data[i*c+j] = g.At(i, j)
		}
	}

	return res, nil
}
