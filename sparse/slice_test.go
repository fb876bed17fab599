// SPDX-License-Identifier: MIT
package sparse_test

import (
	"testing"

	"github.com/katalvlaran/fmsgd/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceCols(t *testing.T) {
	m := fixture3x3(t)

	s, err := m.SliceCols(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Rows())
	assert.Equal(t, 2, s.Cols())
	_, indices, values := s.Raw()
	assert.Equal(t, []int{0, 0}, indices)
	assert.Equal(t, []float64{1, 2}, values)

	tail, err := m.SliceCols(2, 3)
	require.NoError(t, err)
	_, indices, values = tail.Raw()
	assert.Equal(t, []int{0, 0}, indices)
	assert.Equal(t, []float64{3, 4}, values)

	for _, r := range [][2]int{{-1, 2}, {0, 4}, {2, 2}, {3, 1}} {
		_, err = m.SliceCols(r[0], r[1])
		require.ErrorIs(t, err, sparse.ErrOutOfRange, "%v", r)
	}
}

func TestHStack(t *testing.T) {
	m := fixture3x3(t)

	h, err := sparse.HStack(m, m)
	require.NoError(t, err)
	assert.Equal(t, 3, h.Rows())
	assert.Equal(t, 6, h.Cols())
	indptr, indices, values := h.Raw()
	assert.Equal(t, []int{0, 4, 6, 8}, indptr)
	assert.Equal(t, []int{0, 2, 3, 5, 0, 3, 2, 5}, indices)
	assert.Equal(t, []float64{1, 3, 1, 3, 2, 2, 4, 4}, values)

	other := randomCSR(t, 2, 3, 0.5, 1)
	_, err = sparse.HStack(m, other)
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
	_, err = sparse.HStack(nil, m)
	require.ErrorIs(t, err, sparse.ErrNilMatrix)
}

func TestSliceThenStack_RemovesColumn(t *testing.T) {
	m := randomCSR(t, 20, 9, 0.4, 7)

	left, err := m.SliceCols(0, 4)
	require.NoError(t, err)
	right, err := m.SliceCols(5, 9)
	require.NoError(t, err)
	x, err := sparse.HStack(left, right)
	require.NoError(t, err)
	require.Equal(t, 8, x.Cols())

	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < x.Cols(); c++ {
			src := c
			if c >= 4 {
				src = c + 1
			}
			assert.Equal(t, m.At(r, src), x.At(r, c))
		}
	}
}

func TestColumnDense(t *testing.T) {
	m := fixture3x3(t)

	col, err := m.ColumnDense(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 0}, col)

	col, err = m.ColumnDense(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, col)

	_, err = m.ColumnDense(3)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
}
