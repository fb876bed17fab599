// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/fmsgd/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleRows(t *testing.T) {
	x := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})

	out, err := matrix.ScaleRows(x, []float64{2, -1}, 2)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, -2, -2.5, -3}, Values(t, out))

	slow, err := matrix.ScaleRows(hide{x}, []float64{2, -1}, 2)
	require.NoError(t, err)
	require.Equal(t, Values(t, out), Values(t, slow))

	_, err = matrix.ScaleRows(x, []float64{1}, 1)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.ScaleRows(x, nil, 1)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestColSums(t *testing.T) {
	x := NewFilledDense(t, 3, 2, []float64{1, 10, 2, 20, 3, 30})

	s, err := matrix.ColSums(x)
	require.NoError(t, err)
	require.Equal(t, []float64{6, 60}, s)

	slow, err := matrix.ColSums(hide{x})
	require.NoError(t, err)
	require.Equal(t, s, slow)

	_, err = matrix.ColSums(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestAllClose(t *testing.T) {
	a := NewFilledDense(t, 1, 3, []float64{1, math.Inf(1), -2})
	b := NewFilledDense(t, 1, 3, []float64{1 + 1e-12, math.Inf(1), -2})

	ok, err := matrix.AllClose(a, b, 1e-9, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matrix.AllClose(hide{a}, b, 1e-9, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	c := NewFilledDense(t, 1, 3, []float64{1.1, math.Inf(1), -2})
	ok, err = matrix.AllClose(a, c, 1e-9, 1e-9)
	require.NoError(t, err)
	assert.False(t, ok)

	n := NewFilledDense(t, 1, 3, []float64{math.NaN(), math.Inf(1), -2})
	ok, err = matrix.AllClose(n, n, 1, 1)
	require.NoError(t, err)
	assert.False(t, ok, "NaN never compares close")

	_, err = matrix.AllClose(a, b, math.NaN(), 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	_, err = matrix.AllClose(a, MustDense(t, 3, 1), 0, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
