// SPDX-License-Identifier: MIT
package sparse_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/fmsgd/matrix"
	"github.com/katalvlaran/fmsgd/sparse"
	"github.com/stretchr/testify/require"
)

// fixture3x3 is the small matrix
//
//	[1 0 3]
//	[2 0 0]
//	[0 0 4]
//
// given as unsorted triplets.
func fixture3x3(t testing.TB) *sparse.CSR {
	t.Helper()
	m, err := sparse.FromTriplets(3, 3,
		[]int{0, 0, 1, 2},
		[]int{0, 2, 0, 2},
		[]float64{1, 3, 2, 4})
	require.NoError(t, err)

	return m
}

// randomCSR builds a rows×cols matrix whose cells are stored with the given
// density, filled with normal values from a fixed seed.
func randomCSR(t testing.TB, rows, cols int, density float64, seed int64) *sparse.CSR {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var ri, ci []int
	var v []float64
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Float64() < density {
				ri = append(ri, r)
				ci = append(ci, c)
				v = append(v, rng.NormFloat64())
			}
		}
	}
	m, err := sparse.FromTriplets(rows, cols, ri, ci, v)
	require.NoError(t, err)

	return m
}

// randomDense builds an r×c *matrix.Dense with uniform values in [-1, 1).
func randomDense(t testing.TB, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, r*c)
	for i := range vals {
		vals[i] = rng.Float64()*2 - 1
	}
	d, err := matrix.FromFlat(vals, r, c)
	require.NoError(t, err)

	return d
}

// randomVec returns n uniform values in [-1, 1).
func randomVec(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}

	return out
}

// bits maps values to their IEEE-754 patterns for exact comparisons.
func bits(v []float64) []uint64 {
	out := make([]uint64, len(v))
	for i, x := range v {
		out[i] = math.Float64bits(x)
	}

	return out
}

// toDense materializes m or fails the test.
func toDense(t testing.TB, m *sparse.CSR) *matrix.Dense {
	t.Helper()
	d, err := m.ToDense()
	require.NoError(t, err)

	return d
}
