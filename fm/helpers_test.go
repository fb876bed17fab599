// SPDX-License-Identifier: MIT
package fm_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/fmsgd/fm"
	"github.com/katalvlaran/fmsgd/matrix"
	"github.com/katalvlaran/fmsgd/sparse"
	"github.com/stretchr/testify/require"
)

// smallInputs is a 4 samples × 3 attributes problem with k=2 where every
// row stores at least one entry:
//
//	[1 0 2]
//	[0 3 0]
//	[4 0 0]
//	[0 5 6]
func smallInputs(t testing.TB) fm.Inputs {
	t.Helper()
	x, err := sparse.New(4, 3,
		[]int{0, 2, 3, 4, 6},
		[]int{0, 2, 1, 0, 1, 2},
		[]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	return fm.Inputs{
		X:          x,
		Losses:     []float64{0.5, -1, 2, 0.25},
		CrossTerms: dense(t, 4, 2, 0.1, -0.2, 0.3, 0.4, -0.5, 0.6, 0.7, -0.8),
		V:          dense(t, 3, 2, 0.01, 0.02, -0.03, 0.04, 0.05, -0.06),
		DeltaV:     dense(t, 3, 2, 0.001, -0.002, 0.003, 0.004, -0.005, 0.006),
	}
}

// randomInputs builds a rows × cols problem with k factors and the given
// density from a fixed seed.
func randomInputs(t testing.TB, rows, cols, k int, density float64, seed int64) fm.Inputs {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var ri, ci []int
	var v []float64
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Float64() < density {
				ri = append(ri, r)
				ci = append(ci, c)
				v = append(v, float64(rng.Intn(3)+1))
			}
		}
	}
	x, err := sparse.FromTriplets(rows, cols, ri, ci, v)
	require.NoError(t, err)

	uniform := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = rng.Float64()*2 - 1
		}
		return out
	}

	return fm.Inputs{
		X:          x,
		Losses:     uniform(rows),
		CrossTerms: dense(t, rows, k, uniform(rows*k)...),
		V:          dense(t, cols, k, uniform(cols*k)...),
		DeltaV:     dense(t, cols, k, uniform(cols*k)...),
	}
}

// dense builds an r×c *matrix.Dense from row-major values.
func dense(t testing.TB, r, c int, vals ...float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.FromFlat(vals, r, c)
	require.NoError(t, err)

	return d
}

func update(t testing.TB, in fm.Inputs, p fm.Params, opts ...sparse.Option) *matrix.Dense {
	t.Helper()
	out, err := fm.Update(in.X, in.Losses, in.CrossTerms, in.V, in.DeltaV, p, opts...)
	require.NoError(t, err)

	return out
}

func bits(v []float64) []uint64 {
	out := make([]uint64, len(v))
	for i, x := range v {
		out[i] = math.Float64bits(x)
	}

	return out
}

// denseOracle recomputes the full step on a densified X using the matrix
// kernels only.
func denseOracle(t testing.TB, in fm.Inputs, p fm.Params) *matrix.Dense {
	t.Helper()
	xd, err := in.X.ToDense()
	require.NoError(t, err)
	n := float64(in.X.Rows())

	xLoss, err := matrix.ScaleRows(xd, in.Losses, n)
	require.NoError(t, err)
	xlT, err := matrix.Transpose(xLoss)
	require.NoError(t, err)
	xvxl, err := matrix.Mul(xlT, in.CrossTerms)
	require.NoError(t, err)

	sq, err := matrix.Hadamard(xd, xd)
	require.NoError(t, err)
	sqy, err := matrix.ScaleRows(sq, in.Losses, n)
	require.NoError(t, err)
	xxl, err := matrix.ColSums(sqy)
	require.NoError(t, err)

	attrs, k := in.V.Rows(), in.V.Cols()
	next := make([]float64, attrs*k)
	for i := 0; i < attrs; i++ {
		for f := 0; f < k; f++ {
			vv, _ := in.V.At(i, f)
			dv, _ := in.DeltaV.At(i, f)
			g, _ := xvxl.At(i, f)
			next[i*k+f] = vv - p.LearningRate*((g-xxl[i]*vv)+p.MR*dv+p.ML*vv)
		}
	}
	vNew, err := matrix.NewDenseFromData(attrs, k, next)
	require.NoError(t, err)
	out, err := matrix.Sub(in.V, vNew)
	require.NoError(t, err)

	return out.(*matrix.Dense)
}
