// SPDX-License-Identifier: MIT
package fm_test

import (
	"math"
	"slices"
	"testing"

	"github.com/katalvlaran/fmsgd/fm"
	"github.com/katalvlaran/fmsgd/matrix"
	"github.com/katalvlaran/fmsgd/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const eqTol = 1e-9

func TestDefaultParams(t *testing.T) {
	p := fm.DefaultParams()
	assert.Equal(t, fm.Params{K: 10, LearningRate: 0.99, MR: 0.1, ML: 0.1}, p)
}

func TestUpdate_PureAndRepeatable(t *testing.T) {
	in := smallInputs(t)
	p := fm.Params{K: 2, LearningRate: 0.99, MR: 0.1, ML: 0.1}

	_, _, xv := in.X.Raw()
	xv0 := slices.Clone(xv)
	losses0 := slices.Clone(in.Losses)
	ct0 := slices.Clone(in.CrossTerms.RawData())
	v0 := slices.Clone(in.V.RawData())
	dv0 := slices.Clone(in.DeltaV.RawData())

	a := update(t, in, p)
	b := update(t, in, p)
	assert.Equal(t, bits(a.RawData()), bits(b.RawData()))

	assert.Equal(t, bits(xv0), bits(xv))
	assert.Equal(t, bits(losses0), bits(in.Losses))
	assert.Equal(t, bits(ct0), bits(in.CrossTerms.RawData()))
	assert.Equal(t, bits(v0), bits(in.V.RawData()))
	assert.Equal(t, bits(dv0), bits(in.DeltaV.RawData()))

	assert.NotSame(t, a, in.V)
	assert.NotSame(t, a, in.DeltaV)
}

func TestUpdate_ShapeIsAttributesByK(t *testing.T) {
	for _, rows := range []int{1, 7, 64} {
		in := randomInputs(t, rows, 12, 3, 0.3, int64(rows))
		out := update(t, in, fm.Params{LearningRate: 0.5, MR: 0.1, ML: 0.1})
		assert.Equal(t, 12, out.Rows(), "rows=%d", rows)
		assert.Equal(t, 3, out.Cols(), "rows=%d", rows)
	}
}

func TestUpdate_ZeroLossesClosedForm(t *testing.T) {
	in := randomInputs(t, 20, 8, 4, 0.4, 3)
	in.Losses = make([]float64, 20)
	p := fm.Params{K: 4, LearningRate: 0.99, MR: 0.1, ML: 0.1}

	terms, err := fm.ComputeTerms(in.X, in.Losses, in.CrossTerms)
	require.NoError(t, err)
	for _, v := range terms.XXL {
		assert.Zero(t, v)
	}
	for _, v := range terms.XVXL.RawData() {
		assert.Zero(t, v)
	}

	out := update(t, in, p)
	for i := 0; i < 8; i++ {
		for f := 0; f < 4; f++ {
			v, _ := in.V.At(i, f)
			dv, _ := in.DeltaV.At(i, f)
			vNew := v*(1-p.LearningRate*p.ML) - p.LearningRate*p.MR*dv
			got, _ := out.At(i, f)
			assert.InDelta(t, v-vNew, got, 1e-12, "[%d,%d]", i, f)
		}
	}
}

func TestComputeTerms_MatchesDensified(t *testing.T) {
	in := smallInputs(t)
	terms, err := fm.ComputeTerms(in.X, in.Losses, in.CrossTerms)
	require.NoError(t, err)

	xd, err := in.X.ToDense()
	require.NoError(t, err)
	n := float64(in.X.Rows())

	// xxl by hand: Σ_r X[r,i]² y[r] / n
	// col0: 1*0.5 + 16*2 = 32.5; col1: 9*-1 + 25*0.25 = -2.75; col2: 4*0.5 + 36*0.25 = 11
	assert.InDeltaSlice(t, []float64{32.5 / 4, -2.75 / 4, 11.0 / 4}, terms.XXL, eqTol)

	// xvxl via gonum on the densified design matrix.
	xLoss, err := matrix.ScaleRows(xd, in.Losses, n)
	require.NoError(t, err)
	gl := matrix.ToGonum(xLoss.(*matrix.Dense))
	var want mat.Dense
	want.Mul(gl.T(), matrix.ToGonum(in.CrossTerms))
	assert.True(t, mat.EqualApprox(&want, matrix.ToGonum(terms.XVXL), eqTol))
}

func TestUpdate_MatchesDenseOracle(t *testing.T) {
	in := randomInputs(t, 40, 25, 5, 0.2, 11)
	p := fm.Params{K: 5, LearningRate: 0.99, MR: 0.1, ML: 0.1}

	got := update(t, in, p)
	want := denseOracle(t, in, p)
	ok, err := matrix.AllClose(got, want, 0, eqTol)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdate_SerialParallelBitIdentical(t *testing.T) {
	in := randomInputs(t, 200, 300, 10, 0.05, 21)
	p := fm.DefaultParams()

	serial := update(t, in, p, sparse.WithWorkers(1))
	parallel := update(t, in, p, sparse.WithWorkers(8), sparse.WithMinChunk(1))
	assert.Equal(t, bits(serial.RawData()), bits(parallel.RawData()))
}

func TestUpdate_KZeroMeansAllColumns(t *testing.T) {
	in := smallInputs(t)
	a := update(t, in, fm.Params{K: 0, LearningRate: 0.5, MR: 0.2, ML: 0.3})
	b := update(t, in, fm.Params{K: 2, LearningRate: 0.5, MR: 0.2, ML: 0.3})
	assert.Equal(t, bits(a.RawData()), bits(b.RawData()))
}

func TestUpdate_NaNPropagates(t *testing.T) {
	in := smallInputs(t)
	v := in.V.Clone().(*matrix.Dense)
	require.NoError(t, v.Set(0, 0, math.NaN()))
	in.V = v

	out := update(t, in, fm.Params{K: 2, LearningRate: 0.99, MR: 0.1, ML: 0.1})
	got, err := out.At(0, 0)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestUpdate_Rejects(t *testing.T) {
	base := smallInputs(t)
	p := fm.Params{K: 2, LearningRate: 0.99, MR: 0.1, ML: 0.1}

	cases := []struct {
		name   string
		mutate func(in *fm.Inputs, p *fm.Params)
		want   error
	}{
		{"nil X", func(in *fm.Inputs, _ *fm.Params) { in.X = nil }, fm.ErrNilOperand},
		{"nil V", func(in *fm.Inputs, _ *fm.Params) { in.V = nil }, fm.ErrNilOperand},
		{"V rows", func(in *fm.Inputs, _ *fm.Params) { in.V = dense(t, 4, 2, make([]float64, 8)...) }, fm.ErrDimensionMismatch},
		{"cross term rows", func(in *fm.Inputs, _ *fm.Params) { in.CrossTerms = dense(t, 3, 2, make([]float64, 6)...) }, fm.ErrDimensionMismatch},
		{"cross term cols", func(in *fm.Inputs, _ *fm.Params) { in.CrossTerms = dense(t, 4, 3, make([]float64, 12)...) }, fm.ErrDimensionMismatch},
		{"deltaV shape", func(in *fm.Inputs, _ *fm.Params) { in.DeltaV = dense(t, 3, 3, make([]float64, 9)...) }, fm.ErrDimensionMismatch},
		{"losses length", func(in *fm.Inputs, _ *fm.Params) { in.Losses = in.Losses[:3] }, fm.ErrDimensionMismatch},
		{"k", func(_ *fm.Inputs, p *fm.Params) { p.K = 10 }, fm.ErrDimensionMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, pp := base, p
			tc.mutate(&in, &pp)
			out, err := fm.Update(in.X, in.Losses, in.CrossTerms, in.V, in.DeltaV, pp)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, out)
		})
	}

	// sparse and matrix share the sentinel
	_, err := fm.Update(base.X, base.Losses, base.CrossTerms, dense(t, 5, 2, make([]float64, 10)...), base.DeltaV, p)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, err, sparse.ErrDimensionMismatch)
}

func TestComputeTerms_Rejects(t *testing.T) {
	in := smallInputs(t)
	_, err := fm.ComputeTerms(nil, in.Losses, in.CrossTerms)
	require.ErrorIs(t, err, fm.ErrNilOperand)
	_, err = fm.ComputeTerms(in.X, in.Losses[:1], in.CrossTerms)
	require.ErrorIs(t, err, fm.ErrDimensionMismatch)
}
