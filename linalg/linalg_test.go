// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package linalg_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linalg/interop"
	"github.com/born-ml/linalg/linalg"
	"github.com/born-ml/linalg/tensor"
)

var sample = []float64{
	2, -1, 0, 3,
	1, 4, -2, 0,
	0, 5, 1, -1,
	3, 0, 2, 6,
}

func TestDetAgainstGonum(t *testing.T) {
	eng := tensor.NewEngine()
	a, err := tensor.FromFlat(eng, sample, tensor.Shape{4, 4})
	require.NoError(t, err)

	det, err := linalg.Det(a, linalg.DefaultEpsilon)
	require.NoError(t, err)
	got, err := det.Value()
	require.NoError(t, err)

	want := mat.Det(mat.NewDense(4, 4, sample))
	assert.InDelta(t, want, got, 1e-9)
}

func TestSVDAgainstGonum(t *testing.T) {
	eng := tensor.NewEngine()
	a, err := tensor.FromFlat(eng, sample, tensor.Shape{4, 4})
	require.NoError(t, err)

	res, err := linalg.SVD(a, linalg.DefaultEpsilon)
	require.NoError(t, err)

	d, err := interop.ToDense(a)
	require.NoError(t, err)
	var ref mat.SVD
	require.True(t, ref.Factorize(d, mat.SVDThin))
	want := ref.Values(nil)

	got := res.S.Data()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "singular value %d", i)
	}
}

func TestBatchErrorThroughPublicAPI(t *testing.T) {
	eng := tensor.NewEngine()
	a, err := tensor.FromFlat(eng, []float64{1, 0, 0, 1, 0, 0, 0, 0}, tensor.Shape{2, 2, 2})
	require.NoError(t, err)

	inv, err := linalg.Inv(a, linalg.DefaultEpsilon)
	require.Error(t, err)
	require.ErrorIs(t, err, linalg.ErrSingular)

	var be *linalg.BatchError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 1, be.Index)

	// The healthy element is still inverted.
	require.NotNil(t, inv)
	assert.Equal(t, []float64{1, 0, 0, 1}, inv.Data()[:4])

	_, err = linalg.Inv(a, linalg.DefaultEpsilon, linalg.WithFailFast())
	require.ErrorIs(t, err, linalg.ErrSingular)
}

func TestEigenStrategiesAgree(t *testing.T) {
	eng := tensor.NewEngine()
	a, err := tensor.FromFlat(eng, []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	}, tensor.Shape{3, 3})
	require.NoError(t, err)

	jac, err := linalg.SymEig(a, 1e-12)
	require.NoError(t, err)
	svd, err := linalg.SymEig(a, 1e-12, linalg.WithEigenStrategy(linalg.EigenFromSVD))
	require.NoError(t, err)

	assert.True(t, tensor.AllClose(jac.Values, svd.Values, 1e-9))

	var ref mat.EigenSym
	require.True(t, ref.Factorize(mat.NewSymDense(3, []float64{4, 1, 0, 1, 3, 1, 0, 1, 2}), false))
	want := ref.Values(nil)
	for i, v := range jac.Values.Data() {
		assert.InDelta(t, want[i], v, 1e-9)
	}
}
