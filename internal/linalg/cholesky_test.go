package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/linalg/internal/tensor"
)

func TestCholeskyReconstruction(t *testing.T) {
	eng := newTestEngine()
	a := mustSPD(t, eng, 3, 4, 5)

	l, err := Cholesky(a, 1e-9)
	require.NoError(t, err)
	requireClose(t, a, mustDot(t, l, mustT(t, l)), 1e-6, "L·Lᵀ = A")

	mats, err := tensor.Matrices(l)
	require.NoError(t, err)
	for b, m := range mats.All() {
		for i := range 5 {
			d, err := m.At(i, i)
			require.NoError(t, err)
			assert.Positive(t, d, "batch %d diagonal %d", b, i)
			for j := i + 1; j < 5; j++ {
				v, err := m.At(i, j)
				require.NoError(t, err)
				assert.InDelta(t, 0.0, v, 0, "batch %d upper (%d, %d)", b, i, j)
			}
		}
	}
}

func TestCholeskyKnown(t *testing.T) {
	eng := newTestEngine()
	a := mustFromFlat(t, eng, []float64{
		4, 12, -16,
		12, 37, -43,
		-16, -43, 98,
	}, tensor.Shape{3, 3})

	l, err := Cholesky(a, 1e-9)
	require.NoError(t, err)
	requireClose(t, mustFromFlat(t, eng, []float64{
		2, 0, 0,
		6, 1, 0,
		-8, 5, 3,
	}, tensor.Shape{3, 3}), l, 1e-12, "textbook factor")
}

func TestCholeskyErrors(t *testing.T) {
	eng := newTestEngine()

	asym := mustFromFlat(t, eng, []float64{2, 1, 0, 2}, tensor.Shape{2, 2})
	_, err := Cholesky(asym, 1e-9)
	require.ErrorIs(t, err, ErrNotSymmetric)

	indefinite := mustFromFlat(t, eng, []float64{1, 2, 2, 1}, tensor.Shape{2, 2})
	_, err = Cholesky(indefinite, 1e-9)
	require.ErrorIs(t, err, ErrNotPositiveDefinite)

	_, err = Cholesky(mustRand(t, eng, 1, tensor.Shape{2, 3}), 1e-9)
	require.ErrorIs(t, err, ErrNotSquare)

	// Asymmetry within eps is accepted.
	nearly := mustFromFlat(t, eng, []float64{2, 1, 1 + 1e-12, 2}, tensor.Shape{2, 2})
	_, err = Cholesky(nearly, 1e-9)
	require.NoError(t, err)
}
