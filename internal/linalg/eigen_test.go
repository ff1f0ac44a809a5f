package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linalg/internal/tensor"
)

func TestSymEig(t *testing.T) {
	eng := newTestEngine()
	strategies := []EigenStrategy{EigenJacobi, EigenFromSVD}

	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			a := mustSymmetric(t, eng, 31, 3, 5)
			if s == EigenFromSVD {
				// Keep eigenvalue magnitudes distinct.
				a = mustSPD(t, eng, 31, 3, 5)
			}

			eig, err := SymEig(a, 1e-12, WithEigenStrategy(s))
			require.NoError(t, err)
			assert.Equal(t, tensor.Shape{3, 5}, eig.Values.Shape())
			assert.Equal(t, tensor.Shape{3, 5, 5}, eig.Vectors.Shape())

			av := mustDot(t, a, eig.Vectors)
			vl := mustDot(t, eig.Vectors, mustDiag(t, eig.Values))
			requireClose(t, av, vl, 1e-9, "A·V = V·diag(λ)")
			requireClose(t, batchedEye(t, eng, tensor.Shape{3}, 5),
				mustDot(t, mustT(t, eig.Vectors), eig.Vectors), 1e-9, "Vᵀ·V = I")

			values := eig.Values.Data()
			for b := range 3 {
				for j := 1; j < 5; j++ {
					assert.LessOrEqual(t, values[b*5+j-1], values[b*5+j], "eigenvalues must ascend")
				}
			}
		})
	}
}

func TestSymEigMatchesGonum(t *testing.T) {
	eng := newTestEngine()
	a := mustSymmetric(t, eng, 37, 1, 6)
	eig, err := SymEig(a, 1e-12)
	require.NoError(t, err)

	var ref mat.EigenSym
	require.True(t, ref.Factorize(mat.NewSymDense(6, a.ToFlat()), false))
	assert.InDeltaSlice(t, ref.Values(nil), eig.Values.Data(), 1e-10)
}

func TestSymEigFromSVDSigns(t *testing.T) {
	eng := newTestEngine()
	a := mustFromFlat(t, eng, []float64{
		2, 0, 0,
		0, -3, 0,
		0, 0, 1,
	}, tensor.Shape{3, 3})

	eig, err := SymEig(a, 1e-12, WithEigenStrategy(EigenFromSVD))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-3, 1, 2}, eig.Values.Data(), 1e-12)
}

func TestZeroToleranceOnDiagonalInput(t *testing.T) {
	eng := newTestEngine()
	a := mustFromFlat(t, eng, []float64{2, 0, 0, 3}, tensor.Shape{2, 2})

	for _, s := range []EigenStrategy{EigenJacobi, EigenFromSVD} {
		t.Run(s.String(), func(t *testing.T) {
			eig, err := SymEig(a, 0, WithEigenStrategy(s), WithStrictConvergence())
			require.NoError(t, err)
			assert.Equal(t, []float64{2, 3}, eig.Values.Data())
		})
	}

	svd, err := SVD(a, 0, WithStrictConvergence())
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 2}, svd.S.Data())
}

func TestSymEigErrors(t *testing.T) {
	eng := newTestEngine()
	asym := mustFromFlat(t, eng, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})

	for _, s := range []EigenStrategy{EigenJacobi, EigenFromSVD} {
		_, err := SymEig(asym, 1e-9, WithEigenStrategy(s))
		require.ErrorIs(t, err, ErrNotSymmetric)
	}

	_, err := SymEig(mustRand(t, eng, 1, tensor.Shape{2, 3}), 1e-9)
	require.ErrorIs(t, err, ErrNotSquare)

	assert.Equal(t, "unknown", EigenStrategy(9).String())
}
