package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/linalg/internal/tensor"
)

func TestQR(t *testing.T) {
	eng := newTestEngine()
	for _, shape := range []tensor.Shape{{1, 1}, {4, 4}, {3, 5, 5}} {
		a := mustRand(t, eng, 21, shape)
		batch := shape[:len(shape)-2]
		n := shape[len(shape)-1]

		qr, err := QR(a)
		require.NoError(t, err)

		requireClose(t, batchedEye(t, eng, batch, n), mustDot(t, mustT(t, qr.Q), qr.Q), 1e-12, "Qᵀ·Q = I")
		requireClose(t, a, mustDot(t, qr.Q, qr.R), 1e-12, "Q·R = A")

		mats, err := tensor.Matrices(qr.R)
		require.NoError(t, err)
		for _, m := range mats.All() {
			for i := range n {
				d, err := m.At(i, i)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, d, 0.0)
				for j := range i {
					v, err := m.At(i, j)
					require.NoError(t, err)
					assert.InDelta(t, 0.0, v, 0, "R must be upper-triangular")
				}
			}
		}
	}
}

func TestQRRankDeficient(t *testing.T) {
	eng := newTestEngine()
	a := mustFromFlat(t, eng, []float64{
		1, 2, 3,
		2, 4, 6,
		1, 0, 1,
	}, tensor.Shape{3, 3})

	qr, err := QR(a)
	require.NoError(t, err)
	requireClose(t, a, mustDot(t, qr.Q, qr.R), 1e-12, "Q·R = A")
	requireClose(t, batchedEye(t, eng, nil, 3), mustDot(t, mustT(t, qr.Q), qr.Q), 1e-12, "Qᵀ·Q = I")
}

func TestQRNotSquare(t *testing.T) {
	eng := newTestEngine()
	_, err := QR(mustRand(t, eng, 1, tensor.Shape{3, 2}))
	require.ErrorIs(t, err, ErrNotSquare)
}
