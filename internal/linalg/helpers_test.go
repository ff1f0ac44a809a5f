package linalg

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/linalg/internal/parallel"
	"github.com/born-ml/linalg/internal/tensor"
)

// newTestEngine returns an engine that fans batch elements out to several
// goroutines, so the lease and error-collection paths run concurrently.
func newTestEngine() *tensor.Engine {
	return tensor.NewEngine(tensor.WithParallel(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}))
}

func mustFromFlat(t *testing.T, eng *tensor.Engine, data []float64, shape tensor.Shape) *tensor.Tensor[float64] {
	t.Helper()
	out, err := tensor.FromFlat(eng, data, shape)
	require.NoError(t, err)
	return out
}

func mustRand(t *testing.T, eng *tensor.Engine, seed int64, shape tensor.Shape) *tensor.Tensor[float64] {
	t.Helper()
	out, err := tensor.Rand(eng, shape, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return out
}

// mustSPD returns a batch of symmetric positive-definite matrices Bᵀ·B + n·I.
func mustSPD(t *testing.T, eng *tensor.Engine, seed int64, batch, n int) *tensor.Tensor[float64] {
	t.Helper()
	b := mustRand(t, eng, seed, tensor.Shape{batch, n, n})
	a := mustDot(t, mustT(t, b), b)
	eye, err := tensor.Eye[float64](eng, n)
	require.NoError(t, err)
	out, err := tensor.Add(a, tensor.MulScalar(eye, float64(n)))
	require.NoError(t, err)
	return out
}

// mustSymmetric returns a batch of random symmetric matrices B + Bᵀ.
func mustSymmetric(t *testing.T, eng *tensor.Engine, seed int64, batch, n int) *tensor.Tensor[float64] {
	t.Helper()
	b := mustRand(t, eng, seed, tensor.Shape{batch, n, n})
	out, err := tensor.Add(b, mustT(t, b))
	require.NoError(t, err)
	return out
}

func mustDot(t *testing.T, a, b *tensor.Tensor[float64]) *tensor.Tensor[float64] {
	t.Helper()
	out, err := tensor.Dot(a, b)
	require.NoError(t, err)
	return out
}

func mustT(t *testing.T, a *tensor.Tensor[float64]) *tensor.Tensor[float64] {
	t.Helper()
	out, err := a.T()
	require.NoError(t, err)
	return out
}

func mustDiag(t *testing.T, v *tensor.Tensor[float64]) *tensor.Tensor[float64] {
	t.Helper()
	out, err := tensor.DiagonalEmbedding(v, 0, -2, -1)
	require.NoError(t, err)
	return out
}

// requireClose fails unless a and b agree elementwise within tol.
func requireClose(t *testing.T, want, got *tensor.Tensor[float64], tol float64, msg string) {
	t.Helper()
	require.Equal(t, want.Shape(), got.Shape(), msg)
	require.True(t, tensor.AllClose(want, got, tol), "%s:\nwant %v\n got %v", msg, want.Data(), got.Data())
}

// batchedEye returns identity matrices with the given batch shape.
func batchedEye(t *testing.T, eng *tensor.Engine, batch tensor.Shape, n int) *tensor.Tensor[float64] {
	t.Helper()
	eye, err := tensor.Eye[float64](eng, n)
	require.NoError(t, err)
	out, err := tensor.Materialize(eye, append(batch.Clone(), n, n))
	require.NoError(t, err)
	return out
}
