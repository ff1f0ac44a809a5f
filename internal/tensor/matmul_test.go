package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/linalg/internal/parallel"
)

func TestDotMatrix(t *testing.T) {
	eng := newTestEngine()
	a := mustFromFlat(t, eng, []float64{1, 2, 3, 4}, Shape{2, 2})
	b := mustFromFlat(t, eng, []float64{5, 6, 7, 8}, Shape{2, 2})

	c, err := a.Dot(b)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, c.Shape())
	assert.Equal(t, []float64{19, 22, 43, 50}, c.Data())
}

func TestDotRectangular(t *testing.T) {
	eng := newTestEngine()
	a := mustFromFlat(t, eng, []int{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	b := mustFromFlat(t, eng, []int{7, 8, 9, 10, 11, 12}, Shape{3, 2})

	c, err := Dot(a, b)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, c.Shape())
	assert.Equal(t, []int{58, 64, 139, 154}, c.Data())
}

func TestDotBatchedBroadcast(t *testing.T) {
	eng := newTestEngine()
	eye := mustFromFlat(t, eng, []float64{1, 0, 0, 1}, Shape{2, 2})
	twice := mustFromFlat(t, eng, []float64{2, 0, 0, 2}, Shape{2, 2})
	stackA, err := Materialize(eye, Shape{2, 1, 2, 2})
	require.NoError(t, err)
	stackB, err := Materialize(twice, Shape{3, 2, 2})
	require.NoError(t, err)

	c, err := Dot(stackA, stackB)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3, 2, 2}, c.Shape())
	for i := range 6 {
		assert.Equal(t, []float64{2, 0, 0, 2}, c.Data()[i*4:(i+1)*4])
	}

	// A single matrix broadcasts against a batch.
	batch := mustFromFlat(t, eng, []float64{1, 2, 3, 4, 5, 6, 7, 8}, Shape{2, 2, 2})
	d, err := Dot(twice, batch)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2, 2}, d.Shape())
	assert.Equal(t, []float64{2, 4, 6, 8, 10, 12, 14, 16}, d.Data())
}

func TestDotVectors(t *testing.T) {
	eng := newTestEngine()
	m := mustFromFlat(t, eng, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	v3 := mustFromFlat(t, eng, []float64{1, 0, 1}, Shape{3})
	v2 := mustFromFlat(t, eng, []float64{1, 1}, Shape{2})

	mv, err := Dot(m, v3)
	require.NoError(t, err)
	assert.Equal(t, Shape{2}, mv.Shape())
	assert.Equal(t, []float64{4, 10}, mv.Data())

	vm, err := Dot(v2, m)
	require.NoError(t, err)
	assert.Equal(t, Shape{3}, vm.Shape())
	assert.Equal(t, []float64{5, 7, 9}, vm.Data())

	inner, err := Dot(v3, v3)
	require.NoError(t, err)
	assert.Equal(t, 0, inner.Rank())
	v, err := inner.Value()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 0)

	// Batched matrices times one vector.
	batch := mustFromFlat(t, eng, []float64{1, 0, 0, 1, 2, 0, 0, 2}, Shape{2, 2, 2})
	bv, err := Dot(batch, v2)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, bv.Shape())
	assert.Equal(t, []float64{1, 1, 2, 2}, bv.Data())
}

func TestDotErrors(t *testing.T) {
	eng := newTestEngine()
	a := mustFromFlat(t, eng, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})

	_, err := Dot(a, a)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Dot(Scalar(eng, 1.0), a)
	require.ErrorIs(t, err, ErrRankMismatch)

	b1 := mustFromFlat(t, eng, make([]float64, 2*2*3), Shape{2, 2, 3})
	b2 := mustFromFlat(t, eng, make([]float64, 3*3*2), Shape{3, 3, 2})
	_, err = Dot(b1, b2)
	require.ErrorIs(t, err, ErrBroadcastIncompatible)
}

func TestDotParallelMatchesSequential(t *testing.T) {
	par := NewEngine(WithParallel(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}))
	seq := newTestEngine()

	data := make([]float64, 16*3*3)
	for i := range data {
		data[i] = float64(i%7) - 3
	}
	pa := mustFromFlat(t, par, data, Shape{16, 3, 3})
	sa := mustFromFlat(t, seq, data, Shape{16, 3, 3})

	pr, err := Dot(pa, pa)
	require.NoError(t, err)
	sr, err := Dot(sa, sa)
	require.NoError(t, err)
	assert.Equal(t, sr.Data(), pr.Data())
}
