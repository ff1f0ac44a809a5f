package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/linalg/internal/parallel"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		shapes []Shape
		want   Shape
	}{
		{"same", []Shape{{3, 4}, {3, 4}}, Shape{3, 4}},
		{"column row", []Shape{{3, 1}, {1, 4}}, Shape{3, 4}},
		{"rank pad", []Shape{{2, 1, 5}, {3, 1}}, Shape{2, 3, 5}},
		{"scalar", []Shape{{}, {2, 2}}, Shape{2, 2}},
		{"three way", []Shape{{4, 1, 1}, {1, 3, 1}, {2}}, Shape{4, 3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.shapes...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Resolve(Shape{3, 4}, Shape{3, 5})
	require.ErrorIs(t, err, ErrBroadcastIncompatible)
}

func TestBroadcastShapes(t *testing.T) {
	s, needs, err := BroadcastShapes(Shape{3, 1}, Shape{3, 5})
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 5}, s)
	assert.True(t, needs)

	_, needs, err = BroadcastShapes(Shape{3, 5}, Shape{3, 5})
	require.NoError(t, err)
	assert.False(t, needs)
}

func TestMaterialize(t *testing.T) {
	eng := newTestEngine()
	col := mustFromFlat(t, eng, []float64{1, 2, 3}, Shape{3, 1})

	out, err := Materialize(col, Shape{2, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 2, 2, 3, 3, 1, 1, 2, 2, 3, 3}, out.Data())
	assert.False(t, out.SharesBuffer(col))

	_, err = Materialize(col, Shape{3})
	require.ErrorIs(t, err, ErrRankMismatch)

	_, err = Materialize(col, Shape{4, 2})
	require.ErrorIs(t, err, ErrBroadcastIncompatible)

	scalar := mustFromFlat(t, eng, []float64{7}, Shape{1})
	_, err = Materialize(scalar, Shape{2, -3})
	require.ErrorIs(t, err, ErrShapeMismatch)
	_, err = Materialize(scalar, Shape{2, 0})
	require.ErrorIs(t, err, ErrEmptyShape)
}

func TestAddBroadcastReplication(t *testing.T) {
	eng := newTestEngine()
	a := mustFromFlat(t, eng, []float64{1, 2, 3}, Shape{3, 1})
	b := mustFromFlat(t, eng, []float64{10, 20, 30, 40}, Shape{1, 4})

	c, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 4}, c.Shape())
	for r, base := range []float64{1, 2, 3} {
		for j, add := range []float64{10, 20, 30, 40} {
			v, err := c.At(r, j)
			require.NoError(t, err)
			assert.InDelta(t, base+add, v, 0)
		}
	}
}

func TestElementwise(t *testing.T) {
	eng := newTestEngine()
	a := mustFromFlat(t, eng, []float64{6, 8, 10, 12}, Shape{2, 2})
	b := mustFromFlat(t, eng, []float64{1, 2}, Shape{2})

	sub, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6, 9, 10}, sub.Data())

	mul, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 16, 10, 24}, mul.Data())

	div, err := a.Div(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 4, 10, 6}, div.Data())

	add, err := a.Add(Scalar(eng, 1.0))
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 9, 11, 13}, add.Data())

	assert.Equal(t, []float64{-6, -8, -10, -12}, a.Neg().Data())

	_, err = Add(a, mustFromFlat(t, eng, []float64{1, 2, 3}, Shape{3}))
	require.ErrorIs(t, err, ErrShapeMismatch)
	require.ErrorIs(t, err, ErrBroadcastIncompatible)
}

func TestScalarOps(t *testing.T) {
	eng := newTestEngine()
	a := mustFromFlat(t, eng, []float64{1, 2, 4}, Shape{3})

	assert.Equal(t, []float64{3, 4, 6}, AddScalar(a, 2).Data())
	assert.Equal(t, []float64{-1, 0, 2}, SubScalar(a, 2).Data())
	assert.Equal(t, []float64{1, 0, -2}, ScalarSub(2, a).Data())
	assert.Equal(t, []float64{2, 4, 8}, MulScalar(a, 2).Data())

	d, err := DivScalar(a, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1, 2}, d.Data())

	inv, err := ScalarDiv(4, a)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 2, 1}, inv.Data())

	// Float division by zero follows IEEE 754.
	inf, err := DivScalar(a, 0)
	require.NoError(t, err)
	assert.True(t, math.IsInf(inf.Data()[0], 1))
}

func TestIntegerDivideByZero(t *testing.T) {
	eng := newTestEngine()
	a := mustFromFlat(t, eng, []int{4, 6}, Shape{2})
	zero := mustFromFlat(t, eng, []int{2, 0}, Shape{2})

	_, err := Div(a, zero)
	require.ErrorIs(t, err, ErrDivideByZero)

	_, err = DivScalar(a, 0)
	require.ErrorIs(t, err, ErrDivideByZero)

	_, err = ScalarDiv(1, zero)
	require.ErrorIs(t, err, ErrDivideByZero)

	q, err := DivScalar(a, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, q.Data())
}

func TestSumAndAllClose(t *testing.T) {
	eng := newTestEngine()
	a := mustFromFlat(t, eng, []float64{1, 2, 3, 4}, Shape{2, 2})
	assert.InDelta(t, 10.0, Sum(a), 0)

	b := mustFromFlat(t, eng, []float64{1, 2, 3, 4 + 1e-12}, Shape{2, 2})
	assert.True(t, AllClose(a, b, 1e-9))
	assert.False(t, AllClose(a, b, 1e-15))

	flat := mustFromFlat(t, eng, []float64{1, 2, 3, 4}, Shape{4})
	assert.False(t, AllClose(a, flat, 1))
}

func TestElementwiseParallelMatchesSequential(t *testing.T) {
	cfg := parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}
	par := NewEngine(WithParallel(cfg))
	seq := newTestEngine()

	data := make([]float64, 1000)
	for i := range data {
		data[i] = float64(i)
	}
	pa := mustFromFlat(t, par, data, Shape{10, 100})
	sa := mustFromFlat(t, seq, data, Shape{10, 100})
	pb := mustFromFlat(t, par, data[:100], Shape{100})
	sb := mustFromFlat(t, seq, data[:100], Shape{100})

	pr, err := Mul(pa, pb)
	require.NoError(t, err)
	sr, err := Mul(sa, sb)
	require.NoError(t, err)
	assert.Equal(t, sr.Data(), pr.Data())

	pt, err := pa.T()
	require.NoError(t, err)
	st, err := sa.T()
	require.NoError(t, err)
	assert.Equal(t, st.Data(), pt.Data())
}
