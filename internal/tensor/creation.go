package tensor

import (
	"fmt"
	"math/rand"
)

// FromFlat creates a tensor from a row-major element list.
// The slice is copied into the tensor's memory.
//
// Example:
//
//	t, err := tensor.FromFlat(eng, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func FromFlat[T DType](eng *Engine, data []T, shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, tensorErrorf(opFromFlat, err)
	}
	if len(data) == 0 {
		return nil, tensorErrorf(opFromFlat, fmt.Errorf("%w: shape %v requires %d elements", ErrEmptyBuffer, shape, shape.NumElements()))
	}
	if shape.NumElements() != len(data) {
		return nil, tensorErrorf(opFromFlat,
			fmt.Errorf("%w: shape %v requires %d elements, but got %d", ErrShapeMismatch, shape, shape.NumElements(), len(data)))
	}
	return newTensor(eng, shape.Clone(), BufferOf(data).Whole()), nil
}

// FromRows creates a rank-2 tensor from a slice of equally long rows.
func FromRows[T DType](eng *Engine, rows [][]T) (*Tensor[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, tensorErrorf(opFromFlat, ErrEmptyBuffer)
	}
	cols := len(rows[0])
	flat := make([]T, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, tensorErrorf(opFromFlat, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(r), cols))
		}
		flat = append(flat, r...)
	}
	return FromFlat(eng, flat, Shape{len(rows), cols})
}

// Scalar creates a rank-0 tensor holding v.
func Scalar[T DType](eng *Engine, v T) *Tensor[T] {
	t := alloc[T](eng, Shape{})
	t.view.buf.data[0] = v
	return t
}

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	t, _ := tensor.Zeros[float64](eng, tensor.Shape{3, 4})
func Zeros[T DType](eng *Engine, shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, tensorErrorf(opFull, err)
	}
	// Data is already zero-initialized by make()
	return alloc[T](eng, shape), nil
}

// Ones creates a tensor filled with ones.
func Ones[T DType](eng *Engine, shape Shape) (*Tensor[T], error) {
	return Full[T](eng, 1, shape)
}

// Full creates a tensor filled with a specific value.
func Full[T DType](eng *Engine, value T, shape Shape) (*Tensor[T], error) {
	t, err := Zeros[T](eng, shape)
	if err != nil {
		return nil, err
	}
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t, nil
}

// Eye creates an n×n identity matrix.
func Eye[T DType](eng *Engine, n int) (*Tensor[T], error) {
	if n <= 0 {
		return nil, tensorErrorf(opEye, fmt.Errorf("%w: n = %d", ErrEmptyShape, n))
	}
	if err := (Shape{n, n}).Validate(); err != nil {
		return nil, tensorErrorf(opEye, err)
	}
	t := alloc[T](eng, Shape{n, n})
	data := t.Data()
	for i := 0; i < n; i++ {
		data[i*n+i] = 1
	}
	return t, nil
}

// Arange creates a 1D tensor holding 0, 1, ..., n-1.
func Arange[T DType](eng *Engine, n int) (*Tensor[T], error) {
	if n <= 0 {
		return nil, tensorErrorf(opFull, fmt.Errorf("%w: n = %d", ErrEmptyShape, n))
	}
	t := alloc[T](eng, Shape{n})
	data := t.Data()
	for i := range data {
		data[i] = T(i)
	}
	return t, nil
}

// Rand creates a float64 tensor with values uniformly distributed in [-1, 1).
// Note: Uses math/rand (not crypto/rand) - appropriate for numerical testing.
func Rand(eng *Engine, shape Shape, rng *rand.Rand) (*Tensor[float64], error) {
	t, err := Zeros[float64](eng, shape)
	if err != nil {
		return nil, err
	}
	data := t.Data()
	for i := range data {
		data[i] = 2*rng.Float64() - 1
	}
	return t, nil
}
