package tensor

import "fmt"

// Tensor1D is a zero-copy rank-1 specialization of Tensor.
type Tensor1D[T DType] struct {
	*Tensor[T]
}

// Tensor2D is a zero-copy rank-2 specialization of Tensor.
type Tensor2D[T DType] struct {
	*Tensor[T]
}

// AsTensor1D reinterprets a rank-1 tensor without copying.
func (t *Tensor[T]) AsTensor1D() (*Tensor1D[T], error) {
	if t.Rank() != 1 {
		return nil, tensorErrorf(opCast1D, fmt.Errorf("%w: want rank 1, got %d", ErrRankMismatch, t.Rank()))
	}
	return &Tensor1D[T]{Tensor: t}, nil
}

// AsTensor2D reinterprets a rank-2 tensor without copying.
func (t *Tensor[T]) AsTensor2D() (*Tensor2D[T], error) {
	if t.Rank() != 2 {
		return nil, tensorErrorf(opCast2D, fmt.Errorf("%w: want rank 2, got %d", ErrRankMismatch, t.Rank()))
	}
	return &Tensor2D[T]{Tensor: t}, nil
}

// AsTensor1D returns the receiver itself.
func (v *Tensor1D[T]) AsTensor1D() (*Tensor1D[T], error) {
	return v, nil
}

// Len returns the vector length.
func (v *Tensor1D[T]) Len() int {
	return v.shape[0]
}

// At returns element i. It panics if i is out of range.
func (v *Tensor1D[T]) At(i int) T {
	return v.view.Data()[i]
}

// Set assigns element i. It panics if i is out of range.
// Like Data, it bypasses leases.
func (v *Tensor1D[T]) Set(i int, x T) {
	v.view.Data()[i] = x
}

// AsTensor2D returns the receiver itself.
func (m *Tensor2D[T]) AsTensor2D() (*Tensor2D[T], error) {
	return m, nil
}

// Rows returns the number of rows.
func (m *Tensor2D[T]) Rows() int {
	return m.shape[0]
}

// Cols returns the number of columns.
func (m *Tensor2D[T]) Cols() int {
	return m.shape[1]
}

// Dims returns rows and columns.
func (m *Tensor2D[T]) Dims() (int, int) {
	return m.shape[0], m.shape[1]
}

// At returns element (i, j). It panics if the position is out of range.
func (m *Tensor2D[T]) At(i, j int) T {
	if j < 0 || j >= m.shape[1] {
		panic(fmt.Sprintf("tensor: column %d out of range [0, %d)", j, m.shape[1]))
	}
	return m.view.Data()[i*m.shape[1]+j]
}

// Set assigns element (i, j). It panics if the position is out of range.
// Like Data, it bypasses leases.
func (m *Tensor2D[T]) Set(i, j int, x T) {
	if j < 0 || j >= m.shape[1] {
		panic(fmt.Sprintf("tensor: column %d out of range [0, %d)", j, m.shape[1]))
	}
	m.view.Data()[i*m.shape[1]+j] = x
}

// Row returns row i as a zero-copy vector.
func (m *Tensor2D[T]) Row(i int) (*Tensor1D[T], error) {
	cols := m.shape[1]
	v, err := m.view.Slice(i*cols, cols)
	if err != nil {
		return nil, err
	}
	return &Tensor1D[T]{Tensor: newTensor(m.eng, Shape{cols}, v)}, nil
}
