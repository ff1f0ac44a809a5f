package tensor

import (
	"fmt"
	"iter"
)

// Batches walks the trailing matrices (or vectors) of a tensor.
//
// The batch axes are every axis except the trailing inner ones. Element i is
// the contiguous sub-range [i*step, (i+1)*step) of the tensor's view, so every
// element is a zero-copy view. The range is explicit: All can be ranged any
// number of times and yields the same sequence each time.
type Batches[T DType] struct {
	src     *Tensor[T]
	batch   Shape
	strides []int
	inner   Shape
	step    int
}

// Matrices returns the batch of trailing 2-D matrices of t (rank >= 2).
func Matrices[T DType](t *Tensor[T]) (*Batches[T], error) {
	if t.Rank() < 2 {
		return nil, tensorErrorf(opMatrices, fmt.Errorf("%w: need rank >= 2, got %d", ErrRankMismatch, t.Rank()))
	}
	return newBatches(t, 2), nil
}

// Vectors returns the batch of trailing 1-D vectors of t (rank >= 1).
func Vectors[T DType](t *Tensor[T]) (*Batches[T], error) {
	if t.Rank() < 1 {
		return nil, tensorErrorf(opVectors, fmt.Errorf("%w: need rank >= 1, got %d", ErrRankMismatch, t.Rank()))
	}
	return newBatches(t, 1), nil
}

func newBatches[T DType](t *Tensor[T], innerRank int) *Batches[T] {
	split := t.Rank() - innerRank
	batch := t.shape[:split].Clone()
	inner := t.shape[split:].Clone()
	return &Batches[T]{
		src:     t,
		batch:   batch,
		strides: t.eng.Strides(batch),
		inner:   inner,
		step:    inner.NumElements(),
	}
}

// Len returns the number of batch elements (1 when there are no batch axes).
func (b *Batches[T]) Len() int {
	return b.batch.NumElements()
}

// Shape returns the batch shape: the leading axes of the source tensor.
func (b *Batches[T]) Shape() Shape {
	return b.batch.Clone()
}

// Inner returns the shape of each batch element.
func (b *Batches[T]) Inner() Shape {
	return b.inner.Clone()
}

// Index returns the batch multi-index of element i.
func (b *Batches[T]) Index(i int) ([]int, error) {
	if i < 0 || i >= b.Len() {
		return nil, fmt.Errorf("%w: batch %d of %d", ErrIndexOutOfRange, i, b.Len())
	}
	idx := make([]int, len(b.batch))
	unravel(idx, b.strides, i)
	return idx, nil
}

// At returns element i as a zero-copy tensor of the inner shape.
func (b *Batches[T]) At(i int) (*Tensor[T], error) {
	if i < 0 || i >= b.Len() {
		return nil, tensorErrorf(opSlice, fmt.Errorf("%w: batch %d of %d", ErrIndexOutOfRange, i, b.Len()))
	}
	v, err := b.src.view.Slice(i*b.step, b.step)
	if err != nil {
		return nil, tensorErrorf(opSlice, err)
	}
	return newTensor(b.src.eng, b.inner, v), nil
}

// Matrix returns element i as a zero-copy matrix.
func (b *Batches[T]) Matrix(i int) (*Tensor2D[T], error) {
	t, err := b.At(i)
	if err != nil {
		return nil, err
	}
	return t.AsTensor2D()
}

// Vector returns element i as a zero-copy vector.
func (b *Batches[T]) Vector(i int) (*Tensor1D[T], error) {
	t, err := b.At(i)
	if err != nil {
		return nil, err
	}
	return t.AsTensor1D()
}

// All yields every batch element in order as (index, view) pairs.
func (b *Batches[T]) All() iter.Seq2[int, *Tensor[T]] {
	return func(yield func(int, *Tensor[T]) bool) {
		for i := range b.Len() {
			v, err := b.src.view.Slice(i*b.step, b.step)
			if err != nil {
				return
			}
			if !yield(i, newTensor(b.src.eng, b.inner, v)) {
				return
			}
		}
	}
}
