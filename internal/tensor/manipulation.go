package tensor

import (
	"fmt"

	"github.com/born-ml/linalg/internal/parallel"
)

// Reshape returns a tensor with the same data but a different shape.
// It is a view operation: the result shares the buffer.
func (t *Tensor[T]) Reshape(newShape Shape) (*Tensor[T], error) {
	if err := newShape.Validate(); err != nil {
		return nil, tensorErrorf(opReshape, err)
	}
	if t.NumElements() != newShape.NumElements() {
		return nil, tensorErrorf(opReshape,
			fmt.Errorf("%w: %v -> %v (different number of elements)", ErrShapeMismatch, t.shape, newShape))
	}
	return newTensor(t.eng, newShape.Clone(), t.view), nil
}

// ViewAs is Reshape with variadic dimensions.
func (t *Tensor[T]) ViewAs(dims ...int) (*Tensor[T], error) {
	return t.Reshape(Shape(dims))
}

// Flatten returns a rank-1 view of the tensor.
func (t *Tensor[T]) Flatten() *Tensor[T] {
	return newTensor(t.eng, Shape{t.NumElements()}, t.view)
}

// normalizeAxis maps a possibly negative axis into [0, rank).
func normalizeAxis(axis, rank int) (int, error) {
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		return 0, fmt.Errorf("%w: axis %d for rank %d", ErrIndexOutOfRange, axis, rank)
	}
	return axis, nil
}

// Transpose swaps axes i and j. Negative axes count from the end.
//
// The result owns a freshly materialized buffer: each element is copied to
// the offset of its multi-index with axes i and j exchanged.
func (t *Tensor[T]) Transpose(i, j int) (*Tensor[T], error) {
	rank := t.Rank()
	var err error
	if i, err = normalizeAxis(i, rank); err != nil {
		return nil, tensorErrorf(opTranspose, err)
	}
	if j, err = normalizeAxis(j, rank); err != nil {
		return nil, tensorErrorf(opTranspose, err)
	}

	newShape := t.shape.Clone()
	newShape[i], newShape[j] = newShape[j], newShape[i]
	result := alloc[T](t.eng, newShape)
	if i == j {
		copy(result.Data(), t.Data())
		return result, nil
	}

	transposeData(result.Data(), t.Data(), t.strides, result.strides, i, j, t.eng.parallel)
	return result, nil
}

// T returns the matrix transpose (swap of the last two axes).
func (t *Tensor[T]) T() (*Tensor[T], error) {
	if t.Rank() < 2 {
		return nil, tensorErrorf(opTranspose, fmt.Errorf("%w: need rank >= 2, got %d", ErrRankMismatch, t.Rank()))
	}
	return t.Transpose(-2, -1)
}

func transposeData[T DType](dst, src []T, srcStrides, dstStrides []int, i, j int, cfg parallel.Config) {
	parallel.ForRange(len(src), func(lo, hi int) {
		coords := make([]int, len(srcStrides))
		for off := lo; off < hi; off++ {
			unravel(coords, srcStrides, off)
			coords[i], coords[j] = coords[j], coords[i]
			dstOff := 0
			for k, c := range coords {
				dstOff += c * dstStrides[k]
			}
			dst[dstOff] = src[off]
		}
	}, cfg)
}
