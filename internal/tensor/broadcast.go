package tensor

import (
	"fmt"

	"github.com/born-ml/linalg/internal/parallel"
)

// Resolve computes the common shape of the given shapes under NumPy-style
// broadcasting rules.
//
// Rules:
// 1. Shapes are right-aligned; missing leading dimensions are treated as 1
// 2. The resolved size of an axis is the largest size seen there
// 3. Every size on an axis must be 1 or equal to the resolved size
//
// Examples:
//
//	(3, 1) + (1, 4)    → (3, 4)
//	(2, 1, 5) + (3, 1) → (2, 3, 5)
//	(3, 4) + (3, 5)    → ErrBroadcastIncompatible
func Resolve(shapes ...Shape) (Shape, error) {
	rank := 0
	for _, s := range shapes {
		rank = max(rank, len(s))
	}

	result := make(Shape, rank)
	for i := range result {
		result[i] = 1
	}
	for i := 1; i <= rank; i++ {
		for _, s := range shapes {
			if len(s) >= i {
				result[rank-i] = max(result[rank-i], s[len(s)-i])
			}
		}
	}

	for _, s := range shapes {
		for i := 1; i <= len(s); i++ {
			d := s[len(s)-i]
			if d != 1 && d != result[rank-i] {
				return nil, tensorErrorf(opResolve,
					fmt.Errorf("%w: %v vs %v (axis %d: %d vs %d)", ErrBroadcastIncompatible, s, result, rank-i, d, result[rank-i]))
			}
		}
	}
	return result, nil
}

// BroadcastShapes computes the broadcast shape for two shapes.
// Returns the broadcasted shape, a flag indicating if broadcasting is needed, and an error if incompatible.
//
// Examples:
//
//	(3, 1) + (3, 5) → (3, 5), true, nil
//	(3, 5) + (3, 5) → (3, 5), false, nil
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	result, err := Resolve(a, b)
	if err != nil {
		return nil, false, err
	}
	return result, !a.Equal(result) || !b.Equal(result), nil
}

// checkExpandable validates that shape can be broadcast to target.
func checkExpandable(shape, target Shape) error {
	if len(shape) > len(target) {
		return fmt.Errorf("%w: cannot broadcast rank %d to rank %d", ErrRankMismatch, len(shape), len(target))
	}
	offset := len(target) - len(shape)
	for i, d := range shape {
		if d != 1 && d != target[offset+i] {
			return fmt.Errorf("%w: cannot expand axis %d from %d to %d", ErrBroadcastIncompatible, i, d, target[offset+i])
		}
	}
	return nil
}

// Materialize broadcasts t to target by explicit replication into a fresh buffer.
func Materialize[T DType](t *Tensor[T], target Shape) (*Tensor[T], error) {
	if err := target.Validate(); err != nil {
		return nil, tensorErrorf(opExpand, err)
	}
	if err := checkExpandable(t.shape, target); err != nil {
		return nil, tensorErrorf(opExpand, err)
	}
	result := alloc[T](t.eng, target)
	expandBroadcast(result.Data(), t.Data(), t.shape, target, result.strides, t.eng.parallel)
	return result, nil
}

// expandTo returns t itself when it already has the target shape, otherwise
// a materialized copy.
func expandTo[T DType](t *Tensor[T], target Shape) (*Tensor[T], error) {
	if t.shape.Equal(target) {
		return t, nil
	}
	return Materialize(t, target)
}

// broadcastStrides computes strides for reading inShape as outShape.
// Padded and size-1 axes get stride 0.
func broadcastStrides(inShape, outShape Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	offset := outDim - len(inShape)
	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0:
			strides[i] = 0
		case inShape[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}
	return strides
}

func expandBroadcast[T DType](dst, src []T, srcShape, outShape Shape, outStrides []int, cfg parallel.Config) {
	inStrides := broadcastStrides(srcShape, outShape)

	parallel.ForRange(len(dst), func(lo, hi int) {
		for outIdx := lo; outIdx < hi; outIdx++ {
			// Convert linear index to source offset axis by axis
			rem := outIdx
			inIdx := 0
			for i, st := range outStrides {
				inIdx += (rem / st) * inStrides[i]
				rem %= st
			}
			dst[outIdx] = src[inIdx]
		}
	}, cfg)
}
