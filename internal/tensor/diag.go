package tensor

import "fmt"

const opTrace = "Trace"

// DiagonalEmbedding places the trailing vectors of entries on the diagonals
// of new matrices.
//
// For entries of shape [..., k] the result has rank one higher. Two new axes
// of size k+|offset| are inserted at dim1 and dim2 (negative values count
// from the end of the result), and every remaining result axis takes the
// batch axes of entries in order. Entry i lands at (i, i+offset) for
// offset >= 0 and at (i-offset, i) otherwise; everything else is zero.
//
// Example:
//
//	entries [2, 3], offset 0, dims (-2, -1) → [2, 3, 3], a diagonal matrix per row
func DiagonalEmbedding[T DType](entries *Tensor[T], offset, dim1, dim2 int) (*Tensor[T], error) {
	if entries.Rank() < 1 {
		return nil, tensorErrorf(opDiagEmbed, fmt.Errorf("%w: need rank >= 1, got 0", ErrRankMismatch))
	}
	outRank := entries.Rank() + 1
	var err error
	if dim1, err = normalizeAxis(dim1, outRank); err != nil {
		return nil, tensorErrorf(opDiagEmbed, err)
	}
	if dim2, err = normalizeAxis(dim2, outRank); err != nil {
		return nil, tensorErrorf(opDiagEmbed, err)
	}
	if dim1 == dim2 {
		return nil, tensorErrorf(opDiagEmbed, fmt.Errorf("%w: dim1 and dim2 are both %d", ErrIndexOutOfRange, dim1))
	}

	k := entries.shape[entries.Rank()-1]
	size := k + abs(offset)
	batch := entries.shape[:entries.Rank()-1]

	outShape := make(Shape, outRank)
	b := 0
	for ax := range outShape {
		switch ax {
		case dim1, dim2:
			outShape[ax] = size
		default:
			outShape[ax] = batch[b]
			b++
		}
	}
	if err := outShape.Validate(); err != nil {
		return nil, tensorErrorf(opDiagEmbed, err)
	}
	result := alloc[T](entries.eng, outShape)
	dst, src := result.Data(), entries.Data()

	rowShift, colShift := 0, offset
	if offset < 0 {
		rowShift, colShift = -offset, 0
	}

	batchStrides := entries.eng.Strides(batch)
	batchIdx := make([]int, len(batch))
	for bi := range batch.NumElements() {
		unravel(batchIdx, batchStrides, bi)
		base, j := 0, 0
		for ax, st := range result.strides {
			if ax == dim1 || ax == dim2 {
				continue
			}
			base += batchIdx[j] * st
			j++
		}
		for i := range k {
			off := base + (i+rowShift)*result.strides[dim1] + (i+colShift)*result.strides[dim2]
			dst[off] = src[bi*k+i]
		}
	}
	return result, nil
}

// Trace returns the sum of the main diagonal of every trailing matrix of t.
// The result has t's batch shape (rank 0 for a single matrix).
func Trace[T DType](t *Tensor[T]) (*Tensor[T], error) {
	mats, err := Matrices(t)
	if err != nil {
		return nil, tensorErrorf(opTrace, err)
	}
	rows, cols := t.shape[t.Rank()-2], t.shape[t.Rank()-1]
	result := alloc[T](t.eng, mats.Shape())
	out := result.Data()
	for i, m := range mats.All() {
		data := m.Data()
		var acc T
		for d := range min(rows, cols) {
			acc += data[d*cols+d]
		}
		out[i] = acc
	}
	return result, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
