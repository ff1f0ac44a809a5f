package tensor

import (
	"fmt"

	"github.com/born-ml/linalg/internal/parallel"
)

// Dot performs a batched matrix product.
//
// Operands of rank >= 2 are broadcast over every axis except the trailing
// two, then each batch element is multiplied as (l×m)·(m×n):
//
//	[B, l, m] · [B, m, n]    → [B, l, n]
//	[2, 1, l, m] · [3, m, n] → [2, 3, l, n]
//
// A rank-1 left operand is treated as a row vector and a rank-1 right operand
// as a column vector; the synthetic axis is removed from the result, so
// vector·vector yields a rank-0 inner product.
func Dot[T DType](a, b *Tensor[T]) (*Tensor[T], error) {
	if a.Rank() == 0 || b.Rank() == 0 {
		return nil, tensorErrorf(opDot, fmt.Errorf("%w: operands must have rank >= 1, got %d and %d", ErrRankMismatch, a.Rank(), b.Rank()))
	}

	rowVec, colVec := a.Rank() == 1, b.Rank() == 1
	if rowVec {
		a = newTensor(a.eng, Shape{1, a.shape[0]}, a.view)
	}
	if colVec {
		b = newTensor(b.eng, Shape{b.shape[0], 1}, b.view)
	}

	ra, rb := a.Rank(), b.Rank()
	l, m := a.shape[ra-2], a.shape[ra-1]
	m2, n := b.shape[rb-2], b.shape[rb-1]
	if m != m2 {
		return nil, tensorErrorf(opDot, fmt.Errorf("%w: [%d,%d] · [%d,%d]", ErrDimensionMismatch, l, m, m2, n))
	}

	batch, err := Resolve(a.shape[:ra-2], b.shape[:rb-2])
	if err != nil {
		return nil, tensorErrorf(opDot, err)
	}
	ea, err := expandTo(a, append(batch.Clone(), l, m))
	if err != nil {
		return nil, tensorErrorf(opDot, err)
	}
	eb, err := expandTo(b, append(batch.Clone(), m, n))
	if err != nil {
		return nil, tensorErrorf(opDot, err)
	}

	result := alloc[T](a.eng, append(batch.Clone(), l, n))
	batchMatmul(result.Data(), ea.Data(), eb.Data(), batch.NumElements(), l, m, n, a.eng.parallel)

	if rowVec || colVec {
		return newTensor(result.eng, demote(result.shape, rowVec, colVec), result.view), nil
	}
	return result, nil
}

// demote removes the synthetic vector axes from a product shape [..., l, n].
func demote(shape Shape, rowVec, colVec bool) Shape {
	r := len(shape)
	out := make(Shape, 0, r)
	out = append(out, shape[:r-2]...)
	if !rowVec {
		out = append(out, shape[r-2])
	}
	if !colVec {
		out = append(out, shape[r-1])
	}
	return out
}

// batchMatmul computes c[b] = a[b]·b[b] for every batch element.
func batchMatmul[T DType](c, a, b []T, batchSize, l, m, n int, cfg parallel.Config) {
	sizeA, sizeB, sizeC := l*m, m*n, l*n

	// Scale the chunk threshold by the work per batch element.
	batchCfg := cfg
	batchCfg.MinChunkSize = max(1, cfg.MinChunkSize/max(1, l*m*n))

	parallel.For(batchSize, func(batch int) {
		matmulKernel(c[batch*sizeC:(batch+1)*sizeC], a[batch*sizeA:(batch+1)*sizeA], b[batch*sizeB:(batch+1)*sizeB], l, m, n)
	}, batchCfg)
}

// matmulKernel computes c = a·b for row-major a (l×m) and b (m×n).
// c must be zero on entry. Loop order i→k→j keeps b and c accesses contiguous.
func matmulKernel[T DType](c, a, b []T, l, m, n int) {
	for i := 0; i < l; i++ {
		rowA := a[i*m : (i+1)*m]
		rowC := c[i*n : (i+1)*n]
		for k, av := range rowA {
			rowB := b[k*n : (k+1)*n]
			for j, bv := range rowB {
				rowC[j] += av * bv
			}
		}
	}
}
