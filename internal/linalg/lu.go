package linalg

import (
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/linalg/internal/tensor"
)

// LUResult holds a packed LU factorization with partial pivoting.
//
// LU stores the strictly lower part of the unit lower-triangular L below the
// diagonal and U on and above it. Pivots[..., i] is the source row of A that
// ended up at row i, so that P·A = L·U with P[i, Pivots[i]] = 1.
type LUResult struct {
	LU     *tensor.Tensor[float64] // [..., n, n]
	Pivots *tensor.Tensor[int]     // [..., n]
}

// LU factorizes every square matrix of a by Doolittle elimination with
// partial pivoting (largest magnitude in the column).
//
// A batch element fails with ErrSingular when the best pivot magnitude at
// some step is below eps.
func LU(a *tensor.Tensor[float64], eps float64, opts ...Option) (*LUResult, error) {
	r, err := newRunner(opLU, a, true, gatherOptions(opts))
	if err != nil {
		return nil, err
	}
	n, _ := r.dims()
	batches := r.mats.Len()
	res := &LUResult{
		LU:     r.output(n, n),
		Pivots: allocBatched[int](r.eng, r.mats.Shape(), n),
	}

	err = r.run(func(i int, work []float64) error {
		perm := make([]int, n)
		if _, err := luDecompose(work, perm, n, eps); err != nil {
			return err
		}
		if err := store(res.LU, batches, i, work); err != nil {
			return err
		}
		return store(res.Pivots, batches, i, perm)
	})
	return finish(r, res, err)
}

// LUPivot unpacks an LU factorization into P, L and U with P·A = L·U.
// P is a permutation matrix, L is unit lower-triangular and U is upper-triangular.
func LUPivot(lu *LUResult, opts ...Option) (p, l, u *tensor.Tensor[float64], err error) {
	if lu == nil || lu.LU == nil || lu.Pivots == nil {
		return nil, nil, nil, linalgErrorf(opLUPivot,
			fmt.Errorf("%w: incomplete LU factorization", tensor.ErrShapeMismatch))
	}
	r, err := newRunner(opLUPivot, lu.LU, true, gatherOptions(opts))
	if err != nil {
		return nil, nil, nil, err
	}
	n, _ := r.dims()
	pivots, err := tensor.Vectors(lu.Pivots)
	if err != nil {
		return nil, nil, nil, linalgErrorf(opLUPivot, err)
	}
	if pivots.Len() != r.mats.Len() || pivots.Inner()[0] != n {
		return nil, nil, nil, linalgErrorf(opLUPivot,
			fmt.Errorf("%w: pivots %v for factors %v", tensor.ErrShapeMismatch, lu.Pivots.Shape(), lu.LU.Shape()))
	}

	batches := r.mats.Len()
	p, l, u = r.output(n, n), r.output(n, n), r.output(n, n)
	err = r.run(func(i int, packed []float64) error {
		perm, err := pivots.At(i)
		if err != nil {
			return err
		}
		pm, lm, um := make([]float64, n*n), make([]float64, n*n), make([]float64, n*n)
		for row, src := range perm.Data() {
			if src < 0 || src >= n {
				return fmt.Errorf("%w: pivot %d at row %d", tensor.ErrIndexOutOfRange, src, row)
			}
			pm[row*n+src] = 1
		}
		for row := range n {
			for col := range n {
				v := packed[row*n+col]
				switch {
				case col < row:
					lm[row*n+col] = v
				case col == row:
					lm[row*n+col] = 1
					um[row*n+col] = v
				default:
					um[row*n+col] = v
				}
			}
		}
		if err := store(p, batches, i, pm); err != nil {
			return err
		}
		if err := store(l, batches, i, lm); err != nil {
			return err
		}
		return store(u, batches, i, um)
	})
	if err != nil && r.opts.failFast {
		return nil, nil, nil, linalgErrorf(opLUPivot, err)
	}
	if err != nil {
		err = linalgErrorf(opLUPivot, err)
	}
	return p, l, u, err
}

// Det computes the determinant of every square matrix of a.
//
// The result has a's batch shape (rank 0 for a single matrix). A matrix whose
// LU pivot falls below eps has determinant 0; that is a result, not an error.
func Det(a *tensor.Tensor[float64], eps float64, opts ...Option) (*tensor.Tensor[float64], error) {
	r, err := newRunner(opDet, a, true, gatherOptions(opts))
	if err != nil {
		return nil, err
	}
	n, _ := r.dims()
	out := allocBatched[float64](r.eng, r.mats.Shape())
	batches := r.mats.Len()

	err = r.run(func(i int, work []float64) error {
		sign, err := luDecompose(work, make([]int, n), n, eps)
		det := 0.0
		switch {
		case errors.Is(err, ErrSingular):
		case err != nil:
			return err
		default:
			det = sign
			for k := range n {
				det *= work[k*n+k]
			}
		}
		return store(out, batches, i, []float64{det})
	})
	return finish(r, out, err)
}

// Inv inverts every square matrix of a by LU forward and back substitution
// against the identity. Singular batch elements fail with ErrSingular.
func Inv(a *tensor.Tensor[float64], eps float64, opts ...Option) (*tensor.Tensor[float64], error) {
	r, err := newRunner(opInv, a, true, gatherOptions(opts))
	if err != nil {
		return nil, err
	}
	n, _ := r.dims()
	out := r.output(n, n)
	batches := r.mats.Len()

	err = r.run(func(i int, work []float64) error {
		perm := make([]int, n)
		if _, err := luDecompose(work, perm, n, eps); err != nil {
			return err
		}
		mv, err := lease(out, batches, i)
		if err != nil {
			return err
		}
		defer mv.Release()

		inv := mv.Data()
		col := make([]float64, n)
		for j := range n {
			// Column j of P·I.
			for row, src := range perm {
				if src == j {
					col[row] = 1
				} else {
					col[row] = 0
				}
			}
			luSubstitute(work, col, n)
			for row := range n {
				inv[row*n+j] = col[row]
			}
		}
		return nil
	})
	return finish(r, out, err)
}

// Solve solves A·X = B for every matrix of a.
//
// b is either [..., n] (one right-hand side per matrix) or [..., n, k].
// The batch axes of a and b are broadcast against each other.
func Solve(a, b *tensor.Tensor[float64], eps float64, opts ...Option) (*tensor.Tensor[float64], error) {
	o := gatherOptions(opts)
	if a.Rank() < 2 {
		return nil, linalgErrorf(opSolve, fmt.Errorf("%w: need rank >= 2, got %d", tensor.ErrRankMismatch, a.Rank()))
	}
	aShape, bShape := a.Shape(), b.Shape()
	n := aShape[len(aShape)-1]
	if aShape[len(aShape)-2] != n {
		return nil, linalgErrorf(opSolve, fmt.Errorf("%w: got %d×%d", ErrNotSquare, aShape[len(aShape)-2], n))
	}

	// A rank-1 b, or one exactly a rank lower whose last axis matches, holds vectors.
	vector := b.Rank() == 1 || (b.Rank() == a.Rank()-1 && bShape[len(bShape)-1] == n)
	var bInner tensor.Shape
	switch {
	case vector:
		bInner = bShape[len(bShape)-1:]
	case b.Rank() >= 2:
		bInner = bShape[len(bShape)-2:]
	default:
		return nil, linalgErrorf(opSolve, fmt.Errorf("%w: right-hand side has rank %d", tensor.ErrRankMismatch, b.Rank()))
	}
	if bInner[0] != n {
		return nil, linalgErrorf(opSolve, fmt.Errorf("%w: A is %d×%d, B has %d rows", tensor.ErrDimensionMismatch, n, n, bInner[0]))
	}

	batch, err := tensor.Resolve(aShape[:len(aShape)-2], bShape[:len(bShape)-len(bInner)])
	if err != nil {
		return nil, linalgErrorf(opSolve, err)
	}
	if a, err = broadcastTo(a, append(batch.Clone(), n, n)); err != nil {
		return nil, linalgErrorf(opSolve, err)
	}
	if b, err = broadcastTo(b, append(batch.Clone(), bInner...)); err != nil {
		return nil, linalgErrorf(opSolve, err)
	}

	r, err := newRunner(opSolve, a, true, o)
	if err != nil {
		return nil, err
	}
	rhs := 1
	if !vector {
		rhs = bInner[1]
	}
	out := allocBatched[float64](r.eng, batch, bInner...)
	batches := r.mats.Len()
	bData := b.Data()

	err = r.run(func(i int, work []float64) error {
		perm := make([]int, n)
		if _, err := luDecompose(work, perm, n, eps); err != nil {
			return err
		}
		mv, err := lease(out, batches, i)
		if err != nil {
			return err
		}
		defer mv.Release()

		x := mv.Data()
		src := bData[i*n*rhs : (i+1)*n*rhs]
		col := make([]float64, n)
		for j := range rhs {
			for row, from := range perm {
				col[row] = src[from*rhs+j]
			}
			luSubstitute(work, col, n)
			for row := range n {
				x[row*rhs+j] = col[row]
			}
		}
		return nil
	})
	return finish(r, out, err)
}

// broadcastTo returns t unchanged when it already has shape, else a
// materialized broadcast copy.
func broadcastTo(t *tensor.Tensor[float64], shape tensor.Shape) (*tensor.Tensor[float64], error) {
	if t.Shape().Equal(shape) {
		return t, nil
	}
	return tensor.Materialize(t, shape)
}

// luDecompose factorizes the n×n row-major matrix a in place into packed L\U
// and fills perm. It returns the sign of the row permutation.
func luDecompose(a []float64, perm []int, n int, eps float64) (float64, error) {
	for i := range perm {
		perm[i] = i
	}
	sign := 1.0
	for k := range n {
		p, best := k, math.Abs(a[k*n+k])
		for row := k + 1; row < n; row++ {
			if v := math.Abs(a[row*n+k]); v > best {
				p, best = row, v
			}
		}
		if best < eps || math.IsNaN(best) {
			return 0, fmt.Errorf("%w: pivot %g at step %d below %g", ErrSingular, best, k, eps)
		}
		if p != k {
			rowK, rowP := a[k*n:(k+1)*n], a[p*n:(p+1)*n]
			for c := range rowK {
				rowK[c], rowP[c] = rowP[c], rowK[c]
			}
			perm[k], perm[p] = perm[p], perm[k]
			sign = -sign
		}

		pivot := a[k*n+k]
		for row := k + 1; row < n; row++ {
			f := a[row*n+k] / pivot
			a[row*n+k] = f
			if f == 0 {
				continue
			}
			for c := k + 1; c < n; c++ {
				a[row*n+c] -= f * a[k*n+c]
			}
		}
	}
	return sign, nil
}

// luSubstitute solves L·U·x = b in place, where lu is the packed factor.
// b must already be permuted.
func luSubstitute(lu, b []float64, n int) {
	for i := range n {
		s := b[i]
		for k := 0; k < i; k++ {
			s -= lu[i*n+k] * b[k]
		}
		b[i] = s
	}
	for i := n - 1; i >= 0; i-- {
		s := b[i]
		for k := i + 1; k < n; k++ {
			s -= lu[i*n+k] * b[k]
		}
		b[i] = s / lu[i*n+i]
	}
}
