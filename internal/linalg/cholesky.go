package linalg

import (
	"fmt"
	"math"

	"github.com/born-ml/linalg/internal/tensor"
)

// Cholesky factorizes every symmetric positive-definite matrix of a as
// A = L·Lᵀ and returns the lower-triangular L.
//
// Batch elements fail with ErrNotSymmetric when |A[i,j] - A[j,i]| > eps and
// with ErrNotPositiveDefinite when a diagonal entry of L would not be positive.
func Cholesky(a *tensor.Tensor[float64], eps float64, opts ...Option) (*tensor.Tensor[float64], error) {
	r, err := newRunner(opCholesky, a, true, gatherOptions(opts))
	if err != nil {
		return nil, err
	}
	n, _ := r.dims()
	out := r.output(n, n)
	batches := r.mats.Len()

	err = r.run(func(i int, work []float64) error {
		if err := checkSymmetric(work, n, eps); err != nil {
			return err
		}
		mv, err := lease(out, batches, i)
		if err != nil {
			return err
		}
		defer mv.Release()
		return choleskyDecompose(work, mv.Data(), n)
	})
	return finish(r, out, err)
}

// checkSymmetric compares A with its transpose elementwise.
func checkSymmetric(a []float64, n int, eps float64) error {
	for i := range n {
		for j := i + 1; j < n; j++ {
			if d := math.Abs(a[i*n+j] - a[j*n+i]); d > eps || math.IsNaN(d) {
				return fmt.Errorf("%w: |a[%d,%d] - a[%d,%d]| = %g", ErrNotSymmetric, i, j, j, i, d)
			}
		}
	}
	return nil
}

// choleskyDecompose writes the Cholesky factor of a into l (both n×n row-major).
func choleskyDecompose(a, l []float64, n int) error {
	for j := range n {
		rowJ := l[j*n : j*n+j]
		s := a[j*n+j]
		for _, v := range rowJ {
			s -= v * v
		}
		if !(s > 0) {
			return fmt.Errorf("%w: pivot %g at column %d", ErrNotPositiveDefinite, s, j)
		}
		d := math.Sqrt(s)
		l[j*n+j] = d

		for i := j + 1; i < n; i++ {
			rowI := l[i*n : i*n+j]
			s := a[i*n+j]
			for k, v := range rowJ {
				s -= rowI[k] * v
			}
			l[i*n+j] = s / d
		}
	}
	return nil
}
