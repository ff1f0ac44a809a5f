package linalg

import (
	"math"

	"github.com/born-ml/linalg/internal/tensor"
)

// QRResult holds an orthogonal-triangular factorization A = Q·R.
type QRResult struct {
	Q *tensor.Tensor[float64] // [..., n, n], orthogonal
	R *tensor.Tensor[float64] // [..., n, n], upper-triangular with non-negative diagonal
}

// QR factorizes every square matrix of a with Householder reflections.
func QR(a *tensor.Tensor[float64], opts ...Option) (*QRResult, error) {
	r, err := newRunner(opQR, a, true, gatherOptions(opts))
	if err != nil {
		return nil, err
	}
	n, _ := r.dims()
	res := &QRResult{Q: r.output(n, n), R: r.output(n, n)}
	batches := r.mats.Len()

	err = r.run(func(i int, work []float64) error {
		q := householderQR(work, n)
		if err := store(res.Q, batches, i, q); err != nil {
			return err
		}
		return store(res.R, batches, i, work)
	})
	return finish(r, res, err)
}

// householderQR reduces the n×n matrix a in place to R and returns Q.
//
// Stage 1: for each column k apply H_k = I - 2·v·vᵀ/(vᵀ·v) to zero a[k+1:, k],
// accumulating Q = H_0·H_1·…·H_{n-2}.
// Stage 2: flip signs so that diag(R) >= 0.
func householderQR(a []float64, n int) []float64 {
	q := make([]float64, n*n)
	for i := range n {
		q[i*n+i] = 1
	}
	v := make([]float64, n)

	for k := 0; k < n-1; k++ {
		norm := 0.0
		for i := k; i < n; i++ {
			norm = math.Hypot(norm, a[i*n+k])
		}
		if norm == 0 {
			continue
		}
		alpha := -norm
		if a[k*n+k] < 0 {
			alpha = norm
		}

		vv := v[:n-k]
		for i := range vv {
			vv[i] = a[(k+i)*n+k]
		}
		vv[0] -= alpha
		vnorm2 := 0.0
		for _, x := range vv {
			vnorm2 += x * x
		}
		if vnorm2 == 0 {
			continue
		}

		// R ← H·R
		for c := k; c < n; c++ {
			dot := 0.0
			for i, x := range vv {
				dot += x * a[(k+i)*n+c]
			}
			f := 2 * dot / vnorm2
			for i, x := range vv {
				a[(k+i)*n+c] -= f * x
			}
		}
		// Q ← Q·H
		for row := range n {
			dot := 0.0
			for i, x := range vv {
				dot += q[row*n+k+i] * x
			}
			f := 2 * dot / vnorm2
			for i, x := range vv {
				q[row*n+k+i] -= f * x
			}
		}
		for i := k + 1; i < n; i++ {
			a[i*n+k] = 0
		}
	}

	for k := range n {
		if a[k*n+k] >= 0 {
			continue
		}
		for c := k; c < n; c++ {
			a[k*n+c] = -a[k*n+c]
		}
		for row := range n {
			q[row*n+k] = -q[row*n+k]
		}
	}
	return q
}
