package linalg

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/born-ml/linalg/internal/tensor"
)

// EigenResult holds the eigendecomposition A = V·diag(Values)·Vᵀ of a
// symmetric matrix.
type EigenResult struct {
	Values  *tensor.Tensor[float64] // [..., n], ascending
	Vectors *tensor.Tensor[float64] // [..., n, n], column j pairs with Values[j]
}

// SymEig computes eigenvalues and orthonormal eigenvectors of every symmetric
// matrix of a. Batch elements fail with ErrNotSymmetric when
// |A[i,j] - A[j,i]| > eps. The algorithm is chosen by WithEigenStrategy.
func SymEig(a *tensor.Tensor[float64], eps float64, opts ...Option) (*EigenResult, error) {
	r, err := newRunner(opSymEig, a, true, gatherOptions(opts))
	if err != nil {
		return nil, err
	}
	n, _ := r.dims()
	res := &EigenResult{Values: r.output(n), Vectors: r.output(n, n)}
	batches := r.mats.Len()

	err = r.run(func(i int, work []float64) error {
		if err := checkSymmetric(work, n, eps); err != nil {
			return err
		}

		var (
			values, vectors []float64
			ok              bool
			off             float64
		)
		switch r.opts.eigen {
		case EigenJacobi:
			values, vectors, ok, off = jacobiEigen(work, n, eps, r.opts.maxIterations)
		case EigenFromSVD:
			values, vectors, ok, off = svdEigen(work, n, eps, r.opts.maxIterations)
		default:
			return fmt.Errorf("linalg: unknown eigen strategy %d", r.opts.eigen)
		}
		if err := r.converged(i, ok, off); err != nil {
			return err
		}

		values, vectors = sortEigen(values, vectors, n)
		if err := store(res.Values, batches, i, values); err != nil {
			return err
		}
		return store(res.Vectors, batches, i, vectors)
	})
	return finish(r, res, err)
}

// jacobiEigen diagonalizes the symmetric n×n matrix a in place by cyclic
// Jacobi rotations. It stops once no off-diagonal magnitude exceeds eps.
func jacobiEigen(a []float64, n int, eps float64, maxSweeps int) (values, vectors []float64, ok bool, off float64) {
	v := make([]float64, n*n)
	for i := range n {
		v[i*n+i] = 1
	}

	for range maxSweeps {
		off = offDiagonalMax(a, n)
		if off <= eps {
			ok = true
			break
		}
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				apq := a[p*n+q]
				if apq == 0 {
					continue
				}
				theta := (a[q*n+q] - a[p*n+p]) / (2 * apq)
				t := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				c := 1 / math.Sqrt(t*t+1)
				s := t * c

				// A ← Jᵀ·A·J
				rotateColumns(a, n, n, p, q, c, s)
				rotateRows(a, n, p, q, c, s)
				rotateColumns(v, n, n, p, q, c, s)
			}
		}
	}
	if !ok {
		off = offDiagonalMax(a, n)
		ok = off <= eps
	}

	values = make([]float64, n)
	for i := range n {
		values[i] = a[i*n+i]
	}
	return values, v, ok, off
}

// svdEigen derives eigenpairs of the symmetric matrix a from its SVD.
//
// For symmetric A = U·S·Vᵀ, each diagonal entry of Uᵀ·V is ±1 up to rounding;
// it is snapped to its sign and gives the sign of the eigenvalue paired with
// the column of V.
func svdEigen(a []float64, n int, eps float64, maxSweeps int) (values, vectors []float64, ok bool, off float64) {
	u, s, v, ok, off := svdDecompose(a, n, n, eps, maxSweeps)

	values = make([]float64, n)
	for j := range n {
		d := 0.0
		for i := range n {
			d += u[i*n+j] * v[i*n+j]
		}
		values[j] = s[j]
		if d < 0 {
			values[j] = -s[j]
		}
	}
	return values, v, ok, off
}

// rotateRows applies a Givens rotation to rows p and q of an n×n matrix.
func rotateRows(a []float64, n, p, q int, c, s float64) {
	rowP, rowQ := a[p*n:(p+1)*n], a[q*n:(q+1)*n]
	for k := range n {
		ap, aq := rowP[k], rowQ[k]
		rowP[k] = c*ap - s*aq
		rowQ[k] = s*ap + c*aq
	}
}

func offDiagonalMax(a []float64, n int) float64 {
	m := 0.0
	for i := range n {
		for j := range n {
			if i != j {
				m = max(m, math.Abs(a[i*n+j]))
			}
		}
	}
	return m
}

// sortEigen orders eigenvalues ascending and permutes eigenvector columns to match.
func sortEigen(values, vectors []float64, n int) ([]float64, []float64) {
	order := make([]int, n)
	for j := range order {
		order[j] = j
	}
	slices.SortStableFunc(order, func(x, y int) int { return cmp.Compare(values[x], values[y]) })
	return permuted(values, order), permuteColumns(vectors, n, n, order)
}
