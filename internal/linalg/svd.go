package linalg

import (
	"cmp"
	"math"
	"slices"

	"github.com/born-ml/linalg/internal/tensor"
)

// SVDResult holds a thin singular value decomposition A = U·diag(S)·Vᵀ.
// For an n×m input with k = min(n, m):
type SVDResult struct {
	U *tensor.Tensor[float64] // [..., n, k]
	S *tensor.Tensor[float64] // [..., k], non-negative, descending
	V *tensor.Tensor[float64] // [..., m, k]
}

// SVD decomposes every matrix of a by one-sided cyclic Jacobi rotations.
//
// Sweeps stop once the largest normalized inner product between two columns
// is at most eps, or after the sweep budget (WithMaxIterations). Singular values
// are sorted in descending order with the columns of U and V permuted to match.
func SVD(a *tensor.Tensor[float64], eps float64, opts ...Option) (*SVDResult, error) {
	r, err := newRunner(opSVD, a, false, gatherOptions(opts))
	if err != nil {
		return nil, err
	}
	n, m := r.dims()
	k := min(n, m)
	res := &SVDResult{U: r.output(n, k), S: r.output(k), V: r.output(m, k)}
	batches := r.mats.Len()

	err = r.run(func(i int, work []float64) error {
		u, s, v, ok, off := svdDecompose(work, n, m, eps, r.opts.maxIterations)
		if err := r.converged(i, ok, off); err != nil {
			return err
		}
		if err := store(res.U, batches, i, u); err != nil {
			return err
		}
		if err := store(res.S, batches, i, s); err != nil {
			return err
		}
		return store(res.V, batches, i, v)
	})
	return finish(r, res, err)
}

// svdDecompose returns U (n×k), S (k) and V (m×k) for the n×m matrix a,
// sorted by descending singular value. a is overwritten.
func svdDecompose(a []float64, n, m int, eps float64, maxSweeps int) (u, s, v []float64, ok bool, off float64) {
	if n < m {
		// Aᵀ = U'·S·V'ᵀ gives A = V'·S·U'ᵀ.
		at := transpose(a, n, m)
		vt, s, ut, ok, off := svdDecompose(at, m, n, eps, maxSweeps)
		return ut, s, vt, ok, off
	}

	u = a
	v = make([]float64, m*m)
	for i := range m {
		v[i*m+i] = 1
	}
	ok, off = jacobiOrthogonalize(u, v, n, m, eps, maxSweeps)

	s = make([]float64, m)
	for j := range m {
		norm := 0.0
		for i := range n {
			norm = math.Hypot(norm, u[i*m+j])
		}
		s[j] = norm
		if norm == 0 {
			continue
		}
		for i := range n {
			u[i*m+j] /= norm
		}
	}

	order := make([]int, m)
	for j := range order {
		order[j] = j
	}
	slices.SortStableFunc(order, func(x, y int) int { return cmp.Compare(s[y], s[x]) })
	return permuteColumns(u, n, m, order), permuted(s, order), permuteColumns(v, m, m, order), ok, off
}

// negligible is the squared norm ratio below which a column counts as zero
// next to another; such pairs are never rotated.
const negligible = 1e-28

// jacobiOrthogonalize rotates column pairs of u (n×m) until they are mutually
// orthogonal, applying the same rotations to v (m×m). It reports whether the
// largest normalized inner product fell to eps or below, and that value.
func jacobiOrthogonalize(u, v []float64, n, m int, eps float64, maxSweeps int) (bool, float64) {
	off := 0.0
	for range maxSweeps {
		off = 0
		for p := 0; p < m-1; p++ {
			for q := p + 1; q < m; q++ {
				var alpha, beta, gamma float64
				for i := range n {
					up, uq := u[i*m+p], u[i*m+q]
					alpha += up * up
					beta += uq * uq
					gamma += up * uq
				}
				if gamma == 0 || beta <= negligible*alpha || alpha <= negligible*beta {
					continue
				}
				off = max(off, math.Abs(gamma)/math.Sqrt(alpha*beta))

				zeta := (beta - alpha) / (2 * gamma)
				t := math.Copysign(1, zeta) / (math.Abs(zeta) + math.Sqrt(1+zeta*zeta))
				c := 1 / math.Sqrt(1+t*t)
				sn := c * t
				rotateColumns(u, n, m, p, q, c, sn)
				rotateColumns(v, m, m, p, q, c, sn)
			}
		}
		if off <= eps {
			return true, off
		}
	}
	return false, off
}

// rotateColumns applies a Givens rotation to columns p and q of a rows×cols matrix.
func rotateColumns(a []float64, rows, cols, p, q int, c, s float64) {
	for i := range rows {
		ap, aq := a[i*cols+p], a[i*cols+q]
		a[i*cols+p] = c*ap - s*aq
		a[i*cols+q] = s*ap + c*aq
	}
}

func transpose(a []float64, rows, cols int) []float64 {
	out := make([]float64, rows*cols)
	for i := range rows {
		for j := range cols {
			out[j*rows+i] = a[i*cols+j]
		}
	}
	return out
}

// permuteColumns returns a copy of a (rows×cols) whose column j is a's column order[j].
func permuteColumns(a []float64, rows, cols int, order []int) []float64 {
	out := make([]float64, rows*cols)
	for i := range rows {
		for j, src := range order {
			out[i*cols+j] = a[i*cols+src]
		}
	}
	return out
}

func permuted(s []float64, order []int) []float64 {
	out := make([]float64, len(s))
	for j, src := range order {
		out[j] = s[src]
	}
	return out
}
