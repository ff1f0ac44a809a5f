package linalg

import (
	"context"
	"fmt"

	"github.com/born-ml/linalg/internal/parallel"
	"github.com/born-ml/linalg/internal/tensor"
)

// kernel factorizes batch element i. a is a private row-major copy of the
// input matrix that the kernel may overwrite.
type kernel func(i int, a []float64) error

// runner maps a kernel over every matrix of a batched input.
type runner struct {
	op   string
	eng  *tensor.Engine
	mats *tensor.Batches[float64]
	opts options
}

// newRunner validates that a holds (batches of) square or rectangular
// matrices and prepares a runner over them.
func newRunner(op string, a *tensor.Tensor[float64], square bool, opts options) (*runner, error) {
	mats, err := tensor.Matrices(a)
	if err != nil {
		return nil, linalgErrorf(op, err)
	}
	inner := mats.Inner()
	if square && inner[0] != inner[1] {
		return nil, linalgErrorf(op, fmt.Errorf("%w: got %d×%d", ErrNotSquare, inner[0], inner[1]))
	}
	return &runner{op: op, eng: a.Engine(), mats: mats, opts: opts}, nil
}

// dims returns the rows and columns of each batch element.
func (r *runner) dims() (int, int) {
	inner := r.mats.Inner()
	return inner[0], inner[1]
}

// output allocates a zeroed result with the batch shape followed by inner.
func (r *runner) output(inner ...int) *tensor.Tensor[float64] {
	return allocBatched[float64](r.eng, r.mats.Shape(), inner...)
}

func allocBatched[T tensor.DType](eng *tensor.Engine, batch tensor.Shape, inner ...int) *tensor.Tensor[T] {
	shape := append(batch.Clone(), inner...)
	t, err := tensor.Zeros[T](eng, shape)
	if err != nil {
		// Batch and inner sizes come from a validated tensor.
		panic(err)
	}
	return t
}

// run executes k on every batch element under the engine's parallel config.
// Failures are wrapped in *BatchError. Without fail-fast every element runs
// and the errors are joined in batch order.
func (r *runner) run(k kernel) error {
	logger := r.eng.Logger()
	return parallel.ForEach(context.Background(), r.mats.Len(), func(_ context.Context, i int) error {
		m, err := r.mats.At(i)
		if err != nil {
			return err
		}
		if err := k(i, m.ToFlat()); err != nil {
			idx, _ := r.mats.Index(i)
			logger.Debug("batch element failed", "op", r.op, "batch", i, "index", idx, "err", err)
			return &BatchError{Op: r.op, Index: i, Batch: idx, Err: err}
		}
		return nil
	}, r.eng.Parallel(), r.opts.failFast)
}

// finish applies the failure policy to a batched result.
func finish[R any](r *runner, result R, err error) (R, error) {
	if err == nil {
		return result, nil
	}
	if r.opts.failFast {
		var zero R
		return zero, linalgErrorf(r.op, err)
	}
	return result, linalgErrorf(r.op, err)
}

// converged applies the convergence policy after a Jacobi iteration.
func (r *runner) converged(i int, ok bool, off float64) error {
	if ok {
		return nil
	}
	if r.opts.strict {
		return fmt.Errorf("%w: off-diagonal %g after %d sweeps", ErrNoConvergence, off, r.opts.maxIterations)
	}
	r.eng.Logger().Warn("jacobi iteration did not converge",
		"op", r.op, "batch", i, "sweeps", r.opts.maxIterations, "off", off)
	return nil
}

// lease acquires exclusive write access to batch element i of out.
func lease[T tensor.DType](out *tensor.Tensor[T], batches, i int) (*tensor.MutView[T], error) {
	step := out.NumElements() / batches
	v := out.View()
	return v.Buffer().Acquire(v.Offset()+i*step, step)
}

// store copies src into batch element i of out through a lease.
func store[T tensor.DType](out *tensor.Tensor[T], batches, i int, src []T) error {
	mv, err := lease(out, batches, i)
	if err != nil {
		return err
	}
	defer mv.Release()
	copy(mv.Data(), src)
	return nil
}
