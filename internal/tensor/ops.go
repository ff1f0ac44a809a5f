package tensor

import (
	"fmt"
	"math"

	"github.com/born-ml/linalg/internal/parallel"
)

const (
	opAdd = "Add"
	opSub = "Sub"
	opMul = "Mul"
	opDiv = "Div"
)

// binaryOp broadcasts a and b to their common shape and applies f per element
// into a freshly allocated result.
func binaryOp[T DType](op string, a, b *Tensor[T], f func(x, y T) T) (*Tensor[T], error) {
	outShape, err := Resolve(a.shape, b.shape)
	if err != nil {
		return nil, tensorErrorf(op, fmt.Errorf("%w: %w", ErrShapeMismatch, err))
	}
	ea, err := expandTo(a, outShape)
	if err != nil {
		return nil, tensorErrorf(op, err)
	}
	eb, err := expandTo(b, outShape)
	if err != nil {
		return nil, tensorErrorf(op, err)
	}

	result := alloc[T](a.eng, outShape)
	dst, x, y := result.Data(), ea.Data(), eb.Data()
	parallel.ForRange(len(dst), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = f(x[i], y[i])
		}
	}, a.eng.parallel)
	return result, nil
}

// unaryOp applies f per element into a freshly allocated result.
func unaryOp[T DType](t *Tensor[T], f func(x T) T) *Tensor[T] {
	result := alloc[T](t.eng, t.shape)
	dst, src := result.Data(), t.Data()
	parallel.ForRange(len(dst), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = f(src[i])
		}
	}, t.eng.parallel)
	return result
}

// Add performs element-wise addition with broadcasting.
func Add[T DType](a, b *Tensor[T]) (*Tensor[T], error) {
	return binaryOp(opAdd, a, b, func(x, y T) T { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func Sub[T DType](a, b *Tensor[T]) (*Tensor[T], error) {
	return binaryOp(opSub, a, b, func(x, y T) T { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func Mul[T DType](a, b *Tensor[T]) (*Tensor[T], error) {
	return binaryOp(opMul, a, b, func(x, y T) T { return x * y })
}

// Div performs element-wise division with broadcasting.
// Integer kinds fail with ErrDivideByZero instead of panicking.
func Div[T DType](a, b *Tensor[T]) (*Tensor[T], error) {
	if !a.DType().IsFloat() && hasZero(b.Data()) {
		return nil, tensorErrorf(opDiv, ErrDivideByZero)
	}
	return binaryOp(opDiv, a, b, func(x, y T) T { return x / y })
}

func hasZero[T DType](data []T) bool {
	for _, v := range data {
		if v == 0 {
			return true
		}
	}
	return false
}

// Neg returns -t.
func Neg[T DType](t *Tensor[T]) *Tensor[T] {
	return unaryOp(t, func(x T) T { return -x })
}

// AddScalar returns t + s.
func AddScalar[T DType](t *Tensor[T], s T) *Tensor[T] {
	return unaryOp(t, func(x T) T { return x + s })
}

// SubScalar returns t - s.
func SubScalar[T DType](t *Tensor[T], s T) *Tensor[T] {
	return unaryOp(t, func(x T) T { return x - s })
}

// ScalarSub returns s - t.
func ScalarSub[T DType](s T, t *Tensor[T]) *Tensor[T] {
	return unaryOp(t, func(x T) T { return s - x })
}

// MulScalar returns t * s.
func MulScalar[T DType](t *Tensor[T], s T) *Tensor[T] {
	return unaryOp(t, func(x T) T { return x * s })
}

// DivScalar returns t / s.
func DivScalar[T DType](t *Tensor[T], s T) (*Tensor[T], error) {
	if s == 0 && !t.DType().IsFloat() {
		return nil, tensorErrorf(opDiv, ErrDivideByZero)
	}
	return unaryOp(t, func(x T) T { return x / s }), nil
}

// ScalarDiv returns s / t.
func ScalarDiv[T DType](s T, t *Tensor[T]) (*Tensor[T], error) {
	if !t.DType().IsFloat() && hasZero(t.Data()) {
		return nil, tensorErrorf(opDiv, ErrDivideByZero)
	}
	return unaryOp(t, func(x T) T { return s / x }), nil
}

// Sum returns the sum of all elements.
func Sum[T DType](t *Tensor[T]) T {
	var acc T
	for _, v := range t.Data() {
		acc += v
	}
	return acc
}

// AllClose reports whether a and b have equal shapes and every pair of
// elements differs by at most tol.
func AllClose(a, b *Tensor[float64], tol float64) bool {
	if !a.shape.Equal(b.shape) {
		return false
	}
	x, y := a.Data(), b.Data()
	for i := range x {
		if math.Abs(x[i]-y[i]) > tol || math.IsNaN(x[i]) != math.IsNaN(y[i]) {
			return false
		}
	}
	return true
}

// Add returns t + o with broadcasting.
func (t *Tensor[T]) Add(o *Tensor[T]) (*Tensor[T], error) { return Add(t, o) }

// Sub returns t - o with broadcasting.
func (t *Tensor[T]) Sub(o *Tensor[T]) (*Tensor[T], error) { return Sub(t, o) }

// Mul returns t * o (element-wise) with broadcasting.
func (t *Tensor[T]) Mul(o *Tensor[T]) (*Tensor[T], error) { return Mul(t, o) }

// Div returns t / o (element-wise) with broadcasting.
func (t *Tensor[T]) Div(o *Tensor[T]) (*Tensor[T], error) { return Div(t, o) }

// Neg returns -t.
func (t *Tensor[T]) Neg() *Tensor[T] { return Neg(t) }

// Dot returns the batched matrix product t · o.
func (t *Tensor[T]) Dot(o *Tensor[T]) (*Tensor[T], error) { return Dot(t, o) }
