// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/born-ml/linalg/internal/parallel"
	"github.com/born-ml/linalg/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor element kinds.
// Supported types: float32, float64, int, int32, int64.
type DType = tensor.DType

// DataType identifies the element kind of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int     DataType = tensor.Int
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// StrideCache interns row-major strides per distinct shape.
type StrideCache = tensor.StrideCache

// Engine owns the stride cache, parallel configuration and logger shared by
// the tensors created on it.
type Engine = tensor.Engine

// EngineOption configures an Engine.
type EngineOption = tensor.EngineOption

// Buffer is an owning flat store of elements.
type Buffer[T DType] = tensor.Buffer[T]

// View is a non-owning window into a Buffer.
type View[T DType] = tensor.View[T]

// MutView is a View leased for exclusive mutation.
type MutView[T DType] = tensor.MutView[T]

// Tensor is a dense row-major tensor.
//
// Example:
//
//	eng := tensor.NewEngine()
//	t, _ := tensor.FromFlat(eng, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	v, _ := t.At(1, 2) // 6
type Tensor[T DType] = tensor.Tensor[T]

// Tensor1D is a zero-copy rank-1 specialization of Tensor.
type Tensor1D[T DType] = tensor.Tensor1D[T]

// Tensor2D is a zero-copy rank-2 specialization of Tensor.
type Tensor2D[T DType] = tensor.Tensor2D[T]

// Batches walks the trailing matrices or vectors of a tensor.
type Batches[T DType] = tensor.Batches[T]

// Errors returned by tensor operations.
var (
	ErrShapeMismatch         = tensor.ErrShapeMismatch
	ErrBroadcastIncompatible = tensor.ErrBroadcastIncompatible
	ErrRankMismatch          = tensor.ErrRankMismatch
	ErrIndexOutOfRange       = tensor.ErrIndexOutOfRange
	ErrDimensionMismatch     = tensor.ErrDimensionMismatch
	ErrEmptyShape            = tensor.ErrEmptyShape
	ErrEmptyBuffer           = tensor.ErrEmptyBuffer
	ErrOverlappingView       = tensor.ErrOverlappingView
	ErrDivideByZero          = tensor.ErrDivideByZero
)

// Engine

// NewEngine creates an engine with a fresh stride cache, the default
// parallel configuration and a discarding logger.
func NewEngine(opts ...EngineOption) *Engine {
	return tensor.NewEngine(opts...)
}

// NewStrideCache creates an empty stride cache.
func NewStrideCache() *StrideCache {
	return tensor.NewStrideCache()
}

// WithStrideCache makes the engine use c.
var WithStrideCache = tensor.WithStrideCache

// WithParallel sets the engine's parallel configuration.
var WithParallel = tensor.WithParallel

// WithLogger sets the engine's logger.
var WithLogger = tensor.WithLogger

// ParallelConfig controls how kernels split work across goroutines.
type ParallelConfig = parallel.Config

// DefaultParallel returns a configuration sized from the CPU count.
func DefaultParallel() ParallelConfig {
	return parallel.DefaultConfig()
}

// SequentialParallel returns a configuration that never spawns goroutines.
func SequentialParallel() ParallelConfig {
	return parallel.Sequential()
}

// Strides

// Offset maps a multi-index to a linear offset.
func Offset(shape Shape, strides, index []int) (int, error) {
	return tensor.Offset(shape, strides, index)
}

// Index maps a linear offset back to its multi-index.
func Index(shape Shape, strides []int, offset int) ([]int, error) {
	return tensor.Index(shape, strides, offset)
}

// Buffers

// NewBuffer allocates a zeroed buffer of n elements.
func NewBuffer[T DType](n int) *Buffer[T] {
	return tensor.NewBuffer[T](n)
}

// BufferOf copies data into a new buffer.
func BufferOf[T DType](data []T) *Buffer[T] {
	return tensor.BufferOf(data)
}

// Creation functions

// FromFlat creates a tensor from a row-major element list.
//
// Example:
//
//	t, err := tensor.FromFlat(eng, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func FromFlat[T DType](eng *Engine, data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromFlat(eng, data, shape)
}

// FromRows creates a rank-2 tensor from equally long rows.
func FromRows[T DType](eng *Engine, rows [][]T) (*Tensor[T], error) {
	return tensor.FromRows(eng, rows)
}

// Scalar creates a rank-0 tensor.
func Scalar[T DType](eng *Engine, v T) *Tensor[T] {
	return tensor.Scalar(eng, v)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType](eng *Engine, shape Shape) (*Tensor[T], error) {
	return tensor.Zeros[T](eng, shape)
}

// Ones creates a tensor filled with ones.
func Ones[T DType](eng *Engine, shape Shape) (*Tensor[T], error) {
	return tensor.Ones[T](eng, shape)
}

// Full creates a tensor filled with value.
func Full[T DType](eng *Engine, value T, shape Shape) (*Tensor[T], error) {
	return tensor.Full(eng, value, shape)
}

// Eye creates an n×n identity matrix.
func Eye[T DType](eng *Engine, n int) (*Tensor[T], error) {
	return tensor.Eye[T](eng, n)
}

// Arange creates the vector 0, 1, ..., n-1.
func Arange[T DType](eng *Engine, n int) (*Tensor[T], error) {
	return tensor.Arange[T](eng, n)
}

// Rand creates a float64 tensor uniformly distributed in [-1, 1).
func Rand(eng *Engine, shape Shape, rng *rand.Rand) (*Tensor[float64], error) {
	return tensor.Rand(eng, shape, rng)
}

// Broadcasting

// Resolve computes the broadcast shape of shapes.
func Resolve(shapes ...Shape) (Shape, error) {
	return tensor.Resolve(shapes...)
}

// BroadcastShapes computes the broadcast shape of a and b and reports
// whether either needs broadcasting.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// Materialize broadcasts t to target into a fresh buffer.
func Materialize[T DType](t *Tensor[T], target Shape) (*Tensor[T], error) {
	return tensor.Materialize(t, target)
}

// Algebra

// Add performs element-wise addition with broadcasting.
func Add[T DType](a, b *Tensor[T]) (*Tensor[T], error) { return tensor.Add(a, b) }

// Sub performs element-wise subtraction with broadcasting.
func Sub[T DType](a, b *Tensor[T]) (*Tensor[T], error) { return tensor.Sub(a, b) }

// Mul performs element-wise multiplication with broadcasting.
func Mul[T DType](a, b *Tensor[T]) (*Tensor[T], error) { return tensor.Mul(a, b) }

// Div performs element-wise division with broadcasting.
func Div[T DType](a, b *Tensor[T]) (*Tensor[T], error) { return tensor.Div(a, b) }

// Neg returns -t.
func Neg[T DType](t *Tensor[T]) *Tensor[T] { return tensor.Neg(t) }

// AddScalar returns t + s.
func AddScalar[T DType](t *Tensor[T], s T) *Tensor[T] { return tensor.AddScalar(t, s) }

// SubScalar returns t - s.
func SubScalar[T DType](t *Tensor[T], s T) *Tensor[T] { return tensor.SubScalar(t, s) }

// ScalarSub returns s - t.
func ScalarSub[T DType](s T, t *Tensor[T]) *Tensor[T] { return tensor.ScalarSub(s, t) }

// MulScalar returns t * s.
func MulScalar[T DType](t *Tensor[T], s T) *Tensor[T] { return tensor.MulScalar(t, s) }

// DivScalar returns t / s.
func DivScalar[T DType](t *Tensor[T], s T) (*Tensor[T], error) { return tensor.DivScalar(t, s) }

// ScalarDiv returns s / t.
func ScalarDiv[T DType](s T, t *Tensor[T]) (*Tensor[T], error) { return tensor.ScalarDiv(s, t) }

// Sum returns the sum of all elements.
func Sum[T DType](t *Tensor[T]) T { return tensor.Sum(t) }

// AllClose reports whether a and b have equal shapes and elements within tol.
func AllClose(a, b *Tensor[float64], tol float64) bool { return tensor.AllClose(a, b, tol) }

// Dot performs a batched matrix product over the trailing two axes.
//
// Example:
//
//	c, _ := tensor.Dot(a, b) // [B, l, m] · [B, m, n] → [B, l, n]
func Dot[T DType](a, b *Tensor[T]) (*Tensor[T], error) { return tensor.Dot(a, b) }

// DiagonalEmbedding places the trailing vectors of entries on the diagonals
// of new matrices spanning axes dim1 and dim2.
func DiagonalEmbedding[T DType](entries *Tensor[T], offset, dim1, dim2 int) (*Tensor[T], error) {
	return tensor.DiagonalEmbedding(entries, offset, dim1, dim2)
}

// Trace sums the main diagonal of every trailing matrix.
func Trace[T DType](t *Tensor[T]) (*Tensor[T], error) { return tensor.Trace(t) }

// Batch iteration

// Matrices returns the batch of trailing matrices of t.
func Matrices[T DType](t *Tensor[T]) (*Batches[T], error) { return tensor.Matrices(t) }

// Vectors returns the batch of trailing vectors of t.
func Vectors[T DType](t *Tensor[T]) (*Batches[T], error) { return tensor.Vectors(t) }
