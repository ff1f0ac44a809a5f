package tensor

import (
	"fmt"
	"log/slog"
)

// Tensor is a dense row-major tensor of element kind T.
// It is a (Shape, View) pair over a flat Buffer; structural operations
// (Reshape, AsTensor1D, AsTensor2D, batch views) share the buffer, while
// arithmetic, transposition, broadcasting and decompositions always allocate.
//
// Example:
//
//	eng := tensor.NewEngine()
//	t, _ := tensor.FromFlat(eng, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	v, _ := t.At(1, 2) // 6
type Tensor[T DType] struct {
	shape   Shape
	strides []int
	view    View[T]
	eng     *Engine
}

// newTensor wraps an existing view. The caller guarantees view.Len() == shape.NumElements().
func newTensor[T DType](eng *Engine, shape Shape, view View[T]) *Tensor[T] {
	return &Tensor[T]{
		shape:   shape,
		strides: eng.Strides(shape),
		view:    view,
		eng:     eng,
	}
}

// alloc creates a zero-filled tensor with a fresh buffer.
func alloc[T DType](eng *Engine, shape Shape) *Tensor[T] {
	shape = shape.Clone()
	return newTensor(eng, shape, NewBuffer[T](shape.NumElements()).Whole())
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor[T]) Shape() Shape {
	return t.shape.Clone()
}

// Strides returns the tensor's row-major strides. The slice is shared with
// the engine's stride cache and must not be modified.
func (t *Tensor[T]) Strides() []int {
	return t.strides
}

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *Tensor[T]) NumElements() int {
	return t.view.Len()
}

// DType returns the tensor's element kind.
func (t *Tensor[T]) DType() DataType {
	return inferDataType[T]()
}

// Engine returns the engine the tensor was created on.
func (t *Tensor[T]) Engine() *Engine {
	return t.eng
}

// View returns the tensor's view into its buffer.
func (t *Tensor[T]) View() View[T] {
	return t.view
}

// Data returns the tensor's elements as a slice aliasing the buffer (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor and
// every tensor sharing its buffer.
func (t *Tensor[T]) Data() []T {
	return t.view.Data()
}

// SharesBuffer reports whether both tensors view the same buffer.
func (t *Tensor[T]) SharesBuffer(o *Tensor[T]) bool {
	return t.view.buf == o.view.buf
}

// At returns the element at the given indices.
func (t *Tensor[T]) At(indices ...int) (T, error) {
	off, err := Offset(t.shape, t.strides, indices)
	if err != nil {
		var zero T
		return zero, tensorErrorf(opAt, err)
	}
	return t.view.buf.data[t.view.offset+off], nil
}

// Set sets the element at the given indices. It fails with
// ErrOverlappingView while a lease covers that element.
func (t *Tensor[T]) Set(value T, indices ...int) error {
	off, err := Offset(t.shape, t.strides, indices)
	if err != nil {
		return tensorErrorf(opSet, err)
	}
	mv, err := t.view.buf.Acquire(t.view.offset+off, 1)
	if err != nil {
		return tensorErrorf(opSet, err)
	}
	defer mv.Release()
	return mv.Set(0, value)
}

// Value returns the sole element of a rank-0 or single-element tensor.
func (t *Tensor[T]) Value() (T, error) {
	if t.view.Len() != 1 {
		var zero T
		return zero, tensorErrorf(opValue, fmt.Errorf("%w: shape %v holds %d elements", ErrShapeMismatch, t.shape, t.view.Len()))
	}
	return t.view.buf.data[t.view.offset], nil
}

// ToFlat returns a copy of the elements in row-major order.
func (t *Tensor[T]) ToFlat() []T {
	out := make([]T, t.view.Len())
	copy(out, t.Data())
	return out
}

// Copy returns a deep copy with a fresh buffer.
func (t *Tensor[T]) Copy() *Tensor[T] {
	return newTensor(t.eng, t.shape.Clone(), t.view.Copy().Whole())
}

// Map returns a new tensor with f applied to every element.
func (t *Tensor[T]) Map(f func(T) T) *Tensor[T] {
	return newTensor(t.eng, t.shape.Clone(), t.view.Map(f).Whole())
}

// String returns a human-readable summary of the tensor.
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor[%s]%v", t.DType(), t.shape)
}

// LogValue implements slog.LogValuer.
func (t *Tensor[T]) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dtype", t.DType().String()),
		slog.Any("shape", []int(t.shape)),
		slog.Int("len", t.view.Len()),
	)
}
