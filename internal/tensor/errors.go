package tensor

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every operation returns one of these (possibly wrapped
// with an operation tag), so callers can match with errors.Is.
var (
	// ErrShapeMismatch reports a shape that does not fit the data or the
	// operation (reshape size change, element count mismatch, non-scalar Value).
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrBroadcastIncompatible reports shapes that violate the broadcasting rule.
	ErrBroadcastIncompatible = errors.New("tensor: shapes not compatible for broadcasting")

	// ErrRankMismatch reports a tensor of the wrong rank for the operation.
	ErrRankMismatch = errors.New("tensor: rank mismatch")

	// ErrIndexOutOfRange reports a multi-index, linear index or axis outside its bounds.
	ErrIndexOutOfRange = errors.New("tensor: index out of range")

	// ErrDimensionMismatch reports matrix operands whose inner dimensions disagree.
	ErrDimensionMismatch = errors.New("tensor: dimension mismatch")

	// ErrEmptyShape reports a shape with a zero-sized dimension.
	ErrEmptyShape = errors.New("tensor: empty shape")

	// ErrEmptyBuffer reports an empty element list for a non-scalar shape.
	ErrEmptyBuffer = errors.New("tensor: empty buffer")

	// ErrOverlappingView reports an attempt to lease a mutable range that
	// overlaps a live lease on the same buffer.
	ErrOverlappingView = errors.New("tensor: overlapping mutable view")

	// ErrDivideByZero reports integer division by zero.
	ErrDivideByZero = errors.New("tensor: integer division by zero")
)

// Operation tags used when wrapping errors.
const (
	opFromFlat  = "FromFlat"
	opFull      = "Full"
	opEye       = "Eye"
	opAt        = "At"
	opSet       = "Set"
	opValue     = "Value"
	opReshape   = "Reshape"
	opTranspose = "Transpose"
	opCast1D    = "AsTensor1D"
	opCast2D    = "AsTensor2D"
	opResolve   = "Resolve"
	opExpand    = "Materialize"
	opDot       = "Dot"
	opDiagEmbed = "DiagonalEmbedding"
	opMatrices  = "Matrices"
	opVectors   = "Vectors"
	opSlice     = "Slice"
	opAcquire   = "Acquire"
)

// tensorErrorf wraps err with an operation tag. err must be non-nil.
func tensorErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
