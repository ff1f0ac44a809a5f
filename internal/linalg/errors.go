package linalg

import (
	"errors"
	"fmt"
)

// Sentinel errors. Decompositions wrap them with an operation tag, and
// per-batch failures additionally carry a *BatchError; callers match with
// errors.Is and errors.As.
var (
	// ErrNotSquare is returned when a square matrix is required.
	ErrNotSquare = errors.New("linalg: matrix is not square")

	// ErrNotSymmetric is returned when |A - Aᵀ| exceeds epsilon somewhere.
	ErrNotSymmetric = errors.New("linalg: matrix is not symmetric within eps")

	// ErrNotPositiveDefinite is returned when Cholesky meets a non-positive pivot.
	ErrNotPositiveDefinite = errors.New("linalg: matrix is not positive definite")

	// ErrSingular is returned when the best available LU pivot is below epsilon.
	// Det reports singular input as a zero determinant instead.
	ErrSingular = errors.New("linalg: singular matrix")

	// ErrNoConvergence is returned by Jacobi iterations that exhaust their
	// sweep budget under WithStrictConvergence.
	ErrNoConvergence = errors.New("linalg: iteration did not converge")
)

// Operation tags used when wrapping errors.
const (
	opLU       = "LU"
	opLUPivot  = "LUPivot"
	opDet      = "Det"
	opInv      = "Inv"
	opSolve    = "Solve"
	opCholesky = "Cholesky"
	opQR       = "QR"
	opSVD      = "SVD"
	opSymEig   = "SymEig"
)

// BatchError reports the failure of a single batch element.
type BatchError struct {
	Op    string // Operation that failed.
	Index int    // Linear batch index.
	Batch []int  // Batch multi-index (empty for an unbatched matrix).
	Err   error  // Underlying cause, usually a sentinel.
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("linalg: %s: batch %d %v: %v", e.Op, e.Index, e.Batch, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// linalgErrorf wraps err with an operation tag. err must be non-nil.
func linalgErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
