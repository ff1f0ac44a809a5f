// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package linalg

import (
	"github.com/born-ml/linalg/internal/linalg"
	"github.com/born-ml/linalg/tensor"
)

// Result types.
type (
	// LUResult holds a packed LU factorization and its row pivots.
	LUResult = linalg.LUResult

	// QRResult holds Q and R with A = Q·R.
	QRResult = linalg.QRResult

	// SVDResult holds U, S and V with A = U·diag(S)·Vᵀ.
	SVDResult = linalg.SVDResult

	// EigenResult holds ascending eigenvalues and matching eigenvectors.
	EigenResult = linalg.EigenResult

	// BatchError reports the failure of one batch element.
	BatchError = linalg.BatchError
)

// Option configures a decomposition call.
type Option = linalg.Option

// EigenStrategy selects the SymEig algorithm.
type EigenStrategy = linalg.EigenStrategy

// Eigen strategies.
const (
	EigenJacobi  EigenStrategy = linalg.EigenJacobi
	EigenFromSVD EigenStrategy = linalg.EigenFromSVD
)

// Defaults.
const (
	DefaultEpsilon       = linalg.DefaultEpsilon
	DefaultMaxIterations = linalg.DefaultMaxIterations
)

// Errors returned by decompositions.
var (
	ErrNotSquare           = linalg.ErrNotSquare
	ErrNotSymmetric        = linalg.ErrNotSymmetric
	ErrNotPositiveDefinite = linalg.ErrNotPositiveDefinite
	ErrSingular            = linalg.ErrSingular
	ErrNoConvergence       = linalg.ErrNoConvergence
)

// WithFailFast stops a batched call at the first failing element.
func WithFailFast() Option { return linalg.WithFailFast() }

// WithStrictConvergence reports exhausted Jacobi sweeps as ErrNoConvergence.
func WithStrictConvergence() Option { return linalg.WithStrictConvergence() }

// WithMaxIterations sets the Jacobi sweep budget.
func WithMaxIterations(n int) Option { return linalg.WithMaxIterations(n) }

// WithEigenStrategy selects the SymEig algorithm.
func WithEigenStrategy(s EigenStrategy) Option { return linalg.WithEigenStrategy(s) }

// LU factorizes every square matrix of a with partial pivoting.
func LU(a *tensor.Tensor[float64], eps float64, opts ...Option) (*LUResult, error) {
	return linalg.LU(a, eps, opts...)
}

// LUPivot unpacks lu into P, L and U with P·A = L·U.
func LUPivot(lu *LUResult, opts ...Option) (p, l, u *tensor.Tensor[float64], err error) {
	return linalg.LUPivot(lu, opts...)
}

// Det computes the determinant of every square matrix of a.
func Det(a *tensor.Tensor[float64], eps float64, opts ...Option) (*tensor.Tensor[float64], error) {
	return linalg.Det(a, eps, opts...)
}

// Inv inverts every square matrix of a.
func Inv(a *tensor.Tensor[float64], eps float64, opts ...Option) (*tensor.Tensor[float64], error) {
	return linalg.Inv(a, eps, opts...)
}

// Solve solves A·X = B for every matrix of a.
func Solve(a, b *tensor.Tensor[float64], eps float64, opts ...Option) (*tensor.Tensor[float64], error) {
	return linalg.Solve(a, b, eps, opts...)
}

// Cholesky factorizes every symmetric positive-definite matrix of a.
func Cholesky(a *tensor.Tensor[float64], eps float64, opts ...Option) (*tensor.Tensor[float64], error) {
	return linalg.Cholesky(a, eps, opts...)
}

// QR factorizes every square matrix of a.
func QR(a *tensor.Tensor[float64], opts ...Option) (*QRResult, error) {
	return linalg.QR(a, opts...)
}

// SVD decomposes every matrix of a.
func SVD(a *tensor.Tensor[float64], eps float64, opts ...Option) (*SVDResult, error) {
	return linalg.SVD(a, eps, opts...)
}

// SymEig computes the eigendecomposition of every symmetric matrix of a.
func SymEig(a *tensor.Tensor[float64], eps float64, opts ...Option) (*EigenResult, error) {
	return linalg.SymEig(a, eps, opts...)
}
