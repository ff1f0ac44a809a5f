// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides batched dense matrix decompositions.
//
// Every function treats the trailing two axes of its input as a matrix and
// every leading axis as a batch axis. Batch elements are factorized in
// parallel under the engine's parallel configuration; outputs are always
// freshly allocated.
//
// # Decompositions
//
//	lu, _ := linalg.LU(a, 1e-9)                  // packed L\U + pivots
//	p, l, u, _ := linalg.LUPivot(lu)             // P·A = L·U
//	det, _ := linalg.Det(a, 1e-9)                // batch-shaped determinants
//	inv, _ := linalg.Inv(a, 1e-9)
//	x, _ := linalg.Solve(a, b, 1e-9)             // A·X = B
//	l, _ := linalg.Cholesky(a, 1e-9)             // A = L·Lᵀ
//	qr, _ := linalg.QR(a)                        // A = Q·R
//	svd, _ := linalg.SVD(a, 1e-9)                // A = U·diag(S)·Vᵀ
//	eig, _ := linalg.SymEig(a, 1e-9)             // A = V·diag(λ)·Vᵀ
//
// # Failures
//
// A failing batch element is reported as a *BatchError carrying its batch
// index and wrapping a sentinel such as ErrSingular. By default the remaining
// elements are still processed and the partial result is returned together
// with the joined errors; WithFailFast stops at the first failure instead.
package linalg
