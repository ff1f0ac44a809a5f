// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package interop converts tensors to and from gonum matrices.
//
// Example:
//
//	d, _ := interop.ToDense(t)          // *mat.Dense, row-major copy
//	back, _ := interop.FromMatrix(eng, d)
package interop

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linalg/internal/interop"
	"github.com/born-ml/linalg/tensor"
)

// ToDense exports a rank-2 tensor.
func ToDense(t *tensor.Tensor[float64]) (*mat.Dense, error) { return interop.ToDense(t) }

// ToDenseBatch exports every trailing matrix of t in batch order.
func ToDenseBatch(t *tensor.Tensor[float64]) ([]*mat.Dense, error) { return interop.ToDenseBatch(t) }

// FromMatrix imports a gonum matrix as a rank-2 tensor.
func FromMatrix(eng *tensor.Engine, m mat.Matrix) (*tensor.Tensor[float64], error) {
	return interop.FromMatrix(eng, m)
}

// FromDenseBatch stacks equally shaped matrices into a rank-3 tensor.
func FromDenseBatch(eng *tensor.Engine, ms []mat.Matrix) (*tensor.Tensor[float64], error) {
	return interop.FromDenseBatch(eng, ms)
}

// ToVecDense exports a rank-1 tensor.
func ToVecDense(t *tensor.Tensor[float64]) (*mat.VecDense, error) { return interop.ToVecDense(t) }

// FromVector imports a gonum vector as a rank-1 tensor.
func FromVector(eng *tensor.Engine, v mat.Vector) (*tensor.Tensor[float64], error) {
	return interop.FromVector(eng, v)
}
