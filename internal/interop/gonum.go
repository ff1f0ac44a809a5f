// Package interop converts tensors to and from gonum matrices.
//
// Conversions copy element for element and preserve row-major order, so a
// round trip reproduces the source exactly.
package interop

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linalg/internal/tensor"
)

// ToDense exports a rank-2 tensor as a *mat.Dense.
func ToDense(t *tensor.Tensor[float64]) (*mat.Dense, error) {
	m, err := t.AsTensor2D()
	if err != nil {
		return nil, fmt.Errorf("ToDense: %w", err)
	}
	rows, cols := m.Dims()
	return mat.NewDense(rows, cols, t.ToFlat()), nil
}

// ToDenseBatch exports every trailing matrix of t (rank >= 2) in batch order.
func ToDenseBatch(t *tensor.Tensor[float64]) ([]*mat.Dense, error) {
	mats, err := tensor.Matrices(t)
	if err != nil {
		return nil, fmt.Errorf("ToDenseBatch: %w", err)
	}
	out := make([]*mat.Dense, 0, mats.Len())
	for _, m := range mats.All() {
		d, err := ToDense(m)
		if err != nil {
			return nil, fmt.Errorf("ToDenseBatch: %w", err)
		}
		out = append(out, d)
	}
	return out, nil
}

// FromMatrix imports any gonum matrix as a rank-2 tensor on eng.
func FromMatrix(eng *tensor.Engine, m mat.Matrix) (*tensor.Tensor[float64], error) {
	rows, cols := m.Dims()
	if d, ok := m.(*mat.Dense); ok {
		raw := d.RawMatrix()
		if raw.Stride == cols {
			return tensor.FromFlat(eng, raw.Data[:rows*cols], tensor.Shape{rows, cols})
		}
	}
	data := make([]float64, 0, rows*cols)
	for i := range rows {
		for j := range cols {
			data = append(data, m.At(i, j))
		}
	}
	return tensor.FromFlat(eng, data, tensor.Shape{rows, cols})
}

// FromDenseBatch stacks equally shaped matrices into a [len(ms), r, c] tensor.
func FromDenseBatch(eng *tensor.Engine, ms []mat.Matrix) (*tensor.Tensor[float64], error) {
	if len(ms) == 0 {
		return nil, fmt.Errorf("FromDenseBatch: %w", tensor.ErrEmptyBuffer)
	}
	rows, cols := ms[0].Dims()
	data := make([]float64, 0, len(ms)*rows*cols)
	for b, m := range ms {
		if r, c := m.Dims(); r != rows || c != cols {
			return nil, fmt.Errorf("FromDenseBatch: %w: matrix %d is %d×%d, want %d×%d",
				tensor.ErrShapeMismatch, b, r, c, rows, cols)
		}
		for i := range rows {
			for j := range cols {
				data = append(data, m.At(i, j))
			}
		}
	}
	return tensor.FromFlat(eng, data, tensor.Shape{len(ms), rows, cols})
}

// ToVecDense exports a rank-1 tensor as a *mat.VecDense.
func ToVecDense(t *tensor.Tensor[float64]) (*mat.VecDense, error) {
	v, err := t.AsTensor1D()
	if err != nil {
		return nil, fmt.Errorf("ToVecDense: %w", err)
	}
	return mat.NewVecDense(v.Len(), t.ToFlat()), nil
}

// FromVector imports any gonum vector as a rank-1 tensor on eng.
func FromVector(eng *tensor.Engine, v mat.Vector) (*tensor.Tensor[float64], error) {
	n := v.Len()
	data := make([]float64, n)
	for i := range data {
		data[i] = v.AtVec(i)
	}
	return tensor.FromFlat(eng, data, tensor.Shape{n})
}
