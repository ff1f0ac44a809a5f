// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense, strided, row-major tensors for batched
// linear algebra.
//
// # Overview
//
// A Tensor is a Shape plus a View into a flat Buffer. This package provides:
//   - Generic tensors over float32, float64, int, int32 and int64
//   - NumPy-style broadcasting by explicit replication
//   - Zero-copy reshapes, rank casts and batch views
//   - Batched matrix products over the trailing two axes
//
// # Basic Usage
//
//	import "github.com/born-ml/linalg/tensor"
//
//	func main() {
//	    eng := tensor.NewEngine()
//
//	    a, _ := tensor.FromFlat(eng, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    b, _ := tensor.FromFlat(eng, []float64{5, 6, 7, 8}, tensor.Shape{2, 2})
//
//	    c, _ := a.Dot(b) // [[19, 22], [43, 50]]
//	}
//
// # Engine
//
// Every tensor belongs to an Engine, which owns the stride cache, the
// parallel configuration and the logger. Engines are independent, so tests
// can run against isolated caches:
//
//	eng := tensor.NewEngine(
//	    tensor.WithParallel(tensor.SequentialParallel()),
//	    tensor.WithLogger(slog.Default()),
//	)
//
// # Broadcasting
//
// Shapes are right-aligned and each axis must be 1 or agree:
//
//	a := (3, 1), b := (1, 4)
//	c, _ := tensor.Add(a, b) // (3, 4)
//
// # Memory Management
//
// Buffers are shared by reshapes and views; Data exposes that memory without
// copying. Writers running concurrently take exclusive leases with
// Buffer.Acquire, which refuses overlapping ranges with ErrOverlappingView.
package tensor
