// Package parallel provides parallel execution utilities for the Born linalg engine.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096, // Elementwise kernels are memory bound.
	}
}

// Sequential returns a config that runs everything on the calling goroutine.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	ForRange(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(i)
		}
	}, cfg)
}

// ForRange splits [0, n) into contiguous chunks and calls f(lo, hi) per chunk.
func ForRange(n int, f func(lo, hi int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2*cfg.MinChunkSize {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ForEach runs f(ctx, i) for every i in [0, n), bounded by cfg.NumWorkers.
//
// With failFast the first error cancels the context handed to the remaining
// calls, indices not yet started are skipped, and that error is returned.
// Otherwise every index runs and all errors are joined in index order.
func ForEach(ctx context.Context, n int, f func(ctx context.Context, i int) error, cfg Config, failFast bool) error {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2 {
		return forEachSequential(ctx, n, f, failFast)
	}

	if failFast {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.NumWorkers)
		for i := 0; i < n; i++ {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				return f(gctx, i)
			})
		}
		return g.Wait()
	}

	errs := make([]error, n)
	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			errs[i] = f(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

func forEachSequential(ctx context.Context, n int, f func(ctx context.Context, i int) error, failFast bool) error {
	var errs []error
	for i := 0; i < n; i++ {
		if err := f(ctx, i); err != nil {
			if failFast {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
