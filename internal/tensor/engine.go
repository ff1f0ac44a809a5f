package tensor

import (
	"log/slog"

	"github.com/born-ml/linalg/internal/parallel"
)

// Engine is the explicit context every tensor is created on. It owns the
// stride cache, the parallel execution policy and the logger, so tests can
// run on isolated engines instead of process-wide state.
type Engine struct {
	strides  *StrideCache
	parallel parallel.Config
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithStrideCache shares an existing stride cache between engines.
func WithStrideCache(c *StrideCache) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.strides = c
		}
	}
}

// WithParallel sets the parallel execution policy.
func WithParallel(cfg parallel.Config) EngineOption {
	return func(e *Engine) {
		e.parallel = cfg
	}
}

// WithLogger sets the logger used by engine operations. The default logger
// discards everything.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine with its own stride cache.
//
// Example:
//
//	eng := tensor.NewEngine()
//	a, _ := tensor.FromFlat(eng, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		strides:  NewStrideCache(),
		parallel: parallel.DefaultConfig(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strides returns the cached row-major strides for shape.
func (e *Engine) Strides(shape Shape) []int {
	return e.strides.Strides(shape)
}

// StrideCache returns the engine's stride cache.
func (e *Engine) StrideCache() *StrideCache {
	return e.strides
}

// Parallel returns the engine's parallel execution policy.
func (e *Engine) Parallel() parallel.Config {
	return e.parallel
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}
