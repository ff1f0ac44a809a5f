package linalg

// Defaults for decomposition options.
const (
	// DefaultEpsilon is the tolerance callers typically pass for pivot,
	// symmetry and convergence checks on float64 data.
	DefaultEpsilon = 1e-9

	// DefaultMaxIterations bounds the number of Jacobi sweeps in SVD and SymEig.
	DefaultMaxIterations = 100
)

const panicMaxIterationsInvalid = "linalg: WithMaxIterations: n must be positive"

// EigenStrategy selects the SymEig algorithm.
type EigenStrategy int

const (
	// EigenJacobi runs the cyclic Jacobi eigenvalue algorithm directly.
	EigenJacobi EigenStrategy = iota

	// EigenFromSVD derives eigenpairs from the SVD of the symmetric input.
	// Eigenvalues of equal magnitude and opposite sign are not separated.
	EigenFromSVD
)

// String returns the strategy name.
func (s EigenStrategy) String() string {
	switch s {
	case EigenJacobi:
		return "jacobi"
	case EigenFromSVD:
		return "svd"
	default:
		return "unknown"
	}
}

// Option configures a decomposition call.
type Option func(*options)

type options struct {
	failFast      bool
	strict        bool
	maxIterations int
	eigen         EigenStrategy
}

func defaultOptions() options {
	return options{
		maxIterations: DefaultMaxIterations,
		eigen:         EigenJacobi,
	}
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFailFast stops a batched call at the first failing batch element.
// The call then returns a nil result. By default every batch element is
// processed and the partial result is returned alongside the joined errors.
func WithFailFast() Option {
	return func(o *options) { o.failFast = true }
}

// WithStrictConvergence turns an exhausted Jacobi sweep budget into
// ErrNoConvergence. By default it is only logged as a warning.
func WithStrictConvergence() Option {
	return func(o *options) { o.strict = true }
}

// WithMaxIterations sets the Jacobi sweep budget. It panics if n <= 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterationsInvalid)
	}
	return func(o *options) { o.maxIterations = n }
}

// WithEigenStrategy selects the SymEig algorithm.
func WithEigenStrategy(s EigenStrategy) Option {
	return func(o *options) { o.eigen = s }
}
