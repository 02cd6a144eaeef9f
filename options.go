package simmat

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/simmat/blas"
)

const (
	// DefaultEpsilon is the sparse dot-product significance threshold.
	// Pairwise dot products with magnitude at or below it are treated as
	// exactly orthogonal.
	DefaultEpsilon = 1e-10

	// DefaultParallelThreshold is the minimum problem size (rows*cols)
	// at which the column-wise passes fan out across workers. Below it,
	// goroutine overhead outweighs the work.
	DefaultParallelThreshold = 2500
)

type options struct {
	epsilon           float64
	parallelThreshold int
	workers           int
	kernel            blas.Kernel
	metricsCollector  MetricsCollector
	logger            *Logger
}

// Option configures a single engine call.
//
// Configuration is per-call by design: there is no ambient process-wide
// state, so tests and concurrent callers are fully isolated.
type Option func(*options)

// WithEpsilon configures the sparse dot-product significance threshold.
// Non-positive values disable the suppression entirely.
func WithEpsilon(eps float64) Option {
	return func(o *options) {
		o.epsilon = eps
	}
}

// WithParallelThreshold configures the minimum problem size (rows*cols)
// at which column passes are distributed across workers.
func WithParallelThreshold(n int) Option {
	return func(o *options) {
		o.parallelThreshold = n
	}
}

// WithWorkers configures the fan-out width for parallel column passes.
// Defaults to runtime.GOMAXPROCS(0). Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithKernel configures the BLAS-like backend used for the crossproduct
// and dot-product primitives.
//
// If nil is passed, blas.Default() is used.
func WithKernel(k blas.Kernel) Option {
	return func(o *options) {
		if k == nil {
			k = blas.Default()
		}
		o.kernel = k
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		epsilon:           DefaultEpsilon,
		parallelThreshold: DefaultParallelThreshold,
		workers:           runtime.GOMAXPROCS(0),
		kernel:            blas.Default(),
		metricsCollector:  NoopMetricsCollector{},
		logger:            NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// fanOut returns the worker count for a column pass over a problem of
// size rows*cols, honoring the size gate.
func (o *options) fanOut(rows, cols int) int {
	if rows*cols < o.parallelThreshold {
		return 1
	}
	return o.workers
}
