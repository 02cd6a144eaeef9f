package simmat

import (
	"math"
	"time"

	"github.com/hupe1980/simmat/internal/parallel"
)

// Cosine computes the n×n cosine similarity matrix of x's columns into dst,
// which must be a caller-allocated n×n matrix (n = x.Cols()).
//
// Only the upper triangle is computed — a symmetric rank-k update followed
// by a norm rescale — and then mirrored. A zero-norm column propagates
// NaN/Inf through the natural division; its diagonal entry becomes NaN,
// all others become exactly 1.
func Cosine(dst, x *Dense, opts ...Option) error {
	o := applyOptions(opts)
	start := time.Now()
	err := cosineDense(dst, x, &o)
	elapsed := time.Since(start)

	rows, cols := 0, 0
	if x != nil {
		rows, cols = x.rows, x.cols
	}
	o.logger.LogDense("cosine", rows, cols, elapsed, err)
	o.metricsCollector.RecordDense("cosine", rows, cols, elapsed, err)
	return err
}

func cosineDense(dst, x *Dense, o *options) error {
	if err := validateSquareOut(dst, x); err != nil {
		return err
	}
	m, n := x.rows, x.cols

	o.kernel.Syrk(m, n, 1, x.data, dst.data)
	rescaleCosineUpper(n, dst.data, o.fanOut(m, n))
	mirrorUpper(n, dst.data)
	return nil
}

// rescaleCosineUpper turns the upper-triangle crossproduct into cosine
// similarity in place. Each off-diagonal entry is divided by the geometric
// mean of the two squared-norm diagonal entries; the diagonal then becomes
// exactly 1, or NaN for a zero-norm column. Workers own disjoint column
// ranges and only read the shared norms, so no coordination is needed.
func rescaleCosineUpper(n int, c []float64, workers int) {
	norms := make([]float64, n)
	for j := range norms {
		norms[j] = math.Sqrt(c[j+j*n])
	}

	_ = parallel.For(workers, n, func(lo, hi int) error {
		for j := lo; j < hi; j++ {
			upper := c[j*n : j*n+j] // entries (i, j) with i < j
			for i := range upper {
				upper[i] /= norms[i] * norms[j]
			}
		}
		return nil
	})

	for j := 0; j < n; j++ {
		if norms[j] == 0 {
			c[j+j*n] = math.NaN()
		} else {
			c[j+j*n] = 1
		}
	}
}

// validateSquareOut checks the caller-allocated output against the input's
// column count. Runs before any output write, so an error implies dst is
// unmodified.
func validateSquareOut(dst, x *Dense) error {
	if dst == nil {
		return ErrNilOutput
	}
	if x == nil {
		return ErrNilInput
	}
	if dst.rows != x.cols {
		return dimensionMismatch(x.cols, dst.rows)
	}
	if dst.cols != x.cols {
		return dimensionMismatch(x.cols, dst.cols)
	}
	return nil
}
