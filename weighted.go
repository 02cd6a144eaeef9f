package simmat

import (
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/simmat/internal/parallel"
)

// Normalization selects the correction convention for weighted covariance.
type Normalization int

const (
	// Unbiased applies the reliability-weights correction factor
	// 1/(1−Σwᵢ²) (1/(1−m·w0²) for a uniform single weight w0),
	// compensating for the bias introduced by weighted centering. With
	// uniform weights this reduces to the classical 1/(m−1) estimator.
	Unbiased Normalization = iota

	// MaximumLikelihood applies no correction (factor 1). With uniform
	// weights this is the classical 1/m estimator.
	MaximumLikelihood
)

func (n Normalization) String() string {
	switch n {
	case Unbiased:
		return "Unbiased"
	case MaximumLikelihood:
		return "MaximumLikelihood"
	default:
		return fmt.Sprintf("Unknown(%d)", int(n))
	}
}

// Covariance computes the n×n weighted covariance matrix of x's columns
// into dst (n = x.Cols()). A nil w means uniform 1/m weighting. The
// diagonal holds the weighted column variances.
//
// The input is never mutated: centering happens on a working copy owned by
// this call. An invalid weight length fails before dst is touched (weight
// content is validated at NewWeights time).
func Covariance(dst, x *Dense, w *Weights, norm Normalization, opts ...Option) error {
	o := applyOptions(opts)
	start := time.Now()
	err := weightedAssociation(dst, x, w, norm, false, &o)
	elapsed := time.Since(start)

	rows, cols := 0, 0
	if x != nil {
		rows, cols = x.rows, x.cols
	}
	o.logger.LogDense("covariance", rows, cols, elapsed, err)
	o.metricsCollector.RecordDense("covariance", rows, cols, elapsed, err)
	return err
}

// Correlation computes the n×n weighted Pearson correlation matrix of x's
// columns into dst. A nil w means uniform 1/m weighting.
//
// The correction factor cancels out of the correlation quotient, so no
// normalization mode is exposed. A zero-variance column propagates NaN
// across its row and column, including the diagonal; all other diagonal
// entries are exactly 1.
func Correlation(dst, x *Dense, w *Weights, opts ...Option) error {
	o := applyOptions(opts)
	start := time.Now()
	err := weightedAssociation(dst, x, w, Unbiased, true, &o)
	elapsed := time.Since(start)

	rows, cols := 0, 0
	if x != nil {
		rows, cols = x.rows, x.cols
	}
	o.logger.LogDense("correlation", rows, cols, elapsed, err)
	o.metricsCollector.RecordDense("correlation", rows, cols, elapsed, err)
	return err
}

// weightedAssociation is the shared weighted covariance/correlation engine:
// weighted means, a centered sqrt(w)-row-scaled working copy (additionally
// standardized per column when scale is set), an alpha-scaled symmetric
// rank-k update, and a mirror of the upper triangle.
func weightedAssociation(dst, x *Dense, w *Weights, norm Normalization, scale bool, o *options) error {
	if err := validateSquareOut(dst, x); err != nil {
		return err
	}
	m, n := x.rows, x.cols
	if w == nil {
		w = UniformWeights(m)
	}
	if w.Len() != m {
		return dimensionMismatch(m, w.Len())
	}

	workers := o.fanOut(m, n)

	means := make([]float64, n)
	colMeansInto(x, w, means, workers)

	alpha := correctionFactor(w, norm)

	// Row scaling by sqrt(wᵢ) makes the rank-k update accumulate
	// Σ wᵢ(xᵢ−μ)(xᵢ−μ)ᵀ, which alpha then corrects.
	sqrtw := make([]float64, m)
	for i := range sqrtw {
		sqrtw[i] = math.Sqrt(w.At(i))
	}

	// Working copy, owned by this call and discarded at its end.
	xw := make([]float64, m*n)
	_ = parallel.For(workers, n, func(lo, hi int) error {
		for j := lo; j < hi; j++ {
			src := x.data[j*m : (j+1)*m]
			col := xw[j*m : (j+1)*m]
			mu := means[j]
			for i := range src {
				col[i] = (src[i] - mu) * sqrtw[i]
			}
			if scale {
				// Standardize to unit weighted variance. A zero-variance
				// column divides by zero and the NaNs propagate, matching
				// the dense degeneracy policy.
				sd := math.Sqrt(alpha * o.kernel.Dot(col, col))
				inv := 1 / sd
				for i := range col {
					col[i] *= inv
				}
			}
		}
		return nil
	})

	o.kernel.Syrk(m, n, alpha, xw, dst.data)

	if scale {
		// The diagonal is 1 by construction up to rounding; pin it.
		for j := 0; j < n; j++ {
			d := dst.data[j+j*n]
			if math.IsNaN(d) || math.IsInf(d, 0) {
				dst.data[j+j*n] = math.NaN()
			} else {
				dst.data[j+j*n] = 1
			}
		}
	}

	mirrorUpper(n, dst.data)
	return nil
}

// correctionFactor returns alpha for the given weights and normalization.
func correctionFactor(w *Weights, norm Normalization) float64 {
	if norm == MaximumLikelihood {
		return 1
	}
	if w.IsUniform() {
		w0 := w.At(0)
		return 1 / (1 - float64(w.Len())*w0*w0)
	}
	return 1 / (1 - w.SumSquares())
}
