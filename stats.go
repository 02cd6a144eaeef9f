package simmat

import (
	"github.com/hupe1980/simmat/internal/parallel"
)

// ColMeans computes per-column means of x into means, which must have
// length x.Cols(). A nil w means uniform 1/m weighting; uniform weights
// reproduce the unweighted mean exactly (the sum is divided once rather
// than scaled term by term).
func ColMeans(x *Dense, w *Weights, means []float64, opts ...Option) error {
	if x == nil {
		return ErrNilInput
	}
	if w == nil {
		w = UniformWeights(x.rows)
	}
	if w.Len() != x.rows {
		return dimensionMismatch(x.rows, w.Len())
	}
	if len(means) != x.cols {
		return dimensionMismatch(x.cols, len(means))
	}
	o := applyOptions(opts)
	colMeansInto(x, w, means, o.fanOut(x.rows, x.cols))
	return nil
}

// ColVariances computes per-column weighted variances of x into vars, which
// must have length x.Cols(), applying the normalization's correction factor.
// A nil w means uniform 1/m weighting.
func ColVariances(x *Dense, w *Weights, norm Normalization, vars []float64, opts ...Option) error {
	if x == nil {
		return ErrNilInput
	}
	if w == nil {
		w = UniformWeights(x.rows)
	}
	if w.Len() != x.rows {
		return dimensionMismatch(x.rows, w.Len())
	}
	if len(vars) != x.cols {
		return dimensionMismatch(x.cols, len(vars))
	}
	o := applyOptions(opts)
	workers := o.fanOut(x.rows, x.cols)

	means := make([]float64, x.cols)
	colMeansInto(x, w, means, workers)
	colVariancesInto(x, w, norm, means, vars, workers)
	return nil
}

func colMeansInto(x *Dense, w *Weights, means []float64, workers int) {
	m := x.rows
	_ = parallel.For(workers, x.cols, func(lo, hi int) error {
		for j := lo; j < hi; j++ {
			col := x.data[j*m : (j+1)*m]
			var s float64
			if w.IsUniform() {
				for _, v := range col {
					s += v
				}
				s /= float64(m)
			} else {
				for i, v := range col {
					s += w.At(i) * v
				}
			}
			means[j] = s
		}
		return nil
	})
}

func colVariancesInto(x *Dense, w *Weights, norm Normalization, means, vars []float64, workers int) {
	m := x.rows
	alpha := correctionFactor(w, norm)
	_ = parallel.For(workers, x.cols, func(lo, hi int) error {
		for j := lo; j < hi; j++ {
			col := x.data[j*m : (j+1)*m]
			mu := means[j]
			var s float64
			for i, v := range col {
				d := v - mu
				s += w.At(i) * d * d
			}
			vars[j] = alpha * s
		}
		return nil
	})
}
