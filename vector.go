package simmat

import (
	"math"
	"time"
)

// CosineVec computes the cosine similarity of two equal-length vectors:
// dot(x,y) / sqrt(dot(x,x)·dot(y,y)). The three inner products go through
// the configured kernel. An all-zero vector propagates NaN through the
// division; this is not an error.
func CosineVec(x, y []float64, opts ...Option) (float64, error) {
	o := applyOptions(opts)
	start := time.Now()
	v, err := cosineVec(x, y, &o)
	elapsed := time.Since(start)

	o.logger.LogVectorPair(len(x), err)
	o.metricsCollector.RecordVectorPair(len(x), elapsed, err)
	return v, err
}

func cosineVec(x, y []float64, o *options) (float64, error) {
	if len(x) != len(y) {
		return 0, dimensionMismatch(len(x), len(y))
	}
	xy := o.kernel.Dot(x, y)
	xx := o.kernel.Dot(x, x)
	yy := o.kernel.Dot(y, y)
	return xy / math.Sqrt(xx*yy), nil
}
