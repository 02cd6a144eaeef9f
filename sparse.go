package simmat

import (
	"math"
	"time"
)

// SparseCosine computes the n×n cosine similarity matrix of x's columns
// into dst (n = x.Cols()) without ever materializing zero entries.
//
// The engine walks the sorted triplet storage once to locate per-column
// runs, copies each pivot column into small scratch buffers for contiguous
// access, and computes pairwise dot products by merging sorted row-index
// lists. Dot products with magnitude at or below the configured epsilon are
// treated as exactly orthogonal and left at zero. A structurally empty
// column is marked NaN across its entire row and column, diagonal included.
//
// The lower triangle is computed and mirrored onto the upper. The engine is
// single-threaded: the shared scratch buffers make fan-out unsafe without
// per-worker copies, and typical sparse workloads are bounded by the run
// scan rather than arithmetic.
func SparseCosine(dst *Dense, x *COO, opts ...Option) error {
	o := applyOptions(opts)
	start := time.Now()
	err := sparseCosine(dst, x, &o)
	elapsed := time.Since(start)

	rows, cols, nnz := 0, 0, 0
	if x != nil {
		rows, cols, nnz = x.rows, x.cols, len(x.vals)
	}
	o.logger.LogSparse(rows, cols, nnz, elapsed, err)
	o.metricsCollector.RecordSparse(rows, cols, nnz, elapsed, err)
	return err
}

func sparseCosine(dst *Dense, x *COO, o *options) error {
	if dst == nil {
		return ErrNilOutput
	}
	if x == nil {
		return ErrNilInput
	}
	n := x.cols
	if dst.rows != n {
		return dimensionMismatch(n, dst.rows)
	}
	if dst.cols != n {
		return dimensionMismatch(n, dst.cols)
	}

	c := dst.data
	for i := range c {
		c[i] = 0
	}

	// Column runs: one left-to-right scan over the sorted triplets yields
	// CSC-style pointers, keeping total index-finding work linear in nnz.
	colptr := make([]int, n+1)
	nnz := len(x.vals)
	p := 0
	maxRun := 0
	for j := 0; j < n; j++ {
		colptr[j] = p
		for p < nnz && x.colIdx[p] == j {
			p++
		}
		if run := p - colptr[j]; run > maxRun {
			maxRun = run
		}
	}
	colptr[n] = p

	// Scratch buffers for the pivot column, sized once to the longest run.
	// Contiguous copies keep the merge loop out of the global triplet
	// array's cache-hostile access pattern.
	sv := make([]float64, maxRun)
	si := make([]int, maxRun)

	occupied := x.occupied

	for j := 0; j < n; j++ {
		lo, hi := colptr[j], colptr[j+1]

		if lo == hi {
			// Structurally empty column: undefined cosine for every pair.
			for i := j; i < n; i++ {
				c[i+j*n] = math.NaN()
			}
			for i := 0; i < j; i++ {
				c[j+i*n] = math.NaN()
			}
			continue
		}

		run := hi - lo
		copy(sv[:run], x.vals[lo:hi])
		copy(si[:run], x.rowIdx[lo:hi])

		var xx float64
		for _, v := range sv[:run] {
			xx += v * v
		}

		for i := j + 1; i < n; i++ {
			ilo, ihi := colptr[i], colptr[i+1]
			if ilo == ihi {
				continue // marked NaN at its own pivot iteration
			}

			xy := mergeDot(si[:run], sv[:run], x.rowIdx[ilo:ihi], x.vals[ilo:ihi])
			if math.Abs(xy) <= o.epsilon {
				continue // numerically orthogonal, leave exact zero
			}

			var yy float64
			for _, v := range x.vals[ilo:ihi] {
				yy += v * v
			}
			c[i+j*n] = xy / math.Sqrt(xx*yy)
		}
	}

	mirrorLower(n, c)

	for j := 0; j < n; j++ {
		if occupied.Contains(uint32(j)) {
			c[j+j*n] = 1
		}
	}
	return nil
}

// mergeDot computes the dot product of two sparse columns given as parallel
// sorted row-index/value lists, by linear merge: O(|a|+|b|).
func mergeDot(aIdx []int, aVal []float64, bIdx []int, bVal []float64) float64 {
	var s float64
	i, k := 0, 0
	for i < len(aIdx) && k < len(bIdx) {
		switch {
		case aIdx[i] < bIdx[k]:
			i++
		case aIdx[i] > bIdx[k]:
			k++
		default:
			s += aVal[i] * bVal[k]
			i++
			k++
		}
	}
	return s
}
