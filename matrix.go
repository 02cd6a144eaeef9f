package simmat

import (
	"fmt"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// weightSumTolerance bounds the allowed deviation of a weight vector's sum
// from 1.0. Weights are validated once, at construction.
const weightSumTolerance = 1e-8

// Dense is an m×n real matrix in column-major storage: element (i, j) lives
// at data[i + j*m]. Engines treat input matrices as read-only; output
// matrices are written in full on success and left untouched on error.
type Dense struct {
	rows, cols int
	data       []float64
}

// NewDense wraps data as an m×n column-major matrix. The slice is borrowed,
// not copied; the caller must not mutate it while an engine call is running.
func NewDense(rows, cols int, data []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	if len(data) != rows*cols {
		return nil, dimensionMismatch(rows*cols, len(data))
	}
	return &Dense{rows: rows, cols: cols, data: data}, nil
}

// NewSquare allocates a zeroed n×n matrix, the shape every symmetric
// engine writes into.
func NewSquare(n int) *Dense {
	return &Dense{rows: n, cols: n, data: make([]float64, n*n)}
}

// Rows returns the number of rows.
func (d *Dense) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *Dense) Cols() int { return d.cols }

// At returns element (i, j).
func (d *Dense) At(i, j int) float64 { return d.data[i+j*d.rows] }

// Set assigns element (i, j).
func (d *Dense) Set(i, j int, v float64) { d.data[i+j*d.rows] = v }

// Col returns a view of column j. The slice aliases the matrix storage.
func (d *Dense) Col(j int) []float64 { return d.data[j*d.rows : (j+1)*d.rows] }

// Data returns the backing column-major slice.
func (d *Dense) Data() []float64 { return d.data }

// Clone returns a deep copy.
func (d *Dense) Clone() *Dense {
	return &Dense{rows: d.rows, cols: d.cols, data: slices.Clone(d.data)}
}

// Weights is a validated observation-weight vector: all entries are
// non-negative and sum to 1 within floating tolerance. A uniform weight
// vector is stored as a single repeated value.
type Weights struct {
	w       []float64
	uniform float64
	length  int
}

// NewWeights validates and copies w. Violations of the non-negativity or
// sum-to-one invariant are construction-time errors; no engine ever runs on
// unvalidated weights.
func NewWeights(w []float64) (*Weights, error) {
	if len(w) == 0 {
		return nil, &ErrInvalidWeights{Index: -1, Reason: "empty weight vector"}
	}
	sum := 0.0
	for i, v := range w {
		if v < 0 {
			return nil, &ErrInvalidWeights{Index: i, Reason: "negative weight"}
		}
		sum += v
	}
	if math.Abs(sum-1) > weightSumTolerance {
		return nil, &ErrInvalidWeights{Index: -1, Sum: sum, Reason: "weights must sum to 1"}
	}
	return &Weights{w: slices.Clone(w), length: len(w)}, nil
}

// UniformWeights returns the uniform 1/m distribution over m observations.
func UniformWeights(m int) *Weights {
	return &Weights{uniform: 1 / float64(m), length: m}
}

// Len returns the number of observations the weights cover.
func (w *Weights) Len() int { return w.length }

// At returns the weight of observation i.
func (w *Weights) At(i int) float64 {
	if w.w == nil {
		return w.uniform
	}
	return w.w[i]
}

// IsUniform reports whether the vector is a stored single-value uniform
// distribution.
func (w *Weights) IsUniform() bool { return w.w == nil }

// SumSquares returns Σ wᵢ², the concentration term of the unbiased
// correction factor.
func (w *Weights) SumSquares() float64 {
	if w.w == nil {
		return float64(w.length) * w.uniform * w.uniform
	}
	s := 0.0
	for _, v := range w.w {
		s += v * v
	}
	return s
}

// COO is a sparse m×n matrix in coordinate-list form. Triplets are sorted
// by ascending column, then ascending row, with no duplicates and no
// explicit zeros — this is enforced at construction and relied upon by the
// sparse engine, which performs no internal sort.
type COO struct {
	rows, cols int
	rowIdx     []int
	colIdx     []int
	vals       []float64
	occupied   *roaring.Bitmap
}

// NewCOO validates the triplet arrays in a single scan and wraps them.
// The slices are borrowed, not copied. The scan also records which columns
// are structurally non-empty.
func NewCOO(rows, cols int, rowIdx, colIdx []int, vals []float64) (*COO, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	if len(rowIdx) != len(vals) {
		return nil, dimensionMismatch(len(vals), len(rowIdx))
	}
	if len(colIdx) != len(vals) {
		return nil, dimensionMismatch(len(vals), len(colIdx))
	}

	occupied := roaring.New()
	for k := range vals {
		r, c := rowIdx[k], colIdx[k]
		if r < 0 || r >= rows {
			return nil, &ErrInvalidTriplets{Index: k, Reason: "row index out of range"}
		}
		if c < 0 || c >= cols {
			return nil, &ErrInvalidTriplets{Index: k, Reason: "column index out of range"}
		}
		if vals[k] == 0 {
			return nil, &ErrInvalidTriplets{Index: k, Reason: "explicit zero value"}
		}
		if k > 0 {
			pr, pc := rowIdx[k-1], colIdx[k-1]
			switch {
			case c < pc:
				return nil, &ErrInvalidTriplets{Index: k, Reason: "columns not ascending"}
			case c == pc && r < pr:
				return nil, &ErrInvalidTriplets{Index: k, Reason: "rows not ascending within column"}
			case c == pc && r == pr:
				return nil, &ErrInvalidTriplets{Index: k, Reason: "duplicate (row, col) entry"}
			}
		}
		occupied.Add(uint32(c))
	}

	return &COO{
		rows:     rows,
		cols:     cols,
		rowIdx:   rowIdx,
		colIdx:   colIdx,
		vals:     vals,
		occupied: occupied,
	}, nil
}

// Rows returns the logical number of rows.
func (c *COO) Rows() int { return c.rows }

// Cols returns the logical number of columns.
func (c *COO) Cols() int { return c.cols }

// NNZ returns the number of stored entries.
func (c *COO) NNZ() int { return len(c.vals) }

// NonEmptyColumns returns the set of columns holding at least one entry.
// The returned bitmap is a copy; mutating it does not affect the matrix.
func (c *COO) NonEmptyColumns() *roaring.Bitmap {
	return c.occupied.Clone()
}
