// Package testutil provides seeded, reproducible data generators for tests
// and benchmarks.
package testutil

import (
	"math/rand"
	"sync"
)

// RNG encapsulates a seeded random number generator. It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniform fills dst with random values in [0, 1).
// Locks once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillUniform(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float64()
	}
}

// FillUniformRange fills dst with random values in [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float64, minVal, maxVal float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Float64()*span
	}
}

// ColumnMajor generates an m×n column-major matrix with Gaussian entries.
func (r *RNG) ColumnMajor(m, n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	data := make([]float64, m*n)
	for i := range data {
		data[i] = r.rand.NormFloat64()
	}
	return data
}

// Weights generates a random valid weight vector of length m: all entries
// positive, summing to exactly 1 (the last entry absorbs rounding).
func (r *RNG) Weights(m int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := make([]float64, m)
	sum := 0.0
	for i := range w {
		w[i] = r.rand.Float64() + 0.1
		sum += w[i]
	}
	acc := 0.0
	for i := 0; i < m-1; i++ {
		w[i] /= sum
		acc += w[i]
	}
	w[m-1] = 1 - acc
	return w
}

// SparseTriplets generates sorted COO triplets for an m×n matrix where each
// (row, col) cell is occupied with probability density. Values are drawn
// from [0.5, 1.5) so no explicit zeros appear. Emission order is column,
// then row, satisfying the COO sort invariant.
func (r *RNG) SparseTriplets(m, n int, density float64) (rows, cols []int, vals []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			if r.rand.Float64() < density {
				rows = append(rows, i)
				cols = append(cols, j)
				vals = append(vals, 0.5+r.rand.Float64())
			}
		}
	}
	return rows, cols, vals
}

// ToDense expands COO triplets into an m×n column-major dense matrix.
// Useful for cross-checking the sparse engine against the dense one.
func ToDense(m, n int, rows, cols []int, vals []float64) []float64 {
	data := make([]float64, m*n)
	for k := range vals {
		data[rows[k]+cols[k]*m] = vals[k]
	}
	return data
}
