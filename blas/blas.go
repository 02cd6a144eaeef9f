// Package blas defines the numeric primitives the dense engines consume as
// black boxes, with a pure-Go reference implementation.
//
// The contract is deliberately narrow: column-major storage, upper-triangle
// output for the symmetric rank-k update, overwrite (not accumulate)
// semantics. A high-performance backend can be swapped in per call via
// simmat.WithKernel as long as it honors the same contract; floating-point
// summation order is implementation-defined, so backends may differ by tiny
// rounding amounts.
package blas

// Kernel is the BLAS-like capability used by the dense engines.
type Kernel interface {
	// Syrk computes C = alpha · XᵀX for an m×n column-major X, writing only
	// the upper triangle (including the diagonal) of the n×n column-major C.
	// The lower triangle of C is left untouched.
	Syrk(m, n int, alpha float64, x, c []float64)

	// Gemm computes C = alpha · AᵀB for an m×n column-major A and an m×p
	// column-major B, writing the full n×p column-major C.
	Gemm(m, n, p int, alpha float64, a, b, c []float64)

	// Dot returns the dot product of x and y.
	//
	// SAFETY: assumes len(x) == len(y); callers must ensure lengths match.
	Dot(x, y []float64) float64
}

// Default returns the reference kernel.
func Default() Kernel { return Ref{} }
