package blas

// Ref is the pure-Go reference kernel. It favors clarity and column-major
// cache behavior over peak throughput: every inner loop walks contiguous
// column storage.
type Ref struct{}

var _ Kernel = Ref{}

// Syrk implements Kernel.
func (Ref) Syrk(m, n int, alpha float64, x, c []float64) {
	for j := 0; j < n; j++ {
		colj := x[j*m : (j+1)*m]
		for i := 0; i <= j; i++ {
			coli := x[i*m : (i+1)*m]
			c[i+j*n] = alpha * dot(coli, colj)
		}
	}
}

// Gemm implements Kernel.
func (Ref) Gemm(m, n, p int, alpha float64, a, b, c []float64) {
	for j := 0; j < p; j++ {
		colb := b[j*m : (j+1)*m]
		for i := 0; i < n; i++ {
			cola := a[i*m : (i+1)*m]
			c[i+j*n] = alpha * dot(cola, colb)
		}
	}
}

// Dot implements Kernel.
func (Ref) Dot(x, y []float64) float64 {
	return dot(x, y)
}

func dot(x, y []float64) float64 {
	var s float64
	for i := range x {
		s += x[i] * y[i]
	}
	return s
}
