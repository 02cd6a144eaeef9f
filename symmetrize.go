package simmat

// mirrorUpper copies the strict upper triangle of the n×n column-major
// buffer c onto the lower triangle. The diagonal is untouched.
// O(n²) time, no allocation.
func mirrorUpper(n int, c []float64) {
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			c[j+i*n] = c[i+j*n]
		}
	}
}

// mirrorLower copies the strict lower triangle of the n×n column-major
// buffer c onto the upper triangle. The diagonal is untouched.
func mirrorLower(n int, c []float64) {
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			c[i+j*n] = c[j+i*n]
		}
	}
}
