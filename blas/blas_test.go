package blas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	require.NotNil(t, Default())
}

func TestRefDot(t *testing.T) {
	k := Ref{}
	assert.Equal(t, 0.0, k.Dot(nil, nil))
	assert.Equal(t, 32.0, k.Dot([]float64{1, 2, 3}, []float64{4, 5, 6}))
	assert.Equal(t, -2.0, k.Dot([]float64{1, -1}, []float64{0, 2}))
}

func TestRefSyrk(t *testing.T) {
	// x is 3×2 column-major with columns a = (1,2,3), b = (4,5,6).
	x := []float64{1, 2, 3, 4, 5, 6}
	c := make([]float64, 4)

	Ref{}.Syrk(3, 2, 1, x, c)

	// Upper triangle of XᵀX: aᵀa = 14, aᵀb = 32, bᵀb = 77.
	assert.Equal(t, 14.0, c[0+0*2])
	assert.Equal(t, 32.0, c[0+1*2])
	assert.Equal(t, 77.0, c[1+1*2])

	// The strict lower triangle is not written.
	assert.Equal(t, 0.0, c[1+0*2])
}

func TestRefSyrkAlpha(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	c := make([]float64, 4)

	Ref{}.Syrk(3, 2, 0.5, x, c)
	assert.Equal(t, 7.0, c[0+0*2])
	assert.Equal(t, 16.0, c[0+1*2])
	assert.Equal(t, 38.5, c[1+1*2])
}

func TestRefGemm(t *testing.T) {
	// a is 2×2 (columns of Aᵀ), b is 2×1: c = alpha·AᵀB with shared inner
	// dimension m = 2.
	a := []float64{1, 2, 3, 4} // columns (1,2) and (3,4)
	b := []float64{5, 6}
	c := make([]float64, 2)

	Ref{}.Gemm(2, 2, 1, 1, a, b, c)
	assert.Equal(t, 17.0, c[0]) // (1,2)·(5,6)
	assert.Equal(t, 39.0, c[1]) // (3,4)·(5,6)
}
