package simmat

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/simmat/blobstore"
	"github.com/hupe1980/simmat/codec"
	"github.com/hupe1980/simmat/testutil"
)

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(55)

	x, err := NewDense(40, 7, rng.ColumnMajor(40, 7))
	require.NoError(t, err)
	dst := NewSquare(7)
	require.NoError(t, Correlation(dst, x, nil))

	compressions := []codec.Compression{
		codec.CompressionNone,
		codec.CompressionLZ4,
		codec.CompressionZSTD,
	}

	for _, comp := range compressions {
		t.Run(comp.String(), func(t *testing.T) {
			store := blobstore.NewMemoryStore()
			require.NoError(t, SaveDense(ctx, store, "corr.simmat", dst, comp))

			got, err := LoadDense(ctx, store, "corr.simmat")
			require.NoError(t, err)
			assert.Equal(t, dst.Rows(), got.Rows())
			assert.Equal(t, dst.Cols(), got.Cols())
			assert.Equal(t, dst.Data(), got.Data())
		})
	}
}

func TestSnapshotPreservesNaN(t *testing.T) {
	ctx := context.Background()

	// A zero-norm column leaves NaN entries; they must survive the
	// byte-level round trip.
	x, err := NewDense(3, 2, []float64{1, 2, 3, 0, 0, 0})
	require.NoError(t, err)
	dst := NewSquare(2)
	require.NoError(t, Cosine(dst, x))
	require.True(t, math.IsNaN(dst.At(1, 1)))

	store := blobstore.NewMemoryStore()
	require.NoError(t, SaveDense(ctx, store, "nan.simmat", dst, codec.CompressionZSTD))

	got, err := LoadDense(ctx, store, "nan.simmat")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.At(1, 1)))
	assert.True(t, math.IsNaN(got.At(0, 1)))
	assert.Equal(t, 1.0, got.At(0, 0))
}

func TestSnapshotLocalStore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())

	rng := testutil.NewRNG(3)
	x, err := NewDense(10, 4, rng.ColumnMajor(10, 4))
	require.NoError(t, err)
	dst := NewSquare(4)
	require.NoError(t, Cosine(dst, x))

	require.NoError(t, SaveDense(ctx, store, "cos/run1.simmat", dst, codec.CompressionLZ4))

	got, err := LoadDense(ctx, store, "cos/run1.simmat")
	require.NoError(t, err)
	assert.Equal(t, dst.Data(), got.Data())

	names, err := store.List(ctx, "cos/")
	require.NoError(t, err)
	assert.Equal(t, []string{"cos/run1.simmat"}, names)
}

func TestSnapshotErrors(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.ErrorIs(t, SaveDense(ctx, store, "x", nil, codec.CompressionNone), ErrNilInput)

	_, err := LoadDense(ctx, store, "missing")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}
