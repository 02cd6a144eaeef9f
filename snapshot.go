package simmat

import (
	"bytes"
	"context"

	"github.com/hupe1980/simmat/blobstore"
	"github.com/hupe1980/simmat/codec"
)

// SaveDense writes a matrix snapshot to the store under name. NaN entries
// (undefined similarities) survive the round trip bit-exactly.
func SaveDense(ctx context.Context, store blobstore.Store, name string, m *Dense, comp codec.Compression) error {
	if m == nil {
		return ErrNilInput
	}
	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	if err := codec.EncodeMatrix(w, m.rows, m.cols, m.data, comp); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// LoadDense reads a matrix snapshot written by SaveDense.
func LoadDense(ctx context.Context, store blobstore.Store, name string) (*Dense, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = blob.Close() }()

	raw, err := blobstore.ReadAll(ctx, blob)
	if err != nil {
		return nil, err
	}

	rows, cols, data, err := codec.DecodeMatrix(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return NewDense(rows, cols, data)
}
