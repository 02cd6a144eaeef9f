// Package codec implements the binary snapshot format for matrices.
//
// A snapshot is a fixed little-endian header followed by the column-major
// float64 payload, stored either raw or as compressed blocks. The format is
// self-describing: the header carries the compression algorithm, so readers
// need no out-of-band configuration. Changing the format is a breaking
// change gated by the version field.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	// MagicNumber identifies a simmat matrix snapshot.
	MagicNumber uint32 = 0x53494D4D // "SIMM"

	// Version is the current snapshot format version.
	Version uint32 = 1

	headerSize = 4 + 4 + 1 + 3 + 8 + 8 // magic, version, compression, pad, rows, cols
)

var (
	// ErrInvalidMagic is returned when the snapshot header does not start
	// with MagicNumber.
	ErrInvalidMagic = errors.New("invalid snapshot magic")

	// ErrInvalidVersion is returned for an unsupported format version.
	ErrInvalidVersion = errors.New("unsupported snapshot version")

	// ErrCorruptSnapshot is returned when the payload does not match the
	// shape announced in the header.
	ErrCorruptSnapshot = errors.New("corrupt snapshot payload")
)

// EncodeMatrix writes an m×n column-major float64 matrix to w using the
// given compression. len(data) must equal rows*cols.
func EncodeMatrix(w io.Writer, rows, cols int, data []float64, comp Compression) error {
	if rows <= 0 || cols <= 0 || len(data) != rows*cols {
		return fmt.Errorf("%w: %dx%d with %d values", ErrCorruptSnapshot, rows, cols, len(data))
	}

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:], MagicNumber)
	binary.LittleEndian.PutUint32(hdr[4:], Version)
	hdr[8] = byte(comp)
	binary.LittleEndian.PutUint64(hdr[12:], uint64(rows))
	binary.LittleEndian.PutUint64(hdr[20:], uint64(cols))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	payload := float64sToBytes(data)
	if comp == CompressionNone {
		_, err := w.Write(payload)
		return err
	}

	bw := newBlockWriter(w, comp, 0)
	if _, err := bw.Write(payload); err != nil {
		return err
	}
	return bw.Flush()
}

// DecodeMatrix reads a snapshot written by EncodeMatrix.
func DecodeMatrix(r io.Reader) (rows, cols int, data []float64, err error) {
	var hdr [headerSize]byte
	if _, err = io.ReadFull(r, hdr[:]); err != nil {
		return 0, 0, nil, err
	}
	if got := binary.LittleEndian.Uint32(hdr[0:]); got != MagicNumber {
		return 0, 0, nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, got)
	}
	if got := binary.LittleEndian.Uint32(hdr[4:]); got != Version {
		return 0, 0, nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, got)
	}
	comp := Compression(hdr[8])
	rows = int(binary.LittleEndian.Uint64(hdr[12:]))
	cols = int(binary.LittleEndian.Uint64(hdr[20:]))
	if rows <= 0 || cols <= 0 {
		return 0, 0, nil, fmt.Errorf("%w: %dx%d", ErrCorruptSnapshot, rows, cols)
	}

	want := rows * cols * 8
	var payload []byte
	if comp == CompressionNone {
		payload = make([]byte, want)
		if _, err = io.ReadFull(r, payload); err != nil {
			return 0, 0, nil, err
		}
	} else {
		raw, rerr := io.ReadAll(r)
		if rerr != nil {
			return 0, 0, nil, rerr
		}
		payload, err = decompressAll(raw, comp)
		if err != nil {
			return 0, 0, nil, err
		}
	}
	if len(payload) != want {
		return 0, 0, nil, fmt.Errorf("%w: want %d payload bytes, got %d", ErrCorruptSnapshot, want, len(payload))
	}

	data = bytesToFloat64s(payload)
	return rows, cols, data, nil
}

func float64sToBytes(data []float64) []byte {
	// Explicit conversion keeps the encoder independent of slice alignment
	// and byte order; NaN payloads survive the bit-level round trip.
	out := make([]byte, len(data)*8)
	for i, v := range data {
		binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(v))
	}
	return out
}

func bytesToFloat64s(b []byte) []float64 {
	out := make([]float64, len(b)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return out
}
