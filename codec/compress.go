package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression algorithm for the payload.
type Compression uint8

const (
	// CompressionNone stores the payload raw.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, lighter ratio).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

// ZSTD encoder/decoder pools for efficiency.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Block format: [UncompressedSize uint32][CompressedSize uint32][Data...].
// CompressedSize == 0 means the block is stored raw (incompressible data).
const blockHeaderSize = 8

// compressBlock compresses one block, falling back to raw storage when
// compression does not pay for itself (ratio above 0.9).
func compressBlock(data []byte, comp Compression) ([]byte, error) {
	var compressed []byte
	var err error

	switch comp {
	case CompressionLZ4:
		compressed, err = compressBlockLZ4(data)
	case CompressionZSTD:
		compressed, err = compressBlockZSTD(data)
	default:
		return nil, errors.New("unknown compression")
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		result := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(result[4:], 0)
		copy(result[blockHeaderSize:], data)
		return result, nil
	}

	result := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed)))
	copy(result[blockHeaderSize:], compressed)
	return result, nil
}

func compressBlockLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

func compressBlockZSTD(data []byte) ([]byte, error) {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)
	return enc.EncodeAll(data, nil), nil
}

func decompressBlockPayload(compressed []byte, uncompressedSize uint32, comp Compression) ([]byte, error) {
	result := make([]byte, uncompressedSize)

	switch comp {
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(compressed, result[:0])
		if err != nil {
			return nil, err
		}
		if uint32(len(decoded)) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return decoded, nil

	default: // LZ4
		n, err := lz4.UncompressBlock(compressed, result)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return result, nil
	}
}

// blockWriter buffers payload bytes and emits compressed blocks.
type blockWriter struct {
	w         io.Writer
	comp      Compression
	blockSize int
	buffer    *bytes.Buffer
}

func newBlockWriter(w io.Writer, comp Compression, blockSize int) *blockWriter {
	if blockSize <= 0 {
		blockSize = 256 * 1024
	}
	return &blockWriter{
		w:         w,
		comp:      comp,
		blockSize: blockSize,
		buffer:    bytes.NewBuffer(make([]byte, 0, blockSize)),
	}
}

func (c *blockWriter) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		space := c.blockSize - c.buffer.Len()
		if space <= 0 {
			if err := c.flushBlock(); err != nil {
				return total, err
			}
			space = c.blockSize
		}

		toWrite := len(p)
		if toWrite > space {
			toWrite = space
		}

		n, err := c.buffer.Write(p[:toWrite])
		if err != nil {
			return total, err
		}
		total += n
		p = p[n:]
	}
	return total, nil
}

func (c *blockWriter) flushBlock() error {
	if c.buffer.Len() == 0 {
		return nil
	}
	compressed, err := compressBlock(c.buffer.Bytes(), c.comp)
	if err != nil {
		return err
	}
	if _, err := c.w.Write(compressed); err != nil {
		return err
	}
	c.buffer.Reset()
	return nil
}

// Flush writes any remaining buffered data.
func (c *blockWriter) Flush() error {
	return c.flushBlock()
}

// decompressAll walks the block stream and concatenates the decompressed
// payloads.
func decompressAll(data []byte, comp Compression) ([]byte, error) {
	var result []byte
	off := 0
	for off < len(data) {
		if off+blockHeaderSize > len(data) {
			return nil, errors.New("truncated block header")
		}
		uncompressedSize := binary.LittleEndian.Uint32(data[off:])
		compressedSize := binary.LittleEndian.Uint32(data[off+4:])
		off += blockHeaderSize

		if compressedSize == 0 {
			if off+int(uncompressedSize) > len(data) {
				return nil, errors.New("block extends beyond data")
			}
			result = append(result, data[off:off+int(uncompressedSize)]...)
			off += int(uncompressedSize)
			continue
		}

		if off+int(compressedSize) > len(data) {
			return nil, errors.New("compressed block extends beyond data")
		}
		block, err := decompressBlockPayload(data[off:off+int(compressedSize)], uncompressedSize, comp)
		if err != nil {
			return nil, err
		}
		result = append(result, block...)
		off += int(compressedSize)
	}
	return result, nil
}
