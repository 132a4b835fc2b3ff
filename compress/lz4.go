package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4Compressors recycles lz4.Compressor values; each carries a match-finder
// table that's wasteful to reallocate per call.
var lz4Compressors = sync.Pool{
	New: func() any { return new(lz4.Compressor) },
}

// LZ4Compressor wraps pierrec/lz4/v4's block codec, the fastest backend in
// the registry; the LAZ fallback uses it when configured with AlgorithmLZ4.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor returns an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress block-compresses data. Returns nil for empty input.
func (LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	c, _ := lz4Compressors.Get().(*lz4.Compressor)
	defer lz4Compressors.Put(c)

	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// lz4InitialRatio and lz4MaxBufferBytes bound the guess-and-grow strategy
// Decompress uses since LZ4 blocks don't carry their own decoded size.
const (
	lz4InitialRatio   = 3
	lz4MaxBufferBytes = 128 << 20
)

// Decompress expands an LZ4 block. The decoded size isn't recorded in the
// block itself, so this grows its scratch buffer geometrically on
// ErrInvalidSourceShortBuffer until it fits or lz4MaxBufferBytes is hit.
func (LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size := len(data) * lz4InitialRatio
	if size == 0 {
		size = 64
	}

	for size <= lz4MaxBufferBytes {
		buf := make([]byte, size)

		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, err
		}

		size *= 2
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
