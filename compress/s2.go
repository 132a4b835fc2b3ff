package compress

import "github.com/klauspost/compress/s2"

// S2Compressor wraps klauspost/compress/s2, Snappy's faster
// block-compatible successor. Favoured over AlgorithmZstd when encode speed
// matters more than ratio, e.g. compressing a chunk table on every write.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor returns an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

func (S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

func (S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
