//go:build cgo

package compress

import "github.com/valyala/gozstd"

// Cgo zstd backend (valyala/gozstd, linked against libzstd), preferred over
// zstd_pure.go's pure-Go encoder/decoder whenever cgo is available: gozstd
// is consistently faster at the cost of a C toolchain dependency.

const zstdCgoLevel = 3

// Compress encodes data via libzstd at zstdCgoLevel.
func (ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdCgoLevel), nil
}

// Decompress decodes zstd-compressed data via libzstd.
func (ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
