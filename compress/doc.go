// Package compress provides compression and decompression codecs used by
// the pure-Go LAZ fallback.
//
// # Overview
//
// LAZ's point-data stream is always LASzip's own arithmetic-coded format;
// this package has nothing to do with that codec. Its one user is the laz
// package's fallback path, which compresses a whole uncompressed LAS byte
// stream with a general-purpose byte compressor when no external LAZ tool
// is available. Four algorithms are available:
//   - None: no compression (fastest, largest)
//   - Zstd: best compression ratio, moderate speed
//   - S2: balanced compression and speed
//   - LZ4: fast decompression, moderate compression
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Selecting an algorithm
//
//	codec, err := compress.GetCodec(compress.AlgorithmZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(data)
//
// | Algorithm | Ratio      | Speed                      |
// |-----------|------------|----------------------------|
// | None      | 1.0x       | instant                    |
// | Zstd      | best       | moderate compress/decomp   |
// | S2        | good       | fast both ways             |
// | LZ4       | moderate   | very fast decompression    |
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use.
//
// # Error Handling
//
// Decompression errors are the common case: corrupted input, a mismatched
// algorithm, or a size that exceeds what the caller allocated for. All
// errors returned by this package carry enough context to diagnose which.
package compress
