package compress

// NoOpCompressor is the identity codec: it hands back its input unchanged.
// Used as the AlgorithmNone entry in the codec registry so callers can pick
// "no compression" through the same Codec interface as the real backends,
// and as a baseline for comparing compression ratios.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor returns the identity codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unmodified; the returned slice aliases the input.
func (NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unmodified; the returned slice aliases the input.
func (NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
