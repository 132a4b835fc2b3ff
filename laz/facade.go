// Package laz provides the LAZ transport boundary: compressing and
// decompressing a whole LAS byte stream as an external collaborator, never
// an in-process arithmetic coder.
//
// Facade first looks for a laszip-compatible binary on PATH and shells out
// to it, the way a production pipeline would. When no such binary is
// available — most CI environments, a bare container — it falls back to a
// pure-Go transform built on the compress package, so the facade's
// interface and error paths stay exercised without requiring the real tool.
// The fallback's output is not LASzip-conformant and is marked as such; it
// is for testing this library, not for producing files other LAZ readers
// can open.
package laz

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/goslas/lasgo/compress"
	"github.com/goslas/lasgo/errs"
	"github.com/goslas/lasgo/internal/options"
)

// fallbackMagic marks a payload produced by the pure-Go fallback transform
// rather than a real laszip binary. It deliberately does not start with
// "LASF" so a caller can never mistake it for a conformant .las/.laz file.
var fallbackMagic = [4]byte{'L', 'Z', 'G', 'O'}

// Facade compresses and decompresses whole LAS byte streams across the LAZ
// boundary.
type Facade struct {
	toolPath    string
	toolPathSet bool
	algorithm   compress.Algorithm
}

// New builds a Facade. By default it looks for "laszip64" then "laszip" on
// PATH and falls back to AlgorithmZstd if neither is found.
func New(opts ...Option) (*Facade, error) {
	f := &Facade{algorithm: compress.AlgorithmZstd}

	if err := options.Apply(f, opts...); err != nil {
		return nil, err
	}

	if !f.toolPathSet {
		f.toolPath = findLaszip()
	}

	return f, nil
}

func findLaszip() string {
	for _, name := range []string{"laszip64", "laszip"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// HasExternalTool reports whether a laszip-compatible binary was found (or
// configured) for this facade. When false, Compress/Decompress use the
// pure-Go fallback transform.
func (f *Facade) HasExternalTool() bool {
	return f.toolPath != ""
}

// Compress turns an uncompressed .las byte stream into a .laz one.
func (f *Facade) Compress(lasData []byte) ([]byte, error) {
	if f.HasExternalTool() {
		return f.runTool(lasData, ".las", ".laz")
	}

	return f.fallbackCompress(lasData)
}

// Decompress turns a .laz byte stream back into an uncompressed .las one.
func (f *Facade) Decompress(lazData []byte) ([]byte, error) {
	if isFallbackPayload(lazData) {
		return f.fallbackDecompress(lazData)
	}

	if !f.HasExternalTool() {
		return nil, fmt.Errorf("%w: no laszip binary on PATH and data is not a fallback payload", errs.ErrExternalTool)
	}

	return f.runTool(lazData, ".laz", ".las")
}

// runTool writes data to a temp file with inExt, invokes the configured
// laszip binary to produce a sibling file with outExt, and returns its
// contents (grounded on the external-process pattern in
// other_examples/…laszip_wrapper.go, minus the cgo binding: this facade
// shells out to the tool instead of linking against it).
func (f *Facade) runTool(data []byte, inExt, outExt string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "lasgo-laz-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIoError, err)
	}
	defer os.RemoveAll(dir)

	inPath := filepath.Join(dir, "data"+inExt)
	outPath := filepath.Join(dir, "data"+outExt)

	if err := os.WriteFile(inPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIoError, err)
	}

	cmd := exec.Command(f.toolPath, "-i", inPath, "-o", outPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrExternalTool, stderr.String(), err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrExternalTool, err)
	}

	return out, nil
}

func (f *Facade) fallbackCompress(data []byte) ([]byte, error) {
	codec, err := compress.GetCodec(f.algorithm)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 4+1+4+len(compressed))
	out = append(out, fallbackMagic[:]...)
	out = append(out, byte(f.algorithm))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(data)))
	out = append(out, compressed...)

	return out, nil
}

func (f *Facade) fallbackDecompress(data []byte) ([]byte, error) {
	if len(data) < 9 {
		return nil, fmt.Errorf("%w: fallback payload too short", errs.ErrInvalidFormat)
	}

	algorithm := compress.Algorithm(data[4])
	originalSize := binary.LittleEndian.Uint32(data[5:9])

	codec, err := compress.GetCodec(algorithm)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(data[9:])
	if err != nil {
		return nil, err
	}

	if uint32(len(out)) != originalSize {
		return nil, fmt.Errorf("%w: fallback payload decompressed to %d bytes, expected %d",
			errs.ErrInvalidFormat, len(out), originalSize)
	}

	return out, nil
}

func isFallbackPayload(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[:4], fallbackMagic[:])
}
