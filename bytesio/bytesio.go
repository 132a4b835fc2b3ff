// Package bytesio provides the little-endian byte primitives the LAS wire
// format is built from: fixed-width numeric reads/writes and null-padded
// fixed-length strings.
//
// LAS files are little-endian end to end (ASPRS LAS ), so unlike a
// configurable-endianness engine there is exactly one byte order here.
// Keeping a single concrete implementation instead of an interface avoids an
// indirect call on every field access in the hot point-record codec path.
package bytesio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/goslas/lasgo/errs"
)

// ReadPaddedString reads exactly n bytes from r and returns the prefix up to
// (but not including) the first NUL byte, i.e. trailing NUL padding is
// discarded. A string shorter than n bytes on the wire is therefore
// reconstructed exactly; a string that fills all n bytes with no NUL
// terminator is returned in full.
func ReadPaddedString(r io.Reader, n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", ioErr(err)
	}

	return GetPaddedString(buf), nil
}

// WritePaddedString writes s to w followed by enough NUL bytes to reach
// exactly n total bytes. It fails with errs.ErrInvalidArgument if s is
// longer than n bytes.
func WritePaddedString(w io.Writer, s string, n int) error {
	buf := make([]byte, n)
	if err := PutPaddedString(buf, s, n); err != nil {
		return err
	}

	_, err := w.Write(buf)

	return ioErr(err)
}

// PutPaddedString writes s followed by NUL padding into dst, which must be
// exactly n bytes long. It fails with errs.ErrInvalidArgument if s does not
// fit.
func PutPaddedString(dst []byte, s string, n int) error {
	if len(dst) != n {
		return invalidArg("destination length %d does not match field width %d", len(dst), n)
	}
	if len(s) > n {
		return invalidArg("string %q (%d bytes) does not fit in %d bytes", s, len(s), n)
	}

	clear(dst)
	copy(dst, s)

	return nil
}

// GetPaddedString reads a NUL-padded string out of a fixed-width field
// already resident in memory (the decode-time counterpart of
// ReadPaddedString, used once the whole header/VLR has been buffered).
func GetPaddedString(src []byte) string {
	for i, b := range src {
		if b == 0 {
			return string(src[:i])
		}
	}

	return string(src)
}

const signature = "LASF"

// SkipSignature reads the 4-byte LAS file signature and fails with
// errs.ErrInvalidFormat if it does not read "LASF".
func SkipSignature(r io.Reader) error {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return ioErr(err)
	}
	if string(buf[:]) != signature {
		return fmt.Errorf("%w: signature %q, want %q", errs.ErrInvalidFormat, buf[:], signature)
	}

	return nil
}

// WriteSignature writes the 4-byte "LASF" file signature.
func WriteSignature(w io.Writer) error {
	_, err := w.Write([]byte(signature))
	return ioErr(err)
}

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errs.ErrInvalidArgument}, args...)...)
}

func ioErr(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", errs.ErrIoError, err)
}

// Float64ToBits and BitsToFloat64 convert an IEEE-754 double to/from its raw
// bit pattern, for callers building a field from its constituent parts.
func Float64ToBits(v float64) uint64 { return math.Float64bits(v) }
func BitsToFloat64(b uint64) float64 { return math.Float64frombits(b) }

// Engine is the fixed little-endian byte order used for every multi-byte
// LAS field. It is exposed so callers needing encoding/binary's ByteOrder
// interface (e.g. to share code with a generic reader) can get one without
// importing encoding/binary directly.
var Engine = binary.LittleEndian
