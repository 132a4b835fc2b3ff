// Package header models the LAS file header block: a 227-byte (version 1.1,
// 1.2), 235-byte (1.3), or 375-byte (1.4) fixed-layout record carrying file
// identity, format version, point-format/record-length, spatial scale/offset/
// range, and the counters and offsets tying the rest of the file together.
package header

import (
	"fmt"
	"math"

	"github.com/goslas/lasgo/errs"
	"github.com/goslas/lasgo/pointformat"
	"github.com/goslas/lasgo/spatial"
)

// Sizes of the header block at each spec version.
const (
	Size11 = 227
	Size13 = 235
	Size14 = 375
)

// Global-encoding bit positions.
const (
	bitGPSTimeKind       = 0
	bitWaveformInternal  = 1
	bitWaveformExternal  = 2
	bitSyntheticReturns  = 3
	bitWKTCRS            = 4
)

// GUID is a project-wide identifier in the Microsoft-style mixed-endian
// layout the LAS spec inherited: a little-endian u32, two little-endian
// u16s, then 8 raw bytes.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// Header is the decoded, mutable LAS header block.
type Header struct {
	FileSourceID   uint16
	GlobalEncoding uint16
	GUID           GUID
	Version        pointformat.Version

	SystemIdentifier   string
	SoftwareIdentifier string

	CreationDayOfYear uint16
	CreationYear      uint16

	headerSize        uint16
	DataOffset        uint32
	VLRCount          uint32
	PointFormat       pointformat.Format
	PointRecordLength uint16

	LegacyPointCount     uint32
	LegacyPointsByReturn [5]uint32

	Scale  spatial.AxisInfo[float64]
	Offset spatial.AxisInfo[float64]
	Min    spatial.AxisInfo[float64]
	Max    spatial.AxisInfo[float64]

	WaveformRecordStart uint64 // spec >= 1.3

	EVLRStart      uint64 // spec >= 1.4
	EVLRCount      uint32 // spec >= 1.4
	PointCount     uint64 // spec >= 1.4
	PointsByReturn [15]uint64
}

// New builds a header for a fresh dataset: the given spec version and point
// format, the minimum header size for that version, a default unit scale,
// and a point-data offset equal to the header size (no VLRs yet).
func New(version pointformat.Version, format pointformat.Format) (*Header, error) {
	size, err := pointformat.Size(format)
	if err != nil {
		return nil, err
	}

	min, err := pointformat.MinVersion(format)
	if err != nil {
		return nil, err
	}
	if !version.AtLeast(min) {
		version = min
	}

	h := &Header{
		Version:           version,
		PointFormat:       format,
		PointRecordLength: uint16(size),
		Scale:             spatial.AxisInfo[float64]{X: spatial.DefaultScale, Y: spatial.DefaultScale, Z: spatial.DefaultScale},
	}
	h.headerSize = SizeForVersion(version)
	h.DataOffset = uint32(h.headerSize)

	if format.IsExtended() {
		h.SetWKTCRS(true)
	}

	return h, nil
}

// SizeForVersion returns the fixed header block size for a given version.
func SizeForVersion(v pointformat.Version) uint16 {
	switch {
	case v.AtLeast(pointformat.V1_4):
		return Size14
	case v.AtLeast(pointformat.V1_3):
		return Size13
	default:
		return Size11
	}
}

// HeaderSize returns the header's own recorded size field.
func (h *Header) HeaderSize() uint16 { return h.headerSize }

// SetLasVersion asserts the current point format is representable in newV,
// rewrites the header size and adjusts the point-data offset by the delta,
// and refreshes the point counts so they remain consistent.
func (h *Header) SetLasVersion(newV pointformat.Version) error {
	if !isSupportedVersion(newV) {
		return fmt.Errorf("%w: version %d.%d", errs.ErrUnsupportedVersion, newV.Major, newV.Minor)
	}

	min, err := pointformat.MinVersion(h.PointFormat)
	if err != nil {
		return err
	}
	if !newV.AtLeast(min) {
		return fmt.Errorf("%w: point format %d requires at least version %d.%d",
			errs.ErrUnsupportedVersion, h.PointFormat, min.Major, min.Minor)
	}

	oldSize := h.headerSize
	newSize := SizeForVersion(newV)

	h.Version = newV
	h.headerSize = newSize
	h.DataOffset = uint32(int64(h.DataOffset) + int64(newSize) - int64(oldSize))

	return h.SetPointRecordCount(h.PointCount)
}

func isSupportedVersion(v pointformat.Version) bool {
	return v.Major == 1 && v.Minor >= 1 && v.Minor <= 4
}

// SetPointFormat computes the minimum required spec version for newFmt; if
// the header's current version is lower, it is upgraded (never downgraded).
// The point-record length is adjusted by the format's size delta and counts
// are refreshed.
func (h *Header) SetPointFormat(newFmt pointformat.Format) error {
	oldSize, err := pointformat.Size(h.PointFormat)
	if err != nil {
		return err
	}
	newSize, err := pointformat.Size(newFmt)
	if err != nil {
		return err
	}
	min, err := pointformat.MinVersion(newFmt)
	if err != nil {
		return err
	}

	h.PointFormat = newFmt
	h.PointRecordLength = uint16(int(h.PointRecordLength) + newSize - oldSize)

	if newFmt.IsExtended() {
		h.SetWKTCRS(true)
	}

	if !h.Version.AtLeast(min) {
		return h.SetLasVersion(min)
	}

	return h.SetPointRecordCount(h.PointCount)
}

// SetPointRecordCount updates the authoritative 64-bit point count, and the
// legacy 32-bit count too when the current point format is representable in
// the legacy counters (format <= 5). It fails with errs.ErrCountTooLarge if
// n cannot fit a u32 legacy counter when one is required.
func (h *Header) SetPointRecordCount(n uint64) error {
	needsLegacy := h.PointFormat <= pointformat.Format5 || !h.Version.AtLeast(pointformat.V1_4)

	if needsLegacy && n > math.MaxUint32 {
		return fmt.Errorf("%w: %d exceeds the legacy 32-bit point count", errs.ErrCountTooLarge, n)
	}

	h.PointCount = n
	if needsLegacy {
		h.LegacyPointCount = uint32(n)
	} else {
		h.LegacyPointCount = 0
	}

	return nil
}

// bit reports whether global-encoding bit i is set.
func (h *Header) bit(i uint) bool { return h.GlobalEncoding&(1<<i) != 0 }

func (h *Header) setBit(i uint, v bool) {
	if v {
		h.GlobalEncoding |= 1 << i
	} else {
		h.GlobalEncoding &^= 1 << i
	}
}

// GPSTimeKindStandard reports whether GPS time is Standard (true) or Week
// (false) time.
func (h *Header) GPSTimeKindStandard() bool { return h.bit(bitGPSTimeKind) }

// SetGPSTimeKindStandard sets the GPS-time-kind bit.
func (h *Header) SetGPSTimeKindStandard(standard bool) { h.setBit(bitGPSTimeKind, standard) }

// WaveformInternal reports whether waveform data is stored inline in this
// file.
func (h *Header) WaveformInternal() bool { return h.bit(bitWaveformInternal) }

// SetWaveformInternal sets the waveform-internal bit, clearing
// waveform-external since the two are mutually exclusive.
func (h *Header) SetWaveformInternal(v bool) {
	h.setBit(bitWaveformInternal, v)
	if v {
		h.setBit(bitWaveformExternal, false)
	}
}

// WaveformExternal reports whether waveform data lives in a sibling .wdp
// file.
func (h *Header) WaveformExternal() bool { return h.bit(bitWaveformExternal) }

// SetWaveformExternal sets the waveform-external bit, clearing
// waveform-internal since the two are mutually exclusive.
func (h *Header) SetWaveformExternal(v bool) {
	h.setBit(bitWaveformExternal, v)
	if v {
		h.setBit(bitWaveformInternal, false)
	}
}

// SyntheticReturns reports whether the synthetic-returns bit is set.
func (h *Header) SyntheticReturns() bool { return h.bit(bitSyntheticReturns) }

// SetSyntheticReturns sets the synthetic-returns bit.
func (h *Header) SetSyntheticReturns(v bool) { h.setBit(bitSyntheticReturns, v) }

// WKTCRS returns the WKT-CRS bit, failing with errs.ErrInconsistentHeader if
// the point format requires WKT (format >= 6) but the bit is unset.
func (h *Header) WKTCRS() (bool, error) {
	v := h.bit(bitWKTCRS)
	if h.PointFormat.IsExtended() && !v {
		return false, fmt.Errorf("%w: point format %d requires the WKT-CRS bit, but it is unset",
			errs.ErrInconsistentHeader, h.PointFormat)
	}

	return v, nil
}

// SetWKTCRS sets the WKT-CRS bit.
func (h *Header) SetWKTCRS(v bool) { h.setBit(bitWKTCRS, v) }
