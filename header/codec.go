package header

import (
	"fmt"

	"github.com/goslas/lasgo/bytesio"
	"github.com/goslas/lasgo/errs"
	"github.com/goslas/lasgo/pointformat"
)

// Parse decodes a Header from data, which must be exactly as long as the
// header-size field it carries at offset [94..96). The LASF
// signature occupies the header's first 4 bytes and is verified here.
func Parse(data []byte) (*Header, error) {
	if len(data) < Size11 {
		return nil, fmt.Errorf("%w: header block is %d bytes, need at least %d", errs.ErrInvalidFormat, len(data), Size11)
	}

	if string(data[0:4]) != "LASF" {
		return nil, fmt.Errorf("%w: signature %q, want \"LASF\"", errs.ErrInvalidFormat, data[0:4])
	}

	declaredSize := bytesio.Engine.Uint16(data[94:96])
	if int(declaredSize) != len(data) {
		return nil, fmt.Errorf("%w: header size field says %d, block is %d bytes",
			errs.ErrInconsistentHeader, declaredSize, len(data))
	}

	h := &Header{}
	h.FileSourceID = bytesio.Engine.Uint16(data[4:6])
	h.GlobalEncoding = bytesio.Engine.Uint16(data[6:8])

	h.GUID.Data1 = bytesio.Engine.Uint32(data[8:12])
	h.GUID.Data2 = bytesio.Engine.Uint16(data[12:14])
	h.GUID.Data3 = bytesio.Engine.Uint16(data[14:16])
	copy(h.GUID.Data4[:], data[16:24])

	h.Version.Major = data[24]
	h.Version.Minor = data[25]
	if !isSupportedVersion(h.Version) {
		return nil, fmt.Errorf("%w: version %d.%d", errs.ErrUnsupportedVersion, h.Version.Major, h.Version.Minor)
	}

	h.SystemIdentifier = bytesio.GetPaddedString(data[26:58])
	h.SoftwareIdentifier = bytesio.GetPaddedString(data[58:90])

	h.CreationDayOfYear = bytesio.Engine.Uint16(data[90:92])
	h.CreationYear = bytesio.Engine.Uint16(data[92:94])
	h.headerSize = declaredSize

	h.DataOffset = bytesio.Engine.Uint32(data[96:100])
	h.VLRCount = bytesio.Engine.Uint32(data[100:104])

	format := pointformat.Format(data[104])
	if _, err := pointformat.Spec(format); err != nil {
		return nil, err
	}
	h.PointFormat = format

	h.PointRecordLength = bytesio.Engine.Uint16(data[105:107])
	h.LegacyPointCount = bytesio.Engine.Uint32(data[107:111])

	for i := range h.LegacyPointsByReturn {
		off := 111 + i*4
		h.LegacyPointsByReturn[i] = bytesio.Engine.Uint32(data[off : off+4])
	}

	h.Scale.X = bytesio.BitsToFloat64(bytesio.Engine.Uint64(data[131:139]))
	h.Scale.Y = bytesio.BitsToFloat64(bytesio.Engine.Uint64(data[139:147]))
	h.Scale.Z = bytesio.BitsToFloat64(bytesio.Engine.Uint64(data[147:155]))

	h.Offset.X = bytesio.BitsToFloat64(bytesio.Engine.Uint64(data[155:163]))
	h.Offset.Y = bytesio.BitsToFloat64(bytesio.Engine.Uint64(data[163:171]))
	h.Offset.Z = bytesio.BitsToFloat64(bytesio.Engine.Uint64(data[171:179]))

	h.Max.X = bytesio.BitsToFloat64(bytesio.Engine.Uint64(data[179:187]))
	h.Min.X = bytesio.BitsToFloat64(bytesio.Engine.Uint64(data[187:195]))
	h.Max.Y = bytesio.BitsToFloat64(bytesio.Engine.Uint64(data[195:203]))
	h.Min.Y = bytesio.BitsToFloat64(bytesio.Engine.Uint64(data[203:211]))
	h.Max.Z = bytesio.BitsToFloat64(bytesio.Engine.Uint64(data[211:219]))
	h.Min.Z = bytesio.BitsToFloat64(bytesio.Engine.Uint64(data[219:227]))

	if h.Version.AtLeast(pointformat.V1_3) {
		h.WaveformRecordStart = bytesio.Engine.Uint64(data[227:235])
	}

	if h.Version.AtLeast(pointformat.V1_4) {
		h.EVLRStart = bytesio.Engine.Uint64(data[235:243])
		h.EVLRCount = bytesio.Engine.Uint32(data[243:247])
		h.PointCount = bytesio.Engine.Uint64(data[247:255])

		for i := range h.PointsByReturn {
			off := 255 + i*8
			h.PointsByReturn[i] = bytesio.Engine.Uint64(data[off : off+8])
		}
	} else {
		h.PointCount = uint64(h.LegacyPointCount)
	}

	return h, nil
}

// Bytes encodes h into its fixed-size wire layout, whose length is
// SizeForVersion(h.Version).
func (h *Header) Bytes() []byte {
	size := SizeForVersion(h.Version)
	b := make([]byte, size)

	copy(b[0:4], "LASF")
	bytesio.Engine.PutUint16(b[4:6], h.FileSourceID)
	bytesio.Engine.PutUint16(b[6:8], h.GlobalEncoding)

	bytesio.Engine.PutUint32(b[8:12], h.GUID.Data1)
	bytesio.Engine.PutUint16(b[12:14], h.GUID.Data2)
	bytesio.Engine.PutUint16(b[14:16], h.GUID.Data3)
	copy(b[16:24], h.GUID.Data4[:])

	b[24] = h.Version.Major
	b[25] = h.Version.Minor

	_ = bytesio.PutPaddedString(b[26:58], h.SystemIdentifier, 32)
	_ = bytesio.PutPaddedString(b[58:90], h.SoftwareIdentifier, 32)

	bytesio.Engine.PutUint16(b[90:92], h.CreationDayOfYear)
	bytesio.Engine.PutUint16(b[92:94], h.CreationYear)
	bytesio.Engine.PutUint16(b[94:96], size)

	bytesio.Engine.PutUint32(b[96:100], h.DataOffset)
	bytesio.Engine.PutUint32(b[100:104], h.VLRCount)
	b[104] = byte(h.PointFormat)
	bytesio.Engine.PutUint16(b[105:107], h.PointRecordLength)
	bytesio.Engine.PutUint32(b[107:111], h.LegacyPointCount)

	for i, v := range h.LegacyPointsByReturn {
		off := 111 + i*4
		bytesio.Engine.PutUint32(b[off:off+4], v)
	}

	bytesio.Engine.PutUint64(b[131:139], bytesio.Float64ToBits(h.Scale.X))
	bytesio.Engine.PutUint64(b[139:147], bytesio.Float64ToBits(h.Scale.Y))
	bytesio.Engine.PutUint64(b[147:155], bytesio.Float64ToBits(h.Scale.Z))

	bytesio.Engine.PutUint64(b[155:163], bytesio.Float64ToBits(h.Offset.X))
	bytesio.Engine.PutUint64(b[163:171], bytesio.Float64ToBits(h.Offset.Y))
	bytesio.Engine.PutUint64(b[171:179], bytesio.Float64ToBits(h.Offset.Z))

	bytesio.Engine.PutUint64(b[179:187], bytesio.Float64ToBits(h.Max.X))
	bytesio.Engine.PutUint64(b[187:195], bytesio.Float64ToBits(h.Min.X))
	bytesio.Engine.PutUint64(b[195:203], bytesio.Float64ToBits(h.Max.Y))
	bytesio.Engine.PutUint64(b[203:211], bytesio.Float64ToBits(h.Min.Y))
	bytesio.Engine.PutUint64(b[211:219], bytesio.Float64ToBits(h.Max.Z))
	bytesio.Engine.PutUint64(b[219:227], bytesio.Float64ToBits(h.Min.Z))

	if h.Version.AtLeast(pointformat.V1_3) {
		bytesio.Engine.PutUint64(b[227:235], h.WaveformRecordStart)
	}

	if h.Version.AtLeast(pointformat.V1_4) {
		bytesio.Engine.PutUint64(b[235:243], h.EVLRStart)
		bytesio.Engine.PutUint32(b[243:247], h.EVLRCount)
		bytesio.Engine.PutUint64(b[247:255], h.PointCount)

		for i, v := range h.PointsByReturn {
			off := 255 + i*8
			bytesio.Engine.PutUint64(b[off:off+8], v)
		}
	}

	return b
}
