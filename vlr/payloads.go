package vlr

import (
	"github.com/goslas/lasgo/bytesio"
)

// Well-known user-ids.
const (
	UserIDSpec       = "LASF_Spec"
	UserIDProjection = "LASF_Projection"
)

// Well-known record-ids.
const (
	RecordClassificationLookup = 0
	RecordTextAreaDescription  = 3
	RecordExtraBytes           = 4
	RecordWaveformPacketMin    = 100
	RecordWaveformPacketMax    = 354
	RecordSuperseded           = 7
	RecordGeoKeys              = 34735
	RecordGeoDoubleParams      = 34736
	RecordGeoAsciiParams       = 34737
	RecordOGCWKT               = 2112
)

// KeyEntry is one GeoTIFF key inside a GeoKeys directory.
type KeyEntry struct {
	KeyID        uint16
	TIFFTagLoc   uint16
	Count        uint16
	ValueOffset  uint16
}

// GeoKeys is the GeoTIFF-derived coordinate-system key directory (user
// LASF_Projection, record 34735).
type GeoKeys struct {
	KeyDirectoryVersion uint16
	KeyRevision         uint16
	MinorRevision       uint16
	Keys                []KeyEntry
}

// GeoDoubleParamsTag is an array of f64 parameters referenced by GeoKeys
// entries whose TIFFTagLoc points here (record 34736).
type GeoDoubleParamsTag struct {
	Values []float64
}

// GeoAsciiParamsTag is a null-delimited ASCII blob referenced by GeoKeys
// entries whose TIFFTagLoc points here (record 34737).
type GeoAsciiParamsTag struct {
	Text string
}

// OGCWKT is a null-terminated WKT coordinate-system string (record 2112).
type OGCWKT struct {
	WKT string
}

// ClassificationEntry names one classification code.
type ClassificationEntry struct {
	Class       uint8
	Description string // <= 15 bytes
}

// ClassificationLookup is up to 256 classification-code descriptions (user
// LASF_Spec, record 0, or 7 once superseded).
type ClassificationLookup struct {
	Entries []ClassificationEntry
}

// TextAreaDescription is a free-form ASCII blob (record 3).
type TextAreaDescription struct {
	Text string
}

// ExtraBytes is the single VLR documenting every user-defined point-table
// column (record 4); every extra-byte record in a file lives here.
type ExtraBytes struct {
	Records []ExtraBytesEntry
}

// ExtraBytesEntry is one 192-byte extra-bytes record.
type ExtraBytesEntry struct {
	Reserved    [2]byte
	DataType    uint8
	Options     uint8
	Name        string // 32 bytes
	NoData      [3][8]byte
	Min         [3][8]byte
	Max         [3][8]byte
	Scale       [3][8]byte
	Offset      [3][8]byte
	Description string // 32 bytes
}

// WaveformPacketDescriptor describes one waveform packet's digitizer
// parameters (record 100..354, the record-id itself is the descriptor
// index).
type WaveformPacketDescriptor struct {
	BitsPerSample        uint8
	CompressionType       uint8
	NumberOfSamples       uint32
	TemporalSampleSpacing uint32
	DigitizerGain         float64
	DigitizerOffset       float64
}

func init() {
	registerGeoKeys()
	registerGeoDoubleParams()
	registerGeoAsciiParams()
	registerOGCWKT()
	registerClassificationLookup()
	registerTextAreaDescription()
	registerExtraBytes()
}

func registerGeoKeys() {
	_ = Register("GeoKeys", UserIDProjection, []uint16{RecordGeoKeys}, Codec{
		Decode: func(data []byte) (any, error) {
			if len(data) < 8 {
				return nil, errNotEnoughData("GeoKeys", 8, len(data))
			}

			g := GeoKeys{
				KeyDirectoryVersion: bytesio.Engine.Uint16(data[0:2]),
				KeyRevision:         bytesio.Engine.Uint16(data[2:4]),
				MinorRevision:       bytesio.Engine.Uint16(data[4:6]),
			}

			count := int(bytesio.Engine.Uint16(data[6:8]))
			need := 8 + count*8
			if len(data) < need {
				return nil, errNotEnoughData("GeoKeys", need, len(data))
			}

			g.Keys = make([]KeyEntry, count)
			for i := range g.Keys {
				off := 8 + i*8
				g.Keys[i] = KeyEntry{
					KeyID:       bytesio.Engine.Uint16(data[off : off+2]),
					TIFFTagLoc:  bytesio.Engine.Uint16(data[off+2 : off+4]),
					Count:       bytesio.Engine.Uint16(data[off+4 : off+6]),
					ValueOffset: bytesio.Engine.Uint16(data[off+6 : off+8]),
				}
			}

			return g, nil
		},
		Encode: func(payload any) ([]byte, error) {
			g := payload.(GeoKeys)
			buf := make([]byte, 8+len(g.Keys)*8)

			bytesio.Engine.PutUint16(buf[0:2], g.KeyDirectoryVersion)
			bytesio.Engine.PutUint16(buf[2:4], g.KeyRevision)
			bytesio.Engine.PutUint16(buf[4:6], g.MinorRevision)
			bytesio.Engine.PutUint16(buf[6:8], uint16(len(g.Keys)))

			for i, k := range g.Keys {
				off := 8 + i*8
				bytesio.Engine.PutUint16(buf[off:off+2], k.KeyID)
				bytesio.Engine.PutUint16(buf[off+2:off+4], k.TIFFTagLoc)
				bytesio.Engine.PutUint16(buf[off+4:off+6], k.Count)
				bytesio.Engine.PutUint16(buf[off+6:off+8], k.ValueOffset)
			}

			return buf, nil
		},
	})
}

func registerGeoDoubleParams() {
	_ = Register("GeoDoubleParamsTag", UserIDProjection, []uint16{RecordGeoDoubleParams}, Codec{
		Decode: func(data []byte) (any, error) {
			if len(data)%8 != 0 {
				return nil, errNotEnoughData("GeoDoubleParamsTag", (len(data)/8+1)*8, len(data))
			}

			n := len(data) / 8
			values := make([]float64, n)
			for i := range values {
				values[i] = bytesio.BitsToFloat64(bytesio.Engine.Uint64(data[i*8 : i*8+8]))
			}

			return GeoDoubleParamsTag{Values: values}, nil
		},
		Encode: func(payload any) ([]byte, error) {
			g := payload.(GeoDoubleParamsTag)
			buf := make([]byte, len(g.Values)*8)
			for i, v := range g.Values {
				bytesio.Engine.PutUint64(buf[i*8:i*8+8], bytesio.Float64ToBits(v))
			}

			return buf, nil
		},
	})
}

func registerGeoAsciiParams() {
	_ = Register("GeoAsciiParamsTag", UserIDProjection, []uint16{RecordGeoAsciiParams}, Codec{
		Decode: func(data []byte) (any, error) {
			return GeoAsciiParamsTag{Text: bytesio.GetPaddedString(data)}, nil
		},
		Encode: func(payload any) ([]byte, error) {
			g := payload.(GeoAsciiParamsTag)
			return []byte(g.Text), nil
		},
	})
}

func registerOGCWKT() {
	_ = Register("OGC_WKT", UserIDProjection, []uint16{RecordOGCWKT}, Codec{
		Decode: func(data []byte) (any, error) {
			return OGCWKT{WKT: bytesio.GetPaddedString(data)}, nil
		},
		Encode: func(payload any) ([]byte, error) {
			w := payload.(OGCWKT)
			buf := make([]byte, len(w.WKT)+1)
			copy(buf, w.WKT)

			return buf, nil
		},
	})
}

func registerClassificationLookup() {
	decode := func(data []byte) (any, error) {
		if len(data)%16 != 0 {
			return nil, errNotEnoughData("ClassificationLookup", (len(data)/16+1)*16, len(data))
		}

		n := len(data) / 16
		entries := make([]ClassificationEntry, n)
		for i := range entries {
			off := i * 16
			entries[i] = ClassificationEntry{
				Class:       data[off],
				Description: bytesio.GetPaddedString(data[off+1 : off+16]),
			}
		}

		return ClassificationLookup{Entries: entries}, nil
	}
	encode := func(payload any) ([]byte, error) {
		c := payload.(ClassificationLookup)
		buf := make([]byte, len(c.Entries)*16)
		for i, e := range c.Entries {
			off := i * 16
			buf[off] = e.Class
			_ = bytesio.PutPaddedString(buf[off+1:off+16], e.Description, 15)
		}

		return buf, nil
	}

	codec := Codec{Decode: decode, Encode: encode}
	_ = Register("ClassificationLookup", UserIDSpec, []uint16{RecordClassificationLookup, RecordSuperseded}, codec)
}

func registerTextAreaDescription() {
	_ = Register("TextAreaDescription", UserIDSpec, []uint16{RecordTextAreaDescription}, Codec{
		Decode: func(data []byte) (any, error) {
			return TextAreaDescription{Text: bytesio.GetPaddedString(data)}, nil
		},
		Encode: func(payload any) ([]byte, error) {
			t := payload.(TextAreaDescription)
			return []byte(t.Text), nil
		},
	})
}

// extraBytesEntrySize is the fixed wire size of one ExtraBytesEntry:
// reserved, data-type, options, a 32-byte name, no-data/min/max/scale/offset
// at 8 bytes each x3, and a 32-byte description (188 bytes), followed by
// 4 bytes that are written as zero and ignored on read.
const extraBytesEntrySize = 192

func registerExtraBytes() {
	_ = Register("ExtraBytes", UserIDSpec, []uint16{RecordExtraBytes}, Codec{
		Decode: decodeExtraBytes,
		Encode: encodeExtraBytes,
	})
}

func decodeExtraBytes(data []byte) (any, error) {
	if len(data)%extraBytesEntrySize != 0 {
		return nil, errNotEnoughData("ExtraBytes", (len(data)/extraBytesEntrySize+1)*extraBytesEntrySize, len(data))
	}

	n := len(data) / extraBytesEntrySize
	records := make([]ExtraBytesEntry, n)

	for i := range records {
		off := i * extraBytesEntrySize
		rec := data[off : off+extraBytesEntrySize]

		var e ExtraBytesEntry
		copy(e.Reserved[:], rec[0:2])
		e.DataType = rec[2]
		e.Options = rec[3]
		e.Name = bytesio.GetPaddedString(rec[4:36])

		pos := 36
		copy(e.NoData[0][:], rec[pos:pos+8])
		copy(e.NoData[1][:], rec[pos+8:pos+16])
		copy(e.NoData[2][:], rec[pos+16:pos+24])
		pos += 24
		copy(e.Min[0][:], rec[pos:pos+8])
		copy(e.Min[1][:], rec[pos+8:pos+16])
		copy(e.Min[2][:], rec[pos+16:pos+24])
		pos += 24
		copy(e.Max[0][:], rec[pos:pos+8])
		copy(e.Max[1][:], rec[pos+8:pos+16])
		copy(e.Max[2][:], rec[pos+16:pos+24])
		pos += 24
		copy(e.Scale[0][:], rec[pos:pos+8])
		copy(e.Scale[1][:], rec[pos+8:pos+16])
		copy(e.Scale[2][:], rec[pos+16:pos+24])
		pos += 24
		copy(e.Offset[0][:], rec[pos:pos+8])
		copy(e.Offset[1][:], rec[pos+8:pos+16])
		copy(e.Offset[2][:], rec[pos+16:pos+24])
		pos += 24

		e.Description = bytesio.GetPaddedString(rec[pos : pos+32])

		records[i] = e
	}

	return ExtraBytes{Records: records}, nil
}

func encodeExtraBytes(payload any) ([]byte, error) {
	eb := payload.(ExtraBytes)
	buf := make([]byte, len(eb.Records)*extraBytesEntrySize)

	for i, e := range eb.Records {
		off := i * extraBytesEntrySize
		rec := buf[off : off+extraBytesEntrySize]

		copy(rec[0:2], e.Reserved[:])
		rec[2] = e.DataType
		rec[3] = e.Options
		_ = bytesio.PutPaddedString(rec[4:36], e.Name, 32)

		pos := 36
		for _, group := range [][3][8]byte{e.NoData, e.Min, e.Max, e.Scale, e.Offset} {
			for j, b8 := range group {
				copy(rec[pos+j*8:pos+j*8+8], b8[:])
			}
			pos += 24
		}

		_ = bytesio.PutPaddedString(rec[pos:pos+32], e.Description, 32)
	}

	return buf, nil
}
