package pointformat

import (
	"fmt"
	"math"

	"github.com/goslas/lasgo/bytesio"
	"github.com/goslas/lasgo/errs"
	"github.com/goslas/lasgo/spatial"
)

// coreSize is the byte width of the columns every point format shares:
// X, Y, Z, intensity, flags, classification, scan angle, user data, point
// source id.
const coreSize = 20

// extendedCoreSize is the byte width of the shared columns in the formats
// 6-10 layout (wider classification byte, 16-bit scan angle).
const extendedCoreSize = 22

// BuildRecord encodes fields into buf according to format f's fixed layout.
// buf must be exactly the format's wire size (pointformat.Size). Scale and
// offset convert the real-valued X/Y/Z into raw signed-32 coordinates.
func BuildRecord(buf []byte, f Format, fields Fields, scale, offset spatial.AxisInfo[float64]) error {
	spec, err := Spec(f)
	if err != nil {
		return err
	}
	if len(buf) != spec.Size {
		return fmt.Errorf("%w: buffer is %d bytes, format %d needs %d", errs.ErrInvalidArgument, len(buf), f, spec.Size)
	}

	bytesio.Engine.PutUint32(buf[0:4], uint32(spatial.RealToRaw(fields.X, scale.X, offset.X)))
	bytesio.Engine.PutUint32(buf[4:8], uint32(spatial.RealToRaw(fields.Y, scale.Y, offset.Y)))
	bytesio.Engine.PutUint32(buf[8:12], uint32(spatial.RealToRaw(fields.Z, scale.Z, offset.Z)))
	bytesio.Engine.PutUint16(buf[12:14], normToU16(fields.Intensity))

	tail := buf[coreSize:]

	returnNumber, numberOfReturns := fields.ReturnNumber, fields.NumberOfReturns
	if f.IsExtended() {
		returnNumber = clampUint8(returnNumber, 15)
		numberOfReturns = clampUint8(numberOfReturns, 15)
	} else {
		returnNumber = clampUint8(returnNumber, 5)
		numberOfReturns = clampUint8(numberOfReturns, 5)
	}

	if f.IsExtended() {
		buf[14] = packFlagByte1(returnNumber, numberOfReturns)
		buf[15] = packFlagByte2(fields.Synthetic, fields.KeyPoint, fields.Withheld, fields.Overlap,
			fields.ScannerChannel, fields.ScanDirection, fields.EdgeOfFlight)
		buf[16] = fields.Classification
		buf[17] = fields.UserData
		bytesio.Engine.PutUint16(buf[18:20], uint16(encodeExtendedScanAngle(fields.ScanAngle)))
		bytesio.Engine.PutUint16(buf[20:22], fields.PointSourceID)
		tail = buf[extendedCoreSize:]
	} else {
		buf[14] = packFlagsLegacy(returnNumber, numberOfReturns, fields.ScanDirection, fields.EdgeOfFlight)
		buf[15] = packClassificationLegacy(fields.Classification, fields.Synthetic, fields.KeyPoint, fields.Withheld)
		buf[16] = byte(encodeLegacyScanAngle(fields.ScanAngle))
		buf[17] = fields.UserData
		bytesio.Engine.PutUint16(buf[18:20], fields.PointSourceID)
	}

	if spec.Columns.Has(ColGPSTime) {
		bytesio.Engine.PutUint64(tail[0:8], bytesio.Float64ToBits(fields.GPSTime))
		tail = tail[8:]
	}

	if spec.Columns.Has(ColColor) {
		bytesio.Engine.PutUint16(tail[0:2], normToU16(fields.ColorR))
		bytesio.Engine.PutUint16(tail[2:4], normToU16(fields.ColorG))
		bytesio.Engine.PutUint16(tail[4:6], normToU16(fields.ColorB))
		tail = tail[6:]
	}

	if spec.Columns.Has(ColNIR) {
		bytesio.Engine.PutUint16(tail[0:2], normToU16(fields.NIR))
		tail = tail[2:]
	}

	if spec.Columns.Has(ColWaveform) {
		tail[0] = fields.WaveformDescriptorIndex
		bytesio.Engine.PutUint64(tail[1:9], fields.WaveformOffset)
		bytesio.Engine.PutUint32(tail[9:13], fields.WaveformSize)
		bytesio.Engine.PutUint32(tail[13:17], math.Float32bits(fields.WaveformReturnLocation))
		bytesio.Engine.PutUint32(tail[17:21], math.Float32bits(fields.WaveformX))
		bytesio.Engine.PutUint32(tail[21:25], math.Float32bits(fields.WaveformY))
		bytesio.Engine.PutUint32(tail[25:29], math.Float32bits(fields.WaveformZ))
	}

	return nil
}

// ParseRecord decodes buf according to format f's fixed layout, the inverse
// of BuildRecord.
func ParseRecord(buf []byte, f Format, scale, offset spatial.AxisInfo[float64]) (Fields, error) {
	var fields Fields

	spec, err := Spec(f)
	if err != nil {
		return fields, err
	}
	if len(buf) != spec.Size {
		return fields, fmt.Errorf("%w: buffer is %d bytes, format %d needs %d", errs.ErrInvalidArgument, len(buf), f, spec.Size)
	}

	rawX := int32(bytesio.Engine.Uint32(buf[0:4]))
	rawY := int32(bytesio.Engine.Uint32(buf[4:8]))
	rawZ := int32(bytesio.Engine.Uint32(buf[8:12]))
	fields.X = spatial.RawToReal(rawX, scale.X, offset.X)
	fields.Y = spatial.RawToReal(rawY, scale.Y, offset.Y)
	fields.Z = spatial.RawToReal(rawZ, scale.Z, offset.Z)
	fields.Intensity = u16ToNorm(bytesio.Engine.Uint16(buf[12:14]))

	tail := buf[coreSize:]

	if f.IsExtended() {
		fields.ReturnNumber, fields.NumberOfReturns = unpackFlagByte1(buf[14])
		fields.Synthetic, fields.KeyPoint, fields.Withheld, fields.Overlap, fields.ScannerChannel,
			fields.ScanDirection, fields.EdgeOfFlight = unpackFlagByte2(buf[15])
		fields.Classification = buf[16]
		fields.UserData = buf[17]
		fields.ScanAngle = decodeExtendedScanAngle(int16(bytesio.Engine.Uint16(buf[18:20])))
		fields.PointSourceID = bytesio.Engine.Uint16(buf[20:22])
		tail = buf[extendedCoreSize:]
	} else {
		fields.ReturnNumber, fields.NumberOfReturns, fields.ScanDirection, fields.EdgeOfFlight = unpackFlagsLegacy(buf[14])
		fields.Classification, fields.Synthetic, fields.KeyPoint, fields.Withheld = unpackClassificationLegacy(buf[15])
		fields.ScanAngle = decodeLegacyScanAngle(int8(buf[16]))
		fields.UserData = buf[17]
		fields.PointSourceID = bytesio.Engine.Uint16(buf[18:20])
	}

	if spec.Columns.Has(ColGPSTime) {
		fields.GPSTime = bytesio.BitsToFloat64(bytesio.Engine.Uint64(tail[0:8]))
		tail = tail[8:]
	}

	if spec.Columns.Has(ColColor) {
		fields.ColorR = u16ToNorm(bytesio.Engine.Uint16(tail[0:2]))
		fields.ColorG = u16ToNorm(bytesio.Engine.Uint16(tail[2:4]))
		fields.ColorB = u16ToNorm(bytesio.Engine.Uint16(tail[4:6]))
		tail = tail[6:]
	}

	if spec.Columns.Has(ColNIR) {
		fields.NIR = u16ToNorm(bytesio.Engine.Uint16(tail[0:2]))
		tail = tail[2:]
	}

	if spec.Columns.Has(ColWaveform) {
		fields.WaveformDescriptorIndex = tail[0]
		fields.WaveformOffset = bytesio.Engine.Uint64(tail[1:9])
		fields.WaveformSize = bytesio.Engine.Uint32(tail[9:13])
		fields.WaveformReturnLocation = math.Float32frombits(bytesio.Engine.Uint32(tail[13:17]))
		fields.WaveformX = math.Float32frombits(bytesio.Engine.Uint32(tail[17:21]))
		fields.WaveformY = math.Float32frombits(bytesio.Engine.Uint32(tail[21:25]))
		fields.WaveformZ = math.Float32frombits(bytesio.Engine.Uint32(tail[25:29]))
	}

	return fields, nil
}

// normToU16 denormalizes a 0..1 channel value to the full uint16 range,
// clamping out-of-range input rather than overflowing.
func normToU16(v float64) uint16 {
	v = math.Round(v * 65535)

	switch {
	case v <= 0:
		return 0
	case v >= 65535:
		return 65535
	default:
		return uint16(v)
	}
}

func u16ToNorm(v uint16) float64 {
	return float64(v) / 65535
}

func clampUint8(v, max uint8) uint8 {
	if v > max {
		return max
	}

	return v
}
