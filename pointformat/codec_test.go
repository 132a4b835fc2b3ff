package pointformat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goslas/lasgo/errs"
	"github.com/goslas/lasgo/spatial"
)

func TestSelectFormat(t *testing.T) {
	require := require.New(t)

	f, err := SelectFormat(ColPosition | ColGPSTime | ColColor)
	require.NoError(err)
	require.Equal(Format3, f)

	f, err = SelectFormat(ColPosition | ColOverlap)
	require.NoError(err)
	require.Equal(Format6, f)

	_, err = SelectFormat(ColumnSet(1) << 31)
	require.ErrorIs(err, errs.ErrUnrepresentableColumns)
}

func TestFlagByteRoundTrip(t *testing.T) {
	require := require.New(t)

	// flag byte 0xDF, raw classification byte 0xBF.
	rn, nr, sd, eofl := unpackFlagsLegacy(0xDF)
	require.Equal(uint8(7), rn)
	require.Equal(uint8(3), nr)
	require.True(sd)
	require.True(eofl)
	require.Equal(byte(0xDF), packFlagsLegacy(rn, nr, sd, eofl))

	class, synth, key, withheld := unpackClassificationLegacy(0xBF)
	require.Equal(uint8(0x1F), class)
	require.True(synth)
	require.False(key)
	require.True(withheld)
	require.Equal(byte(0xBF), packClassificationLegacy(class, synth, key, withheld))
}

func TestExtendedFlagByteRoundTrip(t *testing.T) {
	require := require.New(t)

	b1 := packFlagByte1(9, 12)
	rn, nr := unpackFlagByte1(b1)
	require.Equal(uint8(9), rn)
	require.Equal(uint8(12), nr)

	b2 := packFlagByte2(true, false, true, true, 3, false, true)
	synth, key, withheld, overlap, channel, sd, eofl := unpackFlagByte2(b2)
	require.True(synth)
	require.False(key)
	require.True(withheld)
	require.True(overlap)
	require.Equal(uint8(3), channel)
	require.False(sd)
	require.True(eofl)
}

func TestScanAngleClamping(t *testing.T) {
	require := require.New(t)

	require.Equal(int8(90), encodeLegacyScanAngle(150))
	require.Equal(int8(-90), encodeLegacyScanAngle(-150))

	require.Equal(int16(30000), encodeExtendedScanAngle(999))
	require.InDelta(180.0, decodeExtendedScanAngle(30000), 0.01)
}

func TestBuildParseRecordRoundTrip(t *testing.T) {
	require := require.New(t)

	scale := spatial.AxisInfo[float64]{X: 1e-2, Y: 1e-2, Z: 1e-2}
	offset := spatial.AxisInfo[float64]{}

	cases := []Format{Format0, Format1, Format2, Format3, Format4, Format5,
		Format6, Format7, Format8, Format9, Format10}

	for _, f := range cases {
		size, err := Size(f)
		require.NoError(err)

		in := Fields{
			X: 123.45, Y: -67.8, Z: 9.01,
			Intensity:       0.5,
			ReturnNumber:    2,
			NumberOfReturns: 3,
			ScanDirection:   true,
			EdgeOfFlight:    false,
			Synthetic:       true,
			KeyPoint:        false,
			Withheld:        true,
			Overlap:         f.IsExtended(),
			ScannerChannel:  1,
			Classification:  5,
			ScanAngle:       12.3,
			UserData:        7,
			PointSourceID:   42,
			GPSTime:         98765.4321,
			ColorR:          0.1, ColorG: 0.2, ColorB: 0.3,
			NIR: 0.4,
		}

		buf := make([]byte, size)
		require.NoError(BuildRecord(buf, f, in, scale, offset), "format %d", f)

		out, err := ParseRecord(buf, f, scale, offset)
		require.NoError(err, "format %d", f)

		require.InDelta(in.X, out.X, 1e-2)
		require.InDelta(in.Y, out.Y, 1e-2)
		require.InDelta(in.Z, out.Z, 1e-2)
		require.Equal(in.ReturnNumber, out.ReturnNumber)
		require.Equal(in.NumberOfReturns, out.NumberOfReturns)
		require.Equal(in.Classification, out.Classification)
		require.Equal(in.UserData, out.UserData)
		require.Equal(in.PointSourceID, out.PointSourceID)

		spec, _ := Spec(f)
		if spec.Columns.Has(ColGPSTime) {
			require.InDelta(in.GPSTime, out.GPSTime, 1e-6)
		}
		if spec.Columns.Has(ColColor) {
			require.InDelta(in.ColorR, out.ColorR, 1e-4)
		}
	}
}
