package record

import (
	"math"

	"github.com/goslas/lasgo/bytesio"
)

// componentCount reports how many scalar components dt packs: 1 for types
// 1-10, 2 for 11-20, 3 for 21-30.
func componentCount(dt DataType) int {
	switch {
	case dt >= 21:
		return 3
	case dt >= 11:
		return 2
	default:
		return 1
	}
}

func baseType(dt DataType) DataType {
	switch {
	case dt >= 21:
		return dt - 20
	case dt >= 11:
		return dt - 10
	default:
		return dt
	}
}

// DecodeVector reads componentCount(dt) scalar components from raw,
// widening each to float64 regardless of its wire width.
func DecodeVector(dt DataType, raw []byte) []float64 {
	base := baseType(dt)
	n := componentCount(dt)
	size, _ := Size(base)

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = decodeScalar(base, raw[i*size:i*size+size])
	}

	return out
}

// EncodeVector writes vals into dst as dt's wire representation.
func EncodeVector(dt DataType, vals []float64, dst []byte) {
	base := baseType(dt)
	size, _ := Size(base)

	for i, v := range vals {
		encodeScalar(base, v, dst[i*size:i*size+size])
	}
}

func decodeScalar(base DataType, raw []byte) float64 {
	switch base {
	case TypeUChar:
		return float64(raw[0])
	case TypeChar:
		return float64(int8(raw[0]))
	case TypeUShort:
		return float64(bytesio.Engine.Uint16(raw))
	case TypeShort:
		return float64(int16(bytesio.Engine.Uint16(raw)))
	case TypeULong:
		return float64(bytesio.Engine.Uint32(raw))
	case TypeLong:
		return float64(int32(bytesio.Engine.Uint32(raw)))
	case TypeULongLong:
		return float64(bytesio.Engine.Uint64(raw))
	case TypeLongLong:
		return float64(int64(bytesio.Engine.Uint64(raw)))
	case TypeFloat:
		return float64(math.Float32frombits(bytesio.Engine.Uint32(raw)))
	case TypeDouble:
		return bytesio.BitsToFloat64(bytesio.Engine.Uint64(raw))
	default:
		return 0
	}
}

func encodeScalar(base DataType, v float64, dst []byte) {
	switch base {
	case TypeUChar:
		dst[0] = byte(v)
	case TypeChar:
		dst[0] = byte(int8(v))
	case TypeUShort:
		bytesio.Engine.PutUint16(dst, uint16(v))
	case TypeShort:
		bytesio.Engine.PutUint16(dst, uint16(int16(v)))
	case TypeULong:
		bytesio.Engine.PutUint32(dst, uint32(v))
	case TypeLong:
		bytesio.Engine.PutUint32(dst, uint32(int32(v)))
	case TypeULongLong:
		bytesio.Engine.PutUint64(dst, uint64(v))
	case TypeLongLong:
		bytesio.Engine.PutUint64(dst, uint64(int64(v)))
	case TypeFloat:
		bytesio.Engine.PutUint32(dst, math.Float32bits(float32(v)))
	case TypeDouble:
		bytesio.Engine.PutUint64(dst, bytesio.Float64ToBits(v))
	}
}
