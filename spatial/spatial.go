// Package spatial models the axis-indexed scale/offset/range arithmetic that
// ties a LAS point table's raw signed-32 coordinates to real-valued
// positions.
package spatial

import (
	"fmt"
	"math"

	"github.com/goslas/lasgo/errs"
)

// AxisInfo is an ordered (x, y, z) triple of T. It is used for per-axis
// scale factors, offsets, and (as AxisInfo[Range]) bounding ranges.
type AxisInfo[T any] struct {
	X, Y, Z T
}

// Range is an inclusive interval. The zero value is not valid; use NewRange
// to construct one with its invariant (Max >= Min) checked.
type Range struct {
	Min, Max float64
}

// NewRange builds a Range, swapping min/max if given out of order so the
// Max >= Min invariant always holds.
func NewRange(min, max float64) Range {
	if max < min {
		min, max = max, min
	}

	return Range{Min: min, Max: max}
}

// Contains reports whether v falls within the inclusive range.
func (r Range) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

// Extend grows the range, if necessary, so it also contains v.
func (r Range) Extend(v float64) Range {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}

	return r
}

// DefaultScale is the per-axis scale factor used when a dataset does not
// otherwise specify one.
const DefaultScale = 1e-4

// SpatialInfo encodes how raw signed-32 point coordinates map to real-valued
// positions: real = raw*scale + offset.
type SpatialInfo struct {
	Scale  AxisInfo[float64]
	Offset AxisInfo[float64]
	Range  AxisInfo[Range]
}

// NewDefaultSpatialInfo returns a SpatialInfo with DefaultScale on every
// axis, zero offset, and an empty (degenerate) range.
func NewDefaultSpatialInfo() SpatialInfo {
	return SpatialInfo{
		Scale: AxisInfo[float64]{X: DefaultScale, Y: DefaultScale, Z: DefaultScale},
	}
}

// BoundingBox computes the per-axis inclusive min/max of positions in one
// pass. It panics if positions is empty; callers must check length first
// (an empty point table has no meaningful bounding box).
func BoundingBox(xs, ys, zs []float64) (min, max AxisInfo[float64]) {
	min = AxisInfo[float64]{X: xs[0], Y: ys[0], Z: zs[0]}
	max = min

	for i := 1; i < len(xs); i++ {
		min.X, max.X = minMax(min.X, max.X, xs[i])
		min.Y, max.Y = minMax(min.Y, max.Y, ys[i])
		min.Z, max.Z = minMax(min.Z, max.Z, zs[i])
	}

	return min, max
}

func minMax(curMin, curMax, v float64) (float64, float64) {
	if v < curMin {
		curMin = v
	}
	if v > curMax {
		curMax = v
	}

	return curMin, curMax
}

// offsetThreshold is the rounding granularity used by DetermineOffset.
const offsetThreshold = 1e7

// DetermineOffset chooses a rounded per-axis offset s = round((min+max)/(2*scale*threshold)) *
// threshold*scale, and verifies both endpoints round-trip through a signed
// 32-bit raw coordinate under that offset and scale. It fails with
// errs.ErrScaleOutOfRange if either endpoint does not fit, or changes sign
// class when converted back.
func DetermineOffset(min, max, scale float64) (float64, error) {
	s := math.Round((min+max)/(2*scale*offsetThreshold)) * offsetThreshold * scale

	for _, endpoint := range [2]float64{min, max} {
		raw := math.Round((endpoint - s) / scale)
		if raw < math.MinInt32 || raw > math.MaxInt32 {
			return 0, fmt.Errorf("%w: endpoint %g does not fit a signed 32-bit raw coordinate at scale %g, offset %g",
				errs.ErrScaleOutOfRange, endpoint, scale, s)
		}

		back := raw*scale + s
		if sign(back-s) != sign(endpoint-s) {
			return 0, fmt.Errorf("%w: endpoint %g changes sign relative to offset %g after round-trip",
				errs.ErrScaleOutOfRange, endpoint, s)
		}
	}

	return s, nil
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// RealToRaw converts a real-valued coordinate to its signed-32 raw
// representation, clamping to the i32 range rather than overflowing.
func RealToRaw(real, scale, offset float64) int32 {
	raw := math.Round((real - offset) / scale)

	return clampInt32(raw)
}

// RawToReal converts a raw signed-32 coordinate back to a real value.
func RawToReal(raw int32, scale, offset float64) float64 {
	return float64(raw)*scale + offset
}

func clampInt32(v float64) int32 {
	switch {
	case v <= math.MinInt32:
		return math.MinInt32
	case v >= math.MaxInt32:
		return math.MaxInt32
	default:
		return int32(v)
	}
}
