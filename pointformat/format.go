// Package pointformat models the 11 fixed-size LAS point record shapes
// (point data format 0 through 10), their component columns, bit-packed
// sub-fields, and the minimum format version each requires.
//
// Each point format is a tagged union: Format is the dispatch tag,
// FormatSpec carries its static properties, and BuildRecord/ParseRecord are
// the bit-packed codec for the fixed-size struct that tag selects.
package pointformat

import (
	"fmt"

	"github.com/goslas/lasgo/errs"
)

// Format is a point data format id, 0 through 10.
type Format uint8

const (
	Format0 Format = iota
	Format1
	Format2
	Format3
	Format4
	Format5
	Format6
	Format7
	Format8
	Format9
	Format10
)

// Version is a LAS spec version (major.minor), e.g. {1, 4}.
type Version struct {
	Major, Minor uint8
}

// AtLeast reports whether v is the same or a later version than other.
func (v Version) AtLeast(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}

	return v.Minor >= other.Minor
}

var (
	V1_1 = Version{1, 1}
	V1_2 = Version{1, 2}
	V1_3 = Version{1, 3}
	V1_4 = Version{1, 4}
)

// FormatSpec describes one point format's static shape.
type FormatSpec struct {
	Format     Format
	Size       int
	MinVersion Version
	Columns    ColumnSet
}

// specs is indexed by Format; it is the single source of truth for every
// format's size, minimum version, and supported columns.
var specs = [11]FormatSpec{
	{Format0, 20, V1_1, ColPosition | ColIntensity | ColReturnNumber | ColNumberOfReturns |
		ColScanDirection | ColEdgeOfFlightLine | ColClassification | ColSynthetic | ColKeyPoint |
		ColWithheld | ColScanAngle | ColUserData | ColPointSourceID},

	{Format1, 28, V1_1, ColPosition | ColIntensity | ColReturnNumber | ColNumberOfReturns |
		ColScanDirection | ColEdgeOfFlightLine | ColClassification | ColSynthetic | ColKeyPoint |
		ColWithheld | ColScanAngle | ColUserData | ColPointSourceID | ColGPSTime},

	{Format2, 26, V1_2, ColPosition | ColIntensity | ColReturnNumber | ColNumberOfReturns |
		ColScanDirection | ColEdgeOfFlightLine | ColClassification | ColSynthetic | ColKeyPoint |
		ColWithheld | ColScanAngle | ColUserData | ColPointSourceID | ColColor},

	{Format3, 34, V1_2, ColPosition | ColIntensity | ColReturnNumber | ColNumberOfReturns |
		ColScanDirection | ColEdgeOfFlightLine | ColClassification | ColSynthetic | ColKeyPoint |
		ColWithheld | ColScanAngle | ColUserData | ColPointSourceID | ColGPSTime | ColColor},

	{Format4, 57, V1_3, ColPosition | ColIntensity | ColReturnNumber | ColNumberOfReturns |
		ColScanDirection | ColEdgeOfFlightLine | ColClassification | ColSynthetic | ColKeyPoint |
		ColWithheld | ColScanAngle | ColUserData | ColPointSourceID | ColGPSTime | ColWaveform},

	{Format5, 63, V1_3, ColPosition | ColIntensity | ColReturnNumber | ColNumberOfReturns |
		ColScanDirection | ColEdgeOfFlightLine | ColClassification | ColSynthetic | ColKeyPoint |
		ColWithheld | ColScanAngle | ColUserData | ColPointSourceID | ColGPSTime | ColColor | ColWaveform},

	{Format6, 30, V1_4, ColPosition | ColIntensity | ColReturnNumber | ColNumberOfReturns |
		ColScanDirection | ColEdgeOfFlightLine | ColClassification | ColSynthetic | ColKeyPoint |
		ColWithheld | ColOverlap | ColScannerChannel | ColScanAngle | ColUserData | ColPointSourceID | ColGPSTime},

	{Format7, 36, V1_4, ColPosition | ColIntensity | ColReturnNumber | ColNumberOfReturns |
		ColScanDirection | ColEdgeOfFlightLine | ColClassification | ColSynthetic | ColKeyPoint |
		ColWithheld | ColOverlap | ColScannerChannel | ColScanAngle | ColUserData | ColPointSourceID | ColGPSTime | ColColor},

	{Format8, 38, V1_4, ColPosition | ColIntensity | ColReturnNumber | ColNumberOfReturns |
		ColScanDirection | ColEdgeOfFlightLine | ColClassification | ColSynthetic | ColKeyPoint |
		ColWithheld | ColOverlap | ColScannerChannel | ColScanAngle | ColUserData | ColPointSourceID | ColGPSTime | ColColor | ColNIR},

	{Format9, 59, V1_4, ColPosition | ColIntensity | ColReturnNumber | ColNumberOfReturns |
		ColScanDirection | ColEdgeOfFlightLine | ColClassification | ColSynthetic | ColKeyPoint |
		ColWithheld | ColOverlap | ColScannerChannel | ColScanAngle | ColUserData | ColPointSourceID | ColGPSTime | ColWaveform},

	{Format10, 67, V1_4, ColPosition | ColIntensity | ColReturnNumber | ColNumberOfReturns |
		ColScanDirection | ColEdgeOfFlightLine | ColClassification | ColSynthetic | ColKeyPoint |
		ColWithheld | ColOverlap | ColScannerChannel | ColScanAngle | ColUserData | ColPointSourceID | ColGPSTime | ColColor | ColNIR | ColWaveform},
}

// Spec returns the FormatSpec for f, or an error if f is outside 0-10.
func Spec(f Format) (FormatSpec, error) {
	if int(f) >= len(specs) {
		return FormatSpec{}, unsupportedFormat(f)
	}

	return specs[f], nil
}

// Size returns the fixed wire size in bytes of format f.
func Size(f Format) (int, error) {
	s, err := Spec(f)
	if err != nil {
		return 0, err
	}

	return s.Size, nil
}

// MinVersion returns the minimum LAS spec version that can declare format f.
func MinVersion(f Format) (Version, error) {
	s, err := Spec(f)
	if err != nil {
		return Version{}, err
	}

	return s.MinVersion, nil
}

// IsExtended reports whether f belongs to the 1.4 "extended" family (6-10),
// which uses the wider flag/classification/scan-angle layout.
func (f Format) IsExtended() bool {
	return f >= Format6
}

// HasTime, HasColor, HasNIR, HasWaveform report whether format f carries the
// named optional column group.
func (f Format) HasTime() bool     { return specs[f].Columns.Has(ColGPSTime) }
func (f Format) HasColor() bool    { return specs[f].Columns.Has(ColColor) }
func (f Format) HasNIR() bool      { return specs[f].Columns.Has(ColNIR) }
func (f Format) HasWaveform() bool { return specs[f].Columns.Has(ColWaveform) }

func unsupportedFormat(f Format) error {
	return fmt.Errorf("%w: point format %d is outside the supported 0-10 range", errs.ErrUnsupportedPointFormat, f)
}
