package pointformat

import "github.com/goslas/lasgo/errs"

// ColumnSet is a bitset of the semantic columns a point format can carry.
// Position is a single bit covering x, y, and z together since no format
// can carry one axis without the others.
type ColumnSet uint32

const (
	ColPosition ColumnSet = 1 << iota
	ColIntensity
	ColReturnNumber
	ColNumberOfReturns
	ColScanDirection
	ColEdgeOfFlightLine
	ColSynthetic
	ColKeyPoint
	ColWithheld
	ColOverlap
	ColScannerChannel
	ColClassification
	ColScanAngle
	ColUserData
	ColPointSourceID
	ColGPSTime
	ColColor
	ColNIR
	ColWaveform
)

// Has reports whether every bit set in want is also set in cs.
func (cs ColumnSet) Has(want ColumnSet) bool {
	return cs&want == want
}

// Superset reports whether cs contains every column in required.
func (cs ColumnSet) Superset(required ColumnSet) bool {
	return cs&required == required
}

// SelectFormat chooses the smallest-numbered point format whose supported
// columns are a superset of required, failing with
// errs.ErrUnrepresentableColumns if no format qualifies.
func SelectFormat(required ColumnSet) (Format, error) {
	for _, s := range specs {
		if s.Columns.Superset(required) {
			return s.Format, nil
		}
	}

	return 0, errs.ErrUnrepresentableColumns
}
