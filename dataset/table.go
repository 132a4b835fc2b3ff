// Package dataset ties a header, a columnar point table, and a VLR/EVLR
// list into the single reconciled object the rest of the library reads and
// writes.
package dataset

import (
	"github.com/goslas/lasgo/pointformat"
	"github.com/goslas/lasgo/record"
)

// UserColumn is a user-defined ("extra bytes") point-table column: every
// row holds componentsOf(Type) float64 components, widened regardless of
// the column's on-disk scalar type.
type UserColumn struct {
	Type   record.DataType
	Values [][]float64
}

// Table is the columnar point store: standard LAS columns as typed slices,
// plus any user columns and the undocumented-byte block, all indexed in
// parallel by row.
type Table struct {
	ID []uint64

	X, Y, Z   []float64
	Intensity []float64

	ReturnNumber, NumberOfReturns []uint8
	ScanDirection, EdgeOfFlight   []bool
	Synthetic, KeyPoint, Withheld []bool
	Overlap                       []bool
	ScannerChannel                []uint8

	Classification []uint8
	ScanAngle       []float64
	UserData        []uint8
	PointSourceID   []uint16

	GPSTime []float64

	ColorR, ColorG, ColorB []float64
	NIR                    []float64

	WaveformDescriptorIndex []uint8
	WaveformOffset          []uint64
	WaveformSize            []uint32
	WaveformReturnLocation  []float32
	WaveformX               []float32
	WaveformY               []float32
	WaveformZ               []float32

	UndocumentedBytes [][]byte

	UserColumns    map[string]*UserColumn
	userColumnOrder []string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{UserColumns: map[string]*UserColumn{}}
}

// Len returns the number of rows (points) in the table.
func (t *Table) Len() int { return len(t.X) }

// LASColumns reports which standard LAS columns currently hold data, used
// by AddColumn's format-upgrade decision. Columns every format carries
// count as in use whenever rows are present; intensity, overlap, scanner
// channel, GPS time, color, NIR and waveform count only when some row holds
// a non-zero value.
func (t *Table) LASColumns() pointformat.ColumnSet {
	var cs pointformat.ColumnSet

	if len(t.X) > 0 {
		cs |= pointformat.ColPosition
	}
	if hasAny(t.Intensity) {
		cs |= pointformat.ColIntensity
	}
	if len(t.ReturnNumber) > 0 {
		cs |= pointformat.ColReturnNumber | pointformat.ColNumberOfReturns | pointformat.ColScanDirection | pointformat.ColEdgeOfFlightLine
	}
	if len(t.Classification) > 0 {
		cs |= pointformat.ColClassification | pointformat.ColSynthetic | pointformat.ColKeyPoint | pointformat.ColWithheld
	}
	if hasAny(t.Overlap) {
		cs |= pointformat.ColOverlap
	}
	if hasAny(t.ScannerChannel) {
		cs |= pointformat.ColScannerChannel
	}
	if len(t.ScanAngle) > 0 {
		cs |= pointformat.ColScanAngle
	}
	if len(t.UserData) > 0 {
		cs |= pointformat.ColUserData
	}
	if len(t.PointSourceID) > 0 {
		cs |= pointformat.ColPointSourceID
	}
	if hasAny(t.GPSTime) {
		cs |= pointformat.ColGPSTime
	}
	if hasAny(t.ColorR) {
		cs |= pointformat.ColColor
	}
	if hasAny(t.NIR) {
		cs |= pointformat.ColNIR
	}
	if hasAny(t.WaveformDescriptorIndex) {
		cs |= pointformat.ColWaveform
	}

	return cs
}

func hasAny[T comparable](s []T) bool {
	if len(s) == 0 {
		return false
	}
	var zero T
	for _, v := range s {
		if v != zero {
			return true
		}
	}

	return false
}

// Row materialises pointformat.Fields for row i, the shape BuildRecord and
// ParseRecord operate on.
func (t *Table) Row(i int) pointformat.Fields {
	f := pointformat.Fields{X: t.X[i], Y: t.Y[i], Z: t.Z[i]}

	if i < len(t.Intensity) {
		f.Intensity = t.Intensity[i]
	}
	if i < len(t.ReturnNumber) {
		f.ReturnNumber = t.ReturnNumber[i]
		f.NumberOfReturns = t.NumberOfReturns[i]
		f.ScanDirection = t.ScanDirection[i]
		f.EdgeOfFlight = t.EdgeOfFlight[i]
	}
	if i < len(t.Classification) {
		f.Classification = t.Classification[i]
		f.Synthetic = t.Synthetic[i]
		f.KeyPoint = t.KeyPoint[i]
		f.Withheld = t.Withheld[i]
	}
	if i < len(t.Overlap) {
		f.Overlap = t.Overlap[i]
	}
	if i < len(t.ScannerChannel) {
		f.ScannerChannel = t.ScannerChannel[i]
	}
	if i < len(t.ScanAngle) {
		f.ScanAngle = t.ScanAngle[i]
	}
	if i < len(t.UserData) {
		f.UserData = t.UserData[i]
	}
	if i < len(t.PointSourceID) {
		f.PointSourceID = t.PointSourceID[i]
	}
	if i < len(t.GPSTime) {
		f.GPSTime = t.GPSTime[i]
	}
	if i < len(t.ColorR) {
		f.ColorR, f.ColorG, f.ColorB = t.ColorR[i], t.ColorG[i], t.ColorB[i]
	}
	if i < len(t.NIR) {
		f.NIR = t.NIR[i]
	}
	if i < len(t.WaveformDescriptorIndex) {
		f.WaveformDescriptorIndex = t.WaveformDescriptorIndex[i]
		f.WaveformOffset = t.WaveformOffset[i]
		f.WaveformSize = t.WaveformSize[i]
		f.WaveformReturnLocation = t.WaveformReturnLocation[i]
		f.WaveformX, f.WaveformY, f.WaveformZ = t.WaveformX[i], t.WaveformY[i], t.WaveformZ[i]
	}

	return f
}

// AppendRow appends f as a new row.
func (t *Table) AppendRow(f pointformat.Fields) {
	t.X = append(t.X, f.X)
	t.Y = append(t.Y, f.Y)
	t.Z = append(t.Z, f.Z)
	t.Intensity = append(t.Intensity, f.Intensity)
	t.ReturnNumber = append(t.ReturnNumber, f.ReturnNumber)
	t.NumberOfReturns = append(t.NumberOfReturns, f.NumberOfReturns)
	t.ScanDirection = append(t.ScanDirection, f.ScanDirection)
	t.EdgeOfFlight = append(t.EdgeOfFlight, f.EdgeOfFlight)
	t.Synthetic = append(t.Synthetic, f.Synthetic)
	t.KeyPoint = append(t.KeyPoint, f.KeyPoint)
	t.Withheld = append(t.Withheld, f.Withheld)
	t.Overlap = append(t.Overlap, f.Overlap)
	t.ScannerChannel = append(t.ScannerChannel, f.ScannerChannel)
	t.Classification = append(t.Classification, f.Classification)
	t.ScanAngle = append(t.ScanAngle, f.ScanAngle)
	t.UserData = append(t.UserData, f.UserData)
	t.PointSourceID = append(t.PointSourceID, f.PointSourceID)
	t.GPSTime = append(t.GPSTime, f.GPSTime)
	t.ColorR = append(t.ColorR, f.ColorR)
	t.ColorG = append(t.ColorG, f.ColorG)
	t.ColorB = append(t.ColorB, f.ColorB)
	t.NIR = append(t.NIR, f.NIR)
	t.WaveformDescriptorIndex = append(t.WaveformDescriptorIndex, f.WaveformDescriptorIndex)
	t.WaveformOffset = append(t.WaveformOffset, f.WaveformOffset)
	t.WaveformSize = append(t.WaveformSize, f.WaveformSize)
	t.WaveformReturnLocation = append(t.WaveformReturnLocation, f.WaveformReturnLocation)
	t.WaveformX = append(t.WaveformX, f.WaveformX)
	t.WaveformY = append(t.WaveformY, f.WaveformY)
	t.WaveformZ = append(t.WaveformZ, f.WaveformZ)

	for name, col := range t.UserColumns {
		_ = name
		col.Values = append(col.Values, make([]float64, componentsOf(col.Type)))
	}
}

// RemoveRows deletes rows at the given (ascending) indices in place.
func (t *Table) RemoveRows(indices []int) {
	keep := make([]bool, t.Len())
	for i := range keep {
		keep[i] = true
	}
	for _, idx := range indices {
		if idx >= 0 && idx < len(keep) {
			keep[idx] = false
		}
	}

	t.X = filterF64(t.X, keep)
	t.Y = filterF64(t.Y, keep)
	t.Z = filterF64(t.Z, keep)
	t.Intensity = filterF64(t.Intensity, keep)
	t.ReturnNumber = filterU8(t.ReturnNumber, keep)
	t.NumberOfReturns = filterU8(t.NumberOfReturns, keep)
	t.ScanDirection = filterBool(t.ScanDirection, keep)
	t.EdgeOfFlight = filterBool(t.EdgeOfFlight, keep)
	t.Synthetic = filterBool(t.Synthetic, keep)
	t.KeyPoint = filterBool(t.KeyPoint, keep)
	t.Withheld = filterBool(t.Withheld, keep)
	t.Overlap = filterBool(t.Overlap, keep)
	t.ScannerChannel = filterU8(t.ScannerChannel, keep)
	t.Classification = filterU8(t.Classification, keep)
	t.ScanAngle = filterF64(t.ScanAngle, keep)
	t.UserData = filterU8(t.UserData, keep)
	t.PointSourceID = filterU16(t.PointSourceID, keep)
	t.GPSTime = filterF64(t.GPSTime, keep)
	t.ColorR = filterF64(t.ColorR, keep)
	t.ColorG = filterF64(t.ColorG, keep)
	t.ColorB = filterF64(t.ColorB, keep)
	t.NIR = filterF64(t.NIR, keep)

	for _, col := range t.UserColumns {
		filtered := make([][]float64, 0, len(col.Values))
		for i, v := range col.Values {
			if keep[i] {
				filtered = append(filtered, v)
			}
		}
		col.Values = filtered
	}
}

func componentsOf(dt record.DataType) int {
	switch {
	case dt >= 21:
		return 3
	case dt >= 11:
		return 2
	default:
		return 1
	}
}

func filterF64(s []float64, keep []bool) []float64 {
	out := make([]float64, 0, len(s))
	for i, v := range s {
		if keep[i] {
			out = append(out, v)
		}
	}
	return out
}

func filterU8(s []uint8, keep []bool) []uint8 {
	out := make([]uint8, 0, len(s))
	for i, v := range s {
		if keep[i] {
			out = append(out, v)
		}
	}
	return out
}

func filterU16(s []uint16, keep []bool) []uint16 {
	out := make([]uint16, 0, len(s))
	for i, v := range s {
		if keep[i] {
			out = append(out, v)
		}
	}
	return out
}

func filterBool(s []bool, keep []bool) []bool {
	out := make([]bool, 0, len(s))
	for i, v := range s {
		if keep[i] {
			out = append(out, v)
		}
	}
	return out
}
