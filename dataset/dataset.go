package dataset

import (
	"bytes"
	"fmt"
	"math"

	"github.com/goslas/lasgo/errs"
	"github.com/goslas/lasgo/header"
	"github.com/goslas/lasgo/pointformat"
	"github.com/goslas/lasgo/record"
	"github.com/goslas/lasgo/spatial"
	"github.com/goslas/lasgo/vlr"
)

// Dataset is the reconciled, in-memory object the whole library reads and
// writes: a header, a columnar point table, VLR/EVLR lists, and the bytes
// that don't belong to any of them.
type Dataset struct {
	Header           *header.Header
	Table            *Table
	VLRs             []*vlr.VLR
	EVLRs            []*vlr.VLR
	UserDefinedBytes []byte

	// UnitConversion is the per-axis factor applied to positions on read (to
	// normalise to metres) and reversed on write.
	UnitConversion spatial.AxisInfo[float64]
}

// New assembles an empty dataset in the given format and spec version.
func New(version pointformat.Version, format pointformat.Format) (*Dataset, error) {
	h, err := header.New(version, format)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		Header:         h,
		Table:          NewTable(),
		UnitConversion: spatial.AxisInfo[float64]{X: 1, Y: 1, Z: 1},
	}, nil
}

// AddColumn fails with errs.ErrLengthMismatch unless len(values) matches the
// table's row count. A recognised LAS column not yet present upgrades the
// point format to the smallest one supporting both the existing and new
// columns. A user column's values must be []float64, [][2]float64 or
// [][3]float64 and are stored as 64-bit doubles (a scalar, 2-vector or
// 3-vector of the double type); other Go value types, including the
// narrower LAS base types, are rejected with errs.ErrUnsupportedUserType.
func (d *Dataset) AddColumn(name string, values any) error {
	return d.setColumn(name, values, false)
}

// MergeColumn behaves like AddColumn but overwrites an existing column of
// the same name in place.
func (d *Dataset) MergeColumn(name string, values any) error {
	return d.setColumn(name, values, true)
}

func (d *Dataset) setColumn(name string, values any, overwrite bool) error {
	if col, ok := lasColumnOf(name); ok {
		return d.setLASColumn(col, values, overwrite)
	}

	return d.setUserColumn(name, values, overwrite)
}

func (d *Dataset) checkLength(n int) error {
	if n != d.Table.Len() {
		return fmt.Errorf("%w: got %d values, table has %d rows", errs.ErrLengthMismatch, n, d.Table.Len())
	}

	return nil
}

// lasColumn names a recognised standard LAS column add_column can target.
type lasColumn int

const (
	lasColNone lasColumn = iota
	lasColIntensity
	lasColColor
	lasColNIR
	lasColGPSTime
	lasColWaveform
	lasColOverlap
)

func lasColumnOf(name string) (lasColumn, bool) {
	switch name {
	case "intensity":
		return lasColIntensity, true
	case "color":
		return lasColColor, true
	case "nir":
		return lasColNIR, true
	case "gps_time":
		return lasColGPSTime, true
	case "waveform":
		return lasColWaveform, true
	case "overlap":
		return lasColOverlap, true
	default:
		return lasColNone, false
	}
}

func (c lasColumn) columnSet() pointformat.ColumnSet {
	switch c {
	case lasColIntensity:
		return pointformat.ColIntensity
	case lasColColor:
		return pointformat.ColColor
	case lasColNIR:
		return pointformat.ColNIR
	case lasColGPSTime:
		return pointformat.ColGPSTime
	case lasColWaveform:
		return pointformat.ColWaveform
	case lasColOverlap:
		return pointformat.ColOverlap
	default:
		return 0
	}
}

func (d *Dataset) setLASColumn(col lasColumn, values any, overwrite bool) error {
	required := d.Table.LASColumns() | col.columnSet()

	newFmt, err := pointformat.SelectFormat(required)
	if err != nil {
		return err
	}
	if newFmt != d.Header.PointFormat {
		if err := d.Header.SetPointFormat(newFmt); err != nil {
			return err
		}
	}

	switch col {
	case lasColIntensity:
		vals, ok := values.([]float64)
		if !ok {
			return fmt.Errorf("%w: intensity column needs []float64", errs.ErrInvalidArgument)
		}
		if err := d.checkLength(len(vals)); err != nil {
			return err
		}
		d.Table.Intensity = append([]float64(nil), vals...)
	case lasColGPSTime:
		vals, ok := values.([]float64)
		if !ok {
			return fmt.Errorf("%w: gps_time column needs []float64", errs.ErrInvalidArgument)
		}
		if err := d.checkLength(len(vals)); err != nil {
			return err
		}
		d.Table.GPSTime = append([]float64(nil), vals...)
	case lasColNIR:
		vals, ok := values.([]float64)
		if !ok {
			return fmt.Errorf("%w: nir column needs []float64", errs.ErrInvalidArgument)
		}
		if err := d.checkLength(len(vals)); err != nil {
			return err
		}
		d.Table.NIR = append([]float64(nil), vals...)
	case lasColColor:
		vals, ok := values.([][3]float64)
		if !ok {
			return fmt.Errorf("%w: color column needs [][3]float64 (r,g,b)", errs.ErrInvalidArgument)
		}
		if err := d.checkLength(len(vals)); err != nil {
			return err
		}
		r := make([]float64, len(vals))
		g := make([]float64, len(vals))
		b := make([]float64, len(vals))
		for i, v := range vals {
			r[i], g[i], b[i] = v[0], v[1], v[2]
		}
		d.Table.ColorR, d.Table.ColorG, d.Table.ColorB = r, g, b
	case lasColOverlap:
		vals, ok := values.([]bool)
		if !ok {
			return fmt.Errorf("%w: overlap column needs []bool", errs.ErrInvalidArgument)
		}
		if err := d.checkLength(len(vals)); err != nil {
			return err
		}
		d.Table.Overlap = append([]bool(nil), vals...)
	case lasColWaveform:
		return fmt.Errorf("%w: waveform columns are set directly on the table, not via add_column", errs.ErrInvalidArgument)
	}

	return d.reconcileRecordLength()
}

func (d *Dataset) setUserColumn(name string, values any, overwrite bool) error {
	dt, vecs, err := toUserColumnValues(values)
	if err != nil {
		return err
	}

	if err := d.checkLength(len(vecs)); err != nil {
		return err
	}

	if _, exists := d.Table.UserColumns[name]; exists && !overwrite {
		return fmt.Errorf("%w: user column %q already exists", errs.ErrInvalidArgument, name)
	}

	d.Table.UserColumns[name] = &UserColumn{Type: dt, Values: vecs}

	if err := d.syncExtraBytesVLR(); err != nil {
		return err
	}

	return d.reconcileRecordLength()
}

// toUserColumnValues accepts []float64 (scalar), [][2]float64, or
// [][3]float64 and infers a default 64-bit data type; callers needing a
// narrower on-disk type should build the UserColumn directly.
func toUserColumnValues(values any) (record.DataType, [][]float64, error) {
	switch v := values.(type) {
	case []float64:
		out := make([][]float64, len(v))
		for i, x := range v {
			out[i] = []float64{x}
		}
		return record.TypeDouble, out, nil
	case [][2]float64:
		out := make([][]float64, len(v))
		for i, x := range v {
			out[i] = []float64{x[0], x[1]}
		}
		return record.TypeDouble + 10, out, nil
	case [][3]float64:
		out := make([][]float64, len(v))
		for i, x := range v {
			out[i] = []float64{x[0], x[1], x[2]}
		}
		return record.TypeDouble + 20, out, nil
	default:
		return 0, nil, fmt.Errorf("%w: unsupported user column value type", errs.ErrUnsupportedUserType)
	}
}

// syncExtraBytesVLR rebuilds the single LASF_Spec/ExtraBytes VLR from the
// table's current user columns; vector columns split into "name [i]"
// entries.
func (d *Dataset) syncExtraBytesVLR() error {
	var entries []vlr.ExtraBytesEntry

	for _, name := range sortedKeys(d.Table.UserColumns) {
		col := d.Table.UserColumns[name]
		n := componentsOf(col.Type)

		if n == 1 {
			entries = append(entries, vlr.ExtraBytesEntry{DataType: uint8(col.Type), Name: name})
			continue
		}

		base := col.Type
		switch {
		case col.Type >= 21:
			base -= 20
		case col.Type >= 11:
			base -= 10
		}
		for i := 0; i < n; i++ {
			entries = append(entries, vlr.ExtraBytesEntry{DataType: uint8(base), Name: fmt.Sprintf("%s [%d]", name, i)})
		}
	}

	payload := vlr.ExtraBytes{Records: entries}

	if existing, ok := vlr.Extract(d.VLRs, vlr.UserIDSpec, vlr.RecordExtraBytes); ok {
		existing.Payload = payload
		return nil
	}

	v, err := vlr.New(vlr.UserIDSpec, vlr.RecordExtraBytes, "extra bytes", payload, false)
	if err != nil {
		return err
	}

	return d.AddVLR(v)
}

func sortedKeys(m map[string]*UserColumn) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}

	return keys
}

// AddVLR appends vlr to the dataset, failing with errs.ErrDuplicateVlrId if
// a non-superseded VLR with the same (user-id, record-id) already exists.
// Adding an extended VLR when the file's version is below 1.4 upgrades it.
func (d *Dataset) AddVLR(v *vlr.VLR) error {
	for _, existing := range allVLRs(d.VLRs, d.EVLRs) {
		if existing.UserID == v.UserID && existing.RecordID == v.RecordID && existing.RecordID != vlr.RecordSuperseded {
			return fmt.Errorf("%w: (%q, %d) already present", errs.ErrDuplicateVlrId, v.UserID, v.RecordID)
		}
	}

	if v.Extended && !d.Header.Version.AtLeast(pointformat.V1_4) {
		if err := d.Header.SetLasVersion(pointformat.V1_4); err != nil {
			return err
		}
	}

	if v.Extended {
		d.EVLRs = append(d.EVLRs, v)
	} else {
		d.VLRs = append(d.VLRs, v)
	}

	return d.reconcileOffsets()
}

func allVLRs(a, b []*vlr.VLR) []*vlr.VLR {
	out := make([]*vlr.VLR, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)

	return out
}

// RemoveVLR deletes v from whichever list holds it, failing with
// errs.ErrVlrNotFound if it is not present.
func (d *Dataset) RemoveVLR(v *vlr.VLR) error {
	if idx := indexOf(d.VLRs, v); idx >= 0 {
		d.VLRs = append(d.VLRs[:idx], d.VLRs[idx+1:]...)
		return d.reconcileOffsets()
	}
	if idx := indexOf(d.EVLRs, v); idx >= 0 {
		d.EVLRs = append(d.EVLRs[:idx], d.EVLRs[idx+1:]...)
		return d.reconcileOffsets()
	}

	return fmt.Errorf("%w: (%q, %d)", errs.ErrVlrNotFound, v.UserID, v.RecordID)
}

func indexOf(list []*vlr.VLR, v *vlr.VLR) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}

	return -1
}

// SetSuperseded marks v superseded (record-id 7) in place.
func (d *Dataset) SetSuperseded(v *vlr.VLR) error {
	return v.SetSuperseded()
}

// Reconcile restores every cross-field invariant after fields have been
// assigned directly rather than through AddColumn/AddVLR/AddPoints — the
// entry point codec.Read and codec.Write use so a freshly decoded or
// hand-built Dataset is always internally consistent before it is used.
func (d *Dataset) Reconcile() error {
	if err := d.syncExtraBytesVLR(); err != nil {
		return err
	}
	if err := d.reconcileRecordLength(); err != nil {
		return err
	}

	return d.reconcilePointsAndSpatial()
}

// AddPoints appends rows to the table and recomputes point counts,
// per-return counts, and spatial info.
func (d *Dataset) AddPoints(rows []pointformat.Fields) error {
	for _, r := range rows {
		d.Table.AppendRow(r)
	}

	return d.reconcilePointsAndSpatial()
}

// RemovePoints deletes rows at the given indices and recomputes counts and
// spatial info.
func (d *Dataset) RemovePoints(indices []int) error {
	d.Table.RemoveRows(indices)

	return d.reconcilePointsAndSpatial()
}

func (d *Dataset) reconcilePointsAndSpatial() error {
	if err := d.Header.SetPointRecordCount(uint64(d.Table.Len())); err != nil {
		return err
	}

	if d.Table.Len() > 0 {
		min, max := spatial.BoundingBox(d.Table.X, d.Table.Y, d.Table.Z)
		d.Header.Min, d.Header.Max = min, max
	}

	d.recomputeReturnCounts()

	return nil
}

func (d *Dataset) recomputeReturnCounts() {
	var legacy [5]uint32
	var full [15]uint64

	for _, rn := range d.Table.ReturnNumber {
		if rn >= 1 && int(rn) <= len(legacy) {
			legacy[rn-1]++
		}
		if rn >= 1 && int(rn) <= len(full) {
			full[rn-1]++
		}
	}

	d.Header.LegacyPointsByReturn = legacy
	d.Header.PointsByReturn = full
}

// reconcileRecordLength restores invariant (v): point-record length equals
// the format size plus the sum of user-column sizes plus undocumented
// bytes per record.
func (d *Dataset) reconcileRecordLength() error {
	formatSize, err := pointformat.Size(d.Header.PointFormat)
	if err != nil {
		return err
	}

	userSize := 0
	for _, name := range sortedKeys(d.Table.UserColumns) {
		col := d.Table.UserColumns[name]
		base := col.Type
		switch {
		case base >= 21:
			base -= 20
		case base >= 11:
			base -= 10
		}
		sz, err := record.Size(base)
		if err != nil {
			return err
		}
		userSize += sz * componentsOf(col.Type)
	}

	undocPerRecord := 0
	if len(d.Table.UndocumentedBytes) > 0 {
		undocPerRecord = len(d.Table.UndocumentedBytes[0])
	}

	d.Header.PointRecordLength = uint16(formatSize + userSize + undocPerRecord)

	return d.reconcileOffsets()
}

// reconcileOffsets restores the VLR/EVLR counts, data-offset, and (when any
// EVLR exists) EVLR start.
func (d *Dataset) reconcileOffsets() error {
	d.Header.VLRCount = uint32(len(d.VLRs))
	d.Header.EVLRCount = uint32(len(d.EVLRs))

	vlrBytes := 0
	for _, v := range d.VLRs {
		size, err := v.WireSize()
		if err != nil {
			return err
		}
		vlrBytes += size
	}

	d.Header.DataOffset = uint32(int(d.Header.HeaderSize()) + vlrBytes + len(d.UserDefinedBytes))

	if len(d.EVLRs) > 0 {
		d.Header.EVLRStart = uint64(d.Header.DataOffset) + d.Header.PointCount*uint64(d.Header.PointRecordLength)
	}

	wkt := d.Header.PointFormat.IsExtended()
	if _, ok := vlr.Extract(d.VLRs, vlr.UserIDProjection, vlr.RecordOGCWKT); ok {
		wkt = true
	}
	d.Header.SetWKTCRS(wkt)

	return nil
}

// Equal compares two datasets field by field: every header field that
// describes content (not on-disk layout), every standard LAS column
// (floats with absolute tolerance 1e-6, everything else exactly), user
// columns (extra bytes), undocumented per-point bytes, VLRs/EVLRs as
// order-insensitive sets, and user-defined bytes.
func (d *Dataset) Equal(other *Dataset) bool {
	if !headersEqual(d.Header, other.Header) {
		return false
	}
	if d.Table.Len() != other.Table.Len() {
		return false
	}

	a, b := d.Table, other.Table

	if !floatSliceEqual(a.X, b.X) || !floatSliceEqual(a.Y, b.Y) || !floatSliceEqual(a.Z, b.Z) {
		return false
	}
	if !floatSliceEqual(a.Intensity, b.Intensity) {
		return false
	}
	if !uint8SliceEqual(a.ReturnNumber, b.ReturnNumber) || !uint8SliceEqual(a.NumberOfReturns, b.NumberOfReturns) {
		return false
	}
	if !boolSliceEqual(a.ScanDirection, b.ScanDirection) || !boolSliceEqual(a.EdgeOfFlight, b.EdgeOfFlight) {
		return false
	}
	if !uint8SliceEqual(a.Classification, b.Classification) {
		return false
	}
	if !boolSliceEqual(a.Synthetic, b.Synthetic) || !boolSliceEqual(a.KeyPoint, b.KeyPoint) || !boolSliceEqual(a.Withheld, b.Withheld) {
		return false
	}
	if !boolSliceEqual(a.Overlap, b.Overlap) {
		return false
	}
	if !uint8SliceEqual(a.ScannerChannel, b.ScannerChannel) {
		return false
	}
	if !floatSliceEqual(a.ScanAngle, b.ScanAngle) {
		return false
	}
	if !uint8SliceEqual(a.UserData, b.UserData) {
		return false
	}
	if !uint16SliceEqual(a.PointSourceID, b.PointSourceID) {
		return false
	}
	if !floatSliceEqual(a.GPSTime, b.GPSTime) {
		return false
	}
	if !floatSliceEqual(a.ColorR, b.ColorR) || !floatSliceEqual(a.ColorG, b.ColorG) || !floatSliceEqual(a.ColorB, b.ColorB) {
		return false
	}
	if !floatSliceEqual(a.NIR, b.NIR) {
		return false
	}
	if !uint8SliceEqual(a.WaveformDescriptorIndex, b.WaveformDescriptorIndex) {
		return false
	}
	if !uint64SliceEqual(a.WaveformOffset, b.WaveformOffset) {
		return false
	}
	if !uint32SliceEqual(a.WaveformSize, b.WaveformSize) {
		return false
	}
	if !float32SliceEqual(a.WaveformReturnLocation, b.WaveformReturnLocation) {
		return false
	}
	if !float32SliceEqual(a.WaveformX, b.WaveformX) || !float32SliceEqual(a.WaveformY, b.WaveformY) || !float32SliceEqual(a.WaveformZ, b.WaveformZ) {
		return false
	}
	if !bytesRowsEqual(a.UndocumentedBytes, b.UndocumentedBytes) {
		return false
	}
	if !userColumnsEqual(a.UserColumns, b.UserColumns) {
		return false
	}

	if len(d.UserDefinedBytes) != len(other.UserDefinedBytes) {
		return false
	}
	for i := range d.UserDefinedBytes {
		if d.UserDefinedBytes[i] != other.UserDefinedBytes[i] {
			return false
		}
	}

	return vlrSetEqual(d.VLRs, other.VLRs) && vlrSetEqual(d.EVLRs, other.EVLRs)
}

// headersEqual compares every header field that describes the dataset's
// content rather than its on-disk layout: identity/metadata fields and
// counters exactly, spatial scale/offset/range with equalityTolerance.
// Pure layout bookkeeping (DataOffset, VLRCount, EVLRStart, PointRecordLength)
// is intentionally excluded since Reconcile derives it from the VLRs/table
// and two datasets with identical content always recompute identical values.
func headersEqual(a, b *header.Header) bool {
	if a.FileSourceID != b.FileSourceID || a.GlobalEncoding != b.GlobalEncoding {
		return false
	}
	if a.GUID != b.GUID {
		return false
	}
	if a.Version != b.Version || a.PointFormat != b.PointFormat {
		return false
	}
	if a.SystemIdentifier != b.SystemIdentifier || a.SoftwareIdentifier != b.SoftwareIdentifier {
		return false
	}
	if a.CreationDayOfYear != b.CreationDayOfYear || a.CreationYear != b.CreationYear {
		return false
	}
	if a.LegacyPointCount != b.LegacyPointCount || a.LegacyPointsByReturn != b.LegacyPointsByReturn {
		return false
	}
	if a.PointCount != b.PointCount || a.PointsByReturn != b.PointsByReturn {
		return false
	}
	if a.WaveformRecordStart != b.WaveformRecordStart {
		return false
	}
	if !axisEqual(a.Scale, b.Scale) || !axisEqual(a.Offset, b.Offset) {
		return false
	}
	if !axisEqual(a.Min, b.Min) || !axisEqual(a.Max, b.Max) {
		return false
	}

	return true
}

func axisEqual(a, b spatial.AxisInfo[float64]) bool {
	return math.Abs(a.X-b.X) <= equalityTolerance &&
		math.Abs(a.Y-b.Y) <= equalityTolerance &&
		math.Abs(a.Z-b.Z) <= equalityTolerance
}

const equalityTolerance = 1e-6

func floatSliceEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > equalityTolerance {
			return false
		}
	}

	return true
}

func float32SliceEqual(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > equalityTolerance {
			return false
		}
	}

	return true
}

func uint8SliceEqual(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func uint16SliceEqual(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func uint32SliceEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func uint64SliceEqual(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func boolSliceEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func bytesRowsEqual(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}

func userColumnsEqual(a, b map[string]*UserColumn) bool {
	if len(a) != len(b) {
		return false
	}
	for name, colA := range a {
		colB, ok := b[name]
		if !ok || colA.Type != colB.Type || len(colA.Values) != len(colB.Values) {
			return false
		}
		for i := range colA.Values {
			if !floatSliceEqual(colA.Values[i], colB.Values[i]) {
				return false
			}
		}
	}

	return true
}

func vlrSetEqual(a, b []*vlr.VLR) bool {
	if len(a) != len(b) {
		return false
	}

	used := make([]bool, len(b))
	for _, av := range a {
		found := false
		for j, bv := range b {
			if used[j] {
				continue
			}
			if av.UserID == bv.UserID && av.RecordID == bv.RecordID && av.Description == bv.Description {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
