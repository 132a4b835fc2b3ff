// Package codec reads and writes whole LAS files: the fixed header block,
// the VLR and EVLR lists, and the point-data block in between, assembling
// or disassembling a dataset.Dataset.
//
// A file is read in one pass into memory and decoded by byte offset rather
// than incrementally parsed field by field from a stream; the point-data
// block is the one part large enough to matter, and it is walked
// record-by-record without a second full copy.
package codec

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goslas/lasgo/bytesio"
	"github.com/goslas/lasgo/dataset"
	"github.com/goslas/lasgo/errs"
	"github.com/goslas/lasgo/header"
	"github.com/goslas/lasgo/internal/pool"
	"github.com/goslas/lasgo/pointformat"
	"github.com/goslas/lasgo/record"
	"github.com/goslas/lasgo/spatial"
	"github.com/goslas/lasgo/vlr"
	"github.com/goslas/lasgo/wkt"
)

// Read decodes a whole .las byte stream into a Dataset.
func Read(r io.Reader) (*dataset.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIoError, err)
	}

	if len(data) < header.Size11 {
		return nil, fmt.Errorf("%w: file is %d bytes, need at least %d", errs.ErrInvalidFormat, len(data), header.Size11)
	}

	headerSize := bytesio.Engine.Uint16(data[94:96])
	if int(headerSize) > len(data) {
		return nil, fmt.Errorf("%w: header declares %d bytes, file has %d", errs.ErrInconsistentHeader, headerSize, len(data))
	}

	h, err := header.Parse(data[:headerSize])
	if err != nil {
		return nil, err
	}

	if int(h.DataOffset) > len(data) {
		return nil, fmt.Errorf("%w: data offset %d exceeds file size %d", errs.ErrInconsistentHeader, h.DataOffset, len(data))
	}

	vlrSection := data[headerSize:h.DataOffset]
	vlrReader := bytes.NewReader(vlrSection)

	vlrs := make([]*vlr.VLR, 0, h.VLRCount)
	for i := uint32(0); i < h.VLRCount; i++ {
		v, err := vlr.Read(vlrReader, false)
		if err != nil {
			return nil, fmt.Errorf("vlr %d: %w", i, err)
		}
		vlrs = append(vlrs, v)
	}

	userDefinedBytes := make([]byte, vlrReader.Len())
	_, _ = vlrReader.Read(userDefinedBytes)

	var extraBytes *vlr.ExtraBytes
	if eb, ok := vlr.Extract(vlrs, vlr.UserIDSpec, vlr.RecordExtraBytes); ok {
		if payload, ok := eb.Payload.(vlr.ExtraBytes); ok {
			extraBytes = &payload
		}
	}

	shape, err := record.Resolve(int(h.PointRecordLength), h.PointFormat, extraBytes)
	if err != nil {
		return nil, err
	}

	pointBytes := int(h.PointCount) * shape.Size()
	pointEnd := int(h.DataOffset) + pointBytes
	if pointEnd > len(data) {
		return nil, fmt.Errorf("%w: point data needs %d bytes past offset %d, file has %d",
			errs.ErrInconsistentHeader, pointBytes, h.DataOffset, len(data))
	}
	pointData := data[h.DataOffset:pointEnd]

	table := dataset.NewTable()
	columnOrder, columnTypes := userColumnLayout(shape.UserFields)

	for i := 0; i < int(h.PointCount); i++ {
		rec := pointData[i*shape.Size() : (i+1)*shape.Size()]

		fields, err := pointformat.ParseRecord(rec[:shape.PointSize], h.PointFormat, h.Scale, h.Offset)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		table.AppendRow(fields)

		if shape.UserFieldsSize > 0 {
			userBlock := rec[shape.PointSize : shape.PointSize+shape.UserFieldsSize]
			assignUserFields(table, columnOrder, columnTypes, userBlock)
		}

		if shape.UndocumentedBytes > 0 {
			tail := rec[shape.PointSize+shape.UserFieldsSize:]
			raw := make([]byte, len(tail))
			copy(raw, tail)
			table.UndocumentedBytes = append(table.UndocumentedBytes, raw)
		}
	}

	var evlrs []*vlr.VLR
	if h.Version.AtLeast(pointformat.V1_4) && h.EVLRCount > 0 {
		if int(h.EVLRStart) > len(data) {
			return nil, fmt.Errorf("%w: evlr start %d exceeds file size %d", errs.ErrInconsistentHeader, h.EVLRStart, len(data))
		}
		evlrReader := bytes.NewReader(data[h.EVLRStart:])
		for i := uint32(0); i < h.EVLRCount; i++ {
			v, err := vlr.Read(evlrReader, true)
			if err != nil {
				return nil, fmt.Errorf("evlr %d: %w", i, err)
			}
			evlrs = append(evlrs, v)
		}
	}

	d := &dataset.Dataset{
		Header:           h,
		Table:            table,
		VLRs:             vlrs,
		EVLRs:            evlrs,
		UserDefinedBytes: userDefinedBytes,
		UnitConversion:   applyUnitConversion(table, vlrs),
	}

	if err := d.Reconcile(); err != nil {
		return nil, err
	}

	return d, nil
}

// Write encodes d as a whole .las byte stream.
func Write(w io.Writer, d *dataset.Dataset) error {
	if err := d.Reconcile(); err != nil {
		return err
	}

	h := d.Header
	if conv := d.UnitConversion; conv.X != 0 && conv.Y != 0 && conv.Z != 0 {
		// Positions are held in metres; the header bounds go back to the file's unit.
		hc := *h
		hc.Min = spatial.AxisInfo[float64]{X: h.Min.X / conv.X, Y: h.Min.Y / conv.Y, Z: h.Min.Z / conv.Z}
		hc.Max = spatial.AxisInfo[float64]{X: h.Max.X / conv.X, Y: h.Max.Y / conv.Y, Z: h.Max.Z / conv.Z}
		h = &hc
	}

	if _, err := w.Write(h.Bytes()); err != nil {
		return ioErr(err)
	}

	for _, v := range d.VLRs {
		if err := v.Write(w); err != nil {
			return err
		}
	}

	if _, err := w.Write(d.UserDefinedBytes); err != nil {
		return ioErr(err)
	}

	if err := writePoints(w, d); err != nil {
		return err
	}

	for _, v := range d.EVLRs {
		if err := v.Write(w); err != nil {
			return err
		}
	}

	return nil
}

// writePoints blits the table's columns into a pooled record buffer one
// point at a time: BuildRecord fills the formatted portion directly at its
// byte offset, user columns and undocumented bytes are appended after it,
// and the assembled record is flushed to w before the buffer is reused for
// the next point.
func writePoints(w io.Writer, d *dataset.Dataset) error {
	h := d.Header
	t := d.Table

	extraBytes, _ := vlr.Extract(d.VLRs, vlr.UserIDSpec, vlr.RecordExtraBytes)
	var schema *vlr.ExtraBytes
	if extraBytes != nil {
		if payload, ok := extraBytes.Payload.(vlr.ExtraBytes); ok {
			schema = &payload
		}
	}

	shape, err := record.Resolve(int(h.PointRecordLength), h.PointFormat, schema)
	if err != nil {
		return err
	}

	columnOrder, columnTypes := userColumnLayout(shape.UserFields)

	buf := pool.GetBatchBuffer()
	defer pool.PutBatchBuffer(buf)
	buf.ExtendOrGrow(shape.Size())

	for i := 0; i < t.Len(); i++ {
		rec := buf.Slice(0, shape.Size())

		row := t.Row(i)
		if conv := d.UnitConversion; conv.X != 0 && conv.Y != 0 && conv.Z != 0 {
			row.X, row.Y, row.Z = row.X/conv.X, row.Y/conv.Y, row.Z/conv.Z
		}
		if err := pointformat.BuildRecord(rec[:shape.PointSize], h.PointFormat, row, h.Scale, h.Offset); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}

		if shape.UserFieldsSize > 0 {
			writeUserFields(t, columnOrder, columnTypes, i, rec[shape.PointSize:shape.PointSize+shape.UserFieldsSize])
		}

		if shape.UndocumentedBytes > 0 && i < len(t.UndocumentedBytes) {
			copy(rec[shape.PointSize+shape.UserFieldsSize:], t.UndocumentedBytes[i])
		}

		if _, err := w.Write(rec); err != nil {
			return ioErr(err)
		}
	}

	return nil
}

// userColumnLayout groups record.Field entries by base column name, since a
// vector user column is stored on the wire as N consecutive "name [i]"
// scalar entries.
func userColumnLayout(fields []record.Field) (order []string, components map[string][]record.Field) {
	components = map[string][]record.Field{}
	seen := map[string]bool{}

	for _, f := range fields {
		base, _ := splitVectorName(f.Name)
		if !seen[base] {
			seen[base] = true
			order = append(order, base)
		}
		components[base] = append(components[base], f)
	}

	return order, components
}

func splitVectorName(name string) (base string, index int) {
	open := strings.LastIndex(name, " [")
	if open < 0 || !strings.HasSuffix(name, "]") {
		return name, 0
	}

	idxStr := name[open+2 : len(name)-1]
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return name, 0
	}

	return name[:open], idx
}

func assignUserFields(t *dataset.Table, order []string, columns map[string][]record.Field, block []byte) {
	for _, base := range order {
		comps := columns[base]

		scratch, cleanup := pool.GetFloat64Slice(len(comps))
		for i, f := range comps {
			scratch[i] = record.DecodeVector(f.Type, block[f.Offset:f.Offset+f.Size])[0]
		}

		vals := make([]float64, len(comps))
		copy(vals, scratch)
		cleanup()

		col, ok := t.UserColumns[base]
		if !ok {
			dt := vectorDataType(comps)
			col = &dataset.UserColumn{Type: dt}
			t.UserColumns[base] = col
		}
		col.Values = append(col.Values, vals)
	}
}

func writeUserFields(t *dataset.Table, order []string, columns map[string][]record.Field, row int, block []byte) {
	for _, base := range order {
		comps := columns[base]
		col := t.UserColumns[base]

		var vals []float64
		if col != nil && row < len(col.Values) {
			vals = col.Values[row]
		} else {
			vals = make([]float64, len(comps))
		}

		for i, f := range comps {
			if i >= len(vals) {
				break
			}
			record.EncodeVector(f.Type, vals[i:i+1], block[f.Offset:f.Offset+f.Size])
		}
	}
}

func vectorDataType(comps []record.Field) record.DataType {
	if len(comps) == 1 {
		return comps[0].Type
	}
	if len(comps) == 2 {
		return comps[0].Type + 10
	}

	return comps[0].Type + 20
}

// applyUnitConversion inspects an OGC_WKT VLR (if present), multiplies the
// table's positions into metres, and returns the conversion factor so a
// later write can reverse it.
func applyUnitConversion(t *dataset.Table, vlrs []*vlr.VLR) spatial.AxisInfo[float64] {
	conv := spatial.AxisInfo[float64]{X: 1, Y: 1, Z: 1}

	v, ok := vlr.Extract(vlrs, vlr.UserIDProjection, vlr.RecordOGCWKT)
	if !ok {
		return conv
	}
	payload, ok := v.Payload.(vlr.OGCWKT)
	if !ok {
		return conv
	}

	horizontal, vertical, ok := wkt.ExtractUnits(payload.WKT)
	if !ok {
		return conv
	}

	hScale := wkt.LinearScale(horizontal)
	vScale := wkt.LinearScale(vertical)
	if vertical == "" {
		vScale = hScale
	}

	if hScale == 1 && vScale == 1 {
		return conv
	}

	for i := range t.X {
		t.X[i] *= hScale
		t.Y[i] *= hScale
		t.Z[i] *= vScale
	}

	conv.X, conv.Y, conv.Z = hScale, hScale, vScale

	return conv
}

func ioErr(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", errs.ErrIoError, err)
}
