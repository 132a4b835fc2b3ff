// Package record resolves the on-disk shape of a LAS point record — the
// formatted point plus whatever documented user fields and undocumented
// trailing bytes the file's point-record length implies — and provides the
// fixed-offset codec for reading/writing the user-field and undocumented
// portions.
package record

import (
	"fmt"

	"github.com/goslas/lasgo/errs"
	"github.com/goslas/lasgo/pointformat"
	"github.com/goslas/lasgo/vlr"
)

// Kind identifies which of the four PointRecord variants a file uses.
type Kind int

const (
	// KindPoint is just the formatted point, no trailing bytes.
	KindPoint Kind = iota
	// KindExtended is the formatted point plus documented user fields.
	KindExtended
	// KindUndocumented is the formatted point plus N undocumented trailing
	// bytes.
	KindUndocumented
	// KindFull is the formatted point plus user fields plus undocumented
	// trailing bytes.
	KindFull
)

// Field is one documented user (extra-bytes) column: its name, wire type,
// and byte offset within the record's trailing user-field block.
type Field struct {
	Name   string
	Type   DataType
	Offset int
	Size   int
}

// Shape is the resolved layout of a file's point records.
type Shape struct {
	Kind              Kind
	Format            pointformat.Format
	PointSize         int
	UserFields        []Field
	UserFieldsSize    int
	UndocumentedBytes int
}

// Size is the total wire size of one record under this shape.
func (s Shape) Size() int {
	return s.PointSize + s.UserFieldsSize + s.UndocumentedBytes
}

// Resolve computes the record shape from the header's declared point-record
// length, point format, and the file's ExtraBytes VLR (if any). It fails
// with errs.ErrInconsistentRecordLength if the declared length is shorter
// than the format needs, or shorter than format+schema combined.
func Resolve(pointRecordLength int, format pointformat.Format, extraBytes *vlr.ExtraBytes) (Shape, error) {
	formatSize, err := pointformat.Size(format)
	if err != nil {
		return Shape{}, err
	}

	d := pointRecordLength - formatSize
	if d < 0 {
		return Shape{}, fmt.Errorf("%w: point record length %d is shorter than format %d's %d bytes",
			errs.ErrInconsistentRecordLength, pointRecordLength, format, formatSize)
	}

	fields, fieldsSize, err := buildSchema(extraBytes)
	if err != nil {
		return Shape{}, err
	}

	shape := Shape{Format: format, PointSize: formatSize}

	switch {
	case d == 0 && len(fields) == 0:
		shape.Kind = KindPoint
	case d == 0 && len(fields) > 0:
		shape.Kind = KindExtended
		shape.UserFields = fields
		shape.UserFieldsSize = fieldsSize
	case d > 0 && len(fields) == 0:
		shape.Kind = KindUndocumented
		shape.UndocumentedBytes = d
	default:
		if fieldsSize > d {
			return Shape{}, fmt.Errorf("%w: extra-bytes schema needs %d bytes but only %d are available",
				errs.ErrInconsistentRecordLength, fieldsSize, d)
		}
		shape.Kind = KindFull
		shape.UserFields = fields
		shape.UserFieldsSize = fieldsSize
		shape.UndocumentedBytes = d - fieldsSize
	}

	return shape, nil
}

func buildSchema(extraBytes *vlr.ExtraBytes) ([]Field, int, error) {
	if extraBytes == nil || len(extraBytes.Records) == 0 {
		return nil, 0, nil
	}

	fields := make([]Field, 0, len(extraBytes.Records))
	offset := 0

	for _, rec := range extraBytes.Records {
		dt := DataType(rec.DataType)
		size, err := Size(dt)
		if err != nil {
			return nil, 0, err
		}

		fields = append(fields, Field{Name: rec.Name, Type: dt, Offset: offset, Size: size})
		offset += size
	}

	return fields, offset, nil
}
