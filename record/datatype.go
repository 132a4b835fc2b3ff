package record

import (
	"fmt"

	"github.com/goslas/lasgo/errs"
)

// DataType is an ASPRS extra-bytes data-type code: 1-10 are scalar types,
// 11-20 are 2-element vectors of types 1-10, 21-30 are 3-element vectors.
type DataType uint8

const (
	TypeUndocumented DataType = 0
	TypeUChar        DataType = 1
	TypeChar         DataType = 2
	TypeUShort       DataType = 3
	TypeShort        DataType = 4
	TypeULong        DataType = 5
	TypeLong         DataType = 6
	TypeULongLong    DataType = 7
	TypeLongLong     DataType = 8
	TypeFloat        DataType = 9
	TypeDouble       DataType = 10
)

var scalarSizes = [11]int{0, 1, 1, 2, 2, 4, 4, 8, 8, 4, 8}

// Size returns the on-disk byte width of t, including vector types 11-30.
func Size(t DataType) (int, error) {
	switch {
	case t <= 10:
		return scalarSizes[t], nil
	case t >= 11 && t <= 20:
		base := scalarSizes[t-10]
		return base * 2, nil
	case t >= 21 && t <= 30:
		base := scalarSizes[t-20]
		return base * 3, nil
	default:
		return 0, fmt.Errorf("%w: extra-bytes data type code %d", errs.ErrUnsupportedUserType, t)
	}
}
