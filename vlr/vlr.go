package vlr

import (
	"fmt"
	"io"
	"math"

	"github.com/goslas/lasgo/bytesio"
	"github.com/goslas/lasgo/errs"
)

// headerSizeNormal and headerSizeExtended are the fixed wire sizes of a
// VLR's header, excluding payload: 54 bytes (normal) or 60 bytes (extended).
const (
	headerSizeNormal   = 54
	headerSizeExtended = 60
)

// maxPayloadNormal is the payload size cap for a normal VLR.
const maxPayloadNormal = math.MaxUint16

// VLR is a decoded Variable-Length Record or Extended Variable-Length
// Record. Payload holds a value produced by a registered Codec, or a raw
// []byte when (UserID, RecordID) has no registered codec.
type VLR struct {
	Reserved    uint16
	UserID      string
	RecordID    uint16
	Description string
	Extended    bool
	Payload     any
}

// New builds a VLR, checking the cross-field consistency rule for
// well-known payload kinds: a GeoKeys/ClassificationLookup/etc.
// payload must carry the record-id its kind requires.
func New(userID string, recordID uint16, description string, payload any, extended bool) (*VLR, error) {
	if err := checkConsistency(userID, recordID, payload); err != nil {
		return nil, err
	}

	return &VLR{
		UserID:      userID,
		RecordID:    recordID,
		Description: description,
		Extended:    extended,
		Payload:     payload,
	}, nil
}

func checkConsistency(userID string, recordID uint16, payload any) error {
	var want []uint16

	switch payload.(type) {
	case GeoKeys:
		want = []uint16{RecordGeoKeys}
	case GeoDoubleParamsTag:
		want = []uint16{RecordGeoDoubleParams}
	case GeoAsciiParamsTag:
		want = []uint16{RecordGeoAsciiParams}
	case OGCWKT:
		want = []uint16{RecordOGCWKT}
	case ClassificationLookup:
		want = []uint16{RecordClassificationLookup, RecordSuperseded}
	case TextAreaDescription:
		want = []uint16{RecordTextAreaDescription}
	case ExtraBytes:
		want = []uint16{RecordExtraBytes}
	default:
		return nil
	}

	for _, id := range want {
		if id == recordID {
			return nil
		}
	}

	return fmt.Errorf("%w: payload kind requires record-id in %v under user-id %q, got %d", errs.ErrInconsistentVlr, want, userID, recordID)
}

// SetSuperseded rewrites v's record-id to 7, marking it superseded. Only
// VLRs authored under LASF_Spec may be superseded.
func (v *VLR) SetSuperseded() error {
	if v.UserID != UserIDSpec {
		return fmt.Errorf("%w: only %q VLRs may be superseded, got %q", errs.ErrInconsistentVlr, UserIDSpec, v.UserID)
	}

	v.RecordID = RecordSuperseded

	return nil
}

// Extract finds the first VLR in vlrs matching (userID, recordID).
func Extract(vlrs []*VLR, userID string, recordID uint16) (*VLR, bool) {
	for _, v := range vlrs {
		if v.UserID == userID && v.RecordID == recordID {
			return v, true
		}
	}

	return nil, false
}

// WireSize returns v's total on-disk size, header plus encoded payload.
func (v *VLR) WireSize() (int, error) {
	payload, err := encodePayload(v.UserID, v.RecordID, v.Payload)
	if err != nil {
		return 0, err
	}

	if v.Extended {
		return headerSizeExtended + len(payload), nil
	}

	return headerSizeNormal + len(payload), nil
}

// Read decodes one VLR from r. extended selects the 8-byte (true) or
// 2-byte (false) payload-length field.
func Read(r io.Reader, extended bool) (*VLR, error) {
	v := &VLR{Extended: extended}

	var hdr [2]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, ioErr(err)
	}
	v.Reserved = bytesio.Engine.Uint16(hdr[:])

	userID, err := bytesio.ReadPaddedString(r, 16)
	if err != nil {
		return nil, err
	}
	v.UserID = userID

	var recID [2]byte
	if _, err := io.ReadFull(r, recID[:]); err != nil {
		return nil, ioErr(err)
	}
	v.RecordID = bytesio.Engine.Uint16(recID[:])

	var length uint64
	if extended {
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, ioErr(err)
		}
		length = bytesio.Engine.Uint64(b[:])
	} else {
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, ioErr(err)
		}
		length = uint64(bytesio.Engine.Uint16(b[:]))
	}

	description, err := bytesio.ReadPaddedString(r, 32)
	if err != nil {
		return nil, err
	}
	v.Description = description

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, ioErr(err)
	}

	payload, err := decodePayload(v.UserID, v.RecordID, data)
	if err != nil {
		return nil, err
	}
	v.Payload = payload

	return v, nil
}

// Write encodes v to w, recomputing the payload-length field from the
// encoded payload size. It fails with errs.ErrPayloadTooLarge if a normal
// VLR's payload exceeds 2^16-1 bytes.
func (v *VLR) Write(w io.Writer) error {
	payload, err := encodePayload(v.UserID, v.RecordID, v.Payload)
	if err != nil {
		return err
	}

	if !v.Extended && len(payload) > maxPayloadNormal {
		return fmt.Errorf("%w: normal VLR payload is %d bytes, max %d", errs.ErrPayloadTooLarge, len(payload), maxPayloadNormal)
	}

	var hdr [2]byte
	bytesio.Engine.PutUint16(hdr[:], v.Reserved)
	if _, err := w.Write(hdr[:]); err != nil {
		return ioErr(err)
	}

	if err := bytesio.WritePaddedString(w, v.UserID, 16); err != nil {
		return err
	}

	var recID [2]byte
	bytesio.Engine.PutUint16(recID[:], v.RecordID)
	if _, err := w.Write(recID[:]); err != nil {
		return ioErr(err)
	}

	if v.Extended {
		var b [8]byte
		bytesio.Engine.PutUint64(b[:], uint64(len(payload)))
		if _, err := w.Write(b[:]); err != nil {
			return ioErr(err)
		}
	} else {
		var b [2]byte
		bytesio.Engine.PutUint16(b[:], uint16(len(payload)))
		if _, err := w.Write(b[:]); err != nil {
			return ioErr(err)
		}
	}

	if err := bytesio.WritePaddedString(w, v.Description, 32); err != nil {
		return err
	}

	_, err = w.Write(payload)

	return ioErr(err)
}

func ioErr(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", errs.ErrIoError, err)
}
