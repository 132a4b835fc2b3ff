// Package vlr implements Variable-Length Records and Extended
// Variable-Length Records: the (user-id, record-id)-addressed metadata
// blocks that carry coordinate systems, classification dictionaries,
// extra-byte schemas, and waveform descriptors alongside a LAS point table.
package vlr

import (
	"fmt"

	"github.com/goslas/lasgo/errs"
)

// Codec decodes and encodes one well-known payload type.
type Codec struct {
	Decode func(data []byte) (any, error)
	Encode func(payload any) ([]byte, error)
}

type regKey struct {
	userID   string
	recordID uint16
}

// registry is a process-wide, read-only-after-init map from (user-id,
// record-id) to the codec for that payload kind. Unregistered combinations
// decode as raw []byte.
var registry = map[regKey]Codec{}

// userIDOwners tracks which user-id each payload kind has been registered
// under, so Register can reject a payload type registered against more than
// one user-id.
var userIDOwners = map[string]string{}

// Register binds codec to userID and every id in recordIDs. kind names the
// payload type for the one-user-id-per-kind check; it need not match a Go
// type name. Register fails with errs.ErrDuplicateRegistration if any
// (userID, recordID) pair is already registered, or if kind was previously
// registered under a different userID.
func Register(kind, userID string, recordIDs []uint16, codec Codec) error {
	if owner, ok := userIDOwners[kind]; ok && owner != userID {
		return fmt.Errorf("%w: payload kind %q already registered under user-id %q, cannot also register under %q",
			errs.ErrDuplicateRegistration, kind, owner, userID)
	}

	for _, id := range recordIDs {
		key := regKey{userID, id}
		if _, exists := registry[key]; exists {
			return fmt.Errorf("%w: (%q, %d) is already registered", errs.ErrDuplicateRegistration, userID, id)
		}
	}

	for _, id := range recordIDs {
		registry[regKey{userID, id}] = codec
	}
	userIDOwners[kind] = userID

	return nil
}

func lookup(userID string, recordID uint16) (Codec, bool) {
	c, ok := registry[regKey{userID, recordID}]
	return c, ok
}

func decodePayload(userID string, recordID uint16, data []byte) (any, error) {
	if codec, ok := lookup(userID, recordID); ok {
		return codec.Decode(data)
	}

	raw := make([]byte, len(data))
	copy(raw, data)

	return raw, nil
}

func encodePayload(userID string, recordID uint16, payload any) ([]byte, error) {
	if userID == UserIDSpec && recordID == RecordSuperseded {
		// A superseded record keeps its payload; encode it by the payload's own kind.
		switch p := payload.(type) {
		case []byte:
			return p, nil
		case TextAreaDescription:
			recordID = RecordTextAreaDescription
		case ExtraBytes:
			recordID = RecordExtraBytes
		}
	}

	if codec, ok := lookup(userID, recordID); ok {
		return codec.Encode(payload)
	}

	if raw, ok := payload.([]byte); ok {
		return raw, nil
	}

	return nil, fmt.Errorf("%w: no codec registered for (%q, %d) and payload is not []byte", errs.ErrInvalidArgument, userID, recordID)
}

// errNotEnoughData is returned by payload decoders given a truncated buffer.
func errNotEnoughData(kind string, need, got int) error {
	return fmt.Errorf("%w: %s payload needs at least %d bytes, got %d", errs.ErrInconsistentVlr, kind, need, got)
}
