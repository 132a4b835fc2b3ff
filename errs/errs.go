// Package errs defines the sentinel errors shared across lasgo's packages.
//
// Every error kind named by the format specification is a package-level
// error value created with errors.New. Call sites wrap the relevant sentinel
// with fmt.Errorf("%w: ...", errs.ErrX, detail) so callers can still match
// on the kind with errors.Is while getting a message carrying the offending
// value.
package errs

import "errors"

var (
	// ErrInvalidFormat indicates a signature mismatch or otherwise unrecognized byte layout.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrUnsupportedVersion indicates a LAS spec version outside the supported 1.1-1.4 range.
	ErrUnsupportedVersion = errors.New("unsupported LAS version")

	// ErrUnsupportedPointFormat indicates a point format id outside 0-10, or one incompatible
	// with the declared spec version.
	ErrUnsupportedPointFormat = errors.New("unsupported point format")

	// ErrInconsistentHeader indicates header counters/offsets disagree with the rest of the file.
	ErrInconsistentHeader = errors.New("inconsistent header")

	// ErrInconsistentVlr indicates a known VLR payload type was stored under the wrong record id.
	ErrInconsistentVlr = errors.New("inconsistent VLR")

	// ErrInconsistentRecordLength indicates the point record length disagrees with the
	// resolved point format size plus any extra/undocumented bytes.
	ErrInconsistentRecordLength = errors.New("inconsistent point record length")

	// ErrPayloadTooLarge indicates a VLR payload exceeds its wire format's size cap.
	ErrPayloadTooLarge = errors.New("VLR payload too large")

	// ErrCountTooLarge indicates a point count exceeds what the legacy 32-bit field can hold.
	ErrCountTooLarge = errors.New("point count too large for legacy field")

	// ErrScaleOutOfRange indicates a bounding box cannot be represented with the configured scale.
	ErrScaleOutOfRange = errors.New("scale out of range")

	// ErrUnrepresentableColumns indicates no point format supports the requested column set.
	ErrUnrepresentableColumns = errors.New("no point format supports the requested columns")

	// ErrUnsupportedUserType indicates a user column's element type is not one of the LAS base types.
	ErrUnsupportedUserType = errors.New("unsupported user column type")

	// ErrLengthMismatch indicates a column's length does not match the point table's length.
	ErrLengthMismatch = errors.New("column length mismatch")

	// ErrDuplicateVlrId indicates a non-superseded VLR with the same (user-id, record-id) already exists.
	ErrDuplicateVlrId = errors.New("duplicate VLR id")

	// ErrDuplicateRegistration indicates two payload types were registered against overlapping VLR ids.
	ErrDuplicateRegistration = errors.New("duplicate VLR registration")

	// ErrVlrNotFound indicates a VLR lookup or removal found no matching record.
	ErrVlrNotFound = errors.New("VLR not found")

	// ErrIoError wraps an underlying stream failure.
	ErrIoError = errors.New("I/O error")

	// ErrInvalidArgument indicates a caller-supplied argument violates a documented precondition.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrExternalTool indicates a laszip-style external process exited with a failure status
	// or produced output the facade could not parse.
	ErrExternalTool = errors.New("external LAZ tool failed")
)
