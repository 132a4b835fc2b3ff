package vlr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goslas/lasgo/errs"
)

func TestGeoKeysRoundTrip(t *testing.T) {
	require := require.New(t)

	payload := GeoKeys{
		KeyDirectoryVersion: 1,
		KeyRevision:         1,
		MinorRevision:       0,
		Keys: []KeyEntry{
			{KeyID: 1024, TIFFTagLoc: 0, Count: 1, ValueOffset: 1},
		},
	}

	v, err := New(UserIDProjection, RecordGeoKeys, "geo keys", payload, false)
	require.NoError(err)

	var buf bytes.Buffer
	require.NoError(v.Write(&buf))

	got, err := Read(&buf, false)
	require.NoError(err)
	require.Equal(UserIDProjection, got.UserID)
	require.Equal(payload, got.Payload)
}

func TestInconsistentVlrRejected(t *testing.T) {
	require := require.New(t)

	_, err := New(UserIDProjection, 1, "", GeoKeys{}, false)
	require.ErrorIs(err, errs.ErrInconsistentVlr)
}

func TestSetSupersededRequiresSpecUserID(t *testing.T) {
	require := require.New(t)

	v, err := New(UserIDProjection, RecordGeoKeys, "", GeoKeys{}, false)
	require.NoError(err)
	require.ErrorIs(v.SetSuperseded(), errs.ErrInconsistentVlr)

	v2 := &VLR{UserID: UserIDSpec, RecordID: RecordClassificationLookup, Payload: ClassificationLookup{}}
	require.NoError(v2.SetSuperseded())
	require.EqualValues(RecordSuperseded, v2.RecordID)
}

func TestExtraBytesRoundTrip(t *testing.T) {
	require := require.New(t)

	entry := ExtraBytesEntry{DataType: 9, Options: 0, Name: "custom_value", Description: "a custom column"}
	payload := ExtraBytes{Records: []ExtraBytesEntry{entry}}

	v, err := New(UserIDSpec, RecordExtraBytes, "extra bytes", payload, false)
	require.NoError(err)

	var buf bytes.Buffer
	require.NoError(v.Write(&buf))

	got, err := Read(&buf, false)
	require.NoError(err)

	decoded := got.Payload.(ExtraBytes)
	require.Len(decoded.Records, 1)
	require.Equal("custom_value", decoded.Records[0].Name)
	require.Equal(uint8(9), decoded.Records[0].DataType)
}

func TestPayloadTooLarge(t *testing.T) {
	require := require.New(t)

	v := &VLR{UserID: "CUSTOM", RecordID: 1, Payload: make([]byte, maxPayloadNormal+1)}
	err := v.Write(&bytes.Buffer{})
	require.ErrorIs(err, errs.ErrPayloadTooLarge)
}
