package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goslas/lasgo/errs"
	"github.com/goslas/lasgo/pointformat"
	"github.com/goslas/lasgo/vlr"
)

func newTestDataset(t *testing.T) *Dataset {
	t.Helper()
	d, err := New(pointformat.V1_2, pointformat.Format0)
	require.NoError(t, err)

	require.NoError(t, d.AddPoints([]pointformat.Fields{
		{X: 1, Y: 2, Z: 3, Intensity: 0.5, ReturnNumber: 1, NumberOfReturns: 1},
		{X: 4, Y: 5, Z: 6, Intensity: 0.25, ReturnNumber: 2, NumberOfReturns: 2},
	}))

	return d
}

func TestAddColumnUpgradesFormat(t *testing.T) {
	d := newTestDataset(t)
	require.Equal(t, pointformat.Format0, d.Header.PointFormat)

	err := d.AddColumn("color", [][3]float64{{1, 1, 1}, {0.5, 0.5, 0.5}})
	require.NoError(t, err)
	require.Equal(t, pointformat.Format2, d.Header.PointFormat)

	err = d.AddColumn("nir", []float64{0.1, 0.2})
	require.NoError(t, err)
	require.Equal(t, pointformat.Format8, d.Header.PointFormat)
	require.True(t, d.Header.Version.AtLeast(pointformat.V1_4))
}

func TestAddColumnLengthMismatch(t *testing.T) {
	d := newTestDataset(t)

	err := d.AddColumn("intensity", []float64{1.0})
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

func TestAddUserColumnCreatesExtraBytesVLR(t *testing.T) {
	d := newTestDataset(t)

	err := d.AddColumn("height_above_ground", []float64{1.5, 2.5})
	require.NoError(t, err)

	v, ok := vlr.Extract(d.VLRs, vlr.UserIDSpec, vlr.RecordExtraBytes)
	require.True(t, ok)

	payload, ok := v.Payload.(vlr.ExtraBytes)
	require.True(t, ok)
	require.Len(t, payload.Records, 1)
	require.Equal(t, "height_above_ground", payload.Records[0].Name)

	newLen, err := pointformat.Size(d.Header.PointFormat)
	require.NoError(t, err)
	require.Equal(t, newLen+8, int(d.Header.PointRecordLength))
}

func TestAddVLRDuplicateRejected(t *testing.T) {
	d := newTestDataset(t)

	v1, err := vlr.New(vlr.UserIDSpec, vlr.RecordTextAreaDescription, "desc", vlr.TextAreaDescription{Text: "a"}, false)
	require.NoError(t, err)
	require.NoError(t, d.AddVLR(v1))

	v2, err := vlr.New(vlr.UserIDSpec, vlr.RecordTextAreaDescription, "desc2", vlr.TextAreaDescription{Text: "b"}, false)
	require.NoError(t, err)
	err = d.AddVLR(v2)
	require.ErrorIs(t, err, errs.ErrDuplicateVlrId)
}

func TestAddVLRSupersededAllowsReplacement(t *testing.T) {
	d := newTestDataset(t)

	v1, err := vlr.New(vlr.UserIDSpec, vlr.RecordTextAreaDescription, "desc", vlr.TextAreaDescription{Text: "a"}, false)
	require.NoError(t, err)
	require.NoError(t, d.AddVLR(v1))
	require.NoError(t, d.SetSuperseded(v1))

	v2, err := vlr.New(vlr.UserIDSpec, vlr.RecordTextAreaDescription, "desc2", vlr.TextAreaDescription{Text: "b"}, false)
	require.NoError(t, err)
	require.NoError(t, d.AddVLR(v2))
}

func TestRemoveVLRNotFound(t *testing.T) {
	d := newTestDataset(t)

	v, err := vlr.New(vlr.UserIDSpec, vlr.RecordTextAreaDescription, "desc", vlr.TextAreaDescription{Text: "a"}, false)
	require.NoError(t, err)

	err = d.RemoveVLR(v)
	require.ErrorIs(t, err, errs.ErrVlrNotFound)
}

func TestAddExtendedVLRUpgradesVersion(t *testing.T) {
	d := newTestDataset(t)
	require.False(t, d.Header.Version.AtLeast(pointformat.V1_4))

	v, err := vlr.New("CUSTOM", 99, "extended payload", []byte("payload"), true)
	require.NoError(t, err)
	require.NoError(t, d.AddVLR(v))
	require.True(t, d.Header.Version.AtLeast(pointformat.V1_4))
	require.Len(t, d.EVLRs, 1)
}

func TestRemovePointsRecomputesCounts(t *testing.T) {
	d := newTestDataset(t)

	require.NoError(t, d.RemovePoints([]int{0}))
	require.Equal(t, 1, d.Table.Len())
	require.EqualValues(t, 1, d.Header.PointCount)
	require.Equal(t, uint32(1), d.Header.LegacyPointsByReturn[1])
}

func TestDatasetEqualSelf(t *testing.T) {
	d := newTestDataset(t)
	require.True(t, d.Equal(d))
}

func TestDatasetEqualDetectsNonPositionDifferences(t *testing.T) {
	a := newTestDataset(t)
	b := newTestDataset(t)
	require.True(t, a.Equal(b), "two freshly built identical datasets must compare equal")

	b.Table.Intensity[0] = a.Table.Intensity[0] + 1
	require.False(t, a.Equal(b), "Equal must notice a changed Intensity value")

	b = newTestDataset(t)
	b.Table.Classification[0] = a.Table.Classification[0] + 1
	require.False(t, a.Equal(b), "Equal must notice a changed Classification value")

	b = newTestDataset(t)
	b.Table.ReturnNumber[1] = a.Table.ReturnNumber[1] + 1
	require.False(t, a.Equal(b), "Equal must notice a changed ReturnNumber value")

	b = newTestDataset(t)
	require.NoError(t, b.AddColumn("rho", []float64{0.1, 0.2}))
	require.False(t, a.Equal(b), "Equal must notice a dataset-only extra user column")
}
