package wkt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractUnitsWKT1(t *testing.T) {
	s := `PROJCS["NAD83 / UTM zone 10N",GEOGCS["NAD83",DATUM["North_American_Datum_1983"]],UNIT["metre",1]]`
	h, v, ok := ExtractUnits(s)
	require.True(t, ok)
	require.Equal(t, "metre", h)
	require.Empty(t, v)
}

func TestExtractUnitsWKT2WithVertical(t *testing.T) {
	s := `PROJCS["x",LENGTHUNIT["metre",1]],VERT_CS["NAVD88 height",UNIT["US survey foot",0.3048006096012192]]`
	h, v, ok := ExtractUnits(s)
	require.True(t, ok)
	require.Equal(t, "metre", h)
	require.Equal(t, "US survey foot", v)
}

func TestExtractUnitsProj4Fallback(t *testing.T) {
	s := "+proj=utm +zone=10 +units=us-ft +vunits=m"
	h, v, ok := ExtractUnits(s)
	require.True(t, ok)
	require.Equal(t, "us-ft", h)
	require.Equal(t, "m", v)
}

func TestExtractUnitsNoMatch(t *testing.T) {
	_, _, ok := ExtractUnits("not a coordinate system string")
	require.False(t, ok)
}

func TestLinearScale(t *testing.T) {
	require.InDelta(t, 1.0, LinearScale("metre"), 1e-9)
	require.InDelta(t, 0.3048006096012192, LinearScale("US survey foot"), 1e-12)
	require.InDelta(t, 1.0, LinearScale("unknown"), 1e-9)
}
