// Package wkt extracts the linear unit names from an OGC WKT coordinate
// system string without building a parse tree: only enough of the grammar
// is scanned to recover the horizontal and vertical units a LAS dataset's
// positions are stored in.
package wkt

import "regexp"

var (
	unitToken       = regexp.MustCompile(`UNIT\s*\[\s*"([^"]+)"`)
	lengthUnitToken = regexp.MustCompile(`LENGTHUNIT\s*\[\s*"([^"]+)"`)
	vertCSBlock     = regexp.MustCompile(`VERT_CS\s*\[.*`)
	proj4Units      = regexp.MustCompile(`\+units=(\S+)`)
	proj4VUnits     = regexp.MustCompile(`\+vunits=(\S+)`)
)

// ExtractUnits scans s for the first UNIT[...]/LENGTHUNIT[...] token (OGC
// WKT1/WKT2) and, separately, for a unit token inside a VERT_CS block; if
// neither grammar is present it falls back to proj4-style +units=/+vunits=
// tokens. ok is false if no unit information was found at all.
func ExtractUnits(s string) (horizontal, vertical string, ok bool) {
	if h, found := firstUnit(s); found {
		horizontal = h
		ok = true
	}

	if loc := vertCSBlock.FindStringIndex(s); loc != nil {
		if v, found := firstUnit(s[loc[0]:]); found {
			vertical = v
			ok = true
		}
	}

	if ok {
		return horizontal, vertical, true
	}

	if m := proj4Units.FindStringSubmatch(s); m != nil {
		horizontal = m[1]
		ok = true
	}
	if m := proj4VUnits.FindStringSubmatch(s); m != nil {
		vertical = m[1]
		ok = true
	}

	return horizontal, vertical, ok
}

func firstUnit(s string) (string, bool) {
	if m := unitToken.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	if m := lengthUnitToken.FindStringSubmatch(s); m != nil {
		return m[1], true
	}

	return "", false
}

// LinearScale reports the metres-per-unit conversion factor for a handful
// of common unit names; it falls back to 1.0 (already metric) for anything
// it doesn't recognise, which is the conservative choice when a dataset's
// actual unit can't be determined.
func LinearScale(name string) float64 {
	switch name {
	case "metre", "meter", "m":
		return 1.0
	case "foot", "ft", "US survey foot":
		return 0.3048006096012192
	case "foot_international", "international foot":
		return 0.3048
	default:
		return 1.0
	}
}
