package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-dsg/datatype"
)

type geoFormat int

const (
	fmtDeg geoFormat = iota
	fmtDegMin
	fmtDegMinSec
	fmtPacked
)

var geoFormats = []struct {
	prefix string
	format geoFormat
}{
	{"deg min sec ", fmtDegMinSec},
	{"deg min ", fmtDegMin},
	{"deg ", fmtDeg},
	{"DDD.MMSSsss ", fmtPacked},
}

// Geo converts longitudes and latitudes given in decimal degrees,
// degrees and minutes, degrees minutes and seconds, or packed
// DDD.MMSSsss form to signed decimal degrees.
type Geo struct {
	missing    Missing
	format     geoFormat
	hemisphere byte
	longitude  bool
}

// NewGeo returns the converter for inUnit, one of the longitude or
// latitude units such as "deg min W". The output unit must be
// "deg E" or "deg N" on the same axis.
func NewGeo(inUnit, outUnit, missing string) (*Geo, error) {
	res := &Geo{missing: missingFor(missing, true), format: -1}
	for _, f := range geoFormats {
		if rest, ok := strings.CutPrefix(inUnit, f.prefix); ok && len(rest) == 1 {
			res.format = f.format
			res.hemisphere = rest[0]
			break
		}
	}
	if res.format < 0 {
		return nil, fmt.Errorf("%w: unknown geographic unit %q", ErrNotSupported, inUnit)
	}
	switch res.hemisphere {
	case 'E', 'W':
		res.longitude = true
		if outUnit != "deg E" {
			return nil, fmt.Errorf("%w: from %q to %q", ErrNotSupported, inUnit, outUnit)
		}
	case 'N', 'S':
		if outUnit != "deg N" {
			return nil, fmt.Errorf("%w: from %q to %q", ErrNotSupported, inUnit, outUnit)
		}
	default:
		return nil, fmt.Errorf("%w: unknown hemisphere in %q", ErrNotSupported, inUnit)
	}
	return res, nil
}

// Convert implements Converter. A trailing hemisphere letter in raw
// overrides the hemisphere of the unit. Longitudes are normalized
// into (-180, 180].
func (c *Geo) Convert(raw string) (datatype.Value, error) {
	if c.missing.IsMissing(raw) {
		return datatype.Missing(), nil
	}
	s := strings.TrimSpace(raw)
	hemi := c.hemisphere
	if n := len(s); n > 0 {
		switch last := s[n-1] &^ 0x20; last {
		case 'E', 'W', 'N', 'S':
			if (last == 'E' || last == 'W') != c.longitude {
				return datatype.Missing(), fmt.Errorf("%w: %q has the wrong hemisphere", ErrInvalidValue, raw)
			}
			hemi = last
			s = strings.TrimSpace(s[:n-1])
		}
	}

	v, err := c.parse(s)
	if err != nil {
		return datatype.Missing(), fmt.Errorf("%w: %q: %v", ErrInvalidValue, raw, err)
	}
	if hemi == 'W' || hemi == 'S' {
		v = -v
	}

	if !c.longitude {
		if v < -90.0 || v > 90.0 {
			return datatype.Missing(), fmt.Errorf("%w: latitude %q out of range", ErrInvalidValue, raw)
		}
		return datatype.DoubleValue(v), nil
	}
	if v < -360.0 || v > 360.0 {
		return datatype.Missing(), fmt.Errorf("%w: longitude %q out of range", ErrInvalidValue, raw)
	}
	return datatype.DoubleValue(NormalizeLongitude(v)), nil
}

// NormalizeLongitude moves v into (-180, 180] by whole turns.
func NormalizeLongitude(v float64) float64 {
	for v <= -180.0 {
		v += 360.0
	}
	for v > 180.0 {
		v -= 360.0
	}
	return v
}

var geoMarks = strings.NewReplacer("°", " ", "'", " ", "\"", " ", ":", " ")

func (c *Geo) parse(s string) (float64, error) {
	fields := strings.Fields(geoMarks.Replace(s))
	want := map[geoFormat]int{fmtDeg: 1, fmtDegMin: 2, fmtDegMinSec: 3, fmtPacked: 1}[c.format]
	if len(fields) != want {
		return 0, fmt.Errorf("expected %d fields, got %d", want, len(fields))
	}
	if c.format == fmtPacked {
		return parsePacked(fields[0])
	}

	neg := strings.HasPrefix(fields[0], "-")
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%q is not a number", f)
		}
		vals[i] = math.Abs(v)
	}
	res := vals[0]
	for i, div := range []float64{60.0, 3600.0}[:len(vals)-1] {
		part := vals[i+1]
		if part >= 60.0 {
			return 0, fmt.Errorf("%v is not less than 60", part)
		}
		res += part / div
	}
	if neg {
		res = -res
	}
	return res, nil
}

// parsePacked parses DDD.MMSSsss where the two digits after the point are
// minutes and the remaining digits seconds with an implied decimal point
// after the second digit.
func parsePacked(s string) (float64, error) {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimLeft(s, "+-")
	degStr, frac, _ := strings.Cut(s, ".")
	if degStr == "" {
		degStr = "0"
	}
	deg, err := strconv.Atoi(degStr)
	if err != nil {
		return 0, fmt.Errorf("%q is not in DDD.MMSSsss form", s)
	}
	for len(frac) < 4 {
		frac += "0"
	}
	mins, err := strconv.Atoi(frac[:2])
	if err != nil {
		return 0, fmt.Errorf("%q is not in DDD.MMSSsss form", s)
	}
	secStr := frac[2:4]
	if len(frac) > 4 {
		secStr += "." + frac[4:]
	}
	sec, err := strconv.ParseFloat(secStr, 64)
	if err != nil || strings.ContainsAny(secStr, "+-eE") {
		return 0, fmt.Errorf("%q is not in DDD.MMSSsss form", s)
	}
	if mins >= 60 || sec >= 60.0 {
		return 0, fmt.Errorf("%q has minutes or seconds not less than 60", s)
	}
	res := float64(deg) + float64(mins)/60.0 + sec/3600.0
	if neg {
		res = -res
	}
	return res, nil
}
