package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-dsg/datatype"
)

type linear struct {
	slope     float64
	intercept float64
}

func (l linear) apply(v float64) float64 { return v*l.slope + l.intercept }

func (l linear) inverse() linear {
	return linear{slope: 1.0 / l.slope, intercept: -l.intercept / l.slope}
}

type unitPair struct{ from, to string }

// linearTable holds every supported pair and its inverse.
var linearTable = map[unitPair]linear{}

func addLinear(from, to string, slope, intercept float64) {
	l := linear{slope: slope, intercept: intercept}
	linearTable[unitPair{from, to}] = l
	linearTable[unitPair{to, from}] = l.inverse()
}

func init() {
	// distance
	addLinear("km", "meters", 1000.0, 0.0)
	addLinear("feet", "meters", 0.3048, 0.0)
	addLinear("fathoms", "meters", 1.8288, 0.0)

	// temperature
	addLinear("degF", "degC", 5.0/9.0, -32.0*5.0/9.0)
	addLinear("K", "degC", 1.0, -273.15)

	// pressure
	addLinear("kPa", "hPa", 10.0, 0.0)
	addLinear("mmHg", "hPa", 1.33322368, 0.0)
	addLinear("PSI", "hPa", 68.9475729, 0.0)
	addLinear("atm", "hPa", 1013.25, 0.0)

	// speed
	addLinear("knots", "m/s", 1852.0/3600.0, 0.0)
	addLinear("km/h", "m/s", 1.0/3.6, 0.0)
	addLinear("mph", "m/s", 0.44704, 0.0)

	// mole fraction
	addLinear("ppm", "umol/mol", 1.0, 0.0)
	addLinear("mmol/mol", "umol/mol", 1000.0, 0.0)
	addLinear("nmol/mol", "umol/mol", 0.001, 0.0)
}

// LinearPairs returns the supported (from, to) unit pairs of the linear
// converter, not including identities.
func LinearPairs() [][2]string {
	res := make([][2]string, 0, len(linearTable))
	for p := range linearTable {
		res = append(res, [2]string{p.from, p.to})
	}
	return res
}

// Linear converts numbers with out = in*slope + intercept.
type Linear struct {
	missing Missing
	conv    linear
}

// NewLinear returns the converter from inUnit to outUnit. Equal units, or
// an empty unit on either side, give the identity conversion.
func NewLinear(inUnit, outUnit, missing string) (*Linear, error) {
	res := &Linear{
		missing: missingFor(missing, true),
		conv:    linear{slope: 1.0},
	}
	if inUnit == "" || outUnit == "" || inUnit == outUnit {
		return res, nil
	}
	l, ok := linearTable[unitPair{inUnit, outUnit}]
	if !ok {
		return nil, fmt.Errorf("%w: from %q to %q", ErrNotSupported, inUnit, outUnit)
	}
	res.conv = l
	return res, nil
}

// Convert implements Converter.
func (c *Linear) Convert(raw string) (datatype.Value, error) {
	if c.missing.IsMissing(raw) {
		return datatype.Missing(), nil
	}
	v, err := parseFloat(raw)
	if err != nil {
		return datatype.Missing(), err
	}
	return datatype.DoubleValue(c.conv.apply(v)), nil
}

// Integer converts whole numbers. Unit conversion is not supported.
type Integer struct {
	missing Missing
}

// NewInteger returns an integer converter. Only identical (or empty)
// units are supported.
func NewInteger(inUnit, outUnit, missing string) (*Integer, error) {
	if inUnit != "" && outUnit != "" && inUnit != outUnit {
		return nil, fmt.Errorf("%w: from %q to %q", ErrNotSupported, inUnit, outUnit)
	}
	return &Integer{missing: missingFor(missing, true)}, nil
}

// Convert implements Converter. Floating-point input is accepted when it
// has no fractional part. Values must fit in 32 bits.
func (c *Integer) Convert(raw string) (datatype.Value, error) {
	if c.missing.IsMissing(raw) {
		return datatype.Missing(), nil
	}
	s := strings.TrimSpace(raw)
	if i, err := strconv.Atoi(s); err == nil {
		if i < math.MinInt32 || i > math.MaxInt32 {
			return datatype.Missing(), fmt.Errorf("%w: %q is out of the integer range", ErrInvalidValue, raw)
		}
		return datatype.IntValue(i), nil
	}
	v, err := parseFloat(s)
	if err != nil {
		return datatype.Missing(), fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, raw)
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return datatype.Missing(), fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, raw)
	}
	return datatype.IntValue(int(v)), nil
}

func parseFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, raw)
	}
	return v, nil
}
