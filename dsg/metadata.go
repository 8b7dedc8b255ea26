package dsg

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/robert-malhotra/go-dsg/convert"
	"github.com/robert-malhotra/go-dsg/datatype"
	"github.com/robert-malhotra/go-dsg/stdarray"
)

// Metadata holds one value per metadata type of a registry. Unset values
// are the missing-value sentinel of their type.
type Metadata struct {
	reg    *datatype.Registry
	types  []*datatype.DataType
	values map[string]datatype.Value
}

// NewMetadata returns metadata for the types of reg, all unset.
func NewMetadata(reg *datatype.Registry) *Metadata {
	m := &Metadata{
		reg:    reg,
		types:  reg.Types(),
		values: make(map[string]datatype.Value),
	}
	for _, dt := range m.types {
		m.values[dt.VarName()] = dt.MissingValue()
	}
	return m
}

// Registry returns the registry the metadata was built for.
func (m *Metadata) Registry() *datatype.Registry { return m.reg }

// Types returns the metadata types in sort order.
func (m *Metadata) Types() []*datatype.DataType { return slices.Clone(m.types) }

// Set stores v for dt. A missing v resets the value to the sentinel.
func (m *Metadata) Set(dt *datatype.DataType, v datatype.Value) error {
	if !m.reg.Contains(dt) {
		return fmt.Errorf("%w: %s", ErrUnknownType, dt.VarName())
	}
	if v.IsMissing() {
		v = dt.MissingValue()
	}
	if v.Kind() != dt.Kind() {
		return fmt.Errorf("%w: %s holds %v, not %v", ErrUnsupportedKind, dt.VarName(), v.Kind(), dt.Kind())
	}
	if d, ok := v.AsDouble(); ok && math.IsInf(d, 0) {
		v = dt.MissingValue()
	}
	m.values[dt.VarName()] = v
	return nil
}

// SetByName stores v for the type registered under name.
func (m *Metadata) SetByName(name string, v datatype.Value) error {
	dt, ok := m.reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return m.Set(dt, v)
}

// Get returns the value of dt, or its sentinel when unset or unknown.
func (m *Metadata) Get(dt *datatype.DataType) datatype.Value {
	if v, ok := m.values[dt.VarName()]; ok && m.reg.Contains(dt) {
		return v
	}
	return dt.MissingValue()
}

// Value returns the value of the type registered under name.
func (m *Metadata) Value(name string) (datatype.Value, bool) {
	dt, ok := m.reg.Lookup(name)
	if !ok {
		return datatype.Missing(), false
	}
	return m.Get(dt), true
}

// IsSet reports whether dt has a value other than its sentinel.
func (m *Metadata) IsSet(dt *datatype.DataType) bool {
	return !dt.IsMissing(m.Get(dt))
}

// DatasetID returns the dataset identifier, or "" when unset.
func (m *Metadata) DatasetID() string {
	v, _ := m.Value(datatype.VarDatasetID)
	s, _ := v.AsString()
	return s
}

// MaxStringLength returns the byte length of the longest string value
// rounded up to a multiple of 32, and at least 32.
func (m *Metadata) MaxStringLength() int {
	longest := 0
	for _, v := range m.values {
		if s, ok := v.AsString(); ok && len(s) > longest {
			longest = len(s)
		}
	}
	n := ((longest + 31) / 32) * 32
	return max(n, 32)
}

// Snapshot returns a copy of the values keyed by variable name.
func (m *Metadata) Snapshot() map[string]datatype.Value {
	return maps.Clone(m.values)
}

// Equal reports whether m and o hold equal values for the same types.
// Doubles are compared with tolerance, longitudes modulo 360 degrees.
func (m *Metadata) Equal(o *Metadata) bool {
	if m == o {
		return true
	}
	if m == nil || o == nil || len(m.types) != len(o.types) {
		return false
	}
	for i, dt := range m.types {
		if !dt.Equal(o.types[i]) {
			return false
		}
		v, w := m.Get(dt), o.Get(dt)
		x, ok1 := v.AsDouble()
		y, ok2 := w.AsDouble()
		switch {
		case ok1 && ok2 && isLongitude(dt):
			if !datatype.LongitudeCloseTo(x, y, stdarray.RelTol, stdarray.AbsTol) {
				return false
			}
		case !v.CloseTo(w, stdarray.RelTol, stdarray.AbsTol):
			return false
		}
	}
	return true
}

func isLongitude(dt *datatype.DataType) bool {
	switch dt.VarName() {
	case datatype.VarLongitude, datatype.VarWestmostLon, datatype.VarEastmostLon:
		return true
	}
	return false
}

// UpdateExtents sets the longitude, latitude and time extents from the
// samples of data. Types missing from the registry are skipped. When the
// shorter longitude span crosses the antimeridian the westmost longitude
// is greater than the eastmost.
func (m *Metadata) UpdateExtents(data *stdarray.StdDataArray) {
	if lons, err := data.SampleLongitudes(); err == nil {
		if west, east, ok := lonExtent(lons); ok {
			m.setIfKnown(datatype.VarWestmostLon, west)
			m.setIfKnown(datatype.VarEastmostLon, east)
		}
	}
	if lats, err := data.SampleLatitudes(); err == nil {
		if south, north, ok := extent(lats); ok {
			m.setIfKnown(datatype.VarSouthmostLat, south)
			m.setIfKnown(datatype.VarNorthmostLat, north)
		}
	}

	var times []datatype.Value
	if col := data.ColumnOf(datatype.VarTime); col >= 0 {
		times = data.Column(col)
	} else if ts, _, err := data.SampleTimes(); err == nil {
		times = ts
	}
	if start, end, ok := extent(times); ok {
		m.setIfKnown(datatype.VarTimeStart, start)
		m.setIfKnown(datatype.VarTimeEnd, end)
	}
}

func (m *Metadata) setIfKnown(name string, v float64) {
	if dt, ok := m.reg.Lookup(name); ok && dt.Kind() == datatype.KindDouble {
		_ = m.Set(dt, datatype.DoubleValue(v))
	}
}

func extent(vals []datatype.Value) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		d, isD := v.AsDouble()
		if !isD || d == datatype.MissingDouble {
			continue
		}
		lo, hi, ok = math.Min(lo, d), math.Max(hi, d), true
	}
	return lo, hi, ok
}

// lonExtent picks the smaller of the spans computed in (-180, 180] and
// in [0, 360).
func lonExtent(lons []datatype.Value) (west, east float64, ok bool) {
	var norm, shifted []datatype.Value
	for _, v := range lons {
		d, isD := v.AsDouble()
		if !isD || d == datatype.MissingDouble {
			continue
		}
		d = convert.NormalizeLongitude(d)
		norm = append(norm, datatype.DoubleValue(d))
		if d < 0 {
			d += 360.0
		}
		shifted = append(shifted, datatype.DoubleValue(d))
	}
	west, east, ok = extent(norm)
	if !ok {
		return 0, 0, false
	}
	w360, e360, _ := extent(shifted)
	if e360-w360 < east-west {
		return convert.NormalizeLongitude(w360), convert.NormalizeLongitude(e360), true
	}
	return west, east, true
}
