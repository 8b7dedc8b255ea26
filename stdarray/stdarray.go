package stdarray

import (
	"fmt"
	"slices"

	"github.com/robert-malhotra/go-dsg/datatype"
)

// Tolerances used when comparing double values.
const (
	RelTol = 1.0e-6
	AbsTol = 1.0e-4
)

// roles holds the first column of each special type, or -1.
type roles struct {
	lon, lat, depth            int
	timestamp, date, timeOfDay int
	year, month, day           int
	hour, minute, second       int
	dayOfYear, secOfDay        int
}

func findRoles(types []*datatype.DataType) roles {
	r := roles{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1}
	set := func(dst *int, col int) {
		if *dst < 0 {
			*dst = col
		}
	}
	for i, dt := range types {
		switch dt.VarName() {
		case datatype.VarLongitude:
			set(&r.lon, i)
		case datatype.VarLatitude:
			set(&r.lat, i)
		case datatype.VarSampleDepth:
			set(&r.depth, i)
		case datatype.VarTimestamp:
			set(&r.timestamp, i)
		case datatype.VarDate:
			set(&r.date, i)
		case datatype.VarTimeOfDay:
			set(&r.timeOfDay, i)
		case datatype.VarYear:
			set(&r.year, i)
		case datatype.VarMonth:
			set(&r.month, i)
		case datatype.VarDay:
			set(&r.day, i)
		case datatype.VarHour:
			set(&r.hour, i)
		case datatype.VarMinute:
			set(&r.minute, i)
		case datatype.VarSecond:
			set(&r.second, i)
		case datatype.VarDayOfYear:
			set(&r.dayOfYear, i)
		case datatype.VarSecOfDay:
			set(&r.secOfDay, i)
		}
	}
	return r
}

// StdDataArray is a matrix of standardized values, one DataType per
// column. It is read-only after construction.
type StdDataArray struct {
	types  []*datatype.DataType
	values [][]datatype.Value
	roles  roles
}

// New returns an array of values, indexed [row][column], typed by types.
// Every row must have one value per type and every non-missing value
// must be of its column's kind.
func New(types []*datatype.DataType, values [][]datatype.Value) (*StdDataArray, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrShape)
	}
	for i, dt := range types {
		if dt == nil {
			return nil, fmt.Errorf("%w: column %d has no type", ErrShape, i+1)
		}
	}
	res := &StdDataArray{
		types:  slices.Clone(types),
		values: make([][]datatype.Value, len(values)),
	}
	for r, row := range values {
		if len(row) != len(types) {
			return nil, fmt.Errorf("%w: row %d has %d values, expected %d",
				ErrShape, r+1, len(row), len(types))
		}
		for c, v := range row {
			if !v.IsMissing() && v.Kind() != types[c].Kind() {
				return nil, fmt.Errorf("%w: row %d column %d (%s) holds %v, expected %v",
					ErrKindMismatch, r+1, c+1, types[c].VarName(), v.Kind(), types[c].Kind())
			}
		}
		res.values[r] = slices.Clone(row)
	}
	res.roles = findRoles(res.types)
	return res, nil
}

// newEmpty returns an array of missing values.
func newEmpty(types []*datatype.DataType, rows int) *StdDataArray {
	res := &StdDataArray{
		types:  slices.Clone(types),
		values: make([][]datatype.Value, rows),
	}
	for r := range res.values {
		res.values[r] = make([]datatype.Value, len(types))
	}
	res.roles = findRoles(res.types)
	return res
}

// NumSamples returns the number of rows.
func (a *StdDataArray) NumSamples() int { return len(a.values) }

// NumColumns returns the number of columns.
func (a *StdDataArray) NumColumns() int { return len(a.types) }

// Types returns the column types.
func (a *StdDataArray) Types() []*datatype.DataType { return slices.Clone(a.types) }

// Type returns the type of col.
func (a *StdDataArray) Type(col int) *datatype.DataType { return a.types[col] }

// Value returns the value at row and col.
func (a *StdDataArray) Value(row, col int) datatype.Value { return a.values[row][col] }

// StdValue is Value; it lets converters read standardized siblings.
func (a *StdDataArray) StdValue(row, col int) datatype.Value { return a.values[row][col] }

// Column returns a copy of the values of col.
func (a *StdDataArray) Column(col int) []datatype.Value {
	res := make([]datatype.Value, len(a.values))
	for r, row := range a.values {
		res[r] = row[col]
	}
	return res
}

// ColumnOf returns the index of the first column of the type with the
// given variable name, or -1.
func (a *StdDataArray) ColumnOf(varName string) int {
	return slices.IndexFunc(a.types, func(dt *datatype.DataType) bool {
		return dt.VarName() == varName
	})
}

// HasColumn reports whether a column of the named type exists.
func (a *StdDataArray) HasColumn(varName string) bool {
	return a.ColumnOf(varName) >= 0
}

// QCColumnFor returns the first QC flag column for col, or -1.
func (a *StdDataArray) QCColumnFor(col int) int {
	return slices.IndexFunc(a.types, func(dt *datatype.DataType) bool {
		return dt.IsQCFlagFor(a.types[col])
	})
}

// CommentColumnFor returns the first comment column for col, or -1.
func (a *StdDataArray) CommentColumnFor(col int) int {
	return slices.IndexFunc(a.types, func(dt *datatype.DataType) bool {
		return dt.IsCommentFor(a.types[col])
	})
}

// SampleLongitudes returns the longitude of each sample.
func (a *StdDataArray) SampleLongitudes() ([]datatype.Value, error) {
	return a.roleColumn(a.roles.lon, datatype.VarLongitude)
}

// SampleLatitudes returns the latitude of each sample.
func (a *StdDataArray) SampleLatitudes() ([]datatype.Value, error) {
	return a.roleColumn(a.roles.lat, datatype.VarLatitude)
}

// SampleDepths returns the depth of each sample.
func (a *StdDataArray) SampleDepths() ([]datatype.Value, error) {
	return a.roleColumn(a.roles.depth, datatype.VarSampleDepth)
}

func (a *StdDataArray) roleColumn(col int, name string) ([]datatype.Value, error) {
	if col < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoColumn, name)
	}
	return a.Column(col), nil
}

// Equal reports whether a and o have equal types and values. Doubles are
// compared with tolerance, longitudes modulo 360 degrees.
func (a *StdDataArray) Equal(o *StdDataArray) bool {
	if a == o {
		return true
	}
	if a == nil || o == nil || len(a.types) != len(o.types) || len(a.values) != len(o.values) {
		return false
	}
	for c, dt := range a.types {
		if !dt.Equal(o.types[c]) {
			return false
		}
	}
	for r, row := range a.values {
		for c, v := range row {
			if !valuesClose(a.types[c], v, o.values[r][c]) {
				return false
			}
		}
	}
	return true
}

func valuesClose(dt *datatype.DataType, v, w datatype.Value) bool {
	x, ok1 := v.AsDouble()
	y, ok2 := w.AsDouble()
	if ok1 && ok2 && dt.VarName() == datatype.VarLongitude {
		return datatype.LongitudeCloseTo(x, y, RelTol, AbsTol)
	}
	return v.CloseTo(w, RelTol, AbsTol)
}
