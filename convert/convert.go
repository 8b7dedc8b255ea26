package convert

import (
	"fmt"
	"slices"

	"github.com/robert-malhotra/go-dsg/datatype"
)

// Converter standardizes the raw strings of one column.
// A missing raw value converts to the missing Value without error.
type Converter interface {
	Convert(raw string) (datatype.Value, error)
}

// RowConverter is a Converter whose result depends on other columns of
// the same row.
type RowConverter interface {
	Converter
	ConvertRow(row int, raw string) (datatype.Value, error)
}

// Siblings gives converters access to the other columns of a dataset
// being standardized.
type Siblings interface {
	// ColumnOf returns the index of the first column of the named type,
	// or -1.
	ColumnOf(varName string) int
	// IsStandardized reports whether col has been converted.
	IsStandardized(col int) bool
	// IsPending reports whether col may still be converted.
	IsPending(col int) bool
	// StdValue returns the standardized value at row and col.
	StdValue(row, col int) datatype.Value
}

// New returns the converter from inUnit to the standard unit of dt.
// An empty inUnit means the standard unit, an empty missing token means
// the default missing values. Types that are never standardized, such as
// "unknown" and "other", give ErrNotSupported.
func New(dt *datatype.DataType, inUnit, missing string, sib Siblings) (Converter, error) {
	if inUnit != "" && !dt.HasUnit(inUnit) {
		return nil, fmt.Errorf("%w: %s has no unit %q", ErrNotSupported, dt.VarName(), inUnit)
	}
	out := dt.StdUnit()

	switch dt.VarName() {
	case datatype.VarUnknown, datatype.VarOther:
		return nil, fmt.Errorf("%w: %s columns are not standardized", ErrNotSupported, dt.VarName())
	case datatype.VarTimestamp:
		return checked(NewTimestamp(inUnit, out, missing))
	case datatype.VarDate:
		return checked(NewDate(inUnit, out, missing))
	case datatype.VarTimeOfDay:
		return checked(NewTimeOfDay(inUnit, out, missing))
	case datatype.VarDayOfYear:
		return checked(NewDayOfYear(inUnit, out, missing, sib))
	}
	if isGeoUnit(out) {
		if inUnit == "" {
			inUnit = out
		}
		return checked(NewGeo(inUnit, out, missing))
	}

	switch dt.Kind() {
	case datatype.KindString:
		return NewText(missing), nil
	case datatype.KindChar:
		return NewChar(missing), nil
	case datatype.KindInt:
		return checked(NewInteger(inUnit, out, missing))
	case datatype.KindDouble:
		return checked(NewLinear(inUnit, out, missing))
	}
	return nil, fmt.Errorf("%w: kind %v", ErrNotSupported, dt.Kind())
}

func isGeoUnit(u string) bool {
	return slices.Contains(datatype.LongitudeUnits, u) || slices.Contains(datatype.LatitudeUnits, u)
}

// checked keeps a failed constructor from yielding a non-nil Converter
// holding a nil pointer.
func checked[T Converter](c T, err error) (Converter, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
