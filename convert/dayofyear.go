package convert

import (
	"fmt"
	"time"

	"github.com/robert-malhotra/go-dsg/datatype"
)

// DayOfYear converts fractional days of the year to the Jan1=1.0
// convention. When the dataset has a year column, values are checked
// against the length of that row's year.
type DayOfYear struct {
	missing Missing
	offset  float64
	sib     Siblings
	yearCol int
}

// NewDayOfYear returns a day-of-year converter. sib may be nil; if it has
// a year column that is still pending, ErrNotYet is returned. A year
// column that could not be standardized is ignored.
func NewDayOfYear(inUnit, outUnit, missing string, sib Siblings) (*DayOfYear, error) {
	if outUnit != "" && outUnit != datatype.DayOfYearJan1Is1 {
		return nil, fmt.Errorf("%w: from %q to %q", ErrNotSupported, inUnit, outUnit)
	}
	res := &DayOfYear{missing: missingFor(missing, true), sib: sib, yearCol: -1}
	switch inUnit {
	case "", datatype.DayOfYearJan1Is1:
	case datatype.DayOfYearJan1Is0:
		res.offset = 1.0
	default:
		return nil, fmt.Errorf("%w: day of year unit %q", ErrNotSupported, inUnit)
	}
	if sib != nil {
		col := sib.ColumnOf(datatype.VarYear)
		switch {
		case col < 0:
		case sib.IsPending(col):
			return nil, fmt.Errorf("%w: year column %d", ErrNotYet, col+1)
		case sib.IsStandardized(col):
			res.yearCol = col
		}
	}
	return res, nil
}

// Convert implements Converter without the per-year length check.
func (c *DayOfYear) Convert(raw string) (datatype.Value, error) {
	return c.convert(raw, 366)
}

// ConvertRow implements RowConverter.
func (c *DayOfYear) ConvertRow(row int, raw string) (datatype.Value, error) {
	days := 366
	if c.yearCol >= 0 {
		if y, ok := c.sib.StdValue(row, c.yearCol).AsInt(); ok {
			days = daysIn(y)
		}
	}
	return c.convert(raw, days)
}

func (c *DayOfYear) convert(raw string, days int) (datatype.Value, error) {
	if c.missing.IsMissing(raw) {
		return datatype.Missing(), nil
	}
	v, err := parseFloat(raw)
	if err != nil {
		return datatype.Missing(), err
	}
	v += c.offset
	if v < 1.0 || v >= float64(days+1) {
		return datatype.Missing(), fmt.Errorf("%w: day of year %q out of range", ErrInvalidValue, raw)
	}
	return datatype.DoubleValue(v), nil
}

func daysIn(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}
