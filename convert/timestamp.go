package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robert-malhotra/go-dsg/datatype"
)

// Date is a calendar date.
type Date struct {
	Year, Month, Day int
}

// Clock is a time of day.
type Clock struct {
	Hour, Minute int
	Second       float64
}

func (d Date) valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t.Day() == d.Day
}

func (c Clock) valid() bool {
	return c.Hour >= 0 && c.Hour < 24 &&
		c.Minute >= 0 && c.Minute < 60 &&
		c.Second >= 0 && c.Second < 60
}

// String returns the date as yyyy-mm-dd.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// String returns the time as HH:mm:ss, with fractional seconds only when
// they are not zero.
func (c Clock) String() string {
	whole := int(c.Second)
	if float64(whole) == c.Second {
		return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, whole)
	}
	sec := strconv.FormatFloat(c.Second, 'f', -1, 64)
	if c.Second < 10 {
		sec = "0" + sec
	}
	return fmt.Sprintf("%02d:%02d:%s", c.Hour, c.Minute, sec)
}

// Epoch returns seconds since 1970-01-01T00:00:00Z for d at c.
func Epoch(d Date, c Clock) float64 {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, c.Hour, c.Minute, 0, 0, time.UTC)
	return float64(t.Unix()) + c.Second
}

// ParseDate parses a standardized yyyy-mm-dd date.
func ParseDate(s string) (Date, error) {
	return parseDate(s, "yyyy-mm-dd")
}

// ParseClock parses HH:mm, HH:mm:ss or HH:mm:ss.sss.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Clock{}, fmt.Errorf("%w: %q is not a time of day", ErrInvalidValue, s)
	}
	var c Clock
	var err error
	if c.Hour, err = strconv.Atoi(parts[0]); err != nil {
		return Clock{}, fmt.Errorf("%w: %q is not a time of day", ErrInvalidValue, s)
	}
	if c.Minute, err = strconv.Atoi(parts[1]); err != nil {
		return Clock{}, fmt.Errorf("%w: %q is not a time of day", ErrInvalidValue, s)
	}
	if len(parts) == 3 {
		if c.Second, err = strconv.ParseFloat(parts[2], 64); err != nil ||
			strings.ContainsAny(parts[2], "eE+-") {
			return Clock{}, fmt.Errorf("%w: %q is not a time of day", ErrInvalidValue, s)
		}
	}
	if !c.valid() {
		return Clock{}, fmt.Errorf("%w: %q is not a valid time of day", ErrInvalidValue, s)
	}
	return c, nil
}

// ParseTimestamp parses a standardized "yyyy-mm-dd HH:mm:ss" timestamp.
func ParseTimestamp(s string) (Date, Clock, error) {
	return parseTimestamp(s, "yyyy-mm-dd")
}

func parseTimestamp(s, order string) (Date, Clock, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")
	i := strings.IndexAny(s, " T")
	if i < 0 {
		return Date{}, Clock{}, fmt.Errorf("%w: %q is not a date and time", ErrInvalidValue, s)
	}
	d, err := parseDate(s[:i], order)
	if err != nil {
		return Date{}, Clock{}, err
	}
	c, err := ParseClock(s[i+1:])
	if err != nil {
		return Date{}, Clock{}, err
	}
	return d, c, nil
}

var dateSeparators = func(r rune) bool { return r == '-' || r == '/' || r == '.' }

// parseDate parses a date with fields in order, one of "yyyy-mm-dd",
// "mm-dd-yyyy", "dd-mm-yyyy" or "yyyymmdd".
func parseDate(s, order string) (Date, error) {
	s = strings.TrimSpace(s)
	var fields []string
	if order == "yyyymmdd" {
		if len(s) != 8 {
			return Date{}, fmt.Errorf("%w: %q is not a yyyymmdd date", ErrInvalidValue, s)
		}
		fields = []string{s[:4], s[4:6], s[6:]}
		order = "yyyy-mm-dd"
	} else {
		fields = strings.FieldsFunc(s, dateSeparators)
	}
	if len(fields) != 3 {
		return Date{}, fmt.Errorf("%w: %q is not a date", ErrInvalidValue, s)
	}
	nums := make([]int, 3)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return Date{}, fmt.Errorf("%w: %q is not a date", ErrInvalidValue, s)
		}
		nums[i] = n
	}
	var d Date
	switch order {
	case "yyyy-mm-dd":
		d = Date{nums[0], nums[1], nums[2]}
	case "mm-dd-yyyy":
		d = Date{nums[2], nums[0], nums[1]}
	case "dd-mm-yyyy":
		d = Date{nums[2], nums[1], nums[0]}
	default:
		return Date{}, fmt.Errorf("%w: date order %q", ErrNotSupported, order)
	}
	if !d.valid() {
		return Date{}, fmt.Errorf("%w: %q is not a valid date", ErrInvalidValue, s)
	}
	return d, nil
}

// Timestamp standardizes date-and-time strings to "yyyy-mm-dd HH:mm:ss".
type Timestamp struct {
	missing Missing
	order   string
}

// NewTimestamp returns a converter from inUnit, one of
// datatype.TimestampUnits, to the standard timestamp form.
func NewTimestamp(inUnit, outUnit, missing string) (*Timestamp, error) {
	std := datatype.TimestampUnits[0]
	if inUnit == "" {
		inUnit = std
	}
	if outUnit != "" && outUnit != std {
		return nil, fmt.Errorf("%w: from %q to %q", ErrNotSupported, inUnit, outUnit)
	}
	order, _, ok := strings.Cut(inUnit, " ")
	if !ok || !isDateOrder(order) || order == "yyyymmdd" {
		return nil, fmt.Errorf("%w: timestamp unit %q", ErrNotSupported, inUnit)
	}
	return &Timestamp{missing: missingFor(missing, false), order: order}, nil
}

// Convert implements Converter.
func (c *Timestamp) Convert(raw string) (datatype.Value, error) {
	if c.missing.IsMissing(raw) {
		return datatype.Missing(), nil
	}
	d, t, err := parseTimestamp(raw, c.order)
	if err != nil {
		return datatype.Missing(), err
	}
	return datatype.StringValue(d.String() + " " + t.String()), nil
}

// DateConv standardizes date strings to "yyyy-mm-dd".
type DateConv struct {
	missing Missing
	order   string
}

// NewDate returns a converter from inUnit, one of datatype.DateUnits, to
// the standard date form.
func NewDate(inUnit, outUnit, missing string) (*DateConv, error) {
	std := datatype.DateUnits[0]
	if inUnit == "" {
		inUnit = std
	}
	if outUnit != "" && outUnit != std {
		return nil, fmt.Errorf("%w: from %q to %q", ErrNotSupported, inUnit, outUnit)
	}
	if !isDateOrder(inUnit) {
		return nil, fmt.Errorf("%w: date unit %q", ErrNotSupported, inUnit)
	}
	return &DateConv{missing: missingFor(missing, false), order: inUnit}, nil
}

// Convert implements Converter.
func (c *DateConv) Convert(raw string) (datatype.Value, error) {
	if c.missing.IsMissing(raw) {
		return datatype.Missing(), nil
	}
	d, err := parseDate(raw, c.order)
	if err != nil {
		return datatype.Missing(), err
	}
	return datatype.StringValue(d.String()), nil
}

func isDateOrder(s string) bool {
	switch s {
	case "yyyy-mm-dd", "mm-dd-yyyy", "dd-mm-yyyy", "yyyymmdd":
		return true
	}
	return false
}

// TimeOfDay standardizes time-of-day strings to "HH:mm:ss".
type TimeOfDay struct {
	missing Missing
	packed  bool
}

// NewTimeOfDay returns a converter from inUnit, "hh:mm:ss" or "hhmmss",
// to the standard time-of-day form.
func NewTimeOfDay(inUnit, outUnit, missing string) (*TimeOfDay, error) {
	std := datatype.TimeOfDayUnits[0]
	if outUnit != "" && outUnit != std {
		return nil, fmt.Errorf("%w: from %q to %q", ErrNotSupported, inUnit, outUnit)
	}
	res := &TimeOfDay{missing: missingFor(missing, false)}
	switch inUnit {
	case "", std:
	case "hhmmss":
		res.packed = true
	default:
		return nil, fmt.Errorf("%w: time unit %q", ErrNotSupported, inUnit)
	}
	return res, nil
}

// Convert implements Converter.
func (c *TimeOfDay) Convert(raw string) (datatype.Value, error) {
	if c.missing.IsMissing(raw) {
		return datatype.Missing(), nil
	}
	s := strings.TrimSpace(raw)
	if c.packed {
		whole, frac, hasFrac := strings.Cut(s, ".")
		if len(whole) != 4 && len(whole) != 6 {
			return datatype.Missing(), fmt.Errorf("%w: %q is not an hhmmss time", ErrInvalidValue, raw)
		}
		s = whole[:2] + ":" + whole[2:4]
		if len(whole) == 6 {
			s += ":" + whole[4:]
			if hasFrac {
				s += "." + frac
			}
		}
	}
	t, err := ParseClock(s)
	if err != nil {
		return datatype.Missing(), err
	}
	return datatype.StringValue(t.String()), nil
}
