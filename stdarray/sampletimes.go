package stdarray

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/robert-malhotra/go-dsg/convert"
	"github.com/robert-malhotra/go-dsg/datatype"
)

// timeTolerance is how far apart, in seconds, two time specifications of
// one sample may be before they are reported as inconsistent.
const timeTolerance = 1.0

// timeCombo is one way of specifying sample times by columns.
type timeCombo struct {
	name string
	cols func(r roles) []int
	at   func(a *StdDataArray, row int) (float64, bool)
}

// timeCombos are tried in order; the first whose columns all exist
// determines the sample times. Date strings come late because their field
// order is ambiguous.
var timeCombos = []timeCombo{
	{
		name: "year, month, day, hour, minute",
		cols: func(r roles) []int { return []int{r.year, r.month, r.day, r.hour, r.minute} },
		at: func(a *StdDataArray, row int) (float64, bool) {
			d, ok := a.ymd(row)
			if !ok {
				return 0, false
			}
			c, ok := a.hms(row)
			return convert.Epoch(d, c), ok
		},
	},
	{
		name: "year, month, day, time of day",
		cols: func(r roles) []int { return []int{r.year, r.month, r.day, r.timeOfDay} },
		at: func(a *StdDataArray, row int) (float64, bool) {
			d, ok := a.ymd(row)
			if !ok {
				return 0, false
			}
			c, ok := a.clock(row)
			return convert.Epoch(d, c), ok
		},
	},
	{
		name: "year, day of year, second of day",
		cols: func(r roles) []int { return []int{r.year, r.dayOfYear, r.secOfDay} },
		at: func(a *StdDataArray, row int) (float64, bool) {
			y, ok1 := a.intAt(row, a.roles.year)
			doy, ok2 := a.doubleAt(row, a.roles.dayOfYear)
			sod, ok3 := a.doubleAt(row, a.roles.secOfDay)
			if !ok1 || !ok2 || !ok3 {
				return 0, false
			}
			return jan1(y) + (math.Floor(doy)-1.0)*86400.0 + sod, true
		},
	},
	{
		name: "timestamp",
		cols: func(r roles) []int { return []int{r.timestamp} },
		at: func(a *StdDataArray, row int) (float64, bool) {
			s, ok := a.values[row][a.roles.timestamp].AsString()
			if !ok {
				return 0, false
			}
			d, c, err := convert.ParseTimestamp(s)
			return convert.Epoch(d, c), err == nil
		},
	},
	{
		name: "date, time of day",
		cols: func(r roles) []int { return []int{r.date, r.timeOfDay} },
		at: func(a *StdDataArray, row int) (float64, bool) {
			d, ok := a.date(row)
			if !ok {
				return 0, false
			}
			c, ok := a.clock(row)
			return convert.Epoch(d, c), ok
		},
	},
	{
		name: "date, hour, minute",
		cols: func(r roles) []int { return []int{r.date, r.hour, r.minute} },
		at: func(a *StdDataArray, row int) (float64, bool) {
			d, ok := a.date(row)
			if !ok {
				return 0, false
			}
			c, ok := a.hms(row)
			return convert.Epoch(d, c), ok
		},
	},
	{
		name: "year, day of year",
		cols: func(r roles) []int { return []int{r.year, r.dayOfYear} },
		at: func(a *StdDataArray, row int) (float64, bool) {
			y, ok1 := a.intAt(row, a.roles.year)
			doy, ok2 := a.doubleAt(row, a.roles.dayOfYear)
			if !ok1 || !ok2 {
				return 0, false
			}
			return jan1(y) + (doy-1.0)*86400.0, true
		},
	},
}

func (c timeCombo) present(r roles) bool {
	for _, col := range c.cols(r) {
		if col < 0 {
			return false
		}
	}
	return true
}

// within reports whether every column of c is also a column of o.
func (c timeCombo) within(o timeCombo, r roles) bool {
	outer := o.cols(r)
	for _, col := range c.cols(r) {
		if !slices.Contains(outer, col) {
			return false
		}
	}
	return true
}

// HasSampleTimes reports whether the columns fully specify sample times.
func (a *StdDataArray) HasSampleTimes() bool {
	for _, c := range timeCombos {
		if c.present(a.roles) {
			return true
		}
	}
	return false
}

// SampleTimes returns the time of each sample in seconds since
// 1970-01-01T00:00:00Z, using the first complete combination of time
// columns. Rows whose time values are missing or invalid get a missing
// time. When other combinations are also present and disagree with the
// one used, a warning is returned for the row. Combinations built only
// from columns of the one used are not compared.
func (a *StdDataArray) SampleTimes() ([]datatype.Value, []Message, error) {
	var used []timeCombo
	for _, c := range timeCombos {
		if c.present(a.roles) {
			used = append(used, c)
		}
	}
	if len(used) == 0 {
		return nil, nil, ErrIncompleteTime
	}

	times := make([]datatype.Value, len(a.values))
	var msgs []Message
	for row := range a.values {
		t, ok := used[0].at(a, row)
		if !ok {
			continue
		}
		t = math.Round(t*1000.0) / 1000.0
		times[row] = datatype.DoubleValue(t)

		var others []string
		for _, c := range used[1:] {
			if c.within(used[0], a.roles) {
				continue
			}
			o, ok := c.at(a, row)
			if ok && math.Abs(o-t) > timeTolerance {
				others = append(others, fmt.Sprintf("%s gives %s", c.name, formatEpoch(o)))
			}
		}
		if len(others) > 0 {
			msgs = append(msgs, Message{
				Severity: datatype.SeverityWarning,
				Row:      row + 1,
				General:  "inconsistent sample times",
				Detail: fmt.Sprintf("%s gives %s but %s", used[0].name, formatEpoch(t),
					strings.Join(others, ", ")),
			})
		}
	}
	return times, msgs, nil
}

func formatEpoch(t float64) string {
	sec := math.Floor(t)
	nsec := int64(math.Round((t - sec) * 1e9))
	return time.Unix(int64(sec), nsec).UTC().Format("2006-01-02 15:04:05.999")
}

func jan1(year int) float64 {
	return float64(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Unix())
}

func (a *StdDataArray) intAt(row, col int) (int, bool) {
	return a.values[row][col].AsInt()
}

func (a *StdDataArray) doubleAt(row, col int) (float64, bool) {
	return a.values[row][col].AsDouble()
}

func (a *StdDataArray) ymd(row int) (convert.Date, bool) {
	y, ok1 := a.intAt(row, a.roles.year)
	m, ok2 := a.intAt(row, a.roles.month)
	d, ok3 := a.intAt(row, a.roles.day)
	if !ok1 || !ok2 || !ok3 {
		return convert.Date{}, false
	}
	date := convert.Date{Year: y, Month: m, Day: d}
	_, err := convert.ParseDate(date.String())
	return date, err == nil
}

// hms reads hour, minute and the optional second column.
func (a *StdDataArray) hms(row int) (convert.Clock, bool) {
	h, ok1 := a.intAt(row, a.roles.hour)
	m, ok2 := a.intAt(row, a.roles.minute)
	if !ok1 || !ok2 {
		return convert.Clock{}, false
	}
	c := convert.Clock{Hour: h, Minute: m}
	if a.roles.second >= 0 {
		if s, ok := a.doubleAt(row, a.roles.second); ok {
			c.Second = s
		}
	}
	valid := c.Hour >= 0 && c.Hour < 24 && c.Minute >= 0 && c.Minute < 60 &&
		c.Second >= 0 && c.Second < 60
	return c, valid
}

func (a *StdDataArray) clock(row int) (convert.Clock, bool) {
	s, ok := a.values[row][a.roles.timeOfDay].AsString()
	if !ok {
		return convert.Clock{}, false
	}
	c, err := convert.ParseClock(s)
	return c, err == nil
}

func (a *StdDataArray) date(row int) (convert.Date, bool) {
	s, ok := a.values[row][a.roles.date].AsString()
	if !ok {
		return convert.Date{}, false
	}
	d, err := convert.ParseDate(s)
	return d, err == nil
}
