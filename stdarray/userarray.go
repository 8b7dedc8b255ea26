package stdarray

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/robert-malhotra/go-dsg/convert"
	"github.com/robert-malhotra/go-dsg/datatype"
)

// ColumnState is the standardization state of a user column.
type ColumnState int

const (
	StatePending ColumnState = iota
	StateStandardized
	StateUnstandardizable
)

func (s ColumnState) String() string {
	switch s {
	case StateStandardized:
		return "standardized"
	case StateUnstandardizable:
		return "unstandardizable"
	default:
		return "pending"
	}
}

// Column declares a column of user data.
type Column struct {
	// Name is the user's name for the column, used in messages.
	Name string
	// Type is the data type assigned to the column.
	Type *datatype.DataType
	// Unit is the unit the raw values are in; empty means the standard unit.
	Unit string
	// Missing is the declared missing-value token; empty means the
	// default missing values.
	Missing string
}

// StdUserDataArray is a StdDataArray built from raw user strings. It
// remembers the user's column declarations, the state of each column and
// the messages produced while standardizing and checking the data.
type StdUserDataArray struct {
	StdDataArray
	columns  []Column
	states   []ColumnState
	messages []Message
}

// Standardize converts rows of raw strings according to columns.
//
// A row with the wrong number of values gets one critical row message;
// it is padded or truncated, and each padded cell gets a critical cell
// message. Columns of type unknown or other are left missing. The
// remaining columns are converted in passes until none is pending, so
// converters that need another column wait for it. Cell conversion
// failures become critical cell messages. Columns that keep waiting on
// each other give ErrUnresolvedColumns.
func Standardize(columns []Column, rows [][]string) (*StdUserDataArray, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrShape)
	}
	types := make([]*datatype.DataType, len(columns))
	for i, c := range columns {
		if c.Type == nil {
			return nil, fmt.Errorf("%w: column %d (%s) has no type", ErrShape, i+1, c.Name)
		}
		types[i] = c.Type
	}

	res := &StdUserDataArray{
		StdDataArray: *newEmpty(types, len(rows)),
		columns:      slices.Clone(columns),
		states:       make([]ColumnState, len(columns)),
	}

	raw, absent := res.normalizeRows(rows)

	for c, dt := range types {
		switch dt.VarName() {
		case datatype.VarUnknown, datatype.VarOther:
			res.states[c] = StateUnstandardizable
		}
	}

	for pass := 1; ; pass++ {
		progress := false
		pending := 0
		for c := range columns {
			if res.states[c] != StatePending {
				continue
			}
			conv, err := convert.New(types[c], columns[c].Unit, columns[c].Missing, res)
			if errors.Is(err, convert.ErrNotYet) {
				pending++
				continue
			}
			progress = true
			if err != nil {
				res.states[c] = StateUnstandardizable
				res.addMessage(datatype.SeverityCritical, 0, c,
					"unable to standardize column", err.Error())
				continue
			}
			res.convertColumn(c, conv, raw, absent)
			res.states[c] = StateStandardized
		}
		slog.Debug("Standardization pass", "pass", pass, "pending", pending)
		if pending == 0 {
			break
		}
		if !progress {
			var names []string
			for c, s := range res.states {
				if s == StatePending {
					names = append(names, res.columnName(c))
				}
			}
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedColumns, strings.Join(names, ", "))
		}
	}
	return res, nil
}

// normalizeRows pads or truncates rows to the number of columns.
func (a *StdUserDataArray) normalizeRows(rows [][]string) ([][]string, [][]bool) {
	n := len(a.columns)
	raw := make([][]string, len(rows))
	absent := make([][]bool, len(rows))
	for r, row := range rows {
		raw[r] = make([]string, n)
		absent[r] = make([]bool, n)
		copy(raw[r], row)
		if len(row) == n {
			continue
		}
		a.messages = append(a.messages, Message{
			Severity: datatype.SeverityCritical,
			Row:      r + 1,
			General:  "inconsistent number of data values",
			Detail:   fmt.Sprintf("found %d data values, expected %d", len(row), n),
		})
		for c := len(row); c < n; c++ {
			absent[r][c] = true
			a.addMessage(datatype.SeverityCritical, r+1, c, "no value", "no value given")
		}
	}
	return raw, absent
}

func (a *StdUserDataArray) convertColumn(c int, conv convert.Converter, raw [][]string, absent [][]bool) {
	rc, isRow := conv.(convert.RowConverter)
	for r := range raw {
		if absent[r][c] {
			continue
		}
		var v datatype.Value
		var err error
		if isRow {
			v, err = rc.ConvertRow(r, raw[r][c])
		} else {
			v, err = conv.Convert(raw[r][c])
		}
		if err != nil {
			a.addMessage(datatype.SeverityCritical, r+1, c, "unable to interpret value", err.Error())
			continue
		}
		a.values[r][c] = v
	}
}

// addMessage records a message for 0-based column c; row is 1-based.
func (a *StdUserDataArray) addMessage(sev datatype.Severity, row, c int, general, detail string) {
	name := a.columnName(c)
	a.messages = append(a.messages, Message{
		Severity:   sev,
		Row:        row,
		Column:     c + 1,
		ColumnName: name,
		General:    general,
		Detail:     name + ": " + detail,
	})
}

func (a *StdUserDataArray) columnName(c int) string {
	if n := a.columns[c].Name; n != "" {
		return n
	}
	return a.types[c].DisplayName()
}

// IsStandardized reports whether col was converted.
func (a *StdUserDataArray) IsStandardized(col int) bool {
	return a.states[col] == StateStandardized
}

// IsPending reports whether col has not been converted or given up on.
func (a *StdUserDataArray) IsPending(col int) bool {
	return a.states[col] == StatePending
}

// ColumnState returns the state of col.
func (a *StdUserDataArray) ColumnState(col int) ColumnState { return a.states[col] }

// IsUsable reports whether the values of col can be used.
func (a *StdUserDataArray) IsUsable(col int) bool { return a.IsStandardized(col) }

// UserColumn returns the declaration of col.
func (a *StdUserDataArray) UserColumn(col int) Column { return a.columns[col] }

// Messages returns the messages collected so far.
func (a *StdUserDataArray) Messages() []Message { return slices.Clone(a.messages) }

// CheckBounds adds a message for every standardized value outside the
// bounds of its type.
func (a *StdUserDataArray) CheckBounds() {
	for c, dt := range a.types {
		if !a.IsStandardized(c) {
			continue
		}
		for r, row := range a.values {
			issue := dt.BoundsCheck(row[c])
			if issue == nil {
				continue
			}
			a.messages = append(a.messages, Message{
				Severity:   issue.Severity,
				Row:        r + 1,
				Column:     c + 1,
				ColumnName: a.columnName(c),
				General:    issue.General,
				Detail:     issue.Detail,
			})
		}
	}
}

// CheckMissingLonLatDepthTime adds a critical message for every sample
// without a longitude, latitude, depth or time, or a single message when
// the data has no such column at all. Warnings about inconsistent time
// columns are added as well.
func (a *StdUserDataArray) CheckMissingLonLatDepthTime() {
	checks := []struct {
		col  int
		what string
	}{
		{a.roles.lon, "longitude"},
		{a.roles.lat, "latitude"},
		{a.roles.depth, "sample depth"},
	}
	for _, chk := range checks {
		if chk.col < 0 || !a.IsStandardized(chk.col) {
			a.messages = append(a.messages, Message{
				Severity: datatype.SeverityCritical,
				General:  "no " + chk.what + " column",
				Detail:   "no usable " + chk.what + " column",
			})
			continue
		}
		for r, row := range a.values {
			if row[chk.col].IsMissing() {
				a.addMessage(datatype.SeverityCritical, r+1, chk.col,
					"missing "+chk.what, "missing "+chk.what)
			}
		}
	}

	times, msgs, err := a.SampleTimes()
	if err != nil {
		a.messages = append(a.messages, Message{
			Severity: datatype.SeverityCritical,
			General:  "incomplete sample time specification",
			Detail:   err.Error(),
		})
		return
	}
	a.messages = append(a.messages, msgs...)
	for r, t := range times {
		if t.IsMissing() {
			a.messages = append(a.messages, Message{
				Severity: datatype.SeverityCritical,
				Row:      r + 1,
				General:  "missing sample time",
				Detail:   "missing or invalid date or time",
			})
		}
	}
}
