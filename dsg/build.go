package dsg

import (
	"fmt"
	"math"
	"time"

	"github.com/robert-malhotra/go-dsg/datatype"
	"github.com/robert-malhotra/go-dsg/stdarray"
)

// derivedColumns are the columns BuildDataArray computes from sample
// times and positions, in output order.
var derivedColumns = []string{
	datatype.VarYear, datatype.VarMonth, datatype.VarDay,
	datatype.VarHour, datatype.VarMinute, datatype.VarSecond,
	datatype.VarLongitude, datatype.VarLatitude, datatype.VarSampleDepth,
	datatype.VarTime,
}

// BuildDataArray assembles the observation array written to files from
// standardized user data. The time columns are derived from the sample
// times, whatever combination of time columns the user provided.
// Positions are copied. Every other usable user column whose type is in
// fileTypes with the same kind is copied as well, string columns
// excepted.
func BuildDataArray(user *stdarray.StdUserDataArray, fileTypes *datatype.Registry) (*stdarray.StdDataArray, error) {
	times, _, err := user.SampleTimes()
	if err != nil {
		return nil, err
	}
	lons, err := user.SampleLongitudes()
	if err != nil {
		return nil, err
	}
	lats, err := user.SampleLatitudes()
	if err != nil {
		return nil, err
	}
	depths, err := user.SampleDepths()
	if err != nil {
		return nil, err
	}

	var types []*datatype.DataType
	for _, name := range derivedColumns {
		dt, ok := fileTypes.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
		}
		types = append(types, dt)
	}

	n := user.NumSamples()
	rows := make([][]datatype.Value, n)
	for r := range rows {
		row := make([]datatype.Value, len(types), len(types)+user.NumColumns())
		if t, ok := times[r].AsDouble(); ok {
			ts := time.UnixMilli(int64(math.Round(t * 1000))).UTC()
			row[0] = datatype.IntValue(ts.Year())
			row[1] = datatype.IntValue(int(ts.Month()))
			row[2] = datatype.IntValue(ts.Day())
			row[3] = datatype.IntValue(ts.Hour())
			row[4] = datatype.IntValue(ts.Minute())
			row[5] = datatype.DoubleValue(float64(ts.Second()) + float64(ts.Nanosecond())/1e9)
			row[9] = datatype.DoubleValue(t)
		}
		row[6], row[7], row[8] = lons[r], lats[r], depths[r]
		rows[r] = row
	}

	for col, ut := range user.Types() {
		if !user.IsUsable(col) || ut.Kind() == datatype.KindString {
			continue
		}
		dt, ok := fileTypes.Lookup(ut.VarName())
		if !ok || dt.VarName() != ut.VarName() || dt.Kind() != ut.Kind() {
			continue
		}
		if isDerived(dt.VarName()) || containsType(types, dt) {
			continue
		}
		types = append(types, dt)
		for r := range rows {
			rows[r] = append(rows[r], user.StdValue(r, col))
		}
	}
	return stdarray.New(types, rows)
}

func isDerived(name string) bool {
	for _, d := range derivedColumns {
		if d == name {
			return true
		}
	}
	return false
}

func containsType(types []*datatype.DataType, dt *datatype.DataType) bool {
	for _, t := range types {
		if t.VarName() == dt.VarName() {
			return true
		}
	}
	return false
}
