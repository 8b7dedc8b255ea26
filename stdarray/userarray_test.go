package stdarray

import (
	"testing"

	"github.com/robert-malhotra/go-dsg/datatype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userColumns(t *testing.T) []Column {
	types := userTypes(t, datatype.VarLongitude, datatype.VarLatitude,
		datatype.VarSampleDepth, datatype.VarTimestamp, datatype.VarTemperature,
		datatype.VarOther)
	return []Column{
		{Name: "Lon", Type: types[0], Unit: "deg E"},
		{Name: "Lat", Type: types[1]},
		{Name: "Depth", Type: types[2], Unit: "meters"},
		{Name: "Date/Time", Type: types[3], Unit: "mm-dd-yyyy hh:mm:ss"},
		{Name: "SST", Type: types[4], Unit: "degF", Missing: "none"},
		{Name: "Notes", Type: types[5]},
	}
}

func TestStandardize(t *testing.T) {
	rows := [][]string{
		{"359.5", "45.0", "5", "02-11-2015 04:50:00", "212", "calm"},
		{"10", "-95", "5", "02-11-2015 05:00", "abc", ""},
		{"11", "46", "NA", "02-11-2015 05:10", "NONE", "x"},
	}
	a, err := Standardize(userColumns(t), rows)
	require.NoError(t, err)

	assert.Equal(t, StateStandardized, a.ColumnState(0))
	assert.Equal(t, StateUnstandardizable, a.ColumnState(5))
	assert.False(t, a.IsUsable(5))

	assert.Equal(t, d(-0.5), a.Value(0, 0))
	assert.Equal(t, s("2015-02-11 04:50:00"), a.Value(0, 3))
	v, ok := a.Value(0, 4).AsDouble()
	require.True(t, ok)
	assert.InDelta(t, 100.0, v, 1e-9)
	assert.True(t, a.Value(0, 5).IsMissing())

	assert.True(t, a.Value(1, 1).IsMissing())
	assert.True(t, a.Value(1, 4).IsMissing())
	assert.True(t, a.Value(2, 2).IsMissing())
	assert.True(t, a.Value(2, 4).IsMissing())

	msgs := a.Messages()
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.Equal(t, datatype.SeverityCritical, m.Severity)
		assert.Equal(t, 2, m.Row)
		assert.Equal(t, "unable to interpret value", m.General)
	}
	assert.Equal(t, 2, msgs[0].Column)
	assert.Equal(t, "Lat", msgs[0].ColumnName)
	assert.Equal(t, 5, msgs[1].Column)
}

func TestStandardizeShortRow(t *testing.T) {
	rows := [][]string{
		{"10", "45", "5", "02-11-2015 04:50:00", "50", "a"},
		{"10", "45", "5", "02-11-2015 05:00:00", "50"},
	}
	a, err := Standardize(userColumns(t), rows)
	require.NoError(t, err)

	msgs := a.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{
		Severity: datatype.SeverityCritical,
		Row:      2,
		General:  "inconsistent number of data values",
		Detail:   "found 5 data values, expected 6",
	}, msgs[0])
	assert.Equal(t, 2, msgs[1].Row)
	assert.Equal(t, 6, msgs[1].Column)
	assert.Equal(t, "no value", msgs[1].General)

	v, ok := a.Value(1, 4).AsDouble()
	require.True(t, ok)
	assert.InDelta(t, 10.0, v, 1e-9)
	assert.Equal(t, d(10), a.Value(1, 0))
}

func TestStandardizeLongRow(t *testing.T) {
	rows := [][]string{
		{"10", "45", "5", "02-11-2015 04:50:00", "50", "a", "extra"},
	}
	a, err := Standardize(userColumns(t), rows)
	require.NoError(t, err)
	msgs := a.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "inconsistent number of data values", msgs[0].General)
	assert.Equal(t, d(10), a.Value(0, 0))
}

func TestStandardizeDependentColumns(t *testing.T) {
	types := userTypes(t, datatype.VarDayOfYear, datatype.VarYear)
	cols := []Column{
		{Name: "DOY", Type: types[0], Unit: datatype.DayOfYearJan1Is0},
		{Name: "Year", Type: types[1]},
	}
	a, err := Standardize(cols, [][]string{
		{"365.5", "2020"},
		{"365.5", "2021"},
	})
	require.NoError(t, err)
	assert.Equal(t, StateStandardized, a.ColumnState(0))
	assert.Equal(t, d(366.5), a.Value(0, 0))
	assert.True(t, a.Value(1, 0).IsMissing())

	msgs := a.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, 2, msgs[0].Row)
	assert.Equal(t, 1, msgs[0].Column)
}

func TestStandardizeFailedYear(t *testing.T) {
	types := userTypes(t, datatype.VarYear, datatype.VarDayOfYear)
	cols := []Column{
		{Name: "Year", Type: types[0], Unit: "years"},
		{Name: "DOY", Type: types[1]},
	}
	a, err := Standardize(cols, [][]string{{"2021", "366.5"}})
	require.NoError(t, err)
	assert.Equal(t, StateUnstandardizable, a.ColumnState(0))
	assert.Equal(t, StateStandardized, a.ColumnState(1))
	assert.Equal(t, d(366.5), a.Value(0, 1))

	msgs := a.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, 1, msgs[0].Column)
	assert.Equal(t, "unable to standardize column", msgs[0].General)
}

func TestStandardizeUnsupportedUnit(t *testing.T) {
	types := userTypes(t, datatype.VarTemperature)
	a, err := Standardize([]Column{{Name: "T", Type: types[0], Unit: "furlongs"}},
		[][]string{{"1"}})
	require.NoError(t, err)
	assert.Equal(t, StateUnstandardizable, a.ColumnState(0))
	msgs := a.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, 0, msgs[0].Row)
	assert.Equal(t, 1, msgs[0].Column)
	assert.Equal(t, "unable to standardize column", msgs[0].General)
}

func TestStandardizeErrors(t *testing.T) {
	_, err := Standardize(nil, nil)
	assert.ErrorIs(t, err, ErrShape)
	_, err = Standardize([]Column{{Name: "x"}}, nil)
	assert.ErrorIs(t, err, ErrShape)
}

func TestCheckBounds(t *testing.T) {
	rows := [][]string{
		{"10", "45", "5", "02-11-2015 04:50:00", "140", "a"},
		{"10", "45", "5", "02-11-2015 05:00:00", "50", "a"},
	}
	a, err := Standardize(userColumns(t), rows)
	require.NoError(t, err)
	a.CheckBounds()
	msgs := a.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, datatype.SeverityError, msgs[0].Severity)
	assert.Equal(t, 1, msgs[0].Row)
	assert.Equal(t, 5, msgs[0].Column)
	assert.Contains(t, msgs[0].General, "unreasonably large")
}

func TestCheckMissingLonLatDepthTime(t *testing.T) {
	rows := [][]string{
		{"NA", "45", "5", "02-11-2015 04:50:00", "50", "a"},
		{"10", "45", "5", "", "50", "a"},
		{"10", "45", "5", "02-11-2015 05:00:00", "50", "a"},
	}
	a, err := Standardize(userColumns(t), rows)
	require.NoError(t, err)
	a.CheckMissingLonLatDepthTime()
	msgs := a.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, 1, msgs[0].Row)
	assert.Equal(t, "missing longitude", msgs[0].General)
	assert.Equal(t, 2, msgs[1].Row)
	assert.Equal(t, "missing sample time", msgs[1].General)

	types := userTypes(t, datatype.VarTemperature)
	b, err := Standardize([]Column{{Name: "T", Type: types[0]}}, [][]string{{"1"}})
	require.NoError(t, err)
	b.CheckMissingLonLatDepthTime()
	assert.Len(t, b.Messages(), 4)
}
