package convert

import (
	"math"
	"testing"

	"github.com/robert-malhotra/go-dsg/datatype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissing(t *testing.T) {
	def := DefaultMissing(true)
	for _, s := range []string{"", " ", "NA", "n/a", "NaN", "null", "-", "-----", "-999", "-999.90", "-9999.99", " -99999 "} {
		assert.True(t, def.IsMissing(s), "%q", s)
	}
	for _, s := range []string{"------", "0", "-99", "-998.9", "abc"} {
		assert.False(t, def.IsMissing(s), "%q", s)
	}
	assert.False(t, DefaultMissing(false).IsMissing("-999"))

	exp := ExplicitMissing("-1")
	assert.True(t, exp.IsMissing(" -1"))
	assert.False(t, exp.IsMissing("NA"))
	assert.False(t, exp.IsMissing("-999"))

	assert.True(t, ExplicitMissing("none").IsMissing("NONE"))
}

func TestLinearInverses(t *testing.T) {
	for _, p := range LinearPairs() {
		fwd, err := NewLinear(p[0], p[1], "")
		require.NoError(t, err)
		back, err := NewLinear(p[1], p[0], "")
		require.NoError(t, err)

		for _, x := range []float64{-40.0, 0.0, 1.5, 273.15, 1013.25} {
			y := fwd.conv.apply(x)
			got := back.conv.apply(y)
			assert.InDelta(t, x, got, 1e-9*math.Max(1, math.Abs(x)), "%s -> %s", p[0], p[1])
		}
	}
}

func TestLinear(t *testing.T) {
	tests := []struct {
		from, to string
		in       string
		want     float64
	}{
		{"degF", "degC", "212", 100.0},
		{"degF", "degC", "-40", -40.0},
		{"K", "degC", "273.15", 0.0},
		{"km", "meters", "1.5", 1500.0},
		{"atm", "hPa", "1", 1013.25},
		{"knots", "m/s", "3600", 1852.0},
		{"mmol/mol", "umol/mol", "0.4", 400.0},
		{"degC", "degC", "12.5", 12.5},
		{"", "degC", "12.5", 12.5},
	}
	for _, tt := range tests {
		c, err := NewLinear(tt.from, tt.to, "")
		require.NoError(t, err)
		v, err := c.Convert(tt.in)
		require.NoError(t, err)
		d, ok := v.AsDouble()
		require.True(t, ok)
		assert.InDelta(t, tt.want, d, 1e-9, "%s %s", tt.in, tt.from)
	}

	_, err := NewLinear("degC", "meters", "")
	assert.ErrorIs(t, err, ErrNotSupported)

	c, err := NewLinear("", "", "")
	require.NoError(t, err)
	v, err := c.Convert("-999")
	require.NoError(t, err)
	assert.True(t, v.IsMissing())
	_, err = c.Convert("12,5")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = c.Convert("Inf")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestInteger(t *testing.T) {
	c, err := NewInteger("", "", "")
	require.NoError(t, err)

	v, err := c.Convert(" 2021 ")
	require.NoError(t, err)
	assert.Equal(t, datatype.IntValue(2021), v)

	v, err = c.Convert("7.0")
	require.NoError(t, err)
	assert.Equal(t, datatype.IntValue(7), v)

	_, err = c.Convert("7.5")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = c.Convert("3000000000")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = c.Convert("-3000000000")
	assert.ErrorIs(t, err, ErrInvalidValue)

	v, err = c.Convert("2147483647")
	require.NoError(t, err)
	assert.Equal(t, datatype.IntValue(2147483647), v)

	v, err = c.Convert("NA")
	require.NoError(t, err)
	assert.True(t, v.IsMissing())

	_, err = NewInteger("a", "b", "")
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestTextChar(t *testing.T) {
	v, err := NewText("").Convert("  abc ")
	require.NoError(t, err)
	assert.Equal(t, datatype.StringValue("abc"), v)

	v, err = NewChar("").Convert(" 2")
	require.NoError(t, err)
	assert.Equal(t, datatype.CharValue('2'), v)

	_, err = NewChar("").Convert("22")
	assert.ErrorIs(t, err, ErrInvalidValue)

	v, err = NewChar("").Convert("")
	require.NoError(t, err)
	assert.True(t, v.IsMissing())
}

func TestGeo(t *testing.T) {
	tests := []struct {
		unit string
		out  string
		in   string
		want float64
	}{
		{"deg E", "deg E", "359.5", -0.5},
		{"deg E", "deg E", "180", 180.0},
		{"deg E", "deg E", "-180", 180.0},
		{"deg E", "deg E", "-190.25", 169.75},
		{"deg W", "deg E", "45.5", -45.5},
		{"deg E", "deg E", "45.5 W", -45.5},
		{"deg min E", "deg E", "10 30", 10.5},
		{"deg min W", "deg E", "10° 30'", -10.5},
		{"deg min sec N", "deg N", "-45 30 36", -45.51},
		{"deg min sec S", "deg N", "45 30 36", -45.51},
		{"DDD.MMSSsss E", "deg E", "120.3036", 120.51},
		{"DDD.MMSSsss N", "deg N", "-12.1530", -12.258333333333333},
		{"DDD.MMSSsss N", "deg N", "12.00005", 12.0 + 0.5/3600.0},
		{"deg N", "deg N", "90", 90.0},
	}
	for _, tt := range tests {
		c, err := NewGeo(tt.unit, tt.out, "")
		require.NoError(t, err, tt.unit)
		v, err := c.Convert(tt.in)
		require.NoError(t, err, tt.in)
		d, ok := v.AsDouble()
		require.True(t, ok)
		assert.InDelta(t, tt.want, d, 1e-9, "%s %s", tt.in, tt.unit)
	}
}

func TestGeoErrors(t *testing.T) {
	_, err := NewGeo("deg N", "deg E", "")
	assert.ErrorIs(t, err, ErrNotSupported)
	_, err = NewGeo("radians E", "deg E", "")
	assert.ErrorIs(t, err, ErrNotSupported)

	lon, err := NewGeo("deg E", "deg E", "")
	require.NoError(t, err)
	lat, err := NewGeo("deg N", "deg N", "")
	require.NoError(t, err)
	dm, err := NewGeo("deg min E", "deg E", "")
	require.NoError(t, err)

	for _, tt := range []struct {
		c  *Geo
		in string
	}{
		{lon, "400"},
		{lon, "12 N"},
		{lat, "91"},
		{lat, "abc"},
		{dm, "10 60"},
		{dm, "10"},
	} {
		_, err := tt.c.Convert(tt.in)
		assert.ErrorIs(t, err, ErrInvalidValue, tt.in)
	}

	v, err := lon.Convert("-999")
	require.NoError(t, err)
	assert.True(t, v.IsMissing())
}

func TestNormalizeLongitude(t *testing.T) {
	assert.Equal(t, -0.5, NormalizeLongitude(359.5))
	assert.Equal(t, 180.0, NormalizeLongitude(-180.0))
	assert.Equal(t, 180.0, NormalizeLongitude(540.0))
	assert.Equal(t, -179.0, NormalizeLongitude(181.0))
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		unit string
		in   string
		want string
	}{
		{"yyyy-mm-dd hh:mm:ss", "2021-03-04 05:06:07", "2021-03-04 05:06:07"},
		{"yyyy-mm-dd hh:mm:ss", "2021/3/4T5:06:07.5Z", "2021-03-04 05:06:07.5"},
		{"mm-dd-yyyy hh:mm:ss", "03-04-2021 05:06", "2021-03-04 05:06:00"},
		{"dd-mm-yyyy hh:mm:ss", "04.03.2021 23:59:59", "2021-03-04 23:59:59"},
		{"", "2020-02-29 00:00:00", "2020-02-29 00:00:00"},
	}
	for _, tt := range tests {
		c, err := NewTimestamp(tt.unit, datatype.TimestampUnits[0], "")
		require.NoError(t, err, tt.unit)
		v, err := c.Convert(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, datatype.StringValue(tt.want), v, tt.in)
	}

	c, err := NewTimestamp("", "", "")
	require.NoError(t, err)
	for _, in := range []string{"2021-02-29 00:00:00", "2021-03-04", "2021-03-04 24:00:00", "x y"} {
		_, err := c.Convert(in)
		assert.ErrorIs(t, err, ErrInvalidValue, in)
	}

	_, err = NewTimestamp("yyyymmdd hh:mm:ss", "", "")
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestDateAndTime(t *testing.T) {
	dc, err := NewDate("yyyymmdd", "", "")
	require.NoError(t, err)
	v, err := dc.Convert("20210304")
	require.NoError(t, err)
	assert.Equal(t, datatype.StringValue("2021-03-04"), v)

	dc, err = NewDate("dd-mm-yyyy", "", "")
	require.NoError(t, err)
	v, err = dc.Convert("4/3/2021")
	require.NoError(t, err)
	assert.Equal(t, datatype.StringValue("2021-03-04"), v)

	tc, err := NewTimeOfDay("hhmmss", "", "")
	require.NoError(t, err)
	v, err = tc.Convert("130501.25")
	require.NoError(t, err)
	assert.Equal(t, datatype.StringValue("13:05:01.25"), v)

	tc, err = NewTimeOfDay("", "", "")
	require.NoError(t, err)
	v, err = tc.Convert("1:05")
	require.NoError(t, err)
	assert.Equal(t, datatype.StringValue("01:05:00"), v)

	_, err = tc.Convert("12:60")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestEpoch(t *testing.T) {
	d, c, err := ParseTimestamp("1970-01-02 00:00:01.5")
	require.NoError(t, err)
	assert.Equal(t, 86401.5, Epoch(d, c))

	d, err = ParseDate("1969-12-31")
	require.NoError(t, err)
	assert.Equal(t, -86400.0, Epoch(d, Clock{}))
}

type fakeSiblings struct {
	yearCol int
	ready   bool
	failed  bool
	years   []int
}

func (f *fakeSiblings) ColumnOf(name string) int {
	if name == datatype.VarYear {
		return f.yearCol
	}
	return -1
}

func (f *fakeSiblings) IsStandardized(col int) bool { return f.ready }

func (f *fakeSiblings) IsPending(col int) bool { return !f.ready && !f.failed }

func (f *fakeSiblings) StdValue(row, col int) datatype.Value {
	return datatype.IntValue(f.years[row])
}

func TestDayOfYear(t *testing.T) {
	sib := &fakeSiblings{yearCol: 0, years: []int{2020, 2021}}
	_, err := NewDayOfYear("", "", "", sib)
	assert.ErrorIs(t, err, ErrNotYet)

	sib.ready = true
	c, err := NewDayOfYear(datatype.DayOfYearJan1Is1, datatype.DayOfYearJan1Is1, "", sib)
	require.NoError(t, err)

	v, err := c.ConvertRow(0, "366.5")
	require.NoError(t, err)
	assert.Equal(t, datatype.DoubleValue(366.5), v)

	_, err = c.ConvertRow(1, "366.5")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = c.ConvertRow(1, "0.5")
	assert.ErrorIs(t, err, ErrInvalidValue)

	zero, err := NewDayOfYear(datatype.DayOfYearJan1Is0, "", "", nil)
	require.NoError(t, err)
	v, err = zero.Convert("0.25")
	require.NoError(t, err)
	assert.Equal(t, datatype.DoubleValue(1.25), v)
}

func TestDayOfYearFailedYear(t *testing.T) {
	sib := &fakeSiblings{yearCol: 0, failed: true, years: []int{2021}}
	c, err := NewDayOfYear("", "", "", sib)
	require.NoError(t, err)

	v, err := c.ConvertRow(0, "366.5")
	require.NoError(t, err)
	assert.Equal(t, datatype.DoubleValue(366.5), v)
}

func TestNew(t *testing.T) {
	reg, err := datatype.UserTypes()
	require.NoError(t, err)
	get := func(name string) *datatype.DataType {
		dt, ok := reg.Lookup(name)
		require.True(t, ok, name)
		return dt
	}

	c, err := New(get(datatype.VarLongitude), "deg W", "", nil)
	require.NoError(t, err)
	assert.IsType(t, &Geo{}, c)

	c, err = New(get(datatype.VarTemperature), "degF", "", nil)
	require.NoError(t, err)
	assert.IsType(t, &Linear{}, c)

	c, err = New(get(datatype.VarYear), "", "", nil)
	require.NoError(t, err)
	assert.IsType(t, &Integer{}, c)

	c, err = New(get(datatype.VarWOCEXCO2), "", "", nil)
	require.NoError(t, err)
	assert.IsType(t, &Char{}, c)

	c, err = New(get(datatype.VarDatasetID), "", "", nil)
	require.NoError(t, err)
	assert.IsType(t, &Text{}, c)

	c, err = New(get(datatype.VarDayOfYear), "", "", nil)
	require.NoError(t, err)
	_, ok := c.(RowConverter)
	assert.True(t, ok)

	_, err = New(get(datatype.VarTemperature), "furlongs", "", nil)
	assert.ErrorIs(t, err, ErrNotSupported)

	c, err = New(get(datatype.VarOther), "", "", nil)
	assert.ErrorIs(t, err, ErrNotSupported)
	assert.Nil(t, c)
}
