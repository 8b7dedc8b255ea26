package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/robert-malhotra/go-dsg/datatype"
	"github.com/robert-malhotra/go-dsg/dsg"
	"github.com/robert-malhotra/go-dsg/internal/config"
	"github.com/robert-malhotra/go-dsg/internal/errcode"
	"github.com/robert-malhotra/go-dsg/stdarray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cruiseCSV = `# underway pCO2, leg 1
Expocode,Lon,Lat,Depth,Date/Time,xCO2,flag,Notes
49P120150211,-150.5,20.25,5,2015-02-11 04:50:00,401.2,2,calm
49P120150211,-150.4,20.5,5,2015-02-11 05:00:30,-999,3,

49P120150211,-150.3,20.75,5,2015-02-11 05:10:00,1500,2,squall
`

const cruiseColumns = `columns:
  - name: Expocode
    type: expocode
  - name: Lon
    type: longitude
    unit: deg E
  - name: lat
    type: latitude
    unit: deg N
  - name: Depth
    type: sample_depth
    unit: meters
  - name: Date/Time
    type: date_time
    unit: yyyy-mm-dd hh:mm:ss
  - name: xCO2
    type: xco2
    unit: umol/mol
  - name: flag
    type: WOCE_xco2
`

const cruiseMetadata = `platform_name: Pacific Explorer
version: 2.0
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newIngester(t *testing.T, dir string) *Ingester {
	t.Helper()
	mapping, err := LoadMapping(writeFile(t, dir, "columns.yaml", cruiseColumns))
	require.NoError(t, err)
	meta, err := LoadMetadata(writeFile(t, dir, "metadata.yaml", cruiseMetadata))
	require.NoError(t, err)

	cfg := config.New()
	cfg.Update([]config.Option{config.OptOutputDir(dir), config.OptOffsetSize(8)})
	in, err := New(cfg, mapping, meta)
	require.NoError(t, err)
	return in
}

// TestIngest converts a CSV file and reads the DSG file back.
func TestIngest(t *testing.T) {
	dir := t.TempDir()
	in := newIngester(t, dir)
	csvPath := writeFile(t, dir, "leg1.csv", cruiseCSV)

	res, err := in.Ingest(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "49P120150211.nc"), res.Output)
	assert.Equal(t, 3, res.Samples)
	assert.Equal(t, 12, res.Columns)
	assert.Positive(t, res.Size)

	counts := stdarray.CountBySeverity(res.Messages)
	assert.Equal(t, 1, counts[datatype.SeverityWarning])
	assert.Zero(t, counts[datatype.SeverityCritical])

	metaTypes, err := datatype.MetadataTypes()
	require.NoError(t, err)
	dataTypes, err := datatype.DataTypes()
	require.NoError(t, err)

	f := dsg.New(res.Output)
	_, err = f.ReadMetadata(metaTypes)
	require.NoError(t, err)
	assert.Equal(t, "49P120150211", f.Metadata().DatasetID())
	v, _ := f.Metadata().Value(datatype.VarPlatformName)
	assert.Equal(t, datatype.StringValue("Pacific Explorer"), v)
	v, _ = f.Metadata().Value(datatype.VarVersion)
	assert.Equal(t, datatype.StringValue("2.0"), v)
	v, _ = f.Metadata().Value(datatype.VarWestmostLon)
	west, _ := v.AsDouble()
	assert.InDelta(t, -150.5, west, 1e-9)

	_, err = f.ReadData(dataTypes)
	require.NoError(t, err)
	data := f.Data()
	col := data.ColumnOf(datatype.VarXCO2)
	require.GreaterOrEqual(t, col, 0)
	assert.True(t, data.Value(1, col).IsMissing())
	x, _ := data.Value(2, col).AsDouble()
	assert.InDelta(t, 1500.0, x, 1e-9)
}

func TestIngestNoRows(t *testing.T) {
	dir := t.TempDir()
	in := newIngester(t, dir)
	csvPath := writeFile(t, dir, "empty.csv", "Lon,Lat\n")

	_, err := in.Ingest(context.Background(), csvPath)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.IngestNoSamplesError, gnErr.Code)
}

func TestIngestNoTime(t *testing.T) {
	dir := t.TempDir()
	in := newIngester(t, dir)
	csvPath := writeFile(t, dir, "notime.csv", "Lon,Lat,Depth\n1,2,3\n")

	_, err := in.Ingest(context.Background(), csvPath)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.IngestStandardizeError, gnErr.Code)
}

func TestIngestDatasetID(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "out")
	require.NoError(t, os.Mkdir(dir, 0o755))
	in := newIngester(t, dir)
	csv := strings.ReplaceAll(cruiseCSV, "49P120150211", "../escaped")

	_, err := in.Ingest(context.Background(), writeFile(t, root, "leg1.csv", csv))
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.IngestDatasetIDError, gnErr.Code)
	_, err = os.Stat(filepath.Join(root, "escaped.nc"))
	assert.True(t, os.IsNotExist(err))
}

func TestIsFileName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"49P120150211", true},
		{"33RO_2015-02", true},
		{"../escaped", false},
		{"a/b", false},
		{`a\b`, false},
		{"..", false},
		{".", false},
		{"/abs", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, isFileName(tt.name), tt.name)
	}
}

func TestIngestCanceled(t *testing.T) {
	dir := t.TempDir()
	in := newIngester(t, dir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := in.Ingest(ctx, writeFile(t, dir, "leg1.csv", cruiseCSV))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadMapping(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadMapping(writeFile(t, dir, "cols.yaml", cruiseColumns))
	require.NoError(t, err)
	require.Len(t, m.Columns, 7)

	c, ok := m.Find("LAT")
	require.True(t, ok)
	assert.Equal(t, "latitude", c.Type)
	assert.Equal(t, "deg N", c.Unit)
	_, ok = m.Find("Notes")
	assert.False(t, ok)

	_, err = LoadMapping(writeFile(t, dir, "bad.yaml", "columns:\n  - name: Lon\n"))
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.IngestColumnsError, gnErr.Code)
}

func TestUnknownTypes(t *testing.T) {
	dir := t.TempDir()
	_, err := New(config.New(), nil, map[string]string{"ship_color": "red"})
	assert.ErrorIs(t, err, dsg.ErrUnknownType)

	m, err := LoadMapping(writeFile(t, dir, "cols.yaml", "columns:\n  - name: Lon\n    type: longitud\n"))
	require.NoError(t, err)
	cfg := config.New()
	cfg.Update([]config.Option{config.OptOutputDir(dir)})
	in, err := New(cfg, m, nil)
	require.NoError(t, err)
	_, err = in.Ingest(context.Background(), writeFile(t, dir, "a.csv", "Lon\n1\n"))
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.IngestColumnsError, gnErr.Code)
}

// TestDescriptionFile adds a user type from a description file.
func TestDescriptionFile(t *testing.T) {
	dir := t.TempDir()
	desc := `# extra types
fco2_rec={"data_class":"Double","sort_order":"320","display_name":"fCO2 rec","units":["uatm"]}
`
	cfg := config.New()
	cfg.Update([]config.Option{config.OptDescriptionFile(writeFile(t, dir, "types.properties", desc))})
	in, err := New(cfg, nil, nil)
	require.NoError(t, err)
	dt, ok := in.UserTypes().Lookup("fco2_rec")
	require.True(t, ok)
	assert.Equal(t, datatype.KindDouble, dt.Kind())
}
