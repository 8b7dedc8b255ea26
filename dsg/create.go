package dsg

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/robert-malhotra/go-dsg/datatype"
	"github.com/robert-malhotra/go-dsg/internal/cdf"
	"github.com/robert-malhotra/go-dsg/internal/nctype"
	"github.com/robert-malhotra/go-dsg/stdarray"
)

// RequiredColumns are the data columns every file must have, besides
// the time column.
var RequiredColumns = []string{
	datatype.VarLongitude, datatype.VarLatitude, datatype.VarSampleDepth,
	datatype.VarYear, datatype.VarMonth, datatype.VarDay,
	datatype.VarHour, datatype.VarMinute, datatype.VarSecond,
}

// Create writes meta and data to the file, replacing any existing file.
// The data must have every column in RequiredColumns and a time column,
// at least one sample, and no string columns. These conditions are
// checked before the file is touched.
func (f *File) Create(meta *Metadata, data *stdarray.StdDataArray) error {
	h, payload, err := f.build(meta, data)
	if err != nil {
		return err
	}
	size, err := h.Layout()
	if err != nil {
		return err
	}

	fh, err := os.Create(f.path)
	if err != nil {
		return CreateFileError(f.path, err)
	}
	defer fh.Close()

	if _, err = h.Write(fh); err != nil {
		return WriteFileError(f.path, err)
	}
	for i, v := range h.Vars {
		if err = cdf.WriteVar(fh, h, v, payload[i]); err != nil {
			return WriteFileError(f.path, err)
		}
	}
	if err = fh.Close(); err != nil {
		return WriteFileError(f.path, err)
	}

	f.metadata, f.data = meta, data
	slog.Debug("Created DSG file",
		"path", f.path,
		"samples", data.NumSamples(),
		"columns", data.NumColumns(),
		"bytes", size,
	)
	return nil
}

// build validates the inputs and returns the header with the encoded
// data of each of its variables.
func (f *File) build(meta *Metadata, data *stdarray.StdDataArray) (*cdf.Header, [][]byte, error) {
	n := data.NumSamples()
	if n == 0 {
		return nil, nil, ErrNoSamples
	}
	for _, name := range RequiredColumns {
		if !data.HasColumn(name) {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	if !data.HasColumn(datatype.VarTime) {
		return nil, nil, ErrNoTimeColumn
	}
	for _, dt := range data.Types() {
		if dt.Kind() == datatype.KindString {
			return nil, nil, fmt.Errorf("%w: string data column %s", ErrUnsupportedKind, dt.VarName())
		}
	}

	strLen := meta.MaxStringLength()
	h := cdf.New(f.opts.version)
	dims := []struct {
		name string
		len  int
	}{
		{DimTrajectory, 1},
		{DimStringLength, strLen},
		{DimCharLength, 1},
		{DimObs, n},
	}
	for _, d := range dims {
		if _, err := h.AddDim(d.name, d.len); err != nil {
			return nil, nil, err
		}
	}
	globals := []struct{ name, value string }{
		{"featureType", FeatureType},
		{"Conventions", Conventions},
		{"history", f.opts.history},
	}
	for _, g := range globals {
		if err := h.AddAttr(g.name, g.value); err != nil {
			return nil, nil, err
		}
	}

	var payload [][]byte
	sampleDim, err := cdf.NewAttr("sample_dimension", DimObs)
	if err != nil {
		return nil, nil, err
	}
	if _, err = h.AddVar(VarNumObs, nctype.Int, []string{DimTrajectory}, sampleDim); err != nil {
		return nil, nil, err
	}
	payload = append(payload, nctype.EncodeInt32s([]int32{int32(n)}))

	for _, dt := range meta.Types() {
		if _, err := addVar(h, dt, DimTrajectory, nil); err != nil {
			return nil, nil, err
		}
		raw, err := encodeValues(dt, []datatype.Value{meta.Get(dt)}, strLen)
		if err != nil {
			return nil, nil, err
		}
		payload = append(payload, raw)
	}

	for col, dt := range data.Types() {
		var anc []cdf.Attr
		if qc := data.QCColumnFor(col); qc >= 0 {
			a, err := cdf.NewAttr("ancillary_variables", data.Type(qc).VarName())
			if err != nil {
				return nil, nil, err
			}
			anc = append(anc, a)
		}
		if _, err := addVar(h, dt, DimObs, anc); err != nil {
			return nil, nil, err
		}
		raw, err := encodeValues(dt, data.Column(col), 1)
		if err != nil {
			return nil, nil, err
		}
		payload = append(payload, raw)
	}
	return h, payload, nil
}

// addVar defines the variable for dt over the outer dimension.
func addVar(h *cdf.Header, dt *datatype.DataType, outer string, extra []cdf.Attr) (*cdf.Var, error) {
	t, err := ncType(dt.Kind())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, dt.VarName())
	}
	dims := []string{outer}
	switch dt.Kind() {
	case datatype.KindString:
		dims = append(dims, DimStringLength)
	case datatype.KindChar:
		dims = append(dims, DimCharLength)
	}
	attrs, err := varAttrs(dt)
	if err != nil {
		return nil, err
	}
	return h.AddVar(dt.VarName(), t, dims, append(attrs, extra...)...)
}

// encodeValues encodes vals in file form, substituting sentinels for
// missing values. Strings are NUL-padded to width bytes. Integers outside
// the int32 range give ErrOutOfRange.
func encodeValues(dt *datatype.DataType, vals []datatype.Value, width int) ([]byte, error) {
	switch dt.Kind() {
	case datatype.KindString:
		raw := make([]byte, len(vals)*width)
		for i, v := range vals {
			s, _ := v.AsString()
			copy(raw[i*width:(i+1)*width], s)
		}
		return raw, nil
	case datatype.KindChar:
		raw := make([]byte, len(vals))
		for i, v := range vals {
			c, ok := v.AsChar()
			if !ok {
				c = datatype.MissingChar
			}
			raw[i] = c
		}
		return raw, nil
	case datatype.KindInt:
		ints := make([]int, len(vals))
		for i, v := range vals {
			x, ok := v.AsInt()
			if !ok {
				x = datatype.MissingInt
			}
			ints[i] = x
		}
		raw, err := encodeInts(ints)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, dt.VarName())
		}
		return raw, nil
	default:
		return nctype.EncodeFloat64s(sanitizeDoubles(vals)), nil
	}
}

// encodeInts encodes vals as int32, failing on the first value out of
// range.
func encodeInts(vals []int) ([]byte, error) {
	res := make([]int32, len(vals))
	for i, x := range vals {
		if x < math.MinInt32 || x > math.MaxInt32 {
			return nil, fmt.Errorf("%w: %d at index %d", ErrOutOfRange, x, i)
		}
		res[i] = int32(x)
	}
	return nctype.EncodeInt32s(res), nil
}

func sanitizeDoubles(vals []datatype.Value) []float64 {
	res := make([]float64, len(vals))
	for i, v := range vals {
		res[i] = datatype.MissingDouble
		if x, ok := v.AsDouble(); ok && !math.IsNaN(x) && !math.IsInf(x, 0) {
			res[i] = x
		}
	}
	return res
}
