package dsg

import (
	"os"
	"strings"

	"github.com/robert-malhotra/go-dsg/datatype"
	"github.com/robert-malhotra/go-dsg/internal/cdf"
	"github.com/robert-malhotra/go-dsg/internal/nctype"
	"github.com/robert-malhotra/go-dsg/stdarray"
)

// Version is the version of this codec, recorded in the history
// attribute of every file it writes.
const Version = "1.0.0"

// Names of the dimensions, attributes and variables of the layout.
const (
	DimTrajectory   = "trajectory"
	DimStringLength = "string_length"
	DimCharLength   = "char_length"
	DimObs          = "obs"

	VarNumObs = "num_obs"

	FeatureType = "Trajectory"
	Conventions = "CF-1.6"
	TimeOrigin  = "01-JAN-1970 00:00:00"
)

// DefaultHistory is the history attribute written unless WithHistory
// says otherwise.
var DefaultHistory = "DSG trajectory file written by go-dsg " + Version

type options struct {
	version cdf.Version
	history string
}

// Option configures a File.
type Option func(*options)

// WithOffsetSize selects 4-byte (classic) or 8-byte (64-bit offset) file
// offsets. Other sizes are ignored.
func WithOffsetSize(n int) Option {
	return func(o *options) {
		switch n {
		case 4:
			o.version = cdf.Classic
		case 8:
			o.version = cdf.Offset64
		}
	}
}

// WithHistory sets the history attribute of created files.
func WithHistory(h string) Option {
	return func(o *options) {
		if h != "" {
			o.history = h
		}
	}
}

// File is a trajectory DSG file on disk. It holds no open handle between
// calls; every operation opens the file and closes it before returning.
type File struct {
	path     string
	opts     options
	metadata *Metadata
	data     *stdarray.StdDataArray
}

// New returns a File for path.
func New(path string, opts ...Option) *File {
	o := options{version: cdf.Classic, history: DefaultHistory}
	for _, opt := range opts {
		opt(&o)
	}
	return &File{path: path, opts: o}
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

// Metadata returns the metadata last written or read, or nil.
func (f *File) Metadata() *Metadata { return f.metadata }

// Data returns the data last written or read, or nil.
func (f *File) Data() *stdarray.StdDataArray { return f.data }

// readHeader opens the file with flag and parses its header. The caller
// closes the returned file.
func (f *File) readHeader(flag int) (*os.File, *cdf.Header, error) {
	fh, err := os.OpenFile(f.path, flag, 0)
	if err != nil {
		return nil, nil, OpenFileError(f.path, err)
	}
	h, err := cdf.Read(fh)
	if err != nil {
		fh.Close()
		return nil, nil, notDSG(f.path, err)
	}
	if a, ok := h.Attr("featureType"); !ok || !strings.EqualFold(a.String(), FeatureType) {
		fh.Close()
		return nil, nil, notDSG(f.path, nil)
	}
	return fh, h, nil
}

func ncType(k datatype.Kind) (nctype.Type, error) {
	switch k {
	case datatype.KindString, datatype.KindChar:
		return nctype.Char, nil
	case datatype.KindInt:
		return nctype.Int, nil
	case datatype.KindDouble:
		return nctype.Double, nil
	}
	return 0, ErrUnsupportedKind
}

// varAttrs returns the attributes of the variable for dt.
func varAttrs(dt *datatype.DataType) ([]cdf.Attr, error) {
	var res []cdf.Attr
	add := func(name string, value any) error {
		a, err := cdf.NewAttr(name, value)
		if err != nil {
			return err
		}
		res = append(res, a)
		return nil
	}
	strs := []struct{ name, value string }{
		{"long_name", dt.Description()},
		{"standard_name", dt.StandardName()},
		{"ioos_category", dt.CategoryName()},
	}
	for _, s := range strs {
		if s.value == "" {
			continue
		}
		if err := add(s.name, s.value); err != nil {
			return nil, err
		}
	}

	var err error
	switch dt.Kind() {
	case datatype.KindInt:
		err = addNumericAttrs(add, dt, int32(datatype.MissingInt))
	case datatype.KindDouble:
		err = addNumericAttrs(add, dt, float64(datatype.MissingDouble))
	}
	if err != nil {
		return nil, err
	}

	if dt.VarName() == datatype.VarDatasetID {
		if err = add("cf_role", "trajectory_id"); err != nil {
			return nil, err
		}
	}
	if dt.FileStdUnit() == datatype.TimeUnits {
		if err = add("time_origin", TimeOrigin); err != nil {
			return nil, err
		}
	}
	if strings.HasSuffix(dt.StandardName(), "depth") {
		if err = add("positive", "down"); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func addNumericAttrs(add func(string, any) error, dt *datatype.DataType, missing any) error {
	if u := dt.FileStdUnit(); u != "" {
		if err := add("units", u); err != nil {
			return err
		}
	}
	if err := add("missing_value", missing); err != nil {
		return err
	}
	return add("_FillValue", missing)
}
