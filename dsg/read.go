package dsg

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/robert-malhotra/go-dsg/datatype"
	"github.com/robert-malhotra/go-dsg/internal/cdf"
	"github.com/robert-malhotra/go-dsg/internal/nctype"
	"github.com/robert-malhotra/go-dsg/stdarray"
)

// ReadMetadata reads the metadata of the types in reg and returns the
// names of the types not found in the file. Values equal to their
// type's sentinel are left unset.
func (f *File) ReadMetadata(reg *datatype.Registry) ([]string, error) {
	fh, h, err := f.readHeader(os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	trajID, _, ok := h.Dim(DimTrajectory)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s dimension", ErrNotDSG, f.path, DimTrajectory)
	}

	meta := NewMetadata(reg)
	var notFound []string
	for _, dt := range meta.Types() {
		v, ok := h.Var(dt.VarName())
		if !ok || len(v.Dims) == 0 || v.Dims[0] != trajID {
			notFound = append(notFound, dt.VarName())
			continue
		}
		raw, err := cdf.ReadVar(fh, h, v)
		if err != nil {
			return nil, ReadFileError(f.path, err)
		}
		vals, err := decodeValues(h, v, dt, raw, 1)
		if err != nil {
			return nil, err
		}
		if err = meta.Set(dt, vals[0]); err != nil {
			return nil, err
		}
	}

	f.metadata = meta
	slog.Debug("Read DSG metadata", "path", f.path, "not_found", len(notFound))
	return notFound, nil
}

// ReadData reads every observation variable whose type is in reg, in
// file order, and returns the names of the types in reg not found in the
// file. Sentinel values become missing values.
func (f *File) ReadData(reg *datatype.Registry) ([]string, error) {
	fh, h, err := f.readHeader(os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	obsID, obs, ok := h.Dim(DimObs)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s dimension", ErrNotDSG, f.path, DimObs)
	}

	var types []*datatype.DataType
	var columns [][]datatype.Value
	found := make(map[string]bool)
	for _, v := range h.Vars {
		if len(v.Dims) == 0 || v.Dims[0] != obsID {
			continue
		}
		dt, ok := reg.Lookup(v.Name)
		if !ok || dt.VarName() != v.Name {
			slog.Debug("Skipping unregistered variable", "path", f.path, "var", v.Name)
			continue
		}
		raw, err := cdf.ReadVar(fh, h, v)
		if err != nil {
			return nil, ReadFileError(f.path, err)
		}
		vals, err := decodeValues(h, v, dt, raw, obs.Len)
		if err != nil {
			return nil, err
		}
		types = append(types, dt)
		columns = append(columns, vals)
		found[dt.VarName()] = true
	}

	var notFound []string
	for _, dt := range reg.Types() {
		if !found[dt.VarName()] {
			notFound = append(notFound, dt.VarName())
		}
	}
	if len(types) == 0 {
		return notFound, fmt.Errorf("%w: no registered data variables in %s", ErrVarNotFound, f.path)
	}

	rows := make([][]datatype.Value, obs.Len)
	for r := range rows {
		rows[r] = make([]datatype.Value, len(types))
		for c := range types {
			rows[r][c] = columns[c][r]
		}
	}
	data, err := stdarray.New(types, rows)
	if err != nil {
		return nil, err
	}

	f.data = data
	slog.Debug("Read DSG data", "path", f.path, "samples", obs.Len, "columns", len(types))
	return notFound, nil
}

// decodeValues decodes the n values of v, which holds values of dt.
func decodeValues(h *cdf.Header, v *cdf.Var, dt *datatype.DataType, raw []byte, n int) ([]datatype.Value, error) {
	want, err := ncType(dt.Kind())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, dt.VarName())
	}
	if v.Type != want {
		return nil, fmt.Errorf("%w: %s is %v in the file, expected %v",
			ErrUnsupportedKind, v.Name, v.Type, want)
	}
	width := 1
	if dt.Kind() == datatype.KindString {
		width = h.NumElements(v) / max(n, 1)
	}
	if h.NumElements(v) != n*width {
		return nil, fmt.Errorf("%w: %s has %d elements, expected %d",
			ErrShapeMismatch, v.Name, h.NumElements(v), n*width)
	}

	res := make([]datatype.Value, n)
	switch dt.Kind() {
	case datatype.KindString:
		for i := range res {
			s := strings.TrimRight(string(raw[i*width:(i+1)*width]), "\x00")
			if s != datatype.MissingString {
				res[i] = datatype.StringValue(s)
			}
		}
	case datatype.KindChar:
		for i, c := range raw[:n] {
			if c != datatype.MissingChar && c != 0 {
				res[i] = datatype.CharValue(c)
			}
		}
	case datatype.KindInt:
		for i, x := range nctype.DecodeInt32s(raw, n) {
			if x != datatype.MissingInt {
				res[i] = datatype.IntValue(int(x))
			}
		}
	case datatype.KindDouble:
		for i, x := range nctype.DecodeFloat64s(raw, n) {
			if val := datatype.DoubleValue(x); !dt.IsMissing(val) {
				res[i] = val
			}
		}
	}
	return res, nil
}
