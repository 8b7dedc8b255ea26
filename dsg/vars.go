package dsg

import (
	"fmt"
	"math"
	"os"

	"github.com/robert-malhotra/go-dsg/datatype"
	"github.com/robert-malhotra/go-dsg/internal/cdf"
	"github.com/robert-malhotra/go-dsg/internal/nctype"
)

// The helpers below read or rewrite a single variable in place, for
// targeted corrections such as regenerating one derived variable.
// Values are raw file values: sentinels are not translated.

// obsVar finds the observation variable name of type t and checks that
// it has one element per observation.
func obsVar(h *cdf.Header, name string, t nctype.Type) (*cdf.Var, int, error) {
	v, ok := h.Var(name)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrVarNotFound, name)
	}
	if v.Type != t {
		return nil, 0, fmt.Errorf("%w: %s is %v, not %v", ErrUnsupportedKind, name, v.Type, t)
	}
	_, obs, ok := h.Dim(DimObs)
	if !ok {
		return nil, 0, fmt.Errorf("%w: no %s dimension", ErrNotDSG, DimObs)
	}
	if n := h.NumElements(v); n != obs.Len {
		return nil, 0, fmt.Errorf("%w: %s has %d values, %s has length %d",
			ErrShapeMismatch, name, n, DimObs, obs.Len)
	}
	return v, obs.Len, nil
}

func (f *File) readRaw(name string, t nctype.Type) ([]byte, int, error) {
	fh, h, err := f.readHeader(os.O_RDONLY)
	if err != nil {
		return nil, 0, err
	}
	defer fh.Close()

	v, n, err := obsVar(h, name, t)
	if err != nil {
		return nil, 0, err
	}
	raw, err := cdf.ReadVar(fh, h, v)
	if err != nil {
		return nil, 0, ReadFileError(f.path, err)
	}
	return raw, n, nil
}

func (f *File) writeRaw(name string, t nctype.Type, count int, encode func() ([]byte, error)) error {
	fh, h, err := f.readHeader(os.O_RDWR)
	if err != nil {
		return err
	}
	defer fh.Close()

	v, n, err := obsVar(h, name, t)
	if err != nil {
		return err
	}
	if count != n {
		return fmt.Errorf("%w: %d values given for %s of length %d", ErrShapeMismatch, count, name, n)
	}
	raw, err := encode()
	if err != nil {
		return fmt.Errorf("%w: %s", err, name)
	}
	if err = cdf.WriteVar(fh, h, v, raw); err != nil {
		return WriteFileError(f.path, err)
	}
	if err = fh.Close(); err != nil {
		return WriteFileError(f.path, err)
	}
	return nil
}

// ReadCharValues returns the values of the character observation
// variable name.
func (f *File) ReadCharValues(name string) ([]byte, error) {
	raw, _, err := f.readRaw(name, nctype.Char)
	return raw, err
}

// ReadIntValues returns the values of the integer observation variable
// name.
func (f *File) ReadIntValues(name string) ([]int, error) {
	raw, n, err := f.readRaw(name, nctype.Int)
	if err != nil {
		return nil, err
	}
	res := make([]int, n)
	for i, x := range nctype.DecodeInt32s(raw, n) {
		res[i] = int(x)
	}
	return res, nil
}

// ReadDoubleValues returns the values of the double observation variable
// name.
func (f *File) ReadDoubleValues(name string) ([]float64, error) {
	raw, n, err := f.readRaw(name, nctype.Double)
	if err != nil {
		return nil, err
	}
	return nctype.DecodeFloat64s(raw, n), nil
}

// WriteCharValues replaces the values of the character observation
// variable name.
func (f *File) WriteCharValues(name string, vals []byte) error {
	return f.writeRaw(name, nctype.Char, len(vals), func() ([]byte, error) {
		return vals, nil
	})
}

// WriteIntValues replaces the values of the integer observation variable
// name. Values outside the int32 range give ErrOutOfRange and leave the
// file unchanged.
func (f *File) WriteIntValues(name string, vals []int) error {
	return f.writeRaw(name, nctype.Int, len(vals), func() ([]byte, error) {
		return encodeInts(vals)
	})
}

// WriteDoubleValues replaces the values of the double observation
// variable name. NaN and infinite values are written as the sentinel.
func (f *File) WriteDoubleValues(name string, vals []float64) error {
	return f.writeRaw(name, nctype.Double, len(vals), func() ([]byte, error) {
		res := make([]float64, len(vals))
		for i, x := range vals {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				x = datatype.MissingDouble
			}
			res[i] = x
		}
		return nctype.EncodeFloat64s(res), nil
	})
}

// UpdateStringValue replaces the value of the string metadata variable
// name. The value must fit in the file's string length.
func (f *File) UpdateStringValue(name, value string) error {
	fh, h, err := f.readHeader(os.O_RDWR)
	if err != nil {
		return err
	}
	defer fh.Close()

	v, ok := h.Var(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrVarNotFound, name)
	}
	if v.Type != nctype.Char || len(v.Dims) != 2 {
		return fmt.Errorf("%w: %s is not a string variable", ErrUnsupportedKind, name)
	}
	width := h.Shape(v)[1]
	if h.NumElements(v) != width {
		return fmt.Errorf("%w: %s holds more than one string", ErrShapeMismatch, name)
	}
	if len(value) > width {
		return fmt.Errorf("%w: %d bytes given for %s of length %d", ErrShapeMismatch, len(value), name, width)
	}
	raw := make([]byte, width)
	copy(raw, value)
	if err = cdf.WriteVar(fh, h, v, raw); err != nil {
		return WriteFileError(f.path, err)
	}
	if err = fh.Close(); err != nil {
		return WriteFileError(f.path, err)
	}
	if f.metadata != nil {
		_ = f.metadata.SetByName(name, datatype.StringValue(value))
	}
	return nil
}
