package cdf

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	binpkg "github.com/robert-malhotra/go-dsg/internal/binary"
	"github.com/robert-malhotra/go-dsg/internal/nctype"
)

func buildHeader(t *testing.T, version Version) *Header {
	t.Helper()
	h := New(version)
	if _, err := h.AddDim("trajectory", 1); err != nil {
		t.Fatalf("AddDim failed: %v", err)
	}
	if _, err := h.AddDim("obs", 3); err != nil {
		t.Fatalf("AddDim failed: %v", err)
	}
	if _, err := h.AddDim("string_length", 32); err != nil {
		t.Fatalf("AddDim failed: %v", err)
	}
	if err := h.AddAttr("featureType", "Trajectory"); err != nil {
		t.Fatalf("AddAttr failed: %v", err)
	}

	units, _ := NewAttr("units", "degrees_east")
	missing, _ := NewAttr("missing_value", -999.0)
	if _, err := h.AddVar("longitude", nctype.Double, []string{"obs"}, units, missing); err != nil {
		t.Fatalf("AddVar failed: %v", err)
	}
	if _, err := h.AddVar("num_obs", nctype.Int, []string{"trajectory"}); err != nil {
		t.Fatalf("AddVar failed: %v", err)
	}
	if _, err := h.AddVar("expocode", nctype.Char, []string{"trajectory", "string_length"}); err != nil {
		t.Fatalf("AddVar failed: %v", err)
	}
	return h
}

func TestHeaderRoundTrip(t *testing.T) {
	for _, version := range []Version{Classic, Offset64} {
		h := buildHeader(t, version)
		size, err := h.Layout()
		if err != nil {
			t.Fatalf("Layout failed: %v", err)
		}

		buf := binpkg.NewBuffer()
		n, err := h.Write(buf)
		if err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		headerSize, _ := h.Size()
		if n != headerSize {
			t.Errorf("wrote %d header bytes, Size reports %d", n, headerSize)
		}

		lon, _ := h.Var("longitude")
		if lon.Begin != headerSize {
			t.Errorf("first variable should begin at %d, got %d", headerSize, lon.Begin)
		}
		if lon.VSize != 24 {
			t.Errorf("expected vsize 24, got %d", lon.VSize)
		}
		expo, _ := h.Var("expocode")
		if size != expo.Begin+expo.VSize {
			t.Errorf("file size %d does not end after last variable", size)
		}

		got, err := Read(buf)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if got.Version != version {
			t.Errorf("expected version %d, got %d", version, got.Version)
		}
		if !reflect.DeepEqual(got.Dims, h.Dims) {
			t.Errorf("dims mismatch: %v vs %v", got.Dims, h.Dims)
		}
		if !reflect.DeepEqual(got.Attrs, h.Attrs) {
			t.Errorf("attrs mismatch: %v vs %v", got.Attrs, h.Attrs)
		}
		if len(got.Vars) != len(h.Vars) {
			t.Fatalf("expected %d vars, got %d", len(h.Vars), len(got.Vars))
		}
		for i, v := range got.Vars {
			if !reflect.DeepEqual(v, h.Vars[i]) {
				t.Errorf("var %d mismatch: %+v vs %+v", i, v, h.Vars[i])
			}
		}
	}
}

func TestHeaderMissingValueAttr(t *testing.T) {
	h := buildHeader(t, Classic)
	h.Layout()
	buf := binpkg.NewBuffer()
	h.Write(buf)

	got, err := Read(buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	v, ok := got.Var("longitude")
	if !ok {
		t.Fatal("longitude not found")
	}
	a, ok := v.Attr("missing_value")
	if !ok {
		t.Fatal("missing_value not found")
	}
	if vals, ok := a.Value.([]float64); !ok || len(vals) != 1 || vals[0] != -999.0 {
		t.Errorf("unexpected missing_value %v", a.Value)
	}
	units, _ := v.Attr("units")
	if units.String() != "degrees_east" {
		t.Errorf("expected degrees_east, got %q", units.String())
	}
}

func TestReadNotCDF(t *testing.T) {
	buf := binpkg.NewBuffer()
	buf.WriteAt([]byte("\x89HDF\r\n\x1a\n"), 0)
	if _, err := Read(buf); !errors.Is(err, ErrNotCDF) {
		t.Errorf("expected ErrNotCDF, got %v", err)
	}
}

func TestReadUnsupportedVersion(t *testing.T) {
	buf := binpkg.NewBuffer()
	buf.WriteAt([]byte{'C', 'D', 'F', 5, 0, 0, 0, 0}, 0)
	if _, err := Read(buf); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func be32(vals ...uint32) []byte {
	var res []byte
	for _, v := range vals {
		res = append(res, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	return res
}

func TestReadOversizedCounts(t *testing.T) {
	magic := []byte{'C', 'D', 'F', 1, 0, 0, 0, 0}
	absent := be32(0, 0)
	name := be32(1, 'x'<<24)

	tests := []struct {
		msg  string
		body [][]byte
	}{
		{"dimensions", [][]byte{be32(tagDimension, 0x7FFFFFFF)}},
		{"attributes", [][]byte{absent, be32(tagAttribute, 0x7FFFFFFF)}},
		{"variables", [][]byte{absent, absent, be32(tagVariable, 0x7FFFFFFF)}},
		{"attribute values", [][]byte{
			absent, be32(tagAttribute, 1), name, be32(uint32(nctype.Double), 0x10000000),
		}},
		{"variable dimensions", [][]byte{
			absent, absent, be32(tagVariable, 1), name, be32(0x7FFFFFFF), make([]byte, 24),
		}},
	}
	for _, tt := range tests {
		raw := bytes.Join(append([][]byte{magic}, tt.body...), nil)
		if _, err := Read(bytes.NewReader(raw)); !errors.Is(err, ErrInvalidHeader) {
			t.Errorf("%s: expected ErrInvalidHeader, got %v", tt.msg, err)
		}
	}
}

func TestHeaderValidation(t *testing.T) {
	h := New(Classic)
	if _, err := h.AddDim("obs", 0); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("expected error for zero-length dimension, got %v", err)
	}
	h.AddDim("obs", 2)
	if _, err := h.AddDim("obs", 2); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("expected error for duplicate dimension, got %v", err)
	}
	if _, err := h.AddVar("x", nctype.Double, []string{"nope"}); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("expected error for unknown dimension, got %v", err)
	}
	h.AddVar("x", nctype.Double, []string{"obs"})
	if _, err := h.AddVar("x", nctype.Double, []string{"obs"}); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("expected error for duplicate variable, got %v", err)
	}
}

func TestEmptyHeaderUsesAbsentLists(t *testing.T) {
	h := New(Classic)
	buf := binpkg.NewBuffer()
	if _, err := h.Write(buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	expected := append([]byte{'C', 'D', 'F', 1, 0, 0, 0, 0}, make([]byte, 24)...)
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected %v, got %v", expected, buf.Bytes())
	}
}

func TestVarDataRoundTrip(t *testing.T) {
	h := buildHeader(t, Classic)
	h.Layout()
	buf := binpkg.NewBuffer()
	h.Write(buf)

	lon, _ := h.Var("longitude")
	raw := nctype.EncodeFloat64s([]float64{-0.5, 179.0, -999.0})
	if err := WriteVar(buf, h, lon, raw); err != nil {
		t.Fatalf("WriteVar failed: %v", err)
	}
	expo, _ := h.Var("expocode")
	name := make([]byte, 32)
	copy(name, "33RO20150211")
	if err := WriteVar(buf, h, expo, name); err != nil {
		t.Fatalf("WriteVar failed: %v", err)
	}

	got, err := ReadVar(buf, h, lon)
	if err != nil {
		t.Fatalf("ReadVar failed: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Errorf("expected %v, got %v", raw, got)
	}

	if err := WriteVar(buf, h, lon, raw[:8]); err == nil {
		t.Error("expected error for short data")
	}
}
