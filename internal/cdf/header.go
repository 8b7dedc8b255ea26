package cdf

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-dsg/internal/nctype"
)

// Magic is the signature prefix of every NetCDF classic file.
var Magic = []byte{'C', 'D', 'F'}

// Header list tags.
const (
	tagDimension uint32 = 0x0A
	tagVariable  uint32 = 0x0B
	tagAttribute uint32 = 0x0C
)

// Errors
var (
	ErrNotCDF             = errors.New("not a NetCDF classic file: signature not found")
	ErrUnsupportedVersion = errors.New("unsupported NetCDF version")
	ErrInvalidHeader      = errors.New("invalid NetCDF header")
	ErrRecordVariable     = errors.New("record variables are not supported")
)

// Version is the format variant recorded after the magic bytes.
type Version uint8

const (
	// Classic uses 4-byte offsets.
	Classic Version = 1
	// Offset64 uses 8-byte offsets.
	Offset64 Version = 2
)

// OffsetSize returns the width of a file offset in this variant.
func (v Version) OffsetSize() int {
	if v == Offset64 {
		return 8
	}
	return 4
}

// Dim is a named dimension. A zero length marks the record dimension.
type Dim struct {
	Name string
	Len  int
}

// Attr is a named attribute. Value is a string for char attributes and a
// slice (or scalar) of the Go element type otherwise.
type Attr struct {
	Name  string
	Type  nctype.Type
	Value any
}

// NewAttr builds an attribute, inferring its type from the value. Numeric
// scalars are stored as one-element slices, the form Read produces.
func NewAttr(name string, value any) (Attr, error) {
	t, _, err := nctype.TypeOf(value)
	if err != nil {
		return Attr{}, fmt.Errorf("attribute %q: %w", name, err)
	}
	switch v := value.(type) {
	case []byte:
		value = string(v)
	case int8:
		value = []int8{v}
	case int16:
		value = []int16{v}
	case int32:
		value = []int32{v}
	case float32:
		value = []float32{v}
	case float64:
		value = []float64{v}
	}
	return Attr{Name: name, Type: t, Value: value}, nil
}

// String returns the value of a char attribute, or "" otherwise.
func (a Attr) String() string {
	if s, ok := a.Value.(string); ok {
		return s
	}
	return ""
}

// Var is a variable definition.
type Var struct {
	Name  string
	Dims  []int // dimension IDs, slowest varying first
	Attrs []Attr
	Type  nctype.Type
	VSize int64
	Begin int64
}

// Attr returns the variable attribute with the given name.
func (v *Var) Attr(name string) (Attr, bool) {
	return findAttr(v.Attrs, name)
}

// Header is a parsed or to-be-written NetCDF classic header.
type Header struct {
	Version Version
	NumRecs int
	Dims    []Dim
	Attrs   []Attr
	Vars    []*Var
}

// New creates an empty header of the given version.
func New(version Version) *Header {
	return &Header{Version: version}
}

// AddDim appends a fixed-size dimension and returns its ID.
func (h *Header) AddDim(name string, length int) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty dimension name", ErrInvalidHeader)
	}
	if length <= 0 {
		return 0, fmt.Errorf("%w: dimension %q must have positive length, got %d",
			ErrInvalidHeader, name, length)
	}
	if _, _, ok := h.Dim(name); ok {
		return 0, fmt.Errorf("%w: duplicate dimension %q", ErrInvalidHeader, name)
	}
	h.Dims = append(h.Dims, Dim{Name: name, Len: length})
	return len(h.Dims) - 1, nil
}

// AddAttr appends a global attribute.
func (h *Header) AddAttr(name string, value any) error {
	a, err := NewAttr(name, value)
	if err != nil {
		return err
	}
	h.Attrs = append(h.Attrs, a)
	return nil
}

// AddVar appends a variable over the named dimensions.
func (h *Header) AddVar(name string, t nctype.Type, dims []string, attrs ...Attr) (*Var, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty variable name", ErrInvalidHeader)
	}
	if !t.Valid() {
		return nil, fmt.Errorf("%w: variable %q has invalid type %v", ErrInvalidHeader, name, t)
	}
	if _, ok := h.Var(name); ok {
		return nil, fmt.Errorf("%w: duplicate variable %q", ErrInvalidHeader, name)
	}

	ids := make([]int, len(dims))
	for i, d := range dims {
		id, _, ok := h.Dim(d)
		if !ok {
			return nil, fmt.Errorf("%w: variable %q uses unknown dimension %q",
				ErrInvalidHeader, name, d)
		}
		ids[i] = id
	}

	v := &Var{Name: name, Dims: ids, Attrs: attrs, Type: t}
	h.Vars = append(h.Vars, v)
	return v, nil
}

// Dim looks up a dimension by name.
func (h *Header) Dim(name string) (int, Dim, bool) {
	for i, d := range h.Dims {
		if d.Name == name {
			return i, d, true
		}
	}
	return -1, Dim{}, false
}

// Var looks up a variable by name.
func (h *Header) Var(name string) (*Var, bool) {
	for _, v := range h.Vars {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// Attr looks up a global attribute by name.
func (h *Header) Attr(name string) (Attr, bool) {
	return findAttr(h.Attrs, name)
}

// DimNames returns the dimension names of a variable.
func (h *Header) DimNames(v *Var) []string {
	names := make([]string, len(v.Dims))
	for i, id := range v.Dims {
		names[i] = h.Dims[id].Name
	}
	return names
}

// Shape returns the dimension lengths of a variable.
func (h *Header) Shape(v *Var) []int {
	shape := make([]int, len(v.Dims))
	for i, id := range v.Dims {
		shape[i] = h.Dims[id].Len
	}
	return shape
}

// IsRecordVar reports whether the variable's outermost dimension is the
// record dimension.
func (h *Header) IsRecordVar(v *Var) bool {
	return len(v.Dims) > 0 && h.Dims[v.Dims[0]].Len == 0
}

// NumElements returns the number of elements of a fixed-size variable.
func (h *Header) NumElements(v *Var) int {
	n := 1
	for _, l := range h.Shape(v) {
		n *= l
	}
	return n
}

func findAttr(attrs []Attr, name string) (Attr, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}
