package cdf

import (
	"bytes"
	"fmt"
	"io"

	binpkg "github.com/robert-malhotra/go-dsg/internal/binary"
	"github.com/robert-malhotra/go-dsg/internal/nctype"
)

// Read parses the header at the start of a NetCDF classic file.
func Read(r io.ReaderAt) (*Header, error) {
	br := binpkg.NewReader(r, binpkg.DefaultConfig())

	sig, err := br.ReadBytes(4)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotCDF, err)
	}
	if !bytes.Equal(sig[:3], Magic) {
		return nil, ErrNotCDF
	}

	h := &Header{Version: Version(sig[3])}
	switch h.Version {
	case Classic, Offset64:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, sig[3])
	}
	br = br.WithOffsetSize(h.Version.OffsetSize())

	numRecs, err := br.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("reading numrecs: %w", err)
	}
	// 0xFFFFFFFF is STREAMING: the record count is unknown.
	if numRecs != 0xFFFFFFFF {
		h.NumRecs = int(numRecs)
	}

	if h.Dims, err = readDims(br); err != nil {
		return nil, fmt.Errorf("reading dimensions: %w", err)
	}
	if h.Attrs, err = readAttrs(br); err != nil {
		return nil, fmt.Errorf("reading global attributes: %w", err)
	}
	if h.Vars, err = readVars(br, len(h.Dims)); err != nil {
		return nil, fmt.Errorf("reading variables: %w", err)
	}

	return h, nil
}

// readListHeader reads a list tag and count. ABSENT lists yield a zero count.
func readListHeader(br *binpkg.Reader, want uint32) (int, error) {
	tag, err := br.ReadUint32()
	if err != nil {
		return 0, err
	}
	n, err := br.ReadNonNeg()
	if err != nil {
		return 0, err
	}
	if tag == 0 {
		if n != 0 {
			return 0, fmt.Errorf("%w: absent list with %d elements", ErrInvalidHeader, n)
		}
		return 0, nil
	}
	if tag != want {
		return 0, fmt.Errorf("%w: expected tag 0x%02x, got 0x%02x", ErrInvalidHeader, want, tag)
	}
	return n, nil
}

// Smallest encoded size of each list element: an empty name plus the
// fixed fields.
const (
	minDimSize  = 8
	minAttrSize = 12
	minVarSize  = 28
)

// checkCount fails when n elements of at least size bytes each cannot fit
// in the rest of the input.
func checkCount(br *binpkg.Reader, n, size int) error {
	left, ok := br.Remaining()
	if ok && int64(n)*int64(size) > left {
		return fmt.Errorf("%w: %d elements of %d bytes at offset %d, %d bytes left",
			ErrInvalidHeader, n, size, br.Pos(), left)
	}
	return nil
}

func readDims(br *binpkg.Reader) ([]Dim, error) {
	n, err := readListHeader(br, tagDimension)
	if err != nil || n == 0 {
		return nil, err
	}
	if err = checkCount(br, n, minDimSize); err != nil {
		return nil, err
	}
	dims := make([]Dim, 0, n)
	for i := 0; i < n; i++ {
		name, err := br.ReadName()
		if err != nil {
			return nil, err
		}
		length, err := br.ReadNonNeg()
		if err != nil {
			return nil, err
		}
		dims = append(dims, Dim{Name: name, Len: length})
	}
	return dims, nil
}

func readAttrs(br *binpkg.Reader) ([]Attr, error) {
	n, err := readListHeader(br, tagAttribute)
	if err != nil || n == 0 {
		return nil, err
	}
	if err = checkCount(br, n, minAttrSize); err != nil {
		return nil, err
	}
	attrs := make([]Attr, 0, n)
	for i := 0; i < n; i++ {
		name, err := br.ReadName()
		if err != nil {
			return nil, err
		}
		rawType, err := br.ReadUint32()
		if err != nil {
			return nil, err
		}
		t := nctype.Type(rawType)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: attribute %q has type %d", ErrInvalidHeader, name, rawType)
		}
		count, err := br.ReadNonNeg()
		if err != nil {
			return nil, err
		}
		if err = checkCount(br, count, t.Size()); err != nil {
			return nil, err
		}
		raw, err := br.ReadPadded(count * t.Size())
		if err != nil {
			return nil, err
		}
		value, err := nctype.Decode(t, raw, count)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		attrs = append(attrs, Attr{Name: name, Type: t, Value: value})
	}
	return attrs, nil
}

func readVars(br *binpkg.Reader, numDims int) ([]*Var, error) {
	n, err := readListHeader(br, tagVariable)
	if err != nil || n == 0 {
		return nil, err
	}
	if err = checkCount(br, n, minVarSize); err != nil {
		return nil, err
	}
	vars := make([]*Var, 0, n)
	for i := 0; i < n; i++ {
		v := &Var{}
		if v.Name, err = br.ReadName(); err != nil {
			return nil, err
		}
		ndims, err := br.ReadNonNeg()
		if err != nil {
			return nil, err
		}
		if err = checkCount(br, ndims, 4); err != nil {
			return nil, err
		}
		v.Dims = make([]int, ndims)
		for j := range v.Dims {
			id, err := br.ReadNonNeg()
			if err != nil {
				return nil, err
			}
			if id >= numDims {
				return nil, fmt.Errorf("%w: variable %q references dimension %d of %d",
					ErrInvalidHeader, v.Name, id, numDims)
			}
			v.Dims[j] = id
		}
		if v.Attrs, err = readAttrs(br); err != nil {
			return nil, fmt.Errorf("variable %q attributes: %w", v.Name, err)
		}
		rawType, err := br.ReadUint32()
		if err != nil {
			return nil, err
		}
		v.Type = nctype.Type(rawType)
		if !v.Type.Valid() {
			return nil, fmt.Errorf("%w: variable %q has type %d", ErrInvalidHeader, v.Name, rawType)
		}
		vsize, err := br.ReadUint32()
		if err != nil {
			return nil, err
		}
		v.VSize = int64(vsize)
		if v.Begin, err = br.ReadOffset(); err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, nil
}
