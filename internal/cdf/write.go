package cdf

import (
	"fmt"
	"io"

	binpkg "github.com/robert-malhotra/go-dsg/internal/binary"
	"github.com/robert-malhotra/go-dsg/internal/nctype"
)

// Layout assigns VSize and Begin to every variable, placing the data of each
// variable directly after the header in definition order. It returns the
// total file size.
func (h *Header) Layout() (int64, error) {
	for _, v := range h.Vars {
		if h.IsRecordVar(v) {
			return 0, fmt.Errorf("%w: %q", ErrRecordVariable, v.Name)
		}
		v.VSize = binpkg.Round4(int64(h.NumElements(v) * v.Type.Size()))
		if v.VSize > 1<<32-4 {
			return 0, fmt.Errorf("%w: variable %q is too large", ErrInvalidHeader, v.Name)
		}
	}

	// The header size does not depend on the begin values, since offsets are
	// fixed width.
	size, err := h.Size()
	if err != nil {
		return 0, err
	}

	offset := size
	for _, v := range h.Vars {
		v.Begin = offset
		offset += v.VSize
	}
	if h.Version == Classic && offset > 1<<31-1 {
		return 0, fmt.Errorf("%w: file of %d bytes needs 64-bit offsets", ErrInvalidHeader, offset)
	}
	return offset, nil
}

// Size returns the serialized size of the header.
func (h *Header) Size() (int64, error) {
	buf := binpkg.NewBuffer()
	n, err := h.writeTo(binpkg.NewWriter(buf, h.config()))
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Write serializes the header at offset 0 of w.
func (h *Header) Write(w io.WriterAt) (int64, error) {
	return h.writeTo(binpkg.NewWriter(w, h.config()))
}

func (h *Header) config() binpkg.Config {
	cfg := binpkg.DefaultConfig()
	cfg.OffsetSize = h.Version.OffsetSize()
	return cfg
}

func (h *Header) writeTo(w *binpkg.Writer) (int64, error) {
	start := w.Pos()

	switch h.Version {
	case Classic, Offset64:
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	if err := w.WriteBytes(append(append([]byte{}, Magic...), byte(h.Version))); err != nil {
		return 0, err
	}
	if err := w.WriteNonNeg(h.NumRecs); err != nil {
		return 0, err
	}

	// dim_list
	if err := writeListHeader(w, tagDimension, len(h.Dims)); err != nil {
		return 0, err
	}
	for _, d := range h.Dims {
		if err := w.WriteName(d.Name); err != nil {
			return 0, err
		}
		if err := w.WriteNonNeg(d.Len); err != nil {
			return 0, err
		}
	}

	if err := writeAttrs(w, h.Attrs); err != nil {
		return 0, err
	}

	// var_list
	if err := writeListHeader(w, tagVariable, len(h.Vars)); err != nil {
		return 0, err
	}
	for _, v := range h.Vars {
		if err := w.WriteName(v.Name); err != nil {
			return 0, err
		}
		if err := w.WriteNonNeg(len(v.Dims)); err != nil {
			return 0, err
		}
		for _, id := range v.Dims {
			if err := w.WriteNonNeg(id); err != nil {
				return 0, err
			}
		}
		if err := writeAttrs(w, v.Attrs); err != nil {
			return 0, fmt.Errorf("variable %q attributes: %w", v.Name, err)
		}
		if err := w.WriteUint32(uint32(v.Type)); err != nil {
			return 0, err
		}
		if err := w.WriteUint32(uint32(v.VSize)); err != nil {
			return 0, err
		}
		if err := w.WriteOffset(v.Begin); err != nil {
			return 0, err
		}
	}

	return w.Pos() - start, nil
}

// writeListHeader writes a tag and count, or ABSENT for empty lists.
func writeListHeader(w *binpkg.Writer, tag uint32, n int) error {
	if n == 0 {
		return w.WriteZeros(8)
	}
	if err := w.WriteUint32(tag); err != nil {
		return err
	}
	return w.WriteNonNeg(n)
}

func writeAttrs(w *binpkg.Writer, attrs []Attr) error {
	if err := writeListHeader(w, tagAttribute, len(attrs)); err != nil {
		return err
	}
	for _, a := range attrs {
		raw, err := nctype.Encode(a.Type, a.Value)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", a.Name, err)
		}
		if err := w.WriteName(a.Name); err != nil {
			return err
		}
		if err := w.WriteUint32(uint32(a.Type)); err != nil {
			return err
		}
		if err := w.WriteNonNeg(len(raw) / a.Type.Size()); err != nil {
			return err
		}
		if err := w.WritePadded(raw); err != nil {
			return err
		}
	}
	return nil
}
