package cdf

import (
	"fmt"
	"io"

	binpkg "github.com/robert-malhotra/go-dsg/internal/binary"
)

// ReadVar reads the raw (unpadded) data of a fixed-size variable.
func ReadVar(r io.ReaderAt, h *Header, v *Var) ([]byte, error) {
	if h.IsRecordVar(v) {
		return nil, fmt.Errorf("%w: %q", ErrRecordVariable, v.Name)
	}
	n := h.NumElements(v) * v.Type.Size()
	br := binpkg.NewReader(r, h.config()).At(v.Begin)
	raw, err := br.ReadBytes(n)
	if err != nil {
		return nil, fmt.Errorf("reading variable %q: %w", v.Name, err)
	}
	return raw, nil
}

// WriteVar writes the raw data of a fixed-size variable, followed by the
// zero padding that completes its vsize. The data length must match the
// variable's shape exactly.
func WriteVar(w io.WriterAt, h *Header, v *Var, raw []byte) error {
	if h.IsRecordVar(v) {
		return fmt.Errorf("%w: %q", ErrRecordVariable, v.Name)
	}
	if n := h.NumElements(v) * v.Type.Size(); len(raw) != n {
		return fmt.Errorf("variable %q needs %d bytes, got %d", v.Name, n, len(raw))
	}
	bw := binpkg.NewWriter(w, h.config()).At(v.Begin)
	if err := bw.WritePadded(raw); err != nil {
		return fmt.Errorf("writing variable %q: %w", v.Name, err)
	}
	return nil
}
