package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer writes NetCDF classic header and data fields.
type Writer struct {
	w          io.WriterAt
	order      binary.ByteOrder
	offsetSize int
	pos        int64
}

// NewWriter creates a binary writer with the given configuration.
func NewWriter(w io.WriterAt, cfg Config) *Writer {
	return &Writer{
		w:          w,
		order:      cfg.ByteOrder,
		offsetSize: cfg.OffsetSize,
	}
}

// At returns a new writer positioned at the given offset.
// The new writer shares the underlying io.WriterAt but has independent position.
func (w *Writer) At(offset int64) *Writer {
	return &Writer{
		w:          w.w,
		order:      w.order,
		offsetSize: w.offsetSize,
		pos:        offset,
	}
}

// Pos returns the current write position.
func (w *Writer) Pos() int64 {
	return w.pos
}

// WriteBytes writes the given bytes at the current position.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.WriteAt(data, w.pos)
	w.pos += int64(n)
	return err
}

// WritePadded writes data followed by zero bytes up to the next 4-byte boundary.
func (w *Writer) WritePadded(data []byte) error {
	if err := w.WriteBytes(data); err != nil {
		return err
	}
	return w.WriteZeros(Pad4(len(data)))
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	buf := make([]byte, 4)
	w.order.PutUint32(buf, v)
	return w.WriteBytes(buf)
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) error {
	buf := make([]byte, 8)
	w.order.PutUint64(buf, v)
	return w.WriteBytes(buf)
}

// WriteNonNeg writes a NON_NEG count.
func (w *Writer) WriteNonNeg(n int) error {
	if n < 0 || n > 1<<31-1 {
		return fmt.Errorf("count %d out of range", n)
	}
	return w.WriteUint32(uint32(n))
}

// WriteOffset writes a file offset using the configured offset size.
func (w *Writer) WriteOffset(v int64) error {
	if w.offsetSize == 8 {
		return w.WriteUint64(uint64(v))
	}
	if v > 1<<32-1 {
		return fmt.Errorf("offset %d does not fit in 4 bytes", v)
	}
	return w.WriteUint32(uint32(v))
}

// WriteName writes a NetCDF name: length, bytes, padding.
func (w *Writer) WriteName(name string) error {
	if err := w.WriteNonNeg(len(name)); err != nil {
		return err
	}
	return w.WritePadded([]byte(name))
}

// WriteZeros writes n zero bytes.
func (w *Writer) WriteZeros(n int) error {
	if n <= 0 {
		return nil
	}
	return w.WriteBytes(make([]byte, n))
}

// Buffer is an in-memory io.WriterAt and io.ReaderAt, used to assemble
// headers before their size is known and in tests.
type Buffer struct {
	buf []byte
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// WriteAt implements io.WriterAt, growing the buffer as needed.
func (b *Buffer) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, io.ErrUnexpectedEOF
	}
	end := int(off) + len(p)
	if end > len(b.buf) {
		grown := make([]byte, end)
		copy(grown, b.buf)
		b.buf = grown
	}
	copy(b.buf[off:], p)
	return len(p), nil
}

// ReadAt implements io.ReaderAt.
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b.buf)) {
		return 0, io.EOF
	}
	n := copy(p, b.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Bytes returns the buffer contents.
func (b *Buffer) Bytes() []byte {
	return b.buf
}
