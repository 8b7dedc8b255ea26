// Package binary provides low-level big-endian I/O for NetCDF classic file parsing.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// Reader reads NetCDF classic header and data fields. File offsets are
// 4 bytes wide in the classic format and 8 bytes wide in the 64-bit
// offset variant.
type Reader struct {
	r          io.ReaderAt
	order      binary.ByteOrder
	offsetSize int
	pos        int64
	size       int64 // -1 when unknown
}

// Config holds reader and writer configuration, derived from the magic number.
type Config struct {
	ByteOrder  binary.ByteOrder
	OffsetSize int // 4 or 8 bytes
}

// DefaultConfig returns the configuration of a classic (CDF-1) file.
// NetCDF is always big-endian.
func DefaultConfig() Config {
	return Config{
		ByteOrder:  binary.BigEndian,
		OffsetSize: 4,
	}
}

// NewReader creates a binary reader with the given configuration. When r
// can report its size (bytes.Reader, io.SectionReader, os.File), reads
// past the end fail before any buffer is allocated.
func NewReader(r io.ReaderAt, cfg Config) *Reader {
	return &Reader{
		r:          r,
		order:      cfg.ByteOrder,
		offsetSize: cfg.OffsetSize,
		size:       sizeOf(r),
	}
}

func sizeOf(r io.ReaderAt) int64 {
	switch v := r.(type) {
	case interface{ Size() int64 }:
		return v.Size()
	case interface{ Stat() (fs.FileInfo, error) }:
		if fi, err := v.Stat(); err == nil {
			return fi.Size()
		}
	}
	return -1
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying io.ReaderAt but has independent position.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{
		r:          r.r,
		order:      r.order,
		offsetSize: r.offsetSize,
		pos:        offset,
		size:       r.size,
	}
}

// WithOffsetSize returns a new reader using the given offset width.
// This is used once the magic number has told which variant the file is.
func (r *Reader) WithOffsetSize(offsetSize int) *Reader {
	return &Reader{
		r:          r.r,
		order:      r.order,
		offsetSize: offsetSize,
		pos:        r.pos,
		size:       r.size,
	}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Remaining returns the number of bytes after the current position, or
// false when the size of the input is unknown.
func (r *Reader) Remaining() (int64, bool) {
	if r.size < 0 {
		return 0, false
	}
	return max(r.size-r.pos, 0), true
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if left, ok := r.Remaining(); ok && int64(n) > left {
		return nil, io.ErrUnexpectedEOF
	}
	buf := make([]byte, n)
	read, err := r.r.ReadAt(buf, r.pos)
	if read == n {
		// io.ReaderAt may return io.EOF together with a full read at end of file.
		err = nil
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	r.pos += int64(n)
	return buf, nil
}

// ReadPadded reads n bytes and skips the zero padding up to the next
// 4-byte boundary.
func (r *Reader) ReadPadded(n int) ([]byte, error) {
	buf, err := r.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	r.Skip(int64(Pad4(n)))
	return buf, nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(buf), nil
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(buf), nil
}

// ReadInt32 reads a signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadNonNeg reads a NON_NEG count (a 32-bit value that must not be negative).
func (r *Reader) ReadNonNeg() (int, error) {
	v, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative count %d at offset %d", v, r.pos-4)
	}
	return int(v), nil
}

// ReadOffset reads a file offset using the configured offset size.
func (r *Reader) ReadOffset() (int64, error) {
	if r.offsetSize == 8 {
		v, err := r.ReadUint64()
		return int64(v), err
	}
	v, err := r.ReadUint32()
	return int64(v), err
}

// ReadName reads a NetCDF name: a NON_NEG length followed by that many
// bytes padded to a 4-byte boundary.
func (r *Reader) ReadName() (string, error) {
	n, err := r.ReadNonNeg()
	if err != nil {
		return "", err
	}
	buf, err := r.ReadPadded(n)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int64) {
	r.pos += n
}

// Pad4 returns the number of zero bytes needed after n bytes to reach
// a 4-byte boundary.
func Pad4(n int) int {
	if rem := n % 4; rem != 0 {
		return 4 - rem
	}
	return 0
}

// Round4 rounds n up to the next multiple of four.
func Round4(n int64) int64 {
	return (n + 3) &^ 3
}
