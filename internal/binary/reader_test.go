package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// bytesReaderAt wraps a byte slice to implement io.ReaderAt.
type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func TestReaderReadUint32(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(0x12345678))
	binary.Write(&buf, binary.BigEndian, uint32(0xDEADBEEF))

	r := NewReader(bytesReaderAt(buf.Bytes()), DefaultConfig())

	v, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if v != 0x12345678 {
		t.Errorf("expected 0x12345678, got 0x%08x", v)
	}

	v, err = r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if v != 0xDEADBEEF {
		t.Errorf("expected 0xDEADBEEF, got 0x%08x", v)
	}
	if r.Pos() != 8 {
		t.Errorf("expected position 8, got %d", r.Pos())
	}
}

func TestReaderReadInt32Negative(t *testing.T) {
	data := bytesReaderAt{0xFF, 0xFF, 0xFF, 0x9D}
	r := NewReader(data, DefaultConfig())

	v, err := r.ReadInt32()
	if err != nil {
		t.Fatalf("ReadInt32 failed: %v", err)
	}
	if v != -99 {
		t.Errorf("expected -99, got %d", v)
	}
}

func TestReaderReadNonNegRejectsNegative(t *testing.T) {
	data := bytesReaderAt{0xFF, 0xFF, 0xFF, 0xFF}
	r := NewReader(data, DefaultConfig())

	if _, err := r.ReadNonNeg(); err == nil {
		t.Error("expected error for negative count")
	}
}

func TestReaderReadOffset(t *testing.T) {
	tests := []struct {
		name       string
		offsetSize int
		data       []byte
		expected   int64
	}{
		{"classic", 4, []byte{0x00, 0x00, 0x01, 0x00}, 256},
		{"64-bit", 8, []byte{0, 0, 0, 1, 0, 0, 0, 0}, 1 << 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(bytesReaderAt(tt.data), Config{ByteOrder: binary.BigEndian, OffsetSize: tt.offsetSize})
			v, err := r.ReadOffset()
			if err != nil {
				t.Fatalf("ReadOffset failed: %v", err)
			}
			if v != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, v)
			}
		})
	}
}

func TestReaderReadName(t *testing.T) {
	// length 3, "obs", one padding byte, then a marker
	data := bytesReaderAt{0, 0, 0, 3, 'o', 'b', 's', 0, 0, 0, 0, 7}
	r := NewReader(data, DefaultConfig())

	name, err := r.ReadName()
	if err != nil {
		t.Fatalf("ReadName failed: %v", err)
	}
	if name != "obs" {
		t.Errorf("expected %q, got %q", "obs", name)
	}
	if r.Pos() != 8 {
		t.Errorf("expected position 8 after padding, got %d", r.Pos())
	}

	marker, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if marker != 7 {
		t.Errorf("expected marker 7, got %d", marker)
	}
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader(bytesReaderAt{1, 2}, DefaultConfig())
	_, err := r.ReadUint32()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestReaderAtIndependentPosition(t *testing.T) {
	data := bytesReaderAt{0, 0, 0, 1, 0, 0, 0, 2}
	r := NewReader(data, DefaultConfig())
	r2 := r.At(4)

	v, err := r2.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if v != 2 {
		t.Errorf("expected 2, got %d", v)
	}
	if r.Pos() != 0 {
		t.Errorf("original reader moved to %d", r.Pos())
	}
}

func TestReaderRemaining(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0, 0, 0, 1, 0, 0}), DefaultConfig())
	left, ok := r.Remaining()
	if !ok || left != 6 {
		t.Fatalf("Remaining = %d, %v; want 6, true", left, ok)
	}
	if _, err := r.ReadUint32(); err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if left, _ = r.Remaining(); left != 2 {
		t.Errorf("expected 2 bytes left, got %d", left)
	}
	if _, err := r.ReadBytes(1 << 30); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
	if r.Pos() != 4 {
		t.Errorf("failed read moved position to %d", r.Pos())
	}

	if _, ok := NewReader(bytesReaderAt{1}, DefaultConfig()).Remaining(); ok {
		t.Error("expected unknown size")
	}
}

func TestPad4(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 3, 2: 2, 3: 1, 4: 0, 5: 3} {
		if got := Pad4(n); got != want {
			t.Errorf("Pad4(%d) = %d, want %d", n, got, want)
		}
	}
	if Round4(13) != 16 || Round4(16) != 16 {
		t.Errorf("Round4 gave %d and %d", Round4(13), Round4(16))
	}
}
