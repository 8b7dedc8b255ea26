package binary

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWriterWriteUint32(t *testing.T) {
	buf := NewBuffer()
	w := NewWriter(buf, DefaultConfig())

	if err := w.WriteUint32(0x0102); err != nil {
		t.Fatalf("WriteUint32 failed: %v", err)
	}
	expected := []byte{0x00, 0x00, 0x01, 0x02}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected %v, got %v", expected, buf.Bytes())
	}
	if w.Pos() != 4 {
		t.Errorf("expected position 4, got %d", w.Pos())
	}
}

func TestWriterWriteOffset(t *testing.T) {
	buf := NewBuffer()
	w := NewWriter(buf, Config{ByteOrder: binary.BigEndian, OffsetSize: 8})

	if err := w.WriteOffset(1 << 32); err != nil {
		t.Fatalf("WriteOffset failed: %v", err)
	}
	expected := []byte{0, 0, 0, 1, 0, 0, 0, 0}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected %v, got %v", expected, buf.Bytes())
	}
}

func TestWriterWriteOffsetOverflow(t *testing.T) {
	w := NewWriter(NewBuffer(), DefaultConfig())
	if err := w.WriteOffset(1 << 32); err == nil {
		t.Error("expected overflow error for 4-byte offset")
	}
}

func TestWriterWriteName(t *testing.T) {
	buf := NewBuffer()
	w := NewWriter(buf, DefaultConfig())

	if err := w.WriteName("time"); err != nil {
		t.Fatalf("WriteName failed: %v", err)
	}
	if err := w.WriteName("lat"); err != nil {
		t.Fatalf("WriteName failed: %v", err)
	}
	expected := []byte{
		0, 0, 0, 4, 't', 'i', 'm', 'e',
		0, 0, 0, 3, 'l', 'a', 't', 0,
	}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected %v, got %v", expected, buf.Bytes())
	}
}

func TestWriterRoundTrip(t *testing.T) {
	buf := NewBuffer()
	w := NewWriter(buf, DefaultConfig())

	w.WriteUint32(0xFFFFFF9D)
	w.WriteName("sample_depth")
	w.WriteOffset(4096)

	r := NewReader(buf, DefaultConfig())
	i, err := r.ReadInt32()
	if err != nil || i != -99 {
		t.Fatalf("ReadInt32 = %d, %v", i, err)
	}
	name, err := r.ReadName()
	if err != nil || name != "sample_depth" {
		t.Fatalf("ReadName = %q, %v", name, err)
	}
	off, err := r.ReadOffset()
	if err != nil || off != 4096 {
		t.Fatalf("ReadOffset = %d, %v", off, err)
	}
}

func TestWriterAt(t *testing.T) {
	buf := NewBuffer()
	w := NewWriter(buf, DefaultConfig())
	w.WriteZeros(8)

	w2 := w.At(4)
	if err := w2.WriteUint32(7); err != nil {
		t.Fatalf("WriteUint32 failed: %v", err)
	}
	expected := []byte{0, 0, 0, 0, 0, 0, 0, 7}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected %v, got %v", expected, buf.Bytes())
	}
	if w.Pos() != 8 {
		t.Errorf("original writer position changed to %d", w.Pos())
	}
}
