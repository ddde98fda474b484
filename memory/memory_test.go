package memory

import "testing"

func TestByteMapPrimeAndRead(t *testing.T) {
	m := NewByteMap()
	m.Prime(0x1000, 0xab)
	if got := m.ReadByte(0x1000); got != 0xab {
		t.Fatalf("expected 0xab, got 0x%x", got)
	}
}

func TestByteMapUnmappedReadPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unmapped read")
		}
	}()
	NewByteMap().ReadByte(0x2000)
}

func TestMultiWidthLittleEndian(t *testing.T) {
	m := NewByteMap()
	WriteDoubleword(m, 0x100, 0x0102030405060708)
	if got := ReadDoubleword(m, 0x100); got != 0x0102030405060708 {
		t.Fatalf("expected roundtrip, got 0x%x", got)
	}
	if got := m.ReadByte(0x100); got != 0x08 {
		t.Fatalf("expected little-endian low byte 0x08, got 0x%x", got)
	}
	if got := ReadWord(m, 0x104); got != 0x01020304 {
		t.Fatalf("expected 0x01020304, got 0x%x", got)
	}
}

func TestBlockStoreBoundsPanic(t *testing.T) {
	b := NewBlockStore(0x8000_0000, 0x1000)
	b.WriteByte(0x8000_0000, 0x42)
	if got := b.ReadByte(0x8000_0000); got != 0x42 {
		t.Fatalf("expected 0x42, got 0x%x", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range access")
		}
	}()
	b.ReadByte(0x8000_2000)
}

func TestBlockStoreLoadBytes(t *testing.T) {
	b := NewBlockStore(0x1000, 0x100)
	b.LoadBytes(0x1000, []byte{1, 2, 3, 4})
	if ReadWord(b, 0x1000) != 0x04030201 {
		t.Fatalf("expected loaded bytes to decode little-endian")
	}
}
