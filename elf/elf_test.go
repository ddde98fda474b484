package elf

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

const (
	elfClass64  = 2
	elfDataLE   = 1
	elfVersion1 = 1
	etExec      = 2
	emRISCV     = 243
	ptLoad      = 1
	pfExec      = 1
	pfRead      = 4
)

// buildELF assembles a minimal well-formed ELF64 image: one header, one
// PT_LOAD program header, and the given payload placed at vaddr. memsz
// lets a test ask for a segment larger than its file contents, exercising
// bss zero-fill.
func buildELF(t *testing.T, entry, vaddr uint64, payload []byte, memsz uint64) []byte {
	t.Helper()

	const (
		ehsize     = 64
		phentsize  = 56
		phoff      = ehsize
		dataOffset = phoff + phentsize
	)

	buf := make([]byte, dataOffset+len(payload))

	buf[0], buf[1], buf[2], buf[3] = 0x7f, 'E', 'L', 'F'
	buf[4] = elfClass64
	buf[5] = elfDataLE
	buf[6] = elfVersion1

	le := binary.LittleEndian
	le.PutUint16(buf[16:], etExec)
	le.PutUint16(buf[18:], emRISCV)
	le.PutUint32(buf[20:], elfVersion1)
	le.PutUint64(buf[24:], entry)
	le.PutUint64(buf[32:], phoff)
	le.PutUint64(buf[40:], 0) // no section headers
	le.PutUint32(buf[48:], 0)
	le.PutUint16(buf[52:], ehsize)
	le.PutUint16(buf[54:], phentsize)
	le.PutUint16(buf[56:], 1) // phnum
	le.PutUint16(buf[58:], 0)
	le.PutUint16(buf[60:], 0)
	le.PutUint16(buf[62:], 0)

	ph := buf[phoff:]
	le.PutUint32(ph[0:], ptLoad)
	le.PutUint32(ph[4:], pfExec|pfRead)
	le.PutUint64(ph[8:], dataOffset)
	le.PutUint64(ph[16:], vaddr)
	le.PutUint64(ph[24:], vaddr)
	le.PutUint64(ph[32:], uint64(len(payload)))
	le.PutUint64(ph[40:], memsz)
	le.PutUint64(ph[48:], 0x1000)

	copy(buf[dataOffset:], payload)
	return buf
}

func writeTempELF(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.elf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp elf: %v", err)
	}
	return path
}

func TestLoadCopiesSegmentAndZeroFillsBss(t *testing.T) {
	payload := []byte{0x93, 0x02, 0x30, 0x00} // addi x5, x0, 3
	data := buildELF(t, 0x1000, 0x1000, payload, 8)
	path := writeTempELF(t, data)

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if img.Entry != 0x1000 {
		t.Fatalf("entry = 0x%x, want 0x1000", img.Entry)
	}
	if img.Memory.Base() != 0x1000 {
		t.Fatalf("base = 0x%x, want 0x1000", img.Memory.Base())
	}
	if img.Memory.Size() != 8 {
		t.Fatalf("size = %d, want 8 (memsz)", img.Memory.Size())
	}

	for i, want := range payload {
		if got := img.Memory.ReadByte(0x1000 + uint64(i)); got != want {
			t.Fatalf("byte %d = 0x%x, want 0x%x", i, got, want)
		}
	}
	for i := len(payload); i < 8; i++ {
		if got := img.Memory.ReadByte(0x1000 + uint64(i)); got != 0 {
			t.Fatalf("bss byte %d = 0x%x, want 0", i, got)
		}
	}
}

func TestLoadRejectsNonRISCV(t *testing.T) {
	data := buildELF(t, 0x1000, 0x1000, []byte{0, 0, 0, 0}, 4)
	// Clobber e_machine to something else (EM_X86_64 = 62).
	binary.LittleEndian.PutUint16(data[18:], 62)
	path := writeTempELF(t, data)

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a non-RISC-V machine type")
	}
}

func TestLoadRejectsNoLoadSegments(t *testing.T) {
	data := buildELF(t, 0x1000, 0x1000, nil, 0)
	// Turn the lone PT_LOAD into PT_NULL so no segment survives filtering.
	binary.LittleEndian.PutUint32(data[64:], 0)
	path := writeTempELF(t, data)

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error when no PT_LOAD segments are present")
	}
}
