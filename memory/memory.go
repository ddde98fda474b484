// Package memory implements the byte-addressable physical store the
// MMU translates virtual addresses into. Multi-width accesses are
// little-endian and lowered to byte accesses; no alignment requirement
// is imposed beyond what an instruction's own semantics state.
//
// Two backends exist: ByteMap, a sparse map good for unit tests and the
// transaction validator (which primes only the addresses a logged
// transaction actually touched), and BlockStore, a dense bounds-checked
// region for an ELF image loaded into a running simulator.
package memory

// Memory is the physical-address-space contract the MMU reads/writes
// through once a virtual address has been translated (or, in bare mode,
// passed through unchanged). Unlike the MMU-facing API, Memory never
// faults architecturally: an access to an address neither backend has
// reserved is a simulator bug and panics rather than returning an
// error.
type Memory interface {
	ReadByte(addr uint64) uint8
	WriteByte(addr uint64, v uint8)
}

// ReadHalfword, ReadWord and ReadDoubleword lower a multi-byte read to
// little-endian byte accesses, so a backend only has to provide byte
// granularity.
func ReadHalfword(m Memory, addr uint64) uint16 {
	return uint16(m.ReadByte(addr)) | uint16(m.ReadByte(addr+1))<<8
}

func ReadWord(m Memory, addr uint64) uint32 {
	return uint32(m.ReadByte(addr)) |
		uint32(m.ReadByte(addr+1))<<8 |
		uint32(m.ReadByte(addr+2))<<16 |
		uint32(m.ReadByte(addr+3))<<24
}

func ReadDoubleword(m Memory, addr uint64) uint64 {
	return uint64(ReadWord(m, addr)) | uint64(ReadWord(m, addr+4))<<32
}

func WriteHalfword(m Memory, addr uint64, v uint16) {
	m.WriteByte(addr, uint8(v))
	m.WriteByte(addr+1, uint8(v>>8))
}

func WriteWord(m Memory, addr uint64, v uint32) {
	m.WriteByte(addr, uint8(v))
	m.WriteByte(addr+1, uint8(v>>8))
	m.WriteByte(addr+2, uint8(v>>16))
	m.WriteByte(addr+3, uint8(v>>24))
}

func WriteDoubleword(m Memory, addr uint64, v uint64) {
	WriteWord(m, addr, uint32(v))
	WriteWord(m, addr+4, uint32(v>>32))
}
