package memory

import "fmt"

// ByteMap is a sparse, address-keyed physical memory. It is the backend
// the transaction validator uses: a transaction's pre-state primes only
// the handful of addresses the logged step actually observed, so a
// dense array would be wasteful and a fixed size would be wrong.
type ByteMap struct {
	data map[uint64]uint8
}

// NewByteMap returns an empty ByteMap.
func NewByteMap() *ByteMap {
	return &ByteMap{data: make(map[uint64]uint8)}
}

// ReadByte panics if addr has never been written -- an unprimed read in
// the validator is a simulator/log-data bug, not an architectural
// fault.
func (b *ByteMap) ReadByte(addr uint64) uint8 {
	v, ok := b.data[addr]
	if !ok {
		panic(fmt.Sprintf("rv64sim: read from unmapped address 0x%x", addr))
	}
	return v
}

func (b *ByteMap) WriteByte(addr uint64, v uint8) {
	b.data[addr] = v
}

// Prime seeds an address with a value without requiring a prior write,
// used to set up a transaction's pre-state memory from its logged mems.
func (b *ByteMap) Prime(addr uint64, v uint8) {
	b.data[addr] = v
}

// Has reports whether addr currently has a value, used by the validator
// to check a post-step store was actually applied.
func (b *ByteMap) Has(addr uint64) bool {
	_, ok := b.data[addr]
	return ok
}

// Clear empties the map, letting a validator reuse one ByteMap across
// many transactions instead of allocating one per step.
func (b *ByteMap) Clear() {
	b.data = make(map[uint64]uint8)
}
