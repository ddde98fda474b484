package cpu

// NumRegs is the size of the RV64I general-purpose register file.
const NumRegs = 32

// Regs is the 32x64-bit general-purpose register file. x0 is hardwired
// to zero: reads always return 0 and writes are silently discarded,
// enforced at the accessor so callers never need to special-case it.
type Regs struct {
	x [NumRegs]uint64
}

// Get returns the unsigned value of register i (0-31).
func (r *Regs) Get(i uint32) uint64 {
	if i == 0 {
		return 0
	}
	return r.x[i]
}

// GetSigned returns the two's-complement signed view of register i.
func (r *Regs) GetSigned(i uint32) int64 {
	return int64(r.Get(i))
}

// Set writes val to register i. Writes to x0 are no-ops.
func (r *Regs) Set(i uint32, val uint64) {
	if i == 0 {
		return
	}
	r.x[i] = val
}

// SetSigned writes a signed value to register i.
func (r *Regs) SetSigned(i uint32, val int64) {
	r.Set(i, uint64(val))
}

// Reset clears every register, including the (already-zero) x0.
func (r *Regs) Reset() {
	for i := range r.x {
		r.x[i] = 0
	}
}

// Snapshot returns a copy of all 32 registers, used by the register trace
// and the transaction validator to diff pre/post state.
func (r *Regs) Snapshot() [NumRegs]uint64 {
	return r.x
}

// LoadSnapshot overwrites the register file from a snapshot, used by the
// transaction validator to rehydrate a CPU from a logged pre-state. x0 in
// the snapshot is ignored on write-back since it always reads as zero.
func (r *Regs) LoadSnapshot(snap [NumRegs]uint64) {
	r.x = snap
	r.x[0] = 0
}
