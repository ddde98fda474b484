package cpu

// Satp mode values, per the RISC-V privileged spec.
const (
	SatpModeBare = 0
	SatpModeSv39 = 8
)

// Satp wraps the satp CSR's PPN/ASID/MODE packing.
type Satp struct {
	bits Bitfield
}

// SatpFromUint64 decodes a raw satp write.
func SatpFromUint64(v uint64) Satp {
	return Satp{bits: Bitfield(v)}
}

func (s Satp) Val() uint64 { return s.bits.Val() }

func (s Satp) PPN() uint64  { return s.bits.Field(0, 44) }
func (s Satp) ASID() uint64 { return s.bits.Field(44, 16) }
func (s Satp) Mode() uint64 { return s.bits.Field(60, 4) }
