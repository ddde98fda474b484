package cpu

// sstatusMask selects the bits of mstatus that are visible/writable
// through the SSTATUS CSR view: SIE, SPIE, SPP, UXL, plus the FS/XS
// extension-state fields that are shared between M and S views.
const sstatusMask = uint64(1<<1) | uint64(1<<5) | uint64(1<<8) |
	uint64(0x3<<13) | uint64(0x3<<15) | uint64(0x3<<32)

// Mstatus wraps mstatus's bit layout: per-mode interrupt-enable bits,
// per-mode prior-interrupt-enable bits, previous-privilege fields, and
// the fixed 64-bit xlen fields. Field offsets are taken directly from
// the RISC-V privileged spec's mstatus layout.
type Mstatus struct {
	bits Bitfield
}

// NewMstatus returns an mstatus with SXL/UXL fixed at 2 (64-bit), as
// required unconditionally by the architecture.
func NewMstatus() Mstatus {
	var m Mstatus
	m.SetSupervisorXLEN(2)
	m.SetUserXLEN(2)
	return m
}

// MstatusFromUint64 rebuilds an Mstatus from a raw register value, always
// re-pinning SXL/UXL to 2 the way a write to mstatus does.
func MstatusFromUint64(v uint64) Mstatus {
	m := Mstatus{bits: Bitfield(v)}
	m.SetSupervisorXLEN(2)
	m.SetUserXLEN(2)
	return m
}

// Val returns the raw mstatus value as seen from M-mode.
func (m Mstatus) Val() uint64 { return m.bits.Val() }

// ValForPrivilege returns the value seen when reading mstatus (M-mode, full
// view) or sstatus (S/U-mode, masked view).
func (m Mstatus) ValForPrivilege(prv uint64) uint64 {
	if prv == PrivMachine {
		return m.Val()
	}
	return m.Val() & sstatusMask
}

// SetFromSstatusWrite updates only the S-visible subset of mstatus,
// leaving M-only bits (MIE, MPIE, MPP, and anything outside the mask)
// untouched.
func (m *Mstatus) SetFromSstatusWrite(v uint64) {
	m.bits = Bitfield((m.bits.Val() &^ sstatusMask) | (v & sstatusMask))
	// UXL sits inside the S-visible window but is still pinned to 64-bit.
	m.SetUserXLEN(2)
}

func (m Mstatus) MachineInterruptEnabled() uint64     { return m.bits.Field(3, 1) }
func (m *Mstatus) SetMachineInterruptEnabled(v uint64) { m.bits.SetBool(3, v != 0) }

func (m Mstatus) SupervisorInterruptEnabled() uint64     { return m.bits.Field(1, 1) }
func (m *Mstatus) SetSupervisorInterruptEnabled(v uint64) { m.bits.SetBool(1, v != 0) }

func (m Mstatus) MachinePriorInterruptEnabled() uint64     { return m.bits.Field(7, 1) }
func (m *Mstatus) SetMachinePriorInterruptEnabled(v uint64) { m.bits.SetBool(7, v != 0) }

func (m *Mstatus) MoveMachineInterruptEnabledToPrior() {
	m.SetMachinePriorInterruptEnabled(m.MachineInterruptEnabled())
}

func (m Mstatus) SupervisorPriorInterruptEnabled() uint64 { return m.bits.Field(5, 1) }
func (m *Mstatus) SetSupervisorPriorInterruptEnabled(v uint64) {
	m.bits.SetBool(5, v != 0)
}

func (m *Mstatus) MoveSupervisorInterruptEnabledToPrior() {
	m.SetSupervisorPriorInterruptEnabled(m.SupervisorInterruptEnabled())
}

func (m Mstatus) MachinePreviousPrivilege() uint64     { return m.bits.Field(11, 2) }
func (m *Mstatus) SetMachinePreviousPrivilege(v uint64) { m.bits.SetField(11, 2, v) }

func (m Mstatus) SupervisorPreviousPrivilege() uint64     { return m.bits.Field(8, 1) }
func (m *Mstatus) SetSupervisorPreviousPrivilege(v uint64) { m.bits.SetField(8, 1, v) }

func (m Mstatus) SupervisorXLEN() uint64     { return m.bits.Field(34, 2) }
func (m *Mstatus) SetSupervisorXLEN(v uint64) { m.bits.SetField(34, 2, v) }

func (m Mstatus) UserXLEN() uint64     { return m.bits.Field(32, 2) }
func (m *Mstatus) SetUserXLEN(v uint64) { m.bits.SetField(32, 2, v) }
