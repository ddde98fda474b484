package cpu

// Privilege levels, as encoded in mstatus.MPP and friends.
const (
	PrivUser       = 0
	PrivSupervisor = 1
	PrivMachine    = 3
)

// Exception causes this simulator raises, per the privileged spec's
// mcause table.
const (
	CauseIllegalInstruction  = 2
	CauseInstructionPageFault = 12
	CauseLoadPageFault        = 13
	CauseStorePageFault       = 15
)

// EnvironmentCallCause returns the ecall cause code for the given
// privilege level: 8 (U), 9 (S), 11 (M).
func EnvironmentCallCause(prv uint64) uint64 {
	switch prv {
	case PrivUser:
		return 8
	case PrivSupervisor:
		return 9
	default:
		return 11
	}
}

// Trap is an architectural fault: an expected, recoverable signal, not a
// Go error. Handlers that produce one hand it to (*CPU).RaiseTrap and
// return without advancing pc.
type Trap struct {
	Cause uint64
	Tval  uint64
}

// IllegalInstruction builds the Trap CSR accesses raise when addressed
// to an unknown or privilege-disallowed register.
func IllegalInstruction() Trap {
	return Trap{Cause: CauseIllegalInstruction, Tval: 0}
}

// RaiseTrap delivers (cause, tval): to supervisor mode if prv <= 1 and
// medeleg delegates the cause, otherwise to machine mode. No pc
// increment follows -- the written pc is the next fetch address.
func (c *CPU) RaiseTrap(cause, tval uint64) {
	prv := c.CSRs.prv
	delegated := c.CSRs.medeleg>>cause&1 == 1

	if prv <= PrivSupervisor && delegated {
		pc := c.PC
		c.CSRs.scause = cause
		c.CSRs.sepc = pc
		c.CSRs.stval = tval

		c.CSRs.mstatus.MoveSupervisorInterruptEnabledToPrior()
		c.CSRs.mstatus.SetSupervisorInterruptEnabled(0)
		c.CSRs.mstatus.SetSupervisorPreviousPrivilege(prv)

		if c.CSRs.stvec&0x3 != 0 {
			panic("rv64sim: unsupported stvec mode")
		}

		c.setPrv(PrivSupervisor)
		c.PC = c.CSRs.stvec &^ 0x3
		return
	}

	c.CSRs.mcause = cause
	c.CSRs.mtval = tval
	c.CSRs.mepc = c.PC

	// mtvec mode lives in the low 2 bits; only direct (mode 0) is
	// supported, and the mode bits are masked out of the vector.
	if c.CSRs.mtvec&0x3 != 0 {
		panic("rv64sim: unsupported mtvec mode")
	}

	pprv := c.CSRs.prv
	c.CSRs.mstatus.MoveMachineInterruptEnabledToPrior()
	c.CSRs.mstatus.SetMachineInterruptEnabled(0)
	c.CSRs.mstatus.SetMachinePreviousPrivilege(pprv)

	c.setPrv(PrivMachine)
	c.PC = c.CSRs.mtvec &^ 0x3
}

// MRET restores pc/prv/MIE from the machine trap context.
func (c *CPU) MRET() {
	pprv := c.CSRs.mstatus.MachinePreviousPrivilege()
	pie := c.CSRs.mstatus.MachinePriorInterruptEnabled()
	epc := c.CSRs.mepc

	c.CSRs.mstatus.SetMachineInterruptEnabled(pie)
	c.CSRs.mstatus.SetMachinePriorInterruptEnabled(1)
	c.CSRs.mstatus.SetMachinePreviousPrivilege(PrivUser)

	c.setPrv(pprv)
	c.PC = epc
}

// SRET restores pc/prv/SIE from the supervisor trap context, the
// supervisor-mode mirror of MRET.
func (c *CPU) SRET() {
	pprv := c.CSRs.mstatus.SupervisorPreviousPrivilege()
	pie := c.CSRs.mstatus.SupervisorPriorInterruptEnabled()
	epc := c.CSRs.sepc

	c.CSRs.mstatus.SetSupervisorInterruptEnabled(pie)
	c.CSRs.mstatus.SetSupervisorPriorInterruptEnabled(1)
	c.CSRs.mstatus.SetSupervisorPreviousPrivilege(0)

	c.setPrv(pprv)
	c.PC = epc
}
