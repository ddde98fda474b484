package isa

import "github.com/shanegibbs/risk5/cpu"

// System-group handlers.

func ecall(c *cpu.CPU, w uint32) {
	c.RaiseTrap(cpu.EnvironmentCallCause(c.Prv()), 0)
}

func ebreak(c *cpu.CPU, w uint32) {
	c.RaiseTrap(cpu.IllegalInstruction().Cause, 0)
}

func mret(c *cpu.CPU, w uint32) {
	c.MRET()
}

func sret(c *cpu.CPU, w uint32) {
	c.SRET()
}

// wfi is a no-op: this simulator has no external interrupt sources to
// wait on.
func wfi(c *cpu.CPU, w uint32) {
	c.AdvancePC()
}

// fence and fence.i are no-ops: there is exactly one hart and no
// speculative reordering to order against.
func fence(c *cpu.CPU, w uint32) {
	c.AdvancePC()
}

// sfenceVMA would flush the MMU's translation cache; this simulator has
// none (every translation is a fresh page-table walk), so it is a no-op
// beyond advancing pc.
func sfenceVMA(c *cpu.CPU, w uint32) {
	c.AdvancePC()
}

// illegal is the catch-all fallback for any encoding this simulator
// does not implement -- floating-point, atomics, compressed forms. It
// raises an illegal-instruction trap carrying the offending word as
// tval, which the validator and any real guest both expect.
func illegal(c *cpu.CPU, w uint32) {
	c.RaiseTrap(cpu.CauseIllegalInstruction, uint64(w))
}
