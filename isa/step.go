package isa

import "github.com/shanegibbs/risk5/cpu"

// Step fetches the instruction at c.PC through the MMU, dispatches it
// via m, and runs its handler: fetch, then handler body, then pc
// update. A fetch fault is delivered as a trap and the step ends
// there.
func Step(c *cpu.CPU, m *Matchers) {
	c.Cycles++
	insn, trap, ok := c.MMU.ReadInsn(c.PC)
	if !ok {
		c.RaiseTrap(trap.Cause, trap.Tval)
		return
	}
	m.Find(insn)(c, insn)
}
