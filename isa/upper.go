package isa

import (
	"github.com/shanegibbs/risk5/cpu"
	"github.com/shanegibbs/risk5/decode"
)

// U-type handlers.

func lui(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	c.Regs.SetSigned(i.Rd(), i.ImmU())
	c.AdvancePC()
}

func auipc(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	c.Regs.SetSigned(i.Rd(), int64(c.PC)+i.ImmU())
	c.AdvancePC()
}
