package isa

import (
	"github.com/shanegibbs/risk5/cpu"
	"github.com/shanegibbs/risk5/decode"
)

// J-type and JALR handlers.

func jal(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	link := c.PC + 4
	c.PC = uint64(int64(c.PC) + i.ImmJ())
	c.Regs.Set(i.Rd(), link)
}

func jalr(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	link := c.PC + 4
	target := uint64(c.Regs.GetSigned(i.Rs1())+i.ImmI()) &^ 1
	c.PC = target
	c.Regs.Set(i.Rd(), link)
}
