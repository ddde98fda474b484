package isa

import (
	"github.com/shanegibbs/risk5/cpu"
	"github.com/shanegibbs/risk5/decode"
)

// Branch handlers (B-type). On taken, pc advances by the branch
// immediate; otherwise pc += 4 like any other non-control-flow
// instruction. blt/bge compare signed; bltu/bgeu compare unsigned.

func branchIf(c *cpu.CPU, w uint32, taken bool) {
	i := decode.Insn(w)
	if taken {
		c.PC = uint64(int64(c.PC) + i.ImmB())
		return
	}
	c.AdvancePC()
}

func beq(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	branchIf(c, w, c.Regs.Get(i.Rs1()) == c.Regs.Get(i.Rs2()))
}

func bne(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	branchIf(c, w, c.Regs.Get(i.Rs1()) != c.Regs.Get(i.Rs2()))
}

func blt(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	branchIf(c, w, c.Regs.GetSigned(i.Rs1()) < c.Regs.GetSigned(i.Rs2()))
}

func bge(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	branchIf(c, w, c.Regs.GetSigned(i.Rs1()) >= c.Regs.GetSigned(i.Rs2()))
}

func bltu(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	branchIf(c, w, c.Regs.Get(i.Rs1()) < c.Regs.Get(i.Rs2()))
}

func bgeu(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	branchIf(c, w, c.Regs.Get(i.Rs1()) >= c.Regs.Get(i.Rs2()))
}
