package isa

import (
	"github.com/shanegibbs/risk5/cpu"
	"github.com/shanegibbs/risk5/decode"
)

// CSR handlers. Each reads the CSR (which may trap illegal), writes rd
// with the old value, then writes the CSR with a function of the old
// value and (rs1 or zero-extended imm): rw overwrites, rs ors, rc
// clears. For the set/clear forms, when the source operand is zero
// (rs1=x0 for the register forms, imm=0 for the immediate forms) the
// write is suppressed -- only the read's rd side effect is visible.

func csrReadOrTrap(c *cpu.CPU, addr uint32) (uint64, bool) {
	v, trap, ok := c.GetCSR(addr)
	if !ok {
		c.RaiseTrap(trap.Cause, trap.Tval)
		return 0, false
	}
	return v, true
}

func csrrw(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	old, ok := csrReadOrTrap(c, i.Csr())
	if !ok {
		return
	}
	c.SetCSR(i.Csr(), c.Regs.Get(i.Rs1()))
	c.Regs.Set(i.Rd(), old)
	c.AdvancePC()
}

func csrrs(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	old, ok := csrReadOrTrap(c, i.Csr())
	if !ok {
		return
	}
	if i.Rs1() != 0 {
		c.SetCSR(i.Csr(), old|c.Regs.Get(i.Rs1()))
	}
	c.Regs.Set(i.Rd(), old)
	c.AdvancePC()
}

func csrrc(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	old, ok := csrReadOrTrap(c, i.Csr())
	if !ok {
		return
	}
	if i.Rs1() != 0 {
		c.SetCSR(i.Csr(), old&^c.Regs.Get(i.Rs1()))
	}
	c.Regs.Set(i.Rd(), old)
	c.AdvancePC()
}

func csrrwi(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	old, ok := csrReadOrTrap(c, i.Csr())
	if !ok {
		return
	}
	c.SetCSR(i.Csr(), uint64(i.Rs1()))
	c.Regs.Set(i.Rd(), old)
	c.AdvancePC()
}

func csrrsi(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	old, ok := csrReadOrTrap(c, i.Csr())
	if !ok {
		return
	}
	if i.Rs1() != 0 {
		c.SetCSR(i.Csr(), old|uint64(i.Rs1()))
	}
	c.Regs.Set(i.Rd(), old)
	c.AdvancePC()
}

func csrrci(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	old, ok := csrReadOrTrap(c, i.Csr())
	if !ok {
		return
	}
	if i.Rs1() != 0 {
		c.SetCSR(i.Csr(), old&^uint64(i.Rs1()))
	}
	c.Regs.Set(i.Rd(), old)
	c.AdvancePC()
}
