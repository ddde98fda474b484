package isa

import (
	"github.com/shanegibbs/risk5/cpu"
	"github.com/shanegibbs/risk5/decode"
)

// Load/store handlers (I/S groups). Address = rs1+imm in every case. A
// fault from the MMU is delivered via RaiseTrap and the handler returns
// without advancing pc.

func addr(c *cpu.CPU, i decode.Insn, imm int64) uint64 {
	return uint64(c.Regs.GetSigned(i.Rs1()) + imm)
}

func lb(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v, trap, ok := c.MMU.ReadByte(addr(c, i, i.ImmI()))
	if !ok {
		c.RaiseTrap(trap.Cause, trap.Tval)
		return
	}
	c.Regs.SetSigned(i.Rd(), int64(int8(v)))
	c.AdvancePC()
}

func lbu(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v, trap, ok := c.MMU.ReadByte(addr(c, i, i.ImmI()))
	if !ok {
		c.RaiseTrap(trap.Cause, trap.Tval)
		return
	}
	c.Regs.Set(i.Rd(), uint64(v))
	c.AdvancePC()
}

func lh(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v, trap, ok := c.MMU.ReadHalfword(addr(c, i, i.ImmI()))
	if !ok {
		c.RaiseTrap(trap.Cause, trap.Tval)
		return
	}
	c.Regs.SetSigned(i.Rd(), int64(int16(v)))
	c.AdvancePC()
}

func lhu(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v, trap, ok := c.MMU.ReadHalfword(addr(c, i, i.ImmI()))
	if !ok {
		c.RaiseTrap(trap.Cause, trap.Tval)
		return
	}
	c.Regs.Set(i.Rd(), uint64(v))
	c.AdvancePC()
}

func lw(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v, trap, ok := c.MMU.ReadWord(addr(c, i, i.ImmI()))
	if !ok {
		c.RaiseTrap(trap.Cause, trap.Tval)
		return
	}
	c.Regs.SetSigned(i.Rd(), int64(int32(v)))
	c.AdvancePC()
}

func lwu(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v, trap, ok := c.MMU.ReadWord(addr(c, i, i.ImmI()))
	if !ok {
		c.RaiseTrap(trap.Cause, trap.Tval)
		return
	}
	c.Regs.Set(i.Rd(), uint64(v))
	c.AdvancePC()
}

func ld(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v, trap, ok := c.MMU.ReadDoubleword(addr(c, i, i.ImmI()))
	if !ok {
		c.RaiseTrap(trap.Cause, trap.Tval)
		return
	}
	c.Regs.Set(i.Rd(), v)
	c.AdvancePC()
}

func sb(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	trap, ok := c.MMU.WriteByte(addr(c, i, i.ImmS()), uint8(c.Regs.Get(i.Rs2())))
	if !ok {
		c.RaiseTrap(trap.Cause, trap.Tval)
		return
	}
	c.AdvancePC()
}

func sh(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	trap, ok := c.MMU.WriteHalfword(addr(c, i, i.ImmS()), uint16(c.Regs.Get(i.Rs2())))
	if !ok {
		c.RaiseTrap(trap.Cause, trap.Tval)
		return
	}
	c.AdvancePC()
}

func sw(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	trap, ok := c.MMU.WriteWord(addr(c, i, i.ImmS()), uint32(c.Regs.Get(i.Rs2())))
	if !ok {
		c.RaiseTrap(trap.Cause, trap.Tval)
		return
	}
	c.AdvancePC()
}

func sd(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	trap, ok := c.MMU.WriteDoubleword(addr(c, i, i.ImmS()), c.Regs.Get(i.Rs2()))
	if !ok {
		c.RaiseTrap(trap.Cause, trap.Tval)
		return
	}
	c.AdvancePC()
}
