package isa

import (
	"github.com/shanegibbs/risk5/cpu"
	"github.com/shanegibbs/risk5/decode"
)

// Integer compute handlers (I/R groups). Signed arithmetic is ordinary
// Go two's-complement int64 math, which wraps on overflow rather than
// panicking, as the ISA requires.

func addi(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	c.Regs.SetSigned(i.Rd(), c.Regs.GetSigned(i.Rs1())+i.ImmI())
	c.AdvancePC()
}

func slti(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v := int64(0)
	if c.Regs.GetSigned(i.Rs1()) < i.ImmI() {
		v = 1
	}
	c.Regs.SetSigned(i.Rd(), v)
	c.AdvancePC()
}

func sltiu(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v := uint64(0)
	if c.Regs.Get(i.Rs1()) < uint64(i.ImmI()) {
		v = 1
	}
	c.Regs.Set(i.Rd(), v)
	c.AdvancePC()
}

func xori(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	c.Regs.Set(i.Rd(), c.Regs.Get(i.Rs1())^uint64(i.ImmI()))
	c.AdvancePC()
}

func ori(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	c.Regs.Set(i.Rd(), c.Regs.Get(i.Rs1())|uint64(i.ImmI()))
	c.AdvancePC()
}

func andi(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	c.Regs.Set(i.Rd(), c.Regs.Get(i.Rs1())&uint64(i.ImmI()))
	c.AdvancePC()
}

func slli(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	c.Regs.Set(i.Rd(), c.Regs.Get(i.Rs1())<<i.Shamt64())
	c.AdvancePC()
}

func srli(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	c.Regs.Set(i.Rd(), c.Regs.Get(i.Rs1())>>i.Shamt64())
	c.AdvancePC()
}

func srai(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	c.Regs.SetSigned(i.Rd(), c.Regs.GetSigned(i.Rs1())>>i.Shamt64())
	c.AdvancePC()
}

func add(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	c.Regs.Set(i.Rd(), c.Regs.Get(i.Rs1())+c.Regs.Get(i.Rs2()))
	c.AdvancePC()
}

func sub(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	c.Regs.Set(i.Rd(), c.Regs.Get(i.Rs1())-c.Regs.Get(i.Rs2()))
	c.AdvancePC()
}

func sll(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	shamt := c.Regs.Get(i.Rs2()) & 0x3f
	c.Regs.Set(i.Rd(), c.Regs.Get(i.Rs1())<<shamt)
	c.AdvancePC()
}

func slt(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v := int64(0)
	if c.Regs.GetSigned(i.Rs1()) < c.Regs.GetSigned(i.Rs2()) {
		v = 1
	}
	c.Regs.SetSigned(i.Rd(), v)
	c.AdvancePC()
}

func sltu(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v := uint64(0)
	if c.Regs.Get(i.Rs1()) < c.Regs.Get(i.Rs2()) {
		v = 1
	}
	c.Regs.Set(i.Rd(), v)
	c.AdvancePC()
}

func xorReg(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	c.Regs.Set(i.Rd(), c.Regs.Get(i.Rs1())^c.Regs.Get(i.Rs2()))
	c.AdvancePC()
}

func srl(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	shamt := c.Regs.Get(i.Rs2()) & 0x3f
	c.Regs.Set(i.Rd(), c.Regs.Get(i.Rs1())>>shamt)
	c.AdvancePC()
}

func sra(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	shamt := c.Regs.Get(i.Rs2()) & 0x3f
	c.Regs.SetSigned(i.Rd(), c.Regs.GetSigned(i.Rs1())>>shamt)
	c.AdvancePC()
}

func orReg(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	c.Regs.Set(i.Rd(), c.Regs.Get(i.Rs1())|c.Regs.Get(i.Rs2()))
	c.AdvancePC()
}

func andReg(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	c.Regs.Set(i.Rd(), c.Regs.Get(i.Rs1())&c.Regs.Get(i.Rs2()))
	c.AdvancePC()
}

// *w variants: operate on the low 32 bits, sign-extend the result to 64
// before writing back.

func addiw(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v := int32(c.Regs.Get(i.Rs1())) + int32(i.ImmI())
	c.Regs.SetSigned(i.Rd(), int64(v))
	c.AdvancePC()
}

func slliw(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v := int32(uint32(c.Regs.Get(i.Rs1())) << i.Shamt32())
	c.Regs.SetSigned(i.Rd(), int64(v))
	c.AdvancePC()
}

func srliw(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v := int32(uint32(c.Regs.Get(i.Rs1())) >> i.Shamt32())
	c.Regs.SetSigned(i.Rd(), int64(v))
	c.AdvancePC()
}

func sraiw(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v := int32(c.Regs.Get(i.Rs1())) >> i.Shamt32()
	c.Regs.SetSigned(i.Rd(), int64(v))
	c.AdvancePC()
}

func addw(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v := int32(c.Regs.Get(i.Rs1())) + int32(c.Regs.Get(i.Rs2()))
	c.Regs.SetSigned(i.Rd(), int64(v))
	c.AdvancePC()
}

func subw(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	v := int32(c.Regs.Get(i.Rs1())) - int32(c.Regs.Get(i.Rs2()))
	c.Regs.SetSigned(i.Rd(), int64(v))
	c.AdvancePC()
}

func sllw(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	shamt := c.Regs.Get(i.Rs2()) & 0x1f
	v := int32(uint32(c.Regs.Get(i.Rs1())) << shamt)
	c.Regs.SetSigned(i.Rd(), int64(v))
	c.AdvancePC()
}

func srlw(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	shamt := c.Regs.Get(i.Rs2()) & 0x1f
	v := int32(uint32(c.Regs.Get(i.Rs1())) >> shamt)
	c.Regs.SetSigned(i.Rd(), int64(v))
	c.AdvancePC()
}

func sraw(c *cpu.CPU, w uint32) {
	i := decode.Insn(w)
	shamt := c.Regs.Get(i.Rs2()) & 0x1f
	v := int32(c.Regs.Get(i.Rs1())) >> shamt
	c.Regs.SetSigned(i.Rd(), int64(v))
	c.AdvancePC()
}
