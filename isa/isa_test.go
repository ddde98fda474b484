package isa

import (
	"testing"

	"github.com/shanegibbs/risk5/cpu"
	"github.com/shanegibbs/risk5/memory"
	"github.com/shanegibbs/risk5/mmu"
)

func newTestCPU() *cpu.CPU {
	m := mmu.New(memory.NewByteMap())
	c := cpu.NewCPU(m)
	m.SetPrivilege(c.Prv(), c.CSRs.Mstatus())
	return c
}

func step(c *cpu.CPU, insn uint32) {
	Default().Find(insn)(c, insn)
}

// Default() builds a fresh table+cache per call in these tests, which is
// fine for correctness (the cache is purely a lookup optimization); a
// long-running simulator reuses one Matchers across its whole run.

func encodeI(opcode, funct3, rd, rs1 uint32, imm int32) uint32 {
	return uint32(imm)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

// Scenario 1: addi x5, x0, 3 at pc=0x1000 -> x5=3, pc=0x1004.
func TestScenarioAddi(t *testing.T) {
	c := newTestCPU()
	c.PC = 0x1000
	step(c, encodeI(0x13, 0, 5, 0, 3))
	if c.Regs.Get(5) != 3 {
		t.Fatalf("expected x5=3, got %d", c.Regs.Get(5))
	}
	if c.PC != 0x1004 {
		t.Fatalf("expected pc=0x1004, got 0x%x", c.PC)
	}
}

// Scenario 2: lui x10, 0x12345 at pc=0x80000000 -> x10=0x12345000, pc+4.
func TestScenarioLui(t *testing.T) {
	c := newTestCPU()
	c.PC = 0x80000000
	insn := uint32(0x12345)<<12 | 10<<7 | 0x37
	step(c, insn)
	if c.Regs.Get(10) != 0x12345000 {
		t.Fatalf("expected x10=0x12345000, got 0x%x", c.Regs.Get(10))
	}
	if c.PC != 0x80000004 {
		t.Fatalf("expected pc=0x80000004, got 0x%x", c.PC)
	}
}

// Scenario 3: jal x1, +0x20 at pc=0x2000 -> x1=0x2004, pc=0x2020.
func TestScenarioJal(t *testing.T) {
	c := newTestCPU()
	c.PC = 0x2000
	const imm = 0x20
	insn := uint32(0)
	insn |= uint32((imm>>20)&0x1) << 31
	insn |= uint32((imm>>12)&0xff) << 12
	insn |= uint32((imm>>11)&0x1) << 20
	insn |= uint32((imm>>1)&0x3ff) << 21
	insn |= 1 << 7
	insn |= 0x6f
	step(c, insn)
	if c.Regs.Get(1) != 0x2004 {
		t.Fatalf("expected x1=0x2004, got 0x%x", c.Regs.Get(1))
	}
	if c.PC != 0x2020 {
		t.Fatalf("expected pc=0x2020, got 0x%x", c.PC)
	}
}

// Scenario 4: bne x1, x2, +8 with x1=1, x2=1, pc=0x100 -> pc=0x104 (not taken).
func TestScenarioBneNotTaken(t *testing.T) {
	c := newTestCPU()
	c.PC = 0x100
	c.Regs.Set(1, 1)
	c.Regs.Set(2, 1)
	const imm = 8
	insn := uint32(0)
	insn |= uint32((imm>>12)&0x1) << 31
	insn |= uint32((imm>>5)&0x3f) << 25
	insn |= 2 << 20
	insn |= 1 << 15
	insn |= 1 << 12
	insn |= uint32((imm>>1)&0xf) << 8
	insn |= uint32((imm>>11)&0x1) << 7
	insn |= 0x63
	step(c, insn)
	if c.PC != 0x104 {
		t.Fatalf("expected pc=0x104 (not taken), got 0x%x", c.PC)
	}
}

// Scenario 5: csrrw x0, mtvec, x5 with x5=0x80001000 -> mtvec=0x80001000, x0 unchanged.
func TestScenarioCsrrw(t *testing.T) {
	c := newTestCPU()
	c.Regs.Set(5, 0x80001000)
	const mtvec = 0x305
	insn := mtvec<<20 | 5<<15 | 1<<12 | 0<<7 | 0x73
	step(c, uint32(insn))
	got, _, ok := c.GetCSR(mtvec)
	if !ok || got != 0x80001000 {
		t.Fatalf("expected mtvec=0x80001000, got 0x%x ok=%v", got, ok)
	}
	if c.Regs.Get(0) != 0 {
		t.Fatalf("expected x0 unchanged (0), got %d", c.Regs.Get(0))
	}
}

// Scenario 6: ecall at prv=3, mtvec=0x80000040, pc=0x3000 -> mcause=11,
// mepc=0x3000, MPP=3, MIE=0, pc=0x80000040.
func TestScenarioEcall(t *testing.T) {
	c := newTestCPU()
	c.PC = 0x3000
	c.SetCSR(0x305, 0x80000040) // mtvec
	step(c, 0x00000073)        // ecall

	if got, _, _ := c.GetCSR(0x342); got != 11 { // mcause
		t.Fatalf("expected mcause=11, got %d", got)
	}
	if got, _, _ := c.GetCSR(0x341); got != 0x3000 { // mepc
		t.Fatalf("expected mepc=0x3000, got 0x%x", got)
	}
	if c.PC != 0x80000040 {
		t.Fatalf("expected pc=0x80000040, got 0x%x", c.PC)
	}
	mstatus, _, _ := c.GetCSR(0x300)
	mpp := (mstatus >> 11) & 0x3
	mie := (mstatus >> 3) & 0x1
	if mpp != 3 {
		t.Fatalf("expected MPP=3, got %d", mpp)
	}
	if mie != 0 {
		t.Fatalf("expected MIE=0, got %d", mie)
	}
}

// Scenario 7: mret after scenario 6, with MPIE=1 -> prv=3, pc=0x3000, MIE=1.
func TestScenarioMret(t *testing.T) {
	c := newTestCPU()
	c.PC = 0x3000
	c.SetCSR(0x305, 0x80000040)
	c.SetCSR(0x300, 1<<3) // mstatus.MIE=1 before the trap, so MPIE=1 after
	step(c, 0x00000073)   // ecall

	step(c, 0x30200073) // mret

	if c.PC != 0x3000 {
		t.Fatalf("expected pc=0x3000, got 0x%x", c.PC)
	}
	if c.Prv() != cpu.PrivMachine {
		t.Fatalf("expected prv=M, got %d", c.Prv())
	}
	mstatus, _, _ := c.GetCSR(0x300)
	if (mstatus>>3)&0x1 != 1 {
		t.Fatalf("expected MIE=1 after mret")
	}
}
