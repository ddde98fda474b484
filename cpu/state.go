package cpu

import "strconv"

// State is a flattened, fully-exported snapshot of every field the
// transaction validator must restore or diff: pc, prv, all CSRs, and
// all 32 x-registers.
type State struct {
	PC  uint64
	Prv uint64

	Mstatus    uint64
	Medeleg    uint64
	Mideleg    uint64
	Mtvec      uint64
	Mepc       uint64
	Mtval      uint64
	Mcause     uint64
	Mscratch   uint64
	Misa       uint64
	Mcounteren uint64
	Mie        uint64
	Mip        uint64

	Sedeleg    uint64
	Sideleg    uint64
	Sie        uint64
	Stvec      uint64
	Scounteren uint64
	Sscratch   uint64
	Sepc       uint64
	Scause     uint64
	Stval      uint64
	Sip        uint64
	Satp       uint64

	XRegs [NumRegs]uint64
}

// Snapshot captures the CPU's full architectural state.
func (c *CPU) Snapshot() State {
	return State{
		PC:  c.PC,
		Prv: c.CSRs.prv,

		Mstatus:    c.CSRs.mstatus.Val(),
		Medeleg:    c.CSRs.medeleg,
		Mideleg:    c.CSRs.mideleg,
		Mtvec:      c.CSRs.mtvec,
		Mepc:       c.CSRs.mepc,
		Mtval:      c.CSRs.mtval,
		Mcause:     c.CSRs.mcause,
		Mscratch:   c.CSRs.mscratch,
		Misa:       c.CSRs.misa,
		Mcounteren: c.CSRs.mcounteren,
		Mie:        c.CSRs.mie,
		Mip:        c.CSRs.mip,

		Sedeleg:    c.CSRs.sedeleg,
		Sideleg:    c.CSRs.sideleg,
		Sie:        c.CSRs.sie,
		Stvec:      c.CSRs.stvec,
		Scounteren: c.CSRs.scounteren,
		Sscratch:   c.CSRs.sscratch,
		Sepc:       c.CSRs.sepc,
		Scause:     c.CSRs.scause,
		Stval:      c.CSRs.stval,
		Sip:        c.CSRs.sip,
		Satp:       c.CSRs.satp.Val(),

		XRegs: c.Regs.Snapshot(),
	}
}

// Restore rebuilds a CPU's architectural state from a snapshot, then
// reconfigures the MMU to match (privilege and translation mode). The
// caller is responsible for constructing the CPU over an already-primed
// memory before calling this.
func (c *CPU) Restore(s State) {
	c.PC = s.PC
	c.CSRs = Csrs{
		prv:        s.Prv,
		mstatus:    MstatusFromUint64(s.Mstatus),
		medeleg:    s.Medeleg,
		mideleg:    s.Mideleg,
		mtvec:      s.Mtvec,
		mepc:       s.Mepc,
		mtval:      s.Mtval,
		mcause:     s.Mcause,
		mscratch:   s.Mscratch,
		misa:       s.Misa,
		mcounteren: s.Mcounteren,
		mie:        s.Mie,
		mip:        s.Mip,
		sedeleg:    s.Sedeleg,
		sideleg:    s.Sideleg,
		sie:        s.Sie,
		stvec:      s.Stvec,
		scounteren: s.Scounteren,
		sscratch:   s.Sscratch,
		sepc:       s.Sepc,
		scause:     s.Scause,
		stval:      s.Stval,
		sip:        s.Sip,
		satp:       SatpFromUint64(s.Satp),
	}
	c.Regs.LoadSnapshot(s.XRegs)

	satp := c.CSRs.satp
	if satp.Mode() == SatpModeSv39 {
		c.MMU.SetPageMode(satp.ASID(), satp.PPN())
	} else {
		c.MMU.SetBareMode()
	}
	c.MMU.SetPrivilege(c.CSRs.prv, c.CSRs.mstatus)
}

// Diff reports every field that differs between two states, in
// (field name, want, got) triples, for the validator's per-field
// mismatch report.
type Diff struct {
	Field     string
	Want, Got uint64
}

func (s State) Diff(other State) []Diff {
	var diffs []Diff
	add := func(field string, want, got uint64) {
		if want != got {
			diffs = append(diffs, Diff{Field: field, Want: want, Got: got})
		}
	}

	add("pc", s.PC, other.PC)
	add("prv", s.Prv, other.Prv)
	add("mstatus", s.Mstatus, other.Mstatus)
	add("medeleg", s.Medeleg, other.Medeleg)
	add("mideleg", s.Mideleg, other.Mideleg)
	add("mtvec", s.Mtvec, other.Mtvec)
	add("mepc", s.Mepc, other.Mepc)
	add("mtval", s.Mtval, other.Mtval)
	add("mcause", s.Mcause, other.Mcause)
	add("mscratch", s.Mscratch, other.Mscratch)
	add("misa", s.Misa, other.Misa)
	add("mcounteren", s.Mcounteren, other.Mcounteren)
	add("mie", s.Mie, other.Mie)
	add("mip", s.Mip, other.Mip)
	add("sedeleg", s.Sedeleg, other.Sedeleg)
	add("sideleg", s.Sideleg, other.Sideleg)
	add("sie", s.Sie, other.Sie)
	add("stvec", s.Stvec, other.Stvec)
	add("scounteren", s.Scounteren, other.Scounteren)
	add("sscratch", s.Sscratch, other.Sscratch)
	add("sepc", s.Sepc, other.Sepc)
	add("scause", s.Scause, other.Scause)
	add("stval", s.Stval, other.Stval)
	add("sip", s.Sip, other.Sip)
	add("satp", s.Satp, other.Satp)

	for i := range s.XRegs {
		if i == 0 {
			continue // x0 is always zero, diffing it is noise
		}
		addXReg(&diffs, i, s.XRegs[i], other.XRegs[i])
	}

	return diffs
}

func addXReg(diffs *[]Diff, i int, want, got uint64) {
	if want != got {
		*diffs = append(*diffs, Diff{Field: xregName(i), Want: want, Got: got})
	}
}

func xregName(i int) string {
	return "x" + strconv.Itoa(i)
}
