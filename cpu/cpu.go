package cpu

// MMU is the subset of the memory-management unit the CPU needs in order
// to fetch instructions, perform loads/stores, and keep translation mode
// in sync with satp/mstatus writes. Concrete implementations live in the
// mmu package; this interface exists so cpu does not import mmu (mmu
// imports cpu for Mstatus/Trap instead), avoiding an import cycle while
// keeping the CPU-owns-MMU ownership direction.
type MMU interface {
	ReadInsn(va uint64) (uint32, Trap, bool)
	ReadByte(va uint64) (uint8, Trap, bool)
	ReadHalfword(va uint64) (uint16, Trap, bool)
	ReadWord(va uint64) (uint32, Trap, bool)
	ReadDoubleword(va uint64) (uint64, Trap, bool)
	WriteByte(va uint64, v uint8) (Trap, bool)
	WriteHalfword(va uint64, v uint16) (Trap, bool)
	WriteWord(va uint64, v uint32) (Trap, bool)
	WriteDoubleword(va uint64, v uint64) (Trap, bool)
	SetBareMode()
	SetPageMode(asid, ppn uint64)
	SetPrivilege(prv uint64, mstatus Mstatus)
}

// CPU holds the architectural state of one hart: registers, CSRs, pc, and
// the MMU it drives reads/writes through. It owns the register file and
// CSR file directly and the MMU via interface.
type CPU struct {
	Regs   Regs
	CSRs   Csrs
	PC     uint64
	MMU    MMU
	Cycles uint64
}

// NewCPU constructs a CPU at its reset state: pc=0x1000, prv=M, misa
// fixed, mstatus with SXL=UXL=2.
func NewCPU(mmu MMU) *CPU {
	c := &CPU{
		CSRs: NewCsrs(),
		PC:   0x1000,
		MMU:  mmu,
	}
	c.MMU.SetPrivilege(c.CSRs.prv, c.CSRs.mstatus)
	return c
}

func (c *CPU) setPrv(prv uint64) {
	c.CSRs.prv = prv
	c.MMU.SetPrivilege(prv, c.CSRs.mstatus)
}

// Prv returns the current privilege level.
func (c *CPU) Prv() uint64 { return c.CSRs.prv }

// GetCSR reads a CSR, returning ok=false (and a Trap) if it is unknown
// or not readable at the current privilege. Handlers that get ok=false
// must call RaiseTrap and return without advancing pc.
func (c *CPU) GetCSR(addr uint32) (uint64, Trap, bool) {
	return c.CSRs.Get(addr)
}

// SetCSR writes a CSR and applies any resulting side effect (MMU
// reconfiguration on mstatus/satp writes).
func (c *CPU) SetCSR(addr uint32, val uint64) {
	op, mode, asid, ppn := c.CSRs.Set(addr, val)
	switch op {
	case csrSetOpUpdateMMUPrivilege:
		c.MMU.SetPrivilege(c.CSRs.prv, c.CSRs.mstatus)
	case csrSetOpSetMemMode:
		switch mode {
		case SatpModeBare:
			c.MMU.SetBareMode()
		case SatpModeSv39:
			c.MMU.SetPageMode(asid, ppn)
		default:
			panic("rv64sim: unsupported satp mode")
		}
	}
}

// AdvancePC moves pc forward by one instruction (4 bytes). Every handler
// that is not a branch/jump/trap/xRET must call this before returning.
func (c *CPU) AdvancePC() {
	c.PC += 4
}
