package cpu

// CSR addresses, per the privileged spec's register listing.
const (
	csrSstatus    = 0x100
	csrSedeleg    = 0x102
	csrSideleg    = 0x103
	csrSie        = 0x104
	csrStvec      = 0x105
	csrScounteren = 0x106
	csrSscratch   = 0x140
	csrSepc       = 0x141
	csrScause     = 0x142
	csrStval      = 0x143
	csrSip        = 0x144
	csrSatp       = 0x180

	csrMhartid = 0xf14

	csrMstatus    = 0x300
	csrMisa       = 0x301
	csrMedeleg    = 0x302
	csrMideleg    = 0x303
	csrMie        = 0x304
	csrMtvec      = 0x305
	csrMcounteren = 0x306

	csrMscratch = 0x340
	csrMepc     = 0x341
	csrMcause   = 0x342
	csrMtval    = 0x343
	csrMip      = 0x344
)

// Exported CSR addresses for callers outside this package that want to
// read a named CSR through (*CPU).GetCSR -- chiefly the debugger's
// "info registers" and expression evaluator, which have no other way to
// name e.g. mepc/scause since Csrs's fields are unexported.
const (
	MstatusAddr = csrMstatus
	MepcAddr    = csrMepc
	McauseAddr  = csrMcause
	MtvalAddr   = csrMtval
	MtvecAddr   = csrMtvec
	SepcAddr    = csrSepc
	ScauseAddr  = csrScause
	StvalAddr   = csrStval
	StvecAddr   = csrStvec
	SatpAddr    = csrSatp
)

// misaFixed is the (fixed) machine ISA register value: RV64 with the I
// base integer extension.
const misaFixed = 0x8000000000141101

// Csrs is the fixed, closed set of control/status registers this
// simulator implements: a struct with named fields rather than a sparse
// map, since the address space is small and fully enumerated. An outer
// switch on the 12-bit address routes reads and writes.
type Csrs struct {
	prv uint64

	mstatus    Mstatus
	medeleg    uint64
	mideleg    uint64
	mtvec      uint64
	mepc       uint64
	mtval      uint64
	mcause     uint64
	mscratch   uint64
	misa       uint64
	mcounteren uint64
	mie        uint64
	mip        uint64

	sedeleg    uint64
	sideleg    uint64
	sie        uint64
	stvec      uint64
	scounteren uint64
	sscratch   uint64
	sepc       uint64
	scause     uint64
	stval      uint64
	sip        uint64
	satp       Satp
}

// NewCsrs returns a reset CSR file: prv=M, misa fixed, mstatus SXL=UXL=2.
func NewCsrs() Csrs {
	return Csrs{
		prv:     PrivMachine,
		mstatus: NewMstatus(),
		misa:    misaFixed,
	}
}

// Get reads a CSR, applying the same privilege-gated view SSTATUS gets
// over MSTATUS. Unknown or privilege-disallowed addresses trap illegal.
// Bits [9:8] of a CSR address encode the lowest privilege allowed to
// access it, so the gate is one compare rather than per-register.
func (c *Csrs) Get(addr uint32) (uint64, Trap, bool) {
	if c.prv < uint64(addr>>8&0x3) {
		return 0, IllegalInstruction(), false
	}

	switch addr {
	case csrMhartid:
		return 0, Trap{}, true

	case csrMstatus:
		return c.mstatus.Val(), Trap{}, true
	case csrMisa:
		return c.misa, Trap{}, true
	case csrMip:
		return c.mip, Trap{}, true
	case csrMie:
		return c.mie, Trap{}, true
	case csrMedeleg:
		return c.medeleg, Trap{}, true
	case csrMideleg:
		return c.mideleg, Trap{}, true
	case csrMcounteren:
		return c.mcounteren, Trap{}, true
	case csrMtvec:
		return c.mtvec, Trap{}, true
	case csrMepc:
		return c.mepc, Trap{}, true
	case csrMtval:
		return c.mtval, Trap{}, true
	case csrMscratch:
		return c.mscratch, Trap{}, true
	case csrMcause:
		return c.mcause, Trap{}, true

	case csrSstatus:
		return c.mstatus.ValForPrivilege(c.prv), Trap{}, true
	case csrSedeleg:
		return c.sedeleg, Trap{}, true
	case csrSideleg:
		return c.sideleg, Trap{}, true
	case csrSie:
		return c.sie, Trap{}, true
	case csrStvec:
		return c.stvec, Trap{}, true
	case csrScounteren:
		return c.scounteren, Trap{}, true
	case csrSscratch:
		return c.sscratch, Trap{}, true
	case csrSepc:
		return c.sepc, Trap{}, true
	case csrScause:
		return c.scause, Trap{}, true
	case csrStval:
		return c.stval, Trap{}, true
	case csrSip:
		return c.sip, Trap{}, true
	case csrSatp:
		return c.satp.Val(), Trap{}, true

	default:
		return 0, IllegalInstruction(), false
	}
}

// csrSetOp names the side effect a CSR write has beyond updating its
// own storage; CPU.SetCSR switches on it to reconfigure the MMU.
type csrSetOp int

const (
	csrSetOpNone csrSetOp = iota
	csrSetOpUpdateMMUPrivilege
	csrSetOpSetMemMode
)

// Set writes a CSR. Returns the post-write side effect the caller (CPU)
// must apply, plus the mode/asid/ppn satp decoded to when relevant.
func (c *Csrs) Set(addr uint32, val uint64) (op csrSetOp, mode, asid, ppn uint64) {
	switch addr {
	case csrMtvec:
		c.mtvec = val
	case csrMstatus:
		c.mstatus = MstatusFromUint64(val)
		return csrSetOpUpdateMMUPrivilege, 0, 0, 0
	case csrMepc:
		c.mepc = val &^ 0x1
	case csrMip:
		c.mip = val
	case csrMie:
		c.mie = val
	case csrMedeleg:
		c.medeleg = val
	case csrMideleg:
		c.mideleg = val
	case csrMscratch:
		c.mscratch = val
	case csrMcounteren:
		c.mcounteren = val
	case csrMcause:
		c.mcause = val
	case csrMtval:
		c.mtval = val

	case csrSstatus:
		c.mstatus.SetFromSstatusWrite(val)
	case csrSedeleg:
		c.sedeleg = val
	case csrSideleg:
		c.sideleg = val
	case csrSie:
		c.sie = val
	case csrStvec:
		c.stvec = val
	case csrScounteren:
		c.scounteren = val
	case csrSscratch:
		c.sscratch = val
	case csrSepc:
		c.sepc = val
	case csrScause:
		c.scause = val
	case csrStval:
		c.stval = val
	case csrSip:
		c.sip = val
	case csrSatp:
		satp := SatpFromUint64(val)
		c.satp = satp
		return csrSetOpSetMemMode, satp.Mode(), satp.ASID(), satp.PPN()

	default:
		// Unknown CSR address: writes are silently dropped rather than
		// trapped; only reads of unknown CSRs trap illegal.
	}
	return csrSetOpNone, 0, 0, 0
}

// Prv returns the current privilege level.
func (c *Csrs) Prv() uint64 { return c.prv }

// Mstatus returns the current mstatus value (used by the MMU to decide
// effective privilege / MPRV, and by the transaction validator to diff
// CSR state).
func (c *Csrs) Mstatus() Mstatus { return c.mstatus }

// Satp returns the current satp value.
func (c *Csrs) Satp() Satp { return c.satp }
