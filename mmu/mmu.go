// Package mmu implements cpu.MMU: Bare mode (identity mapping) and
// Sv39 three-level page-table translation over a physical
// memory.Memory. It imports cpu for Mstatus/Trap rather than the
// reverse, which is how cpu.MMU avoids an import cycle (see
// cpu/cpu.go).
package mmu

import (
	"github.com/shanegibbs/risk5/cpu"
	"github.com/shanegibbs/risk5/memory"
)

const (
	pageShift = 12
	vpnBits   = 9
	vpnMask   = 0x1ff
	pteSize   = 8
)

// PTE flag bits, bit positions within an 8-byte page table entry.
const (
	pteV = 1 << 0
	pteR = 1 << 1
	pteW = 1 << 2
	pteX = 1 << 3
	pteU = 1 << 4
)

// accessKind distinguishes which of the three MMU-facing operations is
// translating, since each one raises a different cause on fault.
type accessKind int

const (
	accessFetch accessKind = iota
	accessLoad
	accessStore
)

func (a accessKind) cause() uint64 {
	switch a {
	case accessFetch:
		return cpu.CauseInstructionPageFault
	case accessStore:
		return cpu.CauseStorePageFault
	default:
		return cpu.CauseLoadPageFault
	}
}

// MMU translates virtual addresses and drives a physical memory.Memory.
// It satisfies cpu.MMU.
type MMU struct {
	mem memory.Memory

	bare bool
	asid uint64
	ppn  uint64

	prv     uint64
	mstatus cpu.Mstatus
}

// New constructs an MMU over a physical memory backend, reset to bare
// mode.
func New(mem memory.Memory) *MMU {
	return &MMU{mem: mem, bare: true}
}

func (m *MMU) SetBareMode() { m.bare = true }

func (m *MMU) SetPageMode(asid, ppn uint64) {
	m.bare = false
	m.asid = asid
	m.ppn = ppn
}

func (m *MMU) SetPrivilege(prv uint64, mstatus cpu.Mstatus) {
	m.prv = prv
	m.mstatus = mstatus
}

// effectiveBare reports whether accesses should bypass translation:
// bare satp mode, or M-mode (always bare; MPRV-based M-mode address
// substitution is not modeled).
func (m *MMU) effectiveBare() bool {
	return m.bare || m.prv == cpu.PrivMachine
}

// translate walks the page table (or passes the address through
// unchanged in bare/M-mode), returning the physical address or a fault
// Trap with ok=false.
func (m *MMU) translate(va uint64, kind accessKind) (uint64, cpu.Trap, bool) {
	if m.effectiveBare() {
		return va, cpu.Trap{}, true
	}

	pageOffset := va & (1<<pageShift - 1)
	vpn := [3]uint64{
		(va >> pageShift) & vpnMask,
		(va >> (pageShift + vpnBits)) & vpnMask,
		(va >> (pageShift + 2*vpnBits)) & vpnMask,
	}

	tableAddr := m.ppn << pageShift
	for level := 2; level >= 0; level-- {
		pteAddr := tableAddr + vpn[level]*pteSize
		pte := memory.ReadDoubleword(m.mem, pteAddr)

		if pte&pteV == 0 {
			return 0, cpu.Trap{Cause: kind.cause(), Tval: va}, false
		}
		if pte&pteW != 0 && pte&pteR == 0 {
			return 0, cpu.Trap{Cause: kind.cause(), Tval: va}, false
		}

		isLeaf := pte&(pteR|pteX) != 0
		if !isLeaf {
			if level == 0 {
				return 0, cpu.Trap{Cause: kind.cause(), Tval: va}, false
			}
			tableAddr = (pte >> 10) << pageShift
			continue
		}

		if trap, ok := m.checkPermission(pte, kind, va); !ok {
			return 0, trap, false
		}

		ppn := pte >> 10
		if level > 0 {
			// Superpage: the low `level` VPN fields of the PPN must be
			// zero, and the untranslated low bits of the VA pass through.
			lowMask := uint64(1)<<(vpnBits*level) - 1
			if ppn&lowMask != 0 {
				return 0, cpu.Trap{Cause: kind.cause(), Tval: va}, false
			}
			for l := 0; l < level; l++ {
				ppn |= vpn[l] << (vpnBits * l)
			}
		}

		return ppn<<pageShift | pageOffset, cpu.Trap{}, true
	}

	return 0, cpu.Trap{Cause: kind.cause(), Tval: va}, false
}

// checkPermission enforces the PTE permission bits: a write requires
// W, an execute requires X, a load requires R, and a U-mode access
// requires the page's U bit (S-mode access to a U page without
// mstatus.SUM is not modeled, like MPRV). A permission failure raises
// the same {cause, tval=va} pair as a missing or misconfigured PTE.
func (m *MMU) checkPermission(pte uint64, kind accessKind, va uint64) (cpu.Trap, bool) {
	fail := func() (cpu.Trap, bool) {
		return cpu.Trap{Cause: kind.cause(), Tval: va}, false
	}

	if m.prv == cpu.PrivUser && pte&pteU == 0 {
		return fail()
	}

	switch kind {
	case accessFetch:
		if pte&pteX == 0 {
			return fail()
		}
	case accessStore:
		if pte&pteW == 0 {
			return fail()
		}
	default:
		if pte&pteR == 0 {
			return fail()
		}
	}
	return cpu.Trap{}, true
}

func (m *MMU) ReadInsn(va uint64) (uint32, cpu.Trap, bool) {
	pa, trap, ok := m.translate(va, accessFetch)
	if !ok {
		return 0, trap, false
	}
	return memory.ReadWord(m.mem, pa), cpu.Trap{}, true
}

// Data accesses are lowered to per-byte translated accesses, assembled
// little-endian. Each byte translates on its own, so an access that
// straddles a page boundary faults only if the second page is
// untranslated, carrying the faulting byte's address as Tval.

func (m *MMU) ReadByte(va uint64) (uint8, cpu.Trap, bool) {
	pa, trap, ok := m.translate(va, accessLoad)
	if !ok {
		return 0, trap, false
	}
	return m.mem.ReadByte(pa), cpu.Trap{}, true
}

func (m *MMU) readMulti(va uint64, width uint) (uint64, cpu.Trap, bool) {
	var v uint64
	for i := uint(0); i < width; i++ {
		b, trap, ok := m.ReadByte(va + uint64(i))
		if !ok {
			return 0, trap, false
		}
		v |= uint64(b) << (8 * i)
	}
	return v, cpu.Trap{}, true
}

func (m *MMU) ReadHalfword(va uint64) (uint16, cpu.Trap, bool) {
	v, trap, ok := m.readMulti(va, 2)
	return uint16(v), trap, ok
}

func (m *MMU) ReadWord(va uint64) (uint32, cpu.Trap, bool) {
	v, trap, ok := m.readMulti(va, 4)
	return uint32(v), trap, ok
}

func (m *MMU) ReadDoubleword(va uint64) (uint64, cpu.Trap, bool) {
	return m.readMulti(va, 8)
}

func (m *MMU) WriteByte(va uint64, v uint8) (cpu.Trap, bool) {
	pa, trap, ok := m.translate(va, accessStore)
	if !ok {
		return trap, false
	}
	m.mem.WriteByte(pa, v)
	return cpu.Trap{}, true
}

func (m *MMU) writeMulti(va uint64, v uint64, width uint) (cpu.Trap, bool) {
	for i := uint(0); i < width; i++ {
		if trap, ok := m.WriteByte(va+uint64(i), uint8(v>>(8*i))); !ok {
			return trap, false
		}
	}
	return cpu.Trap{}, true
}

func (m *MMU) WriteHalfword(va uint64, v uint16) (cpu.Trap, bool) {
	return m.writeMulti(va, uint64(v), 2)
}

func (m *MMU) WriteWord(va uint64, v uint32) (cpu.Trap, bool) {
	return m.writeMulti(va, uint64(v), 4)
}

func (m *MMU) WriteDoubleword(va uint64, v uint64) (cpu.Trap, bool) {
	return m.writeMulti(va, v, 8)
}
