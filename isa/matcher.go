// Package isa implements the RV64I opcode matcher table, its
// direct-mapped dispatch cache, and the per-group instruction handlers:
// a (mask, match, exec) table scanned linearly on a cache miss, and a
// fixed 10,000-slot cache indexed by insn mod N that never invalidates
// -- replacement on every miss is the whole eviction policy.
package isa

import "github.com/shanegibbs/risk5/cpu"

// Handler executes one instruction against c, given its raw 32-bit
// word. It must call c.AdvancePC() unless it is a branch, jump, trap,
// or xRET.
type Handler func(c *cpu.CPU, insn uint32)

// Matcher is one (mask, match, handler) dispatch entry.
type Matcher struct {
	Mask     uint32
	Match    uint32
	Exec     Handler
	Mnemonic string
}

func (m Matcher) matches(insn uint32) bool {
	return insn&m.Mask == m.Match
}

const cacheSize = 10000

type cacheSlot struct {
	insn  uint32
	index int
	valid bool
}

// Matchers holds the ordered dispatch table plus its lookup cache.
// Table order matters: it is scanned most-specific (largest mask)
// first, so a general catch-all (e.g. a SYSTEM-group illegal-trap
// entry) must be placed last.
type Matchers struct {
	table []Matcher
	cache []cacheSlot
}

// NewMatchers builds a dispatch table with a fresh, empty cache.
func NewMatchers(table []Matcher) *Matchers {
	return &Matchers{
		table: table,
		cache: make([]cacheSlot, cacheSize),
	}
}

// Find returns the handler for insn, consulting the direct-mapped cache
// before falling back to a linear scan. It panics if no entry matches:
// that is unreachable given a complete table ending in the catch-all
// illegal-instruction entry, so a miss past it is a simulator bug, not
// an architectural fault.
func (m *Matchers) Find(insn uint32) Handler {
	idx := int(insn) % len(m.cache)
	slot := &m.cache[idx]
	if slot.valid && slot.insn == insn {
		return m.table[slot.index].Exec
	}

	for i, matcher := range m.table {
		if matcher.matches(insn) {
			*slot = cacheSlot{insn: insn, index: i, valid: true}
			return matcher.Exec
		}
	}
	panic("rv64sim: no matcher for instruction word")
}
