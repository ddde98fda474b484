// Package trace implements the instruction log-tuple formats and the
// transaction validator: a streaming reader over a sequence of (state,
// insn, mems, store) records produced by a reference implementation,
// and a validator that replays each step against this simulator and
// diffs the result.
//
// Two log encodings exist: newline-delimited JSON with hex-string
// integers (the form reference runs emit) and a gob stream of the same
// tuples (the compact form logconvert produces). Because log records
// interleave lines, the streaming iterator keeps a one-record State
// lookahead while pairing pre/post states.
package trace

import "github.com/shanegibbs/risk5/cpu"

// Insn is the logged instruction metadata for one step: the pc it was
// fetched from, its raw bits, and a human-readable disassembly (used
// only for diagnostics, never re-derived or checked by the validator).
type Insn struct {
	PC   uint64
	Bits uint32
	Desc string
}

// MemoryTrace is one observed memory event: a read the reference made
// during the step (to prime the validator's memory) or the single
// committed store, depending on context.
type MemoryTrace struct {
	Kind  string
	Addr  uint64
	Value uint64
}

// LogTuple is one record in the log stream: a line number, the
// pre-state snapshot, the instruction (if this record carries one),
// any memory observations, and the committed store (if any). The
// next record's State is this record's post-state.
type LogTuple struct {
	Line  int
	State cpu.State
	Insn  *Insn
	Mems  []MemoryTrace
	Store *MemoryTrace
}

// Transaction is a fully assembled (before, insn, mems, store, after)
// tuple ready for validation, built by pairing consecutive LogTuples.
type Transaction struct {
	Before cpu.State
	Insn   *Insn
	Mems   []MemoryTrace
	Store  *MemoryTrace
	After  cpu.State
}
