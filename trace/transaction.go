package trace

import (
	"github.com/shanegibbs/risk5/cpu"
	"github.com/shanegibbs/risk5/isa"
	"github.com/shanegibbs/risk5/memory"
	"github.com/shanegibbs/risk5/mmu"
)

// widthForKind maps a MemoryTrace.Kind tag to its access width in
// bytes. The "type" tag on a mem/store record names the width of the
// access the reference observed, not just a single byte, so priming and
// store validation must decompose accordingly. An unrecognized or empty
// Kind falls back to a single byte.
func widthForKind(kind string) int {
	switch kind {
	case "uint16", "int16":
		return 2
	case "uint32", "int32":
		return 4
	case "uint64", "int64":
		return 8
	default:
		return 1
	}
}

func primeMemoryTrace(bm *memory.ByteMap, mt MemoryTrace) {
	switch widthForKind(mt.Kind) {
	case 2:
		memory.WriteHalfword(bm, mt.Addr, uint16(mt.Value))
	case 4:
		memory.WriteWord(bm, mt.Addr, uint32(mt.Value))
	case 8:
		memory.WriteDoubleword(bm, mt.Addr, mt.Value)
	default:
		bm.Prime(mt.Addr, uint8(mt.Value))
	}
}

func readMemoryTraceWidth(bm *memory.ByteMap, mt MemoryTrace) uint64 {
	switch widthForKind(mt.Kind) {
	case 2:
		return uint64(memory.ReadHalfword(bm, mt.Addr))
	case 4:
		return uint64(memory.ReadWord(bm, mt.Addr))
	case 8:
		return memory.ReadDoubleword(bm, mt.Addr)
	default:
		return uint64(bm.ReadByte(mt.Addr))
	}
}

// Result is the outcome of validating one Transaction: the per-field
// state diffs (empty on a clean match) and, when the transaction logged
// a store, whether the committed write matches.
type Result struct {
	Diffs []cpu.Diff

	HasStore  bool
	StoreWant MemoryTrace
	StoreGot  uint64
	StoreOK   bool
}

// Failed reports whether this Result represents a mismatch.
func (r Result) Failed() bool {
	return len(r.Diffs) > 0 || (r.HasStore && !r.StoreOK)
}

// Validate replays a Transaction against a freshly constructed CPU and
// diffs the result: build a ByteMap primed from Mems, restore Before
// onto a new CPU, single-step, then compare the resulting state to
// After and (if logged) the committed store to Store.
func (t Transaction) Validate(matchers *isa.Matchers) Result {
	bm := memory.NewByteMap()
	for _, mt := range t.Mems {
		primeMemoryTrace(bm, mt)
	}
	if t.Store != nil {
		primeMemoryTrace(bm, *t.Store)
	}

	m := mmu.New(bm)
	c := cpu.NewCPU(m)
	c.Restore(t.Before)

	isa.Step(c, matchers)

	result := Result{Diffs: t.After.Diff(c.Snapshot())}

	if t.Store != nil {
		result.HasStore = true
		result.StoreWant = *t.Store
		result.StoreGot = readMemoryTraceWidth(bm, *t.Store)
		result.StoreOK = result.StoreGot == t.Store.Value
	}

	return result
}
