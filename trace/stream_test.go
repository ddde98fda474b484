package trace

import (
	"testing"

	"github.com/shanegibbs/risk5/cpu"
)

type sliceSource struct {
	items []LogTuple
	pos   int
}

func (s *sliceSource) Next() (LogTuple, bool) {
	if s.pos >= len(s.items) {
		return LogTuple{}, false
	}
	lt := s.items[s.pos]
	s.pos++
	return lt, true
}

func state(pc uint64) cpu.State {
	// Mstatus carries the pinned SXL/UXL fields a restored CPU always
	// has, so replayed snapshots diff clean against these states.
	return cpu.State{PC: pc, Mstatus: cpu.MstatusFromUint64(0).Val()}
}

func TestTransactionStreamPairsConsecutiveTuples(t *testing.T) {
	insn1 := Insn{PC: 0x1000, Bits: 1}
	insn2 := Insn{PC: 0x1004, Bits: 2}

	src := &sliceSource{items: []LogTuple{
		{Line: 1, State: state(0x1000), Insn: &insn1},
		{Line: 2, State: state(0x1004), Insn: &insn2},
		{Line: 3, State: state(0x1008)},
	}}

	ts := NewTransactionStream(src)

	tx1, ok := ts.Next()
	if !ok {
		t.Fatal("expected first transaction")
	}
	if tx1.Before.PC != 0x1000 || tx1.After.PC != 0x1004 {
		t.Fatalf("unexpected first transaction: %+v", tx1)
	}
	if tx1.Insn != &insn1 {
		t.Fatalf("expected tx1.Insn to be insn1")
	}

	tx2, ok := ts.Next()
	if !ok {
		t.Fatal("expected second transaction")
	}
	if tx2.Before.PC != 0x1004 || tx2.After.PC != 0x1008 {
		t.Fatalf("unexpected second transaction: %+v", tx2)
	}

	_, ok = ts.Next()
	if ok {
		t.Fatal("expected end of stream")
	}
}

func TestTransactionStreamSkipsDuplicateState(t *testing.T) {
	src := &sliceSource{items: []LogTuple{
		{Line: 1, State: state(0x1000)},
		{Line: 2, State: state(0x1000)}, // duplicate, dropped
		{Line: 3, State: state(0x1004)},
	}}

	ts := NewTransactionStream(src)

	tx, ok := ts.Next()
	if !ok {
		t.Fatal("expected a transaction")
	}
	if tx.Before.PC != 0x1000 || tx.After.PC != 0x1004 {
		t.Fatalf("expected the duplicate to be skipped, got %+v", tx)
	}

	_, ok = ts.Next()
	if ok {
		t.Fatal("expected end of stream")
	}
}

func TestTransactionStreamEmptySource(t *testing.T) {
	ts := NewTransactionStream(&sliceSource{})
	if _, ok := ts.Next(); ok {
		t.Fatal("expected no transactions from an empty source")
	}
}
