package trace

import (
	"bytes"
	"testing"

	"github.com/shanegibbs/risk5/cpu"
)

func TestBinaryWriterReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewBinaryWriter(&buf)

	insn := Insn{PC: 0x1000, Bits: 0x13, Desc: "addi"}
	lt1 := LogTuple{Line: 1, State: state(0x1000), Insn: &insn}
	lt2 := LogTuple{Line: 2, State: state(0x1004)}

	if err := w.Write(lt1); err != nil {
		t.Fatalf("write lt1: %v", err)
	}
	if err := w.Write(lt2); err != nil {
		t.Fatalf("write lt2: %v", err)
	}

	r := NewBinaryReader(&buf)

	got1, ok := r.Next()
	if !ok {
		t.Fatal("expected first tuple")
	}
	if got1.State.PC != 0x1000 || got1.Insn == nil || got1.Insn.Desc != "addi" {
		t.Fatalf("unexpected first tuple: %+v", got1)
	}

	got2, ok := r.Next()
	if !ok {
		t.Fatal("expected second tuple")
	}
	if got2.State.PC != 0x1004 {
		t.Fatalf("unexpected second tuple: %+v", got2)
	}

	if _, ok := r.Next(); ok {
		t.Fatal("expected end of stream")
	}
}

func TestWriteReadTransactionRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	before := cpu.State{PC: 0x1000}
	after := cpu.State{PC: 0x1004}
	insn := Insn{PC: 0x1000, Bits: 0x13}
	tx := Transaction{Before: before, Insn: &insn, After: after}

	if err := WriteTransaction(&buf, tx); err != nil {
		t.Fatalf("write transaction: %v", err)
	}

	got, err := ReadTransaction(&buf)
	if err != nil {
		t.Fatalf("read transaction: %v", err)
	}
	if got.Before.PC != 0x1000 || got.After.PC != 0x1004 {
		t.Fatalf("unexpected round-tripped transaction: %+v", got)
	}
}
