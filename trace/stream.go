package trace

import "github.com/shanegibbs/risk5/cpu"

// Source yields LogTuples one at a time; JSONLogTupleIterator and
// BinaryReader both implement it.
type Source interface {
	Next() (LogTuple, bool)
}

// TransactionStream pairs consecutive LogTuples into Transactions: a
// tuple's State is the pre-state of the step its own Insn/Mems/Store
// describe, and the following tuple's State is that step's post-state.
// A record whose state is identical to the previously emitted one is
// dropped -- duplicate consecutive states are log noise, not a step to
// validate.
type TransactionStream struct {
	src Source

	have      bool
	prevState cpu.State
	prevInsn  *Insn
	prevMems  []MemoryTrace
	prevStore *MemoryTrace
}

func NewTransactionStream(src Source) *TransactionStream {
	return &TransactionStream{src: src}
}

// Next returns the next Transaction, or ok=false once the source is
// exhausted.
func (ts *TransactionStream) Next() (Transaction, bool) {
	for {
		lt, ok := ts.src.Next()
		if !ok {
			return Transaction{}, false
		}

		if ts.have && lt.State == ts.prevState {
			continue
		}

		var tx Transaction
		haveTx := false
		if ts.have {
			tx = Transaction{
				Before: ts.prevState,
				Insn:   ts.prevInsn,
				Mems:   ts.prevMems,
				Store:  ts.prevStore,
				After:  lt.State,
			}
			haveTx = true
		}

		ts.have = true
		ts.prevState = lt.State
		ts.prevInsn = lt.Insn
		ts.prevMems = lt.Mems
		ts.prevStore = lt.Store

		if haveTx {
			return tx, true
		}
	}
}
