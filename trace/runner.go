package trace

import (
	"fmt"
	"os"

	"github.com/shanegibbs/risk5/internal/rvlog"
	"github.com/shanegibbs/risk5/isa"
)

// FailedTransactionPath is where Run persists a failing transaction so
// it can be replayed in isolation with rvvalidate.
const FailedTransactionPath = "failed.bin"

// ValidationError reports a transaction whose replayed state (or
// committed store) didn't match the log.
type ValidationError struct {
	Step   int
	Result Result
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rv64sim: transaction failed at step %d (%d field mismatches, store ok=%v)",
		e.Step, len(e.Result.Diffs), !e.Result.HasStore || e.Result.StoreOK)
}

// Run drives src to completion, pairing its LogTuples into Transactions
// and validating each one in turn. Per-step setup is cheap because each
// Transaction's memory is a fresh byte-map primed only with observed
// addresses. It stops and persists the
// offending Transaction to FailedTransactionPath on the first mismatch,
// returning a *ValidationError; a clean run returns nil.
func Run(src Source, matchers *isa.Matchers) error {
	stream := NewTransactionStream(src)

	step := 0
	for {
		tx, ok := stream.Next()
		if !ok {
			break
		}
		step++

		result := tx.Validate(matchers)
		if result.Failed() {
			rvlog.Log.Printf("transaction failed at step %d: %d diffs, store ok=%v", step, len(result.Diffs), result.StoreOK)
			if err := persistFailure(tx); err != nil {
				rvlog.Log.Printf("could not persist failed transaction: %v", err)
			}
			return &ValidationError{Step: step, Result: result}
		}

		if step%1_000_000 == 0 {
			rvlog.Log.Printf("step %dm: ok", step/1_000_000)
		}
	}

	rvlog.Log.Printf("retired %d transactions", step)
	return nil
}

func persistFailure(t Transaction) error {
	f, err := os.Create(FailedTransactionPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteTransaction(f, t)
}
