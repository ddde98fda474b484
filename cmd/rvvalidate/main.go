// Command rvvalidate validates simulator execution against a reference
// log. In its default mode it reads a single gob-encoded Transaction
// from stdin, replays it, and reports whether the resulting state
// matches the logged post-state. With -log it instead drives the
// streaming validator (trace.Run) over a full binary log of LogTuples,
// pairing and validating every step in the stream. Exit code 0 on
// success, non-zero on a mismatch.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shanegibbs/risk5/isa"
	"github.com/shanegibbs/risk5/trace"
)

func main() {
	logPath := flag.String("log", "", "validate a full binary log of LogTuples instead of one transaction from stdin")
	flag.Parse()

	if *logPath != "" {
		runStream(*logPath)
		return
	}
	runSingle()
}

func runSingle() {
	tx, err := trace.ReadTransaction(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rvvalidate: reading transaction: %v\n", err)
		os.Exit(1)
	}

	result := tx.Validate(isa.Default())
	if !result.Failed() {
		fmt.Println("ok")
		os.Exit(0)
	}

	for _, d := range result.Diffs {
		fmt.Printf("mismatch: %s want=0x%x got=0x%x\n", d.Field, d.Want, d.Got)
	}
	if result.HasStore && !result.StoreOK {
		fmt.Printf("mismatch: store at 0x%x want=0x%x got=0x%x\n",
			result.StoreWant.Addr, result.StoreWant.Value, result.StoreGot)
	}
	os.Exit(1)
}

func runStream(path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rvvalidate: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	src := trace.NewBinaryReader(f)
	if err := trace.Run(src, isa.Default()); err != nil {
		fmt.Fprintf(os.Stderr, "rvvalidate: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("ok")
}
