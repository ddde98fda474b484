// Command logconvert reads a newline-delimited JSON reference log and
// rewrites it as the binary (gob) log-tuple form. Exit code 0 on
// success, non-zero on a read or write error.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shanegibbs/risk5/trace"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: logconvert <input.json> <output.bin>")
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	in, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logconvert: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	out, err := os.Create(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logconvert: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	src := trace.NewJSONLogTupleIterator(in)
	dst := trace.NewBinaryWriter(out)

	n := 0
	for {
		lt, ok := src.Next()
		if !ok {
			break
		}
		if err := dst.Write(lt); err != nil {
			fmt.Fprintf(os.Stderr, "logconvert: writing record %d: %v\n", n, err)
			os.Exit(1)
		}
		n++
	}

	fmt.Fprintf(os.Stderr, "logconvert: wrote %d records\n", n)
}
