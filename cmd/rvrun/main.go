// Command rvrun loads a compiled RV64 ELF binary and executes it to
// completion, optionally under the interactive debugger.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shanegibbs/risk5/config"
	"github.com/shanegibbs/risk5/debugger"
)

func main() {
	var (
		maxCycles = flag.Uint64("max-cycles", 0, "maximum cycles before halt (0 = use config default)")
		debugMode = flag.Bool("debug", false, "start in command-line debugger mode")
		tuiMode   = flag.Bool("tui", false, "start in TUI debugger mode")
		guiMode   = flag.Bool("gui", false, "start in graphical debugger mode")
		entry     = flag.String("entry", "", "override the entry point (hex or decimal)")
		verbose   = flag.Bool("verbose", false, "print a summary after execution")
	)
	flag.Usage = printHelp
	flag.Parse()

	if flag.NArg() == 0 {
		printHelp()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "rvrun: loading config: %v\n", err)
		os.Exit(1)
	}

	machine, err := debugger.LoadELF(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rvrun: %v\n", err)
		os.Exit(1)
	}

	if *entry != "" {
		addr, perr := parseAddr(*entry)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "rvrun: invalid -entry: %v\n", perr)
			os.Exit(1)
		}
		machine.CPU.PC = addr
		machine.Entry = addr
	}

	limit := *maxCycles
	if limit == 0 {
		limit = cfg.Execution.MaxCycles
	}

	switch {
	case *debugMode:
		dbg := debugger.NewDebugger(machine, cfg)
		fmt.Println("rv64sim debugger - type 'help' for commands")
		if err := debugger.RunCLI(dbg); err != nil {
			fmt.Fprintf(os.Stderr, "rvrun: debugger: %v\n", err)
			os.Exit(1)
		}
		return
	case *tuiMode:
		dbg := debugger.NewDebugger(machine, cfg)
		if err := debugger.RunTUI(dbg); err != nil {
			fmt.Fprintf(os.Stderr, "rvrun: tui: %v\n", err)
			os.Exit(1)
		}
		return
	case *guiMode:
		dbg := debugger.NewDebugger(machine, cfg)
		if err := debugger.RunGUI(dbg); err != nil {
			fmt.Fprintf(os.Stderr, "rvrun: gui: %v\n", err)
			os.Exit(1)
		}
		return
	}

	for machine.Cycles < limit && machine.State == debugger.StateRunning {
		if err := machine.Step(); err != nil {
			fmt.Fprintf(os.Stderr, "rvrun: runtime error at pc=0x%016x: %v\n", machine.CPU.PC, err)
			os.Exit(1)
		}
	}

	if *verbose {
		fmt.Printf("retired %d cycles, exit code %d\n", machine.Cycles, machine.ExitCode)
	}
	os.Exit(machine.ExitCode)
}

func parseAddr(s string) (uint64, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `rvrun - run an RV64 ELF binary

Usage: rvrun [options] <elf-file>

Options:
  -max-cycles N   maximum cycles before halt (0 = use config default)
  -entry ADDR     override the entry point (hex or decimal)
  -debug          start in command-line debugger mode
  -tui            start in TUI debugger mode
  -gui            start in graphical debugger mode
  -verbose        print a summary after execution
`)
}
