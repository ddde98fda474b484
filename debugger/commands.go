package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shanegibbs/risk5/cpu"
)

// Command handler implementations

// cmdRun starts or restarts program execution
func (d *Debugger) cmdRun(args []string) error {
	d.Machine.Reset()
	d.Running = true
	d.StepMode = StepNone

	d.Println("Starting program execution...")
	return nil
}

// cmdContinue continues execution from current point
func (d *Debugger) cmdContinue(args []string) error {
	if d.Machine.State == StateHalted {
		return fmt.Errorf("program is not running")
	}

	d.Machine.State = StateRunning
	d.Running = true
	d.StepMode = StepNone

	d.Println("Continuing...")
	return nil
}

// cmdStep executes a single instruction
func (d *Debugger) cmdStep(args []string) error {
	d.StepMode = StepSingle
	d.Running = true
	return nil
}

// cmdNext steps over function calls (step to next instruction at same level)
func (d *Debugger) cmdNext(args []string) error {
	d.SetStepOver()
	return nil
}

// cmdFinish steps out of current function
func (d *Debugger) cmdFinish(args []string) error {
	d.StepMode = StepOut
	d.Running = true
	return nil
}

// cmdBreak sets a breakpoint. Trailing "in <u|s|m>" scopes it to one
// privilege level, for isolating a bug that only reproduces inside a
// trap handler or inside user code.
func (d *Debugger) cmdBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: break <address|label> [if <condition>] [in <u|s|m>]")
	}

	// Parse address/label
	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}

	rest, privilege, err := parsePrivilegeClause(args[1:])
	if err != nil {
		return err
	}

	// Parse condition if present
	var condition string
	if len(rest) > 1 && strings.ToLower(rest[0]) == "if" {
		condition = strings.Join(rest[1:], " ")
	}

	// Add breakpoint
	bp := d.Breakpoints.AddBreakpoint(address, false, condition, privilege)

	switch {
	case condition != "" && privilege != AnyPrivilege:
		d.Printf("Breakpoint %d at 0x%016x (condition: %s, in %s mode)\n", bp.ID, address, condition, privilegeName(uint64(privilege)))
	case condition != "":
		d.Printf("Breakpoint %d at 0x%016x (condition: %s)\n", bp.ID, address, condition)
	case privilege != AnyPrivilege:
		d.Printf("Breakpoint %d at 0x%016x (in %s mode)\n", bp.ID, address, privilegeName(uint64(privilege)))
	default:
		d.Printf("Breakpoint %d at 0x%016x\n", bp.ID, address)
	}

	return nil
}

// cmdTBreak sets a temporary breakpoint (auto-delete after hit)
func (d *Debugger) cmdTBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tbreak <address|label> [in <u|s|m>]")
	}

	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}

	_, privilege, err := parsePrivilegeClause(args[1:])
	if err != nil {
		return err
	}

	bp := d.Breakpoints.AddBreakpoint(address, true, "", privilege)
	if privilege != AnyPrivilege {
		d.Printf("Temporary breakpoint %d at 0x%016x (in %s mode)\n", bp.ID, address, privilegeName(uint64(privilege)))
	} else {
		d.Printf("Temporary breakpoint %d at 0x%016x\n", bp.ID, address)
	}

	return nil
}

// parsePrivilegeClause pulls a trailing "in <u|s|m>" clause out of args,
// returning the remaining args (for "if <condition>" parsing) and the
// privilege level to scope the breakpoint to, or AnyPrivilege if no
// clause was present.
func parsePrivilegeClause(args []string) (rest []string, privilege int64, err error) {
	for i := 0; i+1 < len(args); i++ {
		if strings.ToLower(args[i]) != "in" {
			continue
		}
		prv, ok := privilegeByName(args[i+1])
		if !ok {
			return nil, AnyPrivilege, fmt.Errorf("unknown privilege level: %s (want u, s, or m)", args[i+1])
		}
		return append(append([]string{}, args[:i]...), args[i+2:]...), int64(prv), nil
	}
	return args, AnyPrivilege, nil
}

func privilegeByName(name string) (uint64, bool) {
	switch strings.ToLower(name) {
	case "u":
		return cpu.PrivUser, true
	case "s":
		return cpu.PrivSupervisor, true
	case "m":
		return cpu.PrivMachine, true
	default:
		return 0, false
	}
}

// cmdDelete deletes breakpoint(s)
func (d *Debugger) cmdDelete(args []string) error {
	if len(args) == 0 {
		// Delete all breakpoints
		d.Breakpoints.Clear()
		d.Println("All breakpoints deleted")
		return nil
	}

	// Delete specific breakpoint
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}

	if err := d.Breakpoints.DeleteBreakpoint(id); err != nil {
		return err
	}

	d.Printf("Breakpoint %d deleted\n", id)
	return nil
}

// cmdEnable enables breakpoint(s)
func (d *Debugger) cmdEnable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: enable <breakpoint-id>")
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}

	if err := d.Breakpoints.EnableBreakpoint(id); err != nil {
		return err
	}

	d.Printf("Breakpoint %d enabled\n", id)
	return nil
}

// cmdDisable disables breakpoint(s)
func (d *Debugger) cmdDisable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: disable <breakpoint-id>")
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}

	if err := d.Breakpoints.DisableBreakpoint(id); err != nil {
		return err
	}

	d.Printf("Breakpoint %d disabled\n", id)
	return nil
}

// cmdWatch sets a write watchpoint
func (d *Debugger) cmdWatch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: watch <expression>")
	}
	wp, err := d.addWatchpoint(WatchWrite, strings.Join(args, " "))
	if err != nil {
		return err
	}
	d.Printf("Watchpoint %d: %s\n", wp.ID, wp.Expression)
	return nil
}

// cmdRWatch sets a read watchpoint
func (d *Debugger) cmdRWatch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: rwatch <expression>")
	}
	wp, err := d.addWatchpoint(WatchRead, strings.Join(args, " "))
	if err != nil {
		return err
	}
	d.Printf("Read watchpoint %d: %s\n", wp.ID, wp.Expression)
	return nil
}

// cmdAWatch sets a read/write watchpoint
func (d *Debugger) cmdAWatch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: awatch <expression>")
	}
	wp, err := d.addWatchpoint(WatchReadWrite, strings.Join(args, " "))
	if err != nil {
		return err
	}
	d.Printf("Access watchpoint %d: %s\n", wp.ID, wp.Expression)
	return nil
}

// addWatchpoint resolves expression to a register, a CSR (prefixed with
// "$", e.g. "$mstatus"), or a memory address, adds the watchpoint, and
// seeds its LastValue so the first CheckWatchpoints call compares
// against the value at the time the watchpoint was set rather than zero.
func (d *Debugger) addWatchpoint(wpType WatchType, expression string) (*Watchpoint, error) {
	trimmed := strings.TrimSpace(expression)
	var wp *Watchpoint
	if strings.HasPrefix(trimmed, "$") {
		addr, ok := csrAddrByName(strings.ToLower(trimmed[1:]))
		if !ok {
			return nil, fmt.Errorf("unknown CSR: %s", trimmed[1:])
		}
		wp = d.Watchpoints.AddCSRWatchpoint(wpType, expression, addr)
	} else {
		isRegister, register, address, err := d.parseWatchExpression(trimmed)
		if err != nil {
			return nil, err
		}
		wp = d.Watchpoints.AddWatchpoint(wpType, expression, address, isRegister, register)
	}

	if err := d.Watchpoints.InitializeWatchpoint(wp.ID, d.Machine); err != nil {
		d.Watchpoints.DeleteWatchpoint(wp.ID)
		return nil, err
	}
	return wp, nil
}

// csrAddrByName resolves the CSR names showCSRs prints to their
// addresses, so a watchpoint can be set with e.g. "watch $satp" to
// catch the instruction that switches the MMU into Sv39 mode.
func csrAddrByName(name string) (uint32, bool) {
	switch name {
	case "mstatus":
		return cpu.MstatusAddr, true
	case "mepc":
		return cpu.MepcAddr, true
	case "mcause":
		return cpu.McauseAddr, true
	case "mtval":
		return cpu.MtvalAddr, true
	case "mtvec":
		return cpu.MtvecAddr, true
	case "sepc":
		return cpu.SepcAddr, true
	case "scause":
		return cpu.ScauseAddr, true
	case "stval":
		return cpu.StvalAddr, true
	case "stvec":
		return cpu.StvecAddr, true
	case "satp":
		return cpu.SatpAddr, true
	default:
		return 0, false
	}
}

// parseWatchExpression parses a watch expression (register or memory address)
func (d *Debugger) parseWatchExpression(expr string) (isRegister bool, register int, address uint64, err error) {
	expr = strings.ToLower(strings.TrimSpace(expr))

	// Check if it's a register (x0-x31, an ABI alias, or pc)
	if num, isPC, ok := registerNumber(expr); ok && !isPC {
		return true, num, 0, nil
	}

	// Check if it's a memory address in brackets [0x1000] or [label]
	if strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]") {
		addrStr := strings.TrimSuffix(strings.TrimPrefix(expr, "["), "]")
		addr, err := d.ResolveAddress(addrStr)
		if err != nil {
			return false, 0, 0, err
		}
		return false, 0, addr, nil
	}

	// Try to resolve as address or symbol
	addr, err := d.ResolveAddress(expr)
	if err != nil {
		return false, 0, 0, fmt.Errorf("invalid watch expression: %s", expr)
	}

	return false, 0, addr, nil
}

// cmdPrint evaluates and prints an expression
func (d *Debugger) cmdPrint(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: print <expression>")
	}

	expression := strings.Join(args, " ")
	result, err := d.Evaluator.EvaluateExpression(expression, d.Machine, d.Symbols)
	if err != nil {
		return err
	}

	d.Printf("$%d = 0x%016x (%d)\n", d.Evaluator.GetValueNumber(), result, int64(result))
	return nil
}

// cmdExamine examines memory at an address
func (d *Debugger) cmdExamine(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: x[/nfu] <address>\n  n: count, f: format (x/d/u/o/t), u: unit size (b/h/w/g)")
	}

	// Parse format specifier (e.g., "x/8xw")
	count := 1
	format := 'x'
	unit := 'w'
	addrArg := args[0]

	if strings.HasPrefix(args[0], "/") {
		// Parse format
		formatStr := args[0][1:]
		if len(args) < 2 {
			return fmt.Errorf("missing address")
		}
		addrArg = args[1]

		// Parse count
		i := 0
		for i < len(formatStr) && formatStr[i] >= '0' && formatStr[i] <= '9' {
			i++
		}
		if i > 0 {
			if n, err := strconv.Atoi(formatStr[:i]); err == nil {
				count = n
			}
			formatStr = formatStr[i:]
		}

		// Parse format character
		if len(formatStr) > 0 {
			format = rune(formatStr[0])
			formatStr = formatStr[1:]
		}

		// Parse unit size
		if len(formatStr) > 0 {
			unit = rune(formatStr[0])
		}
	}

	// Resolve address
	address, err := d.ResolveAddress(addrArg)
	if err != nil {
		return err
	}

	// Read and display memory
	d.Printf("0x%016x:", address)
	for i := 0; i < count; i++ {
		var value uint64
		var readErr error

		switch unit {
		case 'b': // byte
			val, e := d.Machine.ReadByte(address)
			value = uint64(val)
			readErr = e
			address++
		case 'h': // halfword
			val, e := d.Machine.ReadHalfword(address)
			value = uint64(val)
			readErr = e
			address += 2
		case 'g': // doubleword
			value, readErr = d.Machine.ReadDoubleword(address)
			address += 8
		default: // 'w' - word
			var val32 uint32
			val32, readErr = d.Machine.ReadWord(address)
			value = uint64(val32)
			address += 4
		}

		if readErr != nil {
			return readErr
		}

		// Format output
		switch format {
		case 'x': // hex
			d.Printf(" 0x%016x", value)
		case 'd': // signed decimal
			d.Printf(" %d", int64(value))
		case 'u': // unsigned decimal
			d.Printf(" %d", value)
		case 'o': // octal
			d.Printf(" %o", value)
		case 't': // binary
			d.Printf(" %b", value)
		default:
			d.Printf(" 0x%016x", value)
		}
	}
	d.Println()

	return nil
}

// cmdInfo displays information about program state
func (d *Debugger) cmdInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: info <registers|csrs|breakpoints|watchpoints|stack>")
	}

	switch strings.ToLower(args[0]) {
	case "registers", "reg", "r":
		return d.showRegisters()
	case "csrs", "csr":
		return d.showCSRs()
	case "breakpoints", "break", "b":
		return d.showBreakpoints()
	case "watchpoints", "watch", "w":
		return d.showWatchpoints()
	case "stack", "s":
		return d.showStack()
	default:
		return fmt.Errorf("unknown info command: %s", args[0])
	}
}

// showRegisters displays all 32 x registers, pc, and privilege level
func (d *Debugger) showRegisters() error {
	d.Println("Registers:")
	for i := 0; i < 32; i += 4 {
		line := ""
		for j := 0; j < 4; j++ {
			reg := i + j
			line += fmt.Sprintf("x%-2d: 0x%016x  ", reg, d.Machine.GetRegister(reg))
		}
		d.Println(strings.TrimRight(line, " "))
	}
	d.Printf("pc : 0x%016x\n", d.Machine.CPU.PC)
	d.Printf("privilege: %s\n", privilegeName(d.Machine.Prv()))

	return nil
}

// showCSRs displays the control/status registers most useful while
// stepping through traps: mstatus/mepc/mcause/mtval, their supervisor
// counterparts, and satp.
func (d *Debugger) showCSRs() error {
	d.Println("CSRs:")
	show := func(name string, addr uint32) {
		v, ok := d.Machine.GetCSR(addr)
		if !ok {
			return
		}
		d.Printf("  %-8s = 0x%016x\n", name, v)
	}
	show("mstatus", cpu.MstatusAddr)
	show("mepc", cpu.MepcAddr)
	show("mcause", cpu.McauseAddr)
	show("mtval", cpu.MtvalAddr)
	show("mtvec", cpu.MtvecAddr)
	show("sepc", cpu.SepcAddr)
	show("scause", cpu.ScauseAddr)
	show("stval", cpu.StvalAddr)
	show("stvec", cpu.StvecAddr)
	show("satp", cpu.SatpAddr)
	return nil
}

func privilegeName(prv uint64) string {
	switch prv {
	case cpu.PrivUser:
		return "U"
	case cpu.PrivSupervisor:
		return "S"
	case cpu.PrivMachine:
		return "M"
	default:
		return fmt.Sprintf("unknown(%d)", prv)
	}
}

// showBreakpoints displays all breakpoints
func (d *Debugger) showBreakpoints() error {
	breakpoints := d.Breakpoints.GetAllBreakpoints()
	if len(breakpoints) == 0 {
		d.Println("No breakpoints")
		return nil
	}

	d.Println("Breakpoints:")
	for _, bp := range breakpoints {
		status := "enabled"
		if !bp.Enabled {
			status = "disabled"
		}

		temp := ""
		if bp.Temporary {
			temp = " (temporary)"
		}

		condition := ""
		if bp.Condition != "" {
			condition = fmt.Sprintf(" if %s", bp.Condition)
		}

		d.Printf("  %d: 0x%016x %s%s%s (hit %d times)\n",
			bp.ID, bp.Address, status, temp, condition, bp.HitCount)
	}

	return nil
}

// showWatchpoints displays all watchpoints
func (d *Debugger) showWatchpoints() error {
	watchpoints := d.Watchpoints.GetAllWatchpoints()
	if len(watchpoints) == 0 {
		d.Println("No watchpoints")
		return nil
	}

	d.Println("Watchpoints:")
	for _, wp := range watchpoints {
		status := "enabled"
		if !wp.Enabled {
			status = "disabled"
		}

		wpType := "write"
		if wp.Type == WatchRead {
			wpType = "read"
		} else if wp.Type == WatchReadWrite {
			wpType = "access"
		}

		d.Printf("  %d: %s %s %s (hit %d times, last value: 0x%016x)\n",
			wp.ID, wp.Expression, wpType, status, wp.HitCount, wp.LastValue)
	}

	return nil
}

// showStack displays stack contents around sp (x2)
func (d *Debugger) showStack() error {
	sp := d.Machine.GetRegister(2)
	d.Printf("Stack (sp = 0x%016x):\n", sp)

	// Show 8 doublewords from the stack
	for i := 0; i < 8; i++ {
		addr := sp + uint64(i*8)
		value, err := d.Machine.ReadDoubleword(addr)
		if err != nil {
			break
		}
		d.Printf("  0x%016x: 0x%016x (%d)\n", addr, value, int64(value))
	}

	return nil
}

// cmdBacktrace shows the call stack
func (d *Debugger) cmdBacktrace(args []string) error {
	d.Println("Call stack:")
	d.Printf("  #0  pc=0x%016x\n", d.Machine.CPU.PC)

	// Simple backtrace using ra (x1) - would need call stack tracking
	// for a full implementation.
	if ra := d.Machine.GetRegister(1); ra != 0 {
		d.Printf("  #1  ra=0x%016x\n", ra)
	}

	return nil
}

// cmdList shows source code around current PC
func (d *Debugger) cmdList(args []string) error {
	pc := d.Machine.CPU.PC

	// Show current instruction
	if source, exists := d.SourceMap[pc]; exists {
		d.Printf("=> 0x%016x: %s\n", pc, source)
	} else {
		d.Printf("=> 0x%016x: <no source>\n", pc)
	}

	// Show nearby instructions
	for offset := uint64(4); offset <= 16; offset += 4 {
		addr := pc + offset
		if source, exists := d.SourceMap[addr]; exists {
			d.Printf("   0x%016x: %s\n", addr, source)
		}
	}

	return nil
}

// cmdSet modifies register or memory values
func (d *Debugger) cmdSet(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: set <register|*address> = <value>")
	}

	if args[1] != "=" {
		return fmt.Errorf("usage: set <register|*address> = <value>")
	}

	target := strings.ToLower(args[0])
	valueStr := args[2]

	// Parse value
	value, err := d.Evaluator.EvaluateExpression(valueStr, d.Machine, d.Symbols)
	if err != nil {
		return err
	}

	// Check if memory dereference
	if strings.HasPrefix(target, "*") {
		addrStr := target[1:]
		address, err := d.ResolveAddress(addrStr)
		if err != nil {
			return err
		}

		if err := d.Machine.WriteWord(address, uint32(value)); err != nil {
			return err
		}

		d.Printf("Memory 0x%016x set to 0x%08x\n", address, uint32(value))
		return nil
	}

	// Parse register (or pc)
	num, isPC, ok := registerNumber(target)
	if !ok {
		return fmt.Errorf("invalid target: %s", target)
	}
	if isPC {
		d.Machine.CPU.PC = value
		d.Printf("pc set to 0x%016x\n", value)
		return nil
	}

	d.Machine.SetRegister(num, value)
	d.Printf("Register %s set to 0x%016x\n", target, value)

	return nil
}

// cmdLoad loads a program (placeholder)
func (d *Debugger) cmdLoad(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: load <filename>")
	}

	d.Printf("Load command not yet implemented for file: %s\n", args[0])
	return nil
}

// cmdReset resets the machine
func (d *Debugger) cmdReset(args []string) error {
	d.Machine.Reset()
	d.Println("machine reset")
	return nil
}

// cmdHelp displays help information
func (d *Debugger) cmdHelp(args []string) error {
	if len(args) > 0 {
		// Show help for specific command
		return d.showCommandHelp(args[0])
	}

	// Show general help
	d.Println("RV64 Debugger Commands:")
	d.Println()
	d.Println("Execution Control:")
	d.Println("  run (r)           - Start program execution")
	d.Println("  continue (c)      - Continue execution")
	d.Println("  step (s, si)      - Execute single instruction")
	d.Println("  next (n)          - Step over function calls")
	d.Println("  finish (fin)      - Step out of current function")
	d.Println()
	d.Println("Breakpoints:")
	d.Println("  break (b) <addr> [if <cond>] [in <u|s|m>] - Set breakpoint")
	d.Println("  tbreak (tb) <addr> [in <u|s|m>]           - Set temporary breakpoint")
	d.Println("  delete (d) [id]   - Delete breakpoint(s)")
	d.Println("  enable <id>       - Enable breakpoint")
	d.Println("  disable <id>      - Disable breakpoint")
	d.Println()
	d.Println("Watchpoints:")
	d.Println("  watch (w) <expr>  - Watch for writes (expr is a register, [addr], or $csr)")
	d.Println("  rwatch <expr>     - Like watch: stops on a value change (reads are not detected)")
	d.Println("  awatch <expr>     - Like watch: stops on a value change (reads are not detected)")
	d.Println()
	d.Println("Inspection:")
	d.Println("  print (p) <expr>  - Evaluate expression")
	d.Println("  x[/nfu] <addr>    - Examine memory")
	d.Println("  info (i) <what>   - Show information (registers, csrs, breakpoints, watchpoints, stack)")
	d.Println("  backtrace (bt)    - Show call stack")
	d.Println("  list (l)          - List source code")
	d.Println()
	d.Println("Modification:")
	d.Println("  set <var> = <val> - Modify register/memory")
	d.Println()
	d.Println("Control:")
	d.Println("  reset             - Reset machine")
	d.Println("  help (h, ?)       - Show this help")
	d.Println()
	d.Println("Type 'help <command>' for detailed help on a specific command.")

	return nil
}

// showCommandHelp shows detailed help for a specific command
func (d *Debugger) showCommandHelp(cmd string) error {
	helpText := map[string]string{
		"break": "break <address|label> [if <condition>]\n  Set a breakpoint at the specified address or label.\n  Optional condition will be evaluated each time.",
		"step":  "step\n  Execute a single instruction.",
		"next":  "next\n  Step over function calls (execute until next instruction at same level).",
		"print": "print <expression>\n  Evaluate and print an expression.\n  Expressions can include registers, memory, symbols, and arithmetic.",
		"x":     "x[/nfu] <address>\n  Examine memory.\n  n: count, f: format (x/d/u/o/t), u: unit (b/h/w/g)",
		"info":  "info <registers|csrs|breakpoints|watchpoints|stack>\n  Display information about program state.",
	}

	if help, exists := helpText[cmd]; exists {
		d.Println(help)
		return nil
	}

	return fmt.Errorf("no help available for command: %s", cmd)
}
