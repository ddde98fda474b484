package debugger

import (
	"fmt"
	"io"

	"github.com/shanegibbs/risk5/cpu"
	"github.com/shanegibbs/risk5/elf"
	"github.com/shanegibbs/risk5/internal/rvlog"
	"github.com/shanegibbs/risk5/isa"
	"github.com/shanegibbs/risk5/memory"
	"github.com/shanegibbs/risk5/mmu"
)

// State is the debugger's own run-state bookkeeping for a Machine. It
// has no architectural meaning -- the instruction set itself has no
// notion of "halted" -- it exists purely so the CLI/TUI/GUI front ends
// can tell an interactive session apart from one that has ecall'd its
// way to a stop.
type State int

const (
	StateRunning State = iota
	StateHalted
	StateBreakpoint
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateHalted:
		return "halted"
	case StateBreakpoint:
		return "breakpoint"
	default:
		return "unknown"
	}
}

// Machine is the debugger's view of a running simulation: a CPU, the
// matcher table it dispatches through, and a retired-instruction count,
// plus x0-x31, the CSR file, and privilege levels the debugger front
// ends need to display.
type Machine struct {
	CPU      *cpu.CPU
	Matchers *isa.Matchers
	Cycles   uint64

	// Entry is the pc a Reset returns to.
	Entry uint64

	State    State
	ExitCode int

	// OutputWriter, when set, receives anything the running program
	// writes through a debugger-visible console (the GUI hooks this up
	// to its own console pane; nil elsewhere).
	OutputWriter io.Writer
}

// NewMachine wraps an already-configured CPU (fresh or restored from a
// trace.State) with the default matcher table.
func NewMachine(c *cpu.CPU) *Machine {
	return &Machine{CPU: c, Matchers: isa.Default(), Entry: c.PC, State: StateRunning}
}

// LoadELF builds a Machine whose memory and initial pc come from an ELF
// binary at path.
func LoadELF(path string) (*Machine, error) {
	img, err := elf.Load(path)
	if err != nil {
		return nil, err
	}
	c := cpu.NewCPU(mmu.New(img.Memory))
	c.PC = img.Entry
	return NewMachine(c), nil
}

// NewBareMachine builds a Machine over an empty, sparse address space,
// for interactive sessions that single-step hand-assembled instructions
// rather than a loaded binary.
func NewBareMachine() *Machine {
	c := cpu.NewCPU(mmu.New(memory.NewByteMap()))
	return NewMachine(c)
}

// Step executes exactly one instruction and advances the cycle count.
//
// A trap delivered to an unconfigured vector (mtvec/stvec still 0, its
// power-on value) lands execution at address 0 with nowhere further to
// go; the debugger treats that as the program's natural end rather than
// single-stepping it into a fetch fault, reading a0 as the conventional
// exit code.
//
// The memory backends panic on access outside what was loaded or
// primed. During a debugger session that means the guest wandered off
// the program image, so Step converts the panic into an error and halts
// instead of taking the whole session down.
func (m *Machine) Step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			m.State = StateHalted
			err = fmt.Errorf("debugger: step at pc=0x%016x: %v", m.CPU.PC, r)
		}
	}()
	isa.Step(m.CPU, m.Matchers)
	m.Cycles++
	if m.CPU.PC == 0 && m.Entry != 0 {
		m.State = StateHalted
		m.ExitCode = int(int32(m.GetRegister(10)))
		rvlog.Log.Printf("machine halted after %d cycles, exit code %d", m.Cycles, m.ExitCode)
	}
	return nil
}

// Reset restores the CPU's registers, CSRs, and pc to their power-on
// values and returns pc to Entry, discarding any trap/CSR state built up
// since the Machine was created. Loaded memory is left untouched.
func (m *Machine) Reset() {
	m.CPU.Regs.Reset()
	m.CPU.CSRs = cpu.NewCsrs()
	m.CPU.PC = m.Entry
	m.CPU.Cycles = 0
	m.CPU.MMU.SetBareMode()
	m.CPU.MMU.SetPrivilege(cpu.PrivMachine, m.CPU.CSRs.Mstatus())

	m.Cycles = 0
	m.ExitCode = 0
	m.State = StateRunning
}

// GetRegister reads x-register n (0-31); x0 always reads as zero.
func (m *Machine) GetRegister(n int) uint64 {
	return m.CPU.Regs.Get(uint32(n))
}

// SetRegister writes x-register n; writes to x0 are silently dropped,
// matching the architectural register file.
func (m *Machine) SetRegister(n int, v uint64) {
	m.CPU.Regs.Set(uint32(n), v)
}

// inspect runs fn, converting a memory-backend panic (an unmapped or
// out-of-range physical address) into an error. Inspection accesses are
// not architectural, so a hex-dump view scrolling past the loaded image
// reports "??" instead of crashing the session.
func inspect(op string, addr uint64, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("debugger: %s at 0x%016x: %v", op, addr, r)
		}
	}()
	return fn()
}

// ReadWord reads a 32-bit value from virtual memory through the CPU's
// MMU, for the debugger's memory-inspection commands. A translation or
// access fault is reported as an error rather than delivered as a trap,
// since inspecting memory is not an architectural instruction fetch.
func (m *Machine) ReadWord(addr uint64) (v uint32, err error) {
	err = inspect("read word", addr, func() error {
		val, trap, ok := m.CPU.MMU.ReadWord(addr)
		if !ok {
			return faultError("read word", addr, trap)
		}
		v = val
		return nil
	})
	return v, err
}

// ReadByte reads a single byte from virtual memory through the MMU.
func (m *Machine) ReadByte(addr uint64) (v uint8, err error) {
	err = inspect("read byte", addr, func() error {
		val, trap, ok := m.CPU.MMU.ReadByte(addr)
		if !ok {
			return faultError("read byte", addr, trap)
		}
		v = val
		return nil
	})
	return v, err
}

// ReadHalfword reads a 16-bit value from virtual memory through the MMU.
func (m *Machine) ReadHalfword(addr uint64) (v uint16, err error) {
	err = inspect("read halfword", addr, func() error {
		val, trap, ok := m.CPU.MMU.ReadHalfword(addr)
		if !ok {
			return faultError("read halfword", addr, trap)
		}
		v = val
		return nil
	})
	return v, err
}

// ReadDoubleword reads a 64-bit value from virtual memory through the MMU.
func (m *Machine) ReadDoubleword(addr uint64) (v uint64, err error) {
	err = inspect("read doubleword", addr, func() error {
		val, trap, ok := m.CPU.MMU.ReadDoubleword(addr)
		if !ok {
			return faultError("read doubleword", addr, trap)
		}
		v = val
		return nil
	})
	return v, err
}

// WriteByte writes a single byte to virtual memory through the MMU.
func (m *Machine) WriteByte(addr uint64, v uint8) error {
	return inspect("write byte", addr, func() error {
		if trap, ok := m.CPU.MMU.WriteByte(addr, v); !ok {
			return faultError("write byte", addr, trap)
		}
		return nil
	})
}

// WriteHalfword writes a 16-bit value to virtual memory through the MMU.
func (m *Machine) WriteHalfword(addr uint64, v uint16) error {
	return inspect("write halfword", addr, func() error {
		if trap, ok := m.CPU.MMU.WriteHalfword(addr, v); !ok {
			return faultError("write halfword", addr, trap)
		}
		return nil
	})
}

// WriteWord writes a 32-bit value to virtual memory through the MMU.
func (m *Machine) WriteWord(addr uint64, v uint32) error {
	return inspect("write word", addr, func() error {
		if trap, ok := m.CPU.MMU.WriteWord(addr, v); !ok {
			return faultError("write word", addr, trap)
		}
		return nil
	})
}

// WriteDoubleword writes a 64-bit value to virtual memory through the MMU.
func (m *Machine) WriteDoubleword(addr uint64, v uint64) error {
	return inspect("write doubleword", addr, func() error {
		if trap, ok := m.CPU.MMU.WriteDoubleword(addr, v); !ok {
			return faultError("write doubleword", addr, trap)
		}
		return nil
	})
}

// Prv returns the CPU's current privilege level (0=U, 1=S, 3=M).
func (m *Machine) Prv() uint64 { return m.CPU.Prv() }

// GetCSR reads a CSR by address, returning false if it is unknown.
func (m *Machine) GetCSR(addr uint32) (uint64, bool) {
	v, _, ok := m.CPU.GetCSR(addr)
	return v, ok
}

func faultError(op string, addr uint64, trap cpu.Trap) error {
	return fmt.Errorf("debugger: %s at 0x%016x faulted (cause %d)", op, addr, trap.Cause)
}
