package trace

import "github.com/shanegibbs/risk5/cpu"

// jsonState is the wire shape of a state record: every numeric field
// as a HexU64 string, plus the 32-entry x-register vector. It carries
// the simulator's full CSR file so the validator can diff every field
// it restores.
type jsonState struct {
	ID  int    `json:"id"`
	PC  HexU64 `json:"pc"`
	Prv HexU64 `json:"prv"`

	Mstatus    HexU64 `json:"mstatus"`
	Medeleg    HexU64 `json:"medeleg"`
	Mideleg    HexU64 `json:"mideleg"`
	Mtvec      HexU64 `json:"mtvec"`
	Mepc       HexU64 `json:"mepc"`
	Mtval      HexU64 `json:"mtval"`
	Mcause     HexU64 `json:"mcause"`
	Mscratch   HexU64 `json:"mscratch"`
	Misa       HexU64 `json:"misa"`
	Mcounteren HexU64 `json:"mcounteren"`
	Mie        HexU64 `json:"mie"`
	Mip        HexU64 `json:"mip"`

	Sedeleg    HexU64 `json:"sedeleg"`
	Sideleg    HexU64 `json:"sideleg"`
	Sie        HexU64 `json:"sie"`
	Stvec      HexU64 `json:"stvec"`
	Scounteren HexU64 `json:"scounteren"`
	Sscratch   HexU64 `json:"sscratch"`
	Sepc       HexU64 `json:"sepc"`
	Scause     HexU64 `json:"scause"`
	Stval      HexU64 `json:"stval"`
	Sip        HexU64 `json:"sip"`
	Satp       HexU64 `json:"satp"`

	XRegs []HexU64 `json:"xregs"`
}

func (j jsonState) toState() cpu.State {
	s := cpu.State{
		PC:         uint64(j.PC),
		Prv:        uint64(j.Prv),
		Mstatus:    uint64(j.Mstatus),
		Medeleg:    uint64(j.Medeleg),
		Mideleg:    uint64(j.Mideleg),
		Mtvec:      uint64(j.Mtvec),
		Mepc:       uint64(j.Mepc),
		Mtval:      uint64(j.Mtval),
		Mcause:     uint64(j.Mcause),
		Mscratch:   uint64(j.Mscratch),
		Misa:       uint64(j.Misa),
		Mcounteren: uint64(j.Mcounteren),
		Mie:        uint64(j.Mie),
		Mip:        uint64(j.Mip),
		Sedeleg:    uint64(j.Sedeleg),
		Sideleg:    uint64(j.Sideleg),
		Sie:        uint64(j.Sie),
		Stvec:      uint64(j.Stvec),
		Scounteren: uint64(j.Scounteren),
		Sscratch:   uint64(j.Sscratch),
		Sepc:       uint64(j.Sepc),
		Scause:     uint64(j.Scause),
		Stval:      uint64(j.Stval),
		Sip:        uint64(j.Sip),
		Satp:       uint64(j.Satp),
	}
	for i, v := range j.XRegs {
		if i >= len(s.XRegs) {
			break
		}
		s.XRegs[i] = uint64(v)
	}
	return s
}

type jsonInsn struct {
	Core int    `json:"core"`
	PC   HexU64 `json:"pc"`
	Bits HexU32 `json:"bits"`
	Desc string `json:"desc"`
}

func (j jsonInsn) toInsn() Insn {
	return Insn{PC: uint64(j.PC), Bits: uint32(j.Bits), Desc: j.Desc}
}

type jsonMemory struct {
	Kind  string `json:"type"`
	Addr  HexU64 `json:"addr"`
	Value HexU64 `json:"value"`
}

func (j jsonMemory) toMemoryTrace() MemoryTrace {
	return MemoryTrace{Kind: j.Kind, Addr: uint64(j.Addr), Value: uint64(j.Value)}
}
