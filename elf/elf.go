// Package elf loads a compiled RV64 ELF binary into a physical memory
// image, built directly on the standard library's debug/elf.
package elf

import (
	"debug/elf"
	"fmt"

	"github.com/shanegibbs/risk5/memory"
)

// Image is a loaded binary's physical memory and entry point, ready to
// back a fresh MMU/CPU pair.
type Image struct {
	Memory *memory.BlockStore
	Entry  uint64
}

// Load reads path as a 64-bit RISC-V ELF and copies its loadable (PT_LOAD)
// segments into a single dense memory.BlockStore spanning their full
// address range. Bytes beyond each segment's file size (memsz > filesz,
// i.e. .bss) are left zeroed, matching what an OS loader would do.
func Load(path string) (*Image, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rv64sim: open elf: %w", err)
	}
	defer f.Close()

	if f.Class != elf.ELFCLASS64 {
		return nil, fmt.Errorf("rv64sim: expected a 64-bit ELF, got %s", f.Class)
	}
	if f.Machine != elf.EM_RISCV {
		return nil, fmt.Errorf("rv64sim: expected an EM_RISCV binary, got %s", f.Machine)
	}

	loads, lo, hi, err := loadSegments(f)
	if err != nil {
		return nil, err
	}

	store := memory.NewBlockStore(lo, hi-lo)
	for _, p := range loads {
		if p.Filesz == 0 {
			continue // pure-bss segment, already zeroed
		}
		data := make([]byte, p.Filesz)
		if _, err := p.ReadAt(data, 0); err != nil {
			return nil, fmt.Errorf("rv64sim: read segment at 0x%x: %w", p.Vaddr, err)
		}
		store.LoadBytes(p.Vaddr, data)
	}

	return &Image{Memory: store, Entry: f.Entry}, nil
}

func loadSegments(f *elf.File) ([]*elf.Prog, uint64, uint64, error) {
	var loads []*elf.Prog
	var lo, hi uint64
	for _, p := range f.Progs {
		if p.Type != elf.PT_LOAD {
			continue
		}
		end := p.Vaddr + p.Memsz
		if len(loads) == 0 || p.Vaddr < lo {
			lo = p.Vaddr
		}
		if len(loads) == 0 || end > hi {
			hi = end
		}
		loads = append(loads, p)
	}
	if len(loads) == 0 {
		return nil, 0, 0, fmt.Errorf("rv64sim: elf file has no PT_LOAD segments")
	}
	return loads, lo, hi, nil
}
