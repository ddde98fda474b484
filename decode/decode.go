// Package decode implements the RV64I instruction-format field views:
// thin shift-and-mask accessors over a raw 32-bit encoding for the R,
// I, S, B, U and J formats, plus the sign-extension primitive they all
// share. The immediate formulas follow the ISA manual bit for bit,
// since a validator run against a real reference log must reproduce
// them exactly.
package decode

// SignExtend widens val, whose meaningful content is the low width
// bits, to a signed 64-bit value: shift left to put the sign bit at bit
// 63, then arithmetic-shift right by the same amount.
func SignExtend(val uint64, width uint) int64 {
	shift := 64 - width
	return int64(val<<shift) >> shift
}

// Insn is a raw 32-bit instruction word with format-agnostic field
// accessors common to every RV64I encoding.
type Insn uint32

func (i Insn) Bits() uint32 { return uint32(i) }

func (i Insn) Opcode() uint32 { return uint32(i) & 0x7f }
func (i Insn) Funct3() uint32 { return (uint32(i) >> 12) & 0x7 }
func (i Insn) Funct7() uint32 { return (uint32(i) >> 25) & 0x7f }

func (i Insn) Rd() uint32  { return (uint32(i) >> 7) & 0x1f }
func (i Insn) Rs1() uint32 { return (uint32(i) >> 15) & 0x1f }
func (i Insn) Rs2() uint32 { return (uint32(i) >> 20) & 0x1f }

// Shamt64 is the shift amount for 64-bit shift-immediate instructions,
// masked to 6 bits.
func (i Insn) Shamt64() uint32 { return (uint32(i) >> 20) & 0x3f }

// Shamt32 is the shift amount for the *w 32-bit shift-immediate
// variants, masked to 5 bits.
func (i Insn) Shamt32() uint32 { return (uint32(i) >> 20) & 0x1f }

// Csr is the 12-bit CSR address embedded in the I-type immediate field
// of the System group's CSR instructions.
func (i Insn) Csr() uint32 { return (uint32(i) >> 20) & 0xfff }

// ImmI is the I-type immediate: sign-extend(bits[31:20], 12).
func (i Insn) ImmI() int64 {
	bits := uint64(i) >> 20
	return SignExtend(bits, 12)
}

// ImmS is the S-type immediate: sign-extend((bits[31:25]<<5)|bits[11:7], 12).
func (i Insn) ImmS() int64 {
	bits := ((uint64(i) >> 25 & 0x7f) << 5) | (uint64(i) >> 7 & 0x1f)
	return SignExtend(bits, 12)
}

// ImmB is the B-type immediate: sign-extend((bits[31]<<12)|(bits[7]<<11)|
// (bits[30:25]<<5)|(bits[11:8]<<1), 13).
func (i Insn) ImmB() int64 {
	w := uint64(i)
	bits := (w >> 31 & 0x1 << 12) |
		(w >> 7 & 0x1 << 11) |
		(w >> 25 & 0x3f << 5) |
		(w >> 8 & 0xf << 1)
	return SignExtend(bits, 13)
}

// ImmU is the U-type immediate: (sign-extend(bits, 32)) & ~0xFFF,
// equivalently (s32(bits) >> 12) << 12.
func (i Insn) ImmU() int64 {
	return int64(int32(uint32(i))) &^ 0xfff
}

// ImmJ is the J-type immediate: sign-extend((bits[31]<<20)|(bits[19:12]<<12)|
// (bits[20]<<11)|(bits[30:21]<<1), 21).
func (i Insn) ImmJ() int64 {
	w := uint64(i)
	bits := (w >> 31 & 0x1 << 20) |
		(w >> 12 & 0xff << 12) |
		(w >> 20 & 0x1 << 11) |
		(w >> 21 & 0x3ff << 1)
	return SignExtend(bits, 21)
}
