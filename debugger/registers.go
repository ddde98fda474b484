package debugger

import "strconv"

// abiRegisterNames maps the RISC-V calling-convention names to their x
// register number, per the standard ABI register-name table. pc is not a
// general register and is handled separately by each caller.
var abiRegisterNames = map[string]int{
	"zero": 0, "ra": 1, "sp": 2, "gp": 3, "tp": 4,
	"t0": 5, "t1": 6, "t2": 7,
	"s0": 8, "fp": 8, "s1": 9,
	"a0": 10, "a1": 11, "a2": 12, "a3": 13, "a4": 14, "a5": 15, "a6": 16, "a7": 17,
	"s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23, "s8": 24, "s9": 25, "s10": 26, "s11": 27,
	"t3": 28, "t4": 29, "t5": 30, "t6": 31,
}

// registerNumber resolves a register name -- "x0".."x31", an ABI alias
// (sp, ra, a0, ...), or "pc" -- to its register number. pc is reported
// with isPC set and num 0, since it is not part of the x register file.
func registerNumber(name string) (num int, isPC bool, ok bool) {
	if name == "pc" {
		return 0, true, true
	}
	if n, found := abiRegisterNames[name]; found {
		return n, false, true
	}
	if len(name) >= 2 && name[0] == 'x' {
		if n, err := strconv.Atoi(name[1:]); err == nil && n >= 0 && n <= 31 {
			return n, false, true
		}
	}
	return 0, false, false
}

// isRegisterOrPC reports whether name names a register or pc.
func isRegisterOrPC(name string) bool {
	_, _, ok := registerNumber(name)
	return ok
}
