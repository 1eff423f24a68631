package cpu

import (
	"fmt"
	"io"
)

// RegisterSet is the register file of the machine.
type RegisterSet struct {
	Pc int // Index of the next instruction.
	Sp int // Address of the top of stack; below Ss when empty.
	Bp int // Base of the current frame.
	Ds int // Data segment base.
	Ss int // Stack segment base.
}

// Reset the registers to their power-on state.
func (regs *RegisterSet) Reset() {
	regs.Ds = DATA_SEGMENT
	regs.Ss = STACK_SEGMENT
	regs.Pc = 0
	regs.Sp = regs.Ss - 1
	regs.Bp = 0
}

// Hex renders a value as 0x-prefixed hexadecimal, sign first.
func Hex(value int) string {
	if value < 0 {
		return fmt.Sprintf("-0x%x", -value)
	}
	return fmt.Sprintf("0x%x", value)
}

// Dump writes the PC and SP in hexadecimal.
func (regs *RegisterSet) Dump(w io.Writer) (err error) {
	_, err = fmt.Fprintf(w, "PC: %v, SP: %v\n", Hex(regs.Pc), Hex(regs.Sp))
	return
}

// String returns all of the registers as a string.
func (regs RegisterSet) String() string {
	return fmt.Sprintf("pc=%d sp=%d bp=%d ds=%d ss=%d", regs.Pc, regs.Sp, regs.Bp, regs.Ds, regs.Ss)
}
