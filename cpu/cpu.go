// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/mepa/io"
)

// Channel is an I/O channel interface.
type Channel io.Channel

// Cpu is the simulation context for the MEPA machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register RegisterSet // Register file.
	Memory   *Memory     // Flat memory, including the stack.

	Input  Channel // Source of LEIT.
	Output Channel // Destination of IMPR.

	Inspect func(cpu *Cpu) error                   // Called by INSPECT, if set.
	Trace   func(cpu *Cpu, ins Instruction) error // Called before each execution, if set.

	Ticks int // Executed instruction counter.
}

// NewCpu creates a new CPU with a memory of size words.
func NewCpu(size int) (cpu *Cpu, err error) {
	cpu = &Cpu{}
	cpu.Register.Reset()

	cpu.Memory, err = NewMemory(size, &cpu.Register)
	if err != nil {
		cpu = nil
		return
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(cpu.Memory.Layout.Defines())
}

// Reset the CPU state.
// - Resets the registers.
// - Refills the memory.
// - Zeros statistics counters.
// - Rewinds the IO channels.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Memory.Reset()
	cpu.Ticks = 0

	for _, channel := range []Channel{cpu.Input, cpu.Output} {
		if channel != nil {
			channel.Rewind()
		}
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = cpu.Register.String()
	if top, ok := cpu.Memory.Peek(); ok {
		text += fmt.Sprintf(" top=%d", int64(top))
	} else {
		text += " top=-"
	}
	return
}

// Fetch returns the instruction at the program counter.
func (cpu *Cpu) Fetch(prog *Program) (ins Instruction, err error) {
	ins, ok := prog.At(cpu.Register.Pc)
	if !ok {
		err = ErrPcEmpty
		return
	}

	return
}

// Load pushes the literal arguments of an instruction, in source order.
func (cpu *Cpu) Load(ins Instruction) (err error) {
	for arg := range ins.Args() {
		err = cpu.Memory.Push(arg)
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single fetch, load, execute cycle.
// The Trace hook sees the machine after the arguments are loaded.
func (cpu *Cpu) Tick(prog *Program) (err error) {
	ins, err := cpu.Fetch(prog)
	if err != nil {
		return
	}

	err = cpu.Load(ins)
	if err != nil {
		err = ErrMnemonic{Mnemonic: ins.Opcode().Mnemonic(), Err: err}
		return
	}

	if cpu.Trace != nil {
		err = cpu.Trace(cpu, ins)
		if err != nil {
			return
		}
	}

	err = cpu.Execute(ins.Opcode())
	return
}

// pop removes n values from the stack; the first returned value was on top.
func (cpu *Cpu) pop(values ...*Word) (err error) {
	for _, value := range values {
		*value, err = cpu.Memory.Pop()
		if err != nil {
			return
		}
	}

	return
}

// address computes the absolute address of offset n at nesting level k.
func (cpu *Cpu) address(k, n Word) (addr Word, err error) {
	bp, err := cpu.Memory.Display(k)
	if err != nil {
		return
	}

	addr = bp + n
	return
}

// Execute executes a single opcode, whose arguments are on the stack.
// ErrHalt is returned by PARA; the program counter is then unchanged.
func (cpu *Cpu) Execute(op Opcode) (err error) {
	defer func() {
		if err != nil && !errors.Is(err, ErrHalt) {
			err = ErrMnemonic{Mnemonic: op.Mnemonic(), Err: err}
		}
	}()

	regs := &cpu.Register
	mem := cpu.Memory

	if cpu.Verbose {
		log.Printf("cpu: %03d: %v (%v)", regs.Pc, op.Mnemonic(), regs)
	}

	next_pc := regs.Pc + 1

	var k, n, value Word

	switch op {
	case OP_NADA, OP_CRCT:
		// The constant of CRCT was pushed by Load.
	case OP_SOMA, OP_SUBT, OP_MULT, OP_DIVI, OP_MODU,
		OP_CONJ, OP_DISJ,
		OP_CMME, OP_CMMA, OP_CMIG, OP_CMDG, OP_CMAG, OP_CMEG:
		var value1, value2 Word
		err = cpu.pop(&value2, &value1)
		if err != nil {
			return
		}
		value, err = doAlu(op, value1, value2)
		if err != nil {
			return
		}
		err = mem.Push(value)
	case OP_INVR, OP_NEGA:
		err = cpu.pop(&value)
		if err != nil {
			return
		}
		if op == OP_INVR {
			value = -value
		} else {
			value = boolWord(value == 0)
		}
		err = mem.Push(value)
	case OP_CRVL, OP_CRVI, OP_CREN:
		var addr Word
		err = cpu.pop(&n, &k)
		if err != nil {
			return
		}
		addr, err = cpu.address(k, n)
		if err != nil {
			return
		}
		if op == OP_CRVI {
			addr, err = mem.Get(addr)
			if err != nil {
				return
			}
		}
		value = addr
		if op != OP_CREN {
			value, err = mem.Get(addr)
			if err != nil {
				return
			}
		}
		err = mem.Push(value)
	case OP_ARMZ, OP_ARMI:
		var addr Word
		err = cpu.pop(&n, &k, &value)
		if err != nil {
			return
		}
		addr, err = cpu.address(k, n)
		if err != nil {
			return
		}
		if op == OP_ARMI {
			addr, err = mem.Get(addr)
			if err != nil {
				return
			}
		}
		err = mem.Set(addr, value)
	case OP_DSVS:
		var p Word
		err = cpu.pop(&p)
		if err != nil {
			return
		}
		next_pc = int(p)
	case OP_DSVF:
		var p, cond Word
		err = cpu.pop(&p, &cond)
		if err != nil {
			return
		}
		if cond == 0 {
			next_pc = int(p)
		}
	case OP_LEIT:
		if cpu.Input == nil {
			err = ErrChannelInvalid
			return
		}
		var input int64
		input, err = cpu.Input.Receive()
		if err != nil {
			return
		}
		err = mem.Push(Word(input))
	case OP_IMPR:
		if cpu.Output == nil {
			err = ErrChannelInvalid
			return
		}
		err = cpu.pop(&value)
		if err != nil {
			return
		}
		err = cpu.Output.Send(int64(value))
	case OP_INPP:
		err = mem.SetDisplay(0, 0)
	case OP_AMEM, OP_DMEM:
		err = cpu.pop(&n)
		if err != nil {
			return
		}
		if op == OP_DMEM {
			n = -n
		}
		err = mem.Allocate(n)
	case OP_PARA:
		err = ErrHalt
		return
	case OP_CHPR:
		var p Word
		err = cpu.pop(&k, &p)
		if err != nil {
			return
		}
		frame := [](struct {
			value Word
			tag   string
		}){
			{Word(regs.Pc + 1), TAG_RETURN},
			{Word(regs.Bp), TAG_BASE},
			{k, TAG_LEVEL},
		}
		for _, saved := range frame {
			err = mem.Push(saved.value)
			if err != nil {
				return
			}
			mem.Tag(regs.Sp, saved.tag)
		}
		next_pc = int(p)
	case OP_ENPR:
		err = cpu.pop(&k)
		if err != nil {
			return
		}
		bp := regs.Sp + 1
		err = mem.SetDisplay(k, Word(bp))
		if err != nil {
			return
		}
		regs.Bp = bp
	case OP_RTPR:
		var saved_k, saved_bp, saved_pc Word
		err = cpu.pop(&n, &k, &saved_k, &saved_bp, &saved_pc)
		if err != nil {
			return
		}
		err = mem.SetDisplay(saved_k, saved_bp)
		if err != nil {
			return
		}
		err = mem.Allocate(-n)
		if err != nil {
			return
		}
		regs.Bp = int(saved_bp)
		next_pc = int(saved_pc)
	case OP_DSVR:
		next_pc, err = cpu.labelJump()
	case OP_ENRT:
		err = cpu.labelEnter()
	case OP_ASSERT:
		var value1, value2 Word
		err = cpu.pop(&value1, &value2)
		if err != nil {
			return
		}
		if value1 != value2 {
			err = ErrAssert{Want: value1, Got: value2}
			return
		}
	case OP_INSPECT:
		if cpu.Inspect != nil {
			err = cpu.Inspect(cpu)
		}
	default:
		err = ErrInstructionInvalid
	}

	if err != nil {
		return
	}

	regs.Pc = next_pc
	cpu.Ticks++

	return
}

// boolWord converts a truth value to 1 or 0.
func boolWord(value bool) Word {
	if value {
		return 1
	}
	return 0
}

// doAlu performs a binary operation, and returns the output value.
func doAlu(op Opcode, value1 Word, value2 Word) (output Word, err error) {
	switch op {
	case OP_SOMA:
		output = value1 + value2
	case OP_SUBT:
		output = value1 - value2
	case OP_MULT:
		output = value1 * value2
	case OP_DIVI, OP_MODU:
		if value2 == 0 {
			err = ErrDivisionByZero
			return
		}
		quo, rem := value1/value2, value1%value2
		// Round toward negative infinity.
		if rem != 0 && (rem < 0) != (value2 < 0) {
			quo--
			rem += value2
		}
		output = quo
		if op == OP_MODU {
			output = rem
		}
	case OP_CONJ:
		output = boolWord(value1 != 0 && value2 != 0)
	case OP_DISJ:
		output = boolWord(value1 != 0 || value2 != 0)
	case OP_CMME:
		output = boolWord(value1 < value2)
	case OP_CMMA:
		output = boolWord(value1 > value2)
	case OP_CMIG:
		output = boolWord(value1 == value2)
	case OP_CMDG:
		output = boolWord(value1 != value2)
	case OP_CMAG:
		output = boolWord(value1 >= value2)
	case OP_CMEG:
		output = boolWord(value1 <= value2)
	default:
		err = ErrInstructionInvalid
	}

	return
}
