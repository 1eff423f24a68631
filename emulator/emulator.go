// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	stdio "io"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/mepa/cpu"
	"github.com/ezrec/mepa/internal"
	"github.com/ezrec/mepa/io"
)

var _emulator_defines = map[string]string{
	"TRUE":  "1",
	"FALSE": "0",
}

// Emulator state. CPU + memory + IO channels.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program.

	Tape io.Tape // Line oriented input and output.

	Trace   stdio.Writer              // If set, receives a line per instruction.
	Inspect func(emu *Emulator) error // Called by INSPECT, if set.

	State  State // Execution state.
	Halted bool  // Set when the program stopped at PARA.
}

// NewEmulator creates a new emulator with a memory of size words.
func NewEmulator(size int) (emu *Emulator, err error) {
	machine, err := cpu.NewCpu(size)
	if err != nil {
		return
	}

	emu = &Emulator{
		Cpu:     machine,
		Program: &cpu.Program{},
	}

	emu.Cpu.Input = &emu.Tape
	emu.Cpu.Output = &emu.Tape
	emu.Cpu.Inspect = func(*cpu.Cpu) error {
		if emu.Inspect == nil {
			return nil
		}
		return emu.Inspect(emu)
	}
	emu.Cpu.Trace = func(_ *cpu.Cpu, ins cpu.Instruction) error {
		if emu.Trace == nil {
			return nil
		}
		return emu.trace(ins)
	}

	return
}

// Defines returns an iterator over all of the defines, in name order.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.SortedSeq2(internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	))
}

// Assembler returns an assembler with the emulator defines predefined.
func (emu *Emulator) Assembler() (asm *cpu.Assembler) {
	asm = &cpu.Assembler{Verbose: emu.Verbose}
	for name, value := range emu.Defines() {
		asm.Predefine(name, value)
	}

	return
}

// Reset the machine state, keeping the loaded program.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.State = STATE_READY
	emu.Halted = false
}

// Load a program to run from its first instruction.
// Memory and the stack are preserved.
func (emu *Emulator) Load(prog *cpu.Program) {
	if emu.Verbose {
		log.Printf("emu: load %d instructions", prog.Len())
	}

	emu.Program = prog
	emu.Cpu.Register.Pc = 0
	emu.State = STATE_READY
	emu.Halted = false
}

// Pc returns current program counter.
func (emu *Emulator) Pc() int {
	return emu.Cpu.Register.Pc
}

// LineNo returns the source line number of the current instruction.
func (emu *Emulator) LineNo() int {
	lineno, _ := emu.Program.Debug(emu.Pc())
	return lineno
}

// trace writes the state before the execution of an instruction.
func (emu *Emulator) trace(ins cpu.Instruction) (err error) {
	var args []string
	for arg := range ins.Args() {
		args = append(args, fmt.Sprintf("%d", int64(arg)))
	}

	_, err = fmt.Fprintf(emu.Trace, "PC: %v SP: %v INSTR: %v ARGS: [%v]\n",
		cpu.Hex(emu.Pc()), cpu.Hex(emu.Cpu.Register.Sp), ins.Opcode().Mnemonic(), strings.Join(args, ", "))
	return
}

// Tick performs a single instruction of the emulator.
// done is set when the program halts or runs past its last instruction.
func (emu *Emulator) Tick() (done bool, err error) {
	switch emu.State {
	case STATE_FINISHED:
		done = true
		return
	case STATE_FAULTED:
		err = ErrFaulted
		return
	}

	if emu.Program == nil {
		err = ErrNoProgram
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose
	emu.State = STATE_RUNNING

	pc := emu.Pc()
	lineno := emu.LineNo()

	err = emu.Cpu.Tick(emu.Program)
	switch {
	case errors.Is(err, cpu.ErrPcEmpty):
		err = nil
		done = true
		emu.State = STATE_FINISHED
	case errors.Is(err, cpu.ErrHalt):
		if emu.Verbose {
			log.Printf("emu: halt at pc %d", pc)
		}
		err = nil
		done = true
		emu.Halted = true
		emu.State = STATE_FINISHED
	case err != nil:
		emu.State = STATE_FAULTED
		err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
	}

	return
}

// Run the loaded program until it finishes or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Dump writes the memory followed by the registers.
func (emu *Emulator) Dump(w stdio.Writer) (err error) {
	err = emu.Cpu.Memory.Dump(w)
	if err != nil {
		return
	}

	err = emu.Cpu.Register.Dump(w)
	return
}
