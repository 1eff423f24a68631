package cpu

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Instruction is an assembled instruction: an opcode, its resolved
// literal arguments, and its source location.
type Instruction struct {
	opcode Opcode
	args   []Word
	lineNo int
	line   string
}

// MakeInstruction creates an instruction with literal arguments.
func MakeInstruction(op Opcode, args ...Word) Instruction {
	return Instruction{opcode: op, args: slices.Clone(args)}
}

// Opcode returns the operation of the instruction.
func (ins Instruction) Opcode() Opcode {
	return ins.opcode
}

// Args returns the literal arguments, in source order.
func (ins Instruction) Args() iter.Seq[Word] {
	return slices.Values(ins.args)
}

// NumArgs returns the number of literal arguments.
func (ins Instruction) NumArgs() int {
	return len(ins.args)
}

// LineNo returns the source line number, or 0 if unknown.
func (ins Instruction) LineNo() int {
	return ins.lineNo
}

// Line returns the source text of the instruction.
func (ins Instruction) Line() string {
	return ins.line
}

// String returns the canonical assembly text of the instruction.
func (ins Instruction) String() string {
	if len(ins.args) == 0 {
		return ins.opcode.Mnemonic()
	}

	args := make([]string, len(ins.args))
	for n, arg := range ins.args {
		args[n] = fmt.Sprintf("%d", int64(arg))
	}

	return ins.opcode.Mnemonic() + " " + strings.Join(args, ",")
}

// Program is an assembled, fully linked, program.
// It is not modified after assembly.
type Program struct {
	instructions []Instruction
	labels       map[string]int
}

// NewProgram creates a program from a list of instructions.
func NewProgram(instructions ...Instruction) *Program {
	return &Program{
		instructions: slices.Clone(instructions),
		labels:       map[string]int{},
	}
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.instructions)
}

// At returns the instruction at pc.
func (prog *Program) At(pc int) (ins Instruction, ok bool) {
	if pc < 0 || pc >= len(prog.instructions) {
		return
	}

	return prog.instructions[pc], true
}

// All returns the instructions, indexed by pc.
func (prog *Program) All() iter.Seq2[int, Instruction] {
	return slices.All(prog.instructions)
}

// Label returns the instruction index of a label.
func (prog *Program) Label(name string) (pc int, ok bool) {
	pc, ok = prog.labels[name]
	return
}

// Labels returns all of the labels, in name order.
func (prog *Program) Labels() iter.Seq2[string, int] {
	return func(yield func(name string, pc int) bool) {
		for _, name := range slices.Sorted(maps.Keys(prog.labels)) {
			if !yield(name, prog.labels[name]) {
				return
			}
		}
	}
}

// Debug returns the source line number and text of the instruction at pc.
func (prog *Program) Debug(pc int) (lineNo int, line string) {
	ins, ok := prog.At(pc)
	if ok {
		lineNo = ins.lineNo
		line = ins.line
	}

	return
}

// String returns a listing of the program, with labels.
func (prog *Program) String() string {
	at := map[int][]string{}
	for name, pc := range prog.Labels() {
		at[pc] = append(at[pc], name)
	}

	var text strings.Builder
	for pc, ins := range prog.All() {
		for _, name := range at[pc] {
			fmt.Fprintf(&text, "%v:\n", name)
		}
		fmt.Fprintf(&text, "%03d:\t%v\n", pc, ins)
	}
	for _, name := range at[len(prog.instructions)] {
		fmt.Fprintf(&text, "%v:\n", name)
	}

	return text.String()
}
