package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel_Jump(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpu(t)
	prog := NewProgram(
		MakeInstruction(OP_INPP),
		MakeInstruction(OP_CHPR, 3, 1),
		MakeInstruction(OP_PARA),
		MakeInstruction(OP_ENPR, 1),
		MakeInstruction(OP_AMEM, 1),
		MakeInstruction(OP_CHPR, 10, 2),
		MakeInstruction(OP_ENRT, 1, 1), // Target of the DSVR.
		MakeInstruction(OP_INSPECT),
		MakeInstruction(OP_DMEM, 1),
		MakeInstruction(OP_RTPR, 1, 0),
		MakeInstruction(OP_ENPR, 2),
		MakeInstruction(OP_AMEM, 2),
		MakeInstruction(OP_DSVR, 6, 1, 2),
	)

	var seen []string
	var display Word
	cpu.Inspect = func(cpu *Cpu) (err error) {
		seen = append(seen, cpu.Register.String())
		display, err = cpu.Memory.Display(2)
		return
	}

	var err error
	for err == nil {
		err = cpu.Tick(prog)
	}
	assert.ErrorIs(err, ErrHalt)
	assert.Equal(2, cpu.Register.Pc)
	assert.True(cpu.Memory.Empty())

	assert.Equal([]string{"pc=7 sp=3 bp=3 ds=0 ss=0"}, seen)
	assert.Equal(Word(3), display)
}

func TestLabel_Faults(t *testing.T) {
	table := [](struct {
		name string
		code []Instruction
		err  error
	}){
		{"chain", []Instruction{
			MakeInstruction(OP_INPP),
			MakeInstruction(OP_CHPR, 2, 2),
			MakeInstruction(OP_ENPR, 2),
			MakeInstruction(OP_DSVR, 0, 1, 2),
		}, ErrFrameChain},
		{"level", []Instruction{
			MakeInstruction(OP_DSVR, 0, 0, D_SEGMENT_SIZE),
		}, ErrLevel},
		{"empty", []Instruction{
			MakeInstruction(OP_DSVR, 0, 0),
		}, ErrStackEmpty},
		{"enrt-full", []Instruction{
			MakeInstruction(OP_INPP),
			MakeInstruction(OP_ENRT, 0, MEMORY_SIZE),
		}, ErrStackFull},
		{"enrt-empty", []Instruction{
			MakeInstruction(OP_INPP),
			MakeInstruction(OP_ENRT, 0, -5),
		}, ErrStackEmpty},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			cpu := newCpu(t)
			err := runCode(t, cpu, entry.code...)
			assert.ErrorIs(err, entry.err)
		})
	}
}

func TestLabel_Enter(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpu(t)
	err := runCode(t, cpu,
		MakeInstruction(OP_INPP),
		MakeInstruction(OP_AMEM, 5),
		MakeInstruction(OP_ENRT, 0, 2),
	)
	assert.NoError(err)
	assert.Equal(1, cpu.Register.Sp)
}
