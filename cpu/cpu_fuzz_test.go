package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mepa/io"
)

func FuzzCpu(f *testing.F) {
	for op := range Opcode(len(_opcodeInfo) + 1) {
		f.Add(uint8(op), int64(0), int64(1), int64(-1), uint8(0))
		f.Add(uint8(op), int64(1), int64(0), int64(3), uint8(4))
	}

	f.Fuzz(func(t *testing.T, opcode uint8, arg0 int64, arg1 int64, arg2 int64, depth uint8) {
		assert := assert.New(t)

		op := Opcode(opcode)
		args := []Word{Word(arg0), Word(arg1), Word(arg2)}
		args = args[:min(len(args), op.Info().Args)]

		cpu := newCpu(t)
		input := &io.Temporary{}
		assert.NoError(input.Send(arg0))
		cpu.Input = input
		cpu.Output = &io.Temporary{}

		// A plausible frame: main program, then a level 1 procedure.
		setup := []Instruction{
			MakeInstruction(OP_INPP),
			MakeInstruction(OP_AMEM, 2),
			MakeInstruction(OP_CHPR, 3, 1),
			MakeInstruction(OP_ENPR, 1),
			MakeInstruction(OP_AMEM, Word(depth%8)),
		}
		err := runCode(t, cpu, setup...)
		assert.NoError(err)

		sp := cpu.Register.Sp
		cpu.Register.Pc = 0
		prog := NewProgram(MakeInstruction(op, args...))
		err = cpu.Tick(prog)
		if err != nil {
			assert.False(errors.Is(err, ErrPcEmpty))
			assert.True(op.Valid() || errors.Is(err, ErrInstructionInvalid), err)
		}

		// Whatever happens, the registers stay inside the memory.
		assert.GreaterOrEqual(cpu.Register.Sp, cpu.Register.Ss-1)
		assert.LessOrEqual(cpu.Register.Sp, cpu.Memory.MaxStackSegment)
		if err == nil && op == OP_NADA {
			assert.Equal(sp+len(args), cpu.Register.Sp)
		}
	})
}
