package cpu

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mepa/io"
)

// runCode executes instructions until the program halts, falls off the
// end, or faults.
func runCode(t *testing.T, cpu *Cpu, code ...Instruction) (err error) {
	prog := NewProgram(code...)
	for range 1000 {
		err = cpu.Tick(prog)
		if err != nil {
			break
		}
	}
	if errors.Is(err, ErrHalt) || errors.Is(err, ErrPcEmpty) {
		err = nil
	}

	return
}

func newCpu(t *testing.T) (cpu *Cpu) {
	cpu, err := NewCpu(MEMORY_SIZE)
	assert.NoError(t, err)

	return
}

func TestCpu_New(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpu(t)
	assert.Equal(-1, cpu.Register.Sp)
	assert.Equal("pc=0 sp=-1 bp=0 ds=0 ss=0 top=-", cpu.String())

	_, err := NewCpu(3)
	assert.ErrorIs(err, ErrMemorySize)

	defines := map[string]string{}
	for key, value := range cpu.Defines() {
		defines[key] = value
	}
	assert.Equal("118", defines["D_SEGMENT"])
}

func TestCpu_Alu(t *testing.T) {
	table := [](struct {
		op     Opcode
		value1 Word
		value2 Word
		output Word
	}){
		{OP_SOMA, 3, 4, 7},
		{OP_SUBT, 3, 4, -1},
		{OP_MULT, -3, 4, -12},
		{OP_DIVI, 7, 2, 3},
		{OP_DIVI, -7, 2, -4},
		{OP_DIVI, 7, -2, -4},
		{OP_DIVI, -7, -2, 3},
		{OP_MODU, 7, 3, 1},
		{OP_MODU, -7, 3, 2},
		{OP_MODU, 7, -3, -2},
		{OP_MODU, -6, 3, 0},
		{OP_CONJ, 1, 1, 1},
		{OP_CONJ, 1, 0, 0},
		{OP_CONJ, 5, 7, 1},
		{OP_DISJ, 0, 0, 0},
		{OP_DISJ, 0, 3, 1},
		{OP_CMME, 1, 2, 1},
		{OP_CMME, 2, 2, 0},
		{OP_CMMA, 3, 2, 1},
		{OP_CMMA, 2, 3, 0},
		{OP_CMIG, 2, 2, 1},
		{OP_CMIG, 2, 3, 0},
		{OP_CMDG, 2, 3, 1},
		{OP_CMDG, 3, 3, 0},
		{OP_CMAG, 3, 3, 1},
		{OP_CMAG, 2, 3, 0},
		{OP_CMEG, 3, 3, 1},
		{OP_CMEG, 4, 3, 0},
		{OP_SOMA, math.MaxInt64, 1, math.MinInt64},
	}

	for _, entry := range table {
		t.Run(entry.op.Mnemonic(), func(t *testing.T) {
			assert := assert.New(t)

			cpu := newCpu(t)
			err := runCode(t, cpu,
				MakeInstruction(OP_CRCT, entry.value1),
				MakeInstruction(OP_CRCT, entry.value2),
				MakeInstruction(entry.op),
			)
			assert.NoError(err)
			assert.Equal([]Word{entry.output}, cpu.Memory.Stack())
		})
	}
}

func TestCpu_Unary(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpu(t)
	err := runCode(t, cpu,
		MakeInstruction(OP_CRCT, 5),
		MakeInstruction(OP_INVR),
		MakeInstruction(OP_CRCT, 0),
		MakeInstruction(OP_NEGA),
		MakeInstruction(OP_NEGA, 9),
	)
	assert.NoError(err)
	assert.Equal([]Word{-5, 1, 0}, cpu.Memory.Stack())
}

func TestCpu_DivisionByZero(t *testing.T) {
	for _, op := range []Opcode{OP_DIVI, OP_MODU} {
		t.Run(op.Mnemonic(), func(t *testing.T) {
			assert := assert.New(t)

			cpu := newCpu(t)
			err := runCode(t, cpu,
				MakeInstruction(OP_CRCT, 1),
				MakeInstruction(op, 0),
			)
			assert.ErrorIs(err, ErrDivisionByZero)

			var mnemonic ErrMnemonic
			assert.ErrorAs(err, &mnemonic)
			assert.Equal(op.Mnemonic(), mnemonic.Mnemonic)
			assert.Equal(1, cpu.Register.Pc)
		})
	}
}

func TestCpu_Variables(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpu(t)
	err := runCode(t, cpu,
		MakeInstruction(OP_INPP),
		MakeInstruction(OP_AMEM, 3),
		MakeInstruction(OP_ARMZ, 11, 0, 0),
		MakeInstruction(OP_CREN, 0, 0),
		MakeInstruction(OP_ARMZ, 0, 2),
		MakeInstruction(OP_ARMI, 22, 0, 2),
		MakeInstruction(OP_CRVL, 0, 0),
		MakeInstruction(OP_CRVI, 0, 2),
		MakeInstruction(OP_CREN, 0, 1),
	)
	assert.NoError(err)
	assert.Equal([]Word{22, 999999, 0, 22, 22, 1}, cpu.Memory.Stack())
}

func TestCpu_Jumps(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpu(t)
	err := runCode(t, cpu,
		MakeInstruction(OP_DSVS, 3),
		MakeInstruction(OP_CRCT, 1),
		MakeInstruction(OP_PARA),
		MakeInstruction(OP_DSVF, 1, 6),
		MakeInstruction(OP_DSVF, 0, 7),
		MakeInstruction(OP_CRCT, 2),
		MakeInstruction(OP_PARA),
		MakeInstruction(OP_CRCT, 4),
	)
	assert.NoError(err)
	assert.Equal([]Word{4}, cpu.Memory.Stack())
}

func TestCpu_Halt(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpu(t)
	prog := NewProgram(MakeInstruction(OP_NADA), MakeInstruction(OP_PARA))

	assert.NoError(cpu.Tick(prog))
	assert.ErrorIs(cpu.Tick(prog), ErrHalt)
	assert.Equal(1, cpu.Register.Pc)
	assert.ErrorIs(cpu.Tick(prog), ErrHalt)
	assert.Equal(1, cpu.Ticks)

	cpu.Register.Pc = 2
	assert.ErrorIs(cpu.Tick(prog), ErrPcEmpty)
}

func TestCpu_Procedure(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpu(t)
	prog := NewProgram(
		MakeInstruction(OP_INPP),
		MakeInstruction(OP_CRCT, 9),
		MakeInstruction(OP_CHPR, 5, 1),
		MakeInstruction(OP_INSPECT),
		MakeInstruction(OP_PARA),
		MakeInstruction(OP_ENPR, 1),
		MakeInstruction(OP_AMEM, 2),
		MakeInstruction(OP_INSPECT),
		MakeInstruction(OP_DMEM, 2),
		MakeInstruction(OP_RTPR, 1, 1),
	)

	var seen []string
	cpu.Inspect = func(cpu *Cpu) error {
		seen = append(seen, cpu.Register.String())
		return nil
	}

	var err error
	for err == nil {
		err = cpu.Tick(prog)
	}
	assert.ErrorIs(err, ErrHalt)

	assert.Equal([]string{
		"pc=7 sp=5 bp=4 ds=0 ss=0",
		"pc=3 sp=-1 bp=0 ds=0 ss=0",
	}, seen)

	// The frame is tagged, and its tags are dropped on return.
	_, ok := cpu.Memory.TagOf(1)
	assert.False(ok)

	bp, err := cpu.Memory.Display(1)
	assert.NoError(err)
	assert.Equal(Word(0), bp)
}

func TestCpu_Frame(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpu(t)
	err := runCode(t, cpu,
		MakeInstruction(OP_INPP),
		MakeInstruction(OP_CHPR, 2, 1),
		MakeInstruction(OP_ENPR, 1),
	)
	assert.NoError(err)
	assert.Equal([]Word{2, 0, 1}, cpu.Memory.Stack())
	assert.Equal(3, cpu.Register.Bp)

	for addr, tag := range []string{TAG_RETURN, TAG_BASE, TAG_LEVEL} {
		got, ok := cpu.Memory.TagOf(addr)
		assert.True(ok)
		assert.Equal(tag, got)
	}
}

func TestCpu_Channels(t *testing.T) {
	assert := assert.New(t)

	input := &io.Temporary{}
	output := &io.Temporary{}
	for _, value := range []int64{3, -4} {
		assert.NoError(input.Send(value))
	}

	cpu := newCpu(t)
	cpu.Input = input
	cpu.Output = output

	err := runCode(t, cpu,
		MakeInstruction(OP_LEIT),
		MakeInstruction(OP_LEIT),
		MakeInstruction(OP_MULT),
		MakeInstruction(OP_IMPR),
		MakeInstruction(OP_IMPR, 5),
	)
	assert.NoError(err)
	assert.Equal([]int64{-12, 5}, output.Values())

	cpu.Register.Pc = 0
	err = runCode(t, cpu, MakeInstruction(OP_LEIT))
	assert.ErrorIs(err, io.ErrInputEnd)

	cpu.Input = nil
	cpu.Register.Pc = 0
	err = runCode(t, cpu, MakeInstruction(OP_LEIT))
	assert.ErrorIs(err, ErrChannelInvalid)
}

func TestCpu_Assert(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpu(t)
	err := runCode(t, cpu,
		MakeInstruction(OP_CRCT, 7),
		MakeInstruction(OP_ASSERT, 7),
		MakeInstruction(OP_ASSERT, 4, 5),
	)
	assert.ErrorIs(err, ErrAssertFailed)

	var failed ErrAssert
	assert.ErrorAs(err, &failed)
	assert.Equal(ErrAssert{Want: 5, Got: 4}, failed)
	assert.Equal(2, cpu.Register.Pc)
}

func TestCpu_Faults(t *testing.T) {
	table := [](struct {
		name string
		code []Instruction
		err  error
	}){
		{"empty", []Instruction{MakeInstruction(OP_SOMA)}, ErrStackEmpty},
		{"level", []Instruction{MakeInstruction(OP_CRVL, D_SEGMENT_SIZE, 0)}, ErrLevel},
		{"address", []Instruction{MakeInstruction(OP_CRVL, 0, 0)}, ErrAddress},
		{"segment", []Instruction{
			MakeInstruction(OP_INPP),
			MakeInstruction(OP_ARMZ, 1, 0, MEMORY_SIZE-1),
		}, ErrSegmentViolation},
		{"dmem", []Instruction{MakeInstruction(OP_DMEM, 1)}, ErrStackEmpty},
		{"amem", []Instruction{MakeInstruction(OP_AMEM, MEMORY_SIZE)}, ErrStackFull},
		{"rtpr", []Instruction{MakeInstruction(OP_RTPR, 0, 0)}, ErrStackEmpty},
		{"invalid", []Instruction{MakeInstruction(Opcode(200))}, ErrInstructionInvalid},
		{"inspect", []Instruction{MakeInstruction(OP_INSPECT)}, errInspect},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			cpu := newCpu(t)
			cpu.Inspect = func(*Cpu) error { return errInspect }
			err := runCode(t, cpu, entry.code...)
			assert.ErrorIs(err, entry.err)
		})
	}
}

var errInspect = errors.New("inspected")

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	output := &io.Temporary{}
	cpu := newCpu(t)
	cpu.Output = output

	err := runCode(t, cpu,
		MakeInstruction(OP_INPP),
		MakeInstruction(OP_CRCT, 1),
		MakeInstruction(OP_IMPR, 2),
	)
	assert.NoError(err)
	assert.Equal(3, cpu.Ticks)

	cpu.Reset()
	assert.Equal(0, cpu.Ticks)
	assert.Equal(0, cpu.Register.Pc)
	assert.True(cpu.Memory.Empty())
	assert.Equal(Word(MEMORY_FILL), cpu.Memory.Data[cpu.Memory.DSegment])
	assert.Nil(output.Values())
}

func TestCpu_Trace(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpu(t)

	var seen []string
	cpu.Trace = func(cpu *Cpu, ins Instruction) error {
		top, _ := cpu.Memory.Peek()
		seen = append(seen, fmt.Sprintf("%d %v %d", cpu.Register.Pc, ins, int64(top)))
		return nil
	}

	err := runCode(t, cpu,
		MakeInstruction(OP_CRCT, 3),
		MakeInstruction(OP_INVR),
		MakeInstruction(OP_PARA),
	)
	assert.NoError(err)
	assert.Equal([]string{"0 CRCT 3 3", "1 INVR 3", "2 PARA -3"}, seen)

	cpu.Trace = func(*Cpu, Instruction) error { return errInspect }
	cpu.Register.Pc = 0
	err = runCode(t, cpu, MakeInstruction(OP_CRCT, 4))
	assert.ErrorIs(err, errInspect)
	assert.Equal(0, cpu.Register.Pc)
	assert.Equal(2, cpu.Ticks)
}
