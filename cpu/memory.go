// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"io"
	"slices"
)

// Tags written to the stack by a procedure call.
const (
	TAG_RETURN = "N" // Saved return address.
	TAG_BASE   = "B" // Saved base pointer.
	TAG_LEVEL  = "K" // Saved nesting level.
)

// DUMP_COLUMNS is the number of words per memory dump row.
const DUMP_COLUMNS = 8

// Memory is the flat word array of the machine.
// The stack grows upward from the stack segment base, tracked by the
// stack pointer of the attached register set.
type Memory struct {
	Layout
	Data     []Word
	ShowTags bool // Set to render tags in Dump.

	regs *RegisterSet
	tags map[int]string
}

// NewMemory creates a memory of size words, using the stack pointer
// of regs.
func NewMemory(size int, regs *RegisterSet) (mem *Memory, err error) {
	layout, err := MakeLayout(size)
	if err != nil {
		return
	}

	mem = &Memory{
		Layout: layout,
		Data:   make([]Word, size),
		regs:   regs,
		tags:   map[int]string{},
	}

	mem.Reset()

	return
}

// Reset fills the memory with MEMORY_FILL and drops all tags.
func (mem *Memory) Reset() {
	for n := range mem.Data {
		mem.Data[n] = MEMORY_FILL
	}
	clear(mem.tags)
}

// Empty is true when the stack holds no values.
func (mem *Memory) Empty() bool {
	return mem.regs.Sp < mem.regs.Ss
}

// Full is true when a push would overflow the stack segment.
func (mem *Memory) Full() bool {
	return mem.regs.Sp >= mem.MaxStackSegment
}

// Pop removes and returns the top of stack.
func (mem *Memory) Pop() (value Word, err error) {
	if mem.Empty() {
		err = ErrStackEmpty
		return
	}

	value = mem.Data[mem.regs.Sp]
	delete(mem.tags, mem.regs.Sp)
	mem.regs.Sp--

	return
}

// Push places a value on top of the stack.
func (mem *Memory) Push(value Word) (err error) {
	if mem.Full() {
		err = ErrStackFull
		return
	}

	mem.regs.Sp++
	mem.Data[mem.regs.Sp] = value

	return
}

// Allocate moves the stack pointer by n words, reserving (n > 0) or
// releasing (n < 0) uninitialized stack space.
func (mem *Memory) Allocate(n Word) (err error) {
	sp := Word(mem.regs.Sp) + n
	switch {
	case sp > Word(mem.MaxStackSegment):
		err = ErrStackFull
	case sp < Word(mem.regs.Ss-1):
		err = ErrStackEmpty
	default:
		mem.regs.Sp = int(sp)
	}

	return
}

// Peek returns the top of stack without removing it.
func (mem *Memory) Peek() (value Word, ok bool) {
	if mem.Empty() {
		return
	}

	return mem.Data[mem.regs.Sp], true
}

// Get reads the word at addr.
func (mem *Memory) Get(addr Word) (value Word, err error) {
	if addr < 0 || addr >= Word(len(mem.Data)) {
		err = ErrAccess{Address: int(addr), Err: ErrAddress}
		return
	}

	value = mem.Data[addr]
	return
}

// Set writes the word at addr. The D segment is only writable through
// SetDisplay.
func (mem *Memory) Set(addr Word, value Word) (err error) {
	if addr < 0 || addr >= Word(len(mem.Data)) {
		err = ErrAccess{Address: int(addr), Err: ErrAddress}
		return
	}

	if addr >= Word(mem.DSegment) {
		err = ErrAccess{Address: int(addr), Err: ErrSegmentViolation}
		return
	}

	mem.Data[addr] = value
	return
}

// Display reads the base pointer of nesting level k from the D segment.
func (mem *Memory) Display(k Word) (value Word, err error) {
	if k < 0 || k >= D_SEGMENT_SIZE {
		err = fmt.Errorf("%w: %d", ErrLevel, k)
		return
	}

	value = mem.Data[mem.DSegment+int(k)]
	return
}

// SetDisplay writes the base pointer of nesting level k.
func (mem *Memory) SetDisplay(k Word, bp Word) (err error) {
	if k < 0 || k >= D_SEGMENT_SIZE {
		err = fmt.Errorf("%w: %d", ErrLevel, k)
		return
	}

	mem.Data[mem.DSegment+int(k)] = bp
	return
}

// Tag annotates an address for memory dumps.
func (mem *Memory) Tag(addr int, tag string) {
	mem.tags[addr] = tag
}

// TagOf returns the tag of an address, if any.
func (mem *Memory) TagOf(addr int) (tag string, ok bool) {
	tag, ok = mem.tags[addr]
	return
}

// Stack returns a copy of the words on the stack, bottom first.
func (mem *Memory) Stack() []Word {
	if mem.Empty() {
		return nil
	}
	return slices.Clone(mem.Data[mem.regs.Ss : mem.regs.Sp+1])
}

// Dump writes the whole memory in DUMP_COLUMNS columns, starting a new
// row at each segment boundary.
func (mem *Memory) Dump(w io.Writer) (err error) {
	pr := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	for col := range DUMP_COLUMNS {
		pr("%8d ", col)
	}

	matchseg := false
	for n, value := range mem.Data {
		if n == mem.regs.Ds {
			pr("\ndata:")
			matchseg = true
		}
		if n == mem.DSegment {
			pr("\n\"D segment\":")
			matchseg = true
		}
		if n == mem.regs.Ss {
			pr("\nstack:")
			matchseg = true
		}
		if n%DUMP_COLUMNS == 0 || matchseg {
			pr("\n%3d: ", n)
			matchseg = false
		}
		var tag string
		if mem.ShowTags {
			tag = mem.tags[n]
		}
		pr("%8d%s ", int64(value), tag)
	}
	pr("\n")

	return
}
