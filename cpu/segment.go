package cpu

import (
	"fmt"
)

// Word is a single memory cell, the machine's only data type.
type Word int64

const (
	MEMORY_SIZE    = 128    // Default memory size, in words.
	MEMORY_FILL    = 999999 // Value of uninitialized memory.
	D_SEGMENT_SIZE = 10     // Number of nesting levels in the D segment.
	DATA_SEGMENT   = 0      // Base of the data segment.
	STACK_SEGMENT  = 0      // Base of the stack segment.
)

// Layout describes the segments of a memory of a given size.
type Layout struct {
	Size            int // Total memory size, in words.
	DSegment        int // Base of the D segment.
	MaxStackSegment int // Highest usable stack address.
}

// MakeLayout computes the segment layout for a memory of size words.
func MakeLayout(size int) (layout Layout, err error) {
	if size < D_SEGMENT_SIZE+2 {
		err = fmt.Errorf("%w: %d", ErrMemorySize, size)
		return
	}

	layout = Layout{
		Size:            size,
		DSegment:        size - D_SEGMENT_SIZE,
		MaxStackSegment: size - D_SEGMENT_SIZE - 1,
	}

	return
}

// Defines returns the layout as assembler equates.
func (layout Layout) Defines() map[string]string {
	return map[string]string{
		"MEMORY_SIZE":       fmt.Sprintf("%d", layout.Size),
		"D_SEGMENT":         fmt.Sprintf("%d", layout.DSegment),
		"D_SEGMENT_SIZE":    fmt.Sprintf("%d", D_SEGMENT_SIZE),
		"MAX_STACK_SEGMENT": fmt.Sprintf("%d", layout.MaxStackSegment),
	}
}
