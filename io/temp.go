package io

// Temporary implements a circular buffer of whole numbers.
// It operates as a FIFO queue with a fixed capacity and separate read/write
// positions. A zero Capacity is raised to TEMPORARY_DEFAULT_CAPACITY on
// Rewind.
type Temporary struct {
	Capacity int // Capacity in words.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []int64
}

const TEMPORARY_DEFAULT_CAPACITY = 256

var _ Channel = (*Temporary)(nil)

// Rewind resets the temporary storage to empty, resetting indices and
// reinitializing the data buffer.
func (temp *Temporary) Rewind() {
	if temp.Capacity <= 0 {
		temp.Capacity = TEMPORARY_DEFAULT_CAPACITY
	}
	temp.ReadIndex = 0
	temp.WriteIndex = 0
	temp.Size = 0
	temp.Data = make([]int64, temp.Capacity)
}

// Receive pops the oldest value from the buffer.
// The buffer wraps around at the capacity boundary.
func (temp *Temporary) Receive() (value int64, err error) {
	if temp.Size == 0 {
		err = ErrInputEnd
		return
	}

	value = temp.Data[temp.ReadIndex]
	temp.ReadIndex++
	if temp.ReadIndex == temp.Capacity {
		temp.ReadIndex = 0
	}
	temp.Size--

	return
}

// Send appends a value to the buffer at the current write position.
// Returns ErrChannelFull if the buffer has reached capacity.
func (temp *Temporary) Send(value int64) (err error) {
	if len(temp.Data) != temp.Capacity || temp.Capacity == 0 {
		temp.Rewind()
	}

	if temp.Size >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	temp.Data[temp.WriteIndex] = value

	temp.WriteIndex++
	if temp.WriteIndex == temp.Capacity {
		temp.WriteIndex = 0
	}
	temp.Size++

	return
}

// Values drains the buffer, returning the queued values oldest first.
func (temp *Temporary) Values() (values []int64) {
	for temp.Size > 0 {
		value, _ := temp.Receive()
		values = append(values, value)
	}

	return
}
