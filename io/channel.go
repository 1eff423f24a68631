// Package io provides the I/O channels of the MEPA machine.
// A channel moves whole numbers, one at a time, between the running
// program and the outside world: a text stream (Tape), or an in-memory
// queue (Temporary).
package io

// Channel defines the interface for all I/O channels of the machine.
type Channel interface {
	// Rewind resets the channel to its initial state, if possible.
	Rewind()
	// Receive reads the next whole number from the channel.
	Receive() (value int64, err error)
	// Send writes a whole number to the channel.
	Send(value int64) error
}
