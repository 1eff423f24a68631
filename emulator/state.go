package emulator

// State is the execution state of the emulator.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_READY    = State(0) // ready
	STATE_RUNNING  = State(1) // running
	STATE_FINISHED = State(2) // finished
	STATE_FAULTED  = State(3) // faulted
)
