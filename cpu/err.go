package cpu

import (
	"errors"

	"github.com/ezrec/mepa/translate"
)

var f = translate.From

var (
	// Program termination. Not a fault.
	ErrHalt = errors.New(f("halt"))

	// Cpu errors
	ErrPcEmpty          = errors.New(f("pc empty"))
	ErrStackEmpty       = errors.New(f("stack empty"))
	ErrStackFull        = errors.New(f("stack full"))
	ErrAddress          = errors.New(f("address out of range"))
	ErrSegmentViolation = errors.New(f("write to D segment"))
	ErrLevel            = errors.New(f("nesting level invalid"))
	ErrFrameChain       = errors.New(f("frame chain broken"))
	ErrDivisionByZero   = errors.New(f("division by zero"))
	ErrAssertFailed     = errors.New(f("assert failed"))
	ErrChannelInvalid   = errors.New(f("channel invalid"))
	ErrMemorySize       = errors.New(f("memory size invalid"))

	// Assembler errors
	ErrEquateSyntax            = errors.New(f(".equ syntax"))
	ErrEquateDuplicate         = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate          = errors.New(f("label duplicated"))
	ErrLabelSyntax             = errors.New(f("label syntax"))
	ErrOpcodeExtraArgs         = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing      = errors.New(f("value missing"))
	ErrInstructionInvalid      = errors.New(f("instruction invalid"))
	ErrInstructionExperimental = errors.New(f("instruction experimental"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrMnemonic reports the mnemonic that failed to decode.
type ErrMnemonic struct {
	Mnemonic string
	Err      error
}

func (err ErrMnemonic) Error() string {
	return f("'%v' %v", err.Mnemonic, err.Err)
}

func (err ErrMnemonic) Unwrap() error {
	return err.Err
}

// ErrAssert reports the two values compared by a failed ASSERT.
type ErrAssert struct {
	Want Word
	Got  Word
}

func (err ErrAssert) Error() string {
	return f("assert failed: %d != %d", int64(err.Want), int64(err.Got))
}

func (err ErrAssert) Unwrap() error {
	return ErrAssertFailed
}

// ErrAccess reports the address of a faulting memory access.
type ErrAccess struct {
	Address int
	Err     error
}

func (err ErrAccess) Error() string {
	return f("address %d: %v", err.Address, err.Err)
}

func (err ErrAccess) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
