package io

import (
	"errors"

	"github.com/ezrec/mepa/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull = errors.New(f("channel full"))
	ErrInputEnd    = errors.New(f("end of input"))
	ErrNoInput     = errors.New(f("no input attached"))
	ErrNoOutput    = errors.New(f("no output attached"))
)

// ErrInputSyntax reports input text that is not a whole number.
type ErrInputSyntax string

func (err ErrInputSyntax) Error() string {
	return f("input '%v' is not a whole number", string(err))
}
