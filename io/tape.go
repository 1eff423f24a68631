package io

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// Tape provides sequential text I/O: one whole number per line.
// It wraps an io.Reader for input and io.Writer for output.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Prompt string // If set, written to Output before each read.

	reader *bufio.Reader
	source io.Reader
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Receive reads one line from the input and parses it as a whole number.
// Surrounding blanks are ignored.
func (tc *Tape) Receive() (value int64, err error) {
	if tc.Input == nil {
		err = ErrNoInput
		return
	}

	if tc.reader == nil || tc.source != tc.Input {
		tc.reader = bufio.NewReader(tc.Input)
		tc.source = tc.Input
	}

	if len(tc.Prompt) != 0 && tc.Output != nil {
		_, err = io.WriteString(tc.Output, tc.Prompt)
		if err != nil {
			return
		}
	}

	line, err := tc.reader.ReadString('\n')
	if errors.Is(err, io.EOF) && len(line) != 0 {
		err = nil
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrInputEnd
		}
		return
	}

	text := strings.TrimSpace(line)
	value, err = strconv.ParseInt(text, 10, 64)
	if err != nil {
		err = ErrInputSyntax(text)
		return
	}

	return
}

// Send writes the value followed by a newline to the output stream.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		err = ErrNoOutput
		return
	}

	_, err = io.WriteString(tc.Output, strconv.FormatInt(value, 10)+"\n")

	return
}
