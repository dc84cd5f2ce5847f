package io

import (
	"fmt"
	"io"
)

// TAPE_PREFIX is written before every value on a Tape.
const TAPE_PREFIX = "Output: "

// Tape writes one line per emitted value to an io.Writer.
type Tape struct {
	Output io.Writer

	Lines int // Lines written since the last rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape; only the line counter is reset.
func (tc *Tape) Rewind() {
	tc.Lines = 0
}

// Send writes `Output: <value>` and a newline.
func (tc *Tape) Send(value int32) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%s%d\n", TAPE_PREFIX, value)
	if err != nil {
		return
	}

	tc.Lines++

	return
}
