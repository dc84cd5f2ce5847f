// Package io provides output channel implementations for the rnavm
// executor. A Tape prints each emitted value as an `Output: <n>` line,
// and a Temporary captures values in memory.
package io

import (
	"iter"
)

// Channel defines the interface for all output channels.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send emits a single register value to the channel.
	Send(value int32) error
}

// Recorder is a Channel whose emitted values can be read back.
type Recorder interface {
	Channel
	// Receive returns an iterator over the values sent so far.
	Receive() iter.Seq[int32]
}
