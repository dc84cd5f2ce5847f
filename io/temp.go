package io

import (
	"iter"
	"slices"
)

// Temporary records emitted values in memory, in order.
// A zero Capacity means unbounded.
type Temporary struct {
	Capacity int

	Data []int32
}

var _ Recorder = (*Temporary)(nil)

// Rewind discards all recorded values.
func (temp *Temporary) Rewind() {
	temp.Data = temp.Data[:0]
}

// Receive returns an iterator that yields the recorded values in send order.
func (temp *Temporary) Receive() iter.Seq[int32] {
	return slices.Values(temp.Data)
}

// Send appends a value.
// Returns ErrChannelFull if the buffer has reached capacity.
func (temp *Temporary) Send(value int32) (err error) {
	if temp.Capacity > 0 && len(temp.Data) >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	temp.Data = append(temp.Data, value)

	return
}
