package io

import (
	"errors"

	"github.com/ezrec/rnavm/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull   = errors.New(f("channel full"))
	ErrChannelClosed = errors.New(f("channel has no output"))
)
