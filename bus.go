package ssd1322

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
)

// ErrNotImplemented is returned by a Bus that has no concrete transport.
var ErrNotImplemented = errors.New("ssd1322: bus operation not implemented")

// Line is the state of the data/command control line.
type Line bool

const (
	// Command selects the command register (D/C low).
	Command Line = false
	// Data selects display data and command arguments (D/C high).
	Data Line = true
)

func (l Line) String() string {
	if l == Data {
		return "data"
	}
	return "command"
}

// Bus is the transport the driver talks through.
//
// WriteData must accept arbitrarily long payloads and split them into
// transfers the underlying bus can carry, in order. The driver sets the
// control line once before each logical write.
type Bus interface {
	// WriteCommand sends one command byte.
	WriteCommand(cmd byte) error
	// WriteData sends data bytes.
	WriteData(p []byte) error
	// SetControlLine selects command or data for the following writes.
	SetControlLine(l Line) error
	// SetResetLine drives the controller reset input.
	SetResetLine(l gpio.Level) error
}

// Unimplemented is a Bus whose every method fails with ErrNotImplemented.
// Embed it to build partial transports that fail loudly instead of silently
// dropping writes.
type Unimplemented struct{}

// WriteCommand implements Bus.
func (Unimplemented) WriteCommand(byte) error { return ErrNotImplemented }

// WriteData implements Bus.
func (Unimplemented) WriteData([]byte) error { return ErrNotImplemented }

// SetControlLine implements Bus.
func (Unimplemented) SetControlLine(Line) error { return ErrNotImplemented }

// SetResetLine implements Bus.
func (Unimplemented) SetResetLine(gpio.Level) error { return ErrNotImplemented }

var _ Bus = Unimplemented{}
