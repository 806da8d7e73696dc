// Package i2c adapts an I2C device to the displaybus contract.
//
// It speaks the control-byte protocol used by SSD1306-class display
// controllers: every transaction starts with one byte that marks the rest
// of the transaction as either commands (0x00) or data (0x40).
//
// Only the U8 data format is implemented; I2C has no natural 16-bit framing
// and the controllers using this protocol are byte oriented. Word kinds
// fail with displaybus.ErrFormatNotImplemented so a driver can fall back.
package i2c

import (
	"periph.io/x/conn/v3/i2c"

	"github.com/flavioheleno/displaybus"
)

const (
	controlCommand = 0x00
	controlData    = 0x40

	// Payload bytes per transaction. Controllers accept arbitrary lengths
	// but host adapters commonly cap transaction size, so larger payloads
	// are split.
	chunkLen = 64
)

// Interface drives a display over I2C. It implements displaybus.Writer.
//
// Not safe for concurrent use.
type Interface struct {
	d i2c.Dev
	// Scratch space for prefixing the control byte without allocating.
	buf [1 + chunkLen]byte
}

var _ displaybus.Writer = &Interface{}

// New returns an adapter for the display at addr on b. Common display
// addresses are 0x3C and 0x3D.
func New(b i2c.Bus, addr uint16) *Interface {
	return &Interface{d: i2c.Dev{Bus: b, Addr: addr}}
}

// SendCommands transmits buf prefixed with the command control byte.
func (t *Interface) SendCommands(buf displaybus.DataFormat) error {
	return t.send(controlCommand, buf)
}

// SendData transmits buf prefixed with the data control byte.
func (t *Interface) SendData(buf displaybus.DataFormat) error {
	return t.send(controlData, buf)
}

func (t *Interface) send(control byte, buf displaybus.DataFormat) error {
	switch buf.Kind() {
	case displaybus.KindU8:
	case displaybus.KindInvalid:
		return displaybus.ErrInvalidFormat
	default:
		return displaybus.ErrFormatNotImplemented
	}
	p := buf.Bytes()
	t.buf[0] = control
	for len(p) > 0 {
		n := copy(t.buf[1:], p)
		if err := t.d.Tx(t.buf[:1+n], nil); err != nil {
			return displaybus.ErrBusWrite
		}
		p = p[n:]
	}
	return nil
}
