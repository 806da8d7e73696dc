// Package spi adapts a 4-wire SPI connection to the displaybus contract.
//
// The payload travels on the SPI port while a dedicated GPIO pin (commonly
// labelled D/C) tells the panel whether the bytes are commands or data. An
// optional second GPIO pin can drive chip select in software for ports that
// do not handle it in hardware.
package spi

import (
	"math/bits"
	"unsafe"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"

	"github.com/flavioheleno/displaybus"
)

// Interface drives a display over 4-wire SPI. It implements
// displaybus.Writer and supports all four data format kinds.
//
// Not safe for concurrent use.
type Interface struct {
	c  conn.Conn
	dc gpio.PinOut
	cs gpio.PinOut // nil when the port drives CS in hardware
}

var _ displaybus.Writer = &Interface{}

// New returns an adapter over c with dc as the data/command select pin.
// Chip select is assumed to be handled by the port (the usual case when c
// comes from spi.Port.Connect).
func New(c conn.Conn, dc gpio.PinOut) *Interface {
	return &Interface{c: c, dc: dc}
}

// NewWithCS is like New but additionally drives cs as an active-low chip
// select around every transmission.
func NewWithCS(c conn.Conn, dc, cs gpio.PinOut) *Interface {
	return &Interface{c: c, dc: dc, cs: cs}
}

// SendCommands transmits buf with the D/C pin low.
func (s *Interface) SendCommands(buf displaybus.DataFormat) error {
	return s.send(buf, gpio.Low)
}

// SendData transmits buf with the D/C pin high.
func (s *Interface) SendData(buf displaybus.DataFormat) error {
	return s.send(buf, gpio.High)
}

func (s *Interface) send(buf displaybus.DataFormat, dc gpio.Level) error {
	p, err := wireBytes(buf)
	if err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	if s.cs != nil {
		if err := s.cs.Out(gpio.Low); err != nil {
			return displaybus.ErrChipSelect
		}
	}
	err = s.transfer(p, dc)
	if s.cs != nil {
		if csErr := s.cs.Out(gpio.High); csErr != nil && err == nil {
			err = displaybus.ErrChipSelect
		}
	}
	return err
}

func (s *Interface) transfer(p []byte, dc gpio.Level) error {
	if err := s.dc.Out(dc); err != nil {
		return displaybus.ErrDataCommand
	}
	if err := s.c.Tx(p, nil); err != nil {
		return displaybus.ErrBusWrite
	}
	return nil
}

// wireBytes converts buf into the byte sequence to put on the wire. For
// the 16-bit kinds the returned slice aliases the caller's word buffer;
// U16BE and U16LE swap that buffer in place first when the host's memory
// order differs from the requested wire order.
func wireBytes(buf displaybus.DataFormat) ([]byte, error) {
	switch buf.Kind() {
	case displaybus.KindU8:
		return buf.Bytes(), nil
	case displaybus.KindU16:
		return wordBytes(buf.Words()), nil
	case displaybus.KindU16BE:
		if !hostBigEndian {
			swapWords(buf.Words())
		}
		return wordBytes(buf.Words()), nil
	case displaybus.KindU16LE:
		if hostBigEndian {
			swapWords(buf.Words())
		}
		return wordBytes(buf.Words()), nil
	case displaybus.KindInvalid:
		return nil, displaybus.ErrInvalidFormat
	default:
		return nil, displaybus.ErrFormatNotImplemented
	}
}

// wordBytes reinterprets w as its in-memory bytes without copying.
func wordBytes(w []uint16) []byte {
	if len(w) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&w[0])), len(w)*2)
}

func swapWords(w []uint16) {
	for i, v := range w {
		w[i] = bits.ReverseBytes16(v)
	}
}
