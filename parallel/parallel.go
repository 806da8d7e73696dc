// Package parallel adapts an 8080-style parallel GPIO bus to the
// displaybus contract.
//
// Eight GPIO pins carry one byte at a time; a D/C pin selects command or
// data mode and a WR strobe latches each byte into the panel on its rising
// edge. This is the slowest transport here but needs nothing beyond plain
// GPIO output pins.
package parallel

import (
	"encoding/binary"
	"errors"

	"periph.io/x/conn/v3/gpio"

	"github.com/flavioheleno/displaybus"
)

// hostBigEndian reports whether this host stores 16-bit words big-endian
// in memory.
var hostBigEndian = binary.NativeEndian.Uint16([]byte{0x00, 0x01}) == 0x0001

// EightBitBus drives eight GPIO output pins as one parallel data bus.
//
// It remembers the last value written and only toggles the pins that
// changed, which roughly halves the GPIO traffic for typical pixel
// streams.
type EightBitBus struct {
	pins  [8]gpio.PinOut
	last  byte
	valid bool // last reflects the pin state
}

// NewEightBitBus wraps pins as a data bus. pins must hold exactly eight
// output pins, least significant bit first.
func NewEightBitBus(pins []gpio.PinOut) (*EightBitBus, error) {
	if len(pins) != 8 {
		return nil, errors.New("parallel: an 8-bit bus needs exactly 8 pins")
	}
	b := &EightBitBus{}
	copy(b.pins[:], pins)
	return b, nil
}

// Write drives the pins to v.
func (b *EightBitBus) Write(v byte) error {
	changed := v ^ b.last
	if b.valid && changed == 0 {
		return nil
	}
	for i := uint(0); i < 8; i++ {
		mask := byte(1) << i
		if b.valid && changed&mask == 0 {
			continue
		}
		if err := b.pins[i].Out(gpio.Level(v&mask != 0)); err != nil {
			// Pin state is now unknown; rewrite everything next time.
			b.valid = false
			return err
		}
	}
	b.last = v
	b.valid = true
	return nil
}

// Interface drives a display over an 8080-style parallel bus. It
// implements displaybus.Writer and supports all four data format kinds;
// 16-bit words are split into two bus cycles in the requested wire order.
//
// Unlike the SPI adapter it never needs to mutate the caller's word
// buffer, though callers should not rely on that detail.
//
// Not safe for concurrent use.
type Interface struct {
	bus *EightBitBus
	dc  gpio.PinOut
	wr  gpio.PinOut
}

var _ displaybus.Writer = &Interface{}

// New returns an adapter over bus with dc as the data/command select pin
// and wr as the active-low write strobe. wr is expected to idle high.
func New(bus *EightBitBus, dc, wr gpio.PinOut) *Interface {
	return &Interface{bus: bus, dc: dc, wr: wr}
}

// SendCommands transmits buf with the D/C pin low.
func (p *Interface) SendCommands(buf displaybus.DataFormat) error {
	return p.send(buf, gpio.Low)
}

// SendData transmits buf with the D/C pin high.
func (p *Interface) SendData(buf displaybus.DataFormat) error {
	return p.send(buf, gpio.High)
}

func (p *Interface) send(buf displaybus.DataFormat, dc gpio.Level) error {
	switch buf.Kind() {
	case displaybus.KindU8, displaybus.KindU16, displaybus.KindU16BE, displaybus.KindU16LE:
	case displaybus.KindInvalid:
		return displaybus.ErrInvalidFormat
	default:
		return displaybus.ErrFormatNotImplemented
	}
	if buf.Len() == 0 {
		return nil
	}
	if err := p.dc.Out(dc); err != nil {
		return displaybus.ErrDataCommand
	}
	switch buf.Kind() {
	case displaybus.KindU8:
		for _, v := range buf.Bytes() {
			if err := p.writeByte(v); err != nil {
				return err
			}
		}
	case displaybus.KindU16, displaybus.KindU16BE, displaybus.KindU16LE:
		bigFirst := buf.Kind() == displaybus.KindU16BE ||
			(buf.Kind() == displaybus.KindU16 && hostBigEndian)
		for _, w := range buf.Words() {
			if err := p.writeWord(w, bigFirst); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Interface) writeWord(w uint16, bigFirst bool) error {
	hi, lo := byte(w>>8), byte(w)
	if !bigFirst {
		hi, lo = lo, hi
	}
	if err := p.writeByte(hi); err != nil {
		return err
	}
	return p.writeByte(lo)
}

// writeByte performs one bus cycle: WR low, drive the data pins, WR high.
func (p *Interface) writeByte(v byte) error {
	if err := p.wr.Out(gpio.Low); err != nil {
		return displaybus.ErrBusWrite
	}
	if err := p.bus.Write(v); err != nil {
		// Best effort to park the strobe in its resting state.
		_ = p.wr.Out(gpio.High)
		return displaybus.ErrBusWrite
	}
	if err := p.wr.Out(gpio.High); err != nil {
		return displaybus.ErrBusWrite
	}
	return nil
}
