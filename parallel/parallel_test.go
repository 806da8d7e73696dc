package parallel

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/flavioheleno/displaybus"
)

// countPin counts writes and can be made to fail.
type countPin struct {
	gpiotest.Pin
	n   int
	err error
}

func (p *countPin) Out(l gpio.Level) error {
	if p.err != nil {
		return p.err
	}
	p.n++
	return p.Pin.Out(l)
}

// strobePin models the WR line: on every rising edge it samples the data
// pins and records the latched byte, which is exactly what the panel sees.
type strobePin struct {
	gpiotest.Pin
	data    []*countPin
	latched []byte
	err     error
}

func (p *strobePin) Out(l gpio.Level) error {
	if p.err != nil {
		return p.err
	}
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	if l == gpio.High {
		var v byte
		for i, dp := range p.data {
			if dp.L == gpio.High {
				v |= 1 << uint(i)
			}
		}
		p.latched = append(p.latched, v)
	}
	return nil
}

func newFixture(t *testing.T) ([]*countPin, *EightBitBus, *countPin, *strobePin, *Interface) {
	t.Helper()
	data := make([]*countPin, 8)
	pins := make([]gpio.PinOut, 8)
	for i := range data {
		data[i] = &countPin{Pin: gpiotest.Pin{N: fmt.Sprintf("d%d", i)}}
		pins[i] = data[i]
	}
	bus, err := NewEightBitBus(pins)
	if err != nil {
		t.Fatalf("NewEightBitBus() = %v", err)
	}
	dc := &countPin{Pin: gpiotest.Pin{N: "dc"}}
	wr := &strobePin{Pin: gpiotest.Pin{N: "wr"}, data: data}
	return data, bus, dc, wr, New(bus, dc, wr)
}

func TestEightBitBusPinCount(t *testing.T) {
	for _, n := range []int{0, 7, 9} {
		pins := make([]gpio.PinOut, n)
		for i := range pins {
			pins[i] = &gpiotest.Pin{N: fmt.Sprintf("d%d", i)}
		}
		if _, err := NewEightBitBus(pins); err == nil {
			t.Errorf("NewEightBitBus() with %d pins did not fail", n)
		}
	}
}

func TestEightBitBusDrivesPins(t *testing.T) {
	data, bus, _, _, _ := newFixture(t)

	if err := bus.Write(0xA5); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	for i, p := range data {
		want := gpio.Level(0xA5&(1<<uint(i)) != 0)
		if p.L != want {
			t.Errorf("pin d%d = %s, want %s", i, p.L, want)
		}
	}
}

func TestEightBitBusSkipsUnchangedPins(t *testing.T) {
	data, bus, _, _, _ := newFixture(t)

	writes := func() int {
		n := 0
		for _, p := range data {
			n += p.n
		}
		return n
	}

	if err := bus.Write(0xFF); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	if got := writes(); got != 8 {
		t.Fatalf("first write toggled %d pins, want 8", got)
	}
	if err := bus.Write(0xFF); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	if got := writes(); got != 8 {
		t.Errorf("identical write toggled %d extra pins", got-8)
	}
	if err := bus.Write(0xFE); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	if got := writes(); got != 9 {
		t.Errorf("one-bit change toggled %d pins, want 1", got-8)
	}
}

func TestEightBitBusFailureInvalidatesCache(t *testing.T) {
	data, bus, _, _, _ := newFixture(t)

	if err := bus.Write(0x00); err != nil {
		t.Fatalf("Write() = %v", err)
	}

	data[3].err = errors.New("pin stuck")
	if err := bus.Write(0x08); err == nil {
		t.Fatal("Write() with a failing pin did not fail")
	}

	// After a failure the pin state is unknown, so the next write must not
	// trust the cache.
	data[3].err = nil
	before := data[0].n
	if err := bus.Write(0x08); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	if data[0].n == before {
		t.Error("cache trusted after a failed write")
	}
}

func TestSendCommandsLatchesBytes(t *testing.T) {
	_, _, dc, wr, p := newFixture(t)

	if err := p.SendCommands(displaybus.U8([]byte{0x2A, 0x80})); err != nil {
		t.Fatalf("SendCommands() = %v", err)
	}
	if dc.L != gpio.Low {
		t.Error("D/C not in command mode")
	}
	if want := []byte{0x2A, 0x80}; !bytes.Equal(wr.latched, want) {
		t.Errorf("latched = %v, want %v", wr.latched, want)
	}
	if wr.L != gpio.High {
		t.Error("WR not resting high after the call")
	}
}

func TestSendDataLatchesBytes(t *testing.T) {
	_, _, dc, wr, p := newFixture(t)

	if err := p.SendData(displaybus.U8([]byte{0xFF})); err != nil {
		t.Fatalf("SendData() = %v", err)
	}
	if dc.L != gpio.High {
		t.Error("D/C not in data mode")
	}
	if want := []byte{0xFF}; !bytes.Equal(wr.latched, want) {
		t.Errorf("latched = %v, want %v", wr.latched, want)
	}
}

func TestWordByteOrders(t *testing.T) {
	native := binary.NativeEndian.AppendUint16(nil, 0x1234)

	tests := []struct {
		name string
		buf  displaybus.DataFormat
		want []byte
	}{
		{"u16be", displaybus.U16BE([]uint16{0x1234}), []byte{0x12, 0x34}},
		{"u16le", displaybus.U16LE([]uint16{0x1234}), []byte{0x34, 0x12}},
		{"u16 native", displaybus.U16([]uint16{0x1234}), native},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, wr, p := newFixture(t)
			if err := p.SendData(tt.buf); err != nil {
				t.Fatalf("SendData() = %v", err)
			}
			if !bytes.Equal(wr.latched, tt.want) {
				t.Errorf("latched = %v, want %v", wr.latched, tt.want)
			}
			// This transport splits words into bus cycles and never
			// rewrites the caller's buffer.
			if got := tt.buf.Words()[0]; got != 0x1234 {
				t.Errorf("caller buffer mutated: %#x", got)
			}
		})
	}
}

func TestDataCommandFailure(t *testing.T) {
	_, _, dc, wr, p := newFixture(t)
	dc.err = errors.New("pin stuck")

	err := p.SendCommands(displaybus.U8([]byte{0x01}))
	if !errors.Is(err, displaybus.ErrDataCommand) {
		t.Fatalf("SendCommands() = %v, want ErrDataCommand", err)
	}
	if len(wr.latched) != 0 {
		t.Errorf("bytes latched despite D/C failure: %v", wr.latched)
	}
}

func TestDataPinFailure(t *testing.T) {
	data, _, _, wr, p := newFixture(t)
	data[0].err = errors.New("pin stuck")

	err := p.SendData(displaybus.U8([]byte{0x01}))
	if !errors.Is(err, displaybus.ErrBusWrite) {
		t.Fatalf("SendData() = %v, want ErrBusWrite", err)
	}
	if wr.L != gpio.High {
		t.Error("WR not parked high after a data pin failure")
	}
}

func TestStrobeFailure(t *testing.T) {
	_, _, _, wr, p := newFixture(t)
	wr.err = errors.New("pin stuck")

	err := p.SendData(displaybus.U8([]byte{0x01}))
	if !errors.Is(err, displaybus.ErrBusWrite) {
		t.Fatalf("SendData() = %v, want ErrBusWrite", err)
	}
}

func TestEmptyPayload(t *testing.T) {
	_, _, dc, wr, p := newFixture(t)

	if err := p.SendData(displaybus.U8(nil)); err != nil {
		t.Fatalf("SendData(empty) = %v", err)
	}
	if dc.n != 0 || len(wr.latched) != 0 {
		t.Error("bus lines touched for empty payload")
	}
}

func TestZeroFormatRejected(t *testing.T) {
	_, _, dc, _, p := newFixture(t)

	if err := p.SendData(displaybus.DataFormat{}); !errors.Is(err, displaybus.ErrInvalidFormat) {
		t.Fatalf("SendData(zero) = %v, want ErrInvalidFormat", err)
	}
	if dc.n != 0 {
		t.Error("bus lines touched for invalid format")
	}
}
