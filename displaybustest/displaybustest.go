// Package displaybustest provides a displaybus.Writer test double for
// display driver test suites.
package displaybustest

import (
	"encoding/binary"

	"github.com/flavioheleno/displaybus"
)

// Op is one recorded transmission.
type Op struct {
	// Cmd is true for SendCommands, false for SendData.
	Cmd bool
	// Kind the payload arrived as.
	Kind displaybus.Kind
	// Data is the payload flattened to the wire byte order its kind
	// dictates (host order for KindU16).
	Data []byte
}

// Record implements displaybus.Writer and logs every transmission, so a
// driver test can assert the exact command and data byte sequences the
// code under test produced.
//
// Unlike a real adapter, Record copies payloads and never mutates the
// caller's buffer, so recorded data is stable even when the driver reuses
// its buffers.
//
// The zero value accepts every kind and never fails.
type Record struct {
	// Ops accumulates transmissions in order.
	Ops []Op

	// Unsupported lists kinds Record rejects with ErrFormatNotImplemented
	// without recording, to mimic a narrower adapter.
	Unsupported []displaybus.Kind

	errs []error
}

var _ displaybus.Writer = &Record{}

// FailNext queues err to be returned, instead of recording, by an upcoming
// call. Queued errors are consumed in FIFO order, one per call.
func (r *Record) FailNext(err error) {
	r.errs = append(r.errs, err)
}

// Reset drops all recorded operations and queued errors.
func (r *Record) Reset() {
	r.Ops = nil
	r.errs = nil
}

// Commands returns the concatenated payloads of all recorded command
// transmissions.
func (r *Record) Commands() []byte {
	return r.concat(true)
}

// Data returns the concatenated payloads of all recorded data
// transmissions.
func (r *Record) Data() []byte {
	return r.concat(false)
}

func (r *Record) concat(cmd bool) []byte {
	var out []byte
	for _, op := range r.Ops {
		if op.Cmd == cmd {
			out = append(out, op.Data...)
		}
	}
	return out
}

// SendCommands implements displaybus.Writer.
func (r *Record) SendCommands(buf displaybus.DataFormat) error {
	return r.send(true, buf)
}

// SendData implements displaybus.Writer.
func (r *Record) SendData(buf displaybus.DataFormat) error {
	return r.send(false, buf)
}

func (r *Record) send(cmd bool, buf displaybus.DataFormat) error {
	if len(r.errs) != 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		return err
	}
	for _, k := range r.Unsupported {
		if buf.Kind() == k {
			return displaybus.ErrFormatNotImplemented
		}
	}
	data, err := flatten(buf)
	if err != nil {
		return err
	}
	r.Ops = append(r.Ops, Op{Cmd: cmd, Kind: buf.Kind(), Data: data})
	return nil
}

func flatten(buf displaybus.DataFormat) ([]byte, error) {
	var order binary.AppendByteOrder
	switch buf.Kind() {
	case displaybus.KindU8:
		return append([]byte(nil), buf.Bytes()...), nil
	case displaybus.KindU16:
		order = binary.NativeEndian
	case displaybus.KindU16BE:
		order = binary.BigEndian
	case displaybus.KindU16LE:
		order = binary.LittleEndian
	case displaybus.KindInvalid:
		return nil, displaybus.ErrInvalidFormat
	default:
		return nil, displaybus.ErrFormatNotImplemented
	}
	out := make([]byte, 0, 2*len(buf.Words()))
	for _, w := range buf.Words() {
		out = order.AppendUint16(out, w)
	}
	return out, nil
}
