// Package displaybus defines the bus-facing contract between display panel
// drivers and the transport (SPI, I2C, parallel GPIO) that carries their
// commands and pixel data.
//
// See doc.go for an overview and usage examples.
package displaybus

// Kind tags the element width and wire byte order of a DataFormat.
//
// The set of kinds is open: future versions may add widths or orderings.
// Adapters switching on a Kind must keep a default branch that returns
// ErrFormatNotImplemented instead of assuming the list below is complete.
type Kind uint8

const (
	// KindInvalid is the kind of the zero DataFormat. Adapters reject it
	// with ErrInvalidFormat.
	KindInvalid Kind = iota

	// KindU8 is a sequence of 8-bit values sent as-is.
	KindU8

	// KindU16 is a sequence of 16-bit values in the host's native byte
	// order. Not recommended: what goes on the wire depends on the host.
	KindU16

	// KindU16BE is a sequence of 16-bit values to be sent big-endian.
	KindU16BE

	// KindU16LE is a sequence of 16-bit values to be sent little-endian.
	KindU16LE
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU16BE:
		return "u16be"
	case KindU16LE:
		return "u16le"
	default:
		return "invalid"
	}
}

// DataFormat is a width- and byte-order-tagged view over a caller-owned
// buffer, passed to a Writer's SendCommands or SendData.
//
// A DataFormat never owns or copies the data it refers to. The backing
// buffer must stay valid, and must not be touched by anyone else, for the
// duration of the call the DataFormat is passed into; neither the caller
// nor the adapter may retain the view past that call.
//
// For KindU16BE and KindU16LE the adapter is allowed to byte-swap the
// caller's buffer in place to reach the wire order without allocating, so
// the buffer contents after the call reflect what was actually transmitted,
// not necessarily what the caller put in.
//
// A DataFormat is a plain value: constructing and passing one does not
// allocate.
type DataFormat struct {
	kind  Kind
	bytes []byte
	words []uint16
}

// U8 wraps a byte slice to be sent as-is. This is the lossless, always-safe
// carrier every adapter supports.
func U8(b []byte) DataFormat {
	return DataFormat{kind: KindU8, bytes: b}
}

// U16 wraps a slice of 16-bit values in the host's native byte order.
// Not recommended for anything that must be portable across hosts; prefer
// U16BE or U16LE, which pin the wire order explicitly.
func U16(w []uint16) DataFormat {
	return DataFormat{kind: KindU16, words: w}
}

// U16BE wraps a slice of 16-bit values for big-endian transmission. The
// adapter may byte-swap w in place.
func U16BE(w []uint16) DataFormat {
	return DataFormat{kind: KindU16BE, words: w}
}

// U16LE wraps a slice of 16-bit values for little-endian transmission. The
// adapter may byte-swap w in place.
func U16LE(w []uint16) DataFormat {
	return DataFormat{kind: KindU16LE, words: w}
}

// Kind reports which variant this carrier holds.
func (f DataFormat) Kind() Kind {
	return f.kind
}

// Bytes returns the wrapped byte slice. It is non-nil only for KindU8.
func (f DataFormat) Bytes() []byte {
	return f.bytes
}

// Words returns the wrapped 16-bit slice. It is non-nil only for the three
// 16-bit kinds.
func (f DataFormat) Words() []uint16 {
	return f.words
}

// Len returns the number of elements in the carrier (bytes for KindU8,
// words for the 16-bit kinds).
func (f DataFormat) Len() int {
	if f.kind == KindU8 {
		return len(f.bytes)
	}
	return len(f.words)
}

// Writer is the write-only command/data contract a bus adapter implements
// and a display driver depends on.
//
// Implementations own whatever mode-select signalling their transport has:
// SendCommands must put the bus into command mode before any payload moves,
// SendData into data mode, and both must leave the bus in its resting state
// before returning, on success and on failure alike.
//
// An adapter that is handed a kind it does not implement must return
// ErrFormatNotImplemented without driving the bus; it must never truncate
// or reinterpret the payload to make it fit.
//
// A Writer is not safe for concurrent use. One adapter instance drives one
// physical bus, and at most one transmission may be in flight on it; callers
// sharing an adapter across goroutines must serialize access themselves.
type Writer interface {
	// SendCommands transmits buf with command semantics.
	SendCommands(buf DataFormat) error

	// SendData transmits buf with data (typically pixel) semantics.
	SendData(buf DataFormat) error
}
