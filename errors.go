package displaybus

import "errors"

// Failure kinds a bus adapter can report. The set is open: future versions
// may add sentinels, so code switching on these must use errors.Is and keep
// a fallback branch for kinds it does not know.
//
// Adapters return the sentinels as-is rather than wrapping them, so error
// reporting never allocates on the transmit path. An adapter that wants to
// attach transport detail may wrap a sentinel with fmt.Errorf("...: %w", ...)
// at the cost of an allocation; errors.Is keeps working either way.
var (
	// ErrInvalidFormat is returned when the requested data format is
	// fundamentally incompatible with the transport, for example a carrier
	// that violates the wire protocol's alignment rules, or the zero
	// DataFormat value.
	ErrInvalidFormat = errors.New("displaybus: invalid data format for this interface")

	// ErrBusWrite is returned when the underlying transport write failed
	// (NACK, timeout, hardware fault).
	ErrBusWrite = errors.New("displaybus: unable to write to bus")

	// ErrDataCommand is returned when the data/command select signal could
	// not be asserted or de-asserted.
	ErrDataCommand = errors.New("displaybus: unable to set data/command signal")

	// ErrChipSelect is returned when the chip select signal could not be
	// asserted or de-asserted.
	ErrChipSelect = errors.New("displaybus: unable to set chip select signal")

	// ErrFormatNotImplemented is returned when the carrier's kind is valid
	// but this particular adapter does not implement it. Display drivers
	// should treat it as permanent and fall back to a supported kind.
	ErrFormatNotImplemented = errors.New("displaybus: data format not implemented by this interface")
)
