// Package displaybus abstracts the bus behind a display panel driver.
//
// Small displays are driven over whatever transport the board happens to
// have: 4-wire SPI with a data/command pin, I2C with a control byte, or an
// 8080-style parallel GPIO bus. The panel controller protocol (init
// sequence, addressing, pixel pushes) is the same either way. This package
// defines the seam between the two: an error taxonomy, a width-tagged data
// carrier, and a two-method write contract a display driver can target
// without knowing which transport sits underneath.
//
// # The contract
//
// A bus adapter implements Writer:
//
//	type Writer interface {
//		SendCommands(buf DataFormat) error
//		SendData(buf DataFormat) error
//	}
//
// A display driver holds a Writer and never touches GPIO, SPI or I2C
// directly:
//
//	func (d *Dev) setWindow(x0, y0, x1, y1 int) error {
//		if err := d.bus.SendCommands(displaybus.U8([]byte{0x2A})); err != nil {
//			return err
//		}
//		return d.bus.SendData(displaybus.U8([]byte{
//			byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1),
//		}))
//	}
//
// # Data formats
//
// DataFormat is a borrowed view over the driver's own buffer, tagged with
// element width and wire byte order:
//
//	displaybus.U8(buf)     // bytes, sent as-is
//	displaybus.U16(buf)    // 16-bit words, host byte order (not recommended)
//	displaybus.U16BE(buf)  // 16-bit words, big-endian on the wire
//	displaybus.U16LE(buf)  // 16-bit words, little-endian on the wire
//
// The 16-bit kinds exist because most color panels take RGB565 pixels as
// big-endian words; carrying them as []uint16 lets the driver keep its
// frame buffer in a natural shape and leave serialization to the adapter.
// For U16BE and U16LE the adapter may byte-swap the buffer in place rather
// than copy it, so the buffer contents after a call reflect the wire
// order. Nothing in the carrier or the adapters heap-allocates per call.
//
// Adapters are not required to implement every kind. A kind an adapter
// does not support fails with ErrFormatNotImplemented before any bus line
// moves, and the driver can fall back to U8. The set of kinds is open;
// always keep a default branch when switching on one.
//
// # Adapters
//
// Concrete adapters for the periph.io stack live in subpackages:
//
//   - spi: 4-wire SPI with a D/C GPIO pin and optional software chip
//     select. Implements all four kinds.
//   - i2c: control-byte protocol used by SSD1306-class controllers.
//     Implements U8 only.
//   - parallel: 8080-style 8-bit parallel GPIO bus with D/C and WR pins.
//     Implements all four kinds.
//
// Wiring one up follows the usual periph.io pattern:
//
//	host.Init()
//	port, _ := spireg.Open("")
//	c, _ := port.Connect(10*physic.MegaHertz, spi.Mode0, 8)
//	bus := spibus.New(c, gpioreg.ByName("GPIO25"))
//	drv := mypanel.New(bus) // drv only sees displaybus.Writer
//
// The displaybustest subpackage has a recording Writer for driver test
// suites.
//
// # Errors
//
// Failures are reported as one of five sentinel errors (ErrInvalidFormat,
// ErrBusWrite, ErrDataCommand, ErrChipSelect, ErrFormatNotImplemented),
// matched with errors.Is. The taxonomy is deliberately coarse so adapters
// can map rich transport-specific faults onto a stable surface; what to do
// about a failure (retry a bus write, treat a chip-select fault as a wiring
// problem) is the display driver's call, not the adapter's. The set is
// open to extension, so error handling should keep a fallback branch too.
//
// # Concurrency
//
// Everything here is synchronous and blocking. A Writer instance is not
// safe for concurrent use: one physical bus, one transmission at a time.
// Callers that share an adapter must serialize access around it.
package displaybus
