package spi

import "encoding/binary"

// hostBigEndian reports whether this host stores 16-bit words big-endian
// in memory.
var hostBigEndian = binary.NativeEndian.Uint16([]byte{0x00, 0x01}) == 0x0001
