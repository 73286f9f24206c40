// Package devid implements the MB85RC device-ID query.
//
// The chip family answers a reserved-address identification transaction with
// three bytes naming the manufacturer, the memory density and the product
// revision. The density nibble encodes the capacity of the part, which is
// how the driver auto-detects the size of an unknown chip.
package devid

import (
	"errors"
	"fmt"

	"github.com/fram-devices/mb85rc-go/pkg/bus"
)

// IDAddr is the reserved peripheral address for device-ID queries.
// The datasheet writes it as the 8-bit bus byte 0xF8; on a 7-bit address
// transport that is 0xF8 >> 1.
const IDAddr = 0xF8 >> 1

// ManufacturerFujitsu is the JEDEC manufacturer code reported by genuine
// MB85RC parts.
const ManufacturerFujitsu uint16 = 0x00A

// ErrIdentify marks a failed identification query. The construction path
// treats it as fatal unless an explicit capacity was configured.
var ErrIdentify = errors.New("device identification failed")

// Identity is the decoded device-ID response.
type Identity struct {
	// Manufacturer is the 12-bit JEDEC manufacturer code.
	Manufacturer uint16

	// Density is the 4-bit capacity exponent: the part holds
	// 2^Density KiB.
	Density uint8

	// Revision is the product revision byte. The driver does not
	// interpret it.
	Revision uint8
}

// Capacity returns the addressable size of the part in bytes,
// 2^Density * 1024.
func (id Identity) Capacity() int64 {
	return (int64(1) << id.Density) * 1024
}

// String returns a short human-readable summary.
func (id Identity) String() string {
	return fmt.Sprintf("manufacturer %#03x, density %d (%d bytes), revision %#02x",
		id.Manufacturer, id.Density, id.Capacity(), id.Revision)
}

// Decode decodes a raw 3-byte device-ID response.
func Decode(raw [3]byte) Identity {
	return Identity{
		Manufacturer: uint16(raw[0])<<4 | uint16(raw[1])>>4&0xF,
		Density:      raw[1] & 0xF,
		Revision:     raw[2],
	}
}

// Identify queries the identity of the chip at the given 7-bit peripheral
// address. The query is a combined transaction to IDAddr whose single
// command byte encodes the target device's own bus address, with a 3-byte
// response read back.
//
// Errors wrap ErrIdentify and the transport failure.
func Identify(b bus.Bus, device uint16) (Identity, error) {
	cmd := []byte{byte(device << 1)}
	var raw [3]byte
	if err := b.Tx(IDAddr, cmd, raw[:]); err != nil {
		return Identity{}, fmt.Errorf("%w: device %#02x: %v", ErrIdentify, device, err)
	}
	return Decode(raw), nil
}
