package bus

import (
	"errors"
	"fmt"
)

// Bus is the two-wire bus capability required by the driver.
//
// Tx performs a single bus transaction against the peripheral at addr:
// it writes w, then reads len(r) bytes into r without releasing the bus
// between the two phases. Passing a nil or empty r performs a plain write
// transaction. Implementations block until the transaction completes or
// the transport reports a failure (NACK, timeout, arbitration loss).
//
// periph.io/x/conn/v3/i2c.Bus satisfies this interface.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

// ErrBus marks any transport-level transaction failure. Use errors.Is to
// test for it; the concrete error is always a *TxError carrying the
// transport's own error.
var ErrBus = errors.New("bus transaction failed")

// TxError describes a failed bus transaction. It wraps the transport error
// and matches ErrBus via errors.Is.
type TxError struct {
	// Op is the transaction kind ("read", "write" or "identify").
	Op string

	// Device is the 7-bit peripheral address the transaction targeted.
	Device uint16

	// Err is the error reported by the transport.
	Err error
}

// Error returns a description including the peripheral address.
func (e *TxError) Error() string {
	return fmt.Sprintf("bus %s at device %#02x: %v", e.Op, e.Device, e.Err)
}

// Unwrap returns the transport error.
func (e *TxError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrBus.
func (e *TxError) Is(target error) bool {
	return target == ErrBus
}

// AddrBytes encodes a 16-bit in-device memory address as the two-byte
// big-endian prefix that starts every transaction addressed to the chip.
func AddrBytes(addr uint16) [2]byte {
	return [2]byte{byte(addr >> 8), byte(addr & 0xFF)}
}
