package mb85rc

import (
	"fmt"

	"github.com/fram-devices/mb85rc-go/pkg/bus"
)

// Device is a handle to one FRAM chip. It owns the bus transport for its
// lifetime, the fixed peripheral address, the device capacity and the
// stream cursor.
//
// Direct access (ReadAt, WriteAt) and the stream interface (Read, Write,
// Seek) may be mixed freely; direct access never moves the cursor.
type Device struct {
	dev      bus.Dev
	capacity int64
	cursor   int64
}

// Size returns the device capacity in bytes.
func (d *Device) Size() int64 {
	return d.capacity
}

// Addr returns the 7-bit peripheral address of the chip.
func (d *Device) Addr() uint16 {
	return d.dev.Addr
}

// SessionID returns the identifier used in trace events for this handle.
func (d *Device) SessionID() string {
	return d.dev.Session
}

// ReadAt reads len(buf) bytes starting at addr, bypassing the cursor.
// An access that would cross the capacity boundary is rejected with
// ErrOutOfRange before any bus transaction is issued.
func (d *Device) ReadAt(addr uint16, buf []byte) (int, error) {
	if err := d.checkRange(addr, len(buf)); err != nil {
		return 0, err
	}
	return d.dev.ReadAt(addr, buf)
}

// WriteAt writes p starting at addr, bypassing the cursor.
// An access that would cross the capacity boundary is rejected with
// ErrOutOfRange before any bus transaction is issued.
func (d *Device) WriteAt(addr uint16, p []byte) (int, error) {
	if err := d.checkRange(addr, len(p)); err != nil {
		return 0, err
	}
	return d.dev.WriteAt(addr, p)
}

// checkRange rejects accesses that would run past the end of the device.
// The chip's internal address counter would silently wrap to address 0,
// corrupting whatever lives there, so the driver never lets such a
// transaction reach the bus.
func (d *Device) checkRange(addr uint16, n int) error {
	if end := int64(addr) + int64(n); end > d.capacity {
		return fmt.Errorf("%w: %d bytes at %#04x, capacity %d", ErrOutOfRange, n, addr, d.capacity)
	}
	return nil
}
