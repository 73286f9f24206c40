// Package mock provides an in-memory MB85RC chip simulator for testing.
//
// Chip implements the bus capability (Tx) and reproduces the behaviors the
// driver depends on: the two-byte address prefix, the auto-incrementing
// internal address counter with wraparound at capacity, and the device-ID
// response at the reserved identification address. Fault injection lets
// tests exercise transport failure paths without hardware.
package mock

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fram-devices/mb85rc-go/pkg/bus"
	"github.com/fram-devices/mb85rc-go/pkg/devid"
)

// Bus-level failures the simulator reports, shaped like a Linux I2C
// adapter's errors.
var (
	// ErrNACK indicates no device acknowledged the address.
	ErrNACK = errors.New("i2c: no acknowledge from device")

	// ErrFraming indicates a transaction the chip cannot parse, such as
	// a write without the address prefix.
	ErrFraming = errors.New("i2c: malformed transaction")
)

// Transaction records one Tx call for assertions.
type Transaction struct {
	// Addr is the peripheral address the transaction targeted.
	Addr uint16

	// W is a copy of the written bytes (including any address prefix).
	W []byte

	// R is the number of bytes read.
	R int

	// Err is the result reported to the caller.
	Err error
}

// Chip simulates one MB85RC FRAM chip on a two-wire bus.
// The zero value is not usable; create chips with NewChip.
type Chip struct {
	// Addr is the chip's 7-bit peripheral address (default 0x50).
	Addr uint16

	// Manufacturer is reported in device-ID responses
	// (default: devid.ManufacturerFujitsu).
	Manufacturer uint16

	// Revision is the product revision byte in device-ID responses.
	Revision uint8

	mu       sync.Mutex
	mem      []byte
	ptr      int
	failNext error
	log      []Transaction
}

// NewChip creates a chip with the given capacity in bytes. Capacity must be
// a power of two between 128 and 65536; NewChip panics otherwise, since a
// bad simulator configuration is a test bug, not a runtime condition.
func NewChip(capacity int64) *Chip {
	if capacity < 128 || capacity > 1<<16 || capacity&(capacity-1) != 0 {
		panic(fmt.Sprintf("mock: invalid chip capacity %d", capacity))
	}
	return &Chip{
		Addr:         0x50,
		Manufacturer: devid.ManufacturerFujitsu,
		Revision:     0x10,
		mem:          make([]byte, capacity),
	}
}

// Size returns the chip capacity in bytes.
func (c *Chip) Size() int64 {
	return int64(len(c.mem))
}

// FailNext makes the next Tx call fail with err without touching memory.
func (c *Chip) FailNext(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failNext = err
}

// Memory returns a copy of the chip's memory contents.
func (c *Chip) Memory() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]byte, len(c.mem))
	copy(out, c.mem)
	return out
}

// Load preseeds memory at addr, wrapping at capacity like the chip itself.
func (c *Chip) Load(addr uint16, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := int(addr) % len(c.mem)
	for _, b := range data {
		c.mem[p] = b
		p = (p + 1) % len(c.mem)
	}
}

// Transactions returns a copy of the recorded transaction log.
func (c *Chip) Transactions() []Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Transaction, len(c.log))
	copy(out, c.log)
	return out
}

// Tx implements the bus capability.
func (c *Chip) Tx(addr uint16, w, r []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.tx(addr, w, r)
	c.log = append(c.log, Transaction{
		Addr: addr,
		W:    append([]byte(nil), w...),
		R:    len(r),
		Err:  err,
	})
	return err
}

func (c *Chip) tx(addr uint16, w, r []byte) error {
	if c.failNext != nil {
		err := c.failNext
		c.failNext = nil
		return err
	}

	switch addr {
	case devid.IDAddr:
		return c.identify(w, r)
	case c.Addr:
		return c.access(w, r)
	default:
		return ErrNACK
	}
}

// identify answers the device-ID query. Small family variants below 1 KiB
// do not implement the query; the simulator NACKs for those, which is what
// forces callers to configure the size explicitly.
func (c *Chip) identify(w, r []byte) error {
	if len(c.mem) < 1024 {
		return ErrNACK
	}
	if len(w) != 1 || w[0] != byte(c.Addr<<1) {
		return ErrNACK
	}
	if len(r) != 3 {
		return ErrFraming
	}

	density := uint8(0)
	for size := int64(1024); size < int64(len(c.mem)); size <<= 1 {
		density++
	}
	r[0] = byte(c.Manufacturer >> 4)
	r[1] = byte(c.Manufacturer&0xF)<<4 | density
	r[2] = c.Revision
	return nil
}

// access handles a memory transaction: the first two written bytes load the
// internal address counter, every further written byte stores and
// increments, every read byte loads and increments. The counter wraps at
// capacity, exactly like the hardware.
func (c *Chip) access(w, r []byte) error {
	if len(w) < 2 {
		return ErrFraming
	}
	c.ptr = (int(w[0])<<8 | int(w[1])) % len(c.mem)

	for _, b := range w[2:] {
		c.mem[c.ptr] = b
		c.ptr = (c.ptr + 1) % len(c.mem)
	}
	for i := range r {
		r[i] = c.mem[c.ptr]
		c.ptr = (c.ptr + 1) % len(c.mem)
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ bus.Bus = (*Chip)(nil)
