package mb85rc

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/fram-devices/mb85rc-go/pkg/bus"
	"github.com/fram-devices/mb85rc-go/pkg/devid"
	"github.com/fram-devices/mb85rc-go/pkg/trace"
)

const (
	// DefaultAddr is the factory-default 7-bit peripheral address of
	// MB85RC chips.
	DefaultAddr = 0x50

	// MaxCapacity is the largest device size addressable with the
	// two-byte address prefix. Larger family variants use extra high
	// address bits that this driver does not model.
	MaxCapacity = 1 << 16
)

// Config configures a Device. The zero value connects to a chip at the
// default address and auto-detects its capacity.
type Config struct {
	// Address is the 7-bit peripheral address (default: 0x50).
	Address uint16

	// Size is the device capacity in bytes. Must be a power of two no
	// larger than MaxCapacity. Zero means auto-detect via the device-ID
	// query; supplying a size skips identification entirely.
	Size int64

	// Trace receives one event per bus transaction. Nil disables tracing.
	Trace trace.Logger
}

// Connect validates the configuration and produces a ready Device.
//
// If no capacity was supplied, Connect performs one identification query;
// a failed query aborts construction with an error wrapping
// devid.ErrIdentify. Callers whose transport cannot reach the reserved
// identification address must supply Size explicitly.
//
// The Device assumes exclusive ownership of b for its lifetime.
func Connect(b bus.Bus, cfg Config) (*Device, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil bus", ErrInvalidConfig)
	}

	addr := cfg.Address
	if addr == 0 {
		addr = DefaultAddr
	}
	if addr > 0x7F {
		return nil, fmt.Errorf("%w: peripheral address %#x exceeds 7 bits", ErrInvalidConfig, addr)
	}

	d := &Device{
		dev: bus.Dev{
			Bus:     b,
			Addr:    addr,
			Trace:   cfg.Trace,
			Session: uuid.New().String(),
		},
	}

	size := cfg.Size
	if size == 0 {
		id, err := d.Identify()
		if err != nil {
			return nil, fmt.Errorf("capacity auto-detection: %w", err)
		}
		size = id.Capacity()
		if size > MaxCapacity {
			return nil, fmt.Errorf("%w: density %d (%d bytes) exceeds the 16-bit address space",
				ErrUnsupported, id.Density, size)
		}
	} else {
		if size < 0 || size > MaxCapacity {
			return nil, fmt.Errorf("%w: size %d out of range (1..%d)", ErrInvalidConfig, size, MaxCapacity)
		}
		if size&(size-1) != 0 {
			return nil, fmt.Errorf("%w: size %d is not a power of two", ErrInvalidConfig, size)
		}
	}

	d.capacity = size
	return d, nil
}

// Identify queries the chip's identity without disturbing the cursor.
func (d *Device) Identify() (devid.Identity, error) {
	id, err := devid.Identify(d.dev.Bus, d.dev.Addr)
	d.dev.Emit(trace.OpIdentify, 0, 3, err)
	return id, err
}
