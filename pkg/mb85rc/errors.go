package mb85rc

import "errors"

// Driver errors. Bus-level failures are reported as *bus.TxError and match
// bus.ErrBus; identification failures match devid.ErrIdentify.
var (
	// ErrOutOfRange indicates a position at or beyond device capacity.
	// Out-of-range accesses are rejected, never clamped or wrapped.
	ErrOutOfRange = errors.New("position out of device range")

	// ErrInvalidSeek indicates a seek to a negative position or with an
	// unknown whence value.
	ErrInvalidSeek = errors.New("invalid seek")

	// ErrInvalidConfig indicates an unusable Config value.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupported indicates a device the driver cannot address, such
	// as a variant larger than the 16-bit address space.
	ErrUnsupported = errors.New("unsupported device")
)
