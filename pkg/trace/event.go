package trace

import (
	"time"
)

// Event represents a single bus transaction issued by the driver.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the transaction completed (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the device handle that issued the
	// transaction (UUID, assigned at connect time).
	SessionID string `cbor:"2,keyasint"`

	// Op is the transaction kind.
	Op Op `cbor:"3,keyasint"`

	// Device is the 7-bit peripheral address the transaction was sent to.
	Device uint16 `cbor:"4,keyasint"`

	// MemAddr is the in-device memory address for read and write
	// transactions. Zero for identify.
	MemAddr uint16 `cbor:"5,keyasint,omitempty"`

	// Len is the number of payload bytes transferred (excluding the
	// two-byte address prefix).
	Len int `cbor:"6,keyasint,omitempty"`

	// Err holds the transport error text if the transaction failed.
	Err string `cbor:"7,keyasint,omitempty"`
}

// Op is the kind of bus transaction.
type Op uint8

const (
	// OpRead is a combined write-then-read transaction.
	OpRead Op = 0
	// OpWrite is a plain write transaction.
	OpWrite Op = 1
	// OpIdentify is a device-ID query to the reserved peripheral address.
	OpIdentify Op = 2
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpRead:
		return "READ"
	case OpWrite:
		return "WRITE"
	case OpIdentify:
		return "IDENTIFY"
	default:
		return "UNKNOWN"
	}
}
