// Package bus defines the two-wire bus capability the FRAM driver is written
// against, and the transaction executor that frames memory accesses for
// MB85RC-series chips.
//
// The driver never talks to a concrete transport directly. It only requires
// the Bus interface, a single combined write-then-read primitive with a
// per-transaction peripheral address. A periph.io i2c.Bus satisfies Bus
// as-is, so on Linux the driver can sit directly on /dev/i2c-N:
//
//	b, err := i2creg.Open("1")
//	if err != nil { ... }
//	dev, err := mb85rc.Connect(b, mb85rc.Config{})
//
// Any other transport (a TinyGo machine.I2C, a test double, a remote bridge)
// works the same way as long as it provides Tx.
package bus
