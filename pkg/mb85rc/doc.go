// Package mb85rc is a driver for MB85RC-series I2C FRAM chips.
//
// The chip is byte-addressable non-volatile memory behind a two-wire bus.
// This package exposes it two ways: direct addressed access (ReadAt and
// WriteAt, one bus transaction per call, no shared state) and a seekable
// stream (io.ReadWriteSeeker) with a single cursor, so callers can reuse
// ordinary buffered-I/O idioms for record access instead of hand-rolling
// address arithmetic.
//
// Developed with the MB85RC256V in mind; any variant of the family that
// answers the standard device-ID query works, and variants that do not can
// be used by configuring the capacity explicitly.
//
// # Usage
//
//	b, err := i2creg.Open("1")
//	if err != nil { ... }
//	defer b.Close()
//
//	dev, err := mb85rc.Connect(b, mb85rc.Config{}) // 0x50, auto-detect size
//	if err != nil { ... }
//
//	if _, err := dev.Seek(0x100, io.SeekStart); err != nil { ... }
//	if _, err := dev.Write(record); err != nil { ... }
//
// A Device is not safe for concurrent use. It assumes exclusive ownership of
// the bus for the duration of every call; callers needing shared access must
// serialize externally.
package mb85rc
