// Package harness exercises a connected FRAM device with randomized
// payloads. It is shared by cmd/fram-test and the integration test: every
// scenario works against a live chip on a real bus as well as against the
// mock simulator.
package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/fram-devices/mb85rc-go/pkg/mb85rc"
)

// Scenario is one self-contained exercise of the device under test.
// Run returns nil on success. Scenarios restore no state: they may leave
// arbitrary data behind, which is fine for a test part but destructive for
// a part holding production data.
type Scenario struct {
	// Name identifies the scenario in reports and pattern matching.
	Name string

	// Run executes the scenario. rng is seeded by the harness so runs
	// are reproducible.
	Run func(dev *mb85rc.Device, rng *rand.Rand) error
}

// Scenarios returns the standard scenario list.
//
// withIdentify controls whether the device-ID check is included; it must be
// skipped for family variants that do not implement the query (the ones
// that require an explicit size).
func Scenarios(withIdentify bool) []Scenario {
	s := []Scenario{
		{Name: "roundtrip-pow2", Run: roundTripPow2},
		{Name: "roundtrip-random", Run: roundTripRandom},
		{Name: "stream-cursor", Run: streamCursor},
		{Name: "seek-bounds", Run: seekBounds},
		{Name: "boundary-byte", Run: boundaryByte},
	}
	if withIdentify {
		s = append([]Scenario{{Name: "identify", Run: identify}}, s...)
	}
	return s
}

// identify checks that the chip answers the device-ID query and that the
// reported capacity matches the connected size.
func identify(dev *mb85rc.Device, _ *rand.Rand) error {
	id, err := dev.Identify()
	if err != nil {
		return err
	}
	if id.Capacity() != dev.Size() {
		return fmt.Errorf("identity reports %d bytes, device connected with %d", id.Capacity(), dev.Size())
	}
	return nil
}

// roundTripPow2 writes and reads back random payloads of every power-of-two
// size up to the device capacity, always at address 0.
func roundTripPow2(dev *mb85rc.Device, rng *rand.Rand) error {
	for size := 1; int64(size) <= dev.Size() && size <= 1<<16; size <<= 1 {
		if err := streamRoundTrip(dev, rng, 0, size); err != nil {
			return fmt.Errorf("size %d: %w", size, err)
		}
	}
	return nil
}

// roundTripRandom performs direct (cursor-free) round trips at random
// addresses and lengths.
func roundTripRandom(dev *mb85rc.Device, rng *rand.Rand) error {
	for i := 0; i < 32; i++ {
		n := 1 + rng.Intn(256)
		if int64(n) > dev.Size() {
			n = int(dev.Size())
		}
		addr := uint16(rng.Int63n(dev.Size() - int64(n) + 1))

		want := make([]byte, n)
		rng.Read(want)
		if _, err := dev.WriteAt(addr, want); err != nil {
			return fmt.Errorf("write %d bytes at %#04x: %w", n, addr, err)
		}

		got := make([]byte, n)
		if _, err := dev.ReadAt(addr, got); err != nil {
			return fmt.Errorf("read %d bytes at %#04x: %w", n, addr, err)
		}
		if !bytes.Equal(got, want) {
			return fmt.Errorf("mismatch for %d bytes at %#04x", n, addr)
		}
	}
	return nil
}

// streamCursor writes two adjacent records through the stream interface and
// reads them back with a single seek, verifying the cursor advances by the
// bytes transferred.
func streamCursor(dev *mb85rc.Device, rng *rand.Rand) error {
	recLen := 32
	if int64(2*recLen) > dev.Size() {
		recLen = int(dev.Size() / 2)
	}
	base := int64(0)
	if span := dev.Size() - int64(2*recLen); span > 0 {
		base = rng.Int63n(span)
	}

	first := make([]byte, recLen)
	second := make([]byte, recLen)
	rng.Read(first)
	rng.Read(second)

	if _, err := dev.Seek(base, io.SeekStart); err != nil {
		return err
	}
	if _, err := dev.Write(first); err != nil {
		return err
	}
	// no seek between records: the cursor must already sit at base+recLen
	if _, err := dev.Write(second); err != nil {
		return err
	}

	if _, err := dev.Seek(base, io.SeekStart); err != nil {
		return err
	}
	got := make([]byte, 2*recLen)
	if _, err := io.ReadFull(dev, got); err != nil {
		return err
	}
	if !bytes.Equal(got[:recLen], first) || !bytes.Equal(got[recLen:], second) {
		return fmt.Errorf("sequential records at %#04x read back corrupted", base)
	}
	return nil
}

// seekBounds verifies the strict bounds checks: seeking at capacity fails,
// seeking to the last byte succeeds, negative positions are rejected.
func seekBounds(dev *mb85rc.Device, _ *rand.Rand) error {
	if _, err := dev.Seek(dev.Size(), io.SeekStart); !errors.Is(err, mb85rc.ErrOutOfRange) {
		return fmt.Errorf("seek to capacity: want ErrOutOfRange, got %v", err)
	}
	if _, err := dev.Seek(dev.Size()-1, io.SeekStart); err != nil {
		return fmt.Errorf("seek to capacity-1: %w", err)
	}
	if _, err := dev.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := dev.Seek(-1, io.SeekCurrent); !errors.Is(err, mb85rc.ErrInvalidSeek) {
		return fmt.Errorf("relative seek below zero: want ErrInvalidSeek, got %v", err)
	}
	if _, err := dev.Seek(0, io.SeekEnd); !errors.Is(err, mb85rc.ErrOutOfRange) {
		return fmt.Errorf("seek to end: want ErrOutOfRange, got %v", err)
	}
	return nil
}

// boundaryByte round-trips the very last byte of the device.
func boundaryByte(dev *mb85rc.Device, rng *rand.Rand) error {
	return streamRoundTrip(dev, rng, dev.Size()-1, 1)
}

// streamRoundTrip seeks to at, writes n random bytes, seeks back and reads
// them, comparing byte for byte.
func streamRoundTrip(dev *mb85rc.Device, rng *rand.Rand, at int64, n int) error {
	want := make([]byte, n)
	rng.Read(want)

	if _, err := dev.Seek(at, io.SeekStart); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	if _, err := dev.Write(want); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	if _, err := dev.Seek(at, io.SeekStart); err != nil {
		return fmt.Errorf("seek back: %w", err)
	}
	got := make([]byte, n)
	// fill with a marker so a short read cannot false-pass
	for i := range got {
		got[i] = 0xCD
	}
	if _, err := io.ReadFull(dev, got); err != nil {
		return fmt.Errorf("read: %w", err)
	}

	if !bytes.Equal(got, want) {
		return fmt.Errorf("payload mismatch at %#04x length %d", at, n)
	}
	return nil
}
