package mb85rc

import (
	"fmt"
	"io"
)

// Device implements io.ReadWriteSeeker over the chip's address space.
var _ io.ReadWriteSeeker = (*Device)(nil)

// Seek sets the cursor for the next Read or Write. Any resulting position
// must lie inside the device: a negative position fails with
// ErrInvalidSeek, a position at or past capacity fails with ErrOutOfRange.
// On failure the cursor is left unchanged and the old position is returned.
func (d *Device) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = d.cursor + offset
	case io.SeekEnd:
		pos = d.capacity + offset
	default:
		return d.cursor, fmt.Errorf("%w: unknown whence %d", ErrInvalidSeek, whence)
	}

	if pos < 0 {
		return d.cursor, fmt.Errorf("%w: negative position %d", ErrInvalidSeek, pos)
	}
	if pos >= d.capacity {
		return d.cursor, fmt.Errorf("%w: position %d, capacity %d", ErrOutOfRange, pos, d.capacity)
	}

	d.cursor = pos
	return pos, nil
}

// Read reads into p starting at the cursor and advances the cursor by the
// number of bytes read. A read reaching the end of the device is truncated
// to fit; once the cursor sits at capacity, Read returns io.EOF.
func (d *Device) Read(p []byte) (int, error) {
	if d.cursor >= d.capacity {
		return 0, io.EOF
	}
	n := len(p)
	if remain := d.capacity - d.cursor; int64(n) > remain {
		n = int(remain)
	}
	if n == 0 {
		return 0, nil
	}

	nr, err := d.dev.ReadAt(uint16(d.cursor), p[:n])
	d.cursor += int64(nr)
	return nr, err
}

// Write writes p starting at the cursor and advances the cursor by the
// number of bytes written. A write reaching the end of the device is
// truncated to fit and reports io.ErrShortWrite; the chip's own behavior
// (wrapping to address 0) is never relied upon.
func (d *Device) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if d.cursor >= d.capacity {
		return 0, io.ErrShortWrite
	}
	n := len(p)
	if remain := d.capacity - d.cursor; int64(n) > remain {
		n = int(remain)
	}

	nw, err := d.dev.WriteAt(uint16(d.cursor), p[:n])
	d.cursor += int64(nw)
	if err != nil {
		return nw, err
	}
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}
