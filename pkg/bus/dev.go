package bus

import (
	"time"

	"github.com/fram-devices/mb85rc-go/pkg/trace"
)

// Dev binds a Bus to a fixed peripheral address and issues the two
// transaction shapes MB85RC chips understand: a combined write-then-read
// for memory reads, and a single write whose payload starts with the
// address prefix for memory writes.
//
// The chip has no separate "set address register" command: the address
// prefix is always the first two bytes of any transaction addressed to it,
// and its internal address counter auto-increments, so sequential bytes
// within one transaction fill consecutive memory cells.
type Dev struct {
	// Bus is the underlying transport. Dev must be its exclusive user
	// for the duration of every call.
	Bus Bus

	// Addr is the 7-bit peripheral address of the chip.
	Addr uint16

	// Trace receives one event per transaction. Nil disables tracing.
	Trace trace.Logger

	// Session identifies this device handle in trace events.
	Session string
}

// ReadAt reads len(buf) bytes starting at the in-device address memaddr.
// It issues one combined transaction: address prefix out, data in.
// Returns the number of bytes read, or a *TxError on transport failure.
func (d *Dev) ReadAt(memaddr uint16, buf []byte) (int, error) {
	prefix := AddrBytes(memaddr)
	err := d.Bus.Tx(d.Addr, prefix[:], buf)
	d.Emit(trace.OpRead, memaddr, len(buf), err)
	if err != nil {
		return 0, &TxError{Op: "read", Device: d.Addr, Err: err}
	}
	return len(buf), nil
}

// WriteAt writes p starting at the in-device address memaddr.
// It issues one write transaction carrying the address prefix immediately
// followed by the payload. Returns the number of payload bytes written,
// or a *TxError on transport failure.
func (d *Dev) WriteAt(memaddr uint16, p []byte) (int, error) {
	prefix := AddrBytes(memaddr)
	w := make([]byte, 0, len(prefix)+len(p))
	w = append(w, prefix[:]...)
	w = append(w, p...)
	err := d.Bus.Tx(d.Addr, w, nil)
	d.Emit(trace.OpWrite, memaddr, len(p), err)
	if err != nil {
		return 0, &TxError{Op: "write", Device: d.Addr, Err: err}
	}
	return len(p), nil
}

// Emit records a transaction with the configured trace logger, if any.
// Exported so higher layers can record transactions they issue on the
// same session (the identification query).
func (d *Dev) Emit(op trace.Op, memaddr uint16, n int, err error) {
	if d.Trace == nil {
		return
	}
	event := trace.Event{
		Timestamp: time.Now(),
		SessionID: d.Session,
		Op:        op,
		Device:    d.Addr,
		MemAddr:   memaddr,
		Len:       n,
	}
	if err != nil {
		event.Err = err.Error()
	}
	d.Trace.Log(event)
}
