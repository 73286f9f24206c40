package trace

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture remembers the events it receives.
type capture struct {
	events []Event
}

func (c *capture) Log(e Event) { c.events = append(c.events, e) }

func TestNoopLogger(t *testing.T) {
	// must not panic, zero value usable
	var l NoopLogger
	l.Log(Event{Op: OpRead})
}

func TestMultiLogger(t *testing.T) {
	a, b := &capture{}, &capture{}
	ml := NewMultiLogger(a, b)

	ml.Log(Event{Op: OpWrite, MemAddr: 0x42})

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
	assert.Equal(t, uint16(0x42), b.events[0].MemAddr)
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	a := NewSlogAdapter(slog.New(h))

	a.Log(Event{SessionID: "s1", Op: OpWrite, Device: 0x50, MemAddr: 0x1234, Len: 16})

	out := buf.String()
	assert.Contains(t, out, "bus transaction")
	assert.Contains(t, out, "WRITE")
	assert.Contains(t, out, "0x1234")
	assert.Contains(t, out, "level=DEBUG")
}

func TestSlogAdapterFailedTransaction(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	a := NewSlogAdapter(slog.New(h))

	a.Log(Event{SessionID: "s1", Op: OpRead, Device: 0x50, Err: "bus fault"})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "bus fault")
}
