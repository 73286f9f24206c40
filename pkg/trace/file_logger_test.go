package trace

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvents(t *testing.T, path string, events []Event) {
	t.Helper()
	fl, err := NewFileLogger(path)
	require.NoError(t, err)
	for _, e := range events {
		fl.Log(e)
	}
	require.NoError(t, fl.Close())
}

func readAll(t *testing.T, path string, filter Filter) []Event {
	t.Helper()
	r, err := NewFilteredReader(path, filter)
	require.NoError(t, err)
	defer r.Close()

	var out []Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, e)
	}
}

func sampleEvents(base time.Time) []Event {
	return []Event{
		{Timestamp: base, SessionID: "s1", Op: OpIdentify, Device: 0x7C, Len: 3},
		{Timestamp: base.Add(time.Millisecond), SessionID: "s1", Op: OpWrite, Device: 0x50, MemAddr: 0x10, Len: 8},
		{Timestamp: base.Add(2 * time.Millisecond), SessionID: "s1", Op: OpRead, Device: 0x50, MemAddr: 0x10, Len: 8},
		{Timestamp: base.Add(3 * time.Millisecond), SessionID: "s2", Op: OpRead, Device: 0x51, MemAddr: 0x20, Len: 4,
			Err: "i2c: no acknowledge from device"},
	}
}

func TestFileLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fram.trace")
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	writeEvents(t, path, sampleEvents(base))

	got := readAll(t, path, Filter{})
	require.Len(t, got, 4)
	assert.Equal(t, OpIdentify, got[0].Op)
	assert.Equal(t, uint16(0x10), got[1].MemAddr)
	assert.True(t, got[0].Timestamp.Equal(base))
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fram.trace")
	base := time.Now().UTC()

	writeEvents(t, path, sampleEvents(base)[:2])
	writeEvents(t, path, sampleEvents(base)[2:])

	got := readAll(t, path, Filter{})
	assert.Len(t, got, 4)
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fram.trace")
	fl, err := NewFileLogger(path)
	require.NoError(t, err)

	require.NoError(t, fl.Close())
	require.NoError(t, fl.Close())

	// logging after close is silently ignored
	fl.Log(Event{SessionID: "late"})
	got := readAll(t, path, Filter{})
	assert.Empty(t, got)
}

func TestReaderFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fram.trace")
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	writeEvents(t, path, sampleEvents(base))

	t.Run("by session", func(t *testing.T) {
		got := readAll(t, path, Filter{SessionID: "s2"})
		require.Len(t, got, 1)
		assert.Equal(t, uint16(0x51), got[0].Device)
	})

	t.Run("by op", func(t *testing.T) {
		op := OpRead
		got := readAll(t, path, Filter{Op: &op})
		assert.Len(t, got, 2)
	})

	t.Run("by device", func(t *testing.T) {
		dev := uint16(0x50)
		got := readAll(t, path, Filter{Device: &dev})
		assert.Len(t, got, 2)
	})

	t.Run("by time window", func(t *testing.T) {
		start := base.Add(time.Millisecond)
		end := base.Add(3 * time.Millisecond)
		got := readAll(t, path, Filter{TimeStart: &start, TimeEnd: &end})
		assert.Len(t, got, 2)
	})

	t.Run("failed only", func(t *testing.T) {
		got := readAll(t, path, Filter{FailedOnly: true})
		require.Len(t, got, 1)
		assert.Equal(t, "s2", got[0].SessionID)
	})
}
