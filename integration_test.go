package mb85rc_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fram-devices/mb85rc-go/internal/harness"
	"github.com/fram-devices/mb85rc-go/internal/harness/mock"
	"github.com/fram-devices/mb85rc-go/pkg/mb85rc"
	"github.com/fram-devices/mb85rc-go/pkg/trace"
)

// TestFullStack connects to a simulated chip with tracing enabled, runs the
// complete harness scenario set, and then verifies the recorded trace file
// is a faithful account of what went over the bus.
func TestFullStack(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "fram.trace")
	fl, err := trace.NewFileLogger(tracePath)
	require.NoError(t, err)

	chip := mock.NewChip(32768)
	dev, err := mb85rc.Connect(chip, mb85rc.Config{Trace: fl})
	require.NoError(t, err)
	require.Equal(t, int64(32768), dev.Size())

	runner := &harness.Runner{
		Device:    dev,
		Scenarios: harness.Scenarios(true),
		Seed:      1234,
	}
	report := runner.Run("")
	require.False(t, report.Failed(), "scenario failures: %+v", report.Results)

	require.NoError(t, fl.Close())

	// every event belongs to this handle's session
	r, err := trace.NewFilteredReader(tracePath, trace.Filter{SessionID: dev.SessionID()})
	require.NoError(t, err)
	defer r.Close()

	var events []trace.Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		events = append(events, e)
	}

	// the trace must agree with the chip's own transaction log
	// (minus the NACKed probes the bounds scenarios never issue)
	require.Len(t, events, len(chip.Transactions()))

	var reads, writes, identifies int
	for _, e := range events {
		switch e.Op {
		case trace.OpRead:
			reads++
		case trace.OpWrite:
			writes++
		case trace.OpIdentify:
			identifies++
		}
		assert.Empty(t, e.Err, "no transaction should have failed")
	}
	// connect-time auto-detection plus the identify scenario
	assert.Equal(t, 2, identifies)
	assert.Greater(t, reads, 0)
	assert.Greater(t, writes, 0)
}

// TestFullStackExplicitSize covers the no-identification path end to end:
// a small variant that cannot answer the device-ID query still round-trips.
func TestFullStackExplicitSize(t *testing.T) {
	chip := mock.NewChip(512)
	dev, err := mb85rc.Connect(chip, mb85rc.Config{Size: 512})
	require.NoError(t, err)

	runner := &harness.Runner{
		Device:    dev,
		Scenarios: harness.Scenarios(false),
		Seed:      99,
	}
	report := runner.Run("")
	assert.False(t, report.Failed(), "scenario failures: %+v", report.Results)
}
