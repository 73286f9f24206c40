package harness_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fram-devices/mb85rc-go/internal/harness"
	"github.com/fram-devices/mb85rc-go/internal/harness/mock"
	"github.com/fram-devices/mb85rc-go/pkg/mb85rc"
)

func connect(t *testing.T, capacity int64, autodetect bool) *mb85rc.Device {
	t.Helper()
	cfg := mb85rc.Config{}
	if !autodetect {
		cfg.Size = capacity
	}
	dev, err := mb85rc.Connect(mock.NewChip(capacity), cfg)
	require.NoError(t, err)
	return dev
}

func TestStandardScenariosPass(t *testing.T) {
	r := &harness.Runner{
		Device:    connect(t, 32768, true),
		Scenarios: harness.Scenarios(true),
		Seed:      42,
	}
	report := r.Run("")

	require.Len(t, report.Results, 6)
	for _, res := range report.Results {
		assert.True(t, res.Passed, "%s: %s", res.Name, res.Error)
	}
	assert.False(t, report.Failed())
	assert.Equal(t, int64(42), report.Seed)
}

func TestScenariosOnSmallExplicitVariant(t *testing.T) {
	r := &harness.Runner{
		Device:    connect(t, 512, false),
		Scenarios: harness.Scenarios(false), // no device-ID support
		Seed:      7,
	}
	report := r.Run("")

	require.Len(t, report.Results, 5)
	for _, res := range report.Results {
		assert.True(t, res.Passed, "%s: %s", res.Name, res.Error)
	}
}

func TestRunPatternFilter(t *testing.T) {
	r := &harness.Runner{
		Device:    connect(t, 8192, true),
		Scenarios: harness.Scenarios(true),
		Seed:      1,
	}
	report := r.Run("roundtrip-*")

	require.Len(t, report.Results, 2)
	assert.Equal(t, "roundtrip-pow2", report.Results[0].Name)
	assert.Equal(t, "roundtrip-random", report.Results[1].Name)
}

func TestFailingScenarioReported(t *testing.T) {
	boom := errors.New("payload mismatch")
	r := &harness.Runner{
		Device: connect(t, 1024, true),
		Scenarios: []harness.Scenario{
			{Name: "ok", Run: func(*mb85rc.Device, *rand.Rand) error { return nil }},
			{Name: "bad", Run: func(*mb85rc.Device, *rand.Rand) error { return boom }},
		},
		Seed: 1,
	}
	report := r.Run("")

	assert.True(t, report.Failed())
	assert.Equal(t, 1, report.PassCount())
	assert.Equal(t, 1, report.FailCount())
	assert.Equal(t, "payload mismatch", report.Results[1].Error)
}

func TestReportOutputs(t *testing.T) {
	r := &harness.Runner{
		Device:    connect(t, 1024, true),
		Scenarios: harness.Scenarios(true),
		Seed:      3,
	}
	report := r.Run("")

	var text bytes.Buffer
	report.WriteText(&text)
	assert.Contains(t, text.String(), "Passed:  6")
	assert.Contains(t, text.String(), "Seed: 3")

	var jsonBuf bytes.Buffer
	require.NoError(t, report.WriteJSON(&jsonBuf))
	var decoded harness.Report
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &decoded))
	assert.Len(t, decoded.Results, 6)
	assert.Equal(t, int64(3), decoded.Seed)
}
