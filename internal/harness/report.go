package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Result is the outcome of one scenario.
type Result struct {
	// Name is the scenario name.
	Name string `json:"name"`

	// Passed indicates success.
	Passed bool `json:"passed"`

	// Error holds the failure description, empty on success.
	Error string `json:"error,omitempty"`

	// Duration is the scenario wall time.
	Duration time.Duration `json:"duration_ns"`
}

// Report collects the results of a harness run.
type Report struct {
	// Device describes the device under test ("0x50, 32768 bytes").
	Device string `json:"device"`

	// Seed is the RNG seed used, for reproducing failures.
	Seed int64 `json:"seed"`

	// Results lists per-scenario outcomes in execution order.
	Results []Result `json:"results"`

	// Duration is the total wall time.
	Duration time.Duration `json:"duration_ns"`
}

// PassCount returns the number of passed scenarios.
func (r *Report) PassCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed {
			n++
		}
	}
	return n
}

// FailCount returns the number of failed scenarios.
func (r *Report) FailCount() int {
	return len(r.Results) - r.PassCount()
}

// Failed reports whether any scenario failed.
func (r *Report) Failed() bool {
	return r.FailCount() > 0
}

// WriteText writes a human-readable report.
func (r *Report) WriteText(w io.Writer) {
	fmt.Fprintf(w, "\n=== FRAM exercise: %s ===\n", r.Device)
	fmt.Fprintf(w, "Seed: %d\n\n", r.Seed)

	for _, res := range r.Results {
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(w, "[%s] %-18s %s\n", status, res.Name, res.Duration.Round(time.Microsecond))
		if res.Error != "" {
			fmt.Fprintf(w, "       %s\n", res.Error)
		}
	}

	fmt.Fprintf(w, "\n--- Summary ---\n")
	fmt.Fprintf(w, "Total:   %d\n", len(r.Results))
	fmt.Fprintf(w, "Passed:  %d\n", r.PassCount())
	fmt.Fprintf(w, "Failed:  %d\n", r.FailCount())
	fmt.Fprintf(w, "Duration: %s\n", r.Duration.Round(time.Millisecond))
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
