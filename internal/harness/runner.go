package harness

import (
	"fmt"
	"io"
	"math/rand"
	"path"
	"time"

	"github.com/fram-devices/mb85rc-go/pkg/mb85rc"
)

// Runner executes scenarios against a connected device.
type Runner struct {
	// Device is the device under test.
	Device *mb85rc.Device

	// Scenarios are the scenarios to run, in order.
	Scenarios []Scenario

	// Seed seeds the per-run RNG. Zero means derive from the clock.
	Seed int64

	// Verbose enables per-scenario progress output to Out.
	Verbose bool

	// Out receives progress output. Nil silences it.
	Out io.Writer
}

// Run executes all scenarios whose name matches pattern (path.Match syntax;
// empty matches everything) and returns the collected report.
func (r *Runner) Run(pattern string) *Report {
	seed := r.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	report := &Report{
		Device: fmt.Sprintf("%#02x, %d bytes", r.Device.Addr(), r.Device.Size()),
		Seed:   seed,
	}

	start := time.Now()
	for _, sc := range r.Scenarios {
		if pattern != "" {
			if ok, err := path.Match(pattern, sc.Name); err != nil || !ok {
				continue
			}
		}

		if r.Verbose && r.Out != nil {
			fmt.Fprintf(r.Out, "running %s...\n", sc.Name)
		}

		scStart := time.Now()
		err := sc.Run(r.Device, rng)
		res := Result{
			Name:     sc.Name,
			Passed:   err == nil,
			Duration: time.Since(scStart),
		}
		if err != nil {
			res.Error = err.Error()
		}
		report.Results = append(report.Results, res)
	}
	report.Duration = time.Since(start)

	return report
}
