// Command fram-test exercises an MB85RC FRAM chip with randomized payloads.
//
// It connects to the chip over a Linux I2C bus (or an in-memory simulator),
// runs a set of write/read-back scenarios, and reports the results. All
// scenarios are destructive: they overwrite device contents.
//
// Usage:
//
//	fram-test [flags] [scenario-pattern]
//
// Flags:
//
//	-bus string       I2C bus name or number (default: first available)
//	-mock int         Run against an in-memory chip of this capacity instead of hardware
//	-address uint     7-bit peripheral address (default 0x50)
//	-size int         Device capacity in bytes; 0 auto-detects via the device-ID query
//	-seed int         RNG seed; 0 derives one from the clock
//	-config string    Path to YAML config file (flags take precedence)
//	-trace string     Write a CBOR transaction trace to this file
//	-json             Output the report as JSON
//	-verbose          Per-scenario progress and bus transactions on stderr
//
// Examples:
//
//	# Exercise the chip at 0x50 on bus 1, auto-detected size
//	fram-test -bus 1
//
//	# Small variant without device-ID support, reproducible run
//	fram-test -bus 1 -size 2048 -seed 42
//
//	# No hardware needed: 32 KiB simulator, trace recorded
//	fram-test -mock 32768 -trace fram.trace
//
//	# Only the round-trip scenarios
//	fram-test -mock 32768 "roundtrip-*"
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/fram-devices/mb85rc-go/internal/harness"
	"github.com/fram-devices/mb85rc-go/internal/harness/mock"
	"github.com/fram-devices/mb85rc-go/pkg/bus"
	"github.com/fram-devices/mb85rc-go/pkg/mb85rc"
	"github.com/fram-devices/mb85rc-go/pkg/trace"
)

var (
	busName    = flag.String("bus", "", "I2C bus name or number (default: first available)")
	mockSize   = flag.Int64("mock", 0, "run against an in-memory chip of this capacity instead of hardware")
	address    = flag.Uint("address", mb85rc.DefaultAddr, "7-bit peripheral address")
	size       = flag.Int64("size", 0, "device capacity in bytes; 0 auto-detects")
	seed       = flag.Int64("seed", 0, "RNG seed; 0 derives one from the clock")
	configPath = flag.String("config", "", "path to YAML config file")
	tracePath  = flag.String("trace", "", "write a CBOR transaction trace to this file")
	jsonOut    = flag.Bool("json", false, "output the report as JSON")
	verbose    = flag.Bool("verbose", false, "per-scenario progress and bus transactions on stderr")
)

func main() {
	flag.Parse()

	pattern := ""
	if flag.NArg() > 0 {
		pattern = flag.Arg(0)
	}

	if err := run(pattern); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(pattern string) error {
	applyConfigFile()

	// Trace setup: file logger, console via slog when verbose, or both.
	var loggers []trace.Logger
	if *tracePath != "" {
		fl, err := trace.NewFileLogger(*tracePath)
		if err != nil {
			return fmt.Errorf("open trace file: %w", err)
		}
		defer fl.Close()
		loggers = append(loggers, fl)
	}
	if *verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		loggers = append(loggers, trace.NewSlogAdapter(slog.New(h)))
	}
	var tracer trace.Logger
	if len(loggers) > 0 {
		tracer = trace.NewMultiLogger(loggers...)
	}

	b, cleanup, err := openBus()
	if err != nil {
		return err
	}
	defer cleanup()

	dev, err := mb85rc.Connect(b, mb85rc.Config{
		Address: uint16(*address),
		Size:    *size,
		Trace:   tracer,
	})
	if err != nil {
		return err
	}

	runner := &harness.Runner{
		Device:    dev,
		Scenarios: harness.Scenarios(*size == 0),
		Seed:      *seed,
		Verbose:   *verbose,
		Out:       os.Stderr,
	}
	report := runner.Run(pattern)

	if *jsonOut {
		if err := report.WriteJSON(os.Stdout); err != nil {
			return err
		}
	} else {
		report.WriteText(os.Stdout)
	}

	if report.Failed() {
		return fmt.Errorf("%d of %d scenarios failed", report.FailCount(), len(report.Results))
	}
	return nil
}

// openBus returns the bus under test: the mock chip when -mock is set,
// otherwise a periph.io I2C bus.
func openBus() (bus.Bus, func(), error) {
	if *mockSize != 0 {
		if *mockSize < 128 || *mockSize > 1<<16 || *mockSize&(*mockSize-1) != 0 {
			return nil, nil, fmt.Errorf("mock capacity must be a power of two between 128 and 65536")
		}
		chip := mock.NewChip(*mockSize)
		chip.Addr = uint16(*address)
		return chip, func() {}, nil
	}

	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("host init: %w", err)
	}
	b, err := i2creg.Open(*busName)
	if err != nil {
		return nil, nil, fmt.Errorf("open I2C bus %q: %w", *busName, err)
	}
	return b, func() { b.Close() }, nil
}

// applyConfigFile merges the YAML config under explicitly set flags.
func applyConfigFile() {
	if *configPath == "" {
		return
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["bus"] && cfg.Bus != "" {
		*busName = cfg.Bus
	}
	if !set["address"] && cfg.Address != 0 {
		*address = uint(cfg.Address)
	}
	if !set["size"] && cfg.Size != 0 {
		*size = cfg.Size
	}
	if !set["seed"] && cfg.Seed != 0 {
		*seed = cfg.Seed
	}
	if !set["trace"] && cfg.Trace != "" {
		*tracePath = cfg.Trace
	}
}
