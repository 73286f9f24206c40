// Package trace provides structured bus-transaction tracing for the FRAM
// driver.
//
// Every I2C transaction issued by the driver (read, write, identify) can be
// captured as an Event. Traces are useful when debugging wiring or addressing
// problems on an embedded board: the recorded file shows exactly which
// transactions were issued, in which order, and which ones the bus rejected.
//
// # Basic Usage
//
// Applications configure tracing by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Trace = trace.NewSlogAdapter(slog.Default())
//
//	// For offline analysis: write to binary file
//	cfg.Trace, _ = trace.NewFileLogger("fram.trace")
//
//	// Both: use MultiLogger
//	cfg.Trace = trace.NewMultiLogger(
//	    trace.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// Trace files are a sequence of CBOR-encoded events and can be read back with
// Reader, optionally filtered by session, operation or time window.
package trace
