package trace

// Logger is the interface applications implement to receive bus-transaction
// events. Pass nil or NoopLogger to disable tracing.
type Logger interface {
	// Log records a transaction event. Implementations must not block for
	// long; every bus transaction passes through this call.
	Log(event Event)
}

// NoopLogger discards all events. Use when tracing is disabled.
// NoopLogger is safe for concurrent use and usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
