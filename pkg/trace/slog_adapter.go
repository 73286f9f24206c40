package trace

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes transaction events to an slog.Logger.
// Useful for development when you want to see bus traffic in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
// Failed transactions are logged at Warn level instead.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("op", event.Op.String()),
		slog.String("device", fmt.Sprintf("%#02x", event.Device)),
	}

	if event.Op != OpIdentify {
		attrs = append(attrs,
			slog.String("addr", fmt.Sprintf("%#04x", event.MemAddr)),
			slog.Int("len", event.Len),
		)
	}

	level := slog.LevelDebug
	if event.Err != "" {
		attrs = append(attrs, slog.String("err", event.Err))
		level = slog.LevelWarn
	}

	a.logger.LogAttrs(context.Background(), level, "bus transaction", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
