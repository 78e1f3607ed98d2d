package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see a session's activity in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("phase", event.Phase.String()),
		slog.String("category", event.Category.String()),
	}

	// Add optional identifiers
	if event.Model != "" {
		attrs = append(attrs, slog.String("model", event.Model))
	}
	if event.Element != "" {
		attrs = append(attrs, slog.String("element", event.Element))
	}
	if event.Entity != "" {
		attrs = append(attrs, slog.String("entity", event.Entity))
	}

	// Add type-specific attributes
	switch {
	case event.Session != nil:
		attrs = append(attrs, slog.Bool("ended", event.Session.Ended))
		if event.Session.InputSize > 0 {
			attrs = append(attrs, slog.Int("input_size", event.Session.InputSize))
		}
		if event.Session.Ended {
			attrs = append(attrs, slog.Int("error_count", event.Session.ErrorCount))
		}
	case event.Fault != nil:
		attrs = append(attrs,
			slog.String("kind", event.Fault.Kind),
			slog.String("description", event.Fault.Description),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
