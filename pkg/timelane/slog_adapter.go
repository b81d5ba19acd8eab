package timelane

import (
	"context"
	"log/slog"
)

// SlogLogger writes records to an slog.Logger at Debug level.
// It is the default logger of a Registry.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates an SlogLogger writing to logger. A nil logger
// follows slog.Default() at the time each record is logged.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// Log writes the record to the slog logger.
func (a *SlogLogger) Log(record Record) {
	logger := a.logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []slog.Attr{
		slog.String("kind", record.Kind.String()),
		slog.String("subsystem", record.Channel.Subsystem),
		slog.String("category", record.Channel.Category),
		slog.String("name", record.Name),
	}
	if record.SignpostID == SignpostExclusive {
		attrs = append(attrs, slog.String("signpost_id", "exclusive"))
	} else {
		attrs = append(attrs, slog.Uint64("signpost_id", uint64(record.SignpostID)))
	}
	attrs = append(attrs, slog.String("record", record.Message))

	logger.LogAttrs(context.Background(), slog.LevelDebug, "timelane", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogLogger)(nil)
