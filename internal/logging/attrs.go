package logging

import (
	"context"
	"log/slog"
	"slices"
	"time"
)

// Attr aliases slog.Attr so callers only import this package.
type Attr = slog.Attr

func Any(key string, value any) Attr { return slog.Any(key, value) }
func Bool(key string, value bool) Attr { return slog.Bool(key, value) }
func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }
func Int(key string, value int) Attr { return slog.Int(key, value) }
func Int64(key string, value int64) Attr { return slog.Int64(key, value) }
func String(key, value string) Attr { return slog.String(key, value) }

// Error records err under the "error" key. A nil error is written as "<nil>".
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// NewNop returns a logger that drops everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with a component name. A nil logger yields a
// tagged no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

var warningDefaults = []struct {
	key   string
	value string
}{
	{FieldErrorHint, "run twitch check for details"},
	{FieldImpact, "catalog may be incomplete"},
}

// WarnWithContext logs a warning that always carries event_type, error_hint
// and impact. Attributes supplied by the caller win over the defaults.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	present := func(key string) bool {
		return slices.ContainsFunc(attrs, func(a Attr) bool { return a.Key == key })
	}
	if !present(FieldEventType) {
		attrs = append(attrs, String(FieldEventType, eventType))
	}
	for _, d := range warningDefaults {
		if !present(d.key) {
			attrs = append(attrs, String(d.key, d.value))
		}
	}
	logger.LogAttrs(context.Background(), slog.LevelWarn, msg, attrs...)
}
