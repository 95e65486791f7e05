// Package logging assembles structured slog loggers and formatting helpers used
// across twitch components.
//
// It owns the console/JSON handlers, level parsing, the rotating log file, and
// context helpers that tag every line of one CLI invocation with its run ID.
// A no-op logger is provided for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits the same field shape.
package logging
