// Package logging assembles the structured slog loggers used across
// av1studio.
//
// It owns the console and JSON handlers, centralizes level plumbing, and
// exposes attr helpers so command code can tag log lines with a component and
// an encode session without repeating slog boilerplate. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
