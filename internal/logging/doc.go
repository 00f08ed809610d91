// Package logging assembles structured slog loggers and formatting helpers used
// across submerge.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so merge code automatically tags log lines
// with job IDs, stages, episodes, and the strategy being attempted. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
