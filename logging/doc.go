// Package logging builds log/slog loggers from a level and a format name.
// JSON output is the default; the text format is meant for terminals.
package logging
