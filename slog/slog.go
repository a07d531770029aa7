// Package slog decorates mdcopy services with structured logging.
// Each decorator logs one line per call with its duration and error.
package slog
