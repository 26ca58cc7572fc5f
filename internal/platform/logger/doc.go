// Package logger provides structured logging functionality for the application.
//
// It builds JSON slog loggers at the level named in configuration, and offers
// a memory-backed Recorder handler so tests can assert on what was logged.
package logger
