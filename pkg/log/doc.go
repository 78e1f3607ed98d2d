// Package log provides structured trace logging for CellML processing.
//
// This package defines the Logger interface and Event types for capturing
// what a parse or print session did: which elements were visited, which
// entities were built, and which faults were recorded. It is separate from
// operational logging (slog) - a trace provides a complete machine-readable
// record of one session for debugging and analysis.
//
// # Basic Usage
//
// A parser or printer stays silent until a Logger is attached:
//
//	// For development: log to console via slog
//	parser.SetTraceLogger(log.NewSlogAdapter(slog.Default()))
//
//	// For batch runs: write to binary file
//	fl, _ := log.NewFileLogger("run.ctrace")
//	parser.SetTraceLogger(fl)
//	defer fl.Close()
//
//	// Both: use MultiLogger
//	parser.SetTraceLogger(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fl,
//	))
//
// cellml-tool wires this up for its commands: validate, show, and
// convert accept --trace FILE, and the trace subcommand replays or
// summarizes the recorded events.
//
// # Event Types
//
// Each session is identified by a UUID and emits:
//   - Session events at start and end (SessionEvent)
//   - Element events as document elements are handled
//   - Fault events mirroring entries added to the error log (FaultEvent)
//
// # File Format
//
// Trace files use CBOR encoding with .ctrace extension. Reader streams
// events back with optional filtering.
package log
