// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// LoggingParams is an embeddable struct adding --verbose.
type LoggingParams struct {
	Verbose bool `flag:"verbose,v" desc:"log debug detail (per-chunk sizes)"`
}

// Logger returns a command logger at debug level when --verbose is
// set, writing to w.
func (p *LoggingParams) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if p.Verbose {
		level = slog.LevelDebug
	}
	return NewCommandLogger(w, level)
}

// NewCommandLogger creates a structured logger for CLI command
// operations. When w is a terminal, uses slog.TextHandler for
// human-readable output. When w is piped or redirected (CI, scripts,
// tests), uses slog.JSONHandler for machine-parseable output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewCommandLogger(os.Stderr, slog.LevelInfo).With(
//	    "command", "convert",
//	    "cartridge", cartridgePath,
//	)
func NewCommandLogger(w io.Writer, level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}
