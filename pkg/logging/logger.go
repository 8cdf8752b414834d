// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package logging provides structured logging for lifesrc components.
//
// # Description
//
// A thin layer over the standard library slog package with the
// conventions shared by the CLI, server, and TUI: stderr output by
// default (stdout is reserved for search results), text format for
// humans, JSON when requested for log shippers, and a string level
// that flag and environment parsing can hand over directly.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{Level: "debug", Service: "lifesrc"})
//	logger.Info("search started", "width", 16, "height", 5)
//
// # Thread Safety
//
// The returned *slog.Logger is safe for concurrent use.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Config controls logger construction. The zero value yields an
// info-level text logger on stderr.
type Config struct {
	// Level is one of "debug", "info", "warn", "error". Empty means
	// info.
	Level string

	// Service is attached to every record as the "service" key when
	// non-empty.
	Service string

	// JSON switches from the human text handler to JSON records.
	JSON bool

	// Output overrides the destination; nil means stderr.
	Output io.Writer
}

// ParseLevel converts a level name to a slog.Level.
//
// Outputs:
//   - slog.Level: the parsed level.
//   - error: non-nil for unrecognized names; callers treat that as a
//     configuration error, not a logging failure.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// New builds a logger from the config. Unknown level names fall back
// to info rather than failing; logging must never block startup.
func New(cfg Config) *slog.Logger {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	return logger
}

// Default returns an info-level stderr logger, for call sites that
// have no configuration to apply.
func Default() *slog.Logger {
	return New(Config{})
}
