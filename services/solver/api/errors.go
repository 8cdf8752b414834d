// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package api exposes the search engine over HTTP for browser and
// script hosts.
//
// # Description
//
// The HTTP surface is the host-loop contract of the core: a session
// wraps one engine; hosts create a session, drive it with bounded step
// batches (or run-to-next-solution), read the current world at any
// step boundary, reset, and delete. The engine itself stays strictly
// single-threaded: a per-session mutex serializes all driving.
//
// # Endpoints
//
// See RegisterRoutes for the full route table.
package api

import "errors"

// Sentinel errors for session management.
var (
	// ErrSessionNotFound is returned for unknown session IDs.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions is returned when creating a session would
	// exceed the configured cap.
	ErrTooManySessions = errors.New("too many sessions")
)
