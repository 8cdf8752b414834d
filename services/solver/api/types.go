// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package api

import "github.com/AleutianAI/lifesrc/services/solver/engine"

// CreateSessionRequest configures a new search session. Width and
// height are required; everything else has the CLI's defaults, except
// Seed, which is used as given (an omitted seed is 0).
type CreateSessionRequest struct {
	Width  int `json:"width" binding:"required,min=1"`
	Height int `json:"height" binding:"required,min=1"`
	Period int `json:"period" binding:"omitempty,min=1"`
	Dx     int `json:"dx"`
	Dy     int `json:"dy"`

	// Rule is a B/S rule string; empty means B3/S23.
	Rule string `json:"rule"`

	// Symmetry is a symmetry token; empty means C1.
	Symmetry string `json:"symmetry"`

	// Mode is "first", "all", or "random"; empty means first.
	Mode string `json:"mode" binding:"omitempty,oneof=first all random"`

	// Seed feeds the randomizer in random mode.
	Seed int64 `json:"seed"`

	// Order is "auto", "row", or "column"; empty means auto.
	Order string `json:"order" binding:"omitempty,oneof=auto row column"`

	// IncludeTrivial accepts the empty and subperiodic solutions.
	IncludeTrivial bool `json:"include_trivial"`
}

// StepRequest bounds one driving batch.
type StepRequest struct {
	// MaxSteps caps the batch; zero or omitted uses the server's
	// configured batch size.
	MaxSteps int `json:"max_steps" binding:"omitempty,min=1"`
}

// SolveRequest drives the search until the next solution.
type SolveRequest struct {
	// MaxSteps optionally bounds the whole run; zero means until a
	// terminal state or request cancellation.
	MaxSteps int64 `json:"max_steps" binding:"omitempty,min=1"`
}

// StatsResponse mirrors engine.Stats.
type StatsResponse struct {
	Steps      uint64 `json:"steps"`
	Guesses    uint64 `json:"guesses"`
	Deductions uint64 `json:"deductions"`
	Conflicts  uint64 `json:"conflicts"`
	Backtracks uint64 `json:"backtracks"`
	Solutions  uint64 `json:"solutions"`
}

func statsResponse(s engine.Stats) StatsResponse {
	return StatsResponse{
		Steps:      s.Steps,
		Guesses:    s.Guesses,
		Deductions: s.Deductions,
		Conflicts:  s.Conflicts,
		Backtracks: s.Backtracks,
		Solutions:  s.Solutions,
	}
}

// SessionResponse describes a session's configuration and progress.
type SessionResponse struct {
	ID       string        `json:"id"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Period   int           `json:"period"`
	Dx       int           `json:"dx"`
	Dy       int           `json:"dy"`
	Rule     string        `json:"rule"`
	Symmetry string        `json:"symmetry"`
	Mode     string        `json:"mode"`
	Status   string        `json:"status"`
	Stats    StatsResponse `json:"stats"`
}

// WorldResponse is a rendering of one generation at a step boundary.
// Unknown cells render as '?' while a search is still in flight.
type WorldResponse struct {
	Generation int    `json:"generation"`
	Grid       string `json:"grid"`
	Status     string `json:"status"`
}

// StreamFrame is one websocket message: the world after a batch.
type StreamFrame struct {
	Status string        `json:"status"`
	Grid   string        `json:"grid"`
	Stats  StatsResponse `json:"stats"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
