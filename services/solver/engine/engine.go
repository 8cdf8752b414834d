// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package engine drives the backtracking search over a world.
//
// # Description
//
// The engine alternates two phases until a terminal state:
//
//  1. Propagation: walk the assignment journal like a work queue and
//     re-check every transition constraint touching each newly
//     assigned cell, committing forced deductions until fixpoint or
//     contradiction.
//  2. Branching: pick the next undecided cell in traversal order,
//     journal a guess, and go back to propagation. Contradictions
//     unwind the journal to the most recent guess and commit the
//     sibling state as a deduction.
//
// Contradictions are routine control flow here, never errors; the only
// user-visible failures happen earlier, at rule parsing and world
// construction.
//
// # Concurrency
//
// The engine is strictly single-threaded and synchronous. Step never
// blocks; hosts that need responsiveness call it in bounded batches
// and check their own cancellation between batches (see Search).
package engine

import (
	"context"
	"math/rand"

	"github.com/AleutianAI/lifesrc/services/solver/rule"
	"github.com/AleutianAI/lifesrc/services/solver/world"
)

// Status is the externally visible search state.
type Status int

const (
	// Searching means more work remains; call Step again.
	Searching Status = iota

	// Found means the world currently holds a complete solution. In
	// all-solutions mode the next Step resumes the enumeration.
	Found

	// Exhausted means the whole space has been explored.
	Exhausted
)

// String returns "searching", "found", or "exhausted".
func (s Status) String() string {
	switch s {
	case Searching:
		return "searching"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	default:
		return "status(?)"
	}
}

// Mode selects how many solutions the search reports and how branch
// states are tried first.
type Mode int

const (
	// ModeFirst stops at the first solution.
	ModeFirst Mode = iota

	// ModeAll enumerates every solution.
	ModeAll

	// ModeRandom behaves like ModeFirst but randomizes the first-try
	// state at every guess. The search stays complete; only the
	// exploration order changes.
	ModeRandom
)

// String returns "first", "all", or "random".
func (m Mode) String() string {
	switch m {
	case ModeFirst:
		return "first"
	case ModeAll:
		return "all"
	case ModeRandom:
		return "random"
	default:
		return "mode(?)"
	}
}

// Config holds the search parameters beyond the world itself.
type Config struct {
	Mode Mode

	// Seed feeds the guess randomizer in ModeRandom. The seed is part
	// of the configuration so randomized runs are reproducible.
	Seed int64

	// IncludeTrivial accepts the all-dead solution and solutions
	// whose true period properly divides P. Off by default, matching
	// what pattern searchers actually want; enable it to compare
	// against exhaustive enumeration.
	IncludeTrivial bool
}

// Stats counts search work since construction.
type Stats struct {
	Steps      uint64
	Guesses    uint64
	Deductions uint64
	Conflicts  uint64
	Backtracks uint64
	Solutions  uint64
}

// Engine is a single search run over one world.
type Engine struct {
	w   *world.World
	r   *rule.Rule
	cfg Config
	rng *rand.Rand

	// scan trails the journal: every frame behind it has had its
	// constraint consequences examined.
	scan int

	status Status
	stats  Stats
}

// New creates an engine. The world must be freshly built; the engine
// assumes ownership of its journal.
func New(w *world.World, r *rule.Rule, cfg Config) *Engine {
	return &Engine{
		w:   w,
		r:   r,
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// World returns the engine's world for rendering and inspection.
func (e *Engine) World() *world.World { return e.w }

// Status returns the current search state without advancing it.
func (e *Engine) Status() Status { return e.status }

// Stats returns a copy of the work counters.
func (e *Engine) Stats() Stats { return e.stats }

// Step advances the search to the next branch point or terminal state.
//
// Outputs:
//   - Found: the world is solved; render it now. In ModeAll the next
//     call backtracks and keeps enumerating.
//   - Exhausted: no solutions remain.
//   - Searching: a guess was committed or a contradiction was
//     backtracked; call Step again.
func (e *Engine) Step() Status {
	switch e.status {
	case Exhausted:
		return Exhausted
	case Found:
		if e.cfg.Mode != ModeAll {
			return Found
		}
		// Enumerating: leave the solution the way a contradiction
		// would be left.
		if !e.backtrack() {
			e.status = Exhausted
			return Exhausted
		}
		e.status = Searching
	}

	e.stats.Steps++

	if !e.propagate() {
		if !e.backtrack() {
			e.status = Exhausted
			return Exhausted
		}
		return Searching
	}

	c, ok := e.w.FirstUnknown()
	if !ok {
		if !e.cfg.IncludeTrivial && !e.w.Nontrivial() {
			if !e.backtrack() {
				e.status = Exhausted
				return Exhausted
			}
			return Searching
		}
		e.stats.Solutions++
		e.status = Found
		return Found
	}

	first := rule.Dead
	if e.cfg.Mode == ModeRandom && e.rng.Intn(2) == 1 {
		first = rule.Alive
	}
	e.stats.Guesses++
	if !e.w.Assign(c, first, world.Guess) {
		// FirstUnknown returned an Unknown cell; a conflict on a
		// fresh guess breaks the orbit invariant.
		panic("engine: conflict assigning a fresh guess")
	}
	return Searching
}

// backtrack unwinds to the most recent guess and commits its sibling
// state as a deduction. Returns false when no guess remains.
func (e *Engine) backtrack() bool {
	e.stats.Backtracks++
	c, tried, ok := e.w.BacktrackToLastGuess()
	if !ok {
		return false
	}
	e.scan = e.w.JournalLen()
	if !e.w.Assign(c, tried.Flip(), world.Deduction) {
		panic("engine: conflict flipping a backtracked guess")
	}
	return true
}

// ctxCheckInterval bounds how many steps run between cancellation
// checks in Search. Checking every step would dominate the hot loop.
const ctxCheckInterval = 4096

// Search runs the step loop with cooperative cancellation.
//
// Inputs:
//   - ctx: checked every few thousand steps; cancellation returns the
//     current status with ctx's error.
//   - onSolution: called at every Found with the solved world. Return
//     false to stop the search early (e.g. a solution cap). May be
//     nil. The world is only valid during the callback; render or
//     copy it there.
//
// Outputs:
//   - Status: Found (stopped at a solution), or Exhausted.
//   - error: only a context error, never a search failure.
func (e *Engine) Search(ctx context.Context, onSolution func(*world.World) bool) (Status, error) {
	sinceCheck := 0
	for {
		sinceCheck++
		if sinceCheck >= ctxCheckInterval {
			sinceCheck = 0
			select {
			case <-ctx.Done():
				return e.status, ctx.Err()
			default:
			}
		}

		switch e.Step() {
		case Found:
			if onSolution != nil && !onSolution(e.w) {
				return Found, nil
			}
			if e.cfg.Mode != ModeAll {
				return Found, nil
			}
		case Exhausted:
			return Exhausted, nil
		}
	}
}
