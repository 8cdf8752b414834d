// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package world owns the three-dimensional cell lattice the solver
// searches over: W×H cells per generation, P generations, plus a ring
// of permanently dead boundary cells one step outside the box.
//
// # Representation
//
// The lattice is arena-allocated: one contiguous slice of cells, with
// neighbor, predecessor, successor, and symmetry-orbit links stored as
// indices into that slice rather than pointers. Construction computes
// all index tables once; after that the only mutations are cell-state
// assignments and their undo.
//
// # Assignment journal
//
// Every assignment pushes one frame recording the cell and whether the
// assignment was a guess (a branch point with an untried sibling) or a
// deduction (forced). Undo pops a frame, restores the cell to Unknown,
// and reverses the incremental neighbor-count updates. Replaying the
// journal from an empty world reproduces the current state exactly.
//
// # Thread Safety
//
// A World is single-threaded by design; the search engine is its only
// writer and no internal locking exists.
package world

import "errors"

// Sentinel errors for world construction.
var (
	// ErrInvalidGeometry is returned for non-positive width, height,
	// or period.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidSymmetry is returned when a symmetry does not fit the
	// box shape or the requested translation, or when a symmetry
	// token cannot be parsed.
	ErrInvalidSymmetry = errors.New("invalid symmetry")
)
