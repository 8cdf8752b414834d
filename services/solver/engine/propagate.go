// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package engine

import (
	"github.com/AleutianAI/lifesrc/services/solver/rule"
	"github.com/AleutianAI/lifesrc/services/solver/world"
)

// propagate drains the journal-backed work queue to fixpoint.
//
// Deductions committed while processing append new frames, so the
// queue is exactly the journal suffix behind scan. Every processed
// frame either assigns previously Unknown cells or assigns nothing,
// and the Unknown population strictly shrinks on assignment, which
// bounds a propagation round by the lattice size.
//
// Returns false on contradiction; the caller backtracks.
func (e *Engine) propagate() bool {
	for e.scan < e.w.JournalLen() {
		c := e.w.JournalCell(e.scan)
		if !e.consistifyAround(c) {
			return false
		}
		e.scan++
	}
	return true
}

// consistifyAround re-checks every transition constraint that
// references a just-assigned cell: the one producing it, the one it
// produces, and the ones its eight neighbors produce (the cell sits in
// each of those neighborhoods). Orbit partners were already assigned
// by the journal push that queued this cell.
func (e *Engine) consistifyAround(c int32) bool {
	if p := e.w.Pred(c); p != world.Exterior {
		if !e.consistify(p) {
			return false
		}
	}
	if !e.consistify(c) {
		return false
	}
	for _, n := range e.w.Neighbors(c) {
		if n != world.Exterior {
			if !e.consistify(n) {
				return false
			}
		}
	}
	return true
}

// consistify enforces the transition out of one predecessor cell: the
// cell's neighborhood summary must be able to produce its successor,
// which is the exterior (permanently dead) for cells translated off
// the lattice. Commits whatever the rule table forces.
func (e *Engine) consistify(p int32) bool {
	succ := e.w.Succ(p)
	succState := e.w.State(succ)
	alive, unknown := e.w.Counts(p)

	imp := e.r.Implication(e.w.State(p), succState, alive, unknown)
	if imp.Conflict {
		e.stats.Conflicts++
		return false
	}

	if imp.Succ != rule.Unknown && succ != world.Exterior {
		if !e.deduce(succ, imp.Succ) {
			return false
		}
	}
	if imp.Self != rule.Unknown {
		if !e.deduce(p, imp.Self) {
			return false
		}
	}
	if imp.Nbhd != rule.Unknown {
		for _, n := range e.w.Neighbors(p) {
			if n != world.Exterior && e.w.State(n) == rule.Unknown {
				if !e.deduce(n, imp.Nbhd) {
					return false
				}
			}
		}
	}
	return true
}

// deduce commits one forced assignment.
func (e *Engine) deduce(c int32, st rule.State) bool {
	if !e.w.Assign(c, st, world.Deduction) {
		e.stats.Conflicts++
		return false
	}
	e.stats.Deductions++
	return true
}
