// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package rule

// buildTables fills the implication table from the birth/survival sets.
//
// For every (self, succ, alive, unknown) combination it enumerates the
// satisfying completions: a choice of predecessor state s (when self is
// unknown, both) and a count k of live cells among the unknown
// neighbors, 0 <= k <= unknown. The rule is outer-totalistic, so only k
// matters, and every k is reachable by some concrete assignment.
//
// From the feasible (s, k) pairs the table records:
//   - Conflict: no pair satisfies the constraint.
//   - Self: all pairs agree on s (only meaningful when self is unknown).
//   - Nbhd: all pairs have k == 0 (every unknown neighbor dead) or all
//     have k == unknown (every unknown neighbor alive).
//   - Succ (separately, for unknown successors): only one outcome state
//     is reachable across all pairs.
//
// Entries with alive+unknown > 8 are unreachable and left zeroed.
func (r *Rule) buildTables() {
	states := [...]State{Unknown, Dead, Alive}

	for _, self := range states {
		for alive := 0; alive <= 8; alive++ {
			for unknown := 0; alive+unknown <= 8; unknown++ {
				var succs StateSet
				for _, s := range expand(self) {
					for k := 0; k <= unknown; k++ {
						if r.Next(s, alive+k) == Alive {
							succs |= CanBeAlive
						} else {
							succs |= CanBeDead
						}
					}
				}
				r.succSets[self][alive][unknown] = succs

				for _, succ := range states {
					r.impl[self][succ][alive][unknown] =
						r.deduce(self, succ, alive, unknown)
				}
			}
		}
	}
}

// deduce computes one implication table entry by enumeration.
func (r *Rule) deduce(self, succ State, alive, unknown int) Implication {
	var (
		feasible   bool
		selfStates StateSet
		succStates StateSet
		minK       = unknown + 1
		maxK       = -1
	)

	for _, s := range expand(self) {
		for k := 0; k <= unknown; k++ {
			out := r.Next(s, alive+k)
			if succ != Unknown && out != succ {
				continue
			}
			feasible = true
			if s == Dead {
				selfStates |= CanBeDead
			} else {
				selfStates |= CanBeAlive
			}
			if out == Dead {
				succStates |= CanBeDead
			} else {
				succStates |= CanBeAlive
			}
			if k < minK {
				minK = k
			}
			if k > maxK {
				maxK = k
			}
		}
	}

	if !feasible {
		return Implication{Conflict: true}
	}

	var imp Implication
	if succ == Unknown {
		if st, ok := succStates.Single(); ok {
			imp.Succ = st
		}
	}
	if self == Unknown {
		if st, ok := selfStates.Single(); ok {
			imp.Self = st
		}
	}
	if unknown > 0 {
		// Forced only when every satisfying completion pins the
		// count to an extreme: 0 live unknowns or all live.
		if minK == maxK && minK == 0 {
			imp.Nbhd = Dead
		} else if minK == maxK && minK == unknown {
			imp.Nbhd = Alive
		}
	}
	return imp
}

// expand lists the concrete states a possibly-unknown state stands for.
func expand(s State) []State {
	if s == Unknown {
		return []State{Dead, Alive}
	}
	return []State{s}
}
