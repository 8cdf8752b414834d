// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package rule evaluates Life-like cellular automaton transition rules
// over partially known neighborhoods.
//
// # Description
//
// A Life-like rule is written B.../S... : a dead cell with n live Moore
// neighbors is born iff n is in the birth set, a live cell survives iff
// n is in the survival set. The default rule is Conway's Life, B3/S23.
//
// The solver works on three-valued cells (Dead, Alive, Unknown), so the
// rule must answer questions about incomplete neighborhoods: which
// successor states remain possible, which self states are consistent
// with a known successor, and when the remaining unknown neighbors are
// forced to a single value. All of those answers are precomputed into a
// lookup table at parse time, indexed by (self state, successor state,
// live neighbor count, unknown neighbor count), so the propagator's hot
// path is a single array read.
//
// # Thread Safety
//
// A Rule is immutable after Parse and safe for concurrent use.
package rule

import (
	"fmt"
	"strings"
)

// State is the three-valued state of a cell. The zero value is Unknown
// so freshly allocated lattices start fully undetermined.
type State uint8

const (
	// Unknown means the search has not yet determined the cell.
	Unknown State = iota

	// Dead is a cell that is off in its generation.
	Dead

	// Alive is a cell that is on in its generation.
	Alive
)

// String returns "unknown", "dead" or "alive".
func (s State) String() string {
	switch s {
	case Dead:
		return "dead"
	case Alive:
		return "alive"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Flip returns the opposite known state. Flipping Unknown is a
// programmer error and panics.
func (s State) Flip() State {
	switch s {
	case Dead:
		return Alive
	case Alive:
		return Dead
	default:
		panic("rule: flip of unknown state")
	}
}

// StateSet is a set of known states, used to report which of
// {Dead, Alive} remain possible for a cell.
type StateSet uint8

const (
	// CanBeDead marks Dead as a remaining possibility.
	CanBeDead StateSet = 1 << iota

	// CanBeAlive marks Alive as a remaining possibility.
	CanBeAlive
)

// Contains reports whether the set admits the given known state.
func (ss StateSet) Contains(s State) bool {
	switch s {
	case Dead:
		return ss&CanBeDead != 0
	case Alive:
		return ss&CanBeAlive != 0
	default:
		return false
	}
}

// Empty reports whether no state remains possible. The propagator reads
// an empty set as a contradiction.
func (ss StateSet) Empty() bool { return ss == 0 }

// Single returns the only member of a singleton set, or ok=false when
// the set is empty or has both members.
func (ss StateSet) Single() (State, bool) {
	switch ss {
	case CanBeDead:
		return Dead, true
	case CanBeAlive:
		return Alive, true
	default:
		return Unknown, false
	}
}

// Implication is the precomputed consequence of one transition
// constraint, given a predecessor's state, its neighborhood summary,
// and the successor's state.
//
// Fields left at Unknown mean "nothing implied". Conflict set means the
// transition cannot be satisfied by any completion of the unknowns; the
// other fields are meaningless in that case.
type Implication struct {
	// Conflict is set when no assignment of the unknown cells
	// satisfies the transition.
	Conflict bool

	// Succ is the forced successor state, when the successor is
	// still unknown and only one outcome is reachable.
	Succ State

	// Self is the forced predecessor state, when the predecessor is
	// still unknown and only one value is consistent.
	Self State

	// Nbhd is the forced state of every unknown neighbor of the
	// predecessor: Dead when the transition is only satisfiable with
	// zero of them alive, Alive when it needs all of them alive.
	Nbhd State
}

// Rule is a parsed Life-like rule with its implication table.
type Rule struct {
	birth   [9]bool
	survive [9]bool
	name    string

	// impl is indexed [self][succ][alive][unknown] with State used
	// directly as the first two indices.
	impl [3][3][9][9]Implication

	// succSets is indexed [self][alive][unknown]; the successor
	// question does not depend on the successor's current state.
	succSets [3][9][9]StateSet
}

// String returns the canonical B.../S... form of the rule.
func (r *Rule) String() string { return r.name }

// Next returns the successor of a cell with a fully known neighborhood.
//
// Inputs:
//   - self: Dead or Alive. Unknown is a programmer error and panics.
//   - alive: number of live neighbors, 0..8.
//
// Outputs:
//   - State: Dead or Alive.
//
// This is the plain forward transition, used by the reference
// simulator in tests and by anything replaying a solved world.
func (r *Rule) Next(self State, alive int) State {
	switch self {
	case Dead:
		if r.birth[alive] {
			return Alive
		}
		return Dead
	case Alive:
		if r.survive[alive] {
			return Alive
		}
		return Dead
	default:
		panic("rule: next of unknown state")
	}
}

// PossibleSuccessors returns which of {Dead, Alive} remain possible for
// the successor of a cell whose neighborhood has the given live and
// unknown counts. With unknown == 0 the answer is always a singleton.
func (r *Rule) PossibleSuccessors(self State, alive, unknown int) StateSet {
	return r.succSets[self][alive][unknown]
}

// ImpliedSelf returns which predecessor states are consistent with a
// known successor, given the neighborhood summary.
func (r *Rule) ImpliedSelf(succ State, alive, unknown int) StateSet {
	var out StateSet
	if !r.impl[Dead][succ][alive][unknown].Conflict {
		out |= CanBeDead
	}
	if !r.impl[Alive][succ][alive][unknown].Conflict {
		out |= CanBeAlive
	}
	return out
}

// ForcedUnknownNeighbor reports whether satisfying the transition
// forces every unknown neighbor to one value (all dead or all alive).
func (r *Rule) ForcedUnknownNeighbor(self, succ State, alive, unknown int) (State, bool) {
	st := r.impl[self][succ][alive][unknown].Nbhd
	return st, st != Unknown
}

// Implication returns the full precomputed consequence for a
// transition. This is the propagator's hot-path entry point.
func (r *Rule) Implication(self, succ State, alive, unknown int) Implication {
	return r.impl[self][succ][alive][unknown]
}

// Parse parses a rule string.
//
// Accepted forms, case-insensitively:
//
//	B3/S23      birth/survival with letters
//	b36/s23     HighLife, lowercase
//	23/3        bare survival/birth (conwaylife.com legacy form)
//
// Digits must be 0..8. Rules containing B0 are rejected: the engine
// models everything outside the bounding box as permanently dead, which
// is unsound for rules whose empty background does not stay empty.
//
// Outputs:
//   - *Rule: ready to use, immutable.
//   - error: wraps ErrInvalidRule on any malformed or unsupported input.
func Parse(s string) (*Rule, error) {
	trimmed := strings.TrimSpace(s)
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q: want exactly one '/'", ErrInvalidRule, s)
	}

	var birth, survive [9]bool
	switch {
	case hasPrefixFold(parts[0], "B") && hasPrefixFold(parts[1], "S"):
		if err := parseDigits(parts[0][1:], &birth); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRule, s, err)
		}
		if err := parseDigits(parts[1][1:], &survive); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRule, s, err)
		}
	case hasPrefixFold(parts[0], "S") && hasPrefixFold(parts[1], "B"):
		if err := parseDigits(parts[0][1:], &survive); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRule, s, err)
		}
		if err := parseDigits(parts[1][1:], &birth); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRule, s, err)
		}
	default:
		// Bare digits: survival first, birth second.
		if err := parseDigits(parts[0], &survive); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRule, s, err)
		}
		if err := parseDigits(parts[1], &birth); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRule, s, err)
		}
	}

	if birth[0] {
		return nil, fmt.Errorf("%w: %q: B0 rules are not supported", ErrInvalidRule, s)
	}

	r := &Rule{birth: birth, survive: survive}
	r.name = canonicalName(birth, survive)
	r.buildTables()
	return r, nil
}

// MustParse is Parse that panics on error, for tests and defaults.
func MustParse(s string) *Rule {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Conway returns the default rule, B3/S23.
func Conway() *Rule { return MustParse("B3/S23") }

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) &&
		strings.EqualFold(s[:len(prefix)], prefix)
}

func parseDigits(s string, set *[9]bool) error {
	for _, c := range s {
		if c < '0' || c > '8' {
			return fmt.Errorf("invalid neighbor count %q", string(c))
		}
		set[c-'0'] = true
	}
	return nil
}

func canonicalName(birth, survive [9]bool) string {
	var sb strings.Builder
	sb.WriteByte('B')
	for n := 0; n <= 8; n++ {
		if birth[n] {
			sb.WriteByte(byte('0' + n))
		}
	}
	sb.WriteString("/S")
	for n := 0; n <= 8; n++ {
		if survive[n] {
			sb.WriteByte(byte('0' + n))
		}
	}
	return sb.String()
}
