// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package world

import (
	"fmt"

	"github.com/AleutianAI/lifesrc/services/solver/rule"
)

// Exterior is the sentinel index for cells outside the lattice,
// including the region beyond the boundary ring. Exterior cells are
// permanently dead and carry no counts.
const Exterior int32 = -1

// Kind classifies a journal frame.
type Kind uint8

const (
	// Deduction is an assignment forced by propagation, symmetry, or
	// boundary conditions. Deductions are never branch points.
	Deduction Kind = iota

	// Guess is a branch point: the untried sibling state remains to
	// be explored when the search backtracks to this frame.
	Guess
)

// Order selects the traversal order used to pick branch variables.
// The order is part of the search heuristic and of the reproducibility
// contract: identical configurations yield identical output.
type Order uint8

const (
	// OrderAuto picks column-major when the (symmetry-folded) box is
	// wider than tall, otherwise row-major; on square boxes it
	// follows the dominant translation axis.
	OrderAuto Order = iota

	// OrderRowMajor visits cells by row, then column, then time.
	OrderRowMajor

	// OrderColumnMajor visits cells by column, then row, then time.
	OrderColumnMajor
)

// ParseOrder parses "auto", "row", or "column".
func ParseOrder(s string) (Order, error) {
	switch s {
	case "auto", "":
		return OrderAuto, nil
	case "row":
		return OrderRowMajor, nil
	case "column":
		return OrderColumnMajor, nil
	default:
		return OrderAuto, fmt.Errorf("invalid traversal order %q", s)
	}
}

// Config describes the search space.
type Config struct {
	Width  int
	Height int
	Period int

	// Dx, Dy translate generation P back onto generation 0: the
	// successor of a cell at (x, y) in the last generation is the
	// generation-0 cell at (x+Dx, y+Dy).
	Dx int
	Dy int

	Symmetry Symmetry
	Order    Order
}

// cell is one lattice site. Links are indices into World.cells, with
// Exterior marking neighbors outside the allocated lattice.
type cell struct {
	state rule.State

	// alive and unknown count this cell's eight same-generation
	// neighbors, incrementally maintained on every assignment. The
	// transition producing this cell's successor reads them directly.
	alive   uint8
	unknown uint8

	interior bool

	nbhd [8]int32
	pred int32
	succ int32

	// sym lists the other members of this cell's symmetry orbit at
	// the same generation. Empty for C1 and for boundary cells.
	sym []int32
}

// frame is one journal entry.
type frame struct {
	cell int32
	kind Kind
}

// World is the search lattice plus its assignment journal.
type World struct {
	cfg         Config
	columnFirst bool

	cells   []cell
	journal []frame

	// cursor is the branch-variable scan position; it only moves
	// forward through the traversal order and retreats on undo.
	cursor int
}

// neighborOffsets is the Moore neighborhood in a fixed order.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// New validates the configuration and builds the lattice: cell states,
// neighbor and temporal index tables, symmetry orbits, neighbor
// counts, and the boundary-forced assignments implied by translation.
//
// Outputs:
//   - *World: ready for search, all interior cells Unknown except
//     those forced dead because their predecessor lies beyond the
//     boundary ring.
//   - error: wraps ErrInvalidGeometry or ErrInvalidSymmetry.
func New(cfg Config) (*World, error) {
	if cfg.Width < 1 || cfg.Height < 1 || cfg.Period < 1 {
		return nil, fmt.Errorf("%w: width=%d height=%d period=%d",
			ErrInvalidGeometry, cfg.Width, cfg.Height, cfg.Period)
	}
	if err := cfg.Symmetry.validate(cfg.Width, cfg.Height, cfg.Dx, cfg.Dy); err != nil {
		return nil, err
	}

	w := &World{cfg: cfg, columnFirst: resolveOrder(cfg)}
	n := (cfg.Width + 2) * (cfg.Height + 2) * cfg.Period
	w.cells = make([]cell, n)
	w.journal = make([]frame, 0, n)

	w.wire()
	if err := w.applyBoundaryForces(); err != nil {
		return nil, err
	}
	return w, nil
}

// resolveOrder applies the automatic traversal-order heuristic: search
// along the longer side of the folded box so constraint-dense columns
// (or rows) complete early.
func resolveOrder(cfg Config) bool {
	switch cfg.Order {
	case OrderRowMajor:
		return false
	case OrderColumnMajor:
		return true
	}
	fw, fh := cfg.Symmetry.foldedExtent(cfg.Width, cfg.Height)
	if fw == fh {
		return abs(cfg.Dx) >= abs(cfg.Dy)
	}
	return fw > fh
}

// wire fills every cell's state, links, counts, and orbit.
func (w *World) wire() {
	cfg := w.cfg
	for x := -1; x <= cfg.Width; x++ {
		for y := -1; y <= cfg.Height; y++ {
			for t := 0; t < cfg.Period; t++ {
				i := w.find(x, y, t)
				c := &w.cells[i]
				c.interior = x >= 0 && x < cfg.Width && y >= 0 && y < cfg.Height
				if c.interior {
					c.state = rule.Unknown
				} else {
					// Boundary ring: permanently dead, set
					// directly rather than journaled so it is
					// never backtracked.
					c.state = rule.Dead
				}

				for k, off := range neighborOffsets {
					c.nbhd[k] = w.find(x+off[0], y+off[1], t)
				}

				if t > 0 {
					c.pred = w.find(x, y, t-1)
				} else {
					c.pred = w.find(x-cfg.Dx, y-cfg.Dy, cfg.Period-1)
				}
				if t < cfg.Period-1 {
					c.succ = w.find(x, y, t+1)
				} else {
					c.succ = w.find(x+cfg.Dx, y+cfg.Dy, 0)
				}

				if c.interior && cfg.Symmetry != SymC1 {
					c.sym = w.orbit(x, y, t)
				}
			}
		}
	}

	// Counts: interior cells start Unknown, everything else is dead.
	for i := range w.cells {
		c := &w.cells[i]
		for _, n := range c.nbhd {
			if n != Exterior && w.cells[n].interior {
				c.unknown++
			}
		}
	}
}

// orbit computes the symmetry partners of an interior coordinate,
// deduplicated and excluding the cell itself. Validation guarantees
// every image lands inside the box.
func (w *World) orbit(x, y, t int) []int32 {
	self := w.find(x, y, t)
	images := w.cfg.Symmetry.images(x, y, w.cfg.Width, w.cfg.Height)
	out := make([]int32, 0, len(images))
	for _, img := range images {
		i := w.find(img[0], img[1], t)
		if i == self {
			continue
		}
		dup := false
		for _, seen := range out {
			if seen == i {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// applyBoundaryForces journals the assignments implied purely by the
// translation: a generation-0 cell whose predecessor coordinate falls
// beyond even the boundary ring descends from the far exterior, whose
// all-dead neighborhood keeps it dead.
func (w *World) applyBoundaryForces() error {
	cfg := w.cfg
	for x := 0; x < cfg.Width; x++ {
		for y := 0; y < cfg.Height; y++ {
			px, py := x-cfg.Dx, y-cfg.Dy
			if px >= -1 && px <= cfg.Width && py >= -1 && py <= cfg.Height {
				continue
			}
			i := w.find(x, y, 0)
			if w.cells[i].state != rule.Unknown {
				continue
			}
			if !w.Assign(i, rule.Dead, Deduction) {
				// Symmetry partners of a boundary-forced cell are
				// boundary-forced too; a conflict here is a bug.
				return fmt.Errorf("boundary force conflict at (%d,%d,0)", x, y)
			}
		}
	}
	return nil
}

// find maps an extended coordinate to a cell index, or Exterior when
// the coordinate lies beyond the boundary ring. The index layout is
// the traversal order: major axis, minor axis, then time innermost.
func (w *World) find(x, y, t int) int32 {
	if x < -1 || x > w.cfg.Width || y < -1 || y > w.cfg.Height {
		return Exterior
	}
	if w.columnFirst {
		return int32(((x+1)*(w.cfg.Height+2)+y+1)*w.cfg.Period + t)
	}
	return int32(((y+1)*(w.cfg.Width+2)+x+1)*w.cfg.Period + t)
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// ColumnFirst reports the resolved traversal order.
func (w *World) ColumnFirst() bool { return w.columnFirst }

// CellCount returns the number of interior cells, W·H·P.
func (w *World) CellCount() int {
	return w.cfg.Width * w.cfg.Height * w.cfg.Period
}

// State returns a cell's state. The Exterior index reads as Dead.
func (w *World) State(i int32) rule.State {
	if i == Exterior {
		return rule.Dead
	}
	return w.cells[i].state
}

// StateAt returns the state at an interior-or-ring coordinate; any
// coordinate beyond the ring reads as Dead. Time wraps modulo P.
func (w *World) StateAt(x, y, t int) rule.State {
	return w.State(w.find(x, y, ((t%w.cfg.Period)+w.cfg.Period)%w.cfg.Period))
}

// Counts returns the live and unknown neighbor counts of a cell.
func (w *World) Counts(i int32) (alive, unknown int) {
	c := &w.cells[i]
	return int(c.alive), int(c.unknown)
}

// Pred returns the index of the cell's predecessor, or Exterior.
func (w *World) Pred(i int32) int32 { return w.cells[i].pred }

// Succ returns the index of the cell's successor, or Exterior.
func (w *World) Succ(i int32) int32 { return w.cells[i].succ }

// Neighbors returns the cell's same-generation neighbor indices.
func (w *World) Neighbors(i int32) [8]int32 { return w.cells[i].nbhd }

// SymPartners returns the cell's orbit partners (shared slice; do not
// mutate).
func (w *World) SymPartners(i int32) []int32 { return w.cells[i].sym }

// Assign sets a cell to a known state.
//
// Semantics per the solver contract: assigning the state a cell
// already holds is a no-op returning true; assigning the opposite of a
// known state is a conflict returning false; assigning an Unknown cell
// pushes a journal frame, updates the eight neighbor counts, and
// recursively assigns every orbit partner as a deduction.
func (w *World) Assign(i int32, st rule.State, kind Kind) bool {
	c := &w.cells[i]
	if c.state != rule.Unknown {
		return c.state == st
	}
	c.state = st
	w.journal = append(w.journal, frame{cell: i, kind: kind})
	for _, n := range c.nbhd {
		if n == Exterior {
			continue
		}
		nc := &w.cells[n]
		nc.unknown--
		if st == rule.Alive {
			nc.alive++
		}
	}
	for _, s := range c.sym {
		if !w.Assign(s, st, Deduction) {
			return false
		}
	}
	return true
}

// UndoOne pops the newest journal frame, restoring the cell to
// Unknown and reversing its neighbor-count updates. Returns false on
// an empty journal.
func (w *World) UndoOne() (int32, Kind, bool) {
	if len(w.journal) == 0 {
		return 0, Deduction, false
	}
	f := w.journal[len(w.journal)-1]
	w.journal = w.journal[:len(w.journal)-1]

	c := &w.cells[f.cell]
	st := c.state
	c.state = rule.Unknown
	for _, n := range c.nbhd {
		if n == Exterior {
			continue
		}
		nc := &w.cells[n]
		nc.unknown++
		if st == rule.Alive {
			nc.alive--
		}
	}
	if int(f.cell) < w.cursor {
		w.cursor = int(f.cell)
	}
	return f.cell, f.kind, true
}

// BacktrackToLastGuess unwinds the journal through the most recent
// guess frame and returns that cell together with the state it had
// tried, so the caller can commit the sibling state. Returns ok=false
// when no guess remains, i.e. the search space is exhausted.
func (w *World) BacktrackToLastGuess() (int32, rule.State, bool) {
	for len(w.journal) > 0 {
		top := w.journal[len(w.journal)-1]
		tried := w.cells[top.cell].state
		kind := top.kind
		w.UndoOne()
		if kind == Guess {
			return top.cell, tried, true
		}
	}
	return 0, rule.Unknown, false
}

// FirstUnknown advances the traversal cursor to the next undecided
// cell. Boundary cells are never Unknown, so the scan naturally visits
// interior cells only.
func (w *World) FirstUnknown() (int32, bool) {
	for w.cursor < len(w.cells) {
		if w.cells[w.cursor].state == rule.Unknown {
			return int32(w.cursor), true
		}
		w.cursor++
	}
	return 0, false
}

// JournalLen returns the number of frames currently committed.
func (w *World) JournalLen() int { return len(w.journal) }

// JournalCell returns the cell of the i-th oldest frame. The
// propagator walks the journal as its work queue.
func (w *World) JournalCell(i int) int32 { return w.journal[i].cell }

// Generation returns a [y][x] snapshot of one generation. Time wraps
// modulo P.
func (w *World) Generation(t int) [][]rule.State {
	t = ((t % w.cfg.Period) + w.cfg.Period) % w.cfg.Period
	out := make([][]rule.State, w.cfg.Height)
	for y := 0; y < w.cfg.Height; y++ {
		row := make([]rule.State, w.cfg.Width)
		for x := 0; x < w.cfg.Width; x++ {
			row[x] = w.State(w.find(x, y, t))
		}
		out[y] = row
	}
	return out
}

// Nontrivial reports whether the current (solved) world is a real
// result: generation 0 is not all dead, and no proper divisor of the
// period already repeats the pattern.
func (w *World) Nontrivial() bool {
	nonzero := false
	for x := 0; x < w.cfg.Width && !nonzero; x++ {
		for y := 0; y < w.cfg.Height; y++ {
			if w.State(w.find(x, y, 0)) != rule.Dead {
				nonzero = true
				break
			}
		}
	}
	if !nonzero {
		return false
	}
	for d := 1; d < w.cfg.Period; d++ {
		if w.cfg.Period%d != 0 {
			continue
		}
		differs := false
		for x := 0; x < w.cfg.Width && !differs; x++ {
			for y := 0; y < w.cfg.Height; y++ {
				if w.State(w.find(x, y, 0)) != w.State(w.find(x, y, d)) {
					differs = true
					break
				}
			}
		}
		if !differs {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
