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

import "fmt"

// Symmetry names a symmetry group acting on the bounding box. Every
// cell shares its state with the images of its coordinate under the
// group, so a symmetry both shrinks the search space and restricts
// which patterns can be found.
type Symmetry int

const (
	// SymC1 is the trivial group: no symmetry.
	SymC1 Symmetry = iota

	// SymC2 is 180° rotation about the box center.
	SymC2

	// SymC4 is the cyclic group of 90° rotations. Square boxes only.
	SymC4

	// SymD2Vertical mirrors across the vertical center line ("D2|").
	SymD2Vertical

	// SymD2Horizontal mirrors across the horizontal center line ("D2-").
	SymD2Horizontal

	// SymD2Diagonal mirrors across the main diagonal ("D2\").
	// Square boxes only.
	SymD2Diagonal

	// SymD2Antidiagonal mirrors across the antidiagonal ("D2/").
	// Square boxes only.
	SymD2Antidiagonal

	// SymD4Ortho combines both axis mirrors with 180° rotation ("D4+").
	SymD4Ortho

	// SymD4Diag combines both diagonal mirrors with 180° rotation
	// ("D4X"). Square boxes only.
	SymD4Diag

	// SymD8 is the full symmetry group of the square.
	SymD8
)

var symmetryNames = map[Symmetry]string{
	SymC1:             "C1",
	SymC2:             "C2",
	SymC4:             "C4",
	SymD2Vertical:     "D2|",
	SymD2Horizontal:   "D2-",
	SymD2Diagonal:     `D2\`,
	SymD2Antidiagonal: "D2/",
	SymD4Ortho:        "D4+",
	SymD4Diag:         "D4X",
	SymD8:             "D8",
}

// String returns the conventional token for the symmetry, e.g. "D2|".
func (s Symmetry) String() string {
	if name, ok := symmetryNames[s]; ok {
		return name
	}
	return fmt.Sprintf("symmetry(%d)", int(s))
}

// ParseSymmetry parses a symmetry token. Tokens follow the usual
// search-program convention: C1, C2, C4, D2|, D2-, D2\, D2/, D4+,
// D4X, D8. Unknown tokens wrap ErrInvalidSymmetry.
func ParseSymmetry(s string) (Symmetry, error) {
	for sym, name := range symmetryNames {
		if s == name {
			return sym, nil
		}
	}
	return SymC1, fmt.Errorf("%w: unknown symmetry %q", ErrInvalidSymmetry, s)
}

// swapsAxes reports whether the group contains a transformation that
// exchanges the x and y axes; those groups only act on square boxes.
func (s Symmetry) swapsAxes() bool {
	switch s {
	case SymC4, SymD2Diagonal, SymD2Antidiagonal, SymD4Diag, SymD8:
		return true
	default:
		return false
	}
}

// validate checks the symmetry against the box shape and the requested
// translation. Every group element must fix the translation vector;
// otherwise generation P could not be both symmetric and shifted.
func (s Symmetry) validate(w, h, dx, dy int) error {
	if s.swapsAxes() && w != h {
		return fmt.Errorf("%w: %v requires a square box, got %dx%d",
			ErrInvalidSymmetry, s, w, h)
	}

	ok := true
	switch s {
	case SymC1:
	case SymD2Vertical:
		ok = dx == 0
	case SymD2Horizontal:
		ok = dy == 0
	case SymD2Diagonal:
		ok = dx == dy
	case SymD2Antidiagonal:
		ok = dx == -dy
	default:
		// C2, C4, D4+, D4X, D8 all contain the 180° rotation,
		// which negates any translation.
		ok = dx == 0 && dy == 0
	}
	if !ok {
		return fmt.Errorf("%w: %v is incompatible with translation (%d,%d)",
			ErrInvalidSymmetry, s, dx, dy)
	}
	return nil
}

// images returns the coordinates sharing state with (x, y) under the
// group's non-identity elements. On the symmetry axes an image can be
// (x, y) itself and duplicates are possible; callers dedupe and drop
// the cell itself.
func (s Symmetry) images(x, y, w, h int) [][2]int {
	switch s {
	case SymC1:
		return nil
	case SymC2:
		return [][2]int{{w - 1 - x, h - 1 - y}}
	case SymC4:
		return [][2]int{
			{y, w - 1 - x},
			{w - 1 - x, h - 1 - y},
			{h - 1 - y, x},
		}
	case SymD2Vertical:
		return [][2]int{{w - 1 - x, y}}
	case SymD2Horizontal:
		return [][2]int{{x, h - 1 - y}}
	case SymD2Diagonal:
		return [][2]int{{y, x}}
	case SymD2Antidiagonal:
		return [][2]int{{h - 1 - y, w - 1 - x}}
	case SymD4Ortho:
		return [][2]int{
			{w - 1 - x, y},
			{x, h - 1 - y},
			{w - 1 - x, h - 1 - y},
		}
	case SymD4Diag:
		return [][2]int{
			{y, x},
			{h - 1 - y, w - 1 - x},
			{w - 1 - x, h - 1 - y},
		}
	case SymD8:
		return [][2]int{
			{y, w - 1 - x},
			{h - 1 - y, x},
			{w - 1 - x, y},
			{x, h - 1 - y},
			{y, x},
			{h - 1 - y, w - 1 - x},
			{w - 1 - x, h - 1 - y},
		}
	default:
		return nil
	}
}

// foldedExtent returns the box extent after folding out the mirror
// halves the search never visits independently; used by the automatic
// traversal-order heuristic.
func (s Symmetry) foldedExtent(w, h int) (int, int) {
	switch s {
	case SymD2Vertical:
		return (w + 1) / 2, h
	case SymD2Horizontal:
		return w, (h + 1) / 2
	default:
		return w, h
	}
}
