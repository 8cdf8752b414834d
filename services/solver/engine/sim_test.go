// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package engine_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/lifesrc/services/solver/engine"
	"github.com/AleutianAI/lifesrc/services/solver/rule"
	"github.com/AleutianAI/lifesrc/services/solver/world"
)

// grid is a [y][x] generation snapshot with fully known cells.
type grid [][]rule.State

func (g grid) width() int  { return len(g[0]) }
func (g grid) height() int { return len(g) }

func (g grid) at(x, y int) rule.State {
	if x < 0 || x >= g.width() || y < 0 || y >= g.height() {
		return rule.Dead
	}
	return g[y][x]
}

func (g grid) render() string {
	var sb strings.Builder
	for _, row := range g {
		for _, s := range row {
			if s == rule.Alive {
				sb.WriteByte('O')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g grid) equal(o grid) bool {
	for y := range g {
		for x := range g[y] {
			if g[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

func (g grid) anyAlive() bool {
	for _, row := range g {
		for _, s := range row {
			if s == rule.Alive {
				return true
			}
		}
	}
	return false
}

// aliveCells lists live coordinates for exact-pattern assertions.
func (g grid) aliveCells() [][2]int {
	var out [][2]int
	for y, row := range g {
		for x, s := range row {
			if s == rule.Alive {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}

// stepExtended evolves one generation on the extended lattice
// [-1..W]x[-1..H], with everything farther out permanently dead. The
// result is indexed [y+1][x+1].
func stepExtended(r *rule.Rule, g grid) grid {
	w, h := g.width(), g.height()
	out := make(grid, h+2)
	for ey := 0; ey < h+2; ey++ {
		out[ey] = make([]rule.State, w+2)
		for ex := 0; ex < w+2; ex++ {
			x, y := ex-1, ey-1
			alive := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if g.at(x+dx, y+dy) == rule.Alive {
						alive++
					}
				}
			}
			out[ey][ex] = r.Next(g.at(x, y), alive)
		}
	}
	return out
}

// interior strips the ring from an extended grid.
func interior(ext grid) grid {
	h := len(ext) - 2
	w := len(ext[0]) - 2
	out := make(grid, h)
	for y := 0; y < h; y++ {
		out[y] = append([]rule.State(nil), ext[y+1][1:1+w]...)
	}
	return out
}

// ringDead reports whether the boundary ring of an extended grid is
// entirely dead: patterns must stay inside the box.
func ringDead(ext grid) bool {
	h := len(ext)
	w := len(ext[0])
	for x := 0; x < w; x++ {
		if ext[0][x] == rule.Alive || ext[h-1][x] == rule.Alive {
			return false
		}
	}
	for y := 0; y < h; y++ {
		if ext[y][0] == rule.Alive || ext[y][w-1] == rule.Alive {
			return false
		}
	}
	return true
}

// satisfies checks the full periodicity constraint for a candidate
// generation-0 grid: evolve P steps inside the box, containment at
// every step, and the final step landing on generation 0 translated by
// (dx, dy). Returns the generations when valid.
func satisfies(r *rule.Rule, g0 grid, period, dx, dy int) ([]grid, bool) {
	w, h := g0.width(), g0.height()
	gens := []grid{g0}
	for t := 0; t < period; t++ {
		ext := stepExtended(r, gens[t])
		if t < period-1 {
			if !ringDead(ext) {
				return nil, false
			}
			gens = append(gens, interior(ext))
			continue
		}
		// Final transition: every extended position must evolve into
		// the translated generation 0, and into nothing at all where
		// the translation leaves the box.
		for ey := range ext {
			for ex := range ext[ey] {
				x, y := ex-1, ey-1
				tx, ty := x+dx, y+dy
				if tx >= 0 && tx < w && ty >= 0 && ty < h {
					if ext[ey][ex] != g0[ty][tx] {
						return nil, false
					}
				} else if ext[ey][ex] == rule.Alive {
					return nil, false
				}
			}
		}
		// Generation-0 positions translated in from beyond even the
		// ring descend from the far exterior and must be dead.
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				sx, sy := x-dx, y-dy
				outside := sx < -1 || sx > w || sy < -1 || sy > h
				if outside && g0[y][x] == rule.Alive {
					return nil, false
				}
			}
		}
	}
	return gens, true
}

// nontrivialGens mirrors the engine's filter on reference generations.
func nontrivialGens(gens []grid, period int) bool {
	if !gens[0].anyAlive() {
		return false
	}
	for d := 1; d < period; d++ {
		if period%d == 0 && gens[0].equal(gens[d]) {
			return false
		}
	}
	return true
}

// enumerate brute-forces every 2^(W*H) generation-0 configuration.
// symOK filters candidates to a symmetry class; nil means C1.
func enumerate(t *testing.T, r *rule.Rule, w, h, period, dx, dy int,
	symOK func(grid) bool, includeTrivial bool) []string {
	t.Helper()
	require.LessOrEqual(t, w*h, 16, "brute force limited to 2^16 candidates")

	var out []string
	for mask := 0; mask < 1<<(w*h); mask++ {
		g0 := make(grid, h)
		for y := 0; y < h; y++ {
			g0[y] = make([]rule.State, w)
			for x := 0; x < w; x++ {
				if mask&(1<<(y*w+x)) != 0 {
					g0[y][x] = rule.Alive
				} else {
					g0[y][x] = rule.Dead
				}
			}
		}
		if symOK != nil && !symOK(g0) {
			continue
		}
		gens, ok := satisfies(r, g0, period, dx, dy)
		if !ok {
			continue
		}
		if !includeTrivial && !nontrivialGens(gens, period) {
			continue
		}
		out = append(out, g0.render())
	}
	sort.Strings(out)
	return out
}

// worldGrid snapshots one generation of a (solved) world.
func worldGrid(w *world.World, t int) grid {
	return grid(w.Generation(t))
}

// collectSolutions runs the engine in enumeration mode and returns
// every generation-0 rendering, sorted.
func collectSolutions(t *testing.T, eng *engine.Engine) []string {
	t.Helper()
	var out []string
	status, err := eng.Search(t.Context(), func(w *world.World) bool {
		out = append(out, worldGrid(w, 0).render())
		return true
	})
	require.NoError(t, err)
	require.Equal(t, engine.Exhausted, status)
	sort.Strings(out)
	return out
}

// checkSolution verifies property P1 on the engine's solved world:
// simulating forward reproduces every generation and the translated
// wrap, with containment throughout.
func checkSolution(t *testing.T, r *rule.Rule, w *world.World) {
	t.Helper()
	cfg := w.Config()
	gens, ok := satisfies(r, worldGrid(w, 0), cfg.Period, cfg.Dx, cfg.Dy)
	require.True(t, ok, "reported solution fails forward simulation:\n%s",
		worldGrid(w, 0).render())
	for tt := 1; tt < cfg.Period; tt++ {
		require.True(t, gens[tt].equal(worldGrid(w, tt)),
			"generation %d mismatch between world and simulation", tt)
	}
}

// newEngine builds a world and engine or fails the test.
func newEngine(t *testing.T, cfg world.Config, r *rule.Rule, ecfg engine.Config) *engine.Engine {
	t.Helper()
	w, err := world.New(cfg)
	require.NoError(t, err)
	return engine.New(w, r, ecfg)
}
