// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package render turns worlds into the plain-text glyph grids used by
// every front-end and by external Life tools: '.' dead, 'O' alive,
// '?' unknown (only seen when rendering an interrupted search).
package render

import (
	"strings"

	"github.com/AleutianAI/lifesrc/services/solver/rule"
	"github.com/AleutianAI/lifesrc/services/solver/world"
)

// Glyphs for the three cell states.
const (
	GlyphDead    = '.'
	GlyphAlive   = 'O'
	GlyphUnknown = '?'
)

// Glyph maps one state to its display rune.
func Glyph(s rule.State) rune {
	switch s {
	case rule.Dead:
		return GlyphDead
	case rule.Alive:
		return GlyphAlive
	default:
		return GlyphUnknown
	}
}

// Generation renders one generation as newline-terminated rows.
func Generation(w *world.World, t int) string {
	cfg := w.Config()
	var sb strings.Builder
	sb.Grow((cfg.Width + 1) * cfg.Height)
	for _, row := range w.Generation(t) {
		for _, s := range row {
			sb.WriteRune(Glyph(s))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// AllGenerations renders every generation in order, separated by one
// blank line.
func AllGenerations(w *world.World) string {
	cfg := w.Config()
	parts := make([]string, cfg.Period)
	for t := 0; t < cfg.Period; t++ {
		parts[t] = Generation(w, t)
	}
	return strings.Join(parts, "\n")
}
