// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command lifesrc searches for still lifes, oscillators, and
// spaceships in two-dimensional Life-like cellular automata.
//
// Usage:
//
//	lifesrc X Y [P [DX [DY]]] [flags]
//
// Examples:
//
//	# First still life that fits a 5x5 box
//	lifesrc 5 5
//
//	# The 25P3H1V0.1 spaceship: 16x5, period 3, one cell down
//	lifesrc 16 5 3 0 1
//
//	# Every period-2 oscillator in a 3x3 box, with timing
//	lifesrc 3 3 2 -a -t
//
//	# HighLife, mirror symmetry (quote symmetries with shell characters)
//	lifesrc 6 6 -r B36/S23 -s 'D2|'
//
// Subcommands: "serve" exposes the engine over HTTP for browser
// hosts; "tui" runs the interactive terminal front-end.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
