// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	flagAll            bool
	flagRandom         bool
	flagTime           bool
	flagRule           string
	flagSymmetry       string
	flagOrder          string
	flagSeed           int64
	flagGens           bool
	flagIncludeTrivial bool
	flagVerbose        bool

	// serve flags
	flagServeAddr  string
	flagServeDebug bool

	// tui flags
	flagTUIBatch int

	rootCmd = &cobra.Command{
		Use:   "lifesrc X Y [P [DX [DY]]]",
		Short: "Search Life-like cellular automata for still lifes, oscillators, and spaceships",
		Long: `lifesrc enumerates bounding-box patterns whose generation P equals
generation 0 translated by (DX, DY) under a Life-like rule, using a
backtracking constraint solver over the full space-time lattice.

Defaults: P=1, DX=0, DY=0, rule B3/S23, symmetry C1.`,
		Args:          cobra.RangeArgs(2, 5),
		RunE:          runSearch, // Defined in cmd_search.go
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the search engine over HTTP for browser hosts",
		Args:  cobra.NoArgs,
		RunE:  runServe, // Defined in cmd_serve.go
	}

	tuiCmd = &cobra.Command{
		Use:   "tui X Y [P [DX [DY]]]",
		Short: "Watch a search interactively in the terminal",
		Args:  cobra.RangeArgs(2, 5),
		RunE:  runTUI, // Defined in cmd_tui.go
	}
)

func init() {
	rootCmd.Flags().BoolVarP(&flagAll, "all", "a", false,
		"enumerate every solution instead of stopping at the first")
	rootCmd.Flags().BoolVar(&flagRandom, "random", false,
		"randomize the first-try state at each branch (still complete)")
	rootCmd.Flags().BoolVarP(&flagTime, "time", "t", false,
		"print wall-clock elapsed time on completion")
	rootCmd.Flags().BoolVar(&flagGens, "gens", false,
		"print all P generations of each solution, not just generation 0")
	rootCmd.Flags().BoolVar(&flagIncludeTrivial, "include-trivial", false,
		"accept the empty solution and solutions with a smaller true period")
	rootCmd.MarkFlagsMutuallyExclusive("all", "random")

	addSearchFlags(rootCmd)
	addSearchFlags(tuiCmd)

	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "",
		"listen address (default from LIFESRC_ADDR or :8143)")
	serveCmd.Flags().BoolVar(&flagServeDebug, "debug", false,
		"enable gin debug mode and request logging")

	tuiCmd.Flags().IntVar(&flagTUIBatch, "batch", 0,
		"engine steps per animation frame (0 = default)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
}

// addSearchFlags attaches the flags shared by every command that
// builds an engine from positional geometry arguments.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagRule, "rule", "r", "B3/S23",
		"rule string in B.../S... form")
	cmd.Flags().StringVarP(&flagSymmetry, "symmetry", "s", "C1",
		`symmetry: C1, C2, C4, D2|, D2-, D2\, D2/, D4+, D4X, D8`)
	cmd.Flags().StringVar(&flagOrder, "order", "auto",
		"branch traversal order: auto, row, or column")
	cmd.Flags().Int64Var(&flagSeed, "seed", -1,
		"random-mode seed; -1 derives one from the clock")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"debug logging on stderr")
}
