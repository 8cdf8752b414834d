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
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/lifesrc/pkg/logging"
	"github.com/AleutianAI/lifesrc/services/solver/engine"
	"github.com/AleutianAI/lifesrc/services/solver/render"
	"github.com/AleutianAI/lifesrc/services/solver/rule"
	"github.com/AleutianAI/lifesrc/services/solver/world"
)

// parseGeometry turns the positional arguments X Y [P [DX [DY]]] into
// a world config (symmetry and order still unset).
func parseGeometry(args []string) (world.Config, error) {
	var cfg world.Config
	vals := [5]int{0, 0, 1, 0, 0}
	names := [5]string{"X", "Y", "P", "DX", "DY"}
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s must be an integer, got %q",
				world.ErrInvalidGeometry, names[i], a)
		}
		vals[i] = n
	}
	cfg.Width, cfg.Height, cfg.Period = vals[0], vals[1], vals[2]
	cfg.Dx, cfg.Dy = vals[3], vals[4]
	return cfg, nil
}

// buildEngine assembles rule, world, and engine from the parsed
// geometry and the shared search flags.
func buildEngine(args []string, mode engine.Mode) (*engine.Engine, error) {
	cfg, err := parseGeometry(args)
	if err != nil {
		return nil, err
	}

	r, err := rule.Parse(flagRule)
	if err != nil {
		return nil, err
	}
	cfg.Symmetry, err = world.ParseSymmetry(flagSymmetry)
	if err != nil {
		return nil, err
	}
	cfg.Order, err = world.ParseOrder(flagOrder)
	if err != nil {
		return nil, err
	}

	w, err := world.New(cfg)
	if err != nil {
		return nil, err
	}

	seed := flagSeed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	return engine.New(w, r, engine.Config{
		Mode:           mode,
		Seed:           seed,
		IncludeTrivial: flagIncludeTrivial,
	}), nil
}

func searchMode() engine.Mode {
	switch {
	case flagAll:
		return engine.ModeAll
	case flagRandom:
		return engine.ModeRandom
	default:
		return engine.ModeFirst
	}
}

// runSearch is the root command: build the engine, run it to the end
// (or to the first solution), and print glyph grids on stdout.
func runSearch(cmd *cobra.Command, args []string) error {
	level := "warn"
	if flagVerbose {
		level = "debug"
	}
	log := logging.New(logging.Config{Level: level, Service: "lifesrc"})

	eng, err := buildEngine(args, searchMode())
	if err != nil {
		return err
	}

	cfg := eng.World().Config()
	log.Debug("search configured",
		"width", cfg.Width, "height", cfg.Height, "period", cfg.Period,
		"dx", cfg.Dx, "dy", cfg.Dy,
		"rule", flagRule, "symmetry", cfg.Symmetry.String(),
		"column_first", eng.World().ColumnFirst())

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stopProgress := startProgress(ctx)
	defer stopProgress()

	start := time.Now()
	found := 0
	_, err = eng.Search(ctx, func(w *world.World) bool {
		stopProgress()
		fmt.Println()
		if flagGens {
			fmt.Print(render.AllGenerations(w))
		} else {
			fmt.Print(render.Generation(w, 0))
		}
		found++
		return true
	})
	elapsed := time.Since(start)

	if err != nil {
		// Interrupted; partial state is not a solution.
		log.Debug("search interrupted", "error", err, "steps", eng.Stats().Steps)
		return nil
	}

	if found == 0 {
		fmt.Println("Found no result.")
	}
	if flagTime {
		fmt.Printf("Time taken: %dms.\n", elapsed.Milliseconds())
	}

	stats := eng.Stats()
	log.Debug("search finished",
		"solutions", stats.Solutions, "steps", stats.Steps,
		"guesses", stats.Guesses, "backtracks", stats.Backtracks)
	return nil
}

// startProgress prints a heartbeat on stderr while a long search runs,
// but only when stderr is a terminal: redirected runs stay clean. The
// returned function stops it; calling it more than once is fine.
func startProgress(ctx context.Context) func() {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return func() {}
	}

	done := make(chan struct{})
	stopped := false
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		start := time.Now()
		for {
			select {
			case <-done:
				fmt.Fprint(os.Stderr, "\r\033[K")
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				fmt.Fprintf(os.Stderr, "\rsearching... %s",
					time.Since(start).Round(time.Second))
			}
		}
	}()
	return func() {
		if !stopped {
			stopped = true
			close(done)
		}
	}
}
