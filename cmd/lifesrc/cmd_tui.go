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
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/lifesrc/services/solver/engine"
	"github.com/AleutianAI/lifesrc/services/solver/tui"
)

// runTUI watches a search interactively. The engine runs in
// enumeration mode so 'n' keeps meaning something: each press resumes
// toward the next solution in traversal order.
func runTUI(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine(args, engine.ModeAll)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(eng, flagTUIBatch))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
