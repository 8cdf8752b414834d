// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package tui is the interactive terminal front-end for the search
// engine.
//
// # Description
//
// The model drives the engine in bounded batches between animation
// ticks, exactly the host-loop contract the core exposes: the engine
// never blocks, the UI stays responsive, and the current world
// (including '?' cells mid-search) renders every frame.
//
// # Thread Safety
//
// All engine access happens inside the bubbletea event loop; nothing
// here is safe to touch from other goroutines.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/lifesrc/services/solver/engine"
	"github.com/AleutianAI/lifesrc/services/solver/rule"
)

// tickMsg paces the search batches.
type tickMsg time.Time

const tickInterval = 33 * time.Millisecond

// DefaultBatch is how many engine steps run per animation tick. Small
// enough to keep the frame rate, large enough to make progress.
const DefaultBatch = 16384

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	gridStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	aliveStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	deadStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	unknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	foundStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// Model is the bubbletea model wrapping one engine.
type Model struct {
	eng   *engine.Engine
	batch int

	running     bool
	stopAtFound bool
	status      engine.Status
	gen         int

	spin spinner.Model
}

// New creates a model that starts running toward the first solution.
func New(eng *engine.Engine, batch int) Model {
	if batch <= 0 {
		batch = DefaultBatch
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		eng:         eng,
		batch:       batch,
		running:     true,
		stopAtFound: true,
		status:      eng.Status(),
		spin:        sp,
	}
}

// Init starts the tick and spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.spin.Tick)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles keys and drives one batch per tick while running.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			m.stopAtFound = false
		case "s":
			m.status = m.stepBatch(1)
			m.running = false
		case "n":
			// Run until the next solution; in all mode this resumes
			// past the one currently displayed.
			m.running = true
			m.stopAtFound = true
		case "tab":
			m.gen = (m.gen + 1) % m.eng.World().Config().Period
		}
		return m, nil

	case tickMsg:
		if m.running && m.status != engine.Exhausted {
			m.status = m.stepBatch(m.batch)
			if m.status == engine.Found && m.stopAtFound {
				m.running = false
			}
			if m.status == engine.Exhausted {
				m.running = false
			}
		}
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// stepBatch advances the engine at most n steps.
func (m *Model) stepBatch(n int) engine.Status {
	st := m.eng.Status()
	for i := 0; i < n; i++ {
		st = m.eng.Step()
		if st != engine.Searching {
			break
		}
	}
	return st
}

// View renders the title, the selected generation, counters, and keys.
func (m Model) View() string {
	cfg := m.eng.World().Config()
	stats := m.eng.Stats()

	title := titleStyle.Render(fmt.Sprintf("lifesrc  %dx%d  P%d  (%d,%d)  %s",
		cfg.Width, cfg.Height, cfg.Period, cfg.Dx, cfg.Dy, cfg.Symmetry))

	grid := gridStyle.Render(m.renderGrid())

	var state string
	switch m.status {
	case engine.Found:
		state = foundStyle.Render("solution found")
	case engine.Exhausted:
		state = statusStyle.Render("search exhausted")
	default:
		if m.running {
			state = m.spin.View() + statusStyle.Render("searching")
		} else {
			state = statusStyle.Render("paused")
		}
	}

	status := statusStyle.Render(fmt.Sprintf(
		"gen %d/%d  steps %d  guesses %d  backtracks %d  solutions %d",
		m.gen, cfg.Period, stats.Steps, stats.Guesses, stats.Backtracks,
		stats.Solutions))

	help := helpStyle.Render(
		"space pause/resume · s step · n next solution · tab generation · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title, grid, state, status, help) + "\n"
}

// renderGrid styles the selected generation cell by cell.
func (m Model) renderGrid() string {
	rows := m.eng.World().Generation(m.gen)
	out := ""
	for y, row := range rows {
		for _, s := range row {
			switch s {
			case rule.Alive:
				out += aliveStyle.Render("O")
			case rule.Dead:
				out += deadStyle.Render(".")
			default:
				out += unknownStyle.Render("?")
			}
		}
		if y < len(rows)-1 {
			out += "\n"
		}
	}
	return out
}
