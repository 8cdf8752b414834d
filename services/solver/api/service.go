// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package api

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/AleutianAI/lifesrc/services/solver/engine"
	"github.com/AleutianAI/lifesrc/services/solver/render"
	"github.com/AleutianAI/lifesrc/services/solver/rule"
	"github.com/AleutianAI/lifesrc/services/solver/world"
)

// session wraps one engine behind a mutex. The engine is
// single-threaded; the mutex makes concurrent HTTP drivers take turns
// at step boundaries rather than corrupting the journal.
type session struct {
	id  string
	req CreateSessionRequest

	mu  sync.Mutex
	eng *engine.Engine
}

// Service owns the session table.
//
// Thread Safety: safe for concurrent use; the table has its own lock
// and each session serializes its engine.
type Service struct {
	log *slog.Logger
	cfg Config

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewService creates an empty session table.
func NewService(cfg Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		log:      log,
		cfg:      cfg,
		sessions: make(map[string]*session),
	}
}

// buildEngine constructs a fresh engine from creation parameters.
// Shared by create and reset so reset always reproduces the original
// configuration exactly.
func buildEngine(req CreateSessionRequest) (*engine.Engine, error) {
	ruleStr := req.Rule
	if ruleStr == "" {
		ruleStr = "B3/S23"
	}
	r, err := rule.Parse(ruleStr)
	if err != nil {
		return nil, err
	}

	symStr := req.Symmetry
	if symStr == "" {
		symStr = "C1"
	}
	sym, err := world.ParseSymmetry(symStr)
	if err != nil {
		return nil, err
	}

	order, err := world.ParseOrder(req.Order)
	if err != nil {
		return nil, err
	}

	period := req.Period
	if period == 0 {
		period = 1
	}

	w, err := world.New(world.Config{
		Width:    req.Width,
		Height:   req.Height,
		Period:   period,
		Dx:       req.Dx,
		Dy:       req.Dy,
		Symmetry: sym,
		Order:    order,
	})
	if err != nil {
		return nil, err
	}

	mode := engine.ModeFirst
	switch req.Mode {
	case "", "first":
	case "all":
		mode = engine.ModeAll
	case "random":
		mode = engine.ModeRandom
	default:
		return nil, fmt.Errorf("invalid mode %q", req.Mode)
	}

	return engine.New(w, r, engine.Config{
		Mode:           mode,
		Seed:           req.Seed,
		IncludeTrivial: req.IncludeTrivial,
	}), nil
}

// CreateSession validates the request, builds an engine, and registers
// it under a fresh UUID.
func (s *Service) CreateSession(req CreateSessionRequest) (*session, error) {
	eng, err := buildEngine(req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) >= s.cfg.MaxSessions {
		return nil, ErrTooManySessions
	}

	sess := &session{
		id:  uuid.NewString(),
		req: req,
		eng: eng,
	}
	s.sessions[sess.id] = sess
	recordSessionCreated(len(s.sessions))

	cfg := eng.World().Config()
	s.log.Info("session created",
		"session_id", sess.id,
		"width", cfg.Width, "height", cfg.Height, "period", cfg.Period,
		"dx", cfg.Dx, "dy", cfg.Dy,
		"rule", sess.ruleName(), "symmetry", cfg.Symmetry.String(),
	)
	return sess, nil
}

// Get looks a session up.
func (s *Service) Get(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	recordSessionDeleted(len(s.sessions))
	return nil
}

// Count returns the number of live sessions.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// step drives one bounded batch and reports the resulting status.
func (sess *session) step(maxSteps int) (engine.Status, engine.Stats) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	before := sess.eng.Stats().Steps
	st := sess.eng.Status()
	for st != engine.Exhausted {
		st = sess.eng.Step()
		if st != engine.Searching {
			break
		}
		if sess.eng.Stats().Steps-before >= uint64(maxSteps) {
			break
		}
	}
	recordSteps(sess.eng.Stats().Steps - before)
	return st, sess.eng.Stats()
}

// solve drives until the next solution, a terminal state, an optional
// step budget, or context cancellation, whichever comes first.
func (sess *session) solve(ctx context.Context, batch int, maxSteps int64) (engine.Status, engine.Stats, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	before := sess.eng.Stats().Steps
	st := sess.eng.Status()
	for {
		select {
		case <-ctx.Done():
			recordSteps(sess.eng.Stats().Steps - before)
			return st, sess.eng.Stats(), ctx.Err()
		default:
		}

		ran := uint64(0)
		for st = sess.eng.Step(); st == engine.Searching; st = sess.eng.Step() {
			ran++
			if ran >= uint64(batch) {
				break
			}
			if maxSteps > 0 && sess.eng.Stats().Steps-before >= uint64(maxSteps) {
				recordSteps(sess.eng.Stats().Steps - before)
				return st, sess.eng.Stats(), nil
			}
		}
		if st == engine.Found || st == engine.Exhausted {
			if st == engine.Found {
				recordSolution()
			}
			recordSteps(sess.eng.Stats().Steps - before)
			return st, sess.eng.Stats(), nil
		}
	}
}

// reset replaces the engine with a fresh one built from the original
// request.
func (sess *session) reset() error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	eng, err := buildEngine(sess.req)
	if err != nil {
		// The request built once already; failure here is a bug.
		return fmt.Errorf("rebuild engine: %w", err)
	}
	sess.eng = eng
	return nil
}

// snapshot renders the session for API responses.
func (sess *session) snapshot() SessionResponse {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	cfg := sess.eng.World().Config()
	mode := sess.req.Mode
	if mode == "" {
		mode = "first"
	}
	return SessionResponse{
		ID:       sess.id,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Period:   cfg.Period,
		Dx:       cfg.Dx,
		Dy:       cfg.Dy,
		Rule:     sess.ruleName(),
		Symmetry: cfg.Symmetry.String(),
		Mode:     mode,
		Status:   sess.eng.Status().String(),
		Stats:    statsResponse(sess.eng.Stats()),
	}
}

func (sess *session) ruleName() string {
	if sess.req.Rule == "" {
		return "B3/S23"
	}
	return sess.req.Rule
}

// worldView renders one generation under the session lock.
func (sess *session) worldView(gen int) WorldResponse {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return WorldResponse{
		Generation: gen,
		Grid:       render.Generation(sess.eng.World(), gen),
		Status:     sess.eng.Status().String(),
	}
}
