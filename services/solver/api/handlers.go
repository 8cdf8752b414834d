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
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handlers binds the service to gin.
type Handlers struct {
	svc *Service
	log *slog.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(svc *Service, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{svc: svc, log: log}
}

// HandleCreateSession creates a search session.
//
// POST /v1/solver/sessions
func (h *Handlers) HandleCreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	sess, err := h.svc.CreateSession(req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrTooManySessions) {
			status = http.StatusTooManyRequests
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sess.snapshot())
}

// HandleGetSession reports a session's status and counters.
//
// GET /v1/solver/sessions/:id
func (h *Handlers) HandleGetSession(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.snapshot())
}

// HandleStep drives one bounded batch of engine steps.
//
// POST /v1/solver/sessions/:id/step
func (h *Handlers) HandleStep(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}

	var req StepRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	maxSteps := req.MaxSteps
	if maxSteps == 0 {
		maxSteps = h.svc.cfg.StepBatch
	}

	sess.step(maxSteps)
	c.JSON(http.StatusOK, sess.snapshot())
}

// HandleSolve runs the search until the next solution, a terminal
// state, or request cancellation.
//
// POST /v1/solver/sessions/:id/solve
func (h *Handlers) HandleSolve(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}

	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	_, _, err := sess.solve(c.Request.Context(), h.svc.cfg.StepBatch, req.MaxSteps)
	if err != nil && errors.Is(err, context.Canceled) {
		// Client went away; nothing left to answer.
		return
	}
	c.JSON(http.StatusOK, sess.snapshot())
}

// HandleReset rebuilds the session's engine from its original request.
//
// POST /v1/solver/sessions/:id/reset
func (h *Handlers) HandleReset(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := sess.reset(); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess.snapshot())
}

// HandleWorld renders one generation of the session's world.
//
// GET /v1/solver/sessions/:id/world?gen=0
func (h *Handlers) HandleWorld(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}

	gen := 0
	if q := c.Query("gen"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid gen parameter"})
			return
		}
		gen = n
	}
	c.JSON(http.StatusOK, sess.worldView(gen))
}

// HandleDeleteSession discards a session.
//
// DELETE /v1/solver/sessions/:id
func (h *Handlers) HandleDeleteSession(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleHealth is the liveness probe.
//
// GET /v1/solver/health
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": h.svc.Count(),
	})
}

// lookup resolves the :id parameter, writing the 404 itself.
func (h *Handlers) lookup(c *gin.Context) (*session, bool) {
	sess, err := h.svc.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return nil, false
	}
	return sess, true
}
