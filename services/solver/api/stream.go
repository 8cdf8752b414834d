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
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/lifesrc/services/solver/engine"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
	// Same-origin policy is the embedding page's concern; the server
	// carries no credentials or persistent state worth forging
	// requests against.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const streamWriteTimeout = 10 * time.Second

// HandleStream upgrades to a websocket and streams world frames while
// driving the session in batches: one frame after every batch, a final
// frame at Found or Exhausted, then a normal close.
//
// GET /v1/solver/sessions/:id/stream
//
// The browser host uses this instead of polling /step between
// animation frames.
func (h *Handlers) HandleStream(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	g, ctx := errgroup.WithContext(c.Request.Context())

	// Reader: nothing to consume, but reads must be pumped to notice
	// the peer closing.
	g.Go(func() error {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return err
			}
		}
	})

	// Writer: drive and frame until terminal or disconnect.
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			st, stats := sess.step(h.svc.cfg.StepBatch)
			frame := StreamFrame{
				Status: st.String(),
				Grid:   sess.worldView(0).Grid,
				Stats:  statsResponse(stats),
			}

			conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteJSON(frame); err != nil {
				return err
			}

			if st == engine.Found {
				recordSolution()
			}
			if st == engine.Found || st == engine.Exhausted {
				conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, st.String()))
				// Unblock the read pump once the peer has had a
				// moment to acknowledge the close.
				_ = conn.SetReadDeadline(time.Now().Add(time.Second))
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil &&
		!errors.Is(err, context.Canceled) &&
		!websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		h.log.Debug("stream ended", "session_id", sess.id, "error", err)
	}
}
