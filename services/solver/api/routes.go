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
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all solver routes with the router group.
//
// Description:
//
//	Registers the /solver endpoints with the given group (typically
//	/v1). Middleware is the caller's business.
//
// Session Endpoints:
//
//	POST   /v1/solver/sessions           - Create a search session
//	GET    /v1/solver/sessions/:id       - Status and counters
//	POST   /v1/solver/sessions/:id/step  - Drive a bounded step batch
//	POST   /v1/solver/sessions/:id/solve - Run until the next solution
//	POST   /v1/solver/sessions/:id/reset - Rebuild from the original config
//	GET    /v1/solver/sessions/:id/world - Render a generation
//	GET    /v1/solver/sessions/:id/stream - Websocket world frames
//	DELETE /v1/solver/sessions/:id       - Discard the session
//
// Health Endpoints:
//
//	GET /v1/solver/health - Liveness and session count
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	solver := rg.Group("/solver")
	{
		solver.POST("/sessions", h.HandleCreateSession)
		solver.GET("/sessions/:id", h.HandleGetSession)
		solver.POST("/sessions/:id/step", h.HandleStep)
		solver.POST("/sessions/:id/solve", h.HandleSolve)
		solver.POST("/sessions/:id/reset", h.HandleReset)
		solver.GET("/sessions/:id/world", h.HandleWorld)
		solver.GET("/sessions/:id/stream", h.HandleStream)
		solver.DELETE("/sessions/:id", h.HandleDeleteSession)

		solver.GET("/health", h.HandleHealth)
	}
}

// RegisterMetrics exposes the Prometheus registry on /metrics at the
// router root.
func RegisterMetrics(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
