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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for the search service. Engine counters are aggregated per
// driving batch rather than per step; the inner loop stays free of
// atomic traffic.
var (
	sessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifesrc_sessions_created_total",
		Help: "Total search sessions created",
	})

	sessionsLive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lifesrc_sessions_live",
		Help: "Search sessions currently held",
	})

	stepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifesrc_engine_steps_total",
		Help: "Engine steps driven across all sessions",
	})

	solutionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifesrc_solutions_total",
		Help: "Solutions found across all sessions",
	})
)

func recordSessionCreated(live int) {
	sessionsCreated.Inc()
	sessionsLive.Set(float64(live))
}

func recordSessionDeleted(live int) {
	sessionsLive.Set(float64(live))
}

func recordSteps(n uint64) {
	stepsTotal.Add(float64(n))
}

func recordSolution() {
	solutionsTotal.Inc()
}
