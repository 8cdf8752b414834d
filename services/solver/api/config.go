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
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration. Environment variables override
// the defaults but are never required; Addr and Debug can also be set
// by flags of the serve command, which take precedence.
type Config struct {
	// Addr is the listen address.
	Addr string `env:"LIFESRC_ADDR" envDefault:":8143"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `env:"LIFESRC_LOG_LEVEL" envDefault:"info"`

	// LogJSON switches log records to JSON.
	LogJSON bool `env:"LIFESRC_LOG_JSON" envDefault:"false"`

	// MaxSessions caps concurrently held sessions.
	MaxSessions int `env:"LIFESRC_MAX_SESSIONS" envDefault:"64"`

	// StepBatch is how many engine steps run between cancellation
	// checks and stream frames when a host asks for an unbounded run.
	StepBatch int `env:"LIFESRC_STEP_BATCH" envDefault:"65536"`

	// Debug enables gin debug mode and request logging.
	Debug bool `env:"LIFESRC_DEBUG" envDefault:"false"`
}

// LoadConfig reads the configuration from the environment on top of
// the defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
