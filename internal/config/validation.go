// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Validate reports every problem in cfg at once.
func Validate(cfg AppConfig) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if cfg.Tuners < 1 {
		add("tuners must be >= 1, got %d", cfg.Tuners)
	}
	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil || cfg.Log.Level == "" {
		add("log.level %q is not a valid level", cfg.Log.Level)
	}
	if cfg.Server.ListenAddr == "" {
		add("server.listen must not be empty")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		add("server.shutdownTimeout must be positive, got %s", cfg.Server.ShutdownTimeout)
	}
	if rl := cfg.Server.RateLimit; rl.Enabled {
		if rl.Requests <= 0 {
			add("server.rateLimit.requests must be positive, got %d", rl.Requests)
		}
		if rl.Window <= 0 {
			add("server.rateLimit.window must be positive, got %s", rl.Window)
		}
	}
	if t := cfg.Telemetry; t.Enabled {
		if t.ExporterType != "grpc" && t.ExporterType != "http" {
			add("telemetry.exporter must be grpc or http, got %q", t.ExporterType)
		}
		if t.Endpoint == "" {
			add("telemetry.endpoint must not be empty when telemetry is enabled")
		}
	}
	if r := cfg.Telemetry.SamplingRate; r < 0 || r > 1 {
		add("telemetry.samplingRate must be within [0,1], got %g", r)
	}
	return errors.Join(errs...)
}
