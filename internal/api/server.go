// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api exposes the tuner schedule over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ManuGH/dvrsched/internal/health"
	"github.com/ManuGH/dvrsched/internal/schedule"
)

// Scheduler is the subset of dvr.Manager served by the API.
type Scheduler interface {
	Tuners() int
	Schedule(ctx context.Context, date schedule.Date, iv schedule.Interval, channel string) (schedule.DeviceID, error)
	Cancel(ctx context.Context, date schedule.Date, iv schedule.Interval, channel string) error
	Recording(ctx context.Context, date schedule.Date, t schedule.TimeCode) []string
	Listing(ctx context.Context) []schedule.Entry
	Busy(ctx context.Context, date schedule.Date, t schedule.TimeCode) []schedule.DeviceID
}

// Config controls the optional parts of the middleware stack.
type Config struct {
	RateLimitEnabled bool
	RateLimit        int
	RateWindow       time.Duration

	// TracingService names the HTTP server spans; empty disables tracing.
	TracingService string

	// AccessLog enables one log line per request.
	AccessLog bool

	// Version is reported by /readyz.
	Version string
}

// Server serves the booking API.
type Server struct {
	cfg   Config
	sched Scheduler
	ready *health.Manager
}

// New creates a server over sched.
func New(cfg Config, sched Scheduler) *Server {
	ready := health.NewManager(cfg.Version)
	ready.RegisterChecker(health.NewTunerChecker(sched))
	return &Server{cfg: cfg, sched: sched, ready: ready}
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.routes()
}
