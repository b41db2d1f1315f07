// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package dvr exposes the tuner schedule to concurrent callers.
package dvr

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/ManuGH/dvrsched/internal/input"
	"github.com/ManuGH/dvrsched/internal/log"
	"github.com/ManuGH/dvrsched/internal/metrics"
	"github.com/ManuGH/dvrsched/internal/schedule"
	"github.com/ManuGH/dvrsched/internal/telemetry"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Manager owns one schedule.Allocator and serializes access to it.
type Manager struct {
	mu     sync.RWMutex
	alloc  *schedule.Allocator
	logger zerolog.Logger
	tracer trace.Tracer
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithTracerProvider sources spans from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(m *Manager) { m.tracer = tp.Tracer("dvrsched/dvr") }
}

// NewManager creates a Manager for the given number of tuners.
func NewManager(tuners int, opts ...Option) (*Manager, error) {
	alloc, err := schedule.New(tuners)
	if err != nil {
		return nil, err
	}
	m := &Manager{
		alloc:  alloc,
		logger: log.WithComponent("dvr"),
		tracer: telemetry.Tracer("dvrsched/dvr"),
	}
	for _, opt := range opts {
		opt(m)
	}
	metrics.SetTuners(tuners)
	metrics.SetActiveBookings(0)
	return m, nil
}

// Tuners returns the fixed tuner count.
func (m *Manager) Tuners() int {
	return m.alloc.Devices()
}

// Schedule books channel over iv on date. It returns the tuner chosen, or an
// error wrapping schedule.ErrConflict when all tuners are busy.
func (m *Manager) Schedule(ctx context.Context, date schedule.Date, iv schedule.Interval, channel string) (schedule.DeviceID, error) {
	ctx, span := m.tracer.Start(ctx, "dvr.schedule",
		trace.WithAttributes(telemetry.BookingAttributes(date.String(), input.FormatSlot(iv), channel)...))
	defer span.End()

	m.mu.Lock()
	dev, err := m.alloc.Add(date, iv, channel)
	active := m.alloc.Len()
	m.mu.Unlock()

	logger := log.WithContext(ctx, m.logger)
	switch {
	case err == nil:
		metrics.RecordBookingAdded(int(dev))
		metrics.SetActiveBookings(active)
		span.SetAttributes(telemetry.OutcomeAttributes("added", int(dev))...)
		logger.Info().
			Str(log.FieldEvent, "booking.added").
			Stringer(log.FieldDate, date).
			Str(log.FieldSlot, input.FormatSlot(iv)).
			Str(log.FieldChannel, channel).
			Int(log.FieldTuner, int(dev)).
			Msg("booking scheduled")
	case errors.Is(err, schedule.ErrConflict):
		metrics.RecordBookingConflict()
		span.SetAttributes(telemetry.OutcomeAttributes("conflict", 0)...)
		logger.Info().
			Str(log.FieldEvent, "booking.conflict").
			Stringer(log.FieldDate, date).
			Str(log.FieldSlot, input.FormatSlot(iv)).
			Str(log.FieldChannel, channel).
			Msg("all tuners busy")
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn().Err(err).Str(log.FieldEvent, "booking.rejected").Msg("booking rejected")
	}
	return dev, err
}

// Cancel removes the booking matching date, iv and channel exactly. It
// returns an error wrapping schedule.ErrNotFound when nothing matches.
func (m *Manager) Cancel(ctx context.Context, date schedule.Date, iv schedule.Interval, channel string) error {
	ctx, span := m.tracer.Start(ctx, "dvr.cancel",
		trace.WithAttributes(telemetry.BookingAttributes(date.String(), input.FormatSlot(iv), channel)...))
	defer span.End()

	m.mu.Lock()
	err := m.alloc.Remove(date, iv, channel)
	active := m.alloc.Len()
	m.mu.Unlock()

	metrics.RecordBookingRemoval(err == nil)
	logger := log.WithContext(ctx, m.logger)
	if err != nil {
		span.SetAttributes(telemetry.OutcomeAttributes("not_found", 0)...)
		logger.Info().
			Str(log.FieldEvent, "booking.not_found").
			Stringer(log.FieldDate, date).
			Str(log.FieldSlot, input.FormatSlot(iv)).
			Str(log.FieldChannel, channel).
			Msg("no matching booking")
		return err
	}
	metrics.SetActiveBookings(active)
	span.SetAttributes(telemetry.OutcomeAttributes("removed", 0)...)
	logger.Info().
		Str(log.FieldEvent, "booking.removed").
		Stringer(log.FieldDate, date).
		Str(log.FieldSlot, input.FormatSlot(iv)).
		Str(log.FieldChannel, channel).
		Msg("booking removed")
	return nil
}

// Recording returns the channels recording at t on date. nil means none.
func (m *Manager) Recording(ctx context.Context, date schedule.Date, t schedule.TimeCode) []string {
	_, span := m.tracer.Start(ctx, "dvr.recording")
	defer span.End()

	m.mu.RLock()
	channels := m.alloc.QueryAt(date, t)
	m.mu.RUnlock()

	metrics.RecordRecordingQuery(len(channels) > 0)
	span.SetAttributes(telemetry.BookingAttributes(date.String(), "", "")...)
	logger := log.WithContext(ctx, m.logger)
	logger.Debug().
		Str(log.FieldEvent, "recording.query").
		Stringer(log.FieldDate, date).
		Str(log.FieldTime, input.FormatTime(t)).
		Int(log.FieldMatches, len(channels)).
		Msg("recording query")
	return channels
}

// Busy returns the tuners recording at t on date.
func (m *Manager) Busy(ctx context.Context, date schedule.Date, t schedule.TimeCode) []schedule.DeviceID {
	_, span := m.tracer.Start(ctx, "dvr.busy")
	defer span.End()

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.alloc.Busy(date, t)
}

// Listing returns every booking grouped by date and ordered by start time.
func (m *Manager) Listing(ctx context.Context) []schedule.Entry {
	_, span := m.tracer.Start(ctx, "dvr.listing")
	defer span.End()

	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Collect(m.alloc.ListAll())
}
