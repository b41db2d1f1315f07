// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package health

import (
	"context"
	"fmt"
	"time"

	"github.com/ManuGH/dvrsched/internal/schedule"
)

// TunerSource reports the tuner pool and what it is recording.
type TunerSource interface {
	Tuners() int
	Busy(ctx context.Context, date schedule.Date, t schedule.TimeCode) []schedule.DeviceID
}

// TunerChecker reports degraded while every tuner is recording, since any
// further booking for the current minute would conflict.
type TunerChecker struct {
	src TunerSource
	now func() time.Time
}

// NewTunerChecker checks src against the local wall clock.
func NewTunerChecker(src TunerSource) *TunerChecker {
	return &TunerChecker{src: src, now: time.Now}
}

func (c *TunerChecker) Name() string { return "tuners" }

func (c *TunerChecker) Check(ctx context.Context) CheckResult {
	total := c.src.Tuners()
	if total < 1 {
		return CheckResult{Status: StatusUnhealthy, Error: "no tuners configured"}
	}

	now := c.now()
	tc, err := schedule.NewTimeCode(now.Hour(), now.Minute())
	if err != nil {
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}
	busy := len(c.src.Busy(ctx, schedule.DateOf(now), tc))

	msg := fmt.Sprintf("%d of %d tuners recording", busy, total)
	if busy >= total {
		return CheckResult{Status: StatusDegraded, Message: msg}
	}
	return CheckResult{Status: StatusHealthy, Message: msg}
}
