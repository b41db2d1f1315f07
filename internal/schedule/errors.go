// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package schedule

import "errors"

var (
	// ErrConflict is returned by Add when no tuner can host the booking.
	ErrConflict = errors.New("all tuners busy")

	// ErrNotFound is returned by Remove when no booking matches exactly.
	ErrNotFound = errors.New("booking not found")

	// ErrInvalidInterval classifies intervals with bad time codes or start >= end.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrInvalidTimeCode classifies hour/minute pairs outside 00:00..23:59.
	ErrInvalidTimeCode = errors.New("invalid time code")

	// ErrInvalidDate classifies calendar dates that do not exist.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidDeviceCount is returned by New for k < 1.
	ErrInvalidDeviceCount = errors.New("tuner count must be at least 1")
)
