// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package schedule implements the tuner allocation engine.
//
// An Allocator owns k interchangeable tuners. Each tuner keeps, per calendar
// date, a slice of bookings sorted by start time with no two bookings
// overlapping (adjacent bookings where one ends exactly when the next starts
// are allowed). New bookings go to the lowest-indexed tuner that can host them.
//
// The Allocator is not safe for concurrent use; callers that share one across
// goroutines must serialize access (see internal/dvr).
package schedule
