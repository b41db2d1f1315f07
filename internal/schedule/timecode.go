// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package schedule

import "fmt"

// TimeCode is a time of day packed as hour*100 + minute (0..2359).
type TimeCode uint16

// MaxTimeCode is 23:59.
const MaxTimeCode TimeCode = 2359

// NewTimeCode packs a 24-hour clock reading.
func NewTimeCode(hour, minute int) (TimeCode, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %d:%02d", ErrInvalidTimeCode, hour, minute)
	}
	return TimeCode(hour*100 + minute), nil
}

// Valid reports whether c encodes a real time of day.
func (c TimeCode) Valid() bool {
	return c <= MaxTimeCode && c%100 < 60
}

func (c TimeCode) Hour() int   { return int(c / 100) }
func (c TimeCode) Minute() int { return int(c % 100) }

// String renders the code on a 24-hour clock, e.g. "09:30".
func (c TimeCode) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}
