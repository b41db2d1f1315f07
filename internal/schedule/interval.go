// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package schedule

import "fmt"

// Interval is a recording window within one day. Start < End always holds
// for intervals built by NewInterval.
type Interval struct {
	Start TimeCode `json:"start"`
	End   TimeCode `json:"end"`
}

// NewInterval validates both bounds and rejects empty or inverted windows.
func NewInterval(start, end TimeCode) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

func (iv Interval) validate() error {
	if !iv.Start.Valid() || !iv.End.Valid() || iv.Start >= iv.End {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, iv)
	}
	return nil
}

// Contains reports whether t falls within the interval, both ends inclusive.
func (iv Interval) Contains(t TimeCode) bool {
	return iv.Start <= t && t <= iv.End
}

// Minutes is the length of the interval.
func (iv Interval) Minutes() int {
	return (iv.End.Hour()*60 + iv.End.Minute()) - (iv.Start.Hour()*60 + iv.Start.Minute())
}

func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}

// Booking is a channel recorded over an interval.
type Booking struct {
	Interval
	Channel string `json:"channel"`
}

// DeviceID identifies a tuner, 1..k.
type DeviceID int

// Entry is one booking as reported by ListAll.
type Entry struct {
	Date   Date
	Device DeviceID
	Booking
}

func (b Booking) String() string {
	return b.Interval.String() + " " + b.Channel
}
