// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package dvr

import (
	"github.com/ManuGH/dvrsched/internal/input"
	"github.com/ManuGH/dvrsched/internal/schedule"
)

// DayListing is the display form of one date's bookings.
type DayListing struct {
	Date     string          `json:"date"`
	Bookings []ListedBooking `json:"bookings"`
}

// ListedBooking is the display form of one booking.
type ListedBooking struct {
	Tuner   int    `json:"tuner"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Channel string `json:"channel"`
}

// GroupByDate folds ListAll output into per-date groups, keeping its order.
func GroupByDate(entries []schedule.Entry) []DayListing {
	days := []DayListing{}
	for _, e := range entries {
		if len(days) == 0 || days[len(days)-1].Date != e.Date.String() {
			days = append(days, DayListing{Date: e.Date.String()})
		}
		last := &days[len(days)-1]
		last.Bookings = append(last.Bookings, ListedBooking{
			Tuner:   int(e.Device),
			Start:   input.FormatTime(e.Start),
			End:     input.FormatTime(e.End),
			Channel: e.Channel,
		})
	}
	return days
}
